package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"swissclock.ch/swissclock/security"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/web/common"
)

type oneEmployee struct{}

func (oneEmployee) Lookup(id int) (timeclock.Employee, bool) {
	return timeclock.Employee{ID: 1, Name: "Miro"}, id == 1
}

func (oneEmployee) Employees() []timeclock.Employee {
	return []timeclock.Employee{{ID: 1, Name: "Miro"}}
}

var secret = []byte("test-secret")

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Authentication(secret, oneEmployee{}))
	r.GET("/whoami", func(c *gin.Context) {
		id, _ := common.CallerID(c)
		c.JSON(http.StatusOK, gin.H{"employeeId": id})
	})
	return r
}

func token(t *testing.T, id int, key []byte, ttl time.Duration) string {
	t.Helper()
	tok, err := security.CreateIdentityToken(security.Identity{EmployeeID: id, UniqueName: "miro"}, key, ttl)
	require.NoError(t, err)
	return tok
}

func TestAuthentication(t *testing.T) {
	r := newEngine()

	tests := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{
			name:   "Bearer token",
			setup:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token(t, 1, secret, time.Hour)) },
			status: http.StatusOK,
		},
		{
			name:   "Session cookie",
			setup:  func(req *http.Request) { req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token(t, 1, secret, time.Hour)}) },
			status: http.StatusOK,
		},
		{
			name:   "Missing",
			setup:  func(req *http.Request) {},
			status: http.StatusUnauthorized,
		},
		{
			name:   "Wrong scheme",
			setup:  func(req *http.Request) { req.Header.Set("Authorization", "Basic abc") },
			status: http.StatusUnauthorized,
		},
		{
			name:   "Wrong key",
			setup:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token(t, 1, []byte("other"), time.Hour)) },
			status: http.StatusUnauthorized,
		},
		{
			name:   "Expired",
			setup:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token(t, 1, secret, -time.Minute)) },
			status: http.StatusUnauthorized,
		},
		{
			name:   "Unknown employee",
			setup:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token(t, 9, secret, time.Hour)) },
			status: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"employeeId":1}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"code":"Unauthorized"`)
			}
		})
	}
}
