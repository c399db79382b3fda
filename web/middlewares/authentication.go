package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"swissclock.ch/swissclock/security"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/web/common"
)

const (
	SessionCookie = "swissclock.session"
	IdentityKey   = "identity"
)

// Authentication checks for a valid Bearer token or session cookie and that
// the token's employee still exists in the directory.
func Authentication(secret []byte, directory timeclock.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "missing bearer token")
			return
		}

		identity, err := security.ParseIdentityToken(tokenStr, secret)
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		if directory != nil {
			if _, ok := directory.Lookup(identity.EmployeeID); !ok {
				unauthorized(c, "unknown employee")
				return
			}
		}

		c.Set(common.EmployeeIDKey, identity.EmployeeID)
		c.Set(IdentityKey, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			return "", false
		}
		return cookie, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewCodedErrorResponse("Unauthorized", message))
}
