package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"swissclock.ch/swissclock/directory"
	"swissclock.ch/swissclock/security"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/web/common"
	"swissclock.ch/swissclock/web/middlewares"
)

// Authenticator is a directory that can also check credentials.
type Authenticator interface {
	timeclock.Directory
	Authenticate(username, password string) (directory.User, error)
}

type Endpoint struct {
	directory Authenticator
	secret    []byte
	ttl       time.Duration
}

func Register(r *gin.RouterGroup, dir Authenticator, secret []byte, ttl time.Duration) {
	endpoint := &Endpoint{directory: dir, secret: secret, ttl: ttl}
	r.POST("/login", endpoint.Login)
}

// Password is capped at bcrypt's 72 byte input limit.
type LoginRequestDTO struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginResponseDTO struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expiresAt"`
	User      timeclock.Employee `json:"user"`
}

func (ep *Endpoint) Login(c *gin.Context) {
	var body LoginRequestDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	user, err := ep.directory.Authenticate(body.Username, body.Password)
	if errors.Is(err, directory.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, common.NewCodedErrorResponse("Unauthorized", err.Error()))
		return
	}
	if err != nil {
		common.WriteError(c, err)
		return
	}

	token, err := security.CreateIdentityToken(security.Identity{
		EmployeeID: user.ID,
		UniqueName: user.Username,
		Name:       user.Name,
	}, ep.secret, ep.ttl)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middlewares.SessionCookie, token, int(ep.ttl.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, common.NewSuccessResponse(LoginResponseDTO{
		Token:     token,
		ExpiresAt: time.Now().Add(ep.ttl).UTC(),
		User:      user.Employee(),
	}))
}
