package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"swissclock.ch/swissclock/infrastructure/broadcast"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/web/common"
	"swissclock.ch/swissclock/web/handlers/account"
	"swissclock.ch/swissclock/web/handlers/events"
	"swissclock.ch/swissclock/web/handlers/report"
	"swissclock.ch/swissclock/web/handlers/timeentry"
	"swissclock.ch/swissclock/web/middlewares"
)

const Version = "1.0.0"

type Services struct {
	Accounting *timeclock.Accounting
	Directory  account.Authenticator
	Broker     *broadcast.Broker
	Secret     []byte
	TokenTTL   time.Duration
}

// Register mounts the public and protected API on r.
func Register(r *gin.Engine, s Services) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
			"name":     "swissclock",
			"version":  Version,
			"timezone": s.Accounting.Location().String(),
		}))
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	account.Register(api, s.Directory, s.Secret, s.TokenTTL)

	protected := r.Group("/api")
	protected.Use(middlewares.Authentication(s.Secret, s.Directory))
	{
		timeentry.Register(protected, s.Accounting)
		report.Register(protected, s.Accounting)
		if s.Broker != nil {
			events.Register(protected, s.Broker)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("Not found"))
	})
}

func NewRouter(s Services) *gin.Engine {
	r := gin.Default()
	Register(r, s)
	return r
}
