package events

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"swissclock.ch/swissclock/infrastructure/broadcast"
	"swissclock.ch/swissclock/web/common"
)

const heartbeat = 25 * time.Second

type Endpoint struct {
	broker *broadcast.Broker
}

func Register(r *gin.RouterGroup, broker *broadcast.Broker) {
	endpoint := &Endpoint{broker: broker}
	r.GET("/events", endpoint.Stream)
}

// Stream pushes clock events to the client as server-sent events. A "ready"
// event is sent first so clients know the subscription is live.
func (ep *Endpoint) Stream(c *gin.Context) {
	events, cancel := ep.broker.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	caller, _ := common.CallerID(c)
	c.SSEvent("ready", gin.H{"employeeId": caller})
	c.Writer.Flush()

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Kind), event)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
