package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"swissclock.ch/swissclock/timeclock"
)

// EmployeeIDKey holds the verified caller id on the gin context.
const EmployeeIDKey = "employeeId"

var ErrForbidden = errors.New("employee does not match the authenticated caller")

type Handler struct {
	Accounting *timeclock.Accounting
}

// CallerID returns the employee id placed on the context by the
// authentication middleware.
func CallerID(c *gin.Context) (int, bool) {
	v, ok := c.Get(EmployeeIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok && id > 0
}

// EmployeeParam reads ?employeeId=, defaulting to the caller.
func EmployeeParam(c *gin.Context) (int, error) {
	raw := c.Query("employeeId")
	if raw == "" {
		id, ok := CallerID(c)
		if !ok {
			return 0, errors.New("no authenticated employee")
		}
		return id, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employeeId %q", raw)
	}
	return id, nil
}

// WriteError translates an error into the response envelope. Clock rule
// violations are client errors carrying their code; anything else is a 500.
func WriteError(c *gin.Context, err error) {
	if errors.Is(err, ErrForbidden) {
		c.JSON(http.StatusForbidden, NewCodedErrorResponse("Forbidden", err.Error()))
		return
	}
	if code := timeclock.Code(err); code != "" {
		c.JSON(http.StatusBadRequest, NewCodedErrorResponse(code, err.Error()))
		return
	}
	fmt.Printf("[ERROR] %s %s: %v\n", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, NewErrorResponse(err.Error()))
}
