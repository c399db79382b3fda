package timeentry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, accounting *timeclock.Accounting) {
	endpoint := &Endpoint{base: common.Handler{Accounting: accounting}}
	r.POST("/clock-in", endpoint.ClockIn)
	r.POST("/clock-out", endpoint.ClockOut)
	r.GET("/time-entries", endpoint.Search)
	r.GET("/time-entries/stats", endpoint.Stats)
	r.GET("/status", endpoint.Status)
	r.GET("/leaderboard", endpoint.Leaderboard)
}

type ClockRequestDTO struct {
	EmployeeID int `json:"employeeId" binding:"required,min=1"`
}

type StatusDTO struct {
	Name        string `json:"name"`
	IsClockedIn bool   `json:"isClockedIn"`
}

func (ep *Endpoint) ClockIn(c *gin.Context) {
	employeeID, ok := ep.bindClockRequest(c)
	if !ok {
		return
	}

	entry, err := ep.base.Accounting.ClockIn(c.Request.Context(), employeeID, ep.base.Accounting.Now())
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(entry))
}

func (ep *Endpoint) ClockOut(c *gin.Context) {
	employeeID, ok := ep.bindClockRequest(c)
	if !ok {
		return
	}

	entry, err := ep.base.Accounting.ClockOut(c.Request.Context(), employeeID, ep.base.Accounting.Now())
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(entry))
}

// bindClockRequest only lets callers clock themselves.
func (ep *Endpoint) bindClockRequest(c *gin.Context) (int, bool) {
	var body ClockRequestDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return 0, false
	}

	caller, ok := common.CallerID(c)
	if !ok || caller != body.EmployeeID {
		common.WriteError(c, common.ErrForbidden)
		return 0, false
	}
	return body.EmployeeID, true
}

// Search lists entries most recent first. take and skip page through them.
func (ep *Endpoint) Search(c *gin.Context) {
	employeeID, err := common.EmployeeParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}
	take, err := queryInt(c, "take", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}

	entries, err := ep.base.Accounting.Entries(c.Request.Context(), employeeID)
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSearchResponse(entries, take, skip))
}

func (ep *Endpoint) Stats(c *gin.Context) {
	employeeID, err := common.EmployeeParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error()))
		return
	}

	summary, err := ep.base.Accounting.Summary(c.Request.Context(), employeeID, ep.base.Accounting.Now())
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(summary))
}

func (ep *Endpoint) Status(c *gin.Context) {
	employees, err := ep.base.Accounting.Status(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}

	status := make(map[int]StatusDTO, len(employees))
	for _, e := range employees {
		status[e.ID] = StatusDTO{Name: e.Name, IsClockedIn: e.IsClockedIn}
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(status))
}

func (ep *Endpoint) Leaderboard(c *gin.Context) {
	board, err := ep.base.Accounting.Leaderboard(c.Request.Context(), ep.base.Accounting.Now())
	if err != nil {
		common.WriteError(c, err)
		return
	}
	if board == nil {
		board = []timeclock.Standing{}
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(board))
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New("invalid " + name)
	}
	return v, nil
}
