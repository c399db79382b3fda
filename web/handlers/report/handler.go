package report

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"swissclock.ch/swissclock/reporting"
	"swissclock.ch/swissclock/timeclock"
	"swissclock.ch/swissclock/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, accounting *timeclock.Accounting) {
	endpoint := &Endpoint{base: common.Handler{Accounting: accounting}}
	r.POST("/reports/timesheet", endpoint.Timesheet)
}

// TimesheetRequestDTO covers the calendar days from..to inclusive.
type TimesheetRequestDTO struct {
	From common.DateOnly `json:"from"`
	To   common.DateOnly `json:"to"`
}

func (ep *Endpoint) Timesheet(c *gin.Context) {
	var body TimesheetRequestDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	if body.From.IsZero() || body.To.IsZero() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Fields 'from' and 'to' are required"))
		return
	}
	if body.To.Before(body.From.Time) {
		c.JSON(http.StatusBadRequest, common.NewCodedErrorResponse("InvalidInterval", "'to' is before 'from'"))
		return
	}

	accounting := ep.base.Accounting
	loc := accounting.Location()
	period := reporting.Period{
		From: body.From.In(loc),
		To:   body.To.In(loc).AddDate(0, 0, 1),
	}

	entries, err := accounting.AllEntries(c.Request.Context())
	if err != nil {
		common.WriteError(c, err)
		return
	}

	data, err := reporting.WriteTimesheet(accounting.Employees(), entries, period, accounting.Now())
	if err != nil {
		common.WriteError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", period.FileName()))
	c.Data(http.StatusOK, reporting.ContentType, data)
}
