package dto

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EmilioNacato/DashboardProcesador/internal/timeutil"
)

// RangeParams is a validated date-range query. Defaults cover yesterday
// 00:00 through today 23:59, the dashboard's initial view.
type RangeParams struct {
	From time.Time
	To   time.Time
}

// ParseRange reads date_from/time_from/date_to/time_to from the query string
// and validates them before any upstream request is issued. Out-of-range
// hours or minutes are rejected, not clamped.
func ParseRange(c *gin.Context) (RangeParams, error) {
	now := time.Now()
	dateFrom := c.DefaultQuery("date_from", now.AddDate(0, 0, -1).Format("2006-01-02"))
	timeFrom := c.DefaultQuery("time_from", "00:00")
	dateTo := c.DefaultQuery("date_to", now.Format("2006-01-02"))
	timeTo := c.DefaultQuery("time_to", "23:59")

	from, err := timeutil.ParseLocal(dateFrom, timeFrom)
	if err != nil {
		return RangeParams{}, fmt.Errorf("invalid range start: %w", err)
	}
	to, err := timeutil.ParseLocal(dateTo, timeTo)
	if err != nil {
		return RangeParams{}, fmt.Errorf("invalid range end: %w", err)
	}
	if to.Before(from) {
		return RangeParams{}, fmt.Errorf("range start %s is after range end %s", dateFrom, dateTo)
	}

	return RangeParams{From: from, To: to}, nil
}

// SaveFilterRequest is the body of PUT /filters/:client.
type SaveFilterRequest struct {
	DateFrom string `json:"date_from" binding:"required"`
	TimeFrom string `json:"time_from" binding:"required"`
	DateTo   string `json:"date_to" binding:"required"`
	TimeTo   string `json:"time_to" binding:"required"`
}

// Validate checks that the saved bounds would parse as a usable range.
func (r *SaveFilterRequest) Validate() error {
	from, err := timeutil.ParseLocal(r.DateFrom, r.TimeFrom)
	if err != nil {
		return fmt.Errorf("invalid range start: %w", err)
	}
	to, err := timeutil.ParseLocal(r.DateTo, r.TimeTo)
	if err != nil {
		return fmt.Errorf("invalid range end: %w", err)
	}
	if to.Before(from) {
		return fmt.Errorf("range start is after range end")
	}
	return nil
}
