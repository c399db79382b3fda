package v1

import (
	"context"
	"encoding/json"
	"strconv"

	"swissclock.ch/swissclock/client/v1/common"
	"swissclock.ch/swissclock/timeclock"
)

type StatusDTO struct {
	Name        string `json:"name"`
	IsClockedIn bool   `json:"isClockedIn"`
}

type ClockEndpoint struct {
	transport *Transport
}

func (ep *ClockEndpoint) ClockIn(ctx context.Context, employeeID int) (*timeclock.TimeEntry, error) {
	return ep.clock(ctx, "/api/clock-in", employeeID)
}

func (ep *ClockEndpoint) ClockOut(ctx context.Context, employeeID int) (*timeclock.TimeEntry, error) {
	return ep.clock(ctx, "/api/clock-out", employeeID)
}

func (ep *ClockEndpoint) clock(ctx context.Context, path string, employeeID int) (*timeclock.TimeEntry, error) {
	resp, err := ep.transport.Post(ctx, path, map[string]int{"employeeId": employeeID}, nil)
	if err != nil {
		return nil, err
	}
	entry, err := decode[timeclock.TimeEntry](resp)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// TimeEntries lists an employee's entries, most recent first. An employeeID
// of zero means the caller. take of zero returns all.
func (ep *ClockEndpoint) TimeEntries(ctx context.Context, employeeID int, take int) (*common.SearchResponse[timeclock.TimeEntry], error) {
	query := map[string]string{}
	if employeeID > 0 {
		query["employeeId"] = strconv.Itoa(employeeID)
	}
	if take > 0 {
		query["take"] = strconv.Itoa(take)
	}

	resp, err := ep.transport.Get(ctx, "/api/time-entries", query)
	if err != nil {
		return nil, err
	}

	var result common.SearchResponse[timeclock.TimeEntry]
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (ep *ClockEndpoint) Stats(ctx context.Context, employeeID int) (*timeclock.Summary, error) {
	query := map[string]string{}
	if employeeID > 0 {
		query["employeeId"] = strconv.Itoa(employeeID)
	}
	resp, err := ep.transport.Get(ctx, "/api/time-entries/stats", query)
	if err != nil {
		return nil, err
	}
	summary, err := decode[timeclock.Summary](resp)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Status maps employee id to name and clock state.
func (ep *ClockEndpoint) Status(ctx context.Context) (map[int]StatusDTO, error) {
	resp, err := ep.transport.Get(ctx, "/api/status", nil)
	if err != nil {
		return nil, err
	}
	return decode[map[int]StatusDTO](resp)
}

func (ep *ClockEndpoint) Leaderboard(ctx context.Context) ([]timeclock.Standing, error) {
	resp, err := ep.transport.Get(ctx, "/api/leaderboard", nil)
	if err != nil {
		return nil, err
	}
	return decode[[]timeclock.Standing](resp)
}
