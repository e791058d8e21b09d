package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"secretary-cli/internal/model"
)

type DepartmentInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RoomInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    *int   `json:"capacity"`
	Location    string `json:"location"`
}

// MeetingInput carries a status only on update; creates leave it to the server.
type MeetingInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Department  string          `json:"department"`
	Room        string          `json:"room"`
	Chairman    string          `json:"chairman"`
	Secretary   string          `json:"secretary"`
	StartTime   model.LocalTime `json:"startTime"`
	EndTime     model.LocalTime `json:"endTime"`
	Status      model.Status    `json:"status,omitempty"`
}

func (c *Client) ListDepartments(ctx context.Context) ([]model.Department, error) {
	env, err := c.Call(ctx, "/departments", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.Department](env)
}

func (c *Client) CreateDepartment(ctx context.Context, in DepartmentInput) (Envelope, error) {
	return c.Call(ctx, "/departments", http.MethodPost, in)
}

func (c *Client) UpdateDepartment(ctx context.Context, id int64, in DepartmentInput) (Envelope, error) {
	return c.Call(ctx, fmt.Sprintf("/departments/%d", id), http.MethodPut, in)
}

func (c *Client) DeleteDepartment(ctx context.Context, id int64) (Envelope, error) {
	return c.Call(ctx, fmt.Sprintf("/departments/%d", id), http.MethodDelete, nil)
}

func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	env, err := c.Call(ctx, "/rooms", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.Room](env)
}

func (c *Client) CreateRoom(ctx context.Context, in RoomInput) (Envelope, error) {
	return c.Call(ctx, "/rooms", http.MethodPost, in)
}

func (c *Client) UpdateRoom(ctx context.Context, id int64, in RoomInput) (Envelope, error) {
	return c.Call(ctx, fmt.Sprintf("/rooms/%d", id), http.MethodPut, in)
}

func (c *Client) DeleteRoom(ctx context.Context, id int64) (Envelope, error) {
	return c.Call(ctx, fmt.Sprintf("/rooms/%d", id), http.MethodDelete, nil)
}

func (c *Client) ListMeetings(ctx context.Context) ([]model.Meeting, error) {
	env, err := c.Call(ctx, "/meetings", http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]model.Meeting](env)
}

func (c *Client) GetMeeting(ctx context.Context, id int64) (model.Meeting, error) {
	env, err := c.Call(ctx, fmt.Sprintf("/meetings/%d", id), http.MethodGet, nil)
	if err != nil {
		return model.Meeting{}, err
	}
	return decodeData[model.Meeting](env)
}

func (c *Client) CreateMeeting(ctx context.Context, in MeetingInput) (Envelope, error) {
	in.Status = ""
	return c.Call(ctx, "/meetings", http.MethodPost, in)
}

func (c *Client) UpdateMeeting(ctx context.Context, id int64, in MeetingInput) (Envelope, error) {
	return c.Call(ctx, fmt.Sprintf("/meetings/%d", id), http.MethodPut, in)
}

func (c *Client) DeleteMeeting(ctx context.Context, id int64) (Envelope, error) {
	return c.Call(ctx, fmt.Sprintf("/meetings/%d", id), http.MethodDelete, nil)
}

// UpdateMeetingStatus sends a partial update carrying only the new status.
func (c *Client) UpdateMeetingStatus(ctx context.Context, id int64, status model.Status) (Envelope, error) {
	endpoint := fmt.Sprintf("/meetings/%d/status?status=%s", id, url.QueryEscape(string(status)))
	return c.Call(ctx, endpoint, http.MethodPatch, nil)
}

func (c *Client) Statistics(ctx context.Context) (model.Statistics, error) {
	env, err := c.Call(ctx, "/meetings/statistics", http.MethodGet, nil)
	if err != nil {
		return model.Statistics{}, err
	}
	return decodeData[model.Statistics](env)
}

// StatisticsByDate expects date as YYYY-MM-DD.
func (c *Client) StatisticsByDate(ctx context.Context, date string) (model.PeriodStatistics, error) {
	env, err := c.Call(ctx, "/meetings/statistics/date/"+url.PathEscape(date), http.MethodGet, nil)
	if err != nil {
		return model.PeriodStatistics{}, err
	}
	return decodeData[model.PeriodStatistics](env)
}

func (c *Client) StatisticsByMonth(ctx context.Context, year, month int) (model.PeriodStatistics, error) {
	env, err := c.Call(ctx, fmt.Sprintf("/meetings/statistics/month/%d/%d", year, month), http.MethodGet, nil)
	if err != nil {
		return model.PeriodStatistics{}, err
	}
	return decodeData[model.PeriodStatistics](env)
}

func (c *Client) StatisticsByYear(ctx context.Context, year int) (model.PeriodStatistics, error) {
	env, err := c.Call(ctx, fmt.Sprintf("/meetings/statistics/year/%d", year), http.MethodGet, nil)
	if err != nil {
		return model.PeriodStatistics{}, err
	}
	return decodeData[model.PeriodStatistics](env)
}
