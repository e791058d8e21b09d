package dashboard

import (
	"context"
	"errors"

	"secretary-cli/internal/api"
	"secretary-cli/internal/handoff"
	"secretary-cli/internal/model"
)

// SaveDepartment creates when id is 0 and updates otherwise.
func (c *Controller) SaveDepartment(ctx context.Context, id int64, in api.DepartmentInput) error {
	var err error
	msg := MsgDepartmentCreated
	if id != 0 {
		_, err = c.backend.UpdateDepartment(ctx, id, in)
		msg = MsgDepartmentUpdated
	} else {
		_, err = c.backend.CreateDepartment(ctx, in)
	}
	if err != nil {
		c.fail(err)
		return err
	}
	c.success(msg)
	_ = c.LoadDepartments(ctx)
	return nil
}

func (c *Controller) DeleteDepartment(ctx context.Context, id int64) error {
	if _, err := c.backend.DeleteDepartment(ctx, id); err != nil {
		c.fail(err)
		return err
	}
	c.success(MsgDepartmentDeleted)
	_ = c.LoadDepartments(ctx)
	return nil
}

func (c *Controller) SaveRoom(ctx context.Context, id int64, in api.RoomInput) error {
	var err error
	msg := MsgRoomCreated
	if id != 0 {
		_, err = c.backend.UpdateRoom(ctx, id, in)
		msg = MsgRoomUpdated
	} else {
		_, err = c.backend.CreateRoom(ctx, in)
	}
	if err != nil {
		c.fail(err)
		return err
	}
	c.success(msg)
	_ = c.LoadRooms(ctx)
	return nil
}

func (c *Controller) DeleteRoom(ctx context.Context, id int64) error {
	if _, err := c.backend.DeleteRoom(ctx, id); err != nil {
		c.fail(err)
		return err
	}
	c.success(MsgRoomDeleted)
	_ = c.LoadRooms(ctx)
	return nil
}

// SaveMeeting creates when id is 0, otherwise updates. The client drops the
// status on create so new meetings get the server default.
func (c *Controller) SaveMeeting(ctx context.Context, id int64, in api.MeetingInput) error {
	var err error
	msg := MsgMeetingCreated
	if id != 0 {
		_, err = c.backend.UpdateMeeting(ctx, id, in)
		msg = MsgMeetingUpdated
	} else {
		_, err = c.backend.CreateMeeting(ctx, in)
	}
	if err != nil {
		c.fail(err)
		return err
	}
	c.success(msg)
	c.reloadMeetings(ctx)
	return nil
}

func (c *Controller) DeleteMeeting(ctx context.Context, id int64) error {
	if _, err := c.backend.DeleteMeeting(ctx, id); err != nil {
		c.fail(err)
		return err
	}
	c.success(MsgMeetingDeleted)
	c.reloadMeetings(ctx)
	return nil
}

func (c *Controller) reloadMeetings(ctx context.Context) {
	_ = c.LoadMeetings(ctx)
	_ = c.LoadStatistics(ctx)
}

// ChangeStatus advances meeting id to the next status in the cycle. The cache
// is only changed by the reload that follows a successful update.
func (c *Controller) ChangeStatus(ctx context.Context, id int64) (model.Status, error) {
	m, err := c.Meeting(id)
	if err != nil {
		c.fail(err)
		return "", err
	}
	next := m.Status.Next()
	if _, err := c.backend.UpdateMeetingStatus(ctx, id, next); err != nil {
		c.fail(err)
		return "", err
	}
	c.success(MsgStatusChanged(next))
	c.reloadMeetings(ctx)
	return next, nil
}

// JoinMeetingRoom writes the handoff record for meeting id and navigates to
// the meeting-room page. A lookup miss navigates nowhere.
func (c *Controller) JoinMeetingRoom(ctx context.Context, id int64) (handoff.MeetingInfo, error) {
	m, err := c.Meeting(id)
	if err != nil {
		c.fail(err)
		return handoff.MeetingInfo{}, err
	}
	if c.storage == nil || c.navigator == nil {
		err := errors.New("meeting room handoff is not configured")
		c.fail(err)
		return handoff.MeetingInfo{}, err
	}
	info := handoff.Build(m)
	if err := handoff.Write(ctx, c.storage, info); err != nil {
		c.logger.ErrorContext(ctx, "write handoff", "meetingId", id, "error", err)
		c.fail(err)
		return handoff.MeetingInfo{}, err
	}
	if err := c.navigator.Navigate(ctx, handoff.NavigationTarget); err != nil {
		c.logger.ErrorContext(ctx, "navigate", "target", handoff.NavigationTarget, "error", err)
		c.fail(err)
		return info, err
	}
	return info, nil
}
