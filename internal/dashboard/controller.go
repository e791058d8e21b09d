// Package dashboard owns the dashboard's application state: entity caches,
// the active meeting filter, the status cycle and the meeting-room handoff.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"secretary-cli/internal/api"
	"secretary-cli/internal/browser"
	"secretary-cli/internal/handoff"
	"secretary-cli/internal/model"
)

// Backend is the REST surface the controller drives. *api.Client satisfies it.
type Backend interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
	CreateDepartment(ctx context.Context, in api.DepartmentInput) (api.Envelope, error)
	UpdateDepartment(ctx context.Context, id int64, in api.DepartmentInput) (api.Envelope, error)
	DeleteDepartment(ctx context.Context, id int64) (api.Envelope, error)

	ListRooms(ctx context.Context) ([]model.Room, error)
	CreateRoom(ctx context.Context, in api.RoomInput) (api.Envelope, error)
	UpdateRoom(ctx context.Context, id int64, in api.RoomInput) (api.Envelope, error)
	DeleteRoom(ctx context.Context, id int64) (api.Envelope, error)

	ListMeetings(ctx context.Context) ([]model.Meeting, error)
	CreateMeeting(ctx context.Context, in api.MeetingInput) (api.Envelope, error)
	UpdateMeeting(ctx context.Context, id int64, in api.MeetingInput) (api.Envelope, error)
	DeleteMeeting(ctx context.Context, id int64) (api.Envelope, error)
	UpdateMeetingStatus(ctx context.Context, id int64, status model.Status) (api.Envelope, error)

	Statistics(ctx context.Context) (model.Statistics, error)
}

// Notifier shows transient toasts.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}

type Topic int

const (
	TopicDepartments Topic = iota
	TopicRooms
	TopicMeetings
	TopicStatistics
)

func (t Topic) String() string {
	switch t {
	case TopicDepartments:
		return "departments"
	case TopicRooms:
		return "rooms"
	case TopicMeetings:
		return "meetings"
	case TopicStatistics:
		return "statistics"
	default:
		return "unknown"
	}
}

// Listener is told which cache was replaced. It is called without the state
// lock held and possibly from a loader goroutine.
type Listener func(Topic)

// State is a snapshot of the caches. Slices are owned by the caller.
type State struct {
	Departments []model.Department
	Rooms       []model.Room
	Meetings    []model.Meeting
	Statistics  model.Statistics
	Filter      Filter
}

type Options struct {
	Notifier  Notifier
	Navigator browser.Navigator
	Storage   handoff.Storage
	Logger    *slog.Logger
	Listener  Listener
}

type Controller struct {
	backend   Backend
	notifier  Notifier
	navigator browser.Navigator
	storage   handoff.Storage
	logger    *slog.Logger

	mu       sync.RWMutex
	state    State
	listener Listener
}

func New(backend Backend, opts Options) *Controller {
	c := &Controller{
		backend:   backend,
		notifier:  opts.Notifier,
		navigator: opts.Navigator,
		storage:   opts.Storage,
		logger:    opts.Logger,
		listener:  opts.Listener,
	}
	if c.notifier == nil {
		c.notifier = discardNotifier{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.state = State{
		Departments: []model.Department{},
		Rooms:       []model.Room{},
		Meetings:    []model.Meeting{},
	}
	return c
}

// SetListener replaces the change listener; nil disables notifications.
func (c *Controller) SetListener(l Listener) {
	c.mu.Lock()
	c.listener = l
	c.mu.Unlock()
}

// SetNotifier swaps the toast sink, e.g. once the TUI program exists.
func (c *Controller) SetNotifier(n Notifier) {
	if n == nil {
		n = discardNotifier{}
	}
	c.mu.Lock()
	c.notifier = n
	c.mu.Unlock()
}

func (c *Controller) publish(t Topic) {
	c.mu.RLock()
	l := c.listener
	c.mu.RUnlock()
	if l != nil {
		l(t)
	}
}

func (c *Controller) notify() Notifier {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notifier
}

func (c *Controller) success(msg string) { c.notify().Success(TitleSuccess, msg) }

func (c *Controller) fail(err error) { c.notify().Error(TitleError, UserMessage(err)) }

func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		Departments: append([]model.Department(nil), c.state.Departments...),
		Rooms:       append([]model.Room(nil), c.state.Rooms...),
		Meetings:    append([]model.Meeting(nil), c.state.Meetings...),
		Statistics:  c.state.Statistics,
		Filter:      c.state.Filter,
	}
}

func (c *Controller) Departments() []model.Department { return c.Snapshot().Departments }
func (c *Controller) Rooms() []model.Room             { return c.Snapshot().Rooms }
func (c *Controller) Meetings() []model.Meeting       { return c.Snapshot().Meetings }

func (c *Controller) Statistics() model.Statistics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Statistics
}

func (c *Controller) LoadDepartments(ctx context.Context) error {
	ds, err := c.backend.ListDepartments(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "load departments", "error", err)
		return err
	}
	if ds == nil {
		ds = []model.Department{}
	}
	c.mu.Lock()
	c.state.Departments = ds
	c.mu.Unlock()
	c.publish(TopicDepartments)
	return nil
}

func (c *Controller) LoadRooms(ctx context.Context) error {
	rs, err := c.backend.ListRooms(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "load rooms", "error", err)
		return err
	}
	if rs == nil {
		rs = []model.Room{}
	}
	c.mu.Lock()
	c.state.Rooms = rs
	c.mu.Unlock()
	c.publish(TopicRooms)
	return nil
}

func (c *Controller) LoadMeetings(ctx context.Context) error {
	ms, err := c.backend.ListMeetings(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "load meetings", "error", err)
		return err
	}
	if ms == nil {
		ms = []model.Meeting{}
	}
	c.mu.Lock()
	c.state.Meetings = ms
	c.mu.Unlock()
	c.publish(TopicMeetings)
	return nil
}

// LoadStatistics failures are logged only; the counters keep their last value.
func (c *Controller) LoadStatistics(ctx context.Context) error {
	st, err := c.backend.Statistics(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "load statistics", "error", err)
		return err
	}
	c.mu.Lock()
	c.state.Statistics = st
	c.mu.Unlock()
	c.publish(TopicStatistics)
	return nil
}

// LoadAll runs every loader concurrently and waits for all of them. A failed
// entity load raises one generic error toast; statistics failures do not.
func (c *Controller) LoadAll(ctx context.Context) error {
	var depErr, roomErr, meetErr, stErr error
	var g errgroup.Group
	g.Go(func() error { depErr = c.LoadDepartments(ctx); return nil })
	g.Go(func() error { roomErr = c.LoadRooms(ctx); return nil })
	g.Go(func() error { meetErr = c.LoadMeetings(ctx); return nil })
	g.Go(func() error { stErr = c.LoadStatistics(ctx); return nil })
	_ = g.Wait()

	entityErr := errors.Join(depErr, roomErr, meetErr)
	if entityErr != nil {
		c.notify().Error(TitleError, MsgLoadFailed)
	}
	return errors.Join(entityErr, stErr)
}

func (c *Controller) Department(id int64) (model.Department, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := model.FindDepartment(c.state.Departments, id)
	if !ok {
		return model.Department{}, errNotFound(KindDepartment, id)
	}
	return *d, nil
}

func (c *Controller) Room(id int64) (model.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := model.FindRoom(c.state.Rooms, id)
	if !ok {
		return model.Room{}, errNotFound(KindRoom, id)
	}
	return *r, nil
}

func (c *Controller) Meeting(id int64) (model.Meeting, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := model.FindMeeting(c.state.Meetings, id)
	if !ok {
		return model.Meeting{}, errNotFound(KindMeeting, id)
	}
	return *m, nil
}

// ApplyFilter records f as the active filter and returns the matching
// meetings from the current cache. It never touches the network.
func (c *Controller) ApplyFilter(f Filter) []model.Meeting {
	c.mu.Lock()
	c.state.Filter = f
	ms := c.state.Meetings
	c.mu.Unlock()
	return FilterMeetings(ms, f)
}

func (c *Controller) ActiveFilter() Filter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Filter
}

// VisibleMeetings re-applies the active filter to the current cache.
func (c *Controller) VisibleMeetings() []model.Meeting {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return FilterMeetings(c.state.Meetings, c.state.Filter)
}

type discardNotifier struct{}

func (discardNotifier) Success(string, string) {}
func (discardNotifier) Error(string, string)   {}
