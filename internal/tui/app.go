package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"secretary-cli/internal/dashboard"
	"secretary-cli/internal/model"
	"secretary-cli/internal/view"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalConfirmDelete
	modalDetail
	modalHelp
)

const defaultToastDuration = 5 * time.Second

type confirmState struct {
	kind  dashboard.Kind
	id    int64
	focus confirmModalFocus
}

type appModel struct {
	ctx   context.Context
	ctrl  *dashboard.Controller
	inbox *toastInbox

	keys keyMap
	help help.Model

	page view.Page

	recent      *pageTable
	meetings    *pageTable
	departments *pageTable
	rooms       *pageTable

	modal    modalKind
	form     *form
	confirm  confirmState
	detailID int64

	toast         *toast
	toastSeq      int
	toastDuration time.Duration

	now     func() time.Time
	clock   time.Time
	loading bool

	width  int
	height int
}

func newAppModel(ctx context.Context, ctrl *dashboard.Controller, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	inbox := &toastInbox{}
	ctrl.SetNotifier(inbox)

	m := appModel{
		ctx:           ctx,
		ctrl:          ctrl,
		inbox:         inbox,
		keys:          defaultKeyMap(),
		help:          help.New(),
		page:          view.PageDashboard,
		recent:        newPageTable(),
		meetings:      newPageTable(),
		departments:   newPageTable(),
		rooms:         newPageTable(),
		toastDuration: opts.ToastDuration,
		now:           now,
		clock:         now(),
		loading:       true,
		width:         100,
		height:        30,
	}
	if m.toastDuration <= 0 {
		m.toastDuration = defaultToastDuration
	}
	m.refreshTables()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadAllCmd(), tickClock())
}

// tickClock fires on each wall-clock minute.
func tickClock() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

func (m appModel) loadAllCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg { return loadDoneMsg{err: ctrl.LoadAll(ctx)} }
}

func (m appModel) action(closeModal bool, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := fn(ctx)
		return actionDoneMsg{err: err, closeModal: closeModal && err == nil}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refreshTables()
		return m, nil

	case clockTickMsg:
		m.clock = time.Time(msg)
		return m, tickClock()

	case loadDoneMsg:
		m.loading = false
		m.refreshTables()
		return m, m.showToasts()

	case cacheChangedMsg:
		m.refreshTables()
		return m, nil

	case actionDoneMsg:
		m.refreshTables()
		if msg.err != nil && m.modal == modalForm && m.form != nil {
			m.form.err = dashboard.UserMessage(msg.err)
		}
		if msg.closeModal {
			m.closeModal()
		}
		return m, m.showToasts()

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		switch m.modal {
		case modalForm:
			return m.updateForm(msg)
		case modalConfirmDelete:
			return m.updateConfirm(msg)
		case modalDetail:
			return m.updateDetail(msg)
		case modalHelp:
			if key.Matches(msg, m.keys.Cancel, m.keys.Help, m.keys.Detail) {
				m.modal = modalNone
			}
			return m, nil
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.form = nil
	m.confirm = confirmState{}
	m.detailID = 0
}

// showToasts moves queued toasts to the minibuffer. Only the latest stays
// visible.
func (m *appModel) showToasts() tea.Cmd {
	ts := m.inbox.drain()
	if len(ts) == 0 {
		return nil
	}
	t := ts[len(ts)-1]
	m.toast = &t
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m *appModel) activeTable() *pageTable {
	switch m.page {
	case view.PageMeetings:
		return m.meetings
	case view.PageDepartments:
		return m.departments
	case view.PageRooms:
		return m.rooms
	default:
		return m.recent
	}
}

func (m *appModel) refreshTables() {
	s := m.ctrl.Snapshot()
	w := m.width - 2
	m.recent.set(view.RecentMeetings(s.Meetings), w)
	m.meetings.set(view.Meetings(dashboard.FilterMeetings(s.Meetings, s.Filter)), w)
	m.departments.set(view.Departments(s.Departments), w)
	m.rooms.set(view.Rooms(s.Rooms), w)

	h := m.height - 9
	if m.page == view.PageMeetings {
		h--
	}
	if h < 5 {
		h = 5
	}
	m.meetings.tbl.SetHeight(h)
	m.departments.tbl.SetHeight(h)
	m.rooms.tbl.SetHeight(h)
	rh := m.height - 16
	if rh > view.RecentLimit+1 {
		rh = view.RecentLimit + 1
	}
	if rh < 3 {
		rh = 3
	}
	m.recent.tbl.SetHeight(rh)
}

func (m appModel) setPage(p view.Page) (tea.Model, tea.Cmd) {
	m.page = p
	m.refreshTables()
	return m, nil
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.modal = modalHelp
		return m, nil
	case key.Matches(msg, m.keys.Dashboard):
		return m.setPage(view.PageDashboard)
	case key.Matches(msg, m.keys.Meetings):
		return m.setPage(view.PageMeetings)
	case key.Matches(msg, m.keys.Departments):
		return m.setPage(view.PageDepartments)
	case key.Matches(msg, m.keys.Rooms):
		return m.setPage(view.PageRooms)
	case key.Matches(msg, m.keys.NextPage):
		return m.setPage(view.Pages[(int(m.page)+1)%len(view.Pages)])
	case key.Matches(msg, m.keys.PrevPage):
		return m.setPage(view.Pages[(int(m.page)-1+len(view.Pages))%len(view.Pages)])
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.loadAllCmd()
	case key.Matches(msg, m.keys.New):
		return m.openCreateForm()
	case key.Matches(msg, m.keys.Filter):
		if m.page != view.PageMeetings {
			return m, nil
		}
		s := m.ctrl.Snapshot()
		f := newFilterForm(s.Filter, s.Departments, s.Rooms)
		return m.openForm(f)
	case key.Matches(msg, m.keys.Clear):
		if m.page != view.PageMeetings {
			return m, nil
		}
		m.ctrl.ApplyFilter(dashboard.Filter{})
		m.refreshTables()
		return m, nil
	}

	row, ok := m.activeTable().selected()
	if ok {
		if cmd, handled := m.rowAction(msg, row); handled {
			return m, cmd
		}
	}

	t := m.activeTable()
	var cmd tea.Cmd
	t.tbl, cmd = t.tbl.Update(msg)
	return m, cmd
}

// rowAction dispatches an action key on the selected row by entity id.
func (m *appModel) rowAction(msg tea.KeyMsg, row view.Row) (tea.Cmd, bool) {
	id := row.ID
	has := func(a view.Action) bool {
		for _, x := range row.Actions {
			if x == a {
				return true
			}
		}
		return false
	}
	switch m.page {
	case view.PageDashboard:
		switch {
		case key.Matches(msg, m.keys.Join):
			if !has(view.ActionJoin) {
				return nil, true
			}
			return m.joinCmd(id), true
		case key.Matches(msg, m.keys.Detail):
			m.modal, m.detailID = modalDetail, id
			return nil, true
		}
	case view.PageMeetings:
		switch {
		case key.Matches(msg, m.keys.Join):
			return m.joinCmd(id), true
		case key.Matches(msg, m.keys.Status):
			return m.statusCmd(id), true
		case key.Matches(msg, m.keys.Detail):
			m.modal, m.detailID = modalDetail, id
			return nil, true
		case key.Matches(msg, m.keys.Edit):
			mt, err := m.ctrl.Meeting(id)
			if err != nil {
				return m.lookupFailed(err), true
			}
			s := m.ctrl.Snapshot()
			return m.openFormCmd(newMeetingForm(&mt, s.Departments, s.Rooms)), true
		case key.Matches(msg, m.keys.Delete):
			m.modal, m.confirm = modalConfirmDelete, confirmState{kind: dashboard.KindMeeting, id: id}
			return nil, true
		}
	case view.PageDepartments:
		switch {
		case key.Matches(msg, m.keys.Edit):
			d, err := m.ctrl.Department(id)
			if err != nil {
				return m.lookupFailed(err), true
			}
			return m.openFormCmd(newDepartmentForm(&d)), true
		case key.Matches(msg, m.keys.Delete):
			m.modal, m.confirm = modalConfirmDelete, confirmState{kind: dashboard.KindDepartment, id: id}
			return nil, true
		}
	case view.PageRooms:
		switch {
		case key.Matches(msg, m.keys.Edit):
			r, err := m.ctrl.Room(id)
			if err != nil {
				return m.lookupFailed(err), true
			}
			return m.openFormCmd(newRoomForm(&r)), true
		case key.Matches(msg, m.keys.Delete):
			m.modal, m.confirm = modalConfirmDelete, confirmState{kind: dashboard.KindRoom, id: id}
			return nil, true
		}
	}
	return nil, false
}

func (m *appModel) lookupFailed(err error) tea.Cmd {
	m.inbox.Error(dashboard.TitleError, dashboard.UserMessage(err))
	return m.showToasts()
}

func (m appModel) joinCmd(id int64) tea.Cmd {
	ctrl := m.ctrl
	return m.action(false, func(ctx context.Context) error {
		_, err := ctrl.JoinMeetingRoom(ctx, id)
		return err
	})
}

func (m appModel) statusCmd(id int64) tea.Cmd {
	ctrl := m.ctrl
	return m.action(false, func(ctx context.Context) error {
		_, err := ctrl.ChangeStatus(ctx, id)
		return err
	})
}

func (m appModel) openCreateForm() (tea.Model, tea.Cmd) {
	s := m.ctrl.Snapshot()
	switch m.page {
	case view.PageDepartments:
		return m.openForm(newDepartmentForm(nil))
	case view.PageRooms:
		return m.openForm(newRoomForm(nil))
	default:
		return m.openForm(newMeetingForm(nil, s.Departments, s.Rooms))
	}
}

func (m appModel) openForm(f form) (tea.Model, tea.Cmd) {
	cmd := m.openFormCmd(f)
	return m, cmd
}

func (m *appModel) openFormCmd(f form) tea.Cmd {
	m.form = &f
	m.modal = modalForm
	return m.form.start()
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.modal = modalNone
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeModal()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.submitForm()
	case msg.String() == "enter" && len(f.fields) > 0 && f.fields[f.focus].kind != fieldArea:
		return m.submitForm()
	}
	return m, f.update(msg)
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	f.err = ""
	ctrl := m.ctrl
	id := f.id
	switch f.kind {
	case formDepartment:
		in := f.departmentInput()
		return m, m.action(true, func(ctx context.Context) error { return ctrl.SaveDepartment(ctx, id, in) })
	case formRoom:
		in, err := f.roomInput()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		return m, m.action(true, func(ctx context.Context) error { return ctrl.SaveRoom(ctx, id, in) })
	case formMeeting:
		in, err := f.meetingInput()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		return m, m.action(true, func(ctx context.Context) error { return ctrl.SaveMeeting(ctx, id, in) })
	case formFilter:
		flt, err := f.filter()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.ctrl.ApplyFilter(flt)
		m.closeModal()
		m.refreshTables()
		return m, nil
	}
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), msg.String() == "n":
		m.closeModal()
		return m, nil
	case msg.String() == "tab", msg.String() == "shift+tab", msg.String() == "left", msg.String() == "right":
		m.confirm.focus = m.confirm.focus.toggle()
		return m, nil
	case key.Matches(msg, m.keys.Confirm), msg.String() == "enter":
		if msg.String() == "enter" && m.confirm.focus == confirmFocusCancel {
			m.closeModal()
			return m, nil
		}
		c := m.confirm
		ctrl := m.ctrl
		m.closeModal()
		return m, m.action(false, func(ctx context.Context) error {
			switch c.kind {
			case dashboard.KindDepartment:
				return ctrl.DeleteDepartment(ctx, c.id)
			case dashboard.KindRoom:
				return ctrl.DeleteRoom(ctx, c.id)
			default:
				return ctrl.DeleteMeeting(ctx, c.id)
			}
		})
	}
	return m, nil
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.detailID
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Detail), msg.String() == "q":
		m.closeModal()
		return m, nil
	case key.Matches(msg, m.keys.Join):
		m.closeModal()
		return m, m.joinCmd(id)
	case key.Matches(msg, m.keys.Status):
		return m, m.statusCmd(id)
	}
	return m, nil
}

// selectedMeeting is used by the detail modal.
func (m appModel) selectedMeeting() (model.Meeting, bool) {
	mt, err := m.ctrl.Meeting(m.detailID)
	return mt, err == nil
}

var _ dashboard.Notifier = (*toastInbox)(nil)
