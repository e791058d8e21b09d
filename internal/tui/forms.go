package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"secretary-cli/internal/api"
	"secretary-cli/internal/dashboard"
	"secretary-cli/internal/format"
	"secretary-cli/internal/model"
	"secretary-cli/internal/view"
)

type formKind int

const (
	formDepartment formKind = iota
	formRoom
	formMeeting
	formFilter
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldArea
	fieldSelect
)

type formField struct {
	key   string
	label string
	kind  fieldKind

	input textinput.Model
	area  textarea.Model

	options  []view.Option
	selected int
}

func (f *formField) value() string {
	switch f.kind {
	case fieldArea:
		return f.area.Value()
	case fieldSelect:
		if f.selected < 0 || f.selected >= len(f.options) {
			return ""
		}
		return f.options[f.selected].Value
	default:
		return f.input.Value()
	}
}

func (f *formField) focus() tea.Cmd {
	switch f.kind {
	case fieldArea:
		return f.area.Focus()
	case fieldText:
		return f.input.Focus()
	}
	return nil
}

func (f *formField) blur() {
	switch f.kind {
	case fieldArea:
		f.area.Blur()
	case fieldText:
		f.input.Blur()
	}
}

// form is one modal form. id is 0 when creating.
type form struct {
	kind   formKind
	id     int64
	title  string
	fields []formField
	focus  int
	err    string
}

func newTextField(key, label, value, placeholder string) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 255
	ti.SetValue(view.Sanitize(value))
	return formField{key: key, label: label, kind: fieldText, input: ti}
}

func newAreaField(key, label, value string) formField {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(3)
	ta.SetValue(view.SanitizeText(value))
	return formField{key: key, label: label, kind: fieldArea, area: ta}
}

// newSelectField keeps a current value that is missing from options (for
// example a department renamed after the meeting was created).
func newSelectField(key, label string, options []view.Option, current string) formField {
	opts := append([]view.Option(nil), options...)
	sel := 0
	found := false
	for i, o := range opts {
		if o.Value == current {
			sel, found = i, true
			break
		}
	}
	if !found && current != "" {
		opts = append(opts, view.Option{Value: current, Label: view.Sanitize(current)})
		sel = len(opts) - 1
	}
	return formField{key: key, label: label, kind: fieldSelect, options: opts, selected: sel}
}

func newDepartmentForm(d *model.Department) form {
	f := form{kind: formDepartment, title: "Thêm phòng ban"}
	name, desc := "", ""
	if d != nil {
		f.id, f.title = d.ID, "Sửa phòng ban"
		name, desc = d.Name, d.Description
	}
	f.fields = []formField{
		newTextField("name", "Tên phòng ban", name, ""),
		newAreaField("description", "Mô tả", desc),
	}
	return f
}

func newRoomForm(r *model.Room) form {
	f := form{kind: formRoom, title: "Thêm phòng họp"}
	var name, desc, capacity, location string
	if r != nil {
		f.id, f.title = r.ID, "Sửa phòng họp"
		name, desc, location = r.Name, r.Description, r.Location
		if r.Capacity != nil {
			capacity = strconv.Itoa(*r.Capacity)
		}
	}
	f.fields = []formField{
		newTextField("name", "Tên phòng", name, ""),
		newAreaField("description", "Mô tả", desc),
		newTextField("capacity", "Sức chứa", capacity, "số người"),
		newTextField("location", "Vị trí", location, ""),
	}
	return f
}

func newMeetingForm(m *model.Meeting, ds []model.Department, rs []model.Room) form {
	f := form{kind: formMeeting, title: "Thêm cuộc họp"}
	var cur model.Meeting
	if m != nil {
		cur = *m
		f.id, f.title = m.ID, "Sửa cuộc họp"
	}
	f.fields = []formField{
		newTextField("title", "Tiêu đề", cur.Title, ""),
		newAreaField("description", "Mô tả", cur.Description),
		newSelectField("department", "Phòng ban", view.DepartmentOptions(ds, view.ChooseDepartment), cur.Department),
		newSelectField("room", "Phòng họp", view.RoomOptions(rs, view.ChooseRoom), cur.Room),
		newTextField("chairman", "Chủ trì", cur.Chairman, ""),
		newTextField("secretary", "Thư ký", cur.Secretary, ""),
		newTextField("startTime", "Bắt đầu", format.DateTimeInput(cur.StartTime), "2024-05-01T09:00"),
		newTextField("endTime", "Kết thúc", format.DateTimeInput(cur.EndTime), "2024-05-01T10:00"),
	}
	// Status is only editable on an existing meeting.
	if m != nil {
		f.fields = append(f.fields, newSelectField("status", "Trạng thái", view.StatusOptions(""), string(cur.Status)))
	}
	return f
}

func newFilterForm(cur dashboard.Filter, ds []model.Department, rs []model.Room) form {
	return form{
		kind:  formFilter,
		title: "Lọc cuộc họp",
		fields: []formField{
			newSelectField("status", "Trạng thái", view.StatusOptions(view.AllStatuses), string(cur.Status)),
			newSelectField("department", "Phòng ban", view.DepartmentOptions(ds, view.AllDepartments), cur.Department),
			newSelectField("room", "Phòng họp", view.RoomOptions(rs, view.AllRooms), cur.Room),
			newTextField("date", "Ngày", cur.Date, "YYYY-MM-DD"),
		},
	}
}

func (f *form) field(key string) *formField {
	for i := range f.fields {
		if f.fields[i].key == key {
			return &f.fields[i]
		}
	}
	return nil
}

func (f *form) value(key string) string {
	if fl := f.field(key); fl != nil {
		return fl.value()
	}
	return ""
}

// start focuses the first field.
func (f *form) start() tea.Cmd {
	f.focus = 0
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[0].focus()
}

func (f *form) move(delta int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.fields[f.focus].blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].focus()
}

// update routes a key to the focused field. Submit and cancel keys are
// handled by the caller.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			if f.fields[f.focus].kind != fieldArea || km.String() == "tab" {
				return f.move(1)
			}
		case "shift+tab", "up":
			if f.fields[f.focus].kind != fieldArea || km.String() == "shift+tab" {
				return f.move(-1)
			}
		}
	}
	fl := &f.fields[f.focus]
	var cmd tea.Cmd
	switch fl.kind {
	case fieldSelect:
		if km, ok := msg.(tea.KeyMsg); ok && len(fl.options) > 0 {
			switch km.String() {
			case "left", "h":
				fl.selected = (fl.selected - 1 + len(fl.options)) % len(fl.options)
			case "right", "l", " ":
				fl.selected = (fl.selected + 1) % len(fl.options)
			}
		}
	case fieldArea:
		fl.area, cmd = fl.area.Update(msg)
	default:
		fl.input, cmd = fl.input.Update(msg)
	}
	return cmd
}

func (f *form) departmentInput() api.DepartmentInput {
	return api.DepartmentInput{
		Name:        strings.TrimSpace(f.value("name")),
		Description: f.value("description"),
	}
}

func (f *form) roomInput() (api.RoomInput, error) {
	in := api.RoomInput{
		Name:        strings.TrimSpace(f.value("name")),
		Description: f.value("description"),
		Location:    strings.TrimSpace(f.value("location")),
	}
	if s := strings.TrimSpace(f.value("capacity")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return api.RoomInput{}, fmt.Errorf("Sức chứa phải là số: %q", s)
		}
		in.Capacity = &n
	}
	return in, nil
}

func (f *form) meetingInput() (api.MeetingInput, error) {
	in := api.MeetingInput{
		Title:       strings.TrimSpace(f.value("title")),
		Description: f.value("description"),
		Department:  f.value("department"),
		Room:        f.value("room"),
		Chairman:    strings.TrimSpace(f.value("chairman")),
		Secretary:   strings.TrimSpace(f.value("secretary")),
	}
	for _, k := range []struct {
		key string
		dst *model.LocalTime
	}{{"startTime", &in.StartTime}, {"endTime", &in.EndTime}} {
		s := strings.TrimSpace(f.value(k.key))
		if s == "" {
			continue
		}
		t, err := model.ParseLocalTime(s)
		if err != nil {
			return api.MeetingInput{}, fmt.Errorf("Thời gian không hợp lệ: %q (YYYY-MM-DDTHH:MM)", s)
		}
		*k.dst = t
	}
	if f.id != 0 {
		if s := f.value("status"); s != "" {
			st, err := model.ParseStatus(s)
			if err != nil {
				return api.MeetingInput{}, err
			}
			in.Status = st
		}
	}
	return in, nil
}

func (f *form) filter() (dashboard.Filter, error) {
	flt := dashboard.Filter{
		Status:     model.Status(f.value("status")),
		Department: f.value("department"),
		Room:       f.value("room"),
		Date:       strings.TrimSpace(f.value("date")),
	}
	if err := flt.Validate(); err != nil {
		return dashboard.Filter{}, err
	}
	return flt, nil
}

func (f *form) view(width int) string {
	bodyW := modalBodyWidth(width)
	labelW := 12
	fieldW := bodyW - labelW - 1
	if fieldW < 10 {
		fieldW = 10
	}

	var lines []string
	for i := range f.fields {
		fl := &f.fields[i]
		focused := i == f.focus
		label := lipgloss.NewStyle().Width(labelW).Render(fl.label)
		if focused {
			label = lipgloss.NewStyle().Width(labelW).Bold(true).Foreground(colorAccent).Render(fl.label)
		}
		var v string
		switch fl.kind {
		case fieldSelect:
			opt := ""
			if fl.selected >= 0 && fl.selected < len(fl.options) {
				opt = fl.options[fl.selected].Label
			}
			v = renderInputLine(fieldW, "‹ "+truncate(opt, fieldW-6)+" ›", focused)
		case fieldArea:
			fl.area.SetWidth(fieldW - 2)
			v = fl.area.View()
		default:
			fl.input.Width = fieldW - 3
			v = renderInputLine(fieldW, fl.input.View(), focused)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, " ", v))
	}
	if f.err != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(colorErrorBg).Bold(true).Render(f.err))
	}
	lines = append(lines, "", styleMuted().Render("tab/shift+tab: trường   ←/→: chọn   ctrl+s: lưu   esc: hủy"))
	return renderModalBox(width, f.title, strings.Join(lines, "\n"))
}
