package view

import (
	"sort"
	"strconv"

	"secretary-cli/internal/format"
	"secretary-cli/internal/model"
)

const (
	EmptyDepartments = "Chưa có phòng ban nào"
	EmptyRooms       = "Chưa có phòng họp nào"
	EmptyMeetings    = "Chưa có cuộc họp nào"

	// RecentLimit is how many meetings the dashboard's recent panel shows.
	RecentLimit = 5
)

const (
	iconDepartments = "🏢"
	iconRooms       = "🚪"
	iconMeetings    = "📅"
)

var (
	departmentColumns = []Column{
		{Title: "ID", Width: 5},
		{Title: "Tên phòng ban", Width: 24},
		{Title: "Mô tả", Width: 32},
		{Title: "Ngày tạo", Width: 12},
	}
	roomColumns = []Column{
		{Title: "ID", Width: 5},
		{Title: "Tên phòng", Width: 20},
		{Title: "Mô tả", Width: 28},
		{Title: "Sức chứa", Width: 9},
		{Title: "Vị trí", Width: 18},
	}
	meetingColumns = []Column{
		{Title: "ID", Width: 5},
		{Title: "Tiêu đề", Width: 24},
		{Title: "Phòng ban", Width: 14},
		{Title: "Phòng họp", Width: 12},
		{Title: "Chủ trì", Width: 14},
		{Title: "Thư ký", Width: 14},
		{Title: "Bắt đầu", Width: 17},
		{Title: "Trạng thái", Width: 13},
	}
	recentColumns = []Column{
		{Title: "Tiêu đề", Width: 24},
		{Title: "Phòng ban", Width: 14},
		{Title: "Phòng họp", Width: 12},
		{Title: "Bắt đầu", Width: 17},
		{Title: "Trạng thái", Width: 13},
	}
)

func Departments(ds []model.Department) Table {
	if len(ds) == 0 {
		return placeholderTable(departmentColumns, iconDepartments, EmptyDepartments)
	}
	rows := make([]Row, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, Row{
			ID: d.ID,
			Cells: []string{
				strconv.FormatInt(d.ID, 10),
				Sanitize(d.Name),
				orDash(d.Description),
				format.Date(d.CreatedAt),
			},
			Actions: []Action{ActionEdit, ActionDelete},
		})
	}
	return Table{Columns: departmentColumns, Rows: rows}
}

func Rooms(rs []model.Room) Table {
	if len(rs) == 0 {
		return placeholderTable(roomColumns, iconRooms, EmptyRooms)
	}
	rows := make([]Row, 0, len(rs))
	for _, r := range rs {
		capacity := "-"
		if r.Capacity != nil && *r.Capacity != 0 {
			capacity = strconv.Itoa(*r.Capacity)
		}
		rows = append(rows, Row{
			ID: r.ID,
			Cells: []string{
				strconv.FormatInt(r.ID, 10),
				Sanitize(r.Name),
				orDash(r.Description),
				capacity,
				orDash(r.Location),
			},
			Actions: []Action{ActionEdit, ActionDelete},
		})
	}
	return Table{Columns: roomColumns, Rows: rows}
}

// Meetings renders exactly the meetings given, which may be a filtered subset.
func Meetings(ms []model.Meeting) Table {
	if len(ms) == 0 {
		return placeholderTable(meetingColumns, iconMeetings, EmptyMeetings)
	}
	rows := make([]Row, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, Row{
			ID: m.ID,
			Cells: []string{
				strconv.FormatInt(m.ID, 10),
				Sanitize(m.Title),
				Sanitize(m.Department),
				Sanitize(m.Room),
				Sanitize(m.Chairman),
				Sanitize(m.Secretary),
				format.DateTime(m.StartTime),
				StatusBadge(m.Status).Label,
			},
			Actions: []Action{ActionJoin, ActionStatus, ActionEdit, ActionDelete},
		})
	}
	return Table{Columns: meetingColumns, Rows: rows}
}

// RecentMeetings shows the latest meetings by start time. The input is not
// reordered; finished meetings get no join action.
func RecentMeetings(ms []model.Meeting) Table {
	recent := Recent(ms, RecentLimit)
	if len(recent) == 0 {
		return placeholderTable(recentColumns, "", EmptyMeetings)
	}
	rows := make([]Row, 0, len(recent))
	for _, m := range recent {
		var actions []Action
		if m.Status != model.StatusFinished {
			actions = []Action{ActionJoin}
		}
		rows = append(rows, Row{
			ID: m.ID,
			Cells: []string{
				Sanitize(m.Title),
				Sanitize(m.Department),
				Sanitize(m.Room),
				format.DateTime(m.StartTime),
				StatusBadge(m.Status).Label,
			},
			Actions: actions,
		})
	}
	return Table{Columns: recentColumns, Rows: rows}
}

// Recent returns a copy sorted by start time descending, truncated to limit.
func Recent(ms []model.Meeting, limit int) []model.Meeting {
	out := append([]model.Meeting(nil), ms...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime.Time)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
