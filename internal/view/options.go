package view

import "secretary-cli/internal/model"

// Option is one entry of a drop-down. An empty Value is the placeholder.
type Option struct {
	Value string
	Label string
}

const (
	ChooseDepartment = "Chọn phòng ban"
	AllDepartments   = "Tất cả phòng ban"
	ChooseRoom       = "Chọn phòng họp"
	AllRooms         = "Tất cả phòng họp"
	AllStatuses      = "Tất cả trạng thái"
)

func DepartmentOptions(ds []model.Department, placeholder string) []Option {
	return nameOptions(model.DepartmentNames(ds), placeholder)
}

func RoomOptions(rs []model.Room, placeholder string) []Option {
	return nameOptions(model.RoomNames(rs), placeholder)
}

// StatusOptions lists the statuses in lifecycle order. An empty placeholder
// omits the leading entry.
func StatusOptions(placeholder string) []Option {
	out := make([]Option, 0, len(model.StatusOrder)+1)
	if placeholder != "" {
		out = append(out, Option{Label: placeholder})
	}
	for _, s := range model.StatusOrder {
		out = append(out, Option{Value: string(s), Label: s.Label()})
	}
	return out
}

func nameOptions(names []string, placeholder string) []Option {
	out := make([]Option, 0, len(names)+1)
	out = append(out, Option{Label: placeholder})
	for _, n := range names {
		out = append(out, Option{Value: n, Label: Sanitize(n)})
	}
	return out
}

// Badge is a status pill. Kind is empty for unknown statuses, which render
// as their raw text.
type Badge struct {
	Label string
	Kind  string
}

func StatusBadge(s model.Status) Badge {
	switch s {
	case model.StatusScheduled:
		return Badge{Label: s.Label(), Kind: "scheduled"}
	case model.StatusOngoing:
		return Badge{Label: s.Label(), Kind: "ongoing"}
	case model.StatusFinished:
		return Badge{Label: s.Label(), Kind: "finished"}
	default:
		return Badge{Label: Sanitize(string(s))}
	}
}

type Page int

const (
	PageDashboard Page = iota
	PageMeetings
	PageDepartments
	PageRooms
)

// Pages is the navigation order.
var Pages = []Page{PageDashboard, PageMeetings, PageDepartments, PageRooms}

func (p Page) Title() string {
	switch p {
	case PageMeetings:
		return "Quản lý Cuộc họp"
	case PageDepartments:
		return "Quản lý Phòng ban"
	case PageRooms:
		return "Quản lý Phòng họp"
	default:
		return "Dashboard"
	}
}

// NavLabel is the short sidebar label.
func (p Page) NavLabel() string {
	switch p {
	case PageMeetings:
		return "Cuộc họp"
	case PageDepartments:
		return "Phòng ban"
	case PageRooms:
		return "Phòng họp"
	default:
		return "Dashboard"
	}
}
