package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextPage    key.Binding
	PrevPage    key.Binding
	Dashboard   key.Binding
	Meetings    key.Binding
	Departments key.Binding
	Rooms       key.Binding

	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Status  key.Binding
	Join    key.Binding
	Detail  key.Binding
	Filter  key.Binding
	Clear   key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
	Save    key.Binding
	Cancel  key.Binding
	Confirm key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPage:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "trang kế")),
		PrevPage:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "trang trước")),
		Dashboard:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Meetings:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "cuộc họp")),
		Departments: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "phòng ban")),
		Rooms:       key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "phòng họp")),

		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "thêm")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "sửa")),
		Delete:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "xóa")),
		Status:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "đổi trạng thái")),
		Join:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "vào phòng họp")),
		Detail:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "chi tiết")),
		Filter:  key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "lọc")),
		Clear:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "bỏ lọc")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "tải lại")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "trợ giúp")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "thoát")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "lưu")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "hủy")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "đồng ý")),
	}
}

// ShortHelp and FullHelp implement help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.New, k.Edit, k.Delete, k.Filter, k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Meetings, k.Departments, k.Rooms, k.NextPage, k.PrevPage},
		{k.New, k.Edit, k.Delete, k.Detail},
		{k.Status, k.Join, k.Filter, k.Clear},
		{k.Reload, k.Help, k.Quit},
	}
}
