package view

import (
	"reflect"
	"testing"

	"secretary-cli/internal/model"
)

func lt(t *testing.T, s string) model.LocalTime {
	t.Helper()
	v, err := model.ParseLocalTime(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func TestEmptyCollectionsRenderSinglePlaceholder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		table Table
		want  string
	}{
		{"departments", Departments(nil), EmptyDepartments},
		{"rooms", Rooms([]model.Room{}), EmptyRooms},
		{"meetings", Meetings(nil), EmptyMeetings},
		{"recent", RecentMeetings(nil), EmptyMeetings},
	}
	for _, tt := range tests {
		if len(tt.table.Rows) != 1 || !tt.table.Rows[0].Placeholder {
			t.Fatalf("%s: expected one placeholder row, got %#v", tt.name, tt.table.Rows)
		}
		if !tt.table.Empty() {
			t.Fatalf("%s: expected Empty()", tt.name)
		}
		if got := tt.table.Rows[0].Cells[0]; got != tt.want {
			t.Fatalf("%s: got %q want %q", tt.name, got, tt.want)
		}
	}
}

func TestDepartments_OneRowPerEntityInOrder(t *testing.T) {
	t.Parallel()

	ds := []model.Department{
		{ID: 3, Name: "Sales", CreatedAt: lt(t, "2024-01-02T08:00:00")},
		{ID: 1, Name: "IT", Description: "Hạ tầng"},
	}
	tbl := Departments(ds)
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0].ID != 3 || tbl.Rows[1].ID != 1 {
		t.Fatalf("order not preserved: %#v", tbl.Rows)
	}
	if want := []string{"3", "Sales", "-", "02/01/2024"}; !reflect.DeepEqual(tbl.Rows[0].Cells, want) {
		t.Fatalf("got %#v want %#v", tbl.Rows[0].Cells, want)
	}
	if tbl.Rows[1].Cells[2] != "Hạ tầng" || tbl.Rows[1].Cells[3] != "-" {
		t.Fatalf("unexpected cells %#v", tbl.Rows[1].Cells)
	}
	if r, ok := tbl.RowByID(1); !ok || r.Cells[1] != "IT" {
		t.Fatalf("RowByID(1) = %#v, %v", r, ok)
	}
}

func TestRooms_OptionalFields(t *testing.T) {
	t.Parallel()

	twelve := 12
	tbl := Rooms([]model.Room{
		{ID: 1, Name: "A1", Capacity: &twelve, Location: "Tầng 2"},
		{ID: 2, Name: "B2"},
	})
	if got := tbl.Rows[0].Cells; got[3] != "12" || got[4] != "Tầng 2" {
		t.Fatalf("unexpected cells %#v", got)
	}
	if got := tbl.Rows[1].Cells; got[2] != "-" || got[3] != "-" || got[4] != "-" {
		t.Fatalf("expected dashes, got %#v", got)
	}
}

func TestMeetings_TextIsNeverInterpreted(t *testing.T) {
	t.Parallel()

	tbl := Meetings([]model.Meeting{{
		ID:     1,
		Title:  "\x1b[31mRed\x1b[0m <b>bold</b>\nnext",
		Status: model.Status("DRAFT"),
	}})
	row := tbl.Rows[0]
	if row.Cells[1] != "Red <b>bold</b> next" {
		t.Fatalf("unexpected sanitized title %q", row.Cells[1])
	}
	if row.Cells[7] != "DRAFT" {
		t.Fatalf("unknown status should render raw, got %q", row.Cells[7])
	}
	if want := []Action{ActionJoin, ActionStatus, ActionEdit, ActionDelete}; !reflect.DeepEqual(row.Actions, want) {
		t.Fatalf("got actions %#v", row.Actions)
	}
}

func TestRecentMeetings_SevenBecomeFiveNewestFirst(t *testing.T) {
	t.Parallel()

	var ms []model.Meeting
	for i := 1; i <= 7; i++ {
		ms = append(ms, model.Meeting{
			ID:        int64(i),
			Title:     "M",
			StartTime: lt(t, "2024-05-0"+string(rune('0'+i))+"T09:00:00"),
			Status:    model.StatusScheduled,
		})
	}
	ms[5].Status = model.StatusFinished // id 6

	tbl := RecentMeetings(ms)
	var ids []int64
	for _, r := range tbl.Rows {
		ids = append(ids, r.ID)
	}
	if want := []int64{7, 6, 5, 4, 3}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("got ids %v want %v", ids, want)
	}
	if tbl.Rows[1].Actions != nil {
		t.Fatalf("finished meeting must not offer join: %#v", tbl.Rows[1].Actions)
	}
	if !reflect.DeepEqual(tbl.Rows[0].Actions, []Action{ActionJoin}) {
		t.Fatalf("expected join action, got %#v", tbl.Rows[0].Actions)
	}
	if ms[0].ID != 1 {
		t.Fatalf("input must not be reordered")
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	got := DepartmentOptions([]model.Department{{Name: "IT"}, {Name: " "}, {Name: "Sales"}}, AllDepartments)
	want := []Option{{Label: AllDepartments}, {Value: "IT", Label: "IT"}, {Value: "Sales", Label: "Sales"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}

	st := StatusOptions("")
	if len(st) != 3 || st[0].Value != "SCHEDULED" || st[2].Label != "Đã kết thúc" {
		t.Fatalf("unexpected status options %#v", st)
	}
}

func TestPageTitles(t *testing.T) {
	t.Parallel()

	want := map[Page]string{
		PageDashboard:   "Dashboard",
		PageMeetings:    "Quản lý Cuộc họp",
		PageDepartments: "Quản lý Phòng ban",
		PageRooms:       "Quản lý Phòng họp",
	}
	for p, title := range want {
		if p.Title() != title {
			t.Fatalf("page %d: got %q want %q", p, p.Title(), title)
		}
	}
}

func TestSanitizeText_KeepsLineBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "csi", in: "a\x1b[2J\x1b[31mb", want: "ab"},
		{name: "osc", in: "x\x1b]0;title\x07y", want: "xy"},
		{name: "crlf", in: "one\r\ntwo  \n\tthree", want: "one\ntwo\n three"},
		{name: "c0 and c1", in: "a\x00b\u0085c\x7f", want: "abc"},
		{name: "blank", in: " \n ", want: ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tc.in); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
