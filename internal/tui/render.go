package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"secretary-cli/internal/dashboard"
	"secretary-cli/internal/format"
	"secretary-cli/internal/model"
	"secretary-cli/internal/publish"
	"secretary-cli/internal/view"
)

func (m appModel) View() string {
	header := m.viewHeader()
	nav := m.viewNav()
	footer := m.viewFooter()

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(nav) - lipgloss.Height(footer) - 2
	var body string
	switch m.modal {
	case modalForm:
		body = m.form.view(m.width)
	case modalConfirmDelete:
		body = renderConfirmModal(m.width, "Xác nhận", confirmPrompt(m.confirm.kind), "Xóa", "Hủy", m.confirm.focus)
	case modalDetail:
		body = m.viewDetail()
	case modalHelp:
		h := m.help
		h.ShowAll = true
		h.Width = modalBodyWidth(m.width)
		body = renderModalBox(m.width, "Phím tắt", h.View(m.keys))
	default:
		body = m.viewPage()
	}
	if m.modal != modalNone {
		body = placeCenter(m.width, bodyH, body)
	}
	return strings.Join([]string{header, nav, body, footer}, "\n")
}

func confirmPrompt(k dashboard.Kind) string {
	switch k {
	case dashboard.KindDepartment:
		return dashboard.ConfirmDeleteDepartment
	case dashboard.KindRoom:
		return dashboard.ConfirmDeleteRoom
	default:
		return dashboard.ConfirmDeleteMeeting
	}
}

func (m appModel) viewHeader() string {
	left := styleTitle().Render("Secretary") + styleMuted().Render("  "+glyphBullet()+"  ") + lipgloss.NewStyle().Bold(true).Render(m.page.Title())
	right := styleMuted().Render(format.Clock(m.clock))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) viewNav() string {
	var parts []string
	for i, p := range view.Pages {
		label := fmt.Sprintf("%d %s", i+1, p.NavLabel())
		st := lipgloss.NewStyle().Padding(0, 1)
		if p == m.page {
			st = st.Bold(true).Foreground(colorAccentFg).Background(colorAccent)
		} else {
			st = st.Foreground(colorMuted)
		}
		parts = append(parts, st.Render(label))
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.loading {
		line += styleMuted().Render("  đang tải…")
	}
	return line + "\n" + styleMuted().Render(strings.Repeat(glyphHRule(), max(m.width, 1)))
}

func (m appModel) viewFooter() string {
	if m.toast != nil {
		bg := colorSuccessBg
		if m.toast.kind == toastError {
			bg = colorErrorBg
		}
		txt := view.Sanitize(m.toast.title) + ": " + view.Sanitize(m.toast.text)
		return lipgloss.NewStyle().
			Foreground(colorAccentFg).
			Background(bg).
			Bold(true).
			Render(fitLine(" "+txt, max(m.width, 1)))
	}
	h := m.help
	h.ShowAll = false
	return truncate(h.View(m.keys), max(m.width, 1))
}

func (m appModel) viewPage() string {
	switch m.page {
	case view.PageMeetings:
		return m.viewFilterLine() + "\n" + m.meetings.view()
	case view.PageDepartments:
		return m.departments.view()
	case view.PageRooms:
		return m.rooms.view()
	default:
		return m.viewDashboard()
	}
}

func (m appModel) viewFilterLine() string {
	f := m.ctrl.ActiveFilter()
	if f.IsZero() {
		return styleMuted().Render("Bộ lọc: tất cả (f: lọc)")
	}
	var parts []string
	if f.Status != "" {
		parts = append(parts, "trạng thái="+f.Status.Label())
	}
	if f.Department != "" {
		parts = append(parts, "phòng ban="+view.Sanitize(f.Department))
	}
	if f.Room != "" {
		parts = append(parts, "phòng họp="+view.Sanitize(f.Room))
	}
	if f.Date != "" {
		parts = append(parts, "ngày="+f.Date)
	}
	return lipgloss.NewStyle().Foreground(colorAccent).Render("Bộ lọc: "+strings.Join(parts, ", ")) + styleMuted().Render("  (F: bỏ lọc)")
}

type statCard struct {
	label string
	value int64
	color lipgloss.TerminalColor
}

func (m appModel) viewDashboard() string {
	st := m.ctrl.Statistics()
	rows := [][]statCard{
		{
			{"Tổng số cuộc họp", st.TotalMeetings, colorAccent},
			{model.StatusScheduled.Label(), st.ScheduledMeetings, colorScheduled},
			{model.StatusOngoing.Label(), st.OngoingMeetings, colorOngoing},
			{model.StatusFinished.Label(), st.FinishedMeetings, colorFinished},
		},
		{
			{"Hôm nay", st.MeetingsToday, colorMuted},
			{"Tuần này", st.MeetingsThisWeek, colorMuted},
			{"Tháng này", st.MeetingsThisMonth, colorMuted},
			{"Năm nay", st.MeetingsThisYear, colorMuted},
		},
	}
	cardW := (m.width - 8) / 4
	if cardW < 14 {
		cardW = 14
	}
	var blocks []string
	for _, row := range rows {
		var cards []string
		for _, c := range row {
			cards = append(cards, lipgloss.NewStyle().
				Width(cardW).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(c.color).
				Padding(0, 1).
				Render(lipgloss.NewStyle().Bold(true).Foreground(c.color).Render(fmt.Sprintf("%d", c.value))+"\n"+styleMuted().Render(truncate(c.label, cardW-2))))
		}
		blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if g := groupedLine("Theo phòng ban", st.ByDepartment); g != "" {
		blocks = append(blocks, g)
	}
	if g := groupedLine("Theo phòng họp", st.ByRoom); g != "" {
		blocks = append(blocks, g)
	}

	blocks = append(blocks, "", lipgloss.NewStyle().Bold(true).Render("Cuộc họp gần đây"), m.recent.view())
	return strings.Join(blocks, "\n")
}

// groupedLine renders a statistics map as "label: a 3, b 1", largest first.
func groupedLine(label string, counts map[string]int64) string {
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", view.Sanitize(k), counts[k]))
	}
	return styleMuted().Render(label+": ") + strings.Join(parts, ", ")
}

func (m appModel) viewDetail() string {
	mt, ok := m.selectedMeeting()
	if !ok {
		return renderModalBox(m.width, "Chi tiết", dashboard.MsgMeetingNotFound)
	}
	bodyW := modalBodyWidth(m.width)
	md := renderMarkdown(publish.RenderMeetingMarkdown(mt), bodyW)
	badge := view.StatusBadge(mt.Status)
	content := styleBadge(badge).Render(badge.Label) + "\n" + md + "\n\n" +
		styleMuted().Render("o: vào phòng họp   s: đổi trạng thái   esc: đóng")
	return renderModalBox(m.width, glyphSelected()+" "+view.Sanitize(mt.Title), content)
}
