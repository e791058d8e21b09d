package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"secretary-cli/internal/handoff"
	"secretary-cli/internal/model"
	"secretary-cli/internal/store"
)

type backend struct {
	mu          sync.Mutex
	departments []model.Department
	rooms       []model.Room
	meetings    []model.Meeting
	requests    []string
	bodies      map[string]map[string]any
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := r.Method + " " + r.URL.Path
	b.requests = append(b.requests, r.Method+" "+r.URL.RequestURI())
	if r.Body != nil {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			if b.bodies == nil {
				b.bodies = map[string]map[string]any{}
			}
			b.bodies[key] = body
		}
	}
	reply := func(v any) { _ = json.NewEncoder(w).Encode(map[string]any{"data": v}) }
	fail := func(code int, msg string) {
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": msg})
	}
	tail := func(prefix string) int64 {
		id, _ := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, prefix), 10, 64)
		return id
	}

	switch {
	case key == "GET /api/departments":
		reply(b.departments)
	case key == "POST /api/departments":
		name, _ := b.bodies[key]["name"].(string)
		for _, d := range b.departments {
			if d.Name == name {
				fail(http.StatusConflict, "Phòng ban đã tồn tại")
				return
			}
		}
		d := model.Department{ID: int64(len(b.departments) + 1), Name: name}
		b.departments = append(b.departments, d)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": d, "message": "Tạo phòng ban thành công"})
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/departments/"):
		reply(nil)
	case key == "GET /api/rooms":
		reply(b.rooms)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/rooms/"):
		reply(b.bodies[key])
	case key == "GET /api/meetings":
		reply(b.meetings)
	case strings.HasPrefix(r.URL.Path, "/api/meetings/statistics"):
		reply(model.PeriodStatistics{Total: 3, Finished: 1})
	case r.Method == http.MethodPatch && strings.HasSuffix(r.URL.Path, "/status"):
		id, _ := strconv.ParseInt(strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/meetings/"), "/status"), 10, 64)
		for i := range b.meetings {
			if b.meetings[i].ID == id {
				b.meetings[i].Status = model.Status(r.URL.Query().Get("status"))
			}
		}
		reply(nil)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/meetings/"):
		if m, ok := model.FindMeeting(b.meetings, tail("/api/meetings/")); ok {
			reply(m)
			return
		}
		fail(http.StatusNotFound, "Không tìm thấy cuộc họp")
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/meetings/"):
		reply(b.bodies[key])
	default:
		fail(http.StatusNotFound, "not found")
	}
}

func (b *backend) seen(req string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.requests {
		if r == req {
			return true
		}
	}
	return false
}

func (b *backend) body(key string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

type harness struct {
	t       *testing.T
	backend *backend
	apiURL  string
	storage string
}

func newHarness(t *testing.T, b *backend) *harness {
	t.Helper()
	t.Setenv("SECRETARY_CONFIG_DIR", t.TempDir())
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return &harness{
		t:       t,
		backend: b,
		apiURL:  srv.URL + "/api",
		storage: filepath.Join(t.TempDir(), "storage.sqlite"),
	}
}

func (h *harness) run(args ...string) (stdout, stderr string, err error) {
	h.t.Helper()
	full := append([]string{"--api-url", h.apiURL, "--storage", h.storage}, args...)
	out, errb, err := runCLI(h.t, full)
	return string(out), string(errb), err
}

func (h *harness) mustRun(args ...string) map[string]any {
	h.t.Helper()
	stdout, stderr, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("command failed: secretary %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, stderr, stdout)
	}
	var env map[string]any
	if err := json.Unmarshal([]byte(stdout), &env); err != nil {
		h.t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s", err, stdout)
	}
	if _, ok := env["data"]; !ok {
		h.t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func TestDepartments_CreateListAndServerError(t *testing.T) {
	h := newHarness(t, &backend{})

	env := h.mustRun("departments", "create", "--name", " Sales ", "--description", "Bán hàng")
	if env["message"] != "Tạo phòng ban thành công" {
		t.Fatalf("expected server message, got %#v", env["message"])
	}
	if body := h.backend.body("POST /api/departments"); body["name"] != "Sales" || body["description"] != "Bán hàng" {
		t.Fatalf("unexpected payload %#v", body)
	}

	list := h.mustRun("departments", "list")
	ds, _ := list["data"].([]any)
	if len(ds) != 1 {
		t.Fatalf("expected one department, got %#v", list["data"])
	}

	_, stderr, err := h.run("departments", "create", "--name", "Sales")
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	if !strings.Contains(stderr, "Phòng ban đã tồn tại") {
		t.Fatalf("expected server message on stderr, got %q", stderr)
	}
}

func TestDelete_RequiresYes(t *testing.T) {
	h := newHarness(t, &backend{departments: []model.Department{{ID: 3, Name: "IT"}}})

	_, stderr, err := h.run("departments", "delete", "3")
	if err == nil || !strings.Contains(stderr, "--yes") {
		t.Fatalf("expected confirmation error, err=%v stderr=%q", err, stderr)
	}
	if h.backend.seen("DELETE /api/departments/3") {
		t.Fatalf("delete must not reach the server without --yes")
	}

	h.mustRun("departments", "delete", "3", "--yes")
	if !h.backend.seen("DELETE /api/departments/3") {
		t.Fatalf("expected DELETE request")
	}
}

func TestRooms_UpdateKeepsUnsetFields(t *testing.T) {
	capacity := 10
	h := newHarness(t, &backend{rooms: []model.Room{{ID: 1, Name: "A1", Location: "Tầng 2", Capacity: &capacity}}})

	h.mustRun("rooms", "update", "1", "--capacity", "30")
	body := h.backend.body("PUT /api/rooms/1")
	if body["name"] != "A1" || body["location"] != "Tầng 2" {
		t.Fatalf("expected unset fields preserved, got %#v", body)
	}
	if body["capacity"] != float64(30) {
		t.Fatalf("expected capacity 30, got %#v", body["capacity"])
	}

	_, _, err := h.run("rooms", "update", "99", "--name", "B")
	if err == nil {
		t.Fatalf("expected lookup error for unknown room")
	}
}

func meetingsFixture() []model.Meeting {
	at := func(s string) model.LocalTime {
		t, _ := model.ParseLocalTime(s)
		return t
	}
	return []model.Meeting{
		{ID: 41, Title: "Giao ban", Department: "IT", Room: "A1", StartTime: at("2024-05-01T08:00"), Status: model.StatusFinished},
		{ID: 42, Title: "Kế hoạch quý", Department: "IT", Room: "B2", Chairman: "An", Secretary: "Bình", StartTime: at("2024-05-01T09:00"), Status: model.StatusScheduled},
		{ID: 43, Title: "Tuyển dụng", Department: "HR", Room: "A1", StartTime: at("2024-05-02T14:00"), Status: model.StatusScheduled},
	}
}

func TestMeetings_ListFilters(t *testing.T) {
	h := newHarness(t, &backend{meetings: meetingsFixture()})

	tests := []struct {
		args []string
		want []float64
	}{
		{nil, []float64{41, 42, 43}},
		{[]string{"--status", "scheduled"}, []float64{42, 43}},
		{[]string{"--status", "SCHEDULED", "--room", "A1"}, []float64{43}},
		{[]string{"--department", "IT", "--date", "2024-05-01"}, []float64{41, 42}},
		{[]string{"--date", "2024-06-01"}, nil},
	}
	for _, tt := range tests {
		env := h.mustRun(append([]string{"meetings", "list"}, tt.args...)...)
		xs, _ := env["data"].([]any)
		var got []float64
		for _, x := range xs {
			got = append(got, x.(map[string]any)["id"].(float64))
		}
		if len(got) != len(tt.want) {
			t.Fatalf("list %v: got ids %v, want %v", tt.args, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("list %v: got ids %v, want %v", tt.args, got, tt.want)
			}
		}
	}

	if _, _, err := h.run("meetings", "list", "--date", "01/05/2024"); err == nil {
		t.Fatalf("expected invalid date error")
	}
}

func TestMeetings_StatusCycle(t *testing.T) {
	h := newHarness(t, &backend{meetings: meetingsFixture()})

	env := h.mustRun("meetings", "status", "MTG-41")
	data := env["data"].(map[string]any)
	if data["previous"] != "FINISHED" || data["status"] != "SCHEDULED" {
		t.Fatalf("expected FINISHED -> SCHEDULED wraparound, got %#v", data)
	}
	if !h.backend.seen("PATCH /api/meetings/41/status?status=SCHEDULED") {
		t.Fatalf("expected PATCH with status query")
	}
	if env["message"] != `Đã chuyển trạng thái sang "Đã lên lịch"` {
		t.Fatalf("unexpected message %#v", env["message"])
	}

	if _, stderr, err := h.run("meetings", "status", "999"); err == nil || !strings.Contains(stderr, "Không tìm thấy thông tin cuộc họp") {
		t.Fatalf("expected lookup failure, err=%v stderr=%q", err, stderr)
	}
}

func TestMeetings_JoinWritesHandoff(t *testing.T) {
	h := newHarness(t, &backend{meetings: meetingsFixture()})

	stdout, stderr, err := h.run("meetings", "join", "42", "--no-open")
	if err != nil {
		t.Fatalf("join: %v\n%s", err, stderr)
	}
	if !strings.Contains(stderr, "/meeting-room.html") {
		t.Fatalf("expected meeting-room URL on stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, `"meetingCode":"MTG-42"`) {
		t.Fatalf("unexpected output %s", stdout)
	}

	s, err := store.OpenLocalStorage(context.Background(), h.storage)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	info, ok, err := handoff.Read(context.Background(), s)
	_ = s.Close()
	if err != nil || !ok {
		t.Fatalf("read handoff: ok=%v err=%v", ok, err)
	}
	if info.MeetingName != "Kế hoạch quý" || info.HostName != "An" || info.StartTime != "09:00 01/05/2024" {
		t.Fatalf("unexpected handoff %#v", info)
	}

	env := h.mustRun("meetings", "handoff")
	if env["data"].(map[string]any)["meetingId"] != float64(42) {
		t.Fatalf("unexpected handoff output %#v", env["data"])
	}
}

func TestMeetings_HandoffMissing(t *testing.T) {
	h := newHarness(t, &backend{})
	if _, stderr, err := h.run("meetings", "handoff"); err == nil || !strings.Contains(stderr, "meetingInfo") {
		t.Fatalf("expected missing handoff error, err=%v stderr=%q", err, stderr)
	}
}

func TestMeetings_UpdateSendsStatusAndKeepsFields(t *testing.T) {
	h := newHarness(t, &backend{meetings: meetingsFixture()})

	h.mustRun("meetings", "update", "42", "--title", "Kế hoạch năm", "--end", "2024-05-01T10:30", "--status", "ongoing")
	body := h.backend.body("PUT /api/meetings/42")
	if body["title"] != "Kế hoạch năm" || body["room"] != "B2" || body["chairman"] != "An" {
		t.Fatalf("unexpected payload %#v", body)
	}
	if body["startTime"] != "2024-05-01T09:00:00" || body["endTime"] != "2024-05-01T10:30:00" {
		t.Fatalf("unexpected times %#v / %#v", body["startTime"], body["endTime"])
	}
	if body["status"] != "ONGOING" {
		t.Fatalf("expected status in update payload, got %#v", body["status"])
	}
}

func TestMeetings_ShowMarkdown(t *testing.T) {
	h := newHarness(t, &backend{meetings: meetingsFixture()})

	stdout, _, err := h.run("meetings", "show", "42", "--markdown")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.HasPrefix(stdout, "# Kế hoạch quý") {
		t.Fatalf("unexpected markdown:\n%s", stdout)
	}

	env := h.mustRun("meetings", "show", "MTG-43")
	if env["code"] != "MTG-43" {
		t.Fatalf("unexpected code %#v", env["code"])
	}
}

func TestStats_Periods(t *testing.T) {
	h := newHarness(t, &backend{})

	h.mustRun("stats", "--month", "2024-05")
	if !h.backend.seen("GET /api/meetings/statistics/month/2024/5") {
		t.Fatalf("expected month statistics request")
	}
	h.mustRun("stats", "--date", "2024-05-01")
	if !h.backend.seen("GET /api/meetings/statistics/date/2024-05-01") {
		t.Fatalf("expected date statistics request")
	}
	if _, _, err := h.run("stats", "--month", "May"); err == nil {
		t.Fatalf("expected invalid month error")
	}
	if _, _, err := h.run("stats", "--year", "2024", "--month", "2024-05"); err == nil {
		t.Fatalf("expected mutually exclusive flag error")
	}
}

func TestPublish_WritesAgenda(t *testing.T) {
	h := newHarness(t, &backend{meetings: meetingsFixture()})
	dir := t.TempDir()

	env := h.mustRun("publish", "--to", dir, "--html", "--department", "IT")
	written, _ := env["data"].(map[string]any)["written"].([]any)
	if len(written) != 6 {
		t.Fatalf("expected agenda + 2 meetings in md and html, got %#v", written)
	}
	b, err := os.ReadFile(filepath.Join(dir, "agenda.md"))
	if err != nil {
		t.Fatalf("read agenda: %v", err)
	}
	if strings.Contains(string(b), "Tuyển dụng") || !strings.Contains(string(b), "Phòng ban: IT") {
		t.Fatalf("unexpected agenda:\n%s", string(b))
	}

	if _, _, err := h.run("publish", "--to", dir); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}

	stdout, _, err := h.run("publish")
	if err != nil || !strings.HasPrefix(stdout, "# Lịch họp") {
		t.Fatalf("expected agenda on stdout, err=%v:\n%s", err, stdout)
	}
}

func TestConfig_SetShowAndPrecedence(t *testing.T) {
	b := &backend{departments: []model.Department{{ID: 1, Name: "IT"}}}
	h := newHarness(t, b)

	h.mustRun("config", "set", "api-url", h.apiURL)
	h.mustRun("config", "set", "timeout", "3s")

	// No --api-url: the config file value is used.
	out, _, err := runCLI(t, []string{"--storage", h.storage, "departments", "list"})
	if err != nil {
		t.Fatalf("list via config url: %v", err)
	}
	if !strings.Contains(string(out), `"IT"`) {
		t.Fatalf("unexpected output %s", out)
	}

	env := h.mustRun("config", "show")
	eff := env["effective"].(map[string]any)
	if eff["timeout"] != "3s" || eff["apiUrl"] != h.apiURL {
		t.Fatalf("unexpected effective config %#v", eff)
	}
	if !strings.HasSuffix(eff["webUrl"].(string), strings.TrimSuffix(h.apiURL, "/api")) {
		t.Fatalf("expected web url derived from api url, got %#v", eff["webUrl"])
	}

	if _, _, err := h.run("config", "set", "colour", "red"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestFormat_EDN(t *testing.T) {
	h := newHarness(t, &backend{departments: []model.Department{{ID: 1, Name: "IT"}}})

	stdout, _, err := h.run("--format", "edn", "departments", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.HasPrefix(stdout, "{:data [") || !strings.Contains(stdout, `:name "IT"`) {
		t.Fatalf("unexpected edn output %q", stdout)
	}
}

func TestLogging_InvalidLevel(t *testing.T) {
	h := newHarness(t, &backend{})
	if _, _, err := h.run("--log-level", "loud", "departments", "list"); err == nil {
		t.Fatalf("expected invalid log level error")
	}
}

func TestLogging_FileReceivesAPIFailures(t *testing.T) {
	h := newHarness(t, &backend{})
	logPath := filepath.Join(t.TempDir(), "secretary.log")

	_, _, err := h.run("--log-file", logPath, "--log-level", "debug", "meetings", "show", "7")
	if err == nil {
		t.Fatalf("expected not found error")
	}
	f, err := os.Open(logPath)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	b, _ := io.ReadAll(f)
	if !strings.Contains(string(b), "api call failed") {
		t.Fatalf("expected api failure in log file, got:\n%s", string(b))
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind, in string
		want     int64
		ok       bool
	}{
		{"meeting", "42", 42, true},
		{"meeting", "MTG-42", 42, true},
		{"meeting", "mtg-7", 7, true},
		{"room", "MTG-42", 0, false},
		{"department", "0", 0, false},
		{"department", "abc", 0, false},
	}
	for _, tt := range tests {
		got, err := parseID(tt.kind, tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Fatalf("parseID(%q, %q) = %d, %v", tt.kind, tt.in, got, err)
		}
	}
}
