package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"secretary-cli/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return New(srv.URL+"/api", WithLogger(logger)), &logs
}

func TestCall_SendsJSONBodyAndHeaders(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotCT, gotReqID string
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"ok","data":{"id":7,"name":"Sales"}}`)
	})

	env, err := c.CreateDepartment(context.Background(), DepartmentInput{Name: "Sales"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/departments" {
		t.Fatalf("unexpected request %s %s", gotMethod, gotPath)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected json content type, got %q", gotCT)
	}
	if gotReqID == "" {
		t.Fatalf("expected X-Request-ID header")
	}
	if gotBody["name"] != "Sales" || gotBody["description"] != "" {
		t.Fatalf("unexpected body: %#v", gotBody)
	}
	if env.Message != "ok" {
		t.Fatalf("expected envelope message, got %q", env.Message)
	}
}

func TestCall_NoPayloadStillDeclaresContentType(t *testing.T) {
	t.Parallel()

	var gotCT string
	var gotLen int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		gotLen = r.ContentLength
		_, _ = io.WriteString(w, `{"data":[]}`)
	})

	if _, err := c.ListRooms(context.Background()); err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if gotCT != "application/json" {
		t.Fatalf("expected json content type, got %q", gotCT)
	}
	if gotLen > 0 {
		t.Fatalf("expected no body, got content-length %d", gotLen)
	}
}

func TestCall_NonSuccessUsesServerMessage(t *testing.T) {
	t.Parallel()

	c, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"Phòng ban đã tồn tại"}`)
	})

	_, err := c.CreateDepartment(context.Background(), DepartmentInput{Name: "IT"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "Phòng ban đã tồn tại" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if !IsStatus(err, http.StatusConflict) {
		t.Fatalf("expected 409 api error, got %#v", err)
	}
	if !strings.Contains(logs.String(), "api call failed") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}
}

func TestCall_NonSuccessWithoutMessageFallsBack(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `<html>boom</html>`)
	})

	_, err := c.DeleteRoom(context.Background(), 3)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if apiErr.Message != GenericMessage {
		t.Fatalf("expected generic message, got %q", apiErr.Message)
	}
}

func TestCall_TransportErrorIsWrapped(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	var logs bytes.Buffer
	c := New("http://"+addr+"/api", WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	_, err = c.ListMeetings(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure should not be an api error: %v", err)
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected wrapped *net.OpError, got %T: %v", err, err)
	}
	if !strings.Contains(logs.String(), "api call failed") {
		t.Fatalf("expected transport failure to be logged")
	}
}

func TestUpdateMeetingStatus_PatchWithQuery(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotStatus string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotStatus = r.URL.Query().Get("status")
		_, _ = io.WriteString(w, `{"data":{"id":5,"status":"ONGOING"}}`)
	})

	if _, err := c.UpdateMeetingStatus(context.Background(), 5, model.StatusOngoing); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/meetings/5/status" || gotStatus != "ONGOING" {
		t.Fatalf("unexpected request %s %s status=%s", gotMethod, gotPath, gotStatus)
	}
}

func TestListMeetings_DecodesLocalTimesAndMissingData(t *testing.T) {
	t.Parallel()

	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			_, _ = io.WriteString(w, `{"data":[{"id":1,"title":"Standup","department":"IT","room":"A","startTime":"2024-05-01T09:00:00","endTime":"2024-05-01T09:15:00","status":"SCHEDULED"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"message":"empty"}`)
	})

	ms, err := c.ListMeetings(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ms) != 1 || ms[0].Title != "Standup" || ms[0].StartTime.DatePart() != "2024-05-01" {
		t.Fatalf("unexpected meetings: %#v", ms)
	}

	ms, err = c.ListMeetings(context.Background())
	if err != nil {
		t.Fatalf("list 2: %v", err)
	}
	if ms != nil {
		t.Fatalf("expected nil slice for missing data, got %#v", ms)
	}
}

func TestStatisticsByMonth_Path(t *testing.T) {
	t.Parallel()

	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"data":{"total":4,"scheduled":1,"ongoing":1,"finished":2}}`)
	})

	st, err := c.StatisticsByMonth(context.Background(), 2024, 5)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if gotPath != "/api/meetings/statistics/month/2024/5" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if st.Total != 4 || st.Finished != 2 {
		t.Fatalf("unexpected stats %#v", st)
	}
}

func TestCreateMeeting_OmitsStatus(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"data":{}}`)
	})

	start, _ := model.ParseLocalTime("2024-05-01T09:00")
	_, err := c.CreateMeeting(context.Background(), MeetingInput{Title: "Plan", StartTime: start, Status: model.StatusOngoing})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := gotBody["status"]; ok {
		t.Fatalf("create payload must not carry status: %#v", gotBody)
	}
	if gotBody["startTime"] != "2024-05-01T09:00:00" {
		t.Fatalf("unexpected startTime: %#v", gotBody["startTime"])
	}
}
