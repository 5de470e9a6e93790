package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/gtd-tracker/modules/tracker"
)

// mockToggler scripts the server side of a toggle.
type mockToggler struct {
	resp *tracker.ToggleActionResponse
	err  error
}

func (m *mockToggler) ToggleAction(_ context.Context, _ string, _ bool) (*tracker.ToggleActionResponse, error) {
	return m.resp, m.err
}

func testView(client toggler) *TaskView {
	return &TaskView{
		client: client,
		Task: tracker.TaskResponse{
			ID:     "t1",
			Title:  "write report",
			Status: "PENDING",
		},
		Actions: []tracker.ActionResponse{
			{ID: "a1", TaskID: "t1", Title: "draft outline"},
			{ID: "a2", TaskID: "t1", Title: "fill in sections"},
		},
	}
}

func TestTaskView_ToggleSuccessOverwritesWithServerValues(t *testing.T) {
	serverTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	serverCompleted := time.Date(2026, 8, 30, 12, 0, 1, 0, time.UTC)
	view := testView(&mockToggler{
		resp: &tracker.ToggleActionResponse{
			Action: tracker.ActionResponse{
				ID: "a1", TaskID: "t1", Title: "draft outline",
				Completed: true, CompletedAt: &serverTime,
			},
			Task: &tracker.TaskResponse{
				ID: "t1", Title: "write report",
				Status: "COMPLETED", CompletedAt: &serverCompleted,
			},
			AutoCompleted: true,
		},
	})

	if err := view.ToggleAction(context.Background(), "a1", true); err != nil {
		t.Fatalf("ToggleAction() error = %v", err)
	}

	// The server's timestamp wins over the optimistic placeholder.
	if !view.Actions[0].Completed {
		t.Error("action not completed")
	}
	if view.Actions[0].CompletedAt == nil || !view.Actions[0].CompletedAt.Equal(serverTime) {
		t.Errorf("action CompletedAt = %v, want server value %v", view.Actions[0].CompletedAt, serverTime)
	}
	if view.Task.Status != "COMPLETED" {
		t.Errorf("task status = %s, want COMPLETED", view.Task.Status)
	}
	if view.Task.CompletedAt == nil || !view.Task.CompletedAt.Equal(serverCompleted) {
		t.Errorf("task CompletedAt = %v, want server value %v", view.Task.CompletedAt, serverCompleted)
	}
	if view.CompletedCount() != 1 {
		t.Errorf("CompletedCount() = %d, want 1", view.CompletedCount())
	}
}

func TestTaskView_ToggleFailureRollsBack(t *testing.T) {
	completedAt := time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC)
	view := testView(&mockToggler{err: errors.New("store unavailable")})
	view.Actions[0].Completed = true
	view.Actions[0].CompletedAt = &completedAt
	view.Task.Status = "IN_PROGRESS"

	err := view.ToggleAction(context.Background(), "a1", false)
	if err == nil {
		t.Fatal("ToggleAction() error = nil, want failure")
	}

	// Everything the optimistic flip touched is restored exactly.
	if !view.Actions[0].Completed {
		t.Error("rollback lost the completed flag")
	}
	if view.Actions[0].CompletedAt == nil || !view.Actions[0].CompletedAt.Equal(completedAt) {
		t.Errorf("rollback CompletedAt = %v, want %v", view.Actions[0].CompletedAt, completedAt)
	}
	if view.Task.Status != "IN_PROGRESS" {
		t.Errorf("rollback task status = %s, want IN_PROGRESS", view.Task.Status)
	}
}

func TestTaskView_ToggleUnknownAction(t *testing.T) {
	view := testView(&mockToggler{})
	if err := view.ToggleAction(context.Background(), "nope", true); err == nil {
		t.Fatal("ToggleAction() error = nil, want unknown-action failure")
	}
}

func TestClient_ToggleActionHTTP(t *testing.T) {
	completedAt := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/next-actions/a1/toggle" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", r.Header.Get("Authorization"))
		}
		var body map[string]bool
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if !body["completed"] {
			t.Error("body completed = false, want true")
		}

		json.NewEncoder(w).Encode(tracker.ToggleActionResponse{
			Action: tracker.ActionResponse{
				ID: "a1", Completed: true, CompletedAt: &completedAt,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("test-token"))
	resp, err := c.ToggleAction(context.Background(), "a1", true)
	if err != nil {
		t.Fatalf("ToggleAction() error = %v", err)
	}
	if !resp.Action.Completed || resp.Action.CompletedAt == nil {
		t.Errorf("resp.Action = %+v, want completed with timestamp", resp.Action)
	}
}

func TestClient_DecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "not_found",
			"message": "Not found",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetTask(context.Background(), "missing")
	if err == nil {
		t.Fatal("GetTask() error = nil, want APIError")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "not_found" {
		t.Errorf("apiErr = %+v, want 404 not_found", apiErr)
	}
}
