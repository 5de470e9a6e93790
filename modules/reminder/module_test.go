package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/gtd-tracker/events"
	"github.com/example/gtd-tracker/modules/tracker"
)

func TestDailySpec(t *testing.T) {
	tests := []struct {
		name    string
		timeStr string
		want    string
		wantErr bool
	}{
		{
			name:    "morning",
			timeStr: "08:00",
			want:    "0 8 * * *",
		},
		{
			name:    "midnight",
			timeStr: "00:00",
			want:    "0 0 * * *",
		},
		{
			name:    "end of day",
			timeStr: "23:59",
			want:    "59 23 * * *",
		},
		{
			name:    "missing colon",
			timeStr: "0800",
			wantErr: true,
		},
		{
			name:    "hour out of range",
			timeStr: "24:00",
			wantErr: true,
		},
		{
			name:    "minute out of range",
			timeStr: "08:60",
			wantErr: true,
		},
		{
			name:    "not numeric",
			timeStr: "eight:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dailySpec(tt.timeStr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("dailySpec(%q) error = %v, wantErr %v", tt.timeStr, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("dailySpec(%q) = %q, want %q", tt.timeStr, got, tt.want)
			}
		})
	}
}

type stubSweeper struct {
	resp  *tracker.ListTasksResponse
	err   error
	calls int
}

func (s *stubSweeper) SweepDueReviews(context.Context, *tracker.SweepDueReviewsRequest) (*tracker.ListTasksResponse, error) {
	s.calls++
	return s.resp, s.err
}

func dueTask(id, userID, title string) tracker.TaskResponse {
	return tracker.TaskResponse{
		ID:       id,
		UserID:   userID,
		Title:    title,
		ReviewOn: time.Now(),
		Status:   "PENDING",
	}
}

func TestRunSweep_PublishesOneEventPerDueTask(t *testing.T) {
	sweeper := &stubSweeper{
		resp: &tracker.ListTasksResponse{
			Tasks: []tracker.TaskResponse{
				dueTask("task-1", "user-1", "Plan sprint"),
				dueTask("task-2", "user-1", "File taxes"),
				dueTask("task-3", "user-2", "Renew passport"),
			},
			Total: 3,
		},
	}

	var published []events.ReviewDueEvent
	m := NewModule()
	m.tracker = sweeper
	m.publish = func(event events.ReviewDueEvent) error {
		published = append(published, event)
		return nil
	}

	m.runSweep()

	if sweeper.calls != 1 {
		t.Fatalf("sweep calls = %d, want 1", sweeper.calls)
	}
	if len(published) != 3 {
		t.Fatalf("published %d events, want 3", len(published))
	}
	for i, want := range []struct{ taskID, userID, title string }{
		{"task-1", "user-1", "Plan sprint"},
		{"task-2", "user-1", "File taxes"},
		{"task-3", "user-2", "Renew passport"},
	} {
		got := published[i]
		if got.TaskID != want.taskID || got.UserID != want.userID || got.Title != want.title {
			t.Errorf("event %d = {%s %s %q}, want {%s %s %q}",
				i, got.TaskID, got.UserID, got.Title, want.taskID, want.userID, want.title)
		}
	}
}

func TestRunSweep_PublishFailureSkipsOnlyThatTask(t *testing.T) {
	sweeper := &stubSweeper{
		resp: &tracker.ListTasksResponse{
			Tasks: []tracker.TaskResponse{
				dueTask("task-1", "user-1", "First"),
				dueTask("task-2", "user-1", "Second"),
				dueTask("task-3", "user-1", "Third"),
			},
			Total: 3,
		},
	}

	var published []string
	m := NewModule()
	m.tracker = sweeper
	m.publish = func(event events.ReviewDueEvent) error {
		if event.TaskID == "task-2" {
			return errors.New("bus unavailable")
		}
		published = append(published, event.TaskID)
		return nil
	}

	m.runSweep()

	if len(published) != 2 {
		t.Fatalf("published = %v, want 2 events", published)
	}
	if published[0] != "task-1" || published[1] != "task-3" {
		t.Errorf("published = %v, want [task-1 task-3]", published)
	}
}

func TestRunSweep_NoDueTasksPublishesNothing(t *testing.T) {
	m := NewModule()
	m.tracker = &stubSweeper{resp: &tracker.ListTasksResponse{Total: 0}}
	m.publish = func(events.ReviewDueEvent) error {
		t.Error("publish called with no due tasks")
		return nil
	}

	m.runSweep()
}

func TestRunSweep_SweepErrorPublishesNothing(t *testing.T) {
	m := NewModule()
	m.tracker = &stubSweeper{err: errors.New("tracker unavailable")}
	m.publish = func(events.ReviewDueEvent) error {
		t.Error("publish called after sweep failure")
		return nil
	}

	m.runSweep()
}

func TestRunSweep_NilBusIsSafe(t *testing.T) {
	m := NewModule()
	m.tracker = &stubSweeper{
		resp: &tracker.ListTasksResponse{
			Tasks: []tracker.TaskResponse{dueTask("task-1", "user-1", "Only")},
			Total: 1,
		},
	}

	// The default publish path must tolerate an unset bus.
	m.runSweep()
}

func TestNewModuleDefaults(t *testing.T) {
	m := NewModule()
	if m.sweepTime != defaultSweepTime {
		t.Errorf("sweepTime = %q, want %q", m.sweepTime, defaultSweepTime)
	}
	if m.Name() != "reminder" {
		t.Errorf("Name() = %q, want reminder", m.Name())
	}
	deps := m.Dependencies()
	if len(deps) != 1 || deps[0] != "tracker" {
		t.Errorf("Dependencies() = %v, want [tracker]", deps)
	}
}
