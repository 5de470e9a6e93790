package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/example/gtd-tracker/domain/gtd"
	"github.com/go-monolith/mono"
)

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// validReviewDate rejects review dates strictly before today. The check runs
// only when a date is set or changed; past values already stored stay
// readable.
func validReviewDate(reviewOn time.Time) (time.Time, error) {
	day := startOfDay(reviewOn)
	if day.Before(startOfDay(time.Now())) {
		return time.Time{}, gtd.Validation("review_on", "must not be in the past")
	}
	return day, nil
}

// setReviewDate handles the set-review-date service request.
func (m *TrackerModule) setReviewDate(_ context.Context, req SetReviewRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.guard.Task(req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	reviewOn, err := validReviewDate(req.ReviewOn)
	if err != nil {
		return TaskResponse{}, err
	}
	task.ReviewOn = reviewOn
	if err := m.tasks.Save(task); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to update review date: %w", err)
	}
	return toTaskResponse(task, m.categoryName(task.CategoryID)), nil
}

// listDueReviews handles the list-due-reviews service request: the user's
// non-completed tasks whose review date has arrived, soonest first.
func (m *TrackerModule) listDueReviews(_ context.Context, req ListDueReviewsRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.UserID == "" {
		return ListTasksResponse{}, gtd.Validation("user_id", "is required")
	}
	asOf := startOfDay(time.Now())
	if req.AsOf != nil {
		asOf = startOfDay(*req.AsOf)
	}
	tasks, err := m.tasks.ListDueReviews(req.UserID, asOf)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return m.toTaskListing(tasks), nil
}

// sweepDueReviews handles the internal sweep-due-reviews service request
// used by the reminder module. It spans all users and is not exposed over
// HTTP.
func (m *TrackerModule) sweepDueReviews(_ context.Context, req SweepDueReviewsRequest, _ *mono.Msg) (ListTasksResponse, error) {
	asOf := startOfDay(time.Now())
	if req.AsOf != nil {
		asOf = startOfDay(*req.AsOf)
	}
	tasks, err := m.tasks.ListAllDueReviews(asOf)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return m.toTaskListing(tasks), nil
}

// toTaskListing converts tasks to a wire listing with category names.
func (m *TrackerModule) toTaskListing(tasks []*gtd.Task) ListTasksResponse {
	names := m.categoryNames()
	resp := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, task := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(task, names[task.CategoryID]))
	}
	return resp
}
