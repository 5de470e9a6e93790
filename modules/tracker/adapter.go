package tracker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TrackerPort is the interface other modules use to reach the tracker core.
type TrackerPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error)
	GetTask(ctx context.Context, req *GetTaskRequest) (*TaskResponse, error)
	ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, req *DeleteTaskRequest) (*DeleteTaskResponse, error)

	CreateAction(ctx context.Context, req *CreateActionRequest) (*ActionResponse, error)
	GetAction(ctx context.Context, req *GetActionRequest) (*ActionResponse, error)
	ListActions(ctx context.Context, req *ListActionsRequest) (*ListActionsResponse, error)
	ToggleAction(ctx context.Context, req *ToggleActionRequest) (*ToggleActionResponse, error)
	DeleteAction(ctx context.Context, req *DeleteActionRequest) (*DeleteActionResponse, error)

	CreateWork(ctx context.Context, req *CreateWorkRequest) (*WorkResponse, error)
	GetWork(ctx context.Context, req *GetWorkRequest) (*WorkResponse, error)
	ListWork(ctx context.Context, req *ListWorkRequest) (*ListWorkResponse, error)
	UpdateWork(ctx context.Context, req *UpdateWorkRequest) (*WorkResponse, error)
	DeleteWork(ctx context.Context, req *DeleteWorkRequest) (*DeleteWorkResponse, error)

	SetReviewDate(ctx context.Context, req *SetReviewRequest) (*TaskResponse, error)
	ListDueReviews(ctx context.Context, req *ListDueReviewsRequest) (*ListTasksResponse, error)
	SweepDueReviews(ctx context.Context, req *SweepDueReviewsRequest) (*ListTasksResponse, error)

	ListCategories(ctx context.Context) (*ListCategoriesResponse, error)
}

// trackerAdapter wraps the tracker ServiceContainer for type-safe
// cross-module calls.
type trackerAdapter struct {
	container mono.ServiceContainer
}

// NewTrackerAdapter creates a new adapter over the tracker module's service
// container.
func NewTrackerAdapter(container mono.ServiceContainer) TrackerPort {
	if container == nil {
		panic("tracker adapter requires non-nil ServiceContainer")
	}
	return &trackerAdapter{container: container}
}

// call invokes a tracker service and decodes the reply into resp.
func (a *trackerAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService[any, any](
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

func (a *trackerAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "create-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) GetTask(ctx context.Context, req *GetTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "get-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, "list-tasks", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "update-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) DeleteTask(ctx context.Context, req *DeleteTaskRequest) (*DeleteTaskResponse, error) {
	var resp DeleteTaskResponse
	if err := a.call(ctx, "delete-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) CreateAction(ctx context.Context, req *CreateActionRequest) (*ActionResponse, error) {
	var resp ActionResponse
	if err := a.call(ctx, "create-next-action", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) GetAction(ctx context.Context, req *GetActionRequest) (*ActionResponse, error) {
	var resp ActionResponse
	if err := a.call(ctx, "get-next-action", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) ListActions(ctx context.Context, req *ListActionsRequest) (*ListActionsResponse, error) {
	var resp ListActionsResponse
	if err := a.call(ctx, "list-next-actions", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) ToggleAction(ctx context.Context, req *ToggleActionRequest) (*ToggleActionResponse, error) {
	var resp ToggleActionResponse
	if err := a.call(ctx, "toggle-next-action", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) DeleteAction(ctx context.Context, req *DeleteActionRequest) (*DeleteActionResponse, error) {
	var resp DeleteActionResponse
	if err := a.call(ctx, "delete-next-action", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) CreateWork(ctx context.Context, req *CreateWorkRequest) (*WorkResponse, error) {
	var resp WorkResponse
	if err := a.call(ctx, "create-work-done", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) GetWork(ctx context.Context, req *GetWorkRequest) (*WorkResponse, error) {
	var resp WorkResponse
	if err := a.call(ctx, "get-work-done", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) ListWork(ctx context.Context, req *ListWorkRequest) (*ListWorkResponse, error) {
	var resp ListWorkResponse
	if err := a.call(ctx, "list-work-done", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) UpdateWork(ctx context.Context, req *UpdateWorkRequest) (*WorkResponse, error) {
	var resp WorkResponse
	if err := a.call(ctx, "update-work-done", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) DeleteWork(ctx context.Context, req *DeleteWorkRequest) (*DeleteWorkResponse, error) {
	var resp DeleteWorkResponse
	if err := a.call(ctx, "delete-work-done", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) SetReviewDate(ctx context.Context, req *SetReviewRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := a.call(ctx, "set-review-date", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) ListDueReviews(ctx context.Context, req *ListDueReviewsRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, "list-due-reviews", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) SweepDueReviews(ctx context.Context, req *SweepDueReviewsRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := a.call(ctx, "sweep-due-reviews", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *trackerAdapter) ListCategories(ctx context.Context) (*ListCategoriesResponse, error) {
	req := ListCategoriesRequest{}
	var resp ListCategoriesResponse
	if err := a.call(ctx, "list-categories", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
