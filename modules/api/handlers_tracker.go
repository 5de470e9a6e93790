package api

import (
	"github.com/example/gtd-tracker/domain/gtd"
	"github.com/example/gtd-tracker/modules/tracker"
	"github.com/gofiber/fiber/v2"
)

// CreateTask handles POST /api/v1/tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var body CreateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := tracker.CreateTaskRequest{
		UserID:      currentUserID(c),
		Title:       body.Title,
		Description: body.Description,
		CategoryID:  body.CategoryID,
		Priority:    body.Priority,
	}
	if body.DueDate != "" {
		due, err := parseDate(body.DueDate)
		if err != nil {
			return badRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		}
		req.DueDate = &due
	}

	resp, err := h.tracker.CreateTask(c.UserContext(), &req)
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTasks handles GET /api/v1/tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	resp, err := h.tracker.ListTasks(c.UserContext(), &tracker.ListTasksRequest{
		UserID: currentUserID(c),
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTask handles GET /api/v1/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	resp, err := h.tracker.GetTask(c.UserContext(), &tracker.GetTaskRequest{
		UserID: currentUserID(c),
		TaskID: c.Params("id"),
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTask handles PUT /api/v1/tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var body UpdateTaskBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	req := tracker.UpdateTaskRequest{
		UserID:       currentUserID(c),
		TaskID:       c.Params("id"),
		Title:        body.Title,
		Description:  body.Description,
		CategoryID:   body.CategoryID,
		Priority:     body.Priority,
		Status:       body.Status,
		AutoComplete: body.AutoComplete,
	}
	if body.DueDate != nil {
		due, err := parseDate(*body.DueDate)
		if err != nil {
			return badRequest(c, "Invalid due_date, expected YYYY-MM-DD")
		}
		req.DueDate = &due
	}
	if body.ReviewOn != nil {
		review, err := parseDate(*body.ReviewOn)
		if err != nil {
			return badRequest(c, "Invalid review_on, expected YYYY-MM-DD")
		}
		req.ReviewOn = &review
	}

	resp, err := h.tracker.UpdateTask(c.UserContext(), &req)
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask handles DELETE /api/v1/tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	resp, err := h.tracker.DeleteTask(c.UserContext(), &tracker.DeleteTaskRequest{
		UserID: currentUserID(c),
		TaskID: c.Params("id"),
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// SetReviewDate handles PUT /api/v1/tasks/:id/review.
func (h *Handlers) SetReviewDate(c *fiber.Ctx) error {
	var body struct {
		ReviewOn string `json:"review_on"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if body.ReviewOn == "" {
		return badRequest(c, "review_on is required")
	}
	review, err := parseDate(body.ReviewOn)
	if err != nil {
		return badRequest(c, "Invalid review_on, expected YYYY-MM-DD")
	}

	resp, err := h.tracker.SetReviewDate(c.UserContext(), &tracker.SetReviewRequest{
		UserID:   currentUserID(c),
		TaskID:   c.Params("id"),
		ReviewOn: review,
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListDueReviews handles GET /api/v1/tasks/review. An optional as_of query
// parameter moves the reference day.
func (h *Handlers) ListDueReviews(c *fiber.Ctx) error {
	req := tracker.ListDueReviewsRequest{UserID: currentUserID(c)}
	if asOf := c.Query("as_of"); asOf != "" {
		day, err := parseDate(asOf)
		if err != nil {
			return badRequest(c, "Invalid as_of, expected YYYY-MM-DD")
		}
		req.AsOf = &day
	}

	resp, err := h.tracker.ListDueReviews(c.UserContext(), &req)
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateAction handles POST /api/v1/tasks/:id/next-actions.
func (h *Handlers) CreateAction(c *fiber.Ctx) error {
	var body CreateActionBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.tracker.CreateAction(c.UserContext(), &tracker.CreateActionRequest{
		UserID: currentUserID(c),
		TaskID: c.Params("id"),
		Title:  body.Title,
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListActions handles GET /api/v1/tasks/:id/next-actions.
func (h *Handlers) ListActions(c *fiber.Ctx) error {
	resp, err := h.tracker.ListActions(c.UserContext(), &tracker.ListActionsRequest{
		UserID: currentUserID(c),
		TaskID: c.Params("id"),
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetAction handles GET /api/v1/next-actions/:id.
func (h *Handlers) GetAction(c *fiber.Ctx) error {
	resp, err := h.tracker.GetAction(c.UserContext(), &tracker.GetActionRequest{
		UserID:   currentUserID(c),
		ActionID: c.Params("id"),
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ToggleAction handles PUT /api/v1/next-actions/:id/toggle.
func (h *Handlers) ToggleAction(c *fiber.Ctx) error {
	var body ToggleActionBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.tracker.ToggleAction(c.UserContext(), &tracker.ToggleActionRequest{
		UserID:    currentUserID(c),
		ActionID:  c.Params("id"),
		Completed: body.Completed,
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteAction handles DELETE /api/v1/next-actions/:id.
func (h *Handlers) DeleteAction(c *fiber.Ctx) error {
	resp, err := h.tracker.DeleteAction(c.UserContext(), &tracker.DeleteActionRequest{
		UserID:   currentUserID(c),
		ActionID: c.Params("id"),
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateTaskWork handles POST /api/v1/tasks/:id/work-done.
func (h *Handlers) CreateTaskWork(c *fiber.Ctx) error {
	return h.createWork(c, gtd.TaskParent(c.Params("id")))
}

// CreateActionWork handles POST /api/v1/next-actions/:id/work-done.
func (h *Handlers) CreateActionWork(c *fiber.Ctx) error {
	return h.createWork(c, gtd.ActionParent(c.Params("id")))
}

func (h *Handlers) createWork(c *fiber.Ctx, parent gtd.WorkParent) error {
	var body CreateWorkBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.tracker.CreateWork(c.UserContext(), &tracker.CreateWorkRequest{
		UserID:      currentUserID(c),
		Parent:      parent,
		Description: body.Description,
		HoursSpent:  body.HoursSpent,
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListTaskWork handles GET /api/v1/tasks/:id/work-done.
func (h *Handlers) ListTaskWork(c *fiber.Ctx) error {
	return h.listWork(c, gtd.TaskParent(c.Params("id")))
}

// ListActionWork handles GET /api/v1/next-actions/:id/work-done.
func (h *Handlers) ListActionWork(c *fiber.Ctx) error {
	return h.listWork(c, gtd.ActionParent(c.Params("id")))
}

func (h *Handlers) listWork(c *fiber.Ctx, parent gtd.WorkParent) error {
	resp, err := h.tracker.ListWork(c.UserContext(), &tracker.ListWorkRequest{
		UserID: currentUserID(c),
		Parent: parent,
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetWork handles GET /api/v1/work-done/:id.
func (h *Handlers) GetWork(c *fiber.Ctx) error {
	resp, err := h.tracker.GetWork(c.UserContext(), &tracker.GetWorkRequest{
		UserID: currentUserID(c),
		WorkID: c.Params("id"),
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateWork handles PUT /api/v1/work-done/:id.
func (h *Handlers) UpdateWork(c *fiber.Ctx) error {
	var body UpdateWorkBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.tracker.UpdateWork(c.UserContext(), &tracker.UpdateWorkRequest{
		UserID:      currentUserID(c),
		WorkID:      c.Params("id"),
		Description: body.Description,
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteWork handles DELETE /api/v1/work-done/:id.
func (h *Handlers) DeleteWork(c *fiber.Ctx) error {
	resp, err := h.tracker.DeleteWork(c.UserContext(), &tracker.DeleteWorkRequest{
		UserID: currentUserID(c),
		WorkID: c.Params("id"),
	})
	if err != nil {
		return h.handleTrackerError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}
