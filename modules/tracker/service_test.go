package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/example/gtd-tracker/domain/gtd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestModule builds a TrackerModule over an in-memory store with the
// default categories seeded and no event bus.
func setupTestModule(t *testing.T) *TrackerModule {
	t.Helper()

	db := setupTestDB(t)
	m := &TrackerModule{db: db}
	m.categories = NewCategoryRepository(db)
	m.tasks = NewTaskRepository(db)
	m.actions = NewActionRepository(db)
	m.work = NewWorkRepository(db)
	m.guard = NewGuard(m.tasks, m.actions, m.work)
	m.lifecycle = NewLifecycle(m.tasks, m.actions)

	require.NoError(t, m.categories.Seed(defaultCategories...))
	return m
}

func seedCategoryID(t *testing.T, m *TrackerModule) string {
	t.Helper()
	categories, err := m.categories.FindAll()
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	return categories[0].ID
}

func createTestTask(t *testing.T, m *TrackerModule, userID string, autoComplete bool) TaskResponse {
	t.Helper()
	task, err := m.createTask(context.Background(), CreateTaskRequest{
		UserID:     userID,
		Title:      "write report",
		CategoryID: seedCategoryID(t, m),
	}, nil)
	require.NoError(t, err)

	if autoComplete {
		enabled := true
		task, err = m.updateTask(context.Background(), UpdateTaskRequest{
			UserID:       userID,
			TaskID:       task.ID,
			AutoComplete: &enabled,
		}, nil)
		require.NoError(t, err)
	}
	return task
}

func TestCreateTask_Validation(t *testing.T) {
	m := setupTestModule(t)
	categoryID := seedCategoryID(t, m)

	_, err := m.createTask(context.Background(), CreateTaskRequest{
		UserID:     "u1",
		Title:      "   ",
		CategoryID: categoryID,
	}, nil)
	var validationErr *gtd.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	_, err = m.createTask(context.Background(), CreateTaskRequest{
		UserID:     "u1",
		Title:      "valid",
		CategoryID: "no-such-category",
	}, nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "category_id", validationErr.Field)
}

func TestCreateTask_Defaults(t *testing.T) {
	m := setupTestModule(t)

	task := createTestTask(t, m, "u1", false)
	assert.Equal(t, string(gtd.StatusPending), task.Status)
	assert.False(t, task.AutoComplete)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, startOfDay(time.Now()), task.ReviewOn.Local())
	assert.NotEmpty(t, task.CategoryName)
}

func TestUpdateTask_ManualCompletion(t *testing.T) {
	m := setupTestModule(t)
	task := createTestTask(t, m, "u1", false)

	status := string(gtd.StatusCompleted)
	updated, err := m.updateTask(context.Background(), UpdateTaskRequest{
		UserID: "u1",
		TaskID: task.ID,
		Status: &status,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(gtd.StatusCompleted), updated.Status)
	require.NotNil(t, updated.CompletedAt)

	// Moving away from COMPLETED clears the stamp.
	status = string(gtd.StatusInProgress)
	updated, err = m.updateTask(context.Background(), UpdateTaskRequest{
		UserID: "u1",
		TaskID: task.ID,
		Status: &status,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(gtd.StatusInProgress), updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func TestUpdateTask_OwnershipScoped(t *testing.T) {
	m := setupTestModule(t)
	task := createTestTask(t, m, "owner", false)

	title := "hijacked"
	_, err := m.updateTask(context.Background(), UpdateTaskRequest{
		UserID: "intruder",
		TaskID: task.ID,
		Title:  &title,
	}, nil)
	assert.ErrorIs(t, err, gtd.ErrNotFound)

	// The target is unchanged.
	got, err := m.getTask(context.Background(), GetTaskRequest{UserID: "owner", TaskID: task.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, "write report", got.Title)
}

func TestToggleActionService_Cascade(t *testing.T) {
	m := setupTestModule(t)
	task := createTestTask(t, m, "u1", true)

	var actionIDs []string
	for _, title := range []string{"draft outline", "fill in sections"} {
		action, err := m.createAction(context.Background(), CreateActionRequest{
			UserID: "u1",
			TaskID: task.ID,
			Title:  title,
		}, nil)
		require.NoError(t, err)
		actionIDs = append(actionIDs, action.ID)
	}

	resp, err := m.toggleAction(context.Background(), ToggleActionRequest{
		UserID:    "u1",
		ActionID:  actionIDs[0],
		Completed: true,
	}, nil)
	require.NoError(t, err)
	assert.False(t, resp.AutoCompleted)
	assert.Nil(t, resp.Task)
	assert.True(t, resp.Action.Completed)
	require.NotNil(t, resp.Action.CompletedAt)

	resp, err = m.toggleAction(context.Background(), ToggleActionRequest{
		UserID:    "u1",
		ActionID:  actionIDs[1],
		Completed: true,
	}, nil)
	require.NoError(t, err)
	assert.True(t, resp.AutoCompleted)
	require.NotNil(t, resp.Task)
	assert.Equal(t, string(gtd.StatusCompleted), resp.Task.Status)
	assert.NotNil(t, resp.Task.CompletedAt)

	// Reverting one action leaves the completed task alone.
	resp, err = m.toggleAction(context.Background(), ToggleActionRequest{
		UserID:    "u1",
		ActionID:  actionIDs[0],
		Completed: false,
	}, nil)
	require.NoError(t, err)
	assert.False(t, resp.AutoCompleted)
	assert.Nil(t, resp.Task)

	got, err := m.getTask(context.Background(), GetTaskRequest{UserID: "u1", TaskID: task.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(gtd.StatusCompleted), got.Status)
}

func TestToggleActionService_ZeroActionsNeverAutoComplete(t *testing.T) {
	m := setupTestModule(t)
	task := createTestTask(t, m, "u1", true)

	got, err := m.getTask(context.Background(), GetTaskRequest{UserID: "u1", TaskID: task.ID}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(gtd.StatusPending), got.Status)

	// Manual completion is the only path for an actionless task.
	status := string(gtd.StatusCompleted)
	updated, err := m.updateTask(context.Background(), UpdateTaskRequest{
		UserID: "u1",
		TaskID: task.ID,
		Status: &status,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, string(gtd.StatusCompleted), updated.Status)
}

func TestDeleteTaskService_Cascades(t *testing.T) {
	m := setupTestModule(t)
	task := createTestTask(t, m, "u1", false)

	action, err := m.createAction(context.Background(), CreateActionRequest{
		UserID: "u1",
		TaskID: task.ID,
		Title:  "step one",
	}, nil)
	require.NoError(t, err)

	work, err := m.createWork(context.Background(), CreateWorkRequest{
		UserID:      "u1",
		Parent:      gtd.ActionParent(action.ID),
		Description: "spent an hour",
	}, nil)
	require.NoError(t, err)

	_, err = m.deleteTask(context.Background(), DeleteTaskRequest{UserID: "intruder", TaskID: task.ID}, nil)
	assert.ErrorIs(t, err, gtd.ErrNotFound)

	resp, err := m.deleteTask(context.Background(), DeleteTaskRequest{UserID: "u1", TaskID: task.ID}, nil)
	require.NoError(t, err)
	assert.True(t, resp.Deleted)

	_, err = m.getAction(context.Background(), GetActionRequest{UserID: "u1", ActionID: action.ID}, nil)
	assert.ErrorIs(t, err, gtd.ErrNotFound)
	_, err = m.getWork(context.Background(), GetWorkRequest{UserID: "u1", WorkID: work.ID}, nil)
	assert.ErrorIs(t, err, gtd.ErrNotFound)
}

func TestCreateWork_Validation(t *testing.T) {
	m := setupTestModule(t)
	task := createTestTask(t, m, "u1", false)

	var validationErr *gtd.ValidationError

	_, err := m.createWork(context.Background(), CreateWorkRequest{
		UserID:      "u1",
		Parent:      gtd.TaskParent(task.ID),
		Description: "   \t ",
	}, nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "description", validationErr.Field)

	negative := -0.5
	_, err = m.createWork(context.Background(), CreateWorkRequest{
		UserID:      "u1",
		Parent:      gtd.TaskParent(task.ID),
		Description: "real work",
		HoursSpent:  &negative,
	}, nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "hours_spent", validationErr.Field)

	_, err = m.createWork(context.Background(), CreateWorkRequest{
		UserID:      "u1",
		Parent:      gtd.WorkParent{},
		Description: "no parent",
	}, nil)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "parent", validationErr.Field)

	// Nothing was persisted by the rejected requests.
	list, err := m.listWork(context.Background(), ListWorkRequest{
		UserID: "u1",
		Parent: gtd.TaskParent(task.ID),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}

func TestWorkParentImmutable(t *testing.T) {
	m := setupTestModule(t)
	task := createTestTask(t, m, "u1", false)

	work, err := m.createWork(context.Background(), CreateWorkRequest{
		UserID:      "u1",
		Parent:      gtd.TaskParent(task.ID),
		Description: "first pass",
	}, nil)
	require.NoError(t, err)

	updated, err := m.updateWork(context.Background(), UpdateWorkRequest{
		UserID:      "u1",
		WorkID:      work.ID,
		Description: "second pass",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "second pass", updated.Description)
	assert.Equal(t, work.Parent, updated.Parent)
}

func TestSetReviewDateService(t *testing.T) {
	m := setupTestModule(t)
	task := createTestTask(t, m, "u1", false)

	yesterday := time.Now().AddDate(0, 0, -1)
	_, err := m.setReviewDate(context.Background(), SetReviewRequest{
		UserID:   "u1",
		TaskID:   task.ID,
		ReviewOn: yesterday,
	}, nil)
	var validationErr *gtd.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "review_on", validationErr.Field)

	today := time.Now()
	updated, err := m.setReviewDate(context.Background(), SetReviewRequest{
		UserID:   "u1",
		TaskID:   task.ID,
		ReviewOn: today,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, startOfDay(today), updated.ReviewOn.Local())

	// A task due today shows up in the review listing.
	due, err := m.listDueReviews(context.Background(), ListDueReviewsRequest{UserID: "u1"}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, due.Total)
	assert.Equal(t, task.ID, due.Tasks[0].ID)
}

func TestSweepDueReviews_SpansUsers(t *testing.T) {
	m := setupTestModule(t)
	taskA := createTestTask(t, m, "alice", false)
	taskB := createTestTask(t, m, "bob", false)

	due, err := m.sweepDueReviews(context.Background(), SweepDueReviewsRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, due.Total)

	ids := map[string]bool{}
	for _, task := range due.Tasks {
		ids[task.ID] = true
	}
	assert.True(t, ids[taskA.ID])
	assert.True(t, ids[taskB.ID])
}
