package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/example/gtd-tracker/domain/gtd"
	"github.com/example/gtd-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Default categories seeded on first start.
var defaultCategories = []string{"Work", "Personal"}

// TrackerModule provides the task/next-action/work-done core: entity store,
// ownership guard, lifecycle engine, work log and review scheduling.
type TrackerModule struct {
	db         *gorm.DB
	dbPath     string
	categories *CategoryRepository
	tasks      *TaskRepository
	actions    *ActionRepository
	work       *WorkRepository
	guard      *Guard
	lifecycle  *Lifecycle
	eventBus   mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*TrackerModule)(nil)
var _ mono.ServiceProviderModule = (*TrackerModule)(nil)
var _ mono.EventEmitterModule = (*TrackerModule)(nil)
var _ mono.HealthCheckableModule = (*TrackerModule)(nil)

// NewModule creates a new TrackerModule.
func NewModule() *TrackerModule {
	dbPath := os.Getenv("TRACKER_DB_PATH")
	if dbPath == "" {
		dbPath = "tracker.db"
	}
	return &TrackerModule{dbPath: dbPath}
}

// Name returns the module name.
func (m *TrackerModule) Name() string {
	return "tracker"
}

// SetEventBus receives the application event bus.
func (m *TrackerModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TrackerModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// Start opens the database, migrates the schema, seeds categories and builds
// the core services.
func (m *TrackerModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&gtd.Category{}, &gtd.Task{}, &gtd.NextAction{}, &gtd.WorkDone{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.categories = NewCategoryRepository(db)
	m.tasks = NewTaskRepository(db)
	m.actions = NewActionRepository(db)
	m.work = NewWorkRepository(db)
	m.guard = NewGuard(m.tasks, m.actions, m.work)
	m.lifecycle = NewLifecycle(m.tasks, m.actions)

	if err := m.categories.Seed(defaultCategories...); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	log.Printf("[tracker] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *TrackerModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[tracker] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TrackerModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers the tracker's request-reply services.
func (m *TrackerModule) RegisterServices(container mono.ServiceContainer) error {
	register := func(name string, err error) error {
		if err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
		return nil
	}

	services := []struct {
		name string
		err  error
	}{
		{"create-task", helper.RegisterTypedRequestReplyService(container, "create-task", json.Unmarshal, json.Marshal, m.createTask)},
		{"get-task", helper.RegisterTypedRequestReplyService(container, "get-task", json.Unmarshal, json.Marshal, m.getTask)},
		{"list-tasks", helper.RegisterTypedRequestReplyService(container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks)},
		{"update-task", helper.RegisterTypedRequestReplyService(container, "update-task", json.Unmarshal, json.Marshal, m.updateTask)},
		{"delete-task", helper.RegisterTypedRequestReplyService(container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask)},
		{"create-next-action", helper.RegisterTypedRequestReplyService(container, "create-next-action", json.Unmarshal, json.Marshal, m.createAction)},
		{"get-next-action", helper.RegisterTypedRequestReplyService(container, "get-next-action", json.Unmarshal, json.Marshal, m.getAction)},
		{"list-next-actions", helper.RegisterTypedRequestReplyService(container, "list-next-actions", json.Unmarshal, json.Marshal, m.listActions)},
		{"toggle-next-action", helper.RegisterTypedRequestReplyService(container, "toggle-next-action", json.Unmarshal, json.Marshal, m.toggleAction)},
		{"delete-next-action", helper.RegisterTypedRequestReplyService(container, "delete-next-action", json.Unmarshal, json.Marshal, m.deleteAction)},
		{"create-work-done", helper.RegisterTypedRequestReplyService(container, "create-work-done", json.Unmarshal, json.Marshal, m.createWork)},
		{"get-work-done", helper.RegisterTypedRequestReplyService(container, "get-work-done", json.Unmarshal, json.Marshal, m.getWork)},
		{"list-work-done", helper.RegisterTypedRequestReplyService(container, "list-work-done", json.Unmarshal, json.Marshal, m.listWork)},
		{"update-work-done", helper.RegisterTypedRequestReplyService(container, "update-work-done", json.Unmarshal, json.Marshal, m.updateWork)},
		{"delete-work-done", helper.RegisterTypedRequestReplyService(container, "delete-work-done", json.Unmarshal, json.Marshal, m.deleteWork)},
		{"set-review-date", helper.RegisterTypedRequestReplyService(container, "set-review-date", json.Unmarshal, json.Marshal, m.setReviewDate)},
		{"list-due-reviews", helper.RegisterTypedRequestReplyService(container, "list-due-reviews", json.Unmarshal, json.Marshal, m.listDueReviews)},
		{"sweep-due-reviews", helper.RegisterTypedRequestReplyService(container, "sweep-due-reviews", json.Unmarshal, json.Marshal, m.sweepDueReviews)},
		{"list-categories", helper.RegisterTypedRequestReplyService(container, "list-categories", json.Unmarshal, json.Marshal, m.listCategories)},
	}
	for _, s := range services {
		if err := register(s.name, s.err); err != nil {
			return err
		}
	}

	log.Printf("[tracker] Registered %d services", len(services))
	return nil
}
