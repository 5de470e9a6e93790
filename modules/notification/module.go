package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/gtd-tracker/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Notification is a delivered in-app notification.
type Notification struct {
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationModule turns task completions and review reminders into
// in-app notifications. Delivery is an in-memory log; a mail or push
// channel would slot in behind the same consumers.
type NotificationModule struct {
	notifications []Notification
	mu            sync.RWMutex
}

var _ mono.Module = (*NotificationModule)(nil)
var _ mono.EventConsumerModule = (*NotificationModule)(nil)
var _ mono.HealthCheckableModule = (*NotificationModule)(nil)

func NewModule() *NotificationModule {
	return &NotificationModule{
		notifications: make([]Notification, 0),
	}
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ReviewDueV1, m.handleReviewDue, m); err != nil {
		return fmt.Errorf("failed to register ReviewDue consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCompleted, ReviewDue")
	return nil
}

func (m *NotificationModule) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	message := fmt.Sprintf("Task %s completed", event.TaskID)
	if event.Source == events.CompletionAuto {
		message = fmt.Sprintf("Task %s completed automatically: all next actions are done", event.TaskID)
	}
	log.Printf("[notification] %s (user %s)", message, event.UserID)
	m.record(Notification{
		TaskID:  event.TaskID,
		UserID:  event.UserID,
		Type:    "task_completed",
		Message: message,
	})
	return nil
}

func (m *NotificationModule) handleReviewDue(_ context.Context, event events.ReviewDueEvent, _ *mono.Msg) error {
	message := fmt.Sprintf("Task '%s' is due for review", event.Title)
	log.Printf("[notification] %s (user %s)", message, event.UserID)
	m.record(Notification{
		TaskID:  event.TaskID,
		UserID:  event.UserID,
		Type:    "review_due",
		Message: message,
	})
	return nil
}

func (m *NotificationModule) record(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.Timestamp = time.Now()
	m.notifications = append(m.notifications, n)
}

// Notifications returns a copy of the delivered notification log.
func (m *NotificationModule) Notifications() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Notification, len(m.notifications))
	copy(result, m.notifications)
	return result
}

func (m *NotificationModule) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for tracker and reminder events")
	return nil
}

func (m *NotificationModule) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}

func (m *NotificationModule) Health(_ context.Context) mono.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"delivered": len(m.notifications),
		},
	}
}
