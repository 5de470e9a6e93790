package reminder

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/example/gtd-tracker/events"
	"github.com/example/gtd-tracker/modules/tracker"
	"github.com/go-monolith/mono"
	"github.com/robfig/cron/v3"
)

const defaultSweepTime = "08:00"

// reviewSweeper is the slice of the tracker port the sweep needs.
type reviewSweeper interface {
	SweepDueReviews(ctx context.Context, req *tracker.SweepDueReviewsRequest) (*tracker.ListTasksResponse, error)
}

// ReminderModule runs the daily review sweep. Each morning it asks the
// tracker for every task whose review date has arrived and publishes a
// ReviewDue event per task.
type ReminderModule struct {
	cron      *cron.Cron
	sweepTime string
	tracker   reviewSweeper
	eventBus  mono.EventBus
	publish   func(events.ReviewDueEvent) error

	sweeps int64
}

// Compile-time interface checks.
var _ mono.Module = (*ReminderModule)(nil)
var _ mono.DependentModule = (*ReminderModule)(nil)
var _ mono.EventEmitterModule = (*ReminderModule)(nil)
var _ mono.HealthCheckableModule = (*ReminderModule)(nil)

// NewModule creates a new ReminderModule. The sweep time comes from
// REVIEW_SWEEP_TIME in HH:MM form.
func NewModule() *ReminderModule {
	sweepTime := os.Getenv("REVIEW_SWEEP_TIME")
	if sweepTime == "" {
		sweepTime = defaultSweepTime
	}
	m := &ReminderModule{sweepTime: sweepTime}
	m.publish = m.publishToBus
	return m
}

// Name returns the module name.
func (m *ReminderModule) Name() string {
	return "reminder"
}

// Dependencies returns the list of module dependencies.
func (m *ReminderModule) Dependencies() []string {
	return []string{"tracker"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *ReminderModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "tracker" {
		m.tracker = tracker.NewTrackerAdapter(container)
	}
}

// SetEventBus receives the application event bus.
func (m *ReminderModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *ReminderModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ReviewDueV1.ToBase(),
	}
}

// Start schedules the daily sweep.
func (m *ReminderModule) Start(_ context.Context) error {
	if m.tracker == nil {
		return fmt.Errorf("tracker dependency not set")
	}

	spec, err := dailySpec(m.sweepTime)
	if err != nil {
		return fmt.Errorf("invalid REVIEW_SWEEP_TIME: %w", err)
	}

	m.cron = cron.New(cron.WithLocation(time.Local))
	if _, err := m.cron.AddFunc(spec, m.runSweep); err != nil {
		return fmt.Errorf("failed to schedule review sweep: %w", err)
	}
	m.cron.Start()

	log.Printf("[reminder] Review sweep scheduled daily at %s", m.sweepTime)
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (m *ReminderModule) Stop(_ context.Context) error {
	if m.cron == nil {
		return nil
	}
	log.Println("[reminder] Stopping review sweep scheduler...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	return nil
}

// Health returns the health status of the module.
func (m *ReminderModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.cron != nil,
		Message: "operational",
		Details: map[string]any{
			"sweep_time": m.sweepTime,
			"sweeps_run": atomic.LoadInt64(&m.sweeps),
		},
	}
}

// runSweep fetches due reviews across all users and publishes one ReviewDue
// event per task. A sweep failure is logged and retried on the next tick.
func (m *ReminderModule) runSweep() {
	atomic.AddInt64(&m.sweeps, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := m.tracker.SweepDueReviews(ctx, &tracker.SweepDueReviewsRequest{})
	if err != nil {
		log.Printf("[reminder] Review sweep failed: %v", err)
		return
	}
	if resp.Total == 0 {
		log.Println("[reminder] Review sweep found no due tasks")
		return
	}

	published := 0
	for _, task := range resp.Tasks {
		event := events.ReviewDueEvent{
			TaskID:   task.ID,
			UserID:   task.UserID,
			Title:    task.Title,
			ReviewOn: task.ReviewOn,
		}
		if err := m.publish(event); err != nil {
			log.Printf("[reminder] Warning: failed to publish ReviewDue for task %s: %v", task.ID, err)
			continue
		}
		published++
	}
	log.Printf("[reminder] Review sweep published %d/%d reminders", published, resp.Total)
}

// publishToBus emits a ReviewDue event. A nil bus means events are disabled.
func (m *ReminderModule) publishToBus(event events.ReviewDueEvent) error {
	if m.eventBus == nil {
		return nil
	}
	return events.ReviewDueV1.Publish(m.eventBus, event, nil)
}

// dailySpec turns an HH:MM time into a cron expression.
func dailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
