package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/gtd-tracker/modules/api"
	"github.com/example/gtd-tracker/modules/auth"
	"github.com/example/gtd-tracker/modules/notification"
	"github.com/example/gtd-tracker/modules/reminder"
	"github.com/example/gtd-tracker/modules/tracker"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== GTD Task Tracker ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())         // Independent module (provides auth services)
	app.Register(tracker.NewModule())      // Independent module (tasks, next actions, work log)
	app.Register(notification.NewModule()) // Consumes tracker and reminder events
	app.Register(reminder.NewModule())     // Depends on tracker
	app.Register(api.NewModule())          // Depends on auth and tracker

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register               - Register a new user")
	log.Println("  POST   /api/v1/auth/login                  - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh                - Refresh access token")
	log.Println("  GET    /health                             - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/profile                     - Current user profile")
	log.Println("  GET    /api/v1/categories                  - List categories")
	log.Println("  POST   /api/v1/tasks                       - Create a task")
	log.Println("  GET    /api/v1/tasks                       - List tasks (active first)")
	log.Println("  GET    /api/v1/tasks/review                - Tasks due for review")
	log.Println("  GET    /api/v1/tasks/:id                   - Get a task")
	log.Println("  PUT    /api/v1/tasks/:id                   - Update a task")
	log.Println("  DELETE /api/v1/tasks/:id                   - Delete a task")
	log.Println("  PUT    /api/v1/tasks/:id/review            - Set review date")
	log.Println("  POST   /api/v1/tasks/:id/next-actions      - Add a next action")
	log.Println("  GET    /api/v1/tasks/:id/next-actions      - List next actions")
	log.Println("  PUT    /api/v1/next-actions/:id/toggle     - Toggle a next action")
	log.Println("  DELETE /api/v1/next-actions/:id            - Delete a next action")
	log.Println("  POST   /api/v1/tasks/:id/work-done         - Log work on a task")
	log.Println("  POST   /api/v1/next-actions/:id/work-done  - Log work on an action")
	log.Println("  GET    /api/v1/work-done/:id               - Get a work entry")
	log.Println("  PUT    /api/v1/work-done/:id               - Edit a work entry")
	log.Println("  DELETE /api/v1/work-done/:id               - Delete a work entry")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
