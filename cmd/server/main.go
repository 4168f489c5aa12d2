/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the crew scheduling server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present), parse command-line flags
  2. Initialize SQLite store
  3. Wire notification outbox (store + optional SMTP mailer)
  4. Create scheduling service and API handler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: scheduler.db)
           Use ":memory:" for in-memory database

ENVIRONMENT:
  JWT_SECRET   HS256 signing key (required)
  SMTP_HOST    Optional; enables email mirroring of notifications
  SMTP_PORT    Default 587
  SMTP_USER, SMTP_PASS, SMTP_FROM

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/scheduler.db"

  # Run with in-memory database
  ./server -db=":memory:"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/harborline/crew-scheduler/api"
	"github.com/harborline/crew-scheduler/notify"
	"github.com/harborline/crew-scheduler/schedule"
	"github.com/harborline/crew-scheduler/store/sqlite"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "scheduler.db", "SQLite database path")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	api.SetJWTSecret(secret)

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Notification outbox, optionally mirrored to SMTP
	var sender notify.Sender
	if host := os.Getenv("SMTP_HOST"); host != "" {
		smtpPort := 587
		if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
			smtpPort = p
		}
		sender = notify.NewMailer(host, smtpPort,
			os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"), os.Getenv("SMTP_FROM"))
		log.Printf("SMTP notifications enabled via %s", host)
	}
	outbox := notify.NewOutbox(store, store, sender)

	// Scheduling service + API
	service := schedule.NewService(store, outbox)
	handler := api.NewHandler(store, store, store, service)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: /api/events holds SSE connections open.
		IdleTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
