package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/clients"
	"github.com/wasatchbins/dumpster-leadgen/internal/queue"
)

type Handler struct {
	store    clients.Store
	db       *sql.DB
	rabbitMQ *queue.RabbitMQ
}

// NewHandler wires up the health checks. db and rabbitMQ may be nil
// when those components are not configured; their checks report
// skipped instead of unhealthy.
func NewHandler(store clients.Store, db *sql.DB, rabbitMQ *queue.RabbitMQ) *Handler {
	return &Handler{
		store:    store,
		db:       db,
		rabbitMQ: rabbitMQ,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Checks    map[string]Check `json:"checks"`
	Timestamp time.Time        `json:"timestamp"`
}

// Check represents a single health check
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health checks the client store plus whichever of database and
// RabbitMQ are configured
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]Check)
	overallHealthy := true

	clientsCheck := h.checkClients(ctx)
	checks["clients"] = clientsCheck
	if clientsCheck.Status == "unhealthy" {
		overallHealthy = false
	}

	dbCheck := h.checkDatabase(ctx)
	checks["database"] = dbCheck
	if dbCheck.Status == "unhealthy" {
		overallHealthy = false
	}

	queueCheck := h.checkQueue()
	checks["queue"] = queueCheck
	if queueCheck.Status == "unhealthy" {
		overallHealthy = false
	}

	status := "healthy"
	if !overallHealthy {
		status = "unhealthy"
	}

	response := HealthResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now(),
	}

	statusCode := http.StatusOK
	if !overallHealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// checkClients verifies the client list is loadable
func (h *Handler) checkClients(ctx context.Context) Check {
	if h.store == nil {
		return Check{
			Status:  "unhealthy",
			Message: "client store is nil",
		}
	}

	list, err := h.store.Load(ctx)
	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "client store failed: " + err.Error(),
		}
	}

	return Check{
		Status:  "healthy",
		Message: fmt.Sprintf("%d clients loaded", len(list)),
	}
}

// checkDatabase checks if the database is accessible
func (h *Handler) checkDatabase(ctx context.Context) Check {
	if h.db == nil {
		return Check{
			Status:  "skipped",
			Message: "database not configured",
		}
	}

	if err := h.db.PingContext(ctx); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "database connection failed: " + err.Error(),
		}
	}

	var result int
	if err := h.db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "database query failed: " + err.Error(),
		}
	}

	return Check{
		Status:  "healthy",
		Message: "database is accessible",
	}
}

// checkQueue checks if RabbitMQ is accessible
func (h *Handler) checkQueue() Check {
	if h.rabbitMQ == nil {
		return Check{
			Status:  "skipped",
			Message: "queue not configured",
		}
	}

	if err := h.rabbitMQ.Ping(); err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "queue connection failed: " + err.Error(),
		}
	}

	return Check{
		Status:  "healthy",
		Message: "queue is accessible",
	}
}
