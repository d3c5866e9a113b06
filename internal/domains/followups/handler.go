package followups

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/handlers"
)

type Handler struct {
	svc           *Service
	followupDelay time.Duration
}

func NewHandler(svc *Service, followupDelay time.Duration) *Handler {
	return &Handler{svc: svc, followupDelay: followupDelay}
}

func (h *Handler) RegisterFollowupRoutes(r chi.Router) {
	r.Post("/schedule-followup", h.scheduleFollowup)
	r.Get("/schedule-followup", h.flushDue)
	r.Post("/schedule-quote", h.scheduleQuote)
}

type ScheduleFollowupRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	City      string `json:"city"`
}

func (h *Handler) scheduleFollowup(w http.ResponseWriter, r *http.Request) {
	var req ScheduleFollowupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	job, err := h.svc.ScheduleFollowup(r.Context(), req.Email, req.FirstName, req.City, h.followupDelay)
	if err != nil {
		if errors.Is(err, ErrMissingEmail) {
			handlers.RespondWithError(w, http.StatusBadRequest, "VALIDATION_FAILED", "email is required")
			return
		}
		log.Error().Err(err).Msg("failed to schedule follow-up")
		handlers.RespondWithError(w, http.StatusInternalServerError, "SCHEDULE_FAILED", "Failed to schedule follow-up: "+err.Error())
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"jobId":        job.ID,
		"scheduledFor": job.RunAt,
	})
}

type ScheduleQuoteRequest struct {
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	City         string `json:"city"`
	Size         int    `json:"size"`
	DelaySeconds int    `json:"delay"`
}

func (h *Handler) scheduleQuote(w http.ResponseWriter, r *http.Request) {
	var req ScheduleQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if req.DelaySeconds < 0 {
		handlers.RespondWithError(w, http.StatusBadRequest, "VALIDATION_FAILED", "delay must not be negative")
		return
	}

	job, err := h.svc.ScheduleQuote(r.Context(), req.Email, req.FirstName, req.City, req.Size,
		time.Duration(req.DelaySeconds)*time.Second)
	if err != nil {
		if errors.Is(err, ErrMissingEmail) {
			handlers.RespondWithError(w, http.StatusBadRequest, "VALIDATION_FAILED", "email is required")
			return
		}
		log.Error().Err(err).Msg("failed to schedule quote")
		handlers.RespondWithError(w, http.StatusInternalServerError, "SCHEDULE_FAILED", "Failed to schedule quote: "+err.Error())
		return
	}

	size, price := QuotePrice(req.Size)
	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"jobId":        job.ID,
		"scheduledFor": job.RunAt,
		"quotedSize":   size,
		"quotedPrice":  price,
	})
}

// flushDue is polled by an external cron to deliver due jobs inline. The
// queue worker makes this redundant when RabbitMQ is configured, but the
// endpoint stays cheap to call either way.
func (h *Handler) flushDue(w http.ResponseWriter, r *http.Request) {
	processed, failed, err := h.svc.FlushDue(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to flush due follow-ups")
		handlers.RespondWithError(w, http.StatusInternalServerError, "FLUSH_FAILED", "Failed to flush due jobs: "+err.Error())
		return
	}

	pending, err := h.svc.CountPending(r.Context())
	if err != nil {
		pending = -1
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"processed": processed,
		"failed":    failed,
		"pending":   pending,
	})
}
