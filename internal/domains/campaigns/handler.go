package campaigns

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/handlers"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterCampaignRoutes(r chi.Router) {
	r.Post("/bulk-email", h.sendBulkEmail)
	r.Get("/bulk-email", h.getBulkEmailStats)
	r.Post("/manual-email", h.sendManualEmail)
	r.Post("/test-email", h.sendTestEmail)
}

// BulkEmailResponse is the 200-with-summary envelope: partial failures are
// reported in the body, never as an HTTP error.
type BulkEmailResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Results *BatchResult `json:"results"`
}

func (h *Handler) sendBulkEmail(w http.ResponseWriter, r *http.Request) {
	var req BulkEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.SendBulk(r.Context(), req)
	if err != nil {
		h.respondSendError(w, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, BulkEmailResponse{
		Success: true,
		Message: "Bulk email campaign completed",
		Results: result,
	})
}

func (h *Handler) getBulkEmailStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to compute campaign stats")
		handlers.RespondWithError(w, http.StatusInternalServerError, "STATS_FAILED", "Failed to load client stats: "+err.Error())
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"stats":              stats.Stats,
		"availableTemplates": stats.AvailableTemplates,
	})
}

type ManualEmailRequest struct {
	Recipients string     `json:"recipients"`
	Subject    string     `json:"subject"`
	Content    string     `json:"content"`
	CustomData CustomData `json:"customData"`
}

func (h *Handler) sendManualEmail(w http.ResponseWriter, r *http.Request) {
	var req ManualEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.SendManual(r.Context(), req.Recipients, req.Subject, req.Content, req.CustomData)
	if err != nil {
		h.respondSendError(w, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, BulkEmailResponse{
		Success: true,
		Message: "Manual email send completed",
		Results: result,
	})
}

type TestEmailRequest struct {
	To        string `json:"to"`
	EmailType string `json:"emailType"`
}

func (h *Handler) sendTestEmail(w http.ResponseWriter, r *http.Request) {
	var req TestEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	if err := h.svc.SendTest(r.Context(), req.To, req.EmailType); err != nil {
		if errors.Is(err, ErrNotAllowed) {
			handlers.RespondWithError(w, http.StatusForbidden, "NOT_ALLOWED", "Test emails are restricted to staff addresses")
			return
		}
		h.respondSendError(w, err)
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Test email sent to " + req.To,
	})
}

func (h *Handler) respondSendError(w http.ResponseWriter, err error) {
	var notFound *TemplateNotFoundError
	switch {
	case errors.As(err, &notFound):
		handlers.RespondWithError(w, http.StatusBadRequest, "TEMPLATE_NOT_FOUND", notFound.Error())
	case errors.Is(err, ErrNoMatchingClients):
		handlers.RespondWithError(w, http.StatusBadRequest, "NO_MATCHING_CLIENTS", "No clients match the specified criteria")
	case errors.Is(err, ErrMissingSubject), errors.Is(err, ErrMissingContent), errors.Is(err, ErrNoRecipients):
		handlers.RespondWithError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	default:
		log.Error().Err(err).Msg("send failed")
		handlers.RespondWithError(w, http.StatusInternalServerError, "SEND_FAILED", "Failed to send: "+err.Error())
	}
}
