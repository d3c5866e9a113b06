package leads

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/handlers"
	"github.com/wasatchbins/dumpster-leadgen/internal/sms"
)

type Handler struct {
	svc       *Service
	smsSender sms.Sender
}

func NewHandler(svc *Service, smsSender sms.Sender) *Handler {
	return &Handler{svc: svc, smsSender: smsSender}
}

func (h *Handler) RegisterLeadRoutes(r chi.Router) {
	r.Post("/lead", h.submitLead)
	r.Post("/sms", h.sendSMS)
	r.Post("/verify-recaptcha", h.verifyRecaptcha)
}

// submitLead accepts JSON or classic form posts so the endpoint works
// both from fetch() and from a plain HTML form fallback.
func (h *Handler) submitLead(w http.ResponseWriter, r *http.Request) {
	lead, err := parseLead(r)
	if err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	result, err := h.svc.Process(r.Context(), lead)
	if err != nil {
		if errors.Is(err, ErrNoContact) {
			handlers.RespondWithError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Either email or phone is required")
			return
		}
		log.Error().Err(err).Msg("failed to process lead")
		handlers.RespondWithError(w, http.StatusInternalServerError, "SEND_FAILED", "Failed to process lead: "+err.Error())
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"results": result,
	})
}

func parseLead(r *http.Request) (Lead, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var lead Lead
		if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
			return Lead{}, err
		}
		return lead, nil
	}

	if err := r.ParseForm(); err != nil {
		return Lead{}, err
	}
	size, _ := strconv.Atoi(r.PostFormValue("size"))
	return Lead{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		City:      r.PostFormValue("city"),
		Message:   r.PostFormValue("message"),
		Type:      r.PostFormValue("type"),
		Size:      size,
	}, nil
}

type SMSRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (h *Handler) sendSMS(w http.ResponseWriter, r *http.Request) {
	var req SMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Message) == "" {
		handlers.RespondWithError(w, http.StatusBadRequest, "VALIDATION_FAILED", "to and message are required")
		return
	}

	if err := h.smsSender.Send(r.Context(), req.To, req.Message); err != nil {
		log.Error().Err(err).Str("to", req.To).Msg("failed to send sms")
		handlers.RespondWithError(w, http.StatusInternalServerError, "SEND_FAILED", "Failed to send SMS: "+err.Error())
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// verifyRecaptcha always succeeds. Server-side verification was never
// enforced upstream; the endpoint exists so the frontend widget has
// something to call.
func (h *Handler) verifyRecaptcha(w http.ResponseWriter, r *http.Request) {
	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}
