package campaigns

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/clients"
)

func newTestRouter(store *mockStore, sender *mockSender) *chi.Mux {
	r := chi.NewRouter()
	handler := NewHandler(newTestService(store, sender))
	handler.RegisterCampaignRoutes(r)
	return r
}

// TestBulkEmailEndpoint_NoMatchingClients tests the end-to-end scenario:
// a newsletter blast against a list where nobody has an email returns 400
// with the no-clients message, before any send attempt
func TestBulkEmailEndpoint_NoMatchingClients(t *testing.T) {
	store := &mockStore{list: []clients.Client{
		{FirstName: "Dan", Email: ""},
		{FirstName: "Amy", Email: ""},
	}}
	sender := &mockSender{}
	router := newTestRouter(store, sender)

	req := httptest.NewRequest(http.MethodPost, "/bulk-email", strings.NewReader(`{"emailType": "newsletter"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "NO_MATCHING_CLIENTS" {
		t.Errorf("error code = %q", resp.Error.Code)
	}
	if resp.Error.Message != "No clients match the specified criteria" {
		t.Errorf("error message = %q", resp.Error.Message)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages, want 0", len(sender.sent))
	}
}

// TestBulkEmailEndpoint_SummaryOn200 tests that a completed run reports
// partial failures in the body with a 200 status
func TestBulkEmailEndpoint_SummaryOn200(t *testing.T) {
	store := &mockStore{list: []clients.Client{
		{FirstName: "Dan", Email: "dan@example.com"},
	}}
	router := newTestRouter(store, &mockSender{})

	req := httptest.NewRequest(http.MethodPost, "/bulk-email", strings.NewReader(`{"emailType": "promotion"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var resp BulkEmailResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Results == nil {
		t.Errorf("response = %+v", resp)
	}
	if resp.Results.EmailsSent != 1 {
		t.Errorf("EmailsSent = %d, want 1", resp.Results.EmailsSent)
	}
}

// TestBulkEmailEndpoint_UnknownTemplate tests the 400 envelope for a bad
// email type, including the valid-keys listing
func TestBulkEmailEndpoint_UnknownTemplate(t *testing.T) {
	router := newTestRouter(&mockStore{}, &mockSender{})

	req := httptest.NewRequest(http.MethodPost, "/bulk-email", strings.NewReader(`{"emailType": "nope"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "newsletter") {
		t.Errorf("body does not list valid types: %s", rec.Body.String())
	}
}

// TestBulkEmailStatsEndpoint tests the GET dashboard payload
func TestBulkEmailStatsEndpoint(t *testing.T) {
	store := &mockStore{list: []clients.Client{
		{FirstName: "Dan", Email: "dan@example.com", County: "Utah", Tags: clients.TagList{"Residential"}},
		{FirstName: "Amy", Email: "", County: "Utah"},
	}}
	router := newTestRouter(store, &mockSender{})

	req := httptest.NewRequest(http.MethodGet, "/bulk-email", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success            bool            `json:"success"`
		Stats              clients.Stats   `json:"stats"`
		AvailableTemplates []EmailTemplate `json:"availableTemplates"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Stats.TotalClients != 2 || resp.Stats.WithEmail != 1 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if len(resp.AvailableTemplates) != len(TemplateTypes()) {
		t.Errorf("got %d templates, want %d", len(resp.AvailableTemplates), len(TemplateTypes()))
	}
}

// TestManualEmailEndpoint tests recipient parsing through the HTTP surface
func TestManualEmailEndpoint(t *testing.T) {
	sender := &mockSender{}
	router := newTestRouter(&mockStore{}, sender)

	body := `{"recipients": "a@x.com\nnot-an-email; b@y.com", "subject": "Hello", "content": "<p>Hi {firstName}</p>"}`
	req := httptest.NewRequest(http.MethodPost, "/manual-email", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if len(sender.sent) != 2 {
		t.Errorf("sent %d messages, want 2", len(sender.sent))
	}
	// Manual recipients have no client record, so defaults apply
	if !strings.Contains(sender.sent[0].HTMLBody, "Valued Customer") {
		t.Errorf("body = %q", sender.sent[0].HTMLBody)
	}
}

// TestTestEmailEndpoint_Forbidden tests the allow-list 403
func TestTestEmailEndpoint_Forbidden(t *testing.T) {
	router := newTestRouter(&mockStore{}, &mockSender{})

	req := httptest.NewRequest(http.MethodPost, "/test-email", strings.NewReader(`{"to": "stranger@example.com", "emailType": "newsletter"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
