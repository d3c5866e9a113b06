package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type mockSMSSender struct {
	sendErr error
	sent    []string
}

func (m *mockSMSSender) Send(ctx context.Context, to, body string) error {
	m.sent = append(m.sent, to+": "+body)
	return m.sendErr
}

func newTestRouter(sender *mockSender, smsSender *mockSMSSender) chi.Router {
	svc, _ := newTestService(sender)
	h := NewHandler(svc, smsSender)
	r := chi.NewRouter()
	h.RegisterLeadRoutes(r)
	return r
}

// TestSubmitLeadJSON tests a JSON submission end to end
func TestSubmitLeadJSON(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(sender, &mockSMSSender{})

	body := `{"firstName": "Dan", "email": "dan@example.com", "city": "Orem", "size": 20}`
	req := httptest.NewRequest(http.MethodPost, "/lead", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Results Result `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Success || !resp.Results.Notified || !resp.Results.QuoteScheduled {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// TestSubmitLeadForm tests that a classic HTML form post is accepted
func TestSubmitLeadForm(t *testing.T) {
	sender := &mockSender{}
	r := newTestRouter(sender, &mockSMSSender{})

	form := url.Values{
		"firstName": {"Amy"},
		"phone":     {"801-555-0202"},
		"city":      {"Sandy"},
	}
	req := httptest.NewRequest(http.MethodPost, "/lead", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if len(sender.sent) != 1 {
		t.Errorf("sent %d emails, want 1 (phone-only lead, staff notification only)", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].HTMLBody, "801-555-0202") {
		t.Errorf("notification missing phone number")
	}
}

// TestSubmitLeadNoContact tests validation of an empty submission
func TestSubmitLeadNoContact(t *testing.T) {
	r := newTestRouter(&mockSender{}, &mockSMSSender{})

	req := httptest.NewRequest(http.MethodPost, "/lead", strings.NewReader(`{"firstName": "Dan"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "VALIDATION_FAILED") {
		t.Errorf("body = %s", w.Body.String())
	}
}

// TestSendSMSEndpoint tests the happy path and validation
func TestSendSMSEndpoint(t *testing.T) {
	smsSender := &mockSMSSender{}
	r := newTestRouter(&mockSender{}, smsSender)

	body := `{"to": "+18015559999", "message": "Dumpster delivered"}`
	req := httptest.NewRequest(http.MethodPost, "/sms", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if len(smsSender.sent) != 1 || smsSender.sent[0] != "+18015559999: Dumpster delivered" {
		t.Errorf("sms sender got %v", smsSender.sent)
	}

	// Missing message
	req = httptest.NewRequest(http.MethodPost, "/sms", strings.NewReader(`{"to": "+18015559999"}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing message", w.Code)
	}
}

// TestSendSMSFailure tests that a transport failure maps to 500
func TestSendSMSFailure(t *testing.T) {
	smsSender := &mockSMSSender{sendErr: errors.New("twilio unreachable")}
	r := newTestRouter(&mockSender{}, smsSender)

	body := `{"to": "+18015559999", "message": "hello"}`
	req := httptest.NewRequest(http.MethodPost, "/sms", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SEND_FAILED") {
		t.Errorf("body = %s", w.Body.String())
	}
}

// TestVerifyRecaptchaStub tests the endpoint always succeeds
func TestVerifyRecaptchaStub(t *testing.T) {
	r := newTestRouter(&mockSender{}, &mockSMSSender{})

	req := httptest.NewRequest(http.MethodPost, "/verify-recaptcha", strings.NewReader(`{"token": "anything"}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("body = %s", w.Body.String())
	}
}
