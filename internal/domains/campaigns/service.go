package campaigns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/clients"
	"github.com/wasatchbins/dumpster-leadgen/internal/email"
)

var (
	ErrNoMatchingClients = errors.New("no clients match the specified criteria")
	ErrMissingSubject    = errors.New("subject is required")
	ErrMissingContent    = errors.New("content is required")
	ErrNoRecipients      = errors.New("no valid recipient addresses found")
	ErrNotAllowed        = errors.New("recipient is not on the test allow-list")
)

// TemplateNotFoundError reports an unknown email type along with the keys
// the caller could have used.
type TemplateNotFoundError struct {
	Type  string
	Valid []string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found for type %q, valid types: %s", e.Type, strings.Join(e.Valid, ", "))
}

type Service struct {
	store   clients.Store
	sender  email.Sender
	batcher *Batcher
	now     func() time.Time
}

func NewService(store clients.Store, sender email.Sender, batcher *Batcher) *Service {
	return &Service{
		store:   store,
		sender:  sender,
		batcher: batcher,
		now:     time.Now,
	}
}

type BulkEmailRequest struct {
	EmailType      string         `json:"emailType"`
	Subject        string         `json:"subject"`
	Content        string         `json:"content"`
	CustomTemplate bool           `json:"customTemplate"`
	Filters        clients.Filter `json:"filters"`
	CustomData     CustomData     `json:"customData"`
	Schedule       string         `json:"schedule"`
}

// SendBulk resolves the template, filters the client list, and drives the
// batched send. Partial failures land in the returned BatchResult, not in
// the error.
func (s *Service) SendBulk(ctx context.Context, req BulkEmailRequest) (*BatchResult, error) {
	tpl, err := s.resolveTemplate(req)
	if err != nil {
		return nil, err
	}

	list, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	matched := clients.FilterClients(list, req.Filters)
	if len(matched) == 0 {
		return nil, ErrNoMatchingClients
	}

	if req.Schedule != "" {
		// Scheduled bulk sends go through the follow-up queue endpoints;
		// the field is accepted for compatibility and ignored here.
		log.Warn().Str("schedule", req.Schedule).Msg("schedule field ignored on bulk send")
	}

	log.Info().Str("email_type", req.EmailType).Int("recipients", len(matched)).Msg("starting bulk send")

	result := s.batcher.Run(ctx, matched, func(ctx context.Context, client clients.Client) error {
		now := s.now()
		return s.sender.Send(ctx, email.Message{
			To:       client.Email,
			Subject:  Personalize(tpl.Subject, client, req.CustomData, now),
			HTMLBody: Personalize(tpl.HTMLBody, client, req.CustomData, now),
		})
	})

	log.Info().Int("sent", result.EmailsSent).Int("failed", result.EmailsFailed).Msg("bulk send complete")
	return &result, nil
}

func (s *Service) resolveTemplate(req BulkEmailRequest) (EmailTemplate, error) {
	// An inline custom template overrides the catalog entirely
	if req.CustomTemplate {
		if strings.TrimSpace(req.Subject) == "" {
			return EmailTemplate{}, ErrMissingSubject
		}
		if strings.TrimSpace(req.Content) == "" {
			return EmailTemplate{}, ErrMissingContent
		}
		return EmailTemplate{Type: "custom", Subject: req.Subject, HTMLBody: req.Content}, nil
	}

	tpl, ok := LookupTemplate(req.EmailType)
	if !ok {
		return EmailTemplate{}, &TemplateNotFoundError{Type: req.EmailType, Valid: TemplateTypes()}
	}
	return tpl, nil
}

// StatsResponse describes the client list and catalog for the dashboard.
type StatsResponse struct {
	Stats              clients.Stats   `json:"stats"`
	AvailableTemplates []EmailTemplate `json:"availableTemplates"`
}

func (s *Service) GetStats(ctx context.Context) (*StatsResponse, error) {
	list, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	templates := make([]EmailTemplate, 0, len(emailTemplates))
	for _, t := range TemplateTypes() {
		tpl, _ := LookupTemplate(t)
		templates = append(templates, tpl)
	}

	return &StatsResponse{
		Stats:              clients.ComputeStats(list),
		AvailableTemplates: templates,
	}, nil
}

// ParseRecipients splits a raw newline/comma/semicolon-delimited address
// blob, keeping only entries that look like emails.
func ParseRecipients(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})

	recipients := make([]string, 0, len(fields))
	for _, f := range fields {
		addr := strings.TrimSpace(f)
		if addr != "" && strings.Contains(addr, "@") {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

// SendManual delivers a custom subject/body to a hand-entered recipient
// list, reusing the batcher so manual blasts respect the same rate limits.
func (s *Service) SendManual(ctx context.Context, raw, subject, content string, custom CustomData) (*BatchResult, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, ErrMissingSubject
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrMissingContent
	}

	recipients := ParseRecipients(raw)
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	list := make([]clients.Client, len(recipients))
	for i, addr := range recipients {
		list[i] = clients.Client{Email: addr}
	}

	result := s.batcher.Run(ctx, list, func(ctx context.Context, client clients.Client) error {
		now := s.now()
		return s.sender.Send(ctx, email.Message{
			To:       client.Email,
			Subject:  Personalize(subject, client, custom, now),
			HTMLBody: Personalize(content, client, custom, now),
		})
	})

	return &result, nil
}

// testEmailAllowlist limits /api/test-email to staff inboxes.
var testEmailAllowlist = map[string]bool{
	"owner@wasatchbins.com": true,
	"ops@wasatchbins.com":   true,
	"dev@wasatchbins.com":   true,
}

// SendTest sends a single rendered template to an allow-listed address.
func (s *Service) SendTest(ctx context.Context, to, emailType string) error {
	if !testEmailAllowlist[strings.ToLower(strings.TrimSpace(to))] {
		return ErrNotAllowed
	}

	tpl, ok := LookupTemplate(emailType)
	if !ok {
		return &TemplateNotFoundError{Type: emailType, Valid: TemplateTypes()}
	}

	now := s.now()
	sample := clients.Client{FirstName: "Test", Email: to, County: "Utah"}
	return s.sender.Send(ctx, email.Message{
		To:       to,
		Subject:  "[TEST] " + Personalize(tpl.Subject, sample, CustomData{}, now),
		HTMLBody: Personalize(tpl.HTMLBody, sample, CustomData{}, now),
	})
}
