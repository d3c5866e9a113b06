package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wasatchbins/dumpster-leadgen/internal/domains/followups"
	"github.com/wasatchbins/dumpster-leadgen/internal/email"
)

var ErrNoContact = errors.New("either email or phone is required")

// quoteDelay keeps the quote email from racing the instant auto-reply.
const quoteDelay = 5 * time.Minute

// Lead is a sanitized website submission.
type Lead struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Size      int    `json:"size"`
}

// Result reports which of the lead actions actually fired.
type Result struct {
	Notified          bool `json:"notified"`
	AutoReplied       bool `json:"autoReplied"`
	QuoteScheduled    bool `json:"quoteScheduled"`
	FollowupScheduled bool `json:"followupScheduled"`
}

type Service struct {
	sender        email.Sender
	followups     *followups.Service
	notifyEmail   string
	followupDelay time.Duration
}

func NewService(sender email.Sender, followups *followups.Service, notifyEmail string, followupDelay time.Duration) *Service {
	return &Service{
		sender:        sender,
		followups:     followups,
		notifyEmail:   notifyEmail,
		followupDelay: followupDelay,
	}
}

// Sanitize trims every field and strips line breaks so submitted values
// can never inject headers into outgoing mail.
func (l Lead) Sanitize() Lead {
	clean := func(s string) string {
		s = strings.ReplaceAll(s, "\r", " ")
		s = strings.ReplaceAll(s, "\n", " ")
		return strings.TrimSpace(s)
	}
	return Lead{
		FirstName: clean(l.FirstName),
		LastName:  clean(l.LastName),
		Email:     clean(l.Email),
		Phone:     clean(l.Phone),
		City:      clean(l.City),
		Message:   strings.TrimSpace(l.Message),
		Type:      clean(l.Type),
		Size:      l.Size,
	}
}

// Process handles a submitted lead: the staff notification always goes
// out; the auto-reply needs an email address; quote and follow-up
// scheduling additionally skip newsletter signups.
func (s *Service) Process(ctx context.Context, lead Lead) (Result, error) {
	lead = lead.Sanitize()
	if lead.Email == "" && lead.Phone == "" {
		return Result{}, ErrNoContact
	}

	var result Result

	if err := s.sender.Send(ctx, s.notificationMessage(lead)); err != nil {
		return result, fmt.Errorf("send lead notification: %w", err)
	}
	result.Notified = true

	if lead.Email == "" {
		return result, nil
	}

	if err := s.sender.Send(ctx, s.autoReplyMessage(lead)); err != nil {
		// The lead is already in the staff inbox; log and move on
		log.Error().Err(err).Str("email", lead.Email).Msg("failed to send lead auto-reply")
	} else {
		result.AutoReplied = true
	}

	if strings.EqualFold(lead.Type, "newsletter") {
		return result, nil
	}

	if _, err := s.followups.ScheduleQuote(ctx, lead.Email, lead.FirstName, lead.City, lead.Size, quoteDelay); err != nil {
		log.Error().Err(err).Str("email", lead.Email).Msg("failed to schedule quote")
	} else {
		result.QuoteScheduled = true
	}

	if _, err := s.followups.ScheduleFollowup(ctx, lead.Email, lead.FirstName, lead.City, s.followupDelay); err != nil {
		log.Error().Err(err).Str("email", lead.Email).Msg("failed to schedule follow-up")
	} else {
		result.FollowupScheduled = true
	}

	return result, nil
}

func (s *Service) notificationMessage(lead Lead) email.Message {
	name := strings.TrimSpace(lead.FirstName + " " + lead.LastName)
	if name == "" {
		name = "Website visitor"
	}

	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif; color: #333;">`)
	b.WriteString("<h2>New lead from the website</h2><ul>")
	fmt.Fprintf(&b, "<li><strong>Name:</strong> %s</li>", name)
	if lead.Email != "" {
		fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>", lead.Email)
	}
	if lead.Phone != "" {
		fmt.Fprintf(&b, "<li><strong>Phone:</strong> %s</li>", lead.Phone)
	}
	if lead.City != "" {
		fmt.Fprintf(&b, "<li><strong>City:</strong> %s</li>", lead.City)
	}
	if lead.Size > 0 {
		fmt.Fprintf(&b, "<li><strong>Requested size:</strong> %d yard</li>", lead.Size)
	}
	if lead.Type != "" {
		fmt.Fprintf(&b, "<li><strong>Type:</strong> %s</li>", lead.Type)
	}
	b.WriteString("</ul>")
	if lead.Message != "" {
		fmt.Fprintf(&b, "<p><strong>Message:</strong></p><p>%s</p>", lead.Message)
	}
	b.WriteString("</body></html>")

	return email.Message{
		To:       s.notifyEmail,
		Subject:  "New lead: " + name,
		HTMLBody: b.String(),
	}
}

func (s *Service) autoReplyMessage(lead Lead) email.Message {
	name := lead.FirstName
	if name == "" {
		name = "there"
	}

	if strings.EqualFold(lead.Type, "newsletter") {
		return email.Message{
			To:      lead.Email,
			Subject: "Welcome to the Wasatch Bins newsletter",
			HTMLBody: fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<p>Hi %s,</p>
<p>Thanks for subscribing. You'll hear from us about once a month with seasonal
tips and the occasional discount. No spam, ever.</p>
<p>- The Wasatch Bins Team</p>
</body></html>`, name),
		}
	}

	return email.Message{
		To:      lead.Email,
		Subject: "We got your request - Wasatch Bins",
		HTMLBody: fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<p>Hi %s,</p>
<p>Thanks for reaching out to Wasatch Bins. A member of our team will get back
to you within one business day. If you need a dumpster today, call us directly
and we'll do our best to squeeze you in.</p>
<p>- The Wasatch Bins Team</p>
</body></html>`, name),
	}
}
