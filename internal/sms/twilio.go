package sms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioSender sends SMS through the Twilio Messages API. Transient HTTP
// failures are retried by the underlying client.
type TwilioSender struct {
	client *retryablehttp.Client

	apiBase string
	from    string

	accountSID string
	authToken  string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 3

	return &TwilioSender{
		client:     client,
		apiBase:    twilioAPIBase,
		from:       from,
		accountSID: accountSID,
		authToken:  authToken,
	}
}

func (t *TwilioSender) Send(ctx context.Context, to, body string) error {
	form := url.Values{
		"From": {t.from},
		"To":   {to},
		"Body": {body},
	}.Encode()

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", t.apiBase, t.accountSID)
	req, err := retryablehttp.NewRequest(http.MethodPost, endpoint, strings.NewReader(form))
	if err != nil {
		return fmt.Errorf("build twilio request: %w", err)
	}

	req = req.WithContext(ctx)
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Content-Length", strconv.Itoa(len(form)))

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected response code %d from twilio", resp.StatusCode)
	}

	log.Info().Str("to", to).Msg("sms sent via twilio")
	return nil
}
