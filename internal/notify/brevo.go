package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	brevoEndpoint = "https://api.brevo.com/v3/smtp/email"
	brevoTimeout  = 10 * time.Second
)

type brevoParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoEmail struct {
	Sender      brevoParty   `json:"sender"`
	To          []brevoParty `json:"to"`
	Subject     string       `json:"subject"`
	TextContent string       `json:"textContent"`
}

// Brevo sends plain-text mail through the Brevo transactional email API.
type Brevo struct {
	apiKey string
	sender brevoParty
	to     []brevoParty

	endpoint string
	client   *http.Client
}

func NewBrevo(apiKey, fromName, fromEmail, mailTo string) *Brevo {
	return &Brevo{
		apiKey:   apiKey,
		sender:   brevoParty{Name: fromName, Email: fromEmail},
		to:       parseRecipients(mailTo),
		endpoint: brevoEndpoint,
		client:   &http.Client{Timeout: brevoTimeout},
	}
}

func (b *Brevo) Name() string {
	return "email"
}

func (b *Brevo) Send(ctx context.Context, subject, body string) error {
	payload, err := json.Marshal(brevoEmail{
		Sender:      b.sender,
		To:          b.to,
		Subject:     subject,
		TextContent: body,
	})
	if err != nil {
		return fmt.Errorf("marshal brevo email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create brevo request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("send brevo email: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("send brevo email: status=%s", resp.Status)
	}

	return nil
}

// parseRecipients splits a comma-separated address list, trimming
// whitespace and dropping empty entries.
func parseRecipients(mailTo string) []brevoParty {
	parts := strings.Split(mailTo, ",")
	res := make([]brevoParty, 0, len(parts))
	for _, p := range parts {
		addr := strings.TrimSpace(p)
		if addr == "" {
			continue
		}
		res = append(res, brevoParty{Email: addr})
	}
	return res
}
