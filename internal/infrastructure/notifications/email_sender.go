package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openfleet/carrental/pkg/config"
)

// EmailAPISender delivers mail through a JSON-over-HTTP transactional email
// API (Mailgun-style). It implements providers.MessageSender.
type EmailAPISender struct {
	apiURL     string
	apiKey     string
	from       string
	httpClient *http.Client
}

// NewEmailAPISender creates a new email sender from configuration
func NewEmailAPISender(cfg *config.EmailConfig) (*EmailAPISender, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("EMAIL_API_URL must be set")
	}

	return &EmailAPISender{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		from:   cfg.From,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type emailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type emailAPIResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send posts one message to the email API
func (s *EmailAPISender) Send(ctx context.Context, to, subject, body string) error {
	payload := emailMessage{
		From:    s.from,
		To:      to,
		Subject: subject,
		Text:    body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/messages", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API returned status %d: %s", resp.StatusCode, string(raw))
	}

	var apiResp emailAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		// Delivery was accepted; a malformed body is not worth failing over.
		return nil
	}

	return nil
}
