//go:generate go run go.uber.org/mock/mockgen -source=mailer.go -destination=../mocks/mock_mailer.go -package=mocks
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ResultEmail is everything a giver needs to know after the draw: who they
// offer a gift to, and where to send it when the organizer required it.
type ResultEmail struct {
	GiverName       string
	GiverEmail      string
	ReceiverName    string
	ReceiverAddress string
	ReceiverPhone   string
}

type IMailer interface {
	SendDrawResult(ctx context.Context, email ResultEmail) error
}

// Config holds the SendPulse REST API settings. TemplateID selects the
// transactional template holding the actual email copy.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TemplateID   int
	FromName     string
	FromEmail    string
}

func (c Config) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.TemplateID != 0 && c.FromEmail != ""
}

// SendPulseMailer sends result emails through the SendPulse template API.
// The OAuth access token is cached until shortly before expiry so a burst
// of notifications costs a single token round trip.
type SendPulseMailer struct {
	client *http.Client
	log    *slog.Logger
	cfg    Config

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewSendPulseMailer(cfg Config, log *slog.Logger) *SendPulseMailer {
	return &SendPulseMailer{
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log,
		cfg:    cfg,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached OAuth token, fetching a fresh one when the
// cache is empty or about to expire.
func (m *SendPulseMailer) accessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.tokenExpiry) {
		return m.token, nil
	}

	payload := map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     m.cfg.ClientID,
		"client_secret": m.cfg.ClientSecret,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.cfg.BaseURL+"/oauth/access_token", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d", resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("token decode failed: %w", err)
	}

	m.token = token.AccessToken
	// Refresh one minute early so an in-flight send never races expiry.
	m.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)
	return m.token, nil
}

// SendDrawResult sends one templated result email.
func (m *SendPulseMailer) SendDrawResult(ctx context.Context, email ResultEmail) error {
	token, err := m.accessToken(ctx)
	if err != nil {
		return err
	}

	variables := map[string]any{
		"participant_name": email.GiverName,
		"receiver_name":    email.ReceiverName,
	}
	if email.ReceiverAddress != "" {
		variables["receiver_address"] = email.ReceiverAddress
	}
	if email.ReceiverPhone != "" {
		variables["receiver_phone"] = email.ReceiverPhone
	}

	payload := map[string]any{
		"email": map[string]any{
			"from": map[string]any{
				"name":  m.cfg.FromName,
				"email": m.cfg.FromEmail,
			},
			"to": []map[string]any{
				{"email": email.GiverEmail, "name": email.GiverName},
			},
			"template": map[string]any{
				"id":        m.cfg.TemplateID,
				"variables": variables,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.cfg.BaseURL+"/smtp/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("email send failed with status %d", resp.StatusCode)
	}

	m.log.Info("Email sent", "to", email.GiverEmail, "template", m.cfg.TemplateID)
	return nil
}

// NoopMailer is used when SendPulse credentials are not configured: the
// draw still completes, results stay reachable through the API.
type NoopMailer struct {
	log *slog.Logger
}

func NewNoopMailer(log *slog.Logger) *NoopMailer {
	return &NoopMailer{log: log}
}

func (m *NoopMailer) SendDrawResult(_ context.Context, email ResultEmail) error {
	m.log.Warn("Email delivery disabled, skipping notification", "to", email.GiverEmail)
	return nil
}
