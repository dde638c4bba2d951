package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/authgate/authgate/internal/application/ports"
)

const defaultEndpoint = "https://send.api.mailtrap.io/api/send"

// MailtrapClient sends transactional email through the Mailtrap send API.
type MailtrapClient struct {
	client      *http.Client
	endpoint    string
	token       string
	senderEmail string
	senderName  string
}

// MailtrapOption configures MailtrapClient.
type MailtrapOption func(*MailtrapClient)

// WithHTTPClient sets the HTTP client (default: 10s timeout).
func WithHTTPClient(c *http.Client) MailtrapOption {
	return func(m *MailtrapClient) {
		m.client = c
	}
}

// WithEndpoint overrides the send API URL, for tests.
func WithEndpoint(url string) MailtrapOption {
	return func(m *MailtrapClient) {
		m.endpoint = url
	}
}

func NewMailtrapClient(token, senderEmail, senderName string, opts ...MailtrapOption) *MailtrapClient {
	m := &MailtrapClient{
		client:      &http.Client{Timeout: 10 * time.Second},
		endpoint:    defaultEndpoint,
		token:       token,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	From     address   `json:"from"`
	To       []address `json:"to"`
	Subject  string    `json:"subject"`
	HTML     string    `json:"html"`
	Category string    `json:"category,omitempty"`
}

func (m *MailtrapClient) send(ctx context.Context, to, subject, html, category string) error {
	body, err := json.Marshal(sendRequest{
		From:     address{Email: m.senderEmail, Name: m.senderName},
		To:       []address{{Email: to}},
		Subject:  subject,
		HTML:     html,
		Category: category,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.token)
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mailtrap returned status %d", resp.StatusCode)
	}
	return nil
}

func (m *MailtrapClient) SendVerification(ctx context.Context, to, name, code string) error {
	html := strings.ReplaceAll(verificationTemplate, "{verificationCode}", code)
	html = strings.ReplaceAll(html, "{name}", name)
	return m.send(ctx, to, "Verify your email", html, "email_verification")
}

func (m *MailtrapClient) SendWelcome(ctx context.Context, to, name string) error {
	html := strings.ReplaceAll(welcomeTemplate, "{name}", name)
	return m.send(ctx, to, "Welcome aboard", html, "welcome")
}

func (m *MailtrapClient) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	html := strings.ReplaceAll(resetRequestTemplate, "{resetURL}", resetURL)
	return m.send(ctx, to, "Reset your password", html, "password_reset")
}

func (m *MailtrapClient) SendResetSuccess(ctx context.Context, to string) error {
	return m.send(ctx, to, "Password reset successful", resetSuccessTemplate, "password_reset")
}

var _ ports.Mailer = (*MailtrapClient)(nil)
