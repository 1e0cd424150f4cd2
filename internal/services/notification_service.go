package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"text/template"
	"time"
)

// NotificationService delivers email through the configured relay endpoint.
// Dispatch ordering and retries live in the asynq worker; this service only
// knows how to send one message.
type NotificationService interface {
	SendEmail(ctx context.Context, recipient, subject, body string) error
}

type notificationService struct {
	httpClient    *http.Client
	relayEndpoint string
	fromAddress   string
	bodyTemplate  *template.Template
}

const emailBodyTemplate = `{{.Body}}

--
Sent by Rentiva on behalf of {{.From}}.
`

func NewNotificationService(relayEndpoint, fromAddress string) NotificationService {
	return &notificationService{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		relayEndpoint: relayEndpoint,
		fromAddress:   fromAddress,
		bodyTemplate:  template.Must(template.New("email").Parse(emailBodyTemplate)),
	}
}

func (s *notificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	var rendered bytes.Buffer
	err := s.bodyTemplate.Execute(&rendered, map[string]string{
		"Body": body,
		"From": s.fromAddress,
	})
	if err != nil {
		return fmt.Errorf("failed to render email body: %v", err)
	}

	if s.relayEndpoint == "" {
		// No relay configured (development); log instead of dropping silently.
		log.Printf("email (no relay configured) to=%s subject=%q", recipient, subject)
		return nil
	}

	payload := map[string]string{
		"from":    s.fromAddress,
		"to":      recipient,
		"subject": subject,
		"body":    rendered.String(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.relayEndpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email relay request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email relay returned status %d", resp.StatusCode)
	}
	return nil
}
