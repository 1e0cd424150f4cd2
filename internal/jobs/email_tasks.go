package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// Task type definitions
const (
	TypeEmailSend = "email:send"
)

// EmailSendPayload defines the payload for email dispatch tasks
type EmailSendPayload struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// NewEmailSendTask creates an asynq task that delivers one email.
func NewEmailSendTask(recipient, subject, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailSendPayload{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal email payload: %v", err)
	}
	return asynq.NewTask(TypeEmailSend, payload, asynq.MaxRetry(5)), nil
}

// EmailSender is the slice of the notification service the worker needs.
type EmailSender interface {
	SendEmail(ctx context.Context, recipient, subject, body string) error
}

// EmailWorker processes queued email tasks.
type EmailWorker struct {
	server *asynq.Server
	sender EmailSender
}

func NewEmailWorker(redisOpt asynq.RedisClientOpt, sender EmailSender) *EmailWorker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 5,
	})
	return &EmailWorker{server: server, sender: sender}
}

// Start runs the worker in the background. Failed sends are retried by asynq
// with its default backoff.
func (w *EmailWorker) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEmailSend, w.handleEmailSend)
	return w.server.Start(mux)
}

func (w *EmailWorker) Stop() {
	w.server.Shutdown()
}

func (w *EmailWorker) handleEmailSend(ctx context.Context, task *asynq.Task) error {
	var payload EmailSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal email payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := w.sender.SendEmail(ctx, payload.Recipient, payload.Subject, payload.Body); err != nil {
		log.Printf("email send to %s failed: %v", payload.Recipient, err)
		return err
	}
	return nil
}
