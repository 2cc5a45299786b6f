package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/reachsuite/emailbuilder/pkg/logger"
)

// Event types emitted by the template store
const (
	EventTemplateSaved   = "template.saved"
	EventTemplateDeleted = "template.deleted"
)

// Envelope is the JSON body POSTed to the endpoint
type Envelope struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Sender posts signed Standard Webhooks events to a single endpoint
type Sender struct {
	url        string
	webhook    *svix.Webhook
	httpClient *http.Client
	logger     logger.Logger
	now        func() time.Time
	newID      func() string
}

// NewSender creates a sender. secret is a base64 key, optionally prefixed with "whsec_".
func NewSender(url, secret string, httpClient *http.Client, log logger.Logger) (*Sender, error) {
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook signer: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Sender{
		url:        url,
		webhook:    wh,
		httpClient: httpClient,
		logger:     log,
		now:        time.Now,
		newID:      func() string { return "msg_" + uuid.New().String() },
	}, nil
}

// Notify delivers one event. Non-2xx responses are errors.
func (s *Sender) Notify(ctx context.Context, eventType string, data interface{}) error {
	now := s.now()
	msgID := s.newID()

	payload, err := json.Marshal(Envelope{
		ID:        msgID,
		Type:      eventType,
		Timestamp: now.UTC().Format(time.RFC3339),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	signature, err := s.webhook.Sign(msgID, now, payload)
	if err != nil {
		return fmt.Errorf("failed to sign webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("webhook-id", msgID)
	req.Header.Set("webhook-timestamp", fmt.Sprintf("%d", now.Unix()))
	req.Header.Set("webhook-signature", signature)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	s.logger.WithFields(map[string]interface{}{
		"event":      eventType,
		"webhook_id": msgID,
	}).Debug("Webhook delivered")
	return nil
}

// Noop drops every event. It is used when no endpoint is configured.
type Noop struct{}

// Notify implements the notifier contract without doing anything
func (Noop) Notify(context.Context, string, interface{}) error {
	return nil
}
