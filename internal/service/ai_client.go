package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/tidwall/gjson"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/pkg/logger"
	"github.com/reachsuite/emailbuilder/pkg/tracing"
)

const maxAIResponseSize = 1 << 20

// ErrAINotConfigured is returned when no generation endpoint is set
var ErrAINotConfigured = errors.New("AI content generation is not configured")

// HTTPAIClient posts generation requests to a JSON endpoint
type HTTPAIClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewAIClient returns a client for endpoint. An empty endpoint yields a client that
// always fails with ErrAINotConfigured.
func NewAIClient(endpoint, apiKey string, timeout time.Duration, log logger.Logger) (domain.AIClient, error) {
	if endpoint == "" {
		return disabledAIClient{}, nil
	}
	if !govalidator.IsURL(endpoint) {
		return nil, fmt.Errorf("invalid AI endpoint: %s", endpoint)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPAIClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: tracing.WrapHTTPClient(&http.Client{Timeout: timeout}),
		logger:     log,
	}, nil
}

func (c *HTTPAIClient) Generate(ctx context.Context, req *domain.AIGenerateRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal AI request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create AI request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call AI endpoint: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxAIResponseSize))
	if err != nil {
		return "", fmt.Errorf("failed to read AI response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := gjson.GetBytes(payload, "error").String()
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		c.logger.WithField("status", resp.StatusCode).Warn(fmt.Sprintf("AI endpoint returned an error: %s", message))
		return "", fmt.Errorf("AI endpoint returned status %d: %s", resp.StatusCode, message)
	}

	if !gjson.ValidBytes(payload) {
		return "", fmt.Errorf("AI endpoint returned invalid JSON")
	}

	output := gjson.GetBytes(payload, "data.output")
	if !output.Exists() {
		output = gjson.GetBytes(payload, "output")
	}
	return output.String(), nil
}

type disabledAIClient struct{}

func (disabledAIClient) Generate(context.Context, *domain.AIGenerateRequest) (string, error) {
	return "", ErrAINotConfigured
}
