package webhooks

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachsuite/emailbuilder/pkg/logger"
)

var testSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))

func TestSender_Notify(t *testing.T) {
	var (
		body    []byte
		headers http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	sender, err := NewSender(server.URL, testSecret, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	sender.newID = func() string { return "msg_1" }

	err = sender.Notify(context.Background(), EventTemplateSaved, map[string]string{"id": "tpl-1"})
	require.NoError(t, err)

	assert.Equal(t, "msg_1", headers.Get("webhook-id"))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "msg_1", envelope.ID)
	assert.Equal(t, EventTemplateSaved, envelope.Type)
	assert.Equal(t, map[string]interface{}{"id": "tpl-1"}, envelope.Data)

	verifier, err := svix.NewWebhook(testSecret)
	require.NoError(t, err)
	assert.NoError(t, verifier.Verify(body, headers), "the signature must verify with the shared secret")
}

func TestSender_NotifyFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	sender, err := NewSender(server.URL, testSecret, nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	err = sender.Notify(context.Background(), EventTemplateDeleted, nil)
	assert.EqualError(t, err, "webhook endpoint returned status 502")

	unreachable, err := NewSender("http://127.0.0.1:1", testSecret, nil, logger.NewTestLogger(t))
	require.NoError(t, err)
	err = unreachable.Notify(context.Background(), EventTemplateDeleted, nil)
	assert.ErrorContains(t, err, "webhook request failed")
}

func TestNewSender_InvalidSecret(t *testing.T) {
	_, err := NewSender("https://hooks.example.com", "whsec_not base64!", nil, logger.NewTestLogger(t))
	assert.ErrorContains(t, err, "failed to create webhook signer")
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Notify(context.Background(), EventTemplateSaved, nil))
}
