package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/internal/domain/mocks"
	apphttp "github.com/reachsuite/emailbuilder/internal/http"
	"github.com/reachsuite/emailbuilder/internal/http/middleware"
	"github.com/reachsuite/emailbuilder/pkg/logger"
)

func setupTemplateHandlerTest(t *testing.T) (*mocks.MockTemplateService, *http.ServeMux, string) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockTemplateService(ctrl)

	secretKey := paseto.NewV4AsymmetricSecretKey()
	auth := middleware.NewAuthMiddleware(&middleware.PasetoVerifier{PublicKey: secretKey.Public()})
	token := middleware.SignPasetoToken(secretKey, "editor-1", "editor@example.com", time.Hour)

	handler := apphttp.NewTemplateHandler(mockService, auth, logger.NewTestLogger(t))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mockService, mux, token
}

func doRequest(mux *http.ServeMux, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestTemplateHandler_Auth(t *testing.T) {
	_, mux, _ := setupTemplateHandlerTest(t)
	w := doRequest(mux, http.MethodGet, "/api/templates.list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTemplateHandler_List(t *testing.T) {
	mockService, mux, token := setupTemplateHandlerTest(t)

	mockService.EXPECT().GetTemplates(gomock.Any()).Return([]*domain.Template{{ID: "a", Name: "A"}}, nil)
	w := doRequest(mux, http.MethodGet, "/api/templates.list", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Templates []domain.Template `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Templates, 1)
	assert.Equal(t, "A", body.Templates[0].Name)

	mockService.EXPECT().GetTemplates(gomock.Any()).Return(nil, errors.New("db down"))
	w = doRequest(mux, http.MethodGet, "/api/templates.list", token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doRequest(mux, http.MethodPost, "/api/templates.list", token, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestTemplateHandler_Get(t *testing.T) {
	mockService, mux, token := setupTemplateHandlerTest(t)

	mockService.EXPECT().GetTemplateByID(gomock.Any(), "tmpl-1").Return(&domain.Template{ID: "tmpl-1", Name: "Welcome"}, nil)
	w := doRequest(mux, http.MethodGet, "/api/templates.get?id=tmpl-1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Welcome"`)

	mockService.EXPECT().GetTemplateByID(gomock.Any(), "missing").Return(nil, &domain.ErrTemplateNotFound{Message: "template not found"})
	w = doRequest(mux, http.MethodGet, "/api/templates.get?id=missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(mux, http.MethodGet, "/api/templates.get", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateHandler_Create(t *testing.T) {
	mockService, mux, token := setupTemplateHandlerTest(t)

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().CreateTemplate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, template *domain.Template) error {
			assert.NotEmpty(t, template.ID)
			assert.Equal(t, "Welcome", template.Name)
			assert.Equal(t, `[{"id":"b1","type":"spacer"}]`, template.Blocks)
			return nil
		})

		w := doRequest(mux, http.MethodPost, "/api/templates.create", token, map[string]interface{}{
			"name":        "Welcome",
			"subject":     "Hello",
			"htmlContent": "<p>Hi</p>",
			"blocks":      `[{"id":"b1","type":"spacer"}]`,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Validation error", func(t *testing.T) {
		w := doRequest(mux, http.MethodPost, "/api/templates.create", token, map[string]interface{}{"subject": "Hello"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name is required")
	})

	t.Run("Invalid body", func(t *testing.T) {
		w := doRequest(mux, http.MethodPost, "/api/templates.create", token, "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid request body")
	})
}

func TestTemplateHandler_UpdateAndDelete(t *testing.T) {
	mockService, mux, token := setupTemplateHandlerTest(t)

	mockService.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).Return(&domain.ErrTemplateNotFound{Message: "template not found"})
	w := doRequest(mux, http.MethodPost, "/api/templates.update", token, map[string]interface{}{
		"id": "tmpl-1", "name": "Welcome", "subject": "Hello",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(mux, http.MethodPost, "/api/templates.update", token, map[string]interface{}{"name": "Welcome", "subject": "Hello"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockService.EXPECT().DeleteTemplate(gomock.Any(), "tmpl-1").Return(nil)
	w = doRequest(mux, http.MethodPost, "/api/templates.delete", token, map[string]string{"id": "tmpl-1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = doRequest(mux, http.MethodPost, "/api/templates.delete", token, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
