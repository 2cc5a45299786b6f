package http

import (
	"net/http"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/internal/http/middleware"
	"github.com/reachsuite/emailbuilder/pkg/logger"
)

type TemplateHandler struct {
	service domain.TemplateService
	auth    *middleware.AuthConfig
	logger  logger.Logger
}

func NewTemplateHandler(service domain.TemplateService, auth *middleware.AuthConfig, logger logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *TemplateHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/templates.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/templates.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/templates.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/templates.update", requireAuth(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/templates.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
}

func (h *TemplateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	templates, err := h.service.GetTemplates(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, "get templates", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
	})
}

func (h *TemplateHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetTemplateRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := h.service.GetTemplateByID(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, h.logger, "get template", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTemplateRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	template, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.CreateTemplate(r.Context(), template); err != nil {
		writeServiceError(w, h.logger, "create template", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateTemplateRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	template, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateTemplate(r.Context(), template); err != nil {
		writeServiceError(w, h.logger, "update template", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req domain.DeleteTemplateRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), req.ID); err != nil {
		writeServiceError(w, h.logger, "delete template", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
