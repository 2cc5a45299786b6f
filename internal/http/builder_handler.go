package http

import (
	"context"
	"mime"
	"net/http"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/internal/http/middleware"
	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
	"github.com/reachsuite/emailbuilder/pkg/logger"
)

type BuilderHandler struct {
	service domain.BuilderService
	auth    *middleware.AuthConfig
	logger  logger.Logger
}

func NewBuilderHandler(service domain.BuilderService, auth *middleware.AuthConfig, logger logger.Logger) *BuilderHandler {
	return &BuilderHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *BuilderHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()
	routes := map[string]http.HandlerFunc{
		"open":              h.handleOpen,
		"get":               h.handleGet,
		"close":             h.handleClose,
		"addBlock":          h.handleAddBlock,
		"updateBlock":       h.handleUpdateBlock,
		"updateNestedBlock": h.handleUpdateNestedBlock,
		"commit":            h.sessionAction("commit changes", h.service.Commit),
		"deleteBlock":       h.blockAction("delete block", h.service.DeleteBlock),
		"duplicateBlock":    h.blockAction("duplicate block", h.service.DuplicateBlock),
		"moveBlock":         h.handleMoveBlock,
		"select":            h.blockAction("select block", h.service.Select),
		"selectNested":      h.nestedAction("select nested block", h.service.SelectNested),
		"clearSelection":    h.sessionAction("clear selection", h.service.ClearSelection),
		"addToColumn":       h.handleAddToColumn,
		"removeFromColumn":  h.nestedAction("remove nested block", h.service.RemoveFromColumn),
		"setStyles":         h.handleSetStyles,
		"setDetails":        h.handleSetDetails,
		"applyPreset":       h.handleApplyPreset,
		"presets":           h.handlePresets,
		"mergeTags":         h.handleMergeTags,
		"undo":              h.sessionAction("undo", h.service.Undo),
		"redo":              h.sessionAction("redo", h.service.Redo),
		"html":              h.handleHTML,
		"preview":           h.handlePreview,
		"export":            h.handleExport,
		"save":              h.handleSave,
		"generate":          h.handleGenerate,
		"sendTest":          h.handleSendTest,
	}

	// Register RPC-style endpoints with dot notation
	for name, handler := range routes {
		mux.Handle("/api/builder."+name, requireAuth(handler))
	}
}

func (h *BuilderHandler) writeView(w http.ResponseWriter, action string, view *domain.SessionView, err error) {
	if err != nil {
		writeServiceError(w, h.logger, action, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session": view,
	})
}

// sessionIDFromQuery reads session_id for GET endpoints
func sessionIDFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return "", false
	}
	req := domain.SessionRequest{SessionID: r.URL.Query().Get("session_id")}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return req.SessionID, true
}

func (h *BuilderHandler) sessionAction(action string, op func(ctx context.Context, sessionID string) (*domain.SessionView, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SessionRequest
		if !decodeRequest(w, r, h.logger, &req) {
			return
		}
		view, err := op(r.Context(), req.SessionID)
		h.writeView(w, action, view, err)
	}
}

func (h *BuilderHandler) blockAction(action string, op func(ctx context.Context, req *domain.BlockRequest) (*domain.SessionView, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.BlockRequest
		if !decodeRequest(w, r, h.logger, &req) {
			return
		}
		view, err := op(r.Context(), &req)
		h.writeView(w, action, view, err)
	}
}

func (h *BuilderHandler) nestedAction(action string, op func(ctx context.Context, req *domain.NestedBlockRequest) (*domain.SessionView, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.NestedBlockRequest
		if !decodeRequest(w, r, h.logger, &req) {
			return
		}
		view, err := op(r.Context(), &req)
		h.writeView(w, action, view, err)
	}
}

func (h *BuilderHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req domain.OpenSessionRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.Open(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, "open builder session", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session": view,
	})
}

func (h *BuilderHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromQuery(w, r)
	if !ok {
		return
	}
	view, err := h.service.Get(r.Context(), sessionID)
	h.writeView(w, "get builder session", view, err)
}

func (h *BuilderHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	if err := h.service.Close(r.Context(), req.SessionID); err != nil {
		writeServiceError(w, h.logger, "close builder session", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *BuilderHandler) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	var req domain.AddBlockRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.AddBlock(r.Context(), &req)
	h.writeView(w, "add block", view, err)
}

func (h *BuilderHandler) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateBlockRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.UpdateBlock(r.Context(), &req)
	h.writeView(w, "update block", view, err)
}

func (h *BuilderHandler) handleUpdateNestedBlock(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateNestedBlockRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.UpdateNestedBlock(r.Context(), &req)
	h.writeView(w, "update nested block", view, err)
}

func (h *BuilderHandler) handleMoveBlock(w http.ResponseWriter, r *http.Request) {
	var req domain.MoveBlockRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.MoveBlock(r.Context(), &req)
	h.writeView(w, "move block", view, err)
}

func (h *BuilderHandler) handleAddToColumn(w http.ResponseWriter, r *http.Request) {
	var req domain.AddToColumnRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.AddToColumn(r.Context(), &req)
	h.writeView(w, "add block to column", view, err)
}

func (h *BuilderHandler) handleSetStyles(w http.ResponseWriter, r *http.Request) {
	var req domain.SetStylesRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.SetStyles(r.Context(), &req)
	h.writeView(w, "set global styles", view, err)
}

func (h *BuilderHandler) handleSetDetails(w http.ResponseWriter, r *http.Request) {
	var req domain.SetDetailsRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.SetDetails(r.Context(), &req)
	h.writeView(w, "set email details", view, err)
}

func (h *BuilderHandler) handleApplyPreset(w http.ResponseWriter, r *http.Request) {
	var req domain.ApplyPresetRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.ApplyPreset(r.Context(), &req)
	h.writeView(w, "apply preset", view, err)
}

func (h *BuilderHandler) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"presets": emailblocks.Presets(),
	})
}

func (h *BuilderHandler) handleMergeTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"merge_tags": emailblocks.DefaultMergeTags(),
	})
}

func (h *BuilderHandler) handleHTML(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromQuery(w, r)
	if !ok {
		return
	}
	html, err := h.service.HTML(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.logger, "generate HTML", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"html": html,
	})
}

func (h *BuilderHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req domain.PreviewRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	html, err := h.service.Preview(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, "render preview", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"html": html,
	})
}

// handleExport serves the HTML document as a file download
func (h *BuilderHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromQuery(w, r)
	if !ok {
		return
	}
	export, err := h.service.Export(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, h.logger, "export HTML", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.HTML))
}

func (h *BuilderHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	result, err := h.service.Save(r.Context(), req.SessionID)
	if err != nil {
		writeServiceError(w, h.logger, "save template", err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

func (h *BuilderHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	view, err := h.service.Generate(r.Context(), &req)
	h.writeView(w, "generate content", view, err)
}

func (h *BuilderHandler) handleSendTest(w http.ResponseWriter, r *http.Request) {
	var req domain.SendTestRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	if err := h.service.SendTest(r.Context(), &req); err != nil {
		writeServiceError(w, h.logger, "send test email", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
