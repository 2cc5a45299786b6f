package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
	"github.com/reachsuite/emailbuilder/pkg/logger"
	"github.com/reachsuite/emailbuilder/pkg/mailer"
	"github.com/reachsuite/emailbuilder/pkg/ratelimiter"
	"github.com/reachsuite/emailbuilder/pkg/tracing"
)

// Rate limiter namespaces for builder operations that call external services
const (
	GenerateRateLimitNamespace = "builder.generate"
	SendTestRateLimitNamespace = "builder.send_test"
)

const defaultExportName = "email-template"

var filenameReplacer = strings.NewReplacer("/", "-", "\\", "-", "\"", "", "\r", "", "\n", "")

// BuilderConfig tunes sessions and the quotas of external calls
type BuilderConfig struct {
	HistoryLimit   int
	GenerateLimit  int
	GenerateWindow time.Duration
	SendTestLimit  int
	SendTestWindow time.Duration
}

type BuilderService struct {
	templates domain.TemplateService
	sessions  *SessionStore
	ai        domain.AIClient
	mailer    mailer.Mailer
	limiter   *ratelimiter.Limiter
	renderer  *emailblocks.MergeTagRenderer
	config    BuilderConfig
	ids       emailblocks.IDGenerator
	logger    logger.Logger
}

func NewBuilderService(
	templates domain.TemplateService,
	sessions *SessionStore,
	ai domain.AIClient,
	mail mailer.Mailer,
	limiter *ratelimiter.Limiter,
	config BuilderConfig,
	logger logger.Logger,
) *BuilderService {
	limiter.SetPolicy(GenerateRateLimitNamespace, config.GenerateLimit, config.GenerateWindow)
	limiter.SetPolicy(SendTestRateLimitNamespace, config.SendTestLimit, config.SendTestWindow)

	return &BuilderService{
		templates: templates,
		sessions:  sessions,
		ai:        ai,
		mailer:    mail,
		limiter:   limiter,
		renderer:  emailblocks.NewMergeTagRenderer(),
		config:    config,
		ids:       emailblocks.UUIDGenerator{},
		logger:    logger,
	}
}

func (s *BuilderService) sessionOptions() []emailblocks.SessionOption {
	opts := []emailblocks.SessionOption{emailblocks.WithIDGenerator(s.ids)}
	if s.config.HistoryLimit > 0 {
		opts = append(opts, emailblocks.WithSessionHistoryLimit(s.config.HistoryLimit))
	}
	return opts
}

func view(bs *builderSession, changed bool, block *emailblocks.EmailBlock) *domain.SessionView {
	return &domain.SessionView{
		SessionID:  bs.id,
		TemplateID: bs.templateID,
		Changed:    changed,
		Block:      block,
		State:      bs.session.State(),
	}
}

// edit runs fn with the session locked and returns the resulting view
func (s *BuilderService) edit(
	ctx context.Context,
	method, sessionID string,
	fn func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error),
) (*domain.SessionView, error) {
	return tracing.TraceMethodWithResult(ctx, "BuilderService", method, func(ctx context.Context) (*domain.SessionView, error) {
		tracing.AddAttribute(ctx, "session_id", sessionID)

		bs, err := s.sessions.Get(sessionID)
		if err != nil {
			return nil, err
		}

		bs.mu.Lock()
		defer bs.mu.Unlock()

		changed, block, err := fn(bs.session)
		if err != nil {
			return nil, err
		}
		return view(bs, changed, block), nil
	})
}

// snapshotOf reads the document and its HTML under the session lock
func (s *BuilderService) snapshotOf(sessionID string) (*builderSession, emailblocks.Document, string, error) {
	bs, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, emailblocks.Document{}, "", err
	}
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs, bs.session.Document(), bs.session.HTML(), nil
}

// Open starts a session. A template that cannot be loaded is replaced by an empty
// document and the view carries the Starting Fresh notice.
func (s *BuilderService) Open(ctx context.Context, req *domain.OpenSessionRequest) (*domain.SessionView, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "BuilderService", "Open")
	defer span.End()

	var (
		doc        emailblocks.Document
		templateID string
		notice     string
	)

	if !req.IsNew() {
		tracing.AddAttribute(ctx, "template_id", req.TemplateID)
		loaded, err := s.loadDocument(ctx, req.TemplateID)
		if err != nil {
			s.logger.WithField("template_id", req.TemplateID).Warn(fmt.Sprintf("Failed to load template, starting fresh: %v", err))
			notice = domain.NoticeStartingFresh
		} else {
			doc = loaded
			templateID = req.TemplateID
		}
	}

	bs := s.sessions.Create(templateID, emailblocks.NewSession(doc, s.sessionOptions()...))
	s.logger.WithFields(map[string]interface{}{
		"session_id":  bs.id,
		"template_id": templateID,
	}).Debug("Builder session opened")

	bs.mu.Lock()
	defer bs.mu.Unlock()
	v := view(bs, false, nil)
	v.Notice = notice
	return v, nil
}

func (s *BuilderService) loadDocument(ctx context.Context, templateID string) (emailblocks.Document, error) {
	template, err := s.templates.GetTemplateByID(ctx, templateID)
	if err != nil {
		return emailblocks.Document{}, err
	}
	doc, repaired := template.Document(s.ids)
	if repaired > 0 {
		s.logger.WithFields(map[string]interface{}{
			"template_id": templateID,
			"repaired":    repaired,
		}).Warn("Template contained invalid blocks, defaults were applied")
	}
	return doc, nil
}

func (s *BuilderService) Get(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	return s.edit(ctx, "Get", sessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		return false, selected(session), nil
	})
}

func (s *BuilderService) Close(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.logger.WithField("session_id", sessionID).Debug("Builder session closed")
	return nil
}

func selected(session *emailblocks.Session) *emailblocks.EmailBlock {
	block, ok := session.BlockToEdit()
	if !ok {
		return nil
	}
	return &block
}

func (s *BuilderService) AddBlock(ctx context.Context, req *domain.AddBlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "AddBlock", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		block := session.AddBlock(req.Type)
		return true, &block, nil
	})
}

// UpdateBlock replaces a block without recording history; Commit records it
func (s *BuilderService) UpdateBlock(ctx context.Context, req *domain.UpdateBlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "UpdateBlock", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		if err := session.UpdateBlock(req.Block); err != nil {
			return false, nil, fmt.Errorf("failed to update block %s: %w", req.Block.ID, err)
		}
		return true, selected(session), nil
	})
}

func (s *BuilderService) UpdateNestedBlock(ctx context.Context, req *domain.UpdateNestedBlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "UpdateNestedBlock", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		if err := session.UpdateNestedBlock(req.ParentID, req.Block); err != nil {
			return false, nil, fmt.Errorf("failed to update nested block %s: %w", req.Block.ID, err)
		}
		return true, selected(session), nil
	})
}

func (s *BuilderService) Commit(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	return s.edit(ctx, "Commit", sessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		return session.Commit(), nil, nil
	})
}

func (s *BuilderService) DeleteBlock(ctx context.Context, req *domain.BlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "DeleteBlock", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		if err := session.DeleteBlock(req.BlockID); err != nil {
			return false, nil, fmt.Errorf("failed to delete block %s: %w", req.BlockID, err)
		}
		return true, nil, nil
	})
}

func (s *BuilderService) DuplicateBlock(ctx context.Context, req *domain.BlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "DuplicateBlock", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		block, err := session.DuplicateBlock(req.BlockID)
		if err != nil {
			return false, nil, fmt.Errorf("failed to duplicate block %s: %w", req.BlockID, err)
		}
		return true, &block, nil
	})
}

// MoveBlock reports Changed false when the block is already at the boundary
func (s *BuilderService) MoveBlock(ctx context.Context, req *domain.MoveBlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "MoveBlock", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		return session.MoveBlock(req.BlockID, req.Direction), nil, nil
	})
}

func (s *BuilderService) Select(ctx context.Context, req *domain.BlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "Select", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		if err := session.Select(req.BlockID); err != nil {
			return false, nil, fmt.Errorf("failed to select block %s: %w", req.BlockID, err)
		}
		return false, selected(session), nil
	})
}

func (s *BuilderService) SelectNested(ctx context.Context, req *domain.NestedBlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "SelectNested", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		if err := session.SelectNested(req.ParentID, req.NestedID); err != nil {
			return false, nil, fmt.Errorf("failed to select nested block %s: %w", req.NestedID, err)
		}
		return false, selected(session), nil
	})
}

func (s *BuilderService) ClearSelection(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	return s.edit(ctx, "ClearSelection", sessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		session.ClearSelection()
		return false, nil, nil
	})
}

func (s *BuilderService) AddToColumn(ctx context.Context, req *domain.AddToColumnRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "AddToColumn", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		block, err := session.AddToColumn(req.ParentID, req.ColumnIndex, req.Type)
		if err != nil {
			return false, nil, fmt.Errorf("failed to add %s to column %d of %s: %w", req.Type, req.ColumnIndex, req.ParentID, err)
		}
		return true, &block, nil
	})
}

func (s *BuilderService) RemoveFromColumn(ctx context.Context, req *domain.NestedBlockRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "RemoveFromColumn", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		if err := session.RemoveFromColumn(req.ParentID, req.NestedID); err != nil {
			return false, nil, fmt.Errorf("failed to remove nested block %s: %w", req.NestedID, err)
		}
		return true, nil, nil
	})
}

// SetStyles replaces the global styles as a whole; fields left empty stay empty
func (s *BuilderService) SetStyles(ctx context.Context, req *domain.SetStylesRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "SetStyles", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		session.SetGlobalStyles(req.GlobalStyles)
		return true, nil, nil
	})
}

// SetDetails updates name, subject and preheader, which are not part of undo history
func (s *BuilderService) SetDetails(ctx context.Context, req *domain.SetDetailsRequest) (*domain.SessionView, error) {
	return s.edit(ctx, "SetDetails", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		session.SetDetails(req.Name, req.Subject, req.Preheader)
		return true, nil, nil
	})
}

func (s *BuilderService) ApplyPreset(ctx context.Context, req *domain.ApplyPresetRequest) (*domain.SessionView, error) {
	preset, err := emailblocks.PresetByID(req.PresetID)
	if err != nil {
		return nil, fmt.Errorf("failed to apply preset %s: %w", req.PresetID, err)
	}
	return s.edit(ctx, "ApplyPreset", req.SessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		session.ApplyPreset(preset)
		return true, nil, nil
	})
}

func (s *BuilderService) Undo(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	return s.edit(ctx, "Undo", sessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		return session.Undo(), nil, nil
	})
}

func (s *BuilderService) Redo(ctx context.Context, sessionID string) (*domain.SessionView, error) {
	return s.edit(ctx, "Redo", sessionID, func(session *emailblocks.Session) (bool, *emailblocks.EmailBlock, error) {
		return session.Redo(), nil, nil
	})
}

func (s *BuilderService) HTML(ctx context.Context, sessionID string) (string, error) {
	_, _, html, err := s.snapshotOf(sessionID)
	return html, err
}

// Preview renders merge tags with the request data, or with sample values when none is given
func (s *BuilderService) Preview(ctx context.Context, req *domain.PreviewRequest) (string, error) {
	return tracing.TraceMethodWithResult(ctx, "BuilderService", "Preview", func(ctx context.Context) (string, error) {
		_, _, html, err := s.snapshotOf(req.SessionID)
		if err != nil {
			return "", err
		}

		data := req.Data
		if len(data) == 0 {
			data = emailblocks.SampleMergeData()
		}

		rendered, err := s.renderer.Render(ctx, html, data)
		if err != nil {
			return "", fmt.Errorf("failed to render preview: %w", err)
		}
		return rendered, nil
	})
}

func (s *BuilderService) Export(ctx context.Context, sessionID string) (*domain.ExportResult, error) {
	_, doc, html, err := s.snapshotOf(sessionID)
	if err != nil {
		return nil, err
	}
	return &domain.ExportResult{
		Filename: ExportFilename(doc.Name),
		HTML:     html,
	}, nil
}

// ExportFilename names the downloaded file after the template
func ExportFilename(name string) string {
	name = strings.TrimSpace(filenameReplacer.Replace(name))
	if name == "" {
		name = defaultExportName
	}
	return name + ".html"
}

// Save creates the template on first save and updates it afterwards
func (s *BuilderService) Save(ctx context.Context, sessionID string) (*domain.SaveResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "BuilderService", "Save")
	defer span.End()
	tracing.AddAttribute(ctx, "session_id", sessionID)

	bs, doc, html, err := s.snapshotOf(sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Name) == "" || strings.TrimSpace(doc.Subject) == "" {
		return nil, domain.NewValidationError("please provide a name and subject before saving")
	}

	bs.mu.Lock()
	templateID := bs.templateID
	bs.mu.Unlock()

	created := templateID == ""
	if created {
		templateID = uuid.New().String()
	}

	template := &domain.Template{ID: templateID}
	if err := template.ApplyDocument(doc, html); err != nil {
		return nil, err
	}

	if created {
		err = s.templates.CreateTemplate(ctx, template)
	} else {
		err = s.templates.UpdateTemplate(ctx, template)
	}
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"session_id":  sessionID,
			"template_id": templateID,
		}).Error(fmt.Sprintf("Failed to save template: %v", err))
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	bs.mu.Lock()
	defer bs.mu.Unlock()
	if created {
		bs.templateID = template.ID
	}

	return &domain.SaveResult{
		Template: template,
		Created:  created,
		View:     *view(bs, false, nil),
	}, nil
}

func (s *BuilderService) allow(namespace, operation, key string) error {
	decision := s.limiter.Allow(namespace, key)
	if !decision.Allowed {
		return &domain.ErrRateLimited{Operation: operation, RetryAfter: decision.RetryAfter}
	}
	return nil
}

// Generate asks the AI client for copy and folds it into the document. Empty output
// leaves the document untouched.
func (s *BuilderService) Generate(ctx context.Context, req *domain.GenerateRequest) (*domain.SessionView, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "BuilderService", "Generate")
	defer span.End()
	tracing.AddAttribute(ctx, "session_id", req.SessionID)

	bs, doc, _, err := s.snapshotOf(req.SessionID)
	if err != nil {
		return nil, err
	}
	if err := s.allow(GenerateRateLimitNamespace, "generate", req.SessionID); err != nil {
		return nil, err
	}

	output, err := s.ai.Generate(ctx, domain.NewEmailDraftRequest(req.Prompt, doc.Name, doc.Subject))
	if err != nil {
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to generate content: %v", err))
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if strings.TrimSpace(output) == "" {
		return nil, emailblocks.ErrEmptyAIContent
	}

	bs.mu.Lock()
	defer bs.mu.Unlock()
	bs.session.ApplyGeneratedContent(output)
	return view(bs, true, nil), nil
}

// SendTest mails the current document, with sample merge data, to one address
func (s *BuilderService) SendTest(ctx context.Context, req *domain.SendTestRequest) error {
	ctx, span := tracing.StartServiceSpan(ctx, "BuilderService", "SendTest")
	defer span.End()
	tracing.AddAttribute(ctx, "session_id", req.SessionID)

	_, doc, html, err := s.snapshotOf(req.SessionID)
	if err != nil {
		return err
	}
	if err := s.allow(SendTestRateLimitNamespace, "send test", req.SessionID); err != nil {
		return err
	}

	rendered, err := s.renderer.Render(ctx, html, emailblocks.SampleMergeData())
	if err != nil {
		return fmt.Errorf("failed to render test email: %w", err)
	}

	subject := doc.Subject
	if strings.TrimSpace(subject) == "" {
		subject = "Untitled email"
	}

	err = s.mailer.Send(ctx, mailer.Message{
		To:      req.Email,
		Subject: "[Test] " + subject,
		HTML:    rendered,
	})
	if err != nil {
		s.logger.WithField("session_id", req.SessionID).Error(fmt.Sprintf("Failed to send test email: %v", err))
		return fmt.Errorf("failed to send test email: %w", err)
	}
	return nil
}
