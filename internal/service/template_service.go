package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reachsuite/emailbuilder/internal/domain"
	"github.com/reachsuite/emailbuilder/pkg/cache"
	"github.com/reachsuite/emailbuilder/pkg/logger"
	"github.com/reachsuite/emailbuilder/pkg/tracing"
	"github.com/reachsuite/emailbuilder/pkg/webhooks"
)

const templateCacheTTL = 5 * time.Minute

// TemplateEvent is the webhook payload for template changes
type TemplateEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

type TemplateService struct {
	repo     domain.TemplateRepository
	notifier domain.TemplateEventNotifier
	logger   logger.Logger
	cache    *cache.Cache[*domain.Template]
	cacheTTL time.Duration
	now      func() time.Time
}

// NewTemplateService creates the service. A nil notifier disables change notifications.
func NewTemplateService(repo domain.TemplateRepository, notifier domain.TemplateEventNotifier, logger logger.Logger) *TemplateService {
	if notifier == nil {
		notifier = webhooks.Noop{}
	}
	return &TemplateService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		cache:    cache.New[*domain.Template](),
		cacheTTL: templateCacheTTL,
		now:      time.Now,
	}
}

// Stop releases the cache sweeper
func (s *TemplateService) Stop() {
	s.cache.Stop()
}

func (s *TemplateService) CreateTemplate(ctx context.Context, template *domain.Template) error {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "CreateTemplate")
	defer span.End()
	tracing.AddAttribute(ctx, "template_id", template.ID)

	now := s.now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	if err := template.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to create template: %v", err))
		return fmt.Errorf("failed to create template: %w", err)
	}

	s.cache.Set(template.ID, copyTemplate(template), s.cacheTTL)
	s.notify(ctx, webhooks.EventTemplateSaved, template)
	return nil
}

func (s *TemplateService) GetTemplateByID(ctx context.Context, id string) (*domain.Template, error) {
	return tracing.TraceMethodWithResult(ctx, "TemplateService", "GetTemplateByID", func(ctx context.Context) (*domain.Template, error) {
		tracing.AddAttribute(ctx, "template_id", id)

		template, err := s.cache.GetOrLoad(ctx, id, s.cacheTTL, func(ctx context.Context) (*domain.Template, error) {
			return s.repo.GetTemplateByID(ctx, id)
		})
		if err != nil {
			var notFound *domain.ErrTemplateNotFound
			if errors.As(err, &notFound) {
				return nil, err
			}
			s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to get template: %v", err))
			return nil, fmt.Errorf("failed to get template: %w", err)
		}

		return copyTemplate(template), nil
	})
}

func (s *TemplateService) GetTemplates(ctx context.Context) ([]*domain.Template, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "GetTemplates")
	defer span.End()

	templates, err := s.repo.GetTemplates(ctx)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to get templates: %v", err))
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	return templates, nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, template *domain.Template) error {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "UpdateTemplate")
	defer span.End()
	tracing.AddAttribute(ctx, "template_id", template.ID)

	template.UpdatedAt = s.now().UTC()
	if err := template.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	if err := s.repo.UpdateTemplate(ctx, template); err != nil {
		s.cache.Delete(template.ID)
		var notFound *domain.ErrTemplateNotFound
		if errors.As(err, &notFound) {
			return err
		}
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to update template: %v", err))
		return fmt.Errorf("failed to update template: %w", err)
	}

	s.cache.Set(template.ID, copyTemplate(template), s.cacheTTL)
	s.notify(ctx, webhooks.EventTemplateSaved, template)
	return nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) error {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "DeleteTemplate")
	defer span.End()
	tracing.AddAttribute(ctx, "template_id", id)

	s.cache.Delete(id)
	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		var notFound *domain.ErrTemplateNotFound
		if errors.As(err, &notFound) {
			return err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to delete template: %v", err))
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.notify(ctx, webhooks.EventTemplateDeleted, &domain.Template{ID: id})
	return nil
}

// notify logs delivery failures instead of returning them
func (s *TemplateService) notify(ctx context.Context, eventType string, template *domain.Template) {
	event := TemplateEvent{
		ID:        template.ID,
		Name:      template.Name,
		Subject:   template.Subject,
		UpdatedAt: template.UpdatedAt,
	}
	if err := s.notifier.Notify(ctx, eventType, event); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"template_id": template.ID,
			"event":       eventType,
		}).Warn(fmt.Sprintf("Failed to deliver template webhook: %v", err))
	}
}

func copyTemplate(template *domain.Template) *domain.Template {
	if template == nil {
		return nil
	}
	copied := *template
	return &copied
}
