package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
)

//go:generate mockgen -destination mocks/mock_template_service.go -package mocks github.com/reachsuite/emailbuilder/internal/domain TemplateService
//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/reachsuite/emailbuilder/internal/domain TemplateRepository

const (
	maxTemplateNameLength    = 255
	maxTemplateSubjectLength = 998
	templateIDPattern        = `^[a-zA-Z0-9_-]{1,64}$`
)

// Template is a stored email. Blocks and GlobalStyles hold JSON text, the same
// shape the editor saves.
type Template struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	Preheader    string    `json:"preheader"`
	HTMLContent  string    `json:"htmlContent"`
	Blocks       string    `json:"blocks"`
	GlobalStyles string    `json:"globalStyles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate checks the fields persisted for a template
func (t *Template) Validate() error {
	if !govalidator.Matches(t.ID, templateIDPattern) {
		return NewValidationError("id must be 1 to 64 letters, digits, dashes or underscores")
	}
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("name is required")
	}
	if len(t.Name) > maxTemplateNameLength {
		return NewValidationError(fmt.Sprintf("name length must be at most %d", maxTemplateNameLength))
	}
	if strings.TrimSpace(t.Subject) == "" {
		return NewValidationError("subject is required")
	}
	if len(t.Subject) > maxTemplateSubjectLength {
		return NewValidationError(fmt.Sprintf("subject length must be at most %d", maxTemplateSubjectLength))
	}
	if t.Blocks != "" && !gjson.Parse(t.Blocks).IsArray() {
		return NewValidationError("blocks must be a JSON array")
	}
	if t.GlobalStyles != "" && !gjson.Parse(t.GlobalStyles).IsObject() {
		return NewValidationError("globalStyles must be a JSON object")
	}
	return nil
}

// Document decodes the template into an editable document. Stored blocks win and
// get fresh ids; when none of them survive decoding the HTML content is parsed.
// Stored styles overlay the defaults. repaired counts the stored values that were
// replaced by defaults or dropped.
func (t *Template) Document(ids emailblocks.IDGenerator) (doc emailblocks.Document, repaired int) {
	doc = emailblocks.Document{
		Name:         t.Name,
		Subject:      t.Subject,
		Preheader:    t.Preheader,
		Blocks:       []emailblocks.EmailBlock{},
		GlobalStyles: emailblocks.DefaultGlobalStyles(),
	}

	if blocks := unwrapJSON(t.Blocks); blocks.IsArray() && len(blocks.Array()) > 0 {
		decoded, n, err := emailblocks.DecodeBlocks([]byte(blocks.Raw))
		if err == nil {
			doc.Blocks = emailblocks.ReassignIDs(decoded, ids)
			repaired += n
		}
	}
	if len(doc.Blocks) == 0 && strings.TrimSpace(t.HTMLContent) != "" {
		doc.Blocks = emailblocks.ParseHTML(t.HTMLContent, ids)
	}

	if styles := unwrapJSON(t.GlobalStyles); styles.IsObject() {
		// values of the wrong type are skipped, the rest still decode
		var overlay emailblocks.GlobalStyles
		if err := json.Unmarshal([]byte(styles.Raw), &overlay); err != nil {
			repaired++
		}
		doc.GlobalStyles = doc.GlobalStyles.Merge(overlay)
	}

	return doc, repaired
}

// ApplyDocument stores doc and its rendered HTML on the template
func (t *Template) ApplyDocument(doc emailblocks.Document, html string) error {
	blocks, err := emailblocks.MarshalBlocks(doc.Blocks)
	if err != nil {
		return fmt.Errorf("failed to encode blocks: %w", err)
	}
	styles, err := json.Marshal(doc.GlobalStyles)
	if err != nil {
		return fmt.Errorf("failed to encode global styles: %w", err)
	}

	t.Name = doc.Name
	t.Subject = doc.Subject
	t.Preheader = doc.Preheader
	t.HTMLContent = html
	t.Blocks = string(blocks)
	t.GlobalStyles = string(styles)
	return nil
}

// unwrapJSON accepts either raw JSON or JSON encoded as a string
func unwrapJSON(value string) gjson.Result {
	result := gjson.Parse(value)
	if result.Type == gjson.String && gjson.Valid(result.Str) {
		return gjson.Parse(result.Str)
	}
	return result
}

// NormalizeJSONField turns a request field that may be a JSON string or raw JSON into JSON text
func NormalizeJSONField(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if !gjson.ValidBytes(raw) {
		return "", fmt.Errorf("invalid JSON")
	}

	result := unwrapJSON(string(raw))
	switch {
	case result.Type == gjson.Null:
		return "", nil
	case result.Type == gjson.String && result.Str == "":
		return "", nil
	case result.IsArray(), result.IsObject():
		return result.Raw, nil
	default:
		return "", fmt.Errorf("expected a JSON array or object")
	}
}

// TemplateService manages stored templates
type TemplateService interface {
	CreateTemplate(ctx context.Context, template *Template) error
	GetTemplateByID(ctx context.Context, id string) (*Template, error)
	GetTemplates(ctx context.Context) ([]*Template, error)
	UpdateTemplate(ctx context.Context, template *Template) error
	DeleteTemplate(ctx context.Context, id string) error
}

// TemplateRepository persists templates
type TemplateRepository interface {
	// CreateTemplate inserts a new template
	CreateTemplate(ctx context.Context, template *Template) error

	// GetTemplateByID returns a live template or ErrTemplateNotFound
	GetTemplateByID(ctx context.Context, id string) (*Template, error)

	// GetTemplates lists live templates, most recently updated first
	GetTemplates(ctx context.Context) ([]*Template, error)

	// UpdateTemplate overwrites a live template
	UpdateTemplate(ctx context.Context, template *Template) error

	// DeleteTemplate soft deletes a template
	DeleteTemplate(ctx context.Context, id string) error
}

//go:generate mockgen -destination mocks/mock_template_event_notifier.go -package mocks github.com/reachsuite/emailbuilder/internal/domain TemplateEventNotifier

// TemplateEventNotifier publishes template lifecycle events
type TemplateEventNotifier interface {
	Notify(ctx context.Context, eventType string, data interface{}) error
}

// TemplatePayload is the body of template create and update requests.
// Blocks and GlobalStyles may be sent as JSON text or as JSON values.
type TemplatePayload struct {
	Name         string          `json:"name"`
	Subject      string          `json:"subject"`
	Preheader    string          `json:"preheader,omitempty"`
	HTMLContent  string          `json:"htmlContent"`
	Blocks       json.RawMessage `json:"blocks,omitempty"`
	GlobalStyles json.RawMessage `json:"globalStyles,omitempty"`
}

func (p *TemplatePayload) toTemplate(id string, action string) (*Template, error) {
	blocks, err := NormalizeJSONField(p.Blocks)
	if err != nil {
		return nil, fmt.Errorf("invalid %s template request: blocks: %w", action, err)
	}
	styles, err := NormalizeJSONField(p.GlobalStyles)
	if err != nil {
		return nil, fmt.Errorf("invalid %s template request: globalStyles: %w", action, err)
	}

	template := &Template{
		ID:           id,
		Name:         strings.TrimSpace(p.Name),
		Subject:      p.Subject,
		Preheader:    p.Preheader,
		HTMLContent:  p.HTMLContent,
		Blocks:       blocks,
		GlobalStyles: styles,
	}
	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s template request: %w", action, err)
	}
	return template, nil
}

// CreateTemplateRequest creates a template. ID is generated when empty.
type CreateTemplateRequest struct {
	ID string `json:"id,omitempty"`
	TemplatePayload
}

func (r *CreateTemplateRequest) Validate() (*Template, error) {
	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}
	return r.toTemplate(id, "create")
}

type UpdateTemplateRequest struct {
	ID string `json:"id"`
	TemplatePayload
}

func (r *UpdateTemplateRequest) Validate() (*Template, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("invalid update template request: id is required")
	}
	return r.toTemplate(r.ID, "update")
}

type GetTemplateRequest struct {
	ID string `json:"id"`
}

func (r *GetTemplateRequest) FromURLParams(queryParams url.Values) error {
	r.ID = queryParams.Get("id")
	if r.ID == "" {
		return fmt.Errorf("invalid get template request: id is required")
	}
	if !govalidator.Matches(r.ID, templateIDPattern) {
		return fmt.Errorf("invalid get template request: id is malformed")
	}
	return nil
}

type DeleteTemplateRequest struct {
	ID string `json:"id"`
}

func (r *DeleteTemplateRequest) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("invalid delete template request: id is required")
	}
	return nil
}
