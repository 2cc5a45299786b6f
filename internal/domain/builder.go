package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
)

//go:generate mockgen -destination mocks/mock_builder_service.go -package mocks github.com/reachsuite/emailbuilder/internal/domain BuilderService

// Notice shown when a template could not be loaded and the editor starts empty
const NoticeStartingFresh = "Starting Fresh"

// SessionView is returned by every builder operation that touches a session
type SessionView struct {
	SessionID  string                   `json:"session_id"`
	TemplateID string                   `json:"template_id,omitempty"`
	Notice     string                   `json:"notice,omitempty"`
	Changed    bool                     `json:"changed"`
	Block      *emailblocks.EmailBlock  `json:"block,omitempty"`
	State      emailblocks.SessionState `json:"state"`
}

// ExportResult is a downloadable HTML file
type ExportResult struct {
	Filename string `json:"filename"`
	HTML     string `json:"html"`
}

// SaveResult carries the persisted template and the session it came from
type SaveResult struct {
	Template *Template   `json:"template"`
	Created  bool        `json:"created"`
	View     SessionView `json:"session"`
}

// BuilderService hosts editing sessions over email documents
type BuilderService interface {
	Open(ctx context.Context, req *OpenSessionRequest) (*SessionView, error)
	Get(ctx context.Context, sessionID string) (*SessionView, error)
	Close(ctx context.Context, sessionID string) error

	AddBlock(ctx context.Context, req *AddBlockRequest) (*SessionView, error)
	UpdateBlock(ctx context.Context, req *UpdateBlockRequest) (*SessionView, error)
	UpdateNestedBlock(ctx context.Context, req *UpdateNestedBlockRequest) (*SessionView, error)
	Commit(ctx context.Context, sessionID string) (*SessionView, error)
	DeleteBlock(ctx context.Context, req *BlockRequest) (*SessionView, error)
	DuplicateBlock(ctx context.Context, req *BlockRequest) (*SessionView, error)
	MoveBlock(ctx context.Context, req *MoveBlockRequest) (*SessionView, error)
	Select(ctx context.Context, req *BlockRequest) (*SessionView, error)
	SelectNested(ctx context.Context, req *NestedBlockRequest) (*SessionView, error)
	ClearSelection(ctx context.Context, sessionID string) (*SessionView, error)
	AddToColumn(ctx context.Context, req *AddToColumnRequest) (*SessionView, error)
	RemoveFromColumn(ctx context.Context, req *NestedBlockRequest) (*SessionView, error)
	SetStyles(ctx context.Context, req *SetStylesRequest) (*SessionView, error)
	SetDetails(ctx context.Context, req *SetDetailsRequest) (*SessionView, error)
	ApplyPreset(ctx context.Context, req *ApplyPresetRequest) (*SessionView, error)
	Undo(ctx context.Context, sessionID string) (*SessionView, error)
	Redo(ctx context.Context, sessionID string) (*SessionView, error)

	HTML(ctx context.Context, sessionID string) (string, error)
	Preview(ctx context.Context, req *PreviewRequest) (string, error)
	Export(ctx context.Context, sessionID string) (*ExportResult, error)
	Save(ctx context.Context, sessionID string) (*SaveResult, error)
	Generate(ctx context.Context, req *GenerateRequest) (*SessionView, error)
	SendTest(ctx context.Context, req *SendTestRequest) error
}

func requireSession(op, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("invalid %s request: session_id is required", op)
	}
	return nil
}

type OpenSessionRequest struct {
	TemplateID string `json:"template_id"`
}

// IsNew reports whether the request asks for an empty document
func (r *OpenSessionRequest) IsNew() bool {
	return r.TemplateID == "" || r.TemplateID == "new"
}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *SessionRequest) Validate() error {
	return requireSession("session", r.SessionID)
}

type AddBlockRequest struct {
	SessionID string                `json:"session_id"`
	Type      emailblocks.BlockType `json:"type"`
}

func (r *AddBlockRequest) Validate() error {
	if err := requireSession("add block", r.SessionID); err != nil {
		return err
	}
	if !r.Type.IsKnown() {
		return fmt.Errorf("invalid add block request: unknown block type %q", r.Type)
	}
	return nil
}

type UpdateBlockRequest struct {
	SessionID string                 `json:"session_id"`
	Block     emailblocks.EmailBlock `json:"block"`
}

func (r *UpdateBlockRequest) Validate() error {
	if err := requireSession("update block", r.SessionID); err != nil {
		return err
	}
	if r.Block.ID == "" {
		return fmt.Errorf("invalid update block request: block.id is required")
	}
	return nil
}

type UpdateNestedBlockRequest struct {
	SessionID string                 `json:"session_id"`
	ParentID  string                 `json:"parent_id"`
	Block     emailblocks.EmailBlock `json:"block"`
}

func (r *UpdateNestedBlockRequest) Validate() error {
	if err := requireSession("update nested block", r.SessionID); err != nil {
		return err
	}
	if r.ParentID == "" {
		return fmt.Errorf("invalid update nested block request: parent_id is required")
	}
	if r.Block.ID == "" {
		return fmt.Errorf("invalid update nested block request: block.id is required")
	}
	return nil
}

// BlockRequest targets one top-level block
type BlockRequest struct {
	SessionID string `json:"session_id"`
	BlockID   string `json:"block_id"`
}

func (r *BlockRequest) Validate() error {
	if err := requireSession("block", r.SessionID); err != nil {
		return err
	}
	if r.BlockID == "" {
		return fmt.Errorf("invalid block request: block_id is required")
	}
	return nil
}

// NestedBlockRequest targets a block inside a columns block
type NestedBlockRequest struct {
	SessionID string `json:"session_id"`
	ParentID  string `json:"parent_id"`
	NestedID  string `json:"nested_id"`
}

func (r *NestedBlockRequest) Validate() error {
	if err := requireSession("nested block", r.SessionID); err != nil {
		return err
	}
	if r.ParentID == "" || r.NestedID == "" {
		return fmt.Errorf("invalid nested block request: parent_id and nested_id are required")
	}
	return nil
}

type MoveBlockRequest struct {
	SessionID string                `json:"session_id"`
	BlockID   string                `json:"block_id"`
	Direction emailblocks.Direction `json:"direction"`
}

func (r *MoveBlockRequest) Validate() error {
	if err := requireSession("move block", r.SessionID); err != nil {
		return err
	}
	if r.BlockID == "" {
		return fmt.Errorf("invalid move block request: block_id is required")
	}
	if r.Direction != emailblocks.DirectionUp && r.Direction != emailblocks.DirectionDown {
		return fmt.Errorf("invalid move block request: direction must be up or down")
	}
	return nil
}

type AddToColumnRequest struct {
	SessionID   string                `json:"session_id"`
	ParentID    string                `json:"parent_id"`
	ColumnIndex int                   `json:"column_index"`
	Type        emailblocks.BlockType `json:"type"`
}

func (r *AddToColumnRequest) Validate() error {
	if err := requireSession("add to column", r.SessionID); err != nil {
		return err
	}
	if r.ParentID == "" {
		return fmt.Errorf("invalid add to column request: parent_id is required")
	}
	if r.ColumnIndex < 0 {
		return fmt.Errorf("invalid add to column request: column_index must not be negative")
	}
	if !r.Type.IsKnown() {
		return fmt.Errorf("invalid add to column request: unknown block type %q", r.Type)
	}
	return nil
}

type SetStylesRequest struct {
	SessionID    string                   `json:"session_id"`
	GlobalStyles emailblocks.GlobalStyles `json:"globalStyles"`
}

func (r *SetStylesRequest) Validate() error {
	return requireSession("set styles", r.SessionID)
}

type SetDetailsRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Preheader string `json:"preheader"`
}

func (r *SetDetailsRequest) Validate() error {
	if err := requireSession("set details", r.SessionID); err != nil {
		return err
	}
	if len(r.Name) > maxTemplateNameLength {
		return fmt.Errorf("invalid set details request: name length must be at most %d", maxTemplateNameLength)
	}
	return nil
}

type ApplyPresetRequest struct {
	SessionID string `json:"session_id"`
	PresetID  string `json:"preset_id"`
}

func (r *ApplyPresetRequest) Validate() error {
	if err := requireSession("apply preset", r.SessionID); err != nil {
		return err
	}
	if r.PresetID == "" {
		return fmt.Errorf("invalid apply preset request: preset_id is required")
	}
	return nil
}

// PreviewRequest renders merge tags with Data, or with sample values when Data is empty
type PreviewRequest struct {
	SessionID string                 `json:"session_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

func (r *PreviewRequest) Validate() error {
	return requireSession("preview", r.SessionID)
}

type GenerateRequest struct {
	SessionID string `json:"session_id"`
	Prompt    string `json:"prompt"`
}

func (r *GenerateRequest) Validate() error {
	if err := requireSession("generate", r.SessionID); err != nil {
		return err
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return NewValidationError("prompt is required")
	}
	return nil
}

type SendTestRequest struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
}

func (r *SendTestRequest) Validate() error {
	if err := requireSession("send test", r.SessionID); err != nil {
		return err
	}
	if !govalidator.IsEmail(r.Email) {
		return NewValidationError("a valid email address is required")
	}
	return nil
}
