package emailblocks

import (
	"context"
	"fmt"
	"time"

	"github.com/osteele/liquid"
)

// Security limits for merge tag rendering
const (
	DefaultRenderTimeout   = 5 * time.Second
	DefaultMaxTemplateSize = 512 * 1024 // generated documents carry inline CSS
)

// MergeTag is a placeholder the editor offers for personalisation
type MergeTag struct {
	Tag         string `json:"tag"`
	Label       string `json:"label"`
	SampleValue string `json:"sampleValue"`
}

// DefaultMergeTags lists the tags available in the merge tag panel
func DefaultMergeTags() []MergeTag {
	return []MergeTag{
		{Tag: "firstName", Label: "First name", SampleValue: "Jane"},
		{Tag: "lastName", Label: "Last name", SampleValue: "Smith"},
		{Tag: "email", Label: "Email", SampleValue: "jane.smith@example.com"},
		{Tag: "company", Label: "Company", SampleValue: "Acme Corp"},
		{Tag: "unsubscribe_url", Label: "Unsubscribe link", SampleValue: "https://example.com/unsubscribe"},
	}
}

// SampleMergeData returns the sample values of DefaultMergeTags keyed by tag
func SampleMergeData() map[string]interface{} {
	data := make(map[string]interface{})
	for _, tag := range DefaultMergeTags() {
		data[tag.Tag] = tag.SampleValue
	}
	return data
}

// MergeTagRenderer renders Liquid merge tags with a size limit and a timeout
type MergeTagRenderer struct {
	timeout time.Duration
	maxSize int
	engine  *liquid.Engine
}

// NewMergeTagRenderer creates a renderer with default limits
func NewMergeTagRenderer() *MergeTagRenderer {
	return NewMergeTagRendererWithOptions(DefaultRenderTimeout, DefaultMaxTemplateSize)
}

// NewMergeTagRendererWithOptions creates a renderer with custom limits
func NewMergeTagRendererWithOptions(timeout time.Duration, maxSize int) *MergeTagRenderer {
	return &MergeTagRenderer{
		timeout: timeout,
		maxSize: maxSize,
		engine:  liquid.NewEngine(),
	}
}

// Render substitutes merge tags in content. Tags missing from data render empty.
func (r *MergeTagRenderer) Render(ctx context.Context, content string, data map[string]interface{}) (string, error) {
	if len(content) > r.maxSize {
		return "", fmt.Errorf("template size (%d bytes) exceeds maximum allowed size (%d bytes)", len(content), r.maxSize)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				errorChan <- fmt.Errorf("panic during liquid rendering: %v", rec)
			}
		}()

		rendered, err := r.engine.ParseAndRenderString(content, data)
		if err != nil {
			errorChan <- fmt.Errorf("liquid rendering failed: %w", err)
			return
		}
		resultChan <- rendered
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("liquid rendering stopped after %v: %w", r.timeout, ctx.Err())
	}
}
