package emailblocks

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeTagRenderer(t *testing.T) {
	renderer := NewMergeTagRenderer()
	ctx := context.Background()

	t.Run("substitutes sample data", func(t *testing.T) {
		out, err := renderer.Render(ctx, "Hi {{firstName}} from {{company}}", SampleMergeData())
		require.NoError(t, err)
		assert.Equal(t, "Hi Jane from Acme Corp", out)
	})

	t.Run("missing tags render empty", func(t *testing.T) {
		out, err := renderer.Render(ctx, "Hi {{nickname}}!", SampleMergeData())
		require.NoError(t, err)
		assert.Equal(t, "Hi !", out)
	})

	t.Run("generated footer links resolve", func(t *testing.T) {
		html := GenerateHTML(blocksOf(BlockTypeFooter), DefaultGlobalStyles(), "S", "")
		out, err := renderer.Render(ctx, html, SampleMergeData())
		require.NoError(t, err)
		assert.Contains(t, out, `href="https://example.com/unsubscribe"`)
	})

	t.Run("syntax errors are reported", func(t *testing.T) {
		_, err := renderer.Render(ctx, "{% if %}", nil)
		assert.Error(t, err)
	})

	t.Run("oversized templates are rejected", func(t *testing.T) {
		small := NewMergeTagRendererWithOptions(time.Second, 16)
		_, err := small.Render(ctx, strings.Repeat("x", 17), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds maximum allowed size")
	})
}

func TestSampleMergeData(t *testing.T) {
	data := SampleMergeData()
	assert.Len(t, data, len(DefaultMergeTags()))
	assert.Equal(t, "Jane", data["firstName"])
}
