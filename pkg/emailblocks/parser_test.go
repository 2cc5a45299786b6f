package emailblocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTML(t *testing.T) {
	t.Run("headings keep their level as a font size", func(t *testing.T) {
		blocks := ParseHTML("<h1>Big</h1><h2>Medium</h2><h3>Small</h3>", sequentialIDs("p"))
		require.Len(t, blocks, 3)
		for i, size := range []string{"36px", "28px", "24px"} {
			assert.Equal(t, BlockTypeHeading, blocks[i].Type)
			assert.Equal(t, size, blocks[i].Style.FontSize)
		}
		assert.Equal(t, "Big", blocks[0].Content)
		assert.Equal(t, "p-1", blocks[0].ID)
		assert.Equal(t, "p-3", blocks[2].ID)
	})

	t.Run("paragraphs become text blocks", func(t *testing.T) {
		blocks := ParseHTML("<p>Hello <b>world</b></p><div>Second</div><p>   </p>", sequentialIDs("p"))
		require.Len(t, blocks, 2)
		assert.Equal(t, BlockTypeText, blocks[0].Type)
		assert.Equal(t, "<p>Hello <b>world</b></p>", blocks[0].Content)
		assert.Equal(t, "<p>Second</p>", blocks[1].Content)
	})

	t.Run("inline-block links become buttons", func(t *testing.T) {
		html := `<p><a href="https://shop.example" style="display: inline-block; padding: 12px;">Shop now</a></p>`
		blocks := ParseHTML(html, sequentialIDs("p"))
		require.Len(t, blocks, 1)
		assert.Equal(t, BlockTypeButton, blocks[0].Type)

		btn := blocks[0].Settings.(ButtonSettings)
		assert.Equal(t, "Shop now", btn.Text)
		assert.Equal(t, "https://shop.example", btn.URL)
		assert.Equal(t, "#0066cc", btn.ButtonColor)
	})

	t.Run("images rules and lists", func(t *testing.T) {
		html := `<img src="https://img.example/a.png" alt="Logo"><hr><ol><li>One</li><li>Two</li></ol><ul><li>Dot</li></ul>`
		blocks := ParseHTML(html, sequentialIDs("p"))
		require.Len(t, blocks, 4)

		assert.Equal(t, ImageSettings{Src: "https://img.example/a.png", Alt: "Logo", Alignment: "center"}, blocks[0].Settings)
		assert.Equal(t, BlockTypeDivider, blocks[1].Type)
		assert.Equal(t, ListSettings{Items: []string{"One", "Two"}, ListType: "numbered"}, blocks[2].Settings)
		assert.Equal(t, ListSettings{Items: []string{"Dot"}, ListType: "bullet"}, blocks[3].Settings)
	})

	t.Run("content container is preferred over body", func(t *testing.T) {
		html := `<html><body><p>Outside</p><div style="max-width: 600px; margin: 0 auto;"><h2>Inside</h2><p>Body copy</p></div></body></html>`
		blocks := ParseHTML(html, sequentialIDs("p"))
		require.Len(t, blocks, 2)
		assert.Equal(t, "Inside", blocks[0].Content)
		assert.Equal(t, "<p>Body copy</p>", blocks[1].Content)
	})

	t.Run("unrecognised markup is kept verbatim", func(t *testing.T) {
		html := "<table><tr><td>Legacy layout</td></tr></table>"
		blocks := ParseHTML(html, sequentialIDs("p"))
		require.Len(t, blocks, 1)
		assert.Equal(t, BlockTypeHTML, blocks[0].Type)
		assert.Equal(t, html, blocks[0].Content)
	})

	t.Run("blank input yields no blocks", func(t *testing.T) {
		blocks := ParseHTML("  \n\t ", sequentialIDs("p"))
		assert.NotNil(t, blocks)
		assert.Empty(t, blocks)

		assert.Empty(t, ParseHTML("", sequentialIDs("p")))
	})
}
