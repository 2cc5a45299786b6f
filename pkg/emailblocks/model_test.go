package emailblocks

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs(prefix string) IDGenerator {
	n := 0
	return IDGeneratorFunc(func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}

func TestBlockTypeIsKnown(t *testing.T) {
	assert.Len(t, AllBlockTypes, 35)
	for _, blockType := range AllBlockTypes {
		assert.True(t, blockType.IsKnown(), blockType)
	}
	assert.False(t, BlockType("marquee").IsKnown())
	assert.False(t, BlockType("").IsKnown())
}

func TestEmailBlockJSON(t *testing.T) {
	t.Run("button settings nest under the type key", func(t *testing.T) {
		block := NewBlock("b1", BlockTypeButton)
		data, err := json.Marshal(block)
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))
		settings := raw["settings"].(map[string]interface{})
		button := settings["button"].(map[string]interface{})
		assert.Equal(t, "Click Here", button["text"])
		assert.Equal(t, "#0066cc", button["buttonColor"])
	})

	t.Run("divider and spacer settings are flat", func(t *testing.T) {
		data, err := json.Marshal(NewBlock("d1", BlockTypeDivider))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"settings":{"dividerStyle":"solid","dividerColor":"#e0e0e0","dividerWidth":"1px"}`)

		data, err = json.Marshal(NewBlock("s1", BlockTypeSpacer))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"settings":{"spacerHeight":"32px"}`)
	})

	t.Run("content-only blocks omit settings", func(t *testing.T) {
		data, err := json.Marshal(NewBlock("t1", BlockTypeText))
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"settings"`)
	})

	t.Run("stored document decodes into typed variants", func(t *testing.T) {
		stored := `[
			{"id":"a","type":"heading","content":"Hello","style":{"fontSize":"28px"}},
			{"id":"b","type":"social","content":"","style":{},"settings":{"social":[{"platform":"youtube","url":"https://yt.example"}]}},
			{"id":"c","type":"columns","content":"","style":{},"settings":{"columns":[
				{"width":"30%","content":[{"id":"c1","type":"text","content":"<p>Left</p>","style":{}}]},
				{"width":"70%"}
			]}},
			{"id":"d","type":"divider","content":"","style":{},"settings":{"dividerColor":"#ff0000"}}
		]`
		blocks, err := UnmarshalBlocks([]byte(stored))
		require.NoError(t, err)
		require.Len(t, blocks, 4)

		assert.Equal(t, NoSettings{}, blocks[0].Settings)
		assert.Equal(t, "28px", blocks[0].Style.FontSize)

		social, ok := blocks[1].Settings.(SocialSettings)
		require.True(t, ok)
		assert.Equal(t, []SocialLink{{Platform: "youtube", URL: "https://yt.example"}}, social.Links)

		cols, ok := blocks[2].Settings.(ColumnsSettings)
		require.True(t, ok)
		require.Len(t, cols.Columns, 2)
		assert.Equal(t, "30%", cols.Columns[0].Width)
		require.Len(t, cols.Columns[0].Content, 1)
		assert.Equal(t, "<p>Left</p>", cols.Columns[0].Content[0].Content)
		assert.NotNil(t, cols.Columns[1].Content)
		assert.Empty(t, cols.Columns[1].Content)

		divider, ok := blocks[3].Settings.(DividerSettings)
		require.True(t, ok)
		assert.Equal(t, DividerSettings{DividerStyle: "solid", DividerColor: "#ff0000", DividerWidth: "1px"}, divider)
	})

	t.Run("missing variant falls back to defaults", func(t *testing.T) {
		var block EmailBlock
		require.NoError(t, json.Unmarshal([]byte(`{"id":"p","type":"pricing","content":"","style":{}}`), &block))
		assert.Equal(t, DefaultSettings(BlockTypePricing), block.Settings)

		require.NoError(t, json.Unmarshal([]byte(`{"id":"p","type":"pricing","content":"","style":{},"settings":{"other":1}}`), &block))
		assert.Equal(t, DefaultSettings(BlockTypePricing), block.Settings)
	})

	t.Run("encoded document decodes to the same blocks", func(t *testing.T) {
		original := []EmailBlock{
			NewBlock("1", BlockTypeText),
			NewBlock("2", BlockTypeTable),
			NewBlock("3", BlockTypeRating),
			NewBlock("4", BlockTypeColumns),
		}
		cols := original[3].Settings.(ColumnsSettings)
		cols.Columns[1].Content = append(cols.Columns[1].Content, NewBlock("4a", BlockTypeButton))
		original[3].Settings = cols

		data, err := MarshalBlocks(original)
		require.NoError(t, err)
		decoded, err := UnmarshalBlocks(data)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("invalid payload is reported", func(t *testing.T) {
		var block EmailBlock
		err := json.Unmarshal([]byte(`{"id":"x","type":"list","settings":{"list":{"items":"nope"}}}`), &block)
		assert.Error(t, err)
	})

	t.Run("nil list marshals as empty array", func(t *testing.T) {
		data, err := MarshalBlocks(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
}

func TestNestingInvariant(t *testing.T) {
	inner := NewBlock("inner", BlockTypeColumns)
	innerCols := inner.Settings.(ColumnsSettings)
	innerCols.Columns[0].Content = []EmailBlock{NewBlock("deep-a", BlockTypeText)}
	innerCols.Columns[1].Content = []EmailBlock{NewBlock("deep-b", BlockTypeButton)}
	inner.Settings = innerCols

	outer := NewBlock("outer", BlockTypeColumns)
	outerCols := outer.Settings.(ColumnsSettings)
	outerCols.Columns[0].Content = []EmailBlock{NewBlock("first", BlockTypeHeading), inner}
	outer.Settings = outerCols

	err := ValidateBlocks([]EmailBlock{outer})
	assert.ErrorIs(t, err, ErrNestedColumns)

	data, err := MarshalBlocks([]EmailBlock{outer})
	require.NoError(t, err)
	blocks, err := UnmarshalBlocks(data)
	require.NoError(t, err)
	require.NoError(t, ValidateBlocks(blocks))

	content := blocks[0].Settings.(ColumnsSettings).Columns[0].Content
	require.Len(t, content, 3)
	assert.Equal(t, "first", content[0].ID)
	assert.Equal(t, "deep-a", content[1].ID)
	assert.Equal(t, "deep-b", content[2].ID)
}

func TestCloneIsDeep(t *testing.T) {
	block := NewBlock("cols", BlockTypeColumns)
	cols := block.Settings.(ColumnsSettings)
	cols.Columns[0].Content = []EmailBlock{NewBlock("n1", BlockTypeList)}
	block.Settings = cols

	clone := block.Clone()
	cloneCols := clone.Settings.(ColumnsSettings)
	cloneCols.Columns[0].Width = "70%"
	list := cloneCols.Columns[0].Content[0].Settings.(ListSettings)
	list.Items[0] = "changed"

	original := block.Settings.(ColumnsSettings)
	assert.Equal(t, "50%", original.Columns[0].Width)
	assert.Equal(t, "Item 1", original.Columns[0].Content[0].Settings.(ListSettings).Items[0])
}

func TestReassignIDs(t *testing.T) {
	block := NewBlock("cols", BlockTypeColumns)
	cols := block.Settings.(ColumnsSettings)
	cols.Columns[1].Content = []EmailBlock{NewBlock("n1", BlockTypeText)}
	block.Settings = cols
	blocks := []EmailBlock{NewBlock("t", BlockTypeText), block}

	fresh := ReassignIDs(blocks, sequentialIDs("id"))

	assert.Equal(t, "id-1", fresh[0].ID)
	assert.Equal(t, "id-2", fresh[1].ID)
	assert.Equal(t, "id-3", fresh[1].Settings.(ColumnsSettings).Columns[1].Content[0].ID)
	assert.Equal(t, "n1", blocks[1].Settings.(ColumnsSettings).Columns[1].Content[0].ID)
}

func TestStyleMerge(t *testing.T) {
	merged := DefaultGlobalStyles().Merge(GlobalStyles{LinkColor: "#ff0000"})
	assert.Equal(t, "#ff0000", merged.LinkColor)
	assert.Equal(t, "600px", merged.ContentWidth)

	style := DefaultBlockStyle().Merge(BlockStyle{Padding: "0"})
	assert.Equal(t, "0", style.Padding)
	assert.Equal(t, "left", style.TextAlign)
}

func TestDecodeBlocks(t *testing.T) {
	t.Run("valid blocks decode as usual", func(t *testing.T) {
		blocks, repaired, err := DecodeBlocks([]byte(`[{"id":"a","type":"spacer","content":"","style":{}}]`))
		require.NoError(t, err)
		assert.Zero(t, repaired)
		require.Len(t, blocks, 1)
		assert.Equal(t, DefaultSettings(BlockTypeSpacer), blocks[0].Settings)
	})

	t.Run("bad settings take defaults", func(t *testing.T) {
		blocks, repaired, err := DecodeBlocks([]byte(`[
			{"id":"a","type":"rating","content":"","style":{"textAlign":"center","fontSize":12},"settings":{"rating":{"rating":"4"}}},
			{"id":"b","type":"heading","content":"Kept","style":{}}
		]`))
		require.NoError(t, err)
		assert.Equal(t, 1, repaired)
		require.Len(t, blocks, 2)
		assert.Equal(t, "a", blocks[0].ID)
		assert.Equal(t, DefaultSettings(BlockTypeRating), blocks[0].Settings)
		assert.Equal(t, "center", blocks[0].Style.TextAlign)
		assert.Empty(t, blocks[0].Style.FontSize)
		assert.Equal(t, "Kept", blocks[1].Content)
	})

	t.Run("bad nested block keeps the columns", func(t *testing.T) {
		blocks, repaired, err := DecodeBlocks([]byte(`[{"id":"c","type":"columns","content":"","style":{},"settings":{"columns":[
			{"width":"40%","content":[{"id":"n1","type":"button","content":"","style":{},"settings":{"button":{"text":7}}}]},
			{"width":"60%","content":[{"id":"n2","type":"text","content":"<p>Right</p>","style":{}}]}
		]}}]`))
		require.NoError(t, err)
		assert.Equal(t, 2, repaired)
		require.Len(t, blocks, 1)

		cols, ok := blocks[0].Settings.(ColumnsSettings)
		require.True(t, ok)
		require.Len(t, cols.Columns, 2)
		assert.Equal(t, "40%", cols.Columns[0].Width)
		require.Len(t, cols.Columns[0].Content, 1)
		assert.Equal(t, DefaultSettings(BlockTypeButton), cols.Columns[0].Content[0].Settings)
		require.Len(t, cols.Columns[1].Content, 1)
		assert.Equal(t, "<p>Right</p>", cols.Columns[1].Content[0].Content)
	})

	t.Run("entries without a type are dropped", func(t *testing.T) {
		blocks, repaired, err := DecodeBlocks([]byte(`["text", 3, {"id":"t","type":"divider"}]`))
		require.NoError(t, err)
		assert.Equal(t, 2, repaired)
		require.Len(t, blocks, 1)
		assert.Equal(t, BlockTypeDivider, blocks[0].Type)
	})

	t.Run("not an array", func(t *testing.T) {
		_, _, err := DecodeBlocks([]byte(`{"id":"x"}`))
		assert.Error(t, err)
	})
}
