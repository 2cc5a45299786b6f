package emailblocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blocksOf(types ...BlockType) []EmailBlock {
	blocks := make([]EmailBlock, len(types))
	for i, blockType := range types {
		blocks[i] = NewBlock(string(blockType), blockType)
	}
	return blocks
}

func TestHistory(t *testing.T) {
	styles := DefaultGlobalStyles()

	t.Run("starts empty", func(t *testing.T) {
		h := NewHistory()
		assert.Equal(t, -1, h.Index())
		assert.Equal(t, 0, h.Len())
		assert.False(t, h.CanUndo())
		assert.False(t, h.CanRedo())
		_, ok := h.Current()
		assert.False(t, ok)
	})

	t.Run("undo and redo move the cursor", func(t *testing.T) {
		h := NewHistory()
		h.Push(blocksOf(), styles)
		h.Push(blocksOf(BlockTypeText), styles)
		h.Push(blocksOf(BlockTypeText, BlockTypeButton), styles)
		assert.Equal(t, 2, h.Index())

		snap, ok := h.Undo()
		require.True(t, ok)
		assert.Len(t, snap.Blocks, 1)

		snap, ok = h.Undo()
		require.True(t, ok)
		assert.Len(t, snap.Blocks, 0)

		_, ok = h.Undo()
		assert.False(t, ok)
		assert.Equal(t, 0, h.Index())

		snap, ok = h.Redo()
		require.True(t, ok)
		assert.Len(t, snap.Blocks, 1)
	})

	t.Run("push after undo discards the redo branch", func(t *testing.T) {
		h := NewHistory()
		h.Push(blocksOf(), styles)
		h.Push(blocksOf(BlockTypeText), styles)
		h.Push(blocksOf(BlockTypeText, BlockTypeButton), styles)

		h.Undo()
		h.Undo()
		h.Push(blocksOf(BlockTypeImage), styles)

		assert.Equal(t, 2, h.Len())
		assert.False(t, h.CanRedo())
		_, ok := h.Redo()
		assert.False(t, ok)

		current, _ := h.Current()
		assert.Equal(t, BlockTypeImage, current.Blocks[0].Type)
	})

	t.Run("snapshots are isolated from callers", func(t *testing.T) {
		h := NewHistory()
		blocks := blocksOf(BlockTypeList)
		h.Push(blocks, styles)

		blocks[0].Content = "mutated"
		list := blocks[0].Settings.(ListSettings)
		list.Items[0] = "mutated"

		current, _ := h.Current()
		assert.Equal(t, "", current.Blocks[0].Content)
		assert.Equal(t, "Item 1", current.Blocks[0].Settings.(ListSettings).Items[0])

		current.Blocks[0].Content = "mutated again"
		again, _ := h.Current()
		assert.Equal(t, "", again.Blocks[0].Content)
	})

	t.Run("limit evicts the oldest snapshots", func(t *testing.T) {
		h := NewHistory(WithHistoryLimit(3))
		for i := 0; i < 5; i++ {
			h.Push(make([]EmailBlock, 0, i), styles)
			h.Push(blocksOf(BlockTypeText), styles)
		}
		assert.Equal(t, 3, h.Len())
		assert.Equal(t, 2, h.Index())
		assert.True(t, h.CanUndo())
		assert.False(t, h.CanRedo())
	})
}

func TestSnapshotEqual(t *testing.T) {
	styles := DefaultGlobalStyles()
	blocks := blocksOf(BlockTypeText, BlockTypeColumns)
	snap := newSnapshot(blocks, styles)

	assert.True(t, snap.Equal(blocks, styles))

	changed := CloneBlocks(blocks)
	changed[0].Content = "other"
	assert.False(t, snap.Equal(changed, styles))

	otherStyles := styles
	otherStyles.LinkColor = "#000000"
	assert.False(t, snap.Equal(blocks, otherStyles))
}
