package emailblocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(doc Document) *Session {
	return NewSession(doc, WithIDGenerator(sequentialIDs("b")))
}

func TestNewSession(t *testing.T) {
	t.Run("empty document gets defaults", func(t *testing.T) {
		session := newTestSession(Document{})
		state := session.State()
		assert.NotNil(t, state.Blocks)
		assert.Empty(t, state.Blocks)
		assert.Equal(t, DefaultGlobalStyles(), state.GlobalStyles)
		assert.Equal(t, 0, state.HistoryIndex)
		assert.Equal(t, 1, state.HistoryLength)
		assert.False(t, state.CanUndo)
	})

	t.Run("loaded document is copied", func(t *testing.T) {
		blocks := blocksOf(BlockTypeText)
		session := newTestSession(Document{Name: "n", Subject: "s", Blocks: blocks})
		blocks[0].Content = "mutated"
		assert.Equal(t, DefaultContent(BlockTypeText), session.Document().Blocks[0].Content)
	})
}

func TestSessionAddThenDelete(t *testing.T) {
	session := newTestSession(Document{})

	heading := session.AddBlock(BlockTypeHeading)
	assert.Equal(t, "b-1", heading.ID)
	assert.Len(t, session.Document().Blocks, 1)
	assert.Equal(t, heading.ID, session.State().SelectedBlockID)

	require.NoError(t, session.DeleteBlock(heading.ID))
	state := session.State()
	assert.Empty(t, state.Blocks)
	assert.Empty(t, state.SelectedBlockID)
	assert.Equal(t, 2, state.HistoryIndex)

	require.True(t, session.Undo())
	assert.Len(t, session.Document().Blocks, 1)

	require.True(t, session.Undo())
	assert.Len(t, session.Document().Blocks, 0)

	assert.False(t, session.Undo(), "the initial snapshot is the oldest reachable state")
	assert.Len(t, session.Document().Blocks, 0)

	assert.ErrorIs(t, session.DeleteBlock("missing"), ErrBlockNotFound)
}

func TestSessionUndoRedoIdentity(t *testing.T) {
	session := newTestSession(Document{})
	text := session.AddBlock(BlockTypeText)
	session.AddBlock(BlockTypeButton)

	text.Content = "<p>Edited</p>"
	require.NoError(t, session.UpdateBlock(text))
	before := session.Document()

	require.True(t, session.Undo())
	assert.NotEqual(t, before, session.Document())
	assert.Equal(t, DefaultContent(BlockTypeText), session.Document().Blocks[0].Content)

	require.True(t, session.Redo())
	assert.Equal(t, before, session.Document())

	require.True(t, session.Undo())
	session.AddBlock(BlockTypeSpacer)
	assert.False(t, session.Redo())
}

func TestSessionCommit(t *testing.T) {
	session := newTestSession(Document{})
	block := session.AddBlock(BlockTypeHeading)
	assert.False(t, session.Commit())

	block.Content = "Changed"
	require.NoError(t, session.UpdateBlock(block))
	assert.True(t, session.Commit())
	assert.False(t, session.Commit())
	assert.Equal(t, 3, session.State().HistoryLength)

	missing := NewBlock("nope", BlockTypeText)
	assert.ErrorIs(t, session.UpdateBlock(missing), ErrBlockNotFound)
}

func TestSessionDuplicateBlock(t *testing.T) {
	session := newTestSession(Document{})
	cols := session.AddBlock(BlockTypeColumns)
	nested, err := session.AddToColumn(cols.ID, 1, BlockTypeText)
	require.NoError(t, err)
	session.AddBlock(BlockTypeFooter)

	dup, err := session.DuplicateBlock(cols.ID)
	require.NoError(t, err)

	blocks := session.Document().Blocks
	require.Len(t, blocks, 4)
	assert.Equal(t, dup.ID, blocks[1].ID)
	assert.NotEqual(t, cols.ID, dup.ID)
	assert.Equal(t, BlockTypeFooter, blocks[2].Type)
	assert.Equal(t, dup.ID, session.State().SelectedBlockID)

	dupNested := dup.Settings.(ColumnsSettings).Columns[1].Content
	require.Len(t, dupNested, 1)
	assert.NotEqual(t, nested.ID, dupNested[0].ID)
	assert.Equal(t, nested.Content, dupNested[0].Content)

	_, err = session.DuplicateBlock("missing")
	assert.ErrorIs(t, err, ErrBlockNotFound)
}

func TestSessionMoveBlock(t *testing.T) {
	t.Run("bounds are no-ops", func(t *testing.T) {
		session := newTestSession(Document{})
		only := session.AddBlock(BlockTypeText)
		before := session.State()

		assert.False(t, session.MoveBlock(only.ID, DirectionUp))
		assert.False(t, session.MoveBlock(only.ID, DirectionDown))
		assert.Equal(t, before, session.State())
	})

	t.Run("swaps with neighbour", func(t *testing.T) {
		session := newTestSession(Document{})
		first := session.AddBlock(BlockTypeText)
		second := session.AddBlock(BlockTypeImage)

		assert.True(t, session.MoveBlock(second.ID, DirectionUp))
		blocks := session.Document().Blocks
		assert.Equal(t, second.ID, blocks[0].ID)
		assert.Equal(t, first.ID, blocks[1].ID)
		assert.Equal(t, 3, session.State().HistoryIndex)

		assert.False(t, session.MoveBlock("missing", DirectionDown))
		assert.False(t, session.MoveBlock(first.ID, Direction("sideways")))
	})
}

func TestSessionSelection(t *testing.T) {
	session := newTestSession(Document{})
	text := session.AddBlock(BlockTypeText)
	cols := session.AddBlock(BlockTypeColumns)
	nested, err := session.AddToColumn(cols.ID, 0, BlockTypeButton)
	require.NoError(t, err)

	require.NoError(t, session.Select(text.ID))
	block, ok := session.BlockToEdit()
	require.True(t, ok)
	assert.Equal(t, text.ID, block.ID)

	require.NoError(t, session.SelectNested(cols.ID, nested.ID))
	state := session.State()
	assert.Equal(t, cols.ID, state.SelectedBlockID)
	assert.Equal(t, nested.ID, state.SelectedNestedBlockID)
	block, ok = session.BlockToEdit()
	require.True(t, ok)
	assert.Equal(t, nested.ID, block.ID)

	require.NoError(t, session.Select(text.ID))
	assert.Empty(t, session.State().SelectedNestedBlockID)

	assert.ErrorIs(t, session.Select("missing"), ErrBlockNotFound)
	assert.ErrorIs(t, session.SelectNested(text.ID, nested.ID), ErrNotColumns)
	assert.ErrorIs(t, session.SelectNested(cols.ID, "missing"), ErrBlockNotFound)

	session.ClearSelection()
	_, ok = session.BlockToEdit()
	assert.False(t, ok)
}

func TestSessionColumns(t *testing.T) {
	session := newTestSession(Document{})
	text := session.AddBlock(BlockTypeText)
	cols := session.AddBlock(BlockTypeColumns)

	t.Run("rejects nested columns", func(t *testing.T) {
		_, err := session.AddToColumn(cols.ID, 0, BlockTypeColumns)
		assert.ErrorIs(t, err, ErrNestedColumns)

		err = session.UpdateNestedBlock(cols.ID, NewBlock("x", BlockTypeColumns))
		assert.ErrorIs(t, err, ErrNestedColumns)
	})

	t.Run("validates parent and index", func(t *testing.T) {
		_, err := session.AddToColumn(text.ID, 0, BlockTypeText)
		assert.ErrorIs(t, err, ErrNotColumns)
		_, err = session.AddToColumn("missing", 0, BlockTypeText)
		assert.ErrorIs(t, err, ErrBlockNotFound)
		_, err = session.AddToColumn(cols.ID, 2, BlockTypeText)
		assert.ErrorIs(t, err, ErrColumnIndex)
	})

	t.Run("add update remove", func(t *testing.T) {
		length := session.State().HistoryLength
		nested, err := session.AddToColumn(cols.ID, 1, BlockTypeQuote)
		require.NoError(t, err)
		assert.Equal(t, length+1, session.State().HistoryLength)

		nested.Content = "Quoted"
		require.NoError(t, session.UpdateNestedBlock(cols.ID, nested))
		content := session.Document().Blocks[1].Settings.(ColumnsSettings).Columns[1].Content
		require.Len(t, content, 1)
		assert.Equal(t, "Quoted", content[0].Content)

		require.NoError(t, session.SelectNested(cols.ID, nested.ID))
		require.NoError(t, session.RemoveFromColumn(cols.ID, nested.ID))
		assert.Empty(t, session.Document().Blocks[1].Settings.(ColumnsSettings).Columns[1].Content)
		assert.Empty(t, session.State().SelectedNestedBlockID)

		assert.ErrorIs(t, session.RemoveFromColumn(cols.ID, nested.ID), ErrBlockNotFound)
		assert.ErrorIs(t, session.UpdateNestedBlock(cols.ID, nested), ErrBlockNotFound)
	})
}

func TestSessionStylesAndDetails(t *testing.T) {
	session := newTestSession(Document{})
	styles := DefaultGlobalStyles()
	styles.BackgroundColor = "#000000"

	session.SetGlobalStyles(styles)
	assert.Equal(t, "#000000", session.Document().GlobalStyles.BackgroundColor)
	assert.True(t, session.State().CanUndo)

	length := session.State().HistoryLength
	session.SetDetails("Launch", "We're live", "Read all about it")
	doc := session.Document()
	assert.Equal(t, "Launch", doc.Name)
	assert.Equal(t, "We're live", doc.Subject)
	assert.Equal(t, "Read all about it", doc.Preheader)
	assert.Equal(t, length, session.State().HistoryLength)

	require.True(t, session.Undo())
	assert.Equal(t, DefaultGlobalStyles(), session.Document().GlobalStyles)
	assert.Equal(t, "We're live", session.Document().Subject)
	assert.Contains(t, session.HTML(), "<title>We&#039;re live</title>")
}

func TestSessionApplyPreset(t *testing.T) {
	preset, err := PresetByID("welcome-modern")
	require.NoError(t, err)

	session := newTestSession(Document{})
	session.AddBlock(BlockTypeText)
	session.ApplyPreset(preset)

	doc := session.Document()
	require.Len(t, doc.Blocks, len(preset.Blocks))
	assert.Equal(t, preset.Styles, doc.GlobalStyles)
	assert.Equal(t, "b-2", doc.Blocks[0].ID)
	assert.Equal(t, preset.Blocks[1].Content, doc.Blocks[1].Content)
	assert.Empty(t, session.State().SelectedBlockID)

	require.True(t, session.Undo())
	assert.Len(t, session.Document().Blocks, 1)
}

func TestSessionApplyGeneratedContent(t *testing.T) {
	session := newTestSession(Document{Subject: "Old"})

	generated := session.ApplyGeneratedContent("Subject: Spring is here\n\nFresh arrivals\nShop today")
	assert.True(t, generated.HasSubject)

	doc := session.Document()
	assert.Equal(t, "Spring is here", doc.Subject)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, BlockTypeText, doc.Blocks[0].Type)
	assert.Equal(t, "<p>Fresh arrivals</p><p>Shop today</p>", doc.Blocks[0].Content)

	session.ApplyGeneratedContent("Just a body")
	doc = session.Document()
	assert.Equal(t, "Spring is here", doc.Subject)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "<p>Just a body</p>", doc.Blocks[1].Content)
}
