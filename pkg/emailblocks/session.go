package emailblocks

import "fmt"

// Direction for MoveBlock
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Document is the editable email: details, ordered blocks and global styles
type Document struct {
	Name         string       `json:"name"`
	Subject      string       `json:"subject"`
	Preheader    string       `json:"preheader"`
	Blocks       []EmailBlock `json:"blocks"`
	GlobalStyles GlobalStyles `json:"globalStyles"`
}

// SessionState is a read-only view of a session for presentation
type SessionState struct {
	Document
	SelectedBlockID       string `json:"selectedBlockId,omitempty"`
	SelectedNestedBlockID string `json:"selectedNestedBlockId,omitempty"`
	CanUndo               bool   `json:"canUndo"`
	CanRedo               bool   `json:"canRedo"`
	HistoryIndex          int    `json:"historyIndex"`
	HistoryLength         int    `json:"historyLength"`
}

// Session owns one document, its undo history and the current selection.
// A Session is not safe for concurrent use.
type Session struct {
	name      string
	subject   string
	preheader string
	blocks    []EmailBlock
	styles    GlobalStyles

	selectedID       string
	selectedNestedID string

	history     *History
	historyOpts []HistoryOption
	ids         IDGenerator
}

// SessionOption configures a Session
type SessionOption func(*Session)

func WithIDGenerator(ids IDGenerator) SessionOption {
	return func(s *Session) {
		s.ids = ids
	}
}

func WithSessionHistoryLimit(limit int) SessionOption {
	return func(s *Session) {
		s.historyOpts = append(s.historyOpts, WithHistoryLimit(limit))
	}
}

// NewSession starts editing doc. The initial state is recorded as the first snapshot,
// so undo never goes past it.
func NewSession(doc Document, opts ...SessionOption) *Session {
	s := &Session{
		name:      doc.Name,
		subject:   doc.Subject,
		preheader: doc.Preheader,
		blocks:    CloneBlocks(doc.Blocks),
		styles:    doc.GlobalStyles,
		ids:       UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.blocks == nil {
		s.blocks = []EmailBlock{}
	}
	if s.styles == (GlobalStyles{}) {
		s.styles = DefaultGlobalStyles()
	}
	s.history = NewHistory(s.historyOpts...)
	s.snapshot()
	return s
}

func (s *Session) snapshot() {
	s.history.Push(s.blocks, s.styles)
}

// Document returns a deep copy of the current document
func (s *Session) Document() Document {
	return Document{
		Name:         s.name,
		Subject:      s.subject,
		Preheader:    s.preheader,
		Blocks:       CloneBlocks(s.blocks),
		GlobalStyles: s.styles,
	}
}

// State returns the document together with selection and history status
func (s *Session) State() SessionState {
	return SessionState{
		Document:              s.Document(),
		SelectedBlockID:       s.selectedID,
		SelectedNestedBlockID: s.selectedNestedID,
		CanUndo:               s.history.CanUndo(),
		CanRedo:               s.history.CanRedo(),
		HistoryIndex:          s.history.Index(),
		HistoryLength:         s.history.Len(),
	}
}

// HTML renders the current document
func (s *Session) HTML() string {
	return GenerateHTML(s.blocks, s.styles, s.subject, s.preheader)
}

func (s *Session) History() *History {
	return s.history
}

func (s *Session) indexOf(id string) int {
	for i, block := range s.blocks {
		if block.ID == id {
			return i
		}
	}
	return -1
}

// AddBlock appends a new block with defaults, selects it and records a snapshot
func (s *Session) AddBlock(blockType BlockType) EmailBlock {
	block := NewBlock(s.ids.NewID(), blockType)
	s.blocks = append(s.blocks, block)
	s.selectedID = block.ID
	s.selectedNestedID = ""
	s.snapshot()
	return block.Clone()
}

// UpdateBlock replaces the top-level block with the same id. No snapshot is taken;
// call Commit at the end of an edit.
func (s *Session) UpdateBlock(block EmailBlock) error {
	i := s.indexOf(block.ID)
	if i < 0 {
		return fmt.Errorf("update %s: %w", block.ID, ErrBlockNotFound)
	}
	block = normalizeBlock(block)
	if err := ValidateBlocks([]EmailBlock{block}); err != nil {
		return err
	}
	s.blocks[i] = block.Clone()
	return nil
}

// UpdateNestedBlock replaces a block inside one of the parent's columns. No snapshot is taken.
func (s *Session) UpdateNestedBlock(parentID string, block EmailBlock) error {
	if block.Type == BlockTypeColumns {
		return ErrNestedColumns
	}
	cols, i, err := s.columnsOf(parentID)
	if err != nil {
		return err
	}
	for c := range cols.Columns {
		for n, nested := range cols.Columns[c].Content {
			if nested.ID == block.ID {
				cols.Columns[c].Content[n] = normalizeBlock(block).Clone()
				s.blocks[i].Settings = cols
				return nil
			}
		}
	}
	return fmt.Errorf("update nested %s: %w", block.ID, ErrBlockNotFound)
}

// Commit records a snapshot when the document differs from the current one.
// It reports whether a snapshot was taken.
func (s *Session) Commit() bool {
	if current, ok := s.history.Current(); ok && current.Equal(s.blocks, s.styles) {
		return false
	}
	s.snapshot()
	return true
}

// DeleteBlock removes a top-level block and clears its selection
func (s *Session) DeleteBlock(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrBlockNotFound)
	}
	s.blocks = append(s.blocks[:i:i], s.blocks[i+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
		s.selectedNestedID = ""
	}
	s.snapshot()
	return nil
}

// DuplicateBlock inserts a deep copy with fresh ids right after the source and selects it
func (s *Session) DuplicateBlock(id string) (EmailBlock, error) {
	i := s.indexOf(id)
	if i < 0 {
		return EmailBlock{}, fmt.Errorf("duplicate %s: %w", id, ErrBlockNotFound)
	}
	dup := ReassignIDs(s.blocks[i:i+1], s.ids)[0]

	blocks := make([]EmailBlock, 0, len(s.blocks)+1)
	blocks = append(blocks, s.blocks[:i+1]...)
	blocks = append(blocks, dup)
	blocks = append(blocks, s.blocks[i+1:]...)
	s.blocks = blocks

	s.selectedID = dup.ID
	s.selectedNestedID = ""
	s.snapshot()
	return dup.Clone(), nil
}

// MoveBlock swaps a block with its neighbour. Moves past either end and unknown ids
// are no-ops and record nothing.
func (s *Session) MoveBlock(id string, dir Direction) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	j := i
	switch dir {
	case DirectionUp:
		j = i - 1
	case DirectionDown:
		j = i + 1
	default:
		return false
	}
	if j < 0 || j >= len(s.blocks) {
		return false
	}
	s.blocks[i], s.blocks[j] = s.blocks[j], s.blocks[i]
	s.snapshot()
	return true
}

// Select marks a top-level block as the one being edited
func (s *Session) Select(id string) error {
	if s.indexOf(id) < 0 {
		return fmt.Errorf("select %s: %w", id, ErrBlockNotFound)
	}
	s.selectedID = id
	s.selectedNestedID = ""
	return nil
}

// SelectNested marks a block inside a column; the parent becomes the top-level selection
func (s *Session) SelectNested(parentID, nestedID string) error {
	cols, _, err := s.columnsOf(parentID)
	if err != nil {
		return err
	}
	for _, col := range cols.Columns {
		for _, nested := range col.Content {
			if nested.ID == nestedID {
				s.selectedID = parentID
				s.selectedNestedID = nestedID
				return nil
			}
		}
	}
	return fmt.Errorf("select nested %s: %w", nestedID, ErrBlockNotFound)
}

func (s *Session) ClearSelection() {
	s.selectedID = ""
	s.selectedNestedID = ""
}

// BlockToEdit returns the nested selection when there is one, otherwise the top-level selection
func (s *Session) BlockToEdit() (EmailBlock, bool) {
	i := s.indexOf(s.selectedID)
	if i < 0 {
		return EmailBlock{}, false
	}
	if s.selectedNestedID != "" {
		if cols, ok := s.blocks[i].Settings.(ColumnsSettings); ok {
			for _, col := range cols.Columns {
				for _, nested := range col.Content {
					if nested.ID == s.selectedNestedID {
						return nested.Clone(), true
					}
				}
			}
		}
	}
	return s.blocks[i].Clone(), true
}

// AddToColumn appends a new block of the given type to one column of a columns block
func (s *Session) AddToColumn(parentID string, columnIndex int, blockType BlockType) (EmailBlock, error) {
	if blockType == BlockTypeColumns {
		return EmailBlock{}, ErrNestedColumns
	}
	cols, i, err := s.columnsOf(parentID)
	if err != nil {
		return EmailBlock{}, err
	}
	if columnIndex < 0 || columnIndex >= len(cols.Columns) {
		return EmailBlock{}, fmt.Errorf("column %d of %s: %w", columnIndex, parentID, ErrColumnIndex)
	}

	block := NewBlock(s.ids.NewID(), blockType)
	cols.Columns[columnIndex].Content = append(cols.Columns[columnIndex].Content, block)
	s.blocks[i].Settings = cols
	s.snapshot()
	return block.Clone(), nil
}

// RemoveFromColumn deletes a nested block from the parent's columns
func (s *Session) RemoveFromColumn(parentID, nestedID string) error {
	cols, i, err := s.columnsOf(parentID)
	if err != nil {
		return err
	}
	for c, col := range cols.Columns {
		for n, nested := range col.Content {
			if nested.ID != nestedID {
				continue
			}
			cols.Columns[c].Content = append(col.Content[:n:n], col.Content[n+1:]...)
			s.blocks[i].Settings = cols
			if s.selectedNestedID == nestedID {
				s.selectedNestedID = ""
			}
			s.snapshot()
			return nil
		}
	}
	return fmt.Errorf("remove nested %s: %w", nestedID, ErrBlockNotFound)
}

// columnsOf returns the columns settings of a top-level block. The settings are copied
// so callers can modify them before writing them back.
func (s *Session) columnsOf(parentID string) (ColumnsSettings, int, error) {
	i := s.indexOf(parentID)
	if i < 0 {
		return ColumnsSettings{}, -1, fmt.Errorf("parent %s: %w", parentID, ErrBlockNotFound)
	}
	cols, ok := s.blocks[i].Settings.(ColumnsSettings)
	if !ok || s.blocks[i].Type != BlockTypeColumns {
		return ColumnsSettings{}, -1, fmt.Errorf("parent %s: %w", parentID, ErrNotColumns)
	}
	return cols.clone().(ColumnsSettings), i, nil
}

// SetGlobalStyles replaces the global styles wholesale and records a snapshot
func (s *Session) SetGlobalStyles(styles GlobalStyles) {
	s.styles = styles
	s.snapshot()
}

// SetDetails updates name, subject and preheader. Details are not part of the undo history.
func (s *Session) SetDetails(name, subject, preheader string) {
	s.name = name
	s.subject = subject
	s.preheader = preheader
}

// ApplyPreset replaces the blocks and styles with a copy of the preset
func (s *Session) ApplyPreset(preset Preset) {
	s.blocks = ReassignIDs(preset.Blocks, s.ids)
	if s.blocks == nil {
		s.blocks = []EmailBlock{}
	}
	s.styles = preset.Styles
	s.ClearSelection()
	s.snapshot()
}

// ApplyGeneratedContent folds AI output into the document: a recognised subject line
// replaces the subject and the remaining text is appended as a text block.
func (s *Session) ApplyGeneratedContent(output string) GeneratedContent {
	generated := ExtractGeneratedContent(output)
	if generated.HasSubject {
		s.subject = generated.Subject
	}
	if generated.BodyHTML != "" {
		s.blocks = append(s.blocks, EmailBlock{
			ID:       s.ids.NewID(),
			Type:     BlockTypeText,
			Content:  generated.BodyHTML,
			Style:    DefaultBlockStyle(),
			Settings: NoSettings{},
		})
	}
	s.snapshot()
	return generated
}

// Undo restores the previous snapshot. Uncommitted edits are committed first so a
// following Redo returns to them.
func (s *Session) Undo() bool {
	s.Commit()
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo restores the next snapshot
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

func (s *Session) restore(snap Snapshot) {
	s.blocks = snap.Blocks
	if s.blocks == nil {
		s.blocks = []EmailBlock{}
	}
	s.styles = snap.Styles

	i := s.indexOf(s.selectedID)
	if i < 0 {
		s.ClearSelection()
		return
	}
	if s.selectedNestedID != "" && !containsNested(s.blocks[i], s.selectedNestedID) {
		s.selectedNestedID = ""
	}
}

func containsNested(parent EmailBlock, nestedID string) bool {
	cols, ok := parent.Settings.(ColumnsSettings)
	if !ok {
		return false
	}
	for _, col := range cols.Columns {
		for _, nested := range col.Content {
			if nested.ID == nestedID {
				return true
			}
		}
	}
	return false
}

func normalizeBlock(block EmailBlock) EmailBlock {
	if block.Settings == nil {
		block.Settings = DefaultSettings(block.Type)
	}
	return block
}
