package emailblocks

import "reflect"

// DefaultHistoryLimit bounds the number of snapshots kept per session
const DefaultHistoryLimit = 100

// Snapshot is a deep copy of the document state captured for undo/redo
type Snapshot struct {
	Blocks []EmailBlock
	Styles GlobalStyles
}

func newSnapshot(blocks []EmailBlock, styles GlobalStyles) Snapshot {
	return Snapshot{Blocks: CloneBlocks(blocks), Styles: styles}
}

func (s Snapshot) clone() Snapshot {
	return newSnapshot(s.Blocks, s.Styles)
}

// Equal reports whether the snapshot matches the given state
func (s Snapshot) Equal(blocks []EmailBlock, styles GlobalStyles) bool {
	return s.Styles == styles && reflect.DeepEqual(s.Blocks, blocks)
}

// History is a linear undo/redo stack with a cursor. The cursor stays within
// [-1, len-1]; -1 means nothing has been recorded yet.
type History struct {
	snapshots []Snapshot
	index     int
	limit     int
}

// HistoryOption configures a History
type HistoryOption func(*History)

// WithHistoryLimit caps the number of stored snapshots. Values below 1 disable the cap.
func WithHistoryLimit(limit int) HistoryOption {
	return func(h *History) {
		h.limit = limit
	}
}

// NewHistory creates an empty history
func NewHistory(opts ...HistoryOption) *History {
	h := &History{index: -1, limit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Push discards any redo branch, appends a copy of the state and moves the cursor to it
func (h *History) Push(blocks []EmailBlock, styles GlobalStyles) {
	h.snapshots = append(h.snapshots[:h.index+1], newSnapshot(blocks, styles))
	h.index = len(h.snapshots) - 1

	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		h.snapshots = append([]Snapshot(nil), h.snapshots[drop:]...)
		h.index -= drop
	}
}

// Undo moves the cursor back one step. It is a no-op at the oldest snapshot.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.index--
	return h.snapshots[h.index].clone(), true
}

// Redo moves the cursor forward one step. It is a no-op at the newest snapshot.
func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.index++
	return h.snapshots[h.index].clone(), true
}

// Current returns a copy of the snapshot under the cursor
func (h *History) Current() (Snapshot, bool) {
	if h.index < 0 {
		return Snapshot{}, false
	}
	return h.snapshots[h.index].clone(), true
}

func (h *History) CanUndo() bool {
	return h.index > 0
}

func (h *History) CanRedo() bool {
	return h.index < len(h.snapshots)-1
}

func (h *History) Index() int {
	return h.index
}

func (h *History) Len() int {
	return len(h.snapshots)
}
