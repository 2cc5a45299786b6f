package emailblocks

import (
	"encoding/json"
	"errors"
	"fmt"
)

// BlockType represents the available content block types
type BlockType string

const (
	BlockTypeText        BlockType = "text"
	BlockTypeHeading     BlockType = "heading"
	BlockTypeButton      BlockType = "button"
	BlockTypeImage       BlockType = "image"
	BlockTypeDivider     BlockType = "divider"
	BlockTypeSpacer      BlockType = "spacer"
	BlockTypeSocial      BlockType = "social"
	BlockTypeList        BlockType = "list"
	BlockTypeColumns     BlockType = "columns"
	BlockTypeMenu        BlockType = "menu"
	BlockTypeTable       BlockType = "table"
	BlockTypeCountdown   BlockType = "countdown"
	BlockTypeVideo       BlockType = "video"
	BlockTypeHero        BlockType = "hero"
	BlockTypeTestimonial BlockType = "testimonial"
	BlockTypePricing     BlockType = "pricing"
	BlockTypeFeature     BlockType = "feature"
	BlockTypeCTA         BlockType = "cta"
	BlockTypeImageText   BlockType = "imageText"
	BlockTypeGallery     BlockType = "gallery"
	BlockTypeStats       BlockType = "stats"
	BlockTypeFAQ         BlockType = "faq"
	BlockTypeSignature   BlockType = "signature"
	BlockTypeURL         BlockType = "url"
	BlockTypeCalendar    BlockType = "calendar"
	BlockTypeMap         BlockType = "map"
	BlockTypeCoupon      BlockType = "coupon"
	BlockTypeRating      BlockType = "rating"
	BlockTypeProgress    BlockType = "progress"
	BlockTypeAccordion   BlockType = "accordion"
	BlockTypeIconList    BlockType = "iconList"
	BlockTypeBeforeAfter BlockType = "beforeAfter"
	BlockTypeQuote       BlockType = "quote"
	BlockTypeFooter      BlockType = "footer"
	BlockTypeHTML        BlockType = "html"
)

// AllBlockTypes lists every block type in palette order
var AllBlockTypes = []BlockType{
	BlockTypeText, BlockTypeHeading, BlockTypeButton, BlockTypeImage, BlockTypeDivider,
	BlockTypeSpacer, BlockTypeSocial, BlockTypeList, BlockTypeColumns, BlockTypeMenu,
	BlockTypeTable, BlockTypeCountdown, BlockTypeVideo, BlockTypeHero, BlockTypeTestimonial,
	BlockTypePricing, BlockTypeFeature, BlockTypeCTA, BlockTypeImageText, BlockTypeGallery,
	BlockTypeStats, BlockTypeFAQ, BlockTypeSignature, BlockTypeURL, BlockTypeCalendar,
	BlockTypeMap, BlockTypeCoupon, BlockTypeRating, BlockTypeProgress, BlockTypeAccordion,
	BlockTypeIconList, BlockTypeBeforeAfter, BlockTypeQuote, BlockTypeFooter, BlockTypeHTML,
}

// IsKnown reports whether t is part of the block type enumeration
func (t BlockType) IsKnown() bool {
	for _, known := range AllBlockTypes {
		if t == known {
			return true
		}
	}
	return false
}

var (
	ErrBlockNotFound  = errors.New("block not found")
	ErrNestedColumns  = errors.New("columns blocks cannot be nested inside columns")
	ErrNotColumns     = errors.New("block is not a columns block")
	ErrColumnIndex    = errors.New("column index out of range")
	ErrUnknownPreset  = errors.New("unknown preset")
	ErrEmptyAIContent = errors.New("generated content is empty")
)

// BlockStyle holds per-block presentation attributes. Empty fields fall back to the global styles.
type BlockStyle struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	FontSize        string `json:"fontSize,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
	TextAlign       string `json:"textAlign,omitempty"`
	Padding         string `json:"padding,omitempty"`
	LineHeight      string `json:"lineHeight,omitempty"`
}

// Merge returns s with every non-empty field of override applied on top
func (s BlockStyle) Merge(override BlockStyle) BlockStyle {
	s.BackgroundColor = pick(override.BackgroundColor, s.BackgroundColor)
	s.TextColor = pick(override.TextColor, s.TextColor)
	s.FontSize = pick(override.FontSize, s.FontSize)
	s.FontFamily = pick(override.FontFamily, s.FontFamily)
	s.FontWeight = pick(override.FontWeight, s.FontWeight)
	s.TextAlign = pick(override.TextAlign, s.TextAlign)
	s.Padding = pick(override.Padding, s.Padding)
	s.LineHeight = pick(override.LineHeight, s.LineHeight)
	return s
}

// GlobalStyles are document-wide visual defaults applied around all blocks
type GlobalStyles struct {
	BackgroundColor        string `json:"backgroundColor"`
	ContentWidth           string `json:"contentWidth"`
	ContentBackgroundColor string `json:"contentBackgroundColor"`
	BorderRadius           string `json:"borderRadius"`
	FontFamily             string `json:"fontFamily"`
	FontSize               string `json:"fontSize"`
	TextColor              string `json:"textColor"`
	LinkColor              string `json:"linkColor"`
	HeadingColor           string `json:"headingColor"`
}

// Merge returns g with every non-empty field of overlay applied on top
func (g GlobalStyles) Merge(overlay GlobalStyles) GlobalStyles {
	g.BackgroundColor = pick(overlay.BackgroundColor, g.BackgroundColor)
	g.ContentWidth = pick(overlay.ContentWidth, g.ContentWidth)
	g.ContentBackgroundColor = pick(overlay.ContentBackgroundColor, g.ContentBackgroundColor)
	g.BorderRadius = pick(overlay.BorderRadius, g.BorderRadius)
	g.FontFamily = pick(overlay.FontFamily, g.FontFamily)
	g.FontSize = pick(overlay.FontSize, g.FontSize)
	g.TextColor = pick(overlay.TextColor, g.TextColor)
	g.LinkColor = pick(overlay.LinkColor, g.LinkColor)
	g.HeadingColor = pick(overlay.HeadingColor, g.HeadingColor)
	return g
}

// EmailBlock is one node of the email document
type EmailBlock struct {
	ID       string
	Type     BlockType
	Content  string
	Style    BlockStyle
	Settings Settings
}

// blockJSON is the stored representation of a block
type blockJSON struct {
	ID       string          `json:"id"`
	Type     BlockType       `json:"type"`
	Content  string          `json:"content"`
	Style    BlockStyle      `json:"style"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// MarshalJSON encodes the block with its settings nested under the type key
func (b EmailBlock) MarshalJSON() ([]byte, error) {
	settings, err := marshalSettings(b.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings for block %s: %w", b.ID, err)
	}
	return json.Marshal(blockJSON{
		ID:       b.ID,
		Type:     b.Type,
		Content:  b.Content,
		Style:    b.Style,
		Settings: settings,
	})
}

// UnmarshalJSON decodes a stored block. Missing settings are replaced by the type defaults.
func (b *EmailBlock) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal EmailBlock JSON: %w", err)
	}

	settings, err := unmarshalSettings(raw.Type, raw.Settings)
	if err != nil {
		return fmt.Errorf("failed to unmarshal settings for block %s: %w", raw.ID, err)
	}

	*b = EmailBlock{
		ID:       raw.ID,
		Type:     raw.Type,
		Content:  raw.Content,
		Style:    raw.Style,
		Settings: settings,
	}
	return nil
}

// Clone returns a deep copy of the block
func (b EmailBlock) Clone() EmailBlock {
	if b.Settings != nil {
		b.Settings = b.Settings.clone()
	}
	return b
}

// CloneBlocks deep copies a block list, preserving nil-ness
func CloneBlocks(blocks []EmailBlock) []EmailBlock {
	if blocks == nil {
		return nil
	}
	out := make([]EmailBlock, len(blocks))
	for i, block := range blocks {
		out[i] = block.Clone()
	}
	return out
}

// MarshalBlocks encodes a block list as a JSON array
func MarshalBlocks(blocks []EmailBlock) ([]byte, error) {
	if blocks == nil {
		blocks = []EmailBlock{}
	}
	return json.Marshal(blocks)
}

// UnmarshalBlocks decodes a JSON array of blocks and normalises the nesting
func UnmarshalBlocks(data []byte) ([]EmailBlock, error) {
	var blocks []EmailBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal EmailBlocks array: %w", err)
	}
	return NormalizeNesting(blocks), nil
}

// DecodeBlocks decodes a JSON array of blocks without giving up on the document when
// one block is malformed. A block whose style or settings do not decode keeps its type
// and content and takes the type defaults for the rest. Entries without a type are
// dropped. repaired counts the blocks that were patched or dropped.
func DecodeBlocks(data []byte) (blocks []EmailBlock, repaired int, err error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal EmailBlocks array: %w", err)
	}
	blocks, repaired = decodeBlockList(items)
	return NormalizeNesting(blocks), repaired, nil
}

func decodeBlockList(items []json.RawMessage) ([]EmailBlock, int) {
	blocks := make([]EmailBlock, 0, len(items))
	repaired := 0
	for _, item := range items {
		var block EmailBlock
		if err := json.Unmarshal(item, &block); err == nil {
			blocks = append(blocks, block)
			continue
		}

		repaired++
		if recovered, nested, ok := recoverBlock(item); ok {
			blocks = append(blocks, recovered)
			repaired += nested
		}
	}
	return blocks, repaired
}

// recoverBlock salvages what it can from a block that failed strict decoding
func recoverBlock(data json.RawMessage) (EmailBlock, int, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return EmailBlock{}, 0, false
	}
	var blockType BlockType
	if err := json.Unmarshal(fields["type"], &blockType); err != nil || blockType == "" {
		return EmailBlock{}, 0, false
	}

	block := NewBlock("", blockType)
	var id string
	if err := json.Unmarshal(fields["id"], &id); err == nil {
		block.ID = id
	}
	var content string
	if err := json.Unmarshal(fields["content"], &content); err == nil {
		block.Content = content
	}
	if raw, ok := fields["style"]; ok {
		// fields of the wrong type are skipped, the rest still decode
		var style BlockStyle
		_ = json.Unmarshal(raw, &style)
		block.Style = style
	}

	settings, err := unmarshalSettings(blockType, fields["settings"])
	if err == nil {
		block.Settings = settings
		return block, 0, true
	}
	if blockType == BlockTypeColumns {
		var nested int
		block.Settings, nested = recoverColumns(fields["settings"])
		return block, nested, true
	}
	return block, 0, true
}

// recoverColumns keeps the columns layout and decodes each column's content leniently
func recoverColumns(raw json.RawMessage) (Settings, int) {
	var envelope struct {
		Columns []struct {
			Width   string            `json:"width"`
			Content []json.RawMessage `json:"content"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Columns) == 0 {
		return DefaultSettings(BlockTypeColumns), 0
	}

	settings := ColumnsSettings{Columns: make([]Column, len(envelope.Columns))}
	repaired := 0
	for i, col := range envelope.Columns {
		content, n := decodeBlockList(col.Content)
		settings.Columns[i] = Column{Width: col.Width, Content: content}
		repaired += n
	}
	return settings, repaired
}

// ValidateBlocks checks the one-level nesting rule
func ValidateBlocks(blocks []EmailBlock) error {
	for _, block := range blocks {
		cols, ok := block.Settings.(ColumnsSettings)
		if !ok {
			continue
		}
		for i, col := range cols.Columns {
			for _, nested := range col.Content {
				if nested.Type == BlockTypeColumns {
					return fmt.Errorf("block %s column %d contains %s: %w", block.ID, i, nested.ID, ErrNestedColumns)
				}
			}
		}
	}
	return nil
}

// NormalizeNesting lifts the children of any columns block found inside a column
// into that enclosing column, so the document keeps a single nesting level.
func NormalizeNesting(blocks []EmailBlock) []EmailBlock {
	for i, block := range blocks {
		cols, ok := block.Settings.(ColumnsSettings)
		if !ok {
			continue
		}
		for c, col := range cols.Columns {
			cols.Columns[c].Content = flattenColumn(col.Content)
		}
		blocks[i].Settings = cols
	}
	return blocks
}

func flattenColumn(content []EmailBlock) []EmailBlock {
	needs := false
	for _, nested := range content {
		if nested.Type == BlockTypeColumns {
			needs = true
			break
		}
	}
	if !needs {
		return content
	}

	out := make([]EmailBlock, 0, len(content))
	for _, nested := range content {
		if nested.Type != BlockTypeColumns {
			out = append(out, nested)
			continue
		}
		inner, _ := nested.Settings.(ColumnsSettings)
		for _, innerCol := range inner.Columns {
			out = append(out, flattenColumn(innerCol.Content)...)
		}
	}
	return out
}

// ReassignIDs gives every block, including column content, a fresh id
func ReassignIDs(blocks []EmailBlock, ids IDGenerator) []EmailBlock {
	out := CloneBlocks(blocks)
	for i := range out {
		out[i].ID = ids.NewID()
		cols, ok := out[i].Settings.(ColumnsSettings)
		if !ok {
			continue
		}
		for c := range cols.Columns {
			for n := range cols.Columns[c].Content {
				cols.Columns[c].Content[n].ID = ids.NewID()
			}
		}
		out[i].Settings = cols
	}
	return out
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
