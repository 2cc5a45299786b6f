package emailblocks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Settings is the type-specific payload of a block. Each block type has exactly one
// variant; content-only types use NoSettings.
type Settings interface {
	settingsKey() string
	clone() Settings
}

// NoSettings is the payload of text, heading, quote, footer, html and unknown blocks
type NoSettings struct{}

type ButtonSettings struct {
	Text               string `json:"text"`
	URL                string `json:"url"`
	ButtonColor        string `json:"buttonColor"`
	ButtonTextColor    string `json:"buttonTextColor"`
	ButtonBorderRadius string `json:"buttonBorderRadius"`
	ButtonPadding      string `json:"buttonPadding"`
}

// DividerSettings is stored flat in the settings object
type DividerSettings struct {
	DividerStyle string `json:"dividerStyle"` // solid, dashed, dotted
	DividerColor string `json:"dividerColor"`
	DividerWidth string `json:"dividerWidth"`
}

// SpacerSettings is stored flat in the settings object
type SpacerSettings struct {
	SpacerHeight string `json:"spacerHeight"`
}

type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type SocialSettings struct {
	Links []SocialLink
}

type ListSettings struct {
	Items    []string `json:"items"`
	ListType string   `json:"listType"` // bullet, numbered
}

// Column is one side-by-side container of a columns block
type Column struct {
	Width   string       `json:"width"`
	Content []EmailBlock `json:"content"`
}

type ColumnsSettings struct {
	Columns []Column
}

type MenuItem struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type MenuSettings struct {
	Items       []MenuItem `json:"items"`
	Orientation string     `json:"orientation"` // horizontal, vertical
}

type TableCell struct {
	Content string `json:"content"`
}

type TableRow struct {
	Cells []TableCell `json:"cells"`
}

type TableSettings struct {
	Rows      []TableRow `json:"rows"`
	HeaderRow bool       `json:"headerRow"`
}

type CountdownSettings struct {
	TargetDate     string `json:"targetDate"`
	ExpiredMessage string `json:"expiredMessage"`
}

type VideoSettings struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}

type ImageSettings struct {
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	Alignment string `json:"alignment,omitempty"`
	Width     string `json:"width,omitempty"`
	Height    string `json:"height,omitempty"`
	Link      string `json:"link,omitempty"`
}

type HeroSettings struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ButtonText      string `json:"buttonText"`
	ButtonURL       string `json:"buttonUrl"`
	BackgroundColor string `json:"backgroundColor"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

type TestimonialSettings struct {
	Quote   string `json:"quote"`
	Author  string `json:"author"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Avatar  string `json:"avatar,omitempty"`
	Rating  int    `json:"rating"`
}

type PricingSettings struct {
	PlanName    string   `json:"planName"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Features    []string `json:"features"`
	ButtonText  string   `json:"buttonText"`
	ButtonURL   string   `json:"buttonUrl"`
	Highlighted bool     `json:"highlighted"`
}

type FeatureSettings struct {
	Icon          string `json:"icon"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ImagePosition string `json:"imagePosition"` // left, right, top
}

type CTASettings struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	ButtonText  string `json:"buttonText"`
	ButtonURL   string `json:"buttonUrl"`
}

type ImageTextSettings struct {
	ImageURL      string `json:"imageUrl"`
	ImageAlt      string `json:"imageAlt"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ButtonText    string `json:"buttonText"`
	ButtonURL     string `json:"buttonUrl"`
	ImagePosition string `json:"imagePosition"` // left, right
}

type GalleryImage struct {
	Src  string `json:"src"`
	Alt  string `json:"alt"`
	Link string `json:"link,omitempty"`
}

type GallerySettings struct {
	Images  []GalleryImage `json:"images"`
	Columns int            `json:"columns"`
}

type Stat struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

type StatsSettings struct {
	Stats []Stat `json:"stats"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQSettings struct {
	Items []FAQItem `json:"items"`
}

type SignatureSettings struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
}

type URLSettings struct {
	URL         string `json:"url"`
	DisplayText string `json:"displayText"`
	Description string `json:"description,omitempty"`
	Style       string `json:"style"` // link, card, button
}

type CalendarSettings struct {
	EventTitle       string `json:"eventTitle"`
	EventDate        string `json:"eventDate"`
	EventTime        string `json:"eventTime"`
	EventLocation    string `json:"eventLocation"`
	EventDescription string `json:"eventDescription,omitempty"`
	AddToCalendarURL string `json:"addToCalendarUrl,omitempty"`
}

type MapSettings struct {
	Address       string `json:"address"`
	DirectionsURL string `json:"directionsUrl"`
	MapImageURL   string `json:"mapImageUrl,omitempty"`
}

type CouponSettings struct {
	Code            string `json:"code"`
	Discount        string `json:"discount"`
	Description     string `json:"description"`
	ExpiryDate      string `json:"expiryDate,omitempty"`
	Terms           string `json:"terms,omitempty"`
	BorderStyle     string `json:"borderStyle"` // dashed, solid, dotted
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

type RatingSettings struct {
	Rating     int    `json:"rating"`
	MaxRating  int    `json:"maxRating"`
	Style      string `json:"style"` // stars, hearts, circles
	ShowNumber bool   `json:"showNumber"`
}

type ProgressSettings struct {
	Value          int    `json:"value"`
	Max            int    `json:"max"`
	Label          string `json:"label"`
	ShowPercentage bool   `json:"showPercentage"`
	Color          string `json:"color,omitempty"`
}

type AccordionItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type AccordionSettings struct {
	Items []AccordionItem `json:"items"`
}

type IconListItem struct {
	Icon    string `json:"icon"`
	Text    string `json:"text"`
	Subtext string `json:"subtext,omitempty"`
}

type IconListSettings struct {
	Items     []IconListItem `json:"items"`
	IconColor string         `json:"iconColor"`
}

type BeforeAfterSettings struct {
	BeforeImage string `json:"beforeImage,omitempty"`
	AfterImage  string `json:"afterImage,omitempty"`
	BeforeLabel string `json:"beforeLabel"`
	AfterLabel  string `json:"afterLabel"`
}

func (NoSettings) settingsKey() string          { return "" }
func (ButtonSettings) settingsKey() string      { return "button" }
func (DividerSettings) settingsKey() string     { return "" }
func (SpacerSettings) settingsKey() string      { return "" }
func (SocialSettings) settingsKey() string      { return "social" }
func (ListSettings) settingsKey() string        { return "list" }
func (ColumnsSettings) settingsKey() string     { return "columns" }
func (MenuSettings) settingsKey() string        { return "menu" }
func (TableSettings) settingsKey() string       { return "table" }
func (CountdownSettings) settingsKey() string   { return "countdown" }
func (VideoSettings) settingsKey() string       { return "video" }
func (ImageSettings) settingsKey() string       { return "image" }
func (HeroSettings) settingsKey() string        { return "hero" }
func (TestimonialSettings) settingsKey() string { return "testimonial" }
func (PricingSettings) settingsKey() string     { return "pricing" }
func (FeatureSettings) settingsKey() string     { return "feature" }
func (CTASettings) settingsKey() string         { return "cta" }
func (ImageTextSettings) settingsKey() string   { return "imageText" }
func (GallerySettings) settingsKey() string     { return "gallery" }
func (StatsSettings) settingsKey() string       { return "stats" }
func (FAQSettings) settingsKey() string         { return "faq" }
func (SignatureSettings) settingsKey() string   { return "signature" }
func (URLSettings) settingsKey() string         { return "url" }
func (CalendarSettings) settingsKey() string    { return "calendar" }
func (MapSettings) settingsKey() string         { return "map" }
func (CouponSettings) settingsKey() string      { return "coupon" }
func (RatingSettings) settingsKey() string      { return "rating" }
func (ProgressSettings) settingsKey() string    { return "progress" }
func (AccordionSettings) settingsKey() string   { return "accordion" }
func (IconListSettings) settingsKey() string    { return "iconList" }
func (BeforeAfterSettings) settingsKey() string { return "beforeAfter" }

func (s NoSettings) clone() Settings          { return s }
func (s ButtonSettings) clone() Settings      { return s }
func (s DividerSettings) clone() Settings     { return s }
func (s SpacerSettings) clone() Settings      { return s }
func (s CountdownSettings) clone() Settings   { return s }
func (s VideoSettings) clone() Settings       { return s }
func (s ImageSettings) clone() Settings       { return s }
func (s HeroSettings) clone() Settings        { return s }
func (s TestimonialSettings) clone() Settings { return s }
func (s FeatureSettings) clone() Settings     { return s }
func (s CTASettings) clone() Settings         { return s }
func (s ImageTextSettings) clone() Settings   { return s }
func (s SignatureSettings) clone() Settings   { return s }
func (s URLSettings) clone() Settings         { return s }
func (s CalendarSettings) clone() Settings    { return s }
func (s MapSettings) clone() Settings         { return s }
func (s CouponSettings) clone() Settings      { return s }
func (s RatingSettings) clone() Settings      { return s }
func (s ProgressSettings) clone() Settings    { return s }
func (s BeforeAfterSettings) clone() Settings { return s }

func (s SocialSettings) clone() Settings {
	s.Links = copySlice(s.Links)
	return s
}

func (s ListSettings) clone() Settings {
	s.Items = copySlice(s.Items)
	return s
}

func (s ColumnsSettings) clone() Settings {
	if s.Columns == nil {
		return s
	}
	cols := make([]Column, len(s.Columns))
	for i, col := range s.Columns {
		cols[i] = Column{Width: col.Width, Content: CloneBlocks(col.Content)}
	}
	s.Columns = cols
	return s
}

func (s MenuSettings) clone() Settings {
	s.Items = copySlice(s.Items)
	return s
}

func (s TableSettings) clone() Settings {
	if s.Rows == nil {
		return s
	}
	rows := make([]TableRow, len(s.Rows))
	for i, row := range s.Rows {
		rows[i] = TableRow{Cells: copySlice(row.Cells)}
	}
	s.Rows = rows
	return s
}

func (s PricingSettings) clone() Settings {
	s.Features = copySlice(s.Features)
	return s
}

func (s GallerySettings) clone() Settings {
	s.Images = copySlice(s.Images)
	return s
}

func (s StatsSettings) clone() Settings {
	s.Stats = copySlice(s.Stats)
	return s
}

func (s FAQSettings) clone() Settings {
	s.Items = copySlice(s.Items)
	return s
}

func (s AccordionSettings) clone() Settings {
	s.Items = copySlice(s.Items)
	return s
}

func (s IconListSettings) clone() Settings {
	s.Items = copySlice(s.Items)
	return s
}

func copySlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// marshalSettings produces the stored settings object. Divider and spacer fields sit at
// the top level, social links and columns are arrays, every other variant is nested
// under its type key.
func marshalSettings(s Settings) (json.RawMessage, error) {
	switch v := s.(type) {
	case nil, NoSettings:
		return nil, nil
	case DividerSettings, SpacerSettings:
		return json.Marshal(v)
	case SocialSettings:
		links := v.Links
		if links == nil {
			links = []SocialLink{}
		}
		return json.Marshal(map[string]interface{}{"social": links})
	case ColumnsSettings:
		cols := v.Columns
		if cols == nil {
			cols = []Column{}
		}
		return json.Marshal(map[string]interface{}{"columns": cols})
	default:
		return json.Marshal(map[string]interface{}{s.settingsKey(): s})
	}
}

// unmarshalSettings decodes the stored settings object for the given block type.
// A missing or empty payload yields the type defaults.
func unmarshalSettings(blockType BlockType, raw json.RawMessage) (Settings, error) {
	defaults := DefaultSettings(blockType)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return defaults, nil
	}

	switch def := defaults.(type) {
	case NoSettings:
		return def, nil
	case DividerSettings:
		var v DividerSettings
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		v.DividerStyle = pick(v.DividerStyle, def.DividerStyle)
		v.DividerColor = pick(v.DividerColor, def.DividerColor)
		v.DividerWidth = pick(v.DividerWidth, def.DividerWidth)
		return v, nil
	case SpacerSettings:
		var v SpacerSettings
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		v.SpacerHeight = pick(v.SpacerHeight, def.SpacerHeight)
		return v, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}
	payload, ok := envelope[defaults.settingsKey()]
	if !ok || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return defaults, nil
	}

	switch defaults.(type) {
	case SocialSettings:
		var links []SocialLink
		if err := json.Unmarshal(payload, &links); err != nil {
			return nil, err
		}
		return SocialSettings{Links: links}, nil
	case ColumnsSettings:
		var cols []Column
		if err := json.Unmarshal(payload, &cols); err != nil {
			return nil, err
		}
		for i := range cols {
			if cols[i].Content == nil {
				cols[i].Content = []EmailBlock{}
			}
		}
		return ColumnsSettings{Columns: cols}, nil
	}

	target := reflect.New(reflect.TypeOf(defaults))
	if err := json.Unmarshal(payload, target.Interface()); err != nil {
		return nil, fmt.Errorf("invalid %s settings: %w", defaults.settingsKey(), err)
	}
	return target.Elem().Interface().(Settings), nil
}
