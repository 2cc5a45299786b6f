package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachsuite/emailbuilder/pkg/emailblocks"
)

func sequentialIDs() emailblocks.IDGenerator {
	n := 0
	return emailblocks.IDGeneratorFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

func validTemplate() *Template {
	return &Template{
		ID:      "welcome",
		Name:    "Welcome",
		Subject: "Hello there",
	}
}

func TestTemplate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Template)
		wantErr string
	}{
		{"valid", func(*Template) {}, ""},
		{"bad id", func(tpl *Template) { tpl.ID = "has space" }, "id must be"},
		{"missing name", func(tpl *Template) { tpl.Name = "  " }, "name is required"},
		{"long name", func(tpl *Template) { tpl.Name = strings.Repeat("n", 256) }, "name length"},
		{"missing subject", func(tpl *Template) { tpl.Subject = "" }, "subject is required"},
		{"blocks not array", func(tpl *Template) { tpl.Blocks = `{"id":"x"}` }, "blocks must be a JSON array"},
		{"styles not object", func(tpl *Template) { tpl.GlobalStyles = `[]` }, "globalStyles must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := validTemplate()
			tt.mutate(tpl)
			err := tpl.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.IsType(t, ValidationError{}, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTemplate_Document(t *testing.T) {
	t.Run("stored blocks win and get fresh ids", func(t *testing.T) {
		tpl := validTemplate()
		tpl.HTMLContent = "<h1>Ignored</h1>"
		tpl.Blocks = `[{"id":"old","type":"text","content":"<p>Hi</p>","style":{},"settings":{}}]`
		tpl.GlobalStyles = `{"backgroundColor":"#000000"}`

		doc, repaired := tpl.Document(sequentialIDs())
		assert.Zero(t, repaired)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, "id-1", doc.Blocks[0].ID)
		assert.Equal(t, "<p>Hi</p>", doc.Blocks[0].Content)
		assert.Equal(t, "#000000", doc.GlobalStyles.BackgroundColor)
		assert.Equal(t, emailblocks.DefaultGlobalStyles().ContentWidth, doc.GlobalStyles.ContentWidth)
		assert.Equal(t, "Welcome", doc.Name)
		assert.Equal(t, "Hello there", doc.Subject)
	})

	t.Run("blocks encoded as a JSON string", func(t *testing.T) {
		tpl := validTemplate()
		encoded, err := json.Marshal(`[{"id":"old","type":"divider","content":"","style":{},"settings":{}}]`)
		require.NoError(t, err)
		tpl.Blocks = string(encoded)

		doc, repaired := tpl.Document(sequentialIDs())
		assert.Zero(t, repaired)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, emailblocks.BlockTypeDivider, doc.Blocks[0].Type)
	})

	t.Run("empty blocks fall back to html", func(t *testing.T) {
		tpl := validTemplate()
		tpl.Blocks = "[]"
		tpl.HTMLContent = "<h1>Big</h1><p>Copy</p>"

		doc, repaired := tpl.Document(sequentialIDs())
		assert.Zero(t, repaired)
		require.Len(t, doc.Blocks, 2)
		assert.Equal(t, emailblocks.BlockTypeHeading, doc.Blocks[0].Type)
		assert.Equal(t, emailblocks.DefaultGlobalStyles(), doc.GlobalStyles)
	})

	t.Run("nothing stored yields an empty document", func(t *testing.T) {
		doc, repaired := validTemplate().Document(sequentialIDs())
		assert.Zero(t, repaired)
		assert.NotNil(t, doc.Blocks)
		assert.Empty(t, doc.Blocks)
	})

	t.Run("an invalid block takes defaults and keeps its neighbours", func(t *testing.T) {
		tpl := validTemplate()
		tpl.HTMLContent = "<h1>Stored HTML</h1>"
		tpl.Blocks = `[
			{"id":"a","type":"heading","content":"<h1>Sale</h1>","style":{}},
			{"id":"b","type":"rating","content":"","style":{"padding":"8px"},"settings":{"rating":{"rating":"4"}}}
		]`

		doc, repaired := tpl.Document(sequentialIDs())
		assert.Equal(t, 1, repaired)
		require.Len(t, doc.Blocks, 2)
		assert.Equal(t, "<h1>Sale</h1>", doc.Blocks[0].Content)
		assert.Equal(t, emailblocks.BlockTypeRating, doc.Blocks[1].Type)
		assert.Equal(t, emailblocks.DefaultSettings(emailblocks.BlockTypeRating), doc.Blocks[1].Settings)
		assert.Equal(t, "8px", doc.Blocks[1].Style.Padding)
	})

	t.Run("unusable blocks fall back to html", func(t *testing.T) {
		tpl := validTemplate()
		tpl.HTMLContent = "<h1>Big</h1><p>Copy</p>"
		tpl.Blocks = `["not a block", 42]`

		doc, repaired := tpl.Document(sequentialIDs())
		assert.Equal(t, 2, repaired)
		require.Len(t, doc.Blocks, 2)
		assert.Equal(t, emailblocks.BlockTypeHeading, doc.Blocks[0].Type)
	})

	t.Run("styles of the wrong type are skipped", func(t *testing.T) {
		tpl := validTemplate()
		tpl.GlobalStyles = `{"backgroundColor":"#111111","contentWidth":600}`

		doc, repaired := tpl.Document(sequentialIDs())
		assert.Equal(t, 1, repaired)
		assert.Equal(t, "#111111", doc.GlobalStyles.BackgroundColor)
		assert.Equal(t, emailblocks.DefaultGlobalStyles().ContentWidth, doc.GlobalStyles.ContentWidth)
	})
}

func TestTemplate_ApplyDocument(t *testing.T) {
	tpl := validTemplate()
	doc := emailblocks.Document{
		Name:         "Renamed",
		Subject:      "New subject",
		Preheader:    "Preview",
		Blocks:       []emailblocks.EmailBlock{emailblocks.NewBlock("b1", emailblocks.BlockTypeSpacer)},
		GlobalStyles: emailblocks.DefaultGlobalStyles(),
	}

	require.NoError(t, tpl.ApplyDocument(doc, "<html></html>"))
	assert.Equal(t, "welcome", tpl.ID)
	assert.Equal(t, "Renamed", tpl.Name)
	assert.Equal(t, "Preview", tpl.Preheader)
	assert.Equal(t, "<html></html>", tpl.HTMLContent)
	assert.NoError(t, tpl.Validate())

	roundTrip, repaired := tpl.Document(sequentialIDs())
	assert.Zero(t, repaired)
	require.Len(t, roundTrip.Blocks, 1)
	assert.Equal(t, emailblocks.BlockTypeSpacer, roundTrip.Blocks[0].Type)
	assert.Equal(t, doc.GlobalStyles, roundTrip.GlobalStyles)
}

func TestNormalizeJSONField(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"absent", "", "", false},
		{"null", "null", "", false},
		{"empty string", `""`, "", false},
		{"array", `[{"id":"a"}]`, `[{"id":"a"}]`, false},
		{"object", `{"linkColor":"#fff"}`, `{"linkColor":"#fff"}`, false},
		{"string wrapped array", `"[1,2]"`, `[1,2]`, false},
		{"number", `42`, "", true},
		{"plain string", `"hello"`, "", true},
		{"broken", `[1,`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeJSONField(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateTemplateRequest_Validate(t *testing.T) {
	req := &CreateTemplateRequest{TemplatePayload: TemplatePayload{
		Name:         " Launch ",
		Subject:      "We're live",
		Blocks:       json.RawMessage(`"[]"`),
		GlobalStyles: json.RawMessage(`{"linkColor":"#ff0000"}`),
	}}

	tpl, err := req.Validate()
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, "Launch", tpl.Name)
	assert.Equal(t, "[]", tpl.Blocks)
	assert.Equal(t, `{"linkColor":"#ff0000"}`, tpl.GlobalStyles)

	req.Subject = ""
	_, err = req.Validate()
	assert.ErrorContains(t, err, "invalid create template request: validation error: subject is required")

	req.Subject = "ok"
	req.Blocks = json.RawMessage(`7`)
	_, err = req.Validate()
	assert.ErrorContains(t, err, "blocks")
}

func TestUpdateTemplateRequest_Validate(t *testing.T) {
	_, err := (&UpdateTemplateRequest{}).Validate()
	assert.EqualError(t, err, "invalid update template request: id is required")

	tpl, err := (&UpdateTemplateRequest{ID: "t-1", TemplatePayload: TemplatePayload{Name: "N", Subject: "S"}}).Validate()
	require.NoError(t, err)
	assert.Equal(t, "t-1", tpl.ID)
}

func TestGetTemplateRequest_FromURLParams(t *testing.T) {
	var req GetTemplateRequest
	assert.EqualError(t, req.FromURLParams(url.Values{}), "invalid get template request: id is required")
	assert.EqualError(t, req.FromURLParams(url.Values{"id": {"a/b"}}), "invalid get template request: id is malformed")
	require.NoError(t, req.FromURLParams(url.Values{"id": {"tpl_1"}}))
	assert.Equal(t, "tpl_1", req.ID)
}

func TestDeleteTemplateRequest_Validate(t *testing.T) {
	assert.Error(t, (&DeleteTemplateRequest{}).Validate())
	assert.NoError(t, (&DeleteTemplateRequest{ID: "x"}).Validate())
}
