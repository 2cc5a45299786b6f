package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reachsuite/emailbuilder/internal/domain"
)

func writeTemplate(t *testing.T, dir string, template domain.Template) string {
	raw, err := json.Marshal(template)
	require.NoError(t, err)
	path := filepath.Join(dir, "template.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestRun_StoredBlocks(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, domain.Template{
		ID:           "tmpl-1",
		Name:         "Spring Sale",
		Subject:      "Spring is here",
		Blocks:       `[{"id":"a","type":"text","content":"<p>Hello {{ firstName }}</p>","style":{}}]`,
		GlobalStyles: `{"backgroundColor":"#fafafa"}`,
	})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, []string{"-out", dir, path}))
	assert.Contains(t, out.String(), "Wrote 1 blocks")

	html, err := os.ReadFile(filepath.Join(dir, "Spring Sale.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Spring is here</title>")
	assert.Contains(t, string(html), "Hello {{ firstName }}")
	assert.Contains(t, string(html), "#fafafa")
}

func TestRun_PreviewAndHTMLFallback(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, domain.Template{
		ID:          "tmpl-2",
		Subject:     "Hi",
		HTMLContent: `<p>Hello {{ firstName }}</p>`,
	})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, []string{"-out", dir, "-preview", path}))

	html, err := os.ReadFile(filepath.Join(dir, "email-template.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Hello Jane")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer

	err := run(context.Background(), &out, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")

	err = run(context.Background(), &out, []string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template file")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	err = run(context.Background(), &out, []string{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode template file")
}
