package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestProcess_PlainTextPassThrough(t *testing.T) {
	path := writeTemp(t, "checkout.txt", "The checkout form has a discount field.\n")

	doc, err := Process(path)

	require.NoError(t, err)
	assert.Equal(t, "The checkout form has a discount field.\n", doc.Content)
	assert.Equal(t, "checkout.txt", doc.Source)
	assert.Equal(t, ".txt", doc.Metadata["file_type"])
	assert.Equal(t, path, doc.Metadata["file_path"])
}

func TestProcess_MarkupPassThrough(t *testing.T) {
	html := `<form id="checkout"><input id="discount"/></form>`
	path := writeTemp(t, "page.html", html)

	doc, err := Process(path)

	require.NoError(t, err)
	assert.Equal(t, html, doc.Content)
}

func TestProcess_JSONPrettyPrinted(t *testing.T) {
	path := writeTemp(t, "api.json", `{"feature":"cart","max_items":10}`)

	doc, err := Process(path)

	require.NoError(t, err)
	assert.Contains(t, doc.Content, "\"feature\": \"cart\"")
	assert.Contains(t, doc.Content, "\"max_items\": 10")
	// Indented rendering spans multiple lines.
	assert.Greater(t, len(doc.Content), len(`{"feature":"cart","max_items":10}`))
}

func TestProcess_InvalidJSON(t *testing.T) {
	path := writeTemp(t, "broken.json", `{"feature": `)

	_, err := Process(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestProcess_UnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "binary.exe", "MZ")

	_, err := Process(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.Contains(t, err.Error(), "binary.exe")
}

func TestProcess_MissingFile(t *testing.T) {
	_, err := Process(filepath.Join(t.TempDir(), "ghost.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.txt")
}
