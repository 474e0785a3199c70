package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFileType is returned for extensions outside the allowed set.
var ErrUnsupportedFileType = errors.New("unsupported file type")

var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
	".pdf":  true,
	".html": true,
	".htm":  true,
}

// Supported reports whether the file name carries an ingestible extension.
func Supported(fileName string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(fileName))]
}

// Document is the extraction result handed to the knowledge store.
type Document struct {
	Content  string
	Source   string
	Metadata map[string]interface{}
}

// Process reads a file and extracts its plain-text content.
// Plain text, markdown and markup pass through verbatim; JSON is re-rendered
// pretty-printed; PDF text is extracted page by page with page separators.
func Process(filePath string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	name := filepath.Base(filePath)

	var content string
	var err error

	switch ext {
	case ".txt", ".md", ".html", ".htm":
		content, err = readTextFile(filePath)
	case ".json":
		content, err = readJSONFile(filePath)
	case ".pdf":
		content, err = readPDFFile(filePath)
	default:
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFileType, name, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("error processing file %s: %w", name, err)
	}

	return &Document{
		Content: content,
		Source:  name,
		Metadata: map[string]interface{}{
			"source":    name,
			"file_type": ext,
			"file_path": filePath,
		},
	}, nil
}

func readTextFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readJSONFile renders structured data as indented text so chunk boundaries
// fall between fields instead of inside a single long line.
func readJSONFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return "", err
	}
	return string(pretty), nil
}

func readPDFFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error reading PDF: %w", err)
	}

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the whole document.
			continue
		}

		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, fmt.Sprintf("--- Page %d ---\n%s", pageNum, trimmed))
		}
	}

	return strings.Join(pages, "\n\n"), nil
}
