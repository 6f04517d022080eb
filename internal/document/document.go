// Package document turns uploaded resume files into plain text.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxSize is the largest document accepted, in bytes.
const MaxSize = 16 << 20

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrTooLarge    = errors.New("file is too large")
)

// AllowedExtensions lists the extensions accepted for upload. Images and legacy
// .doc files pass the allow list but cannot be decoded to text.
var AllowedExtensions = []string{"txt", "pdf", "png", "jpg", "jpeg", "gif", "doc", "docx"}

var (
	paragraphEndRe = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTagRe       = regexp.MustCompile(`<[^>]+>`)
)

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Allowed reports whether the file name carries an accepted extension.
func Allowed(name string) bool {
	return slices.Contains(AllowedExtensions, extension(name))
}

// ExtractText decodes data according to the extension of name.
func ExtractText(name string, data []byte) (string, error) {
	if len(data) > MaxSize {
		return "", fmt.Errorf("%s: %w", name, ErrTooLarge)
	}

	switch ext := extension(name); ext {
	case "txt":
		return string(data), nil
	case "pdf":
		return pdfText(data)
	case "docx":
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// ReadFile loads a document from disk and extracts its text.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	data, err := readLimited(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	return ExtractText(path, data)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return xmlToText(doc.Editable().GetContent()), nil
}

// xmlToText flattens WordprocessingML into lines, one per paragraph.
func xmlToText(content string) string {
	content = paragraphEndRe.ReplaceAllString(content, "\n")
	content = xmlTagRe.ReplaceAllString(content, "")

	replacer := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
	return replacer.Replace(content)
}
