package services

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var ErrUnsupportedFileType = errors.New("unsupported file type")

type TextExtractor interface {
	ExtractText(data []byte, filename string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText dispatches on the declared filename extension. Extraction
// problems inside a document (a page that fails, an empty paragraph) are
// swallowed; an unreadable document comes back as an empty string and the
// caller's minimum-length check is the error signal.
func (t *textExtractor) ExtractText(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return t.extractPDF(data), nil
	case ".docx":
		return t.extractDocx(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}
}

func (t *textExtractor) extractPDF(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("⚠️  Failed to read PDF: %v\n", err)
		return ""
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(text) == "" {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String()
}

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

func (t *textExtractor) extractDocx(data []byte) string {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("⚠️  Failed to read DOCX: %v\n", err)
		return ""
	}
	defer doc.Close()

	content := doc.Editable().GetContent()

	// Paragraph boundaries become newlines, everything else is markup
	paragraphs := strings.Split(content, "</w:p>")

	var lines []string
	for _, para := range paragraphs {
		text := docxTagPattern.ReplaceAllString(para, "")
		text = html.UnescapeString(text)
		lines = append(lines, strings.TrimSpace(text))
	}

	return strings.Join(lines, "\n")
}

// CleanText normalizes extracted text: trims every line and drops the blank
// ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
