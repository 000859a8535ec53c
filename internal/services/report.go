package services

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// ErrFontMissing means the UTF-8 report font is not where the config points.
// There is deliberately no core-font fallback: Arabic summaries must render
// with the same glyph coverage as Latin ones, so a missing font is an
// operator problem, not a degraded mode.
var ErrFontMissing = errors.New("report font file is missing")

const fontFamily = "report"

type ReportRenderer interface {
	RenderReport(summary string, suggestions []string) ([]byte, error)
}

type reportRenderer struct {
	fontPath string
}

func NewReportRenderer(fontPath string) ReportRenderer {
	return &reportRenderer{fontPath: fontPath}
}

// RenderReport builds the analysis report PDF: fixed heading, the summary
// as wrapped text, then one bullet per suggestion. A suggestion that cannot
// be rendered is replaced by a placeholder line; the rest of the document
// still renders.
func (r *reportRenderer) RenderReport(summary string, suggestions []string) ([]byte, error) {
	if _, err := os.Stat(r.fontPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFontMissing, r.fontPath)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8Font(fontFamily, "", r.fontPath)
	if pdf.Err() {
		return nil, fmt.Errorf("failed to load report font: %v", pdf.Error())
	}

	pdf.SetTitle("CV Analysis Report", true)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "", 20)
	pdf.CellFormat(0, 12, "CV Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "", 14)
	pdf.CellFormat(0, 9, "Professional Summary", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(0, 6, renderableOr(summary, "(summary could not be rendered)"), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "", 14)
	pdf.CellFormat(0, 9, "Key Improvements", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)

	for _, suggestion := range suggestions {
		line := renderableOr(suggestion, "(suggestion could not be rendered)")
		pdf.MultiCell(0, 6, "• "+line, "", "L", false)
		pdf.Ln(1)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("failed to render report: %v", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return buf.Bytes(), nil
}

// renderableOr substitutes placeholder for text that would break rendering.
func renderableOr(text, placeholder string) string {
	if text == "" || !utf8.ValidString(text) {
		return placeholder
	}
	return text
}
