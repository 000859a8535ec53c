package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The repo bundles the font the default config points at.
const testFontPath = "../../fonts/DejaVuSans.ttf"

func TestRenderReport_Success(t *testing.T) {
	renderer := NewReportRenderer(testFontPath)

	pdfBytes, err := renderer.RenderReport("A strong backend profile.", []string{
		"Add metrics to achievements",
		"حدّد إنجازاتك بالأرقام",
	})

	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")), "output must be a PDF byte stream")
}

func TestRenderReport_BadSuggestionGetsPlaceholder(t *testing.T) {
	renderer := NewReportRenderer(testFontPath)

	pdfBytes, err := renderer.RenderReport("Summary.", []string{
		"Fine suggestion",
		string([]byte{0xff, 0xfe, 0xfd}),
	})

	// One unrenderable entry never fails the whole report.
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))
}

func TestRenderReport_MissingFont(t *testing.T) {
	renderer := NewReportRenderer("/nonexistent/DejaVuSans.ttf")

	pdfBytes, err := renderer.RenderReport("A fine CV.", []string{"Add metrics"})

	// Fails closed: no partial PDF, no core-font fallback.
	assert.ErrorIs(t, err, ErrFontMissing)
	assert.Nil(t, pdfBytes)
}

func TestRenderableOr(t *testing.T) {
	assert.Equal(t, "fine", renderableOr("fine", "placeholder"))
	assert.Equal(t, "placeholder", renderableOr("", "placeholder"))
	assert.Equal(t, "placeholder", renderableOr(string([]byte{0xff, 0xfe, 0xfd}), "placeholder"))
}
