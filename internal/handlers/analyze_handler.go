package handlers

import (
	"errors"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/qusailover-design/cv-doctor/internal/services"
)

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
}

func NewAnalyzeHandler(analyzer services.AnalyzerService) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
	}
}

// HandleAnalyze handles POST /api/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file part",
		})
	}

	if fileHeader.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No selected file",
		})
	}

	lang := c.FormValue("lang", "en")

	data, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	result, err := h.analyzer.Analyze(c.UserContext(), data, fileHeader.Filename, lang)
	if err != nil {
		return analysisError(c, err, "AI analysis failed.")
	}

	return c.JSON(result)
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

// analysisError maps pipeline failures onto the HTTP taxonomy: input
// problems are 400 with a descriptive message, everything else is 500 with
// a generic one. Diagnostic detail stays in the server log.
func analysisError(c *fiber.Ctx, err error, genericMsg string) error {
	switch {
	case errors.Is(err, services.ErrUnsupportedFileType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unsupported file type.",
		})
	case errors.Is(err, services.ErrTextTooShort):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract sufficient text.",
		})
	case errors.Is(err, services.ErrModelNotConfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI model is not configured on the server.",
		})
	default:
		log.Printf("❌ An error occurred during analysis: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": genericMsg,
		})
	}
}
