package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qusailover-design/cv-doctor/internal/services"
)

type EnhanceHandler struct {
	analyzer services.AnalyzerService
}

func NewEnhanceHandler(analyzer services.AnalyzerService) *EnhanceHandler {
	return &EnhanceHandler{
		analyzer: analyzer,
	}
}

// HandleEnhance handles POST /api/enhance
func (h *EnhanceHandler) HandleEnhance(c *fiber.Ctx) error {
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
	opts := services.EnhanceOptions{
		TargetRole:     c.FormValue("target_role"),
		JobDescription: c.FormValue("job_desc"),
		Tone:           c.FormValue("tone"),
		TemplateStyle:  c.FormValue("template_style"),
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}

	result, err := h.analyzer.Enhance(c.UserContext(), data, fileHeader.Filename, lang, opts)
	if err != nil {
		return analysisError(c, err, "AI enhancement failed.")
	}

	return c.JSON(result)
}
