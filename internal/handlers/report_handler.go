package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/qusailover-design/cv-doctor/internal/models"
	"github.com/qusailover-design/cv-doctor/internal/services"
)

type ReportHandler struct {
	renderer services.ReportRenderer
}

func NewReportHandler(renderer services.ReportRenderer) *ReportHandler {
	return &ReportHandler{
		renderer: renderer,
	}
}

// HandleGeneratePDF handles POST /api/generate-pdf
func (h *ReportHandler) HandleGeneratePDF(c *fiber.Ctx) error {
	var req models.GeneratePDFRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	pdfBytes, err := h.renderer.RenderReport(req.Summary, req.Suggestions)
	if err != nil {
		if errors.Is(err, services.ErrFontMissing) {
			log.Printf("❌ Report font missing: %v\n", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "PDF font is not configured on the server.",
			})
		}

		log.Printf("❌ PDF generation failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "PDF generation failed.",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cv_report.pdf"`)
	return c.Send(pdfBytes)
}
