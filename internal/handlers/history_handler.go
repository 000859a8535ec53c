package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qusailover-design/cv-doctor/internal/models"
	"github.com/qusailover-design/cv-doctor/internal/repositories"
)

type HistoryHandler struct {
	analysisRepo repositories.AnalysisRepository
}

// NewHistoryHandler takes a nil repository when the audit database is not
// configured; the endpoint then reports history as disabled.
func NewHistoryHandler(analysisRepo repositories.AnalysisRepository) *HistoryHandler {
	return &HistoryHandler{
		analysisRepo: analysisRepo,
	}
}

// HandleGetHistory handles GET /api/history
func (h *HistoryHandler) HandleGetHistory(c *fiber.Ctx) error {
	if h.analysisRepo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "History is disabled: no database configured",
		})
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	records, err := h.analysisRepo.FindRecent(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load history",
		})
	}

	return c.JSON(models.HistoryResponse{
		Count:   len(records),
		Records: records,
	})
}
