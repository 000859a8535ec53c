package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/qusailover-design/cv-doctor/internal/models"
)

type AnalysisRepository interface {
	Create(record *models.AnalysisRecord) error
	FindRecent(limit int) ([]models.AnalysisRecord, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create implements AnalysisRepository.
func (r *analysisRepository) Create(record *models.AnalysisRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}

	return nil
}

// FindRecent implements AnalysisRepository.
func (r *analysisRepository) FindRecent(limit int) ([]models.AnalysisRecord, error) {
	var records []models.AnalysisRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find analysis records: %w", err)
	}

	return records, nil
}
