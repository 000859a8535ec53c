package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisKind string

const (
	KindAnalyze AnalysisKind = "analyze"
	KindEnhance AnalysisKind = "enhance"
)

type AnalysisStatus string

const (
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// AnalysisRecord is a write-only audit row capturing the outcome of one
// analyze or enhance request. Nothing on the request path ever reads it.
type AnalysisRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Kind         AnalysisKind   `gorm:"type:text;not null" json:"kind"`
	Filename     string         `gorm:"type:text" json:"filename"`
	Lang         string         `gorm:"type:text" json:"lang"`
	TextLength   int            `gorm:"type:integer" json:"text_length"`
	OverallScore *int           `gorm:"type:integer" json:"overall_score,omitempty"`
	Status       AnalysisStatus `gorm:"type:text;not null" json:"status"`
	ErrorMessage string         `gorm:"type:text" json:"error_message,omitempty"`
	DurationMs   int64          `gorm:"type:bigint" json:"duration_ms"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}
