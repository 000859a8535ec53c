package models

// GeneratePDFRequest is the JSON body of POST /api/generate-pdf.
type GeneratePDFRequest struct {
	Summary     string   `json:"summary"`
	Suggestions []string `json:"suggestions"`
}

// HistoryResponse wraps the audit rows returned by GET /api/history.
type HistoryResponse struct {
	Count   int              `json:"count"`
	Records []AnalysisRecord `json:"records"`
}
