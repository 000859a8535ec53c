package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/qusailover-design/cv-doctor/internal/models"
)

// MinTextLength is the smallest extracted-text length, in characters,
// considered usable. Anything shorter is treated as a failed extraction,
// not a tiny CV.
const MinTextLength = 50

var ErrTextTooShort = errors.New("could not extract sufficient text from the document")

// AnalyzerService runs the request pipeline: extract text, build a prompt,
// make exactly one model call, normalize the reply. Failures after the
// input checks map to generic upstream errors; raw model output is logged
// server-side only.
type AnalyzerService interface {
	Analyze(ctx context.Context, data []byte, filename, lang string) (map[string]interface{}, error)
	Enhance(ctx context.Context, data []byte, filename, lang string, opts EnhanceOptions) (map[string]interface{}, error)
}

type analyzerService struct {
	extractor     TextExtractor
	gemini        GeminiService
	knowledge     KnowledgeService
	audit         AuditTrail
	promptBuilder *PromptBuilder
}

// NewAnalyzerService wires the pipeline. gemini may be nil when the API key
// is absent; knowledge and audit may be nil when those subsystems are
// disabled — the pipeline degrades accordingly.
func NewAnalyzerService(
	extractor TextExtractor,
	gemini GeminiService,
	knowledge KnowledgeService,
	audit AuditTrail,
) AnalyzerService {
	return &analyzerService{
		extractor:     extractor,
		gemini:        gemini,
		knowledge:     knowledge,
		audit:         audit,
		promptBuilder: NewPromptBuilder(),
	}
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, data []byte, filename, lang string) (map[string]interface{}, error) {
	started := time.Now()

	cvText, err := a.usableText(data, filename)
	if err != nil {
		a.record(models.KindAnalyze, filename, lang, len(cvText), nil, err, started)
		return nil, err
	}

	if a.gemini == nil {
		a.record(models.KindAnalyze, filename, lang, len(cvText), nil, ErrModelNotConfigured, started)
		return nil, ErrModelNotConfigured
	}

	guideContext := a.retrieveContext(ctx, cvText, "cv_guide")
	prompt := a.promptBuilder.BuildAnalysisPrompt(cvText, lang, guideContext)

	response, err := a.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		a.record(models.KindAnalyze, filename, lang, len(cvText), nil, err, started)
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	result, err := NormalizeAnalysis(response)
	if err != nil {
		log.Printf("❌ Failed to parse analysis response: %v\n", err)
		log.Printf("--- Full AI Response Was ---\n%s\n---\n", response)
		a.record(models.KindAnalyze, filename, lang, len(cvText), nil, err, started)
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	a.record(models.KindAnalyze, filename, lang, len(cvText), overallScore(result), nil, started)
	return result, nil
}

// Enhance implements AnalyzerService.
func (a *analyzerService) Enhance(ctx context.Context, data []byte, filename, lang string, opts EnhanceOptions) (map[string]interface{}, error) {
	started := time.Now()

	cvText, err := a.usableText(data, filename)
	if err != nil {
		a.record(models.KindEnhance, filename, lang, len(cvText), nil, err, started)
		return nil, err
	}

	if a.gemini == nil {
		a.record(models.KindEnhance, filename, lang, len(cvText), nil, ErrModelNotConfigured, started)
		return nil, ErrModelNotConfigured
	}

	queryText := cvText
	if opts.JobDescription != "" {
		queryText = opts.JobDescription
	}
	guideContext := a.retrieveContext(ctx, queryText, "cv_guide")
	prompt := a.promptBuilder.BuildEnhancementPrompt(cvText, lang, opts, guideContext)

	response, err := a.gemini.GenerateText(ctx, prompt, 0.5)
	if err != nil {
		a.record(models.KindEnhance, filename, lang, len(cvText), nil, err, started)
		return nil, fmt.Errorf("failed to generate enhancement: %w", err)
	}

	result, err := NormalizeEnhancement(response)
	if err != nil {
		log.Printf("❌ Failed to parse enhancement response: %v\n", err)
		log.Printf("--- Full AI Response Was ---\n%s\n---\n", response)
		a.record(models.KindEnhance, filename, lang, len(cvText), nil, err, started)
		return nil, fmt.Errorf("failed to parse enhancement response: %w", err)
	}

	a.record(models.KindEnhance, filename, lang, len(cvText), nil, nil, started)
	return result, nil
}

func (a *analyzerService) usableText(data []byte, filename string) (string, error) {
	text, err := a.extractor.ExtractText(data, filename)
	if err != nil {
		return "", err
	}

	text = CleanText(text)
	// Characters, not bytes: Arabic CVs are two bytes per letter.
	if utf8.RuneCountInString(text) < MinTextLength {
		return text, ErrTextTooShort
	}

	return text, nil
}

// retrieveContext enriches the prompt from the guide corpus. Retrieval is
// strictly optional: any failure logs a warning and returns an empty block.
func (a *analyzerService) retrieveContext(ctx context.Context, queryText, topic string) string {
	if a.knowledge == nil || a.gemini == nil {
		return ""
	}

	embedding, err := a.gemini.GenerateEmbedding(ctx, queryText)
	if err != nil {
		log.Printf("⚠️  Failed to embed retrieval query: %v\n", err)
		return ""
	}

	results, err := a.knowledge.SearchSimilar(ctx, embedding, topic, 3)
	if err != nil {
		log.Printf("⚠️  Failed to search guide corpus: %v\n", err)
		return ""
	}

	return FormatGuideContext(results)
}

func (a *analyzerService) record(kind models.AnalysisKind, filename, lang string, textLength int, score *int, failure error, started time.Time) {
	if a.audit == nil {
		return
	}

	event := AuditEvent{
		Kind:         kind,
		Filename:     filename,
		Lang:         lang,
		TextLength:   textLength,
		OverallScore: score,
		Status:       models.StatusCompleted,
		Duration:     time.Since(started),
	}

	if failure != nil {
		event.Status = models.StatusFailed
		event.ErrorMessage = failure.Error()
	}

	a.audit.Record(event)
}

func overallScore(result map[string]interface{}) *int {
	raw, ok := result["overall_score"].(float64)
	if !ok {
		return nil
	}
	score := int(raw)
	return &score
}
