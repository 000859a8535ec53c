package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedExtractor struct {
	text string
}

func (f *fixedExtractor) ExtractText(data []byte, filename string) (string, error) {
	return f.text, nil
}

type fixedGemini struct {
	response string
	embedErr error
}

func (f *fixedGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	return f.response, nil
}

func (f *fixedGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{0.1, 0.2}, nil
}

type failingKnowledge struct {
	KnowledgeService
}

func (f *failingKnowledge) SearchSimilar(ctx context.Context, queryEmbedding []float32, topic string, limit int) ([]SearchResult, error) {
	return nil, errors.New("qdrant unreachable")
}

const longCV = "Jane Doe, Senior Backend Engineer with ten years of experience building Go services, Postgres-backed APIs and event pipelines."

func TestAnalyze_RetrievalFailureDegradesToNoContext(t *testing.T) {
	gemini := &fixedGemini{response: `{"overall_score": 70, "summary": "ok"}`}
	analyzer := NewAnalyzerService(&fixedExtractor{text: longCV}, gemini, &failingKnowledge{}, nil)

	result, err := analyzer.Analyze(context.Background(), []byte("%PDF-stub"), "cv.pdf", "en")

	require.NoError(t, err)
	assert.EqualValues(t, 70, result["overall_score"])
}

func TestAnalyze_EmbeddingFailureDegradesToNoContext(t *testing.T) {
	gemini := &fixedGemini{
		response: `{"overall_score": 64, "summary": "ok"}`,
		embedErr: errors.New("quota exceeded"),
	}
	analyzer := NewAnalyzerService(&fixedExtractor{text: longCV}, gemini, &failingKnowledge{}, nil)

	result, err := analyzer.Analyze(context.Background(), []byte("%PDF-stub"), "cv.pdf", "en")

	require.NoError(t, err)
	assert.EqualValues(t, 64, result["overall_score"])
}

type countingGemini struct {
	called bool
}

func (g *countingGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	g.called = true
	return `{"overall_score": 50, "summary": "ok"}`, nil
}

func (g *countingGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func TestAnalyze_ShortArabicTextRejectedBeforeModelCall(t *testing.T) {
	// 30 Arabic characters is 60 bytes; the gate counts characters.
	shortArabic := strings.Repeat("س", 30)
	gemini := &countingGemini{}
	analyzer := NewAnalyzerService(&fixedExtractor{text: shortArabic}, gemini, nil, nil)

	_, err := analyzer.Analyze(context.Background(), []byte("%PDF-stub"), "cv.pdf", "ar")

	assert.ErrorIs(t, err, ErrTextTooShort)
	assert.False(t, gemini.called, "the model must not be invoked for unusable text")
}

func TestAnalyze_FiftyArabicCharactersPassTheGate(t *testing.T) {
	usableArabic := strings.Repeat("س ", 25) + strings.Repeat("م", 25)
	gemini := &countingGemini{}
	analyzer := NewAnalyzerService(&fixedExtractor{text: usableArabic}, gemini, nil, nil)

	result, err := analyzer.Analyze(context.Background(), []byte("%PDF-stub"), "cv.pdf", "ar")

	require.NoError(t, err)
	assert.True(t, gemini.called)
	assert.EqualValues(t, 50, result["overall_score"])
}

func TestEnhance_NilModelIsConfigurationError(t *testing.T) {
	analyzer := NewAnalyzerService(&fixedExtractor{text: longCV}, nil, nil, nil)

	_, err := analyzer.Enhance(context.Background(), []byte("%PDF-stub"), "cv.pdf", "en", EnhanceOptions{})

	assert.ErrorIs(t, err, ErrModelNotConfigured)
}
