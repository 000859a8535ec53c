package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnalysisPrompt_English(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildAnalysisPrompt("John Doe, Software Engineer", "en", "")

	assert.Contains(t, prompt, "MUST be ONLY a single, valid JSON object")
	assert.Contains(t, prompt, `"overall_score"`)
	assert.Contains(t, prompt, `"summary"`)
	assert.Contains(t, prompt, `"suggestions"`)
	assert.Contains(t, prompt, `"keyword_analysis"`)
	assert.Contains(t, prompt, `"ats_score"`)
	assert.Contains(t, prompt, `"red_flags"`)
	assert.Contains(t, prompt, "---\nJohn Doe, Software Engineer\n---")
}

func TestBuildAnalysisPrompt_UnknownLangDefaultsToEnglish(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildAnalysisPrompt("cv text", "fr", "")

	assert.Contains(t, prompt, "Act as an expert career coach")
}

func TestBuildAnalysisPrompt_Arabic(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildAnalysisPrompt("نص السيرة", "ar", "")

	assert.NotContains(t, prompt, "Act as an expert career coach")
	// Key names stay English so the response schema is locale-independent.
	assert.Contains(t, prompt, `"overall_score"`)
	assert.Contains(t, prompt, `"suggestions"`)
	assert.Contains(t, prompt, "---\nنص السيرة\n---")
}

func TestBuildAnalysisPrompt_GuideContext(t *testing.T) {
	pb := NewPromptBuilder()

	without := pb.BuildAnalysisPrompt("cv text", "en", "")
	with := pb.BuildAnalysisPrompt("cv text", "en", "Use strong action verbs.")

	assert.NotContains(t, without, "REFERENCE GUIDANCE")
	assert.Contains(t, with, "REFERENCE GUIDANCE:\nUse strong action verbs.")
}

func TestBuildEnhancementPrompt_MandatoryKeyListed(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildEnhancementPrompt("cv text", "en", EnhanceOptions{}, "")

	assert.Contains(t, prompt, `"enhanced_cv_md"`)
	assert.Contains(t, prompt, "mandatory")
	assert.Contains(t, prompt, `"sections"`)
}

func TestBuildEnhancementPrompt_Options(t *testing.T) {
	pb := NewPromptBuilder()

	opts := EnhanceOptions{
		TargetRole:     "Platform Engineer",
		JobDescription: "Builds deployment tooling",
		Tone:           "confident",
		TemplateStyle:  "modern",
	}

	prompt := pb.BuildEnhancementPrompt("cv text", "en", opts, "")

	assert.Contains(t, prompt, "Platform Engineer")
	assert.Contains(t, prompt, "Builds deployment tooling")
	assert.Contains(t, prompt, "confident")
	assert.Contains(t, prompt, "modern")
}

func TestBuildEnhancementPrompt_EmptyOptionsLeaveNoDirectives(t *testing.T) {
	pb := NewPromptBuilder()

	prompt := pb.BuildEnhancementPrompt("cv text", "en", EnhanceOptions{}, "")

	assert.NotContains(t, prompt, "Target the CV at this role")
	assert.NotContains(t, prompt, "Use this tone")
}

func TestFormatGuideContext(t *testing.T) {
	results := []SearchResult{
		{Score: 0.91, Text: " Lead with impact. "},
		{Score: 0.72, Text: "Quantify achievements."},
	}

	got := FormatGuideContext(results)

	require.NotEmpty(t, got)
	assert.Contains(t, got, "--- Context 1 (Score: 0.91) ---\nLead with impact.")
	assert.Contains(t, got, "--- Context 2 (Score: 0.72) ---\nQuantify achievements.")
	assert.Equal(t, "", FormatGuideContext(nil))
}

func TestFormatGuideContext_JoinedWithBlankLine(t *testing.T) {
	results := []SearchResult{
		{Score: 0.5, Text: "a"},
		{Score: 0.4, Text: "b"},
	}

	got := FormatGuideContext(results)
	assert.Equal(t, 2, len(strings.Split(got, "\n\n")))
}
