package services

import (
	"fmt"
	"strings"
)

// EnhanceOptions are the optional tuning parameters of an enhancement
// request. Empty fields are left out of the prompt.
type EnhanceOptions struct {
	TargetRole     string
	JobDescription string
	Tone           string
	TemplateStyle  string
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt renders the analysis instruction around the extracted
// CV text. lang "ar" selects the Arabic template; anything else is English.
// guideContext is optional retrieved guidance injected between the
// instructions and the document.
func (pb *PromptBuilder) BuildAnalysisPrompt(cvText, lang, guideContext string) string {
	if lang == "ar" {
		return fmt.Sprintf(`تصرف كخبير تدريب مهني ومدير موارد بشرية. حلل نص السيرة الذاتية التالي بعناية.
يجب أن تكون إجابتك عبارة عن كائن JSON صالح واحد فقط، دون أي نص قبله أو بعده.
يجب أن يحتوي كائن JSON على هذه المفاتيح:
- "overall_score": عدد صحيح بين 0 و 100.
- "summary": سلسلة نصية تحتوي على ملخص موجز.
- "suggestions": مصفوفة من 3 إلى 7 **سلاسل نصية بسيطة**. كل سلسلة يجب أن تكون اقتراحًا واحدًا واضحًا وقابلًا للتنفيذ.
- "keyword_analysis": سلسلة نصية واحدة تشرح استخدام الكلمات المفتاحية.
- "ats_score": عدد صحيح بين 0 و 100 يقيس التوافق مع أنظمة تتبع المتقدمين.
- "readability_score": عدد صحيح بين 0 و 100.
- "section_scores": كائن يربط اسم كل قسم بدرجة من 0 إلى 100.
- "gaps": مصفوفة من السلاسل النصية تصف الفجوات.
- "achievements_to_quantify": مصفوفة من السلاسل النصية.
- "red_flags": مصفوفة من السلاسل النصية.
%s
نص السيرة الذاتية:
---
%s
---`, guideSection(guideContext, "ar"), cvText)
	}

	return fmt.Sprintf(`Act as an expert career coach and HR manager. Analyze the following CV text.
Your response MUST be ONLY a single, valid JSON object with no text before or after it.
The JSON object must have these keys:
- "overall_score": An integer between 0 and 100.
- "summary": A string containing a concise summary.
- "suggestions": An array of 3 to 7 **simple strings**. Each string must be a clear, actionable suggestion.
- "keyword_analysis": A single string explaining keyword usage.
- "ats_score": An integer between 0 and 100 measuring Applicant Tracking System friendliness.
- "readability_score": An integer between 0 and 100.
- "section_scores": An object mapping each CV section name to a 0-100 score.
- "gaps": An array of strings describing gaps in the CV.
- "achievements_to_quantify": An array of strings, each an achievement that should carry numbers.
- "red_flags": An array of strings.
%s
CV Text:
---
%s
---`, guideSection(guideContext, "en"), cvText)
}

// BuildEnhancementPrompt renders the rewrite instruction. The model must
// return enhanced_cv_md; the normalizer treats its absence as a hard
// failure.
func (pb *PromptBuilder) BuildEnhancementPrompt(cvText, lang string, opts EnhanceOptions, guideContext string) string {
	if lang == "ar" {
		return fmt.Sprintf(`تصرف ككاتب سير ذاتية محترف. أعد صياغة السيرة الذاتية التالية وحسّنها.
يجب أن تكون إجابتك عبارة عن كائن JSON صالح واحد فقط، دون أي نص قبله أو بعده.
يجب أن يحتوي كائن JSON على هذه المفاتيح:
- "title": سلسلة نصية بالمسمى الوظيفي المقترح.
- "summary": سلسلة نصية بملخص مهني محسّن.
- "keywords": مصفوفة من السلاسل النصية.
- "sections": كائن يربط اسم كل قسم بمحتواه المحسّن.
- "enhanced_cv_md": السيرة الذاتية الكاملة المحسّنة بصيغة Markdown. هذا المفتاح إلزامي.
- "file_name": اسم ملف مقترح للمخرجات.
%s%s
نص السيرة الذاتية:
---
%s
---`, enhancementDirectives(opts, "ar"), guideSection(guideContext, "ar"), cvText)
	}

	return fmt.Sprintf(`Act as a professional CV writer. Rewrite and enhance the following CV.
Your response MUST be ONLY a single, valid JSON object with no text before or after it.
The JSON object must have these keys:
- "title": A string with the suggested professional title.
- "summary": A string with an improved professional summary.
- "keywords": An array of strings.
- "sections": An object mapping each CV section name to its improved content.
- "enhanced_cv_md": The complete enhanced CV as a markdown-formatted string. This key is mandatory.
- "file_name": A suggested output file name.
%s%s
CV Text:
---
%s
---`, enhancementDirectives(opts, "en"), guideSection(guideContext, "en"), cvText)
}

func enhancementDirectives(opts EnhanceOptions, lang string) string {
	var parts []string

	if lang == "ar" {
		if opts.TargetRole != "" {
			parts = append(parts, fmt.Sprintf("وجّه السيرة الذاتية نحو وظيفة: %s", opts.TargetRole))
		}
		if opts.JobDescription != "" {
			parts = append(parts, fmt.Sprintf("واءم المحتوى مع الوصف الوظيفي التالي:\n%s", opts.JobDescription))
		}
		if opts.Tone != "" {
			parts = append(parts, fmt.Sprintf("استخدم نبرة: %s", opts.Tone))
		}
		if opts.TemplateStyle != "" {
			parts = append(parts, fmt.Sprintf("اتبع أسلوب القالب: %s", opts.TemplateStyle))
		}
	} else {
		if opts.TargetRole != "" {
			parts = append(parts, fmt.Sprintf("Target the CV at this role: %s", opts.TargetRole))
		}
		if opts.JobDescription != "" {
			parts = append(parts, fmt.Sprintf("Align the content with this job description:\n%s", opts.JobDescription))
		}
		if opts.Tone != "" {
			parts = append(parts, fmt.Sprintf("Use this tone: %s", opts.Tone))
		}
		if opts.TemplateStyle != "" {
			parts = append(parts, fmt.Sprintf("Follow this template style: %s", opts.TemplateStyle))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return "\n" + strings.Join(parts, "\n") + "\n"
}

func guideSection(guideContext, lang string) string {
	if strings.TrimSpace(guideContext) == "" {
		return ""
	}
	if lang == "ar" {
		return fmt.Sprintf("\nإرشادات مرجعية:\n%s\n", guideContext)
	}
	return fmt.Sprintf("\nREFERENCE GUIDANCE:\n%s\n", guideContext)
}

// FormatGuideContext flattens retrieval hits into a prompt-ready block.
func FormatGuideContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
