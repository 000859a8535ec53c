package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSONObject means no balanced JSON object could be located in the
	// model's free-form reply.
	ErrNoJSONObject = errors.New("no valid JSON object found in AI response")

	// ErrMissingEnhancedCV means the enhancement reply parsed fine but left
	// out the mandatory markdown field.
	ErrMissingEnhancedCV = errors.New("enhancement response is missing enhanced_cv_md")
)

const defaultEnhancedFileName = "enhanced_cv.md"

// ExtractJSONObject returns the first balanced JSON object embedded in raw
// text. The scanner starts at the first '{' and tracks brace depth, string
// literals and escapes, so nested objects and trailing prose containing '}'
// do not confuse it. Markdown fences around the object fall outside the
// brace span and need no stripping; fences inside string values survive
// untouched.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	if start == -1 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1], nil
				}
			}
		}
	}

	return "", ErrNoJSONObject
}

// NormalizeAnalysis isolates the JSON object in the model's reply, parses
// it and coerces fields the contract pins down:
//   - every suggestions element becomes a string
//   - a structured keyword_analysis keeps its shape but gains a flattened
//     keyword_analysis_text companion for consumers expecting a string
func NormalizeAnalysis(raw string) (map[string]interface{}, error) {
	result, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	coerceSuggestions(result)
	flattenKeywordAnalysis(result)

	return result, nil
}

// NormalizeEnhancement parses the enhancement reply. enhanced_cv_md is
// mandatory even when the JSON itself is valid; file_name gets a default
// when the model omits one.
func NormalizeEnhancement(raw string) (map[string]interface{}, error) {
	result, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	md, ok := result["enhanced_cv_md"].(string)
	if !ok || strings.TrimSpace(md) == "" {
		return nil, ErrMissingEnhancedCV
	}

	if name, ok := result["file_name"].(string); !ok || strings.TrimSpace(name) == "" {
		result["file_name"] = defaultEnhancedFileName
	}

	if keywords, ok := result["keywords"].([]interface{}); ok {
		result["keywords"] = stringifyAll(keywords)
	}

	return result, nil
}

func parseObject(raw string) (map[string]interface{}, error) {
	jsonStr, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}

// coerceSuggestions prevents the '[object Object]' class of bug: the model
// sometimes returns nested objects where plain strings were asked for.
func coerceSuggestions(result map[string]interface{}) {
	suggestions, ok := result["suggestions"].([]interface{})
	if !ok {
		return
	}
	result["suggestions"] = stringifyAll(suggestions)
}

func stringifyAll(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, stringify(item))
	}
	return out
}

func stringify(item interface{}) string {
	if s, ok := item.(string); ok {
		return s
	}
	encoded, err := json.Marshal(item)
	if err != nil {
		return fmt.Sprintf("%v", item)
	}
	return string(encoded)
}

// flattenKeywordAnalysis derives a readable string from a structured
// keyword_analysis and attaches it under keyword_analysis_text. The object
// stays in place for newer consumers.
func flattenKeywordAnalysis(result map[string]interface{}) {
	ka, ok := result["keyword_analysis"].(map[string]interface{})
	if !ok {
		return
	}

	var parts []string

	if present, ok := ka["present"].([]interface{}); ok && len(present) > 0 {
		parts = append(parts, "Present: "+strings.Join(stringifyAll(present), ", "))
	}
	if missing, ok := ka["missing"].([]interface{}); ok && len(missing) > 0 {
		parts = append(parts, "Missing: "+strings.Join(stringifyAll(missing), ", "))
	}
	if comment, ok := ka["density_comment"].(string); ok && comment != "" {
		parts = append(parts, comment)
	}

	result["keyword_analysis_text"] = strings.Join(parts, ". ")
}
