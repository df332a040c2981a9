package app

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/metrics"
)

// ParsedRating is what a strategy recovered from oracle output, before
// normalization. A nil Rating means the output had no usable number.
type ParsedRating struct {
	Rating   *float64
	Feedback string
}

// ParseStrategy is one step of the fallback chain applied to oracle output.
// Parse reports false when the output does not match the strategy's shape.
type ParseStrategy struct {
	Name  string
	Parse func(raw string) (ParsedRating, bool)
}

// DefaultParseStrategies returns the chain in preference order: a JSON
// object, then progressively looser text patterns.
func DefaultParseStrategies() []ParseStrategy {
	return []ParseStrategy{
		{Name: metrics.SourceStructured, Parse: parseStructured},
		{Name: metrics.SourceLabeled, Parse: regexStrategy(labeledFieldPattern)},
		{Name: metrics.SourceRatingWord, Parse: regexStrategy(ratingWordPattern)},
		{Name: metrics.SourceOutOfFive, Parse: regexStrategy(outOfFivePattern)},
	}
}

// ParseAssessment runs raw through strategies in order and normalizes the
// first match. When nothing matches it returns a neutral rating. The
// returned source names the strategy that matched, or metrics.SourceDefault.
func ParseAssessment(raw string, strategies []ParseStrategy) (domain.Assessment, string) {
	for _, s := range strategies {
		if parsed, ok := s.Parse(raw); ok {
			return domain.NormalizeAssessment(parsed.Rating, parsed.Feedback), s.Name
		}
	}

	return domain.NormalizeAssessment(nil, domain.UnparsedFeedback), metrics.SourceDefault
}

var (
	labeledFieldPattern = regexp.MustCompile(`(?i)["']?rating["']?\s*:\s*(\d)`)
	ratingWordPattern   = regexp.MustCompile(`(?i)rating[:\s]+(\d)`)
	outOfFivePattern    = regexp.MustCompile(`(\d)\s*/\s*5`)
)

func regexStrategy(re *regexp.Regexp) func(string) (ParsedRating, bool) {
	return func(raw string) (ParsedRating, bool) {
		m := re.FindStringSubmatch(raw)
		if m == nil {
			return ParsedRating{}, false
		}

		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return ParsedRating{}, false
		}

		return ParsedRating{Rating: &n, Feedback: domain.UnparsedFeedback}, true
	}
}

// parseStructured reads the JSON object the prompt asks for. Values are
// decoded loosely so a wrongly typed field degrades instead of failing, but
// an object carrying neither field is not an answer and falls through to
// the text patterns.
func parseStructured(raw string) (ParsedRating, bool) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return ParsedRating{}, false
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return ParsedRating{}, false
	}

	var (
		parsed  ParsedRating
		matched bool
	)

	for k, v := range fields {
		switch {
		case strings.EqualFold(k, "rating"):
			matched = true

			if n, ok := v.(float64); ok {
				parsed.Rating = &n
			}
		case strings.EqualFold(k, "feedback"):
			matched = true

			if s, ok := v.(string); ok {
				parsed.Feedback = strings.TrimSpace(s)
			}
		}
	}

	return parsed, matched
}

// extractJSONObject strips a surrounding code fence and returns the span
// from the first '{' to the last '}', or "" if there is none.
func extractJSONObject(raw string) string {
	body := stripCodeFence(raw)

	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")

	if start < 0 || end <= start {
		return ""
	}

	return body[start : end+1]
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}

	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}

	return strings.TrimSpace(body)
}
