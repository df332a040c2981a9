package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quoteboard/internal/domain"
	"github.com/jsamuelsen/quoteboard/internal/platform/metrics"
)

func TestParseAssessment(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		want       domain.Assessment
		wantSource string
	}{
		{
			name:       "plain JSON",
			raw:        `{"rating": 4, "feedback": "Strong and clear."}`,
			want:       domain.Assessment{Rating: 4, Feedback: "Strong and clear."},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "JSON inside json code fence",
			raw:        "```json\n{\"rating\": 2, \"feedback\": \"Thin.\"}\n```",
			want:       domain.Assessment{Rating: 2, Feedback: "Thin."},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "prose and JSON inside code fence",
			raw:        "```\nGreat! {\"rating\": 5, \"feedback\": \"Sharp\"}\n```",
			want:       domain.Assessment{Rating: 5, Feedback: "Sharp"},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "JSON rating out of range is clamped",
			raw:        `{"rating": 9, "feedback": "Wow"}`,
			want:       domain.Assessment{Rating: 5, Feedback: "Wow"},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "JSON fractional rating is rounded",
			raw:        `{"rating": 3.6, "feedback": "ok"}`,
			want:       domain.Assessment{Rating: 4, Feedback: "ok"},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "JSON string rating defaults to neutral",
			raw:        `{"rating": "4", "feedback": "typed wrong"}`,
			want:       domain.Assessment{Rating: 3, Feedback: "typed wrong"},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "JSON without feedback",
			raw:        `{"rating": 1}`,
			want:       domain.Assessment{Rating: 1, Feedback: domain.DefaultFeedback},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "JSON with non-string feedback",
			raw:        `{"rating": 2, "feedback": 7}`,
			want:       domain.Assessment{Rating: 2, Feedback: domain.DefaultFeedback},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "JSON without rating or feedback falls through",
			raw:        `{"note":"x"} rating: 5`,
			want:       domain.Assessment{Rating: 5, Feedback: domain.UnparsedFeedback},
			wantSource: metrics.SourceLabeled,
		},
		{
			name:       "JSON keys match case-insensitively",
			raw:        `{"Rating": 4, "Feedback": "Clear"}`,
			want:       domain.Assessment{Rating: 4, Feedback: "Clear"},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "JSON null rating is neutral",
			raw:        `{"rating": null, "feedback": "unsure"}`,
			want:       domain.Assessment{Rating: 3, Feedback: "unsure"},
			wantSource: metrics.SourceStructured,
		},
		{
			name:       "broken JSON falls back to labeled field",
			raw:        `{'rating': 4, feedback: nice`,
			want:       domain.Assessment{Rating: 4, Feedback: domain.UnparsedFeedback},
			wantSource: metrics.SourceLabeled,
		},
		{
			name:       "rating word without colon",
			raw:        "I would give this a rating 2 overall",
			want:       domain.Assessment{Rating: 2, Feedback: domain.UnparsedFeedback},
			wantSource: metrics.SourceRatingWord,
		},
		{
			name:       "out of five",
			raw:        "Solid work, 4 / 5.",
			want:       domain.Assessment{Rating: 4, Feedback: domain.UnparsedFeedback},
			wantSource: metrics.SourceOutOfFive,
		},
		{
			name:       "regex zero is clamped up",
			raw:        "Rating: 0",
			want:       domain.Assessment{Rating: 1, Feedback: domain.UnparsedFeedback},
			wantSource: metrics.SourceLabeled,
		},
		{
			name:       "regex high digit is clamped down",
			raw:        "8/5 would read again",
			want:       domain.Assessment{Rating: 5, Feedback: domain.UnparsedFeedback},
			wantSource: metrics.SourceOutOfFive,
		},
		{
			name:       "nothing recognizable",
			raw:        "I cannot rate this.",
			want:       domain.Assessment{Rating: 3, Feedback: domain.UnparsedFeedback},
			wantSource: metrics.SourceDefault,
		},
		{
			name:       "empty answer",
			raw:        "",
			want:       domain.Assessment{Rating: 3, Feedback: domain.UnparsedFeedback},
			wantSource: metrics.SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := ParseAssessment(tt.raw, DefaultParseStrategies())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestParseAssessment_StrategyOrder(t *testing.T) {
	var calls []string

	record := func(name string, match bool) ParseStrategy {
		return ParseStrategy{Name: name, Parse: func(string) (ParsedRating, bool) {
			calls = append(calls, name)
			n := 2.0

			return ParsedRating{Rating: &n, Feedback: name}, match
		}}
	}

	got, source := ParseAssessment("x", []ParseStrategy{
		record("first", false),
		record("second", true),
		record("third", true),
	})

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, "second", source)
	assert.Equal(t, domain.Assessment{Rating: 2, Feedback: "second"}, got)
}

func TestParseStrategies_InIsolation(t *testing.T) {
	strategies := DefaultParseStrategies()
	byName := make(map[string]ParseStrategy, len(strategies))

	for _, s := range strategies {
		byName[s.Name] = s
	}

	_, ok := byName[metrics.SourceStructured].Parse("no braces here")
	assert.False(t, ok)

	_, ok = byName[metrics.SourceStructured].Parse(`{"note": "x", "score": 4}`)
	assert.False(t, ok, "an object without rating or feedback is not an answer")

	parsed, ok := byName[metrics.SourceStructured].Parse(`{"feedback": " Terse "}`)
	assert.True(t, ok)
	assert.Nil(t, parsed.Rating)
	assert.Equal(t, "Terse", parsed.Feedback)

	_, ok = byName[metrics.SourceLabeled].Parse("rating 4")
	assert.False(t, ok, "labeled field needs a colon")

	parsed, ok = byName[metrics.SourceRatingWord].Parse("RATING 4")
	assert.True(t, ok)
	assert.InDelta(t, 4, *parsed.Rating, 0)

	_, ok = byName[metrics.SourceOutOfFive].Parse("3 out of 5")
	assert.False(t, ok)
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONObject("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":{"b":2}}`, extractJSONObject(`prefix {"a":{"b":2}} suffix`))
	assert.Empty(t, extractJSONObject("} backwards {"))
	assert.Empty(t, extractJSONObject("nothing"))
}
