package domain

import "math"

// Rating bounds.
const (
	MinRating     = 1
	MaxRating     = 5
	NeutralRating = 3
)

// Feedback strings used when the rater cannot produce its own.
const (
	DefaultFeedback     = "Rated by AI"
	UnparsedFeedback    = "AI rating completed"
	UnavailableFeedback = "Rating service temporarily unavailable"
)

// DefaultThreshold is the publish cutoff when none is configured.
const DefaultThreshold = 3

// Assessment is the rater's verdict on a piece of text.
type Assessment struct {
	Rating   int
	Feedback string
}

// UnavailableAssessment is returned when the rating oracle could not be reached.
func UnavailableAssessment() Assessment {
	return Assessment{Rating: NeutralRating, Feedback: UnavailableFeedback}
}

// NormalizeAssessment turns a raw rating and feedback of any origin into a
// valid Assessment. A nil or non-finite rating becomes NeutralRating; any
// other value is rounded and clamped to [MinRating, MaxRating]. Blank
// feedback becomes DefaultFeedback.
func NormalizeAssessment(rating *float64, feedback string) Assessment {
	a := Assessment{Rating: NeutralRating, Feedback: feedback}

	if rating != nil && !math.IsNaN(*rating) && !math.IsInf(*rating, 0) {
		a.Rating = ClampRating(*rating)
	}

	if a.Feedback == "" {
		a.Feedback = DefaultFeedback
	}

	return a
}

// ClampRating rounds v half away from zero and clamps it to the rating range.
func ClampRating(v float64) int {
	r := math.Round(v)

	switch {
	case r < MinRating:
		return MinRating
	case r > MaxRating:
		return MaxRating
	default:
		return int(r)
	}
}

// Decide reports whether content with the given rating is published.
// The threshold is not range checked.
func Decide(rating, threshold int) bool {
	return rating >= threshold
}
