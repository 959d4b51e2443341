package services

import "math"

const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingAverage   = "Average"
	RatingPoor      = "Poor"
)

// Round2 rounds to two decimal places with half-up semantics.
func Round2(value float64) float64 {
	return math.Floor(value*100+0.5) / 100
}

// Clamp01 bounds a similarity value to [0, 1] before it is converted to a
// percentage, so a misbehaving backend cannot push scores past 100.
func Clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// MatchPercentage rescales a [0,1] similarity to a 0-100 percentage.
func MatchPercentage(similarity float64) float64 {
	return Round2(Clamp01(similarity) * 100)
}

// AggregateScore combines the lexical and semantic signals into the composite
// ATS score: an even split, rounded to two decimals.
func AggregateScore(keywordScore, matchPercentage float64) float64 {
	return Round2(0.5*keywordScore + 0.5*matchPercentage)
}

// DeriveRating maps a composite score to its band. Lower bounds are inclusive.
func DeriveRating(atsScore float64) string {
	switch {
	case atsScore >= 85:
		return RatingExcellent
	case atsScore >= 70:
		return RatingGood
	case atsScore >= 50:
		return RatingAverage
	default:
		return RatingPoor
	}
}
