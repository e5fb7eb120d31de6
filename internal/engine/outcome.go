package engine

// OutcomeTier is the qualitative grade of a finished run.
type OutcomeTier int

const (
	TierFailed OutcomeTier = iota
	TierMarginal
	TierGood
	TierExcellent
)

// Tier thresholds, inclusive lower bounds.
const (
	excellentScore = 90
	goodScore      = 70
	marginalScore  = 50
)

// String returns the tier name used as the key of a definition's outcome text.
func (t OutcomeTier) String() string {
	switch t {
	case TierExcellent:
		return "excellent"
	case TierGood:
		return "good"
	case TierMarginal:
		return "marginal"
	case TierFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Title returns the display form of the tier.
func (t OutcomeTier) Title() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierMarginal:
		return "Marginal"
	case TierFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Classify maps a final score to its tier. It is defined for every int.
func Classify(score int) OutcomeTier {
	switch {
	case score >= excellentScore:
		return TierExcellent
	case score >= goodScore:
		return TierGood
	case score >= marginalScore:
		return TierMarginal
	default:
		return TierFailed
	}
}
