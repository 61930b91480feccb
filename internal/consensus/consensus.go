// Package consensus derives a community classification from a post's
// aggregate vote counts.
package consensus

import (
	"math"

	"github.com/linkwise/linkwise/internal/model"
)

// Labels for the derived classification. Unknown is only produced for
// posts with no votes.
const (
	LabelUnknown    = "unknown"
	LabelTrusted    = string(model.CategoryTrusted)
	LabelSuspicious = string(model.CategorySuspicious)
	LabelUntrusted  = string(model.CategoryUntrusted)
)

// majorityPercent is the share a fixed category must reach to win the
// classification outright.
const majorityPercent = 60

// Classify maps aggregate vote counts to a classification and the
// percentage of votes supporting it. Thresholds are evaluated in priority
// order against fixed categories, not by plurality: trusted wins at >= 60%,
// then untrusted at >= 60%, otherwise the post is suspicious and the
// percentage is the suspicious share even when that share is low.
func Classify(counts model.VoteCounts) model.Consensus {
	total := counts.Sum()
	if total == 0 {
		return model.Consensus{Label: LabelUnknown, Percentage: 0}
	}

	// Integer cross-multiplication so 59.99% never rounds into a pass.
	if counts.Trusted*100 >= total*majorityPercent {
		return model.Consensus{Label: LabelTrusted, Percentage: share(counts.Trusted, total)}
	}
	if counts.Untrusted*100 >= total*majorityPercent {
		return model.Consensus{Label: LabelUntrusted, Percentage: share(counts.Untrusted, total)}
	}
	return model.Consensus{Label: LabelSuspicious, Percentage: share(counts.Suspicious, total)}
}

// share returns count/total as a whole-number percentage, rounded to
// nearest for display.
func share(count, total int) int {
	return int(math.Round(float64(count) * 100 / float64(total)))
}
