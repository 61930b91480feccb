package consensus

import (
	"testing"

	"github.com/linkwise/linkwise/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		counts  model.VoteCounts
		label   string
		percent int
	}{
		{
			name:    "no votes",
			counts:  model.VoteCounts{},
			label:   LabelUnknown,
			percent: 0,
		},
		{
			name:    "trusted at exactly the threshold",
			counts:  model.VoteCounts{Trusted: 60, Untrusted: 40},
			label:   LabelTrusted,
			percent: 60,
		},
		{
			name:    "one vote short of the trusted threshold",
			counts:  model.VoteCounts{Trusted: 59, Untrusted: 41},
			label:   LabelSuspicious,
			percent: 0, // the suspicious share, not the plurality share
		},
		{
			name:    "untrusted majority",
			counts:  model.VoteCounts{Trusted: 10, Suspicious: 20, Untrusted: 70},
			label:   LabelUntrusted,
			percent: 70,
		},
		{
			name:    "trusted checked before untrusted",
			counts:  model.VoteCounts{Trusted: 61, Untrusted: 39},
			label:   LabelTrusted,
			percent: 61,
		},
		{
			name:    "no majority falls to suspicious",
			counts:  model.VoteCounts{Trusted: 40, Suspicious: 25, Untrusted: 35},
			label:   LabelSuspicious,
			percent: 25,
		},
		{
			name:    "single trusted vote",
			counts:  model.VoteCounts{Trusted: 1},
			label:   LabelTrusted,
			percent: 100,
		},
		{
			name:    "all suspicious",
			counts:  model.VoteCounts{Suspicious: 7},
			label:   LabelSuspicious,
			percent: 100,
		},
		{
			name:    "rounding to nearest whole percent",
			counts:  model.VoteCounts{Trusted: 2, Suspicious: 1}, // 66.67% -> 67
			label:   LabelTrusted,
			percent: 67,
		},
		{
			name:    "fractional share below threshold does not round up into a pass",
			counts:  model.VoteCounts{Trusted: 599, Suspicious: 1, Untrusted: 400}, // 59.9%
			label:   LabelSuspicious,
			percent: 0, // 1/1000 rounds to 0
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.counts)
			if got.Label != tt.label {
				t.Errorf("label = %q, want %q", got.Label, tt.label)
			}
			if got.Percentage != tt.percent {
				t.Errorf("percentage = %d, want %d", got.Percentage, tt.percent)
			}
		})
	}
}
