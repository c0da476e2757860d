package store

import (
	"sort"

	"snake-ai/game"
)

// Summary aggregates a set of finished rounds
type Summary struct {
	Rounds          int     `json:"rounds"`
	AutopilotRounds int     `json:"autopilot_rounds"`
	AverageScore    float64 `json:"average_score"`
	MedianScore     float64 `json:"median_score"`
	MaxScore        int     `json:"max_score"`
	MinScore        int     `json:"min_score"`
	AverageDuration float64 `json:"average_duration"` // seconds
	MaxDuration     float64 `json:"max_duration"`
	MinDuration     float64 `json:"min_duration"`
	AverageTicks    float64 `json:"average_ticks"`
}

// Summarize computes score and duration statistics. An empty input gives a zero Summary.
func Summarize(rounds []game.Round) Summary {
	var s Summary
	if len(rounds) == 0 {
		return s
	}

	s.Rounds = len(rounds)
	scores := make([]float64, 0, len(rounds))
	var totalScore, totalDuration float64
	var totalTicks int

	s.MaxScore = rounds[0].Score
	s.MinScore = rounds[0].Score
	s.MaxDuration = rounds[0].Duration().Seconds()
	s.MinDuration = s.MaxDuration

	for _, r := range rounds {
		if r.Autopilot {
			s.AutopilotRounds++
		}

		scores = append(scores, float64(r.Score))
		totalScore += float64(r.Score)
		totalTicks += r.Ticks
		if r.Score > s.MaxScore {
			s.MaxScore = r.Score
		}
		if r.Score < s.MinScore {
			s.MinScore = r.Score
		}

		d := r.Duration().Seconds()
		totalDuration += d
		if d > s.MaxDuration {
			s.MaxDuration = d
		}
		if d < s.MinDuration {
			s.MinDuration = d
		}
	}

	s.AverageScore = totalScore / float64(len(rounds))
	s.AverageDuration = totalDuration / float64(len(rounds))
	s.AverageTicks = float64(totalTicks) / float64(len(rounds))
	s.MedianScore = median(scores)
	return s
}

// median sorts values in place
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 0 {
		return (values[n/2-1] + values[n/2]) / 2
	}
	return values[n/2]
}
