// Package matching scores candidates against catalog jobs and derives skill
// gaps and course suggestions from the scores.
package matching

import (
	"math"
	"sort"

	"github.com/spigell/career-advisor/internal/catalog"
	"github.com/spigell/career-advisor/internal/skills"
)

const (
	maxScore        = 100.0
	maxBreadthBonus = 20.0
	bonusPerSkill   = 0.5
)

// Eligibility is the fit score of one catalog job, in [0, 100].
type Eligibility struct {
	Job   string  `json:"job"`
	Score float64 `json:"score"`
}

// Score computes the eligibility of candidate for job.
//
// The base is the share of required skills the candidate has. The breadth bonus
// is computed from the raw declared skill count, not the deduplicated set.
func Score(candidate skills.Set, job catalog.Job) float64 {
	if len(job.RequiredSkills) == 0 {
		return 0
	}

	matched := 0
	for _, required := range job.RequiredSkills {
		if candidate.Has(required) {
			matched++
		}
	}

	base := float64(matched) / float64(len(job.RequiredSkills)) * 100
	bonus := math.Min(maxBreadthBonus, float64(candidate.Declared())*bonusPerSkill)

	return clamp(base + bonus)
}

// ScoreAll scores every job and keeps catalog order.
func ScoreAll(candidate skills.Set, jobs []catalog.Job) []Eligibility {
	results := make([]Eligibility, 0, len(jobs))
	for _, job := range jobs {
		results = append(results, Eligibility{Job: job.Title, Score: Score(candidate, job)})
	}
	return results
}

// Rank returns a copy of results sorted by score descending. Equal scores keep
// their input order.
func Rank(results []Eligibility) []Eligibility {
	ranked := make([]Eligibility, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Top returns at most n leading entries of ranked.
func Top(ranked []Eligibility, n int) []Eligibility {
	if n < 0 {
		n = 0
	}
	if len(ranked) < n {
		n = len(ranked)
	}
	return ranked[:n]
}

// Round1 rounds a score to one decimal for reporting.
func Round1(score float64) float64 {
	return math.Round(score*10) / 10
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > maxScore:
		return maxScore
	default:
		return v
	}
}
