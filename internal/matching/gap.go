package matching

import (
	"github.com/spigell/career-advisor/internal/catalog"
	"github.com/spigell/career-advisor/internal/skills"
)

// Gap lists the required skills of a job the candidate lacks.
type Gap struct {
	Job             string   `json:"job"`
	Missing         []string `json:"missing_skills"`
	MatchPercentage float64  `json:"match_percentage"`
}

// AnalyzeGap compares candidate with the required skills of job. Missing keeps
// the job's declaration order.
func AnalyzeGap(candidate skills.Set, job catalog.Job) Gap {
	gap := Gap{Job: job.Title, Missing: []string{}}
	if len(job.RequiredSkills) == 0 {
		return gap
	}

	for _, required := range job.RequiredSkills {
		if !candidate.Has(required) {
			gap.Missing = append(gap.Missing, required)
		}
	}

	total := float64(len(job.RequiredSkills))
	gap.MatchPercentage = clamp((total - float64(len(gap.Missing))) / total * 100)

	return gap
}
