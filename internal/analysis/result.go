package analysis

import "github.com/spigell/career-advisor/internal/catalog"

// Skill gap importance levels and the only proficiency level reported.
const (
	ImportanceHigh   = "High"
	ImportanceMedium = "Medium"
	LevelNone        = "None"
)

// Result is the outcome of one analysis run. It is not modified once stored.
type Result struct {
	RecommendedCareers  []Career         `json:"recommended_careers"`
	SkillGaps           []SkillGap       `json:"skill_gaps"`
	TrendingSuitability int              `json:"trending_jobs_suitability"`
	RecommendedCourses  []catalog.Course `json:"recommended_courses"`
	UserSkills          UserSkills       `json:"user_skills"`
}

// Career is a recommended job with its rounded match score.
type Career struct {
	Title  string  `json:"title"`
	Match  float64 `json:"match"`
	Growth string  `json:"growth"`
}

// SkillGap summarises the first missing skills of a top job.
type SkillGap struct {
	Job          string `json:"job"`
	Skill        string `json:"skill"`
	Importance   string `json:"importance"`
	CurrentLevel string `json:"current_level"`
}

// UserSkills echoes the skills the candidate declared.
type UserSkills struct {
	Technical []string `json:"technical_skills"`
	Soft      []string `json:"soft_skills"`
}

// All returns technical followed by soft skills.
func (u UserSkills) All() []string {
	all := make([]string, 0, len(u.Technical)+len(u.Soft))
	all = append(all, u.Technical...)
	return append(all, u.Soft...)
}
