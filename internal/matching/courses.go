package matching

import "github.com/spigell/career-advisor/internal/catalog"

const (
	courseJobs         = 3
	courseSkillsPerJob = 2
	maxCourses         = 5
)

// CourseLookup resolves a canonical skill to a course.
type CourseLookup interface {
	Course(skill string) (catalog.Course, bool)
}

// RecommendCourses walks the first three gaps (in ranking order) and suggests
// courses for up to two missing skills of each. Unmapped skills are skipped,
// duplicates by title are dropped and at most five courses are returned.
func RecommendCourses(gaps []Gap, lookup CourseLookup) []catalog.Course {
	courses := make([]catalog.Course, 0, maxCourses)
	if lookup == nil {
		return courses
	}

	seen := make(map[string]bool)
	for i, gap := range gaps {
		if i == courseJobs {
			break
		}

		for j, skill := range gap.Missing {
			if j == courseSkillsPerJob {
				break
			}

			course, ok := lookup.Course(skill)
			if !ok || seen[course.Title] {
				continue
			}
			seen[course.Title] = true
			courses = append(courses, course)
		}
	}

	if len(courses) > maxCourses {
		courses = courses[:maxCourses]
	}
	return courses
}
