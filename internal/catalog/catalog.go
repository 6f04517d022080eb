// Package catalog holds the static job catalog, course mapping and growth
// labels that analysis runs score against.
package catalog

import (
	"fmt"
	"strings"

	"github.com/spigell/career-advisor/internal/skills"
)

// DefaultGrowth is reported for jobs without a growth label.
const DefaultGrowth = "Medium"

// Job is a catalog entry. RequiredSkills are canonical and keep declaration order.
type Job struct {
	Title          string
	Growth         string
	RequiredSkills []string
}

// Course is a learning suggestion for a canonical skill.
type Course struct {
	Title    string `json:"title"`
	Provider string `json:"provider"`
	Duration string `json:"duration"`
}

// Catalog is read-only after construction and safe to share between runs.
type Catalog struct {
	jobs       []Job
	courses    map[string]Course
	normalizer *skills.Normalizer
}

// New builds a catalog. Required skills and course keys are passed through the
// normalizer and deduplicated, job titles must be unique and non-blank.
func New(jobs []Job, courses map[string]Course, normalizer *skills.Normalizer) (*Catalog, error) {
	if normalizer == nil {
		normalizer = skills.DefaultNormalizer()
	}

	c := &Catalog{
		jobs:       make([]Job, 0, len(jobs)),
		courses:    make(map[string]Course, len(courses)),
		normalizer: normalizer,
	}

	titles := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		title := strings.TrimSpace(job.Title)
		if title == "" {
			return nil, fmt.Errorf("job title must not be empty")
		}
		if titles[title] {
			return nil, fmt.Errorf("duplicate job title %q", title)
		}
		titles[title] = true

		growth := strings.TrimSpace(job.Growth)
		if growth == "" {
			growth = DefaultGrowth
		}

		c.jobs = append(c.jobs, Job{
			Title:          title,
			Growth:         growth,
			RequiredSkills: canonicalSkills(normalizer, job.RequiredSkills),
		})
	}

	for skill, course := range courses {
		key := normalizer.Normalize(skill)
		if key == "" {
			continue
		}
		if strings.TrimSpace(course.Title) == "" {
			return nil, fmt.Errorf("course for skill %q has no title", skill)
		}
		c.courses[key] = course
	}

	return c, nil
}

func canonicalSkills(n *skills.Normalizer, raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, s := range raw {
		canonical := n.Normalize(s)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out
}

// Jobs returns the catalog jobs in declaration order. The slice is a copy.
func (c *Catalog) Jobs() []Job {
	out := make([]Job, len(c.jobs))
	for i, job := range c.jobs {
		job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
		out[i] = job
	}
	return out
}

// Len returns the number of jobs.
func (c *Catalog) Len() int {
	return len(c.jobs)
}

// Job looks a job up by exact title.
func (c *Catalog) Job(title string) (Job, bool) {
	for _, job := range c.jobs {
		if job.Title == title {
			job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
			return job, true
		}
	}
	return Job{}, false
}

// Growth returns the growth label of title, DefaultGrowth when unknown.
func (c *Catalog) Growth(title string) string {
	if job, ok := c.Job(title); ok {
		return job.Growth
	}
	return DefaultGrowth
}

// Course returns the course suggested for a canonical skill.
func (c *Catalog) Course(skill string) (Course, bool) {
	course, ok := c.courses[skill]
	return course, ok
}

// Normalizer returns the normalizer the catalog was built with.
func (c *Catalog) Normalizer() *skills.Normalizer {
	return c.normalizer
}
