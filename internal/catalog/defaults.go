package catalog

import "github.com/spigell/career-advisor/internal/skills"

const (
	defaultCourseProvider = "Coursera"
	defaultCourseDuration = "6 weeks"
)

var defaultJobs = []Job{
	{Title: "Cloud Engineer", Growth: "High", RequiredSkills: []string{"cloud computing", "devops", "networking", "linux", "python", "security"}},
	{Title: "Web Developer", RequiredSkills: []string{"javascript", "html", "css", "web development", "api", "database"}},
	{Title: "Network Engineer", RequiredSkills: []string{"networking", "linux", "security"}},
	{Title: "Database Administrator", RequiredSkills: []string{"sql", "nosql", "database", "security"}},
	{Title: "Cybersecurity Analyst", Growth: "High", RequiredSkills: []string{"cybersecurity", "networking", "linux", "security"}},
	{Title: "Software Engineer", RequiredSkills: []string{"java", "python", "c++", "data structures", "algorithms", "devops"}},
	{Title: "AI Engineer", Growth: "Very High", RequiredSkills: []string{"machine learning", "python", "data analysis", "tensorflow", "pytorch"}},
	{Title: "Embedded Systems Engineer", RequiredSkills: []string{"c++", "c", "embedded systems", "hardware"}},
	{Title: "Business Analyst", RequiredSkills: []string{"business analysis", "communication", "sql", "data analysis", "project management"}},
	{Title: "Data Analyst", RequiredSkills: []string{"data analysis", "sql", "python", "data visualization"}},
	{Title: "DevOps Engineer", Growth: "High", RequiredSkills: []string{"devops", "cloud computing", "linux", "automation"}},
	{Title: "Mobile App Developer", RequiredSkills: []string{"java", "kotlin", "swift", "mobile development", "ui/ux design"}},
	{Title: "UI/UX Designer", RequiredSkills: []string{"ui/ux design", "user research", "graphic design"}},
	{Title: "Project Manager", RequiredSkills: []string{"project management", "leadership", "communication", "risk management"}},
	{Title: "Data Scientist", Growth: "Very High", RequiredSkills: []string{"data analysis", "machine learning", "python", "statistics"}},
}

var defaultCourseTitles = map[string]string{
	"machine learning":   "Machine Learning Fundamentals",
	"cloud computing":    "AWS Cloud Practitioner",
	"python":             "Python for Data Science",
	"javascript":         "Modern JavaScript Development",
	"cybersecurity":      "Cybersecurity Fundamentals",
	"data analysis":      "Data Analysis with Python",
	"project management": "PMP Certification",
}

// DefaultJobs returns a copy of the built-in job catalog.
func DefaultJobs() []Job {
	out := make([]Job, len(defaultJobs))
	for i, job := range defaultJobs {
		job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
		out[i] = job
	}
	return out
}

// DefaultCourses returns a copy of the built-in skill to course mapping.
func DefaultCourses() map[string]Course {
	out := make(map[string]Course, len(defaultCourseTitles))
	for skill, title := range defaultCourseTitles {
		out[skill] = Course{Title: title, Provider: defaultCourseProvider, Duration: defaultCourseDuration}
	}
	return out
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultJobs(), DefaultCourses(), skills.DefaultNormalizer())
	if err != nil {
		panic(err)
	}
	return c
}
