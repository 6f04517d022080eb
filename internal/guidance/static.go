// Package guidance serves built-in career guidance templates.
package guidance

import (
	"context"
	"net/url"
	"strings"

	"github.com/spigell/career-advisor/internal/ai"
)

const defaultKey = "default"

type template struct {
	overview     string
	skills       []string
	learningPath []string
	resources    []string
}

var templates = map[string]template{
	"software engineer": {
		overview: "Software engineering is about designing, developing, and maintaining software systems.",
		skills: []string{
			"Data Structures & Algorithms",
			"System Design",
			"Version Control (Git)",
			"Testing & Debugging",
			"Cloud Platforms (AWS/Azure/GCP)",
		},
		learningPath: []string{
			"Master a programming language (Python, Java, or JavaScript)",
			"Learn data structures and algorithms",
			"Understand databases (SQL and NoSQL)",
			"Learn about APIs and web services",
			"Explore cloud computing fundamentals",
		},
		resources: []string{
			"LeetCode for coding practice",
			"Designing Data-Intensive Applications (book)",
			"FreeCodeCamp or The Odin Project",
			"AWS/Azure/GCP free tier for hands-on practice",
		},
	},
	"data scientist": {
		overview: "Data science involves extracting insights from structured and unstructured data.",
		skills: []string{
			"Python/R Programming",
			"Statistics & Mathematics",
			"Machine Learning",
			"Data Visualization",
			"SQL & Database Management",
		},
		learningPath: []string{
			"Learn Python for data analysis (pandas, numpy)",
			"Study statistics and probability",
			"Master data visualization (matplotlib, seaborn)",
			"Learn machine learning fundamentals",
			"Work on real-world datasets",
		},
		resources: []string{
			"Kaggle for datasets and competitions",
			"Fast.ai for practical ML",
			"Towards Data Science publication",
			"Coursera's Machine Learning by Andrew Ng",
		},
	},
	"product manager": {
		overview: "Product management focuses on developing and managing products throughout their lifecycle.",
		skills: []string{
			"Market Research",
			"Product Strategy",
			"Agile Methodologies",
			"User Experience (UX) Principles",
			"Data-Driven Decision Making",
		},
		learningPath: []string{
			"Learn product development lifecycle",
			"Study agile and scrum methodologies",
			"Understand UX/UI fundamentals",
			"Develop business and market analysis skills",
			"Practice stakeholder management",
		},
		resources: []string{
			"Inspired: How to Create Products Customers Love (book)",
			"Product School courses",
			"Marty Cagan's blog",
			"Lenny's Newsletter",
		},
	},
	defaultKey: {
		overview: "This career path shows good potential based on your skills.",
		skills: []string{
			"Industry-specific technical skills",
			"Communication & Collaboration",
			"Problem Solving",
			"Continuous Learning",
			"Project Management",
		},
		learningPath: []string{
			"Research industry requirements",
			"Identify key skills gap",
			"Take relevant courses/certifications",
			"Build a portfolio of projects",
			"Network with professionals in the field",
		},
		resources: []string{
			"LinkedIn Learning",
			"Industry-specific forums and communities",
			"Professional networking events",
			"Mentorship programs",
		},
	},
}

// CareerKey turns a raw title (possibly URL-escaped) into the lookup key.
func CareerKey(title string) string {
	if unescaped, err := url.PathUnescape(title); err == nil {
		title = unescaped
	}
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// Static answers from the built-in table. Unknown titles get the default template.
type Static struct{}

func NewStatic() *Static {
	return &Static{}
}

func (s *Static) Guide(_ context.Context, req ai.GuidanceRequest) (*ai.Guidance, error) {
	return Lookup(req), nil
}

// Lookup builds guidance for req from the built-in table. The requested title is
// echoed back even when the default template is used.
func Lookup(req ai.GuidanceRequest) *ai.Guidance {
	tpl, ok := templates[CareerKey(req.Title)]
	if !ok {
		tpl = templates[defaultKey]
	}

	title := req.Title
	if unescaped, err := url.PathUnescape(title); err == nil {
		title = unescaped
	}

	return &ai.Guidance{
		Title:        strings.TrimSpace(title),
		Match:        req.Match,
		Growth:       req.Growth,
		Overview:     tpl.overview,
		Skills:       append([]string(nil), tpl.skills...),
		LearningPath: append([]string(nil), tpl.learningPath...),
		Resources:    append([]string(nil), tpl.resources...),
	}
}
