package guidance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-advisor/internal/ai"
)

func TestCareerKey(t *testing.T) {
	cases := map[string]string{
		"Software Engineer":     "software engineer",
		"software%20engineer":   "software engineer",
		"  Data   Scientist  ":  "data scientist",
		"Product%20Manager":     "product manager",
		"100%":                  "100%",
	}
	for in, want := range cases {
		assert.Equal(t, want, CareerKey(in), in)
	}
}

func TestStatic_KnownCareer(t *testing.T) {
	g, err := NewStatic().Guide(context.Background(), ai.GuidanceRequest{
		Title:  "Data%20Scientist",
		Match:  88,
		Growth: "Very High",
	})
	require.NoError(t, err)

	assert.Equal(t, "Data Scientist", g.Title)
	assert.Equal(t, 88.0, g.Match)
	assert.Equal(t, "Very High", g.Growth)
	assert.Contains(t, g.Overview, "Data science")
	assert.Len(t, g.Skills, 5)
	assert.Len(t, g.LearningPath, 5)
	assert.Len(t, g.Resources, 4)
}

func TestStatic_UnknownCareerUsesDefault(t *testing.T) {
	g := Lookup(ai.GuidanceRequest{Title: "Astronaut", Match: 10, Growth: "Low"})

	assert.Equal(t, "Astronaut", g.Title)
	assert.Equal(t, "This career path shows good potential based on your skills.", g.Overview)
	assert.Len(t, g.Skills, 5)
	assert.Len(t, g.LearningPath, 5)
	assert.Len(t, g.Resources, 4)
}

func TestLookup_ReturnsCopies(t *testing.T) {
	g := Lookup(ai.GuidanceRequest{Title: "Software Engineer"})
	g.Skills[0] = "changed"

	again := Lookup(ai.GuidanceRequest{Title: "Software Engineer"})
	assert.Equal(t, "Data Structures & Algorithms", again.Skills[0])
}
