package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-advisor/internal/catalog"
	"github.com/spigell/career-advisor/internal/logger"
)

type stubStore struct {
	results map[string]*Result
	err     error
}

func newStubStore() *stubStore {
	return &stubStore{results: make(map[string]*Result)}
}

func (s *stubStore) Put(_ context.Context, id string, r *Result) error {
	if s.err != nil {
		return s.err
	}
	s.results[id] = r
	return nil
}

func (s *stubStore) Get(_ context.Context, id string) (*Result, error) {
	r, ok := s.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func webOnlyCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Job{{
		Title:          "Web Developer",
		RequiredSkills: []string{"javascript", "html", "css", "web development", "api", "database"},
	}}, catalog.DefaultCourses(), nil)
	require.NoError(t, err)
	return c
}

func TestAnalyze_WebDeveloperScenario(t *testing.T) {
	p := New(webOnlyCatalog(t), nil, nil)

	result := p.Analyze(UserSkills{Technical: []string{"js", "html", "css"}})

	require.Len(t, result.RecommendedCareers, 1)
	assert.Equal(t, Career{Title: "Web Developer", Match: 51.5, Growth: "Medium"}, result.RecommendedCareers[0])

	require.Len(t, result.SkillGaps, 1)
	assert.Equal(t, SkillGap{
		Job:          "Web Developer",
		Skill:        "web development, api, database",
		Importance:   ImportanceHigh,
		CurrentLevel: LevelNone,
	}, result.SkillGaps[0])

	assert.Equal(t, 52, result.TrendingSuitability)
	assert.Empty(t, result.RecommendedCourses)
	assert.Equal(t, []string{"js", "html", "css"}, result.UserSkills.Technical)
}

func TestAnalyze_ZeroSkillsDefaultCatalog(t *testing.T) {
	p := New(nil, nil, nil)
	jobs := p.Catalog().Jobs()

	result := p.Analyze(UserSkills{})

	require.Len(t, result.RecommendedCareers, 5)
	for i, career := range result.RecommendedCareers {
		assert.Equal(t, jobs[i].Title, career.Title)
		assert.Equal(t, 0.0, career.Match)
	}

	require.Len(t, result.SkillGaps, 3)
	assert.Equal(t, "cloud computing, devops, networking", result.SkillGaps[0].Skill)
	assert.Equal(t, "javascript, html, css", result.SkillGaps[1].Skill)
	assert.Equal(t, "networking, linux, security", result.SkillGaps[2].Skill)
	for _, gap := range result.SkillGaps {
		assert.Equal(t, ImportanceHigh, gap.Importance)
		assert.Equal(t, LevelNone, gap.CurrentLevel)
	}

	titles := make([]string, 0, len(result.RecommendedCourses))
	for _, c := range result.RecommendedCourses {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"AWS Cloud Practitioner", "Modern JavaScript Development"}, titles)

	assert.Equal(t, 0, result.TrendingSuitability)
}

func TestAnalyze_StrongCandidate(t *testing.T) {
	p := New(nil, nil, nil)

	result := p.Analyze(UserSkills{
		Technical: []string{"ML", "Python", "data analysis", "statistics", "TensorFlow", "PyTorch"},
		Soft:      []string{"communication"},
	})

	require.NotEmpty(t, result.RecommendedCareers)
	// AI Engineer and Data Scientist both reach 100 after the bonus; catalog order breaks the tie.
	assert.Equal(t, Career{Title: "AI Engineer", Match: 100, Growth: "Very High"}, result.RecommendedCareers[0])
	assert.Equal(t, Career{Title: "Data Scientist", Match: 100, Growth: "Very High"}, result.RecommendedCareers[1])
	assert.Equal(t, 100, result.TrendingSuitability)

	for _, gap := range result.SkillGaps {
		assert.NotEqual(t, "AI Engineer", gap.Job, "jobs without missing skills have no gap entry")
		assert.NotEqual(t, "Data Scientist", gap.Job)
	}
	require.Len(t, result.SkillGaps, 1)
	assert.Equal(t, "Data Analyst", result.SkillGaps[0].Job)
	assert.Equal(t, "sql, data visualization", result.SkillGaps[0].Skill)
	assert.Equal(t, ImportanceHigh, result.SkillGaps[0].Importance)

	seen := map[string]bool{}
	for _, c := range result.RecommendedCourses {
		assert.False(t, seen[c.Title], "duplicate course %s", c.Title)
		seen[c.Title] = true
	}
	assert.LessOrEqual(t, len(result.RecommendedCourses), 5)
}

func TestAnalyze_ImportanceThreshold(t *testing.T) {
	result := New(nil, nil, nil).Analyze(UserSkills{
		Technical: []string{"data analysis", "machine learning", "python"},
	})

	require.Len(t, result.SkillGaps, 3)
	assert.Equal(t, SkillGap{Job: "Data Scientist", Skill: "statistics", Importance: ImportanceMedium, CurrentLevel: LevelNone}, result.SkillGaps[0])
	assert.Equal(t, SkillGap{Job: "AI Engineer", Skill: "tensorflow, pytorch", Importance: ImportanceHigh, CurrentLevel: LevelNone}, result.SkillGaps[1])
	assert.Equal(t, "Data Analyst", result.SkillGaps[2].Job)

	assert.Equal(t, 76.5, result.RecommendedCareers[0].Match)
	// 76.5 rounds half to even.
	assert.Equal(t, 76, result.TrendingSuitability)
}

func TestAnalyze_EmptyCatalog(t *testing.T) {
	empty, err := catalog.New(nil, nil, nil)
	require.NoError(t, err)

	result := New(empty, nil, nil).Analyze(UserSkills{Technical: []string{"go"}})

	assert.Empty(t, result.RecommendedCareers)
	assert.Empty(t, result.SkillGaps)
	assert.Empty(t, result.RecommendedCourses)
	assert.Equal(t, 50, result.TrendingSuitability)
}

func TestAnalyze_DoesNotAliasInput(t *testing.T) {
	declared := UserSkills{Technical: []string{"js"}}
	result := New(nil, nil, nil).Analyze(declared)

	declared.Technical[0] = "changed"
	assert.Equal(t, "js", result.UserSkills.Technical[0])
}

func TestRun_StoresUnderFreshID(t *testing.T) {
	store := newStubStore()
	core, observed := observer.New(zapcore.InfoLevel)
	p := New(nil, store, zap.New(core))

	id1, r1, err := p.Run(context.Background(), UserSkills{Technical: []string{"python"}})
	require.NoError(t, err)
	id2, _, err := p.Run(context.Background(), UserSkills{Technical: []string{"python"}})
	require.NoError(t, err)

	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)

	stored, err := store.Get(context.Background(), id1)
	require.NoError(t, err)
	assert.Same(t, r1, stored)

	entries := observed.FilterMessage("analysis stored").All()
	require.Len(t, entries, 2)
	assert.Equal(t, id1, entries[0].ContextMap()[logger.FieldAnalysisID])
}

func TestRun_StoreFailure(t *testing.T) {
	store := newStubStore()
	store.err = errors.New("boom")

	_, _, err := New(nil, store, nil).Run(context.Background(), UserSkills{})

	require.Error(t, err)
	assert.ErrorIs(t, err, store.err)
}

func TestRun_WithoutStore(t *testing.T) {
	_, _, err := New(nil, nil, nil).Run(context.Background(), UserSkills{})
	assert.ErrorContains(t, err, "store is not configured")
}

func TestUserSkillsAll(t *testing.T) {
	u := UserSkills{Technical: []string{"go"}, Soft: []string{"leadership"}}
	assert.Equal(t, []string{"go", "leadership"}, u.All())
	assert.Empty(t, UserSkills{}.All())
}
