// Package analysis runs the skill matching pipeline over a job catalog and
// hands the result to a store under a fresh correlation id.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/career-advisor/internal/catalog"
	"github.com/spigell/career-advisor/internal/logger"
	"github.com/spigell/career-advisor/internal/matching"
)

const (
	topCareers          = 5
	topGapJobs          = 3
	gapSkillsShown      = 3
	highImportanceBelow = 70.0
	defaultSuitability  = 50
)

// Pipeline is stateless apart from its read-only catalog and the store it
// writes to, so one Pipeline may serve concurrent runs.
type Pipeline struct {
	catalog *catalog.Catalog
	store   Store
	logger  *zap.Logger
	newID   func() string
}

// New creates a pipeline. A nil catalog means the built-in one.
func New(c *catalog.Catalog, store Store, log *zap.Logger) *Pipeline {
	if c == nil {
		c = catalog.Default()
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Pipeline{
		catalog: c,
		store:   store,
		logger:  log,
		newID:   uuid.NewString,
	}
}

// Catalog returns the catalog the pipeline scores against.
func (p *Pipeline) Catalog() *catalog.Catalog {
	return p.catalog
}

// Analyze computes the result for the declared skills without storing it.
func (p *Pipeline) Analyze(declared UserSkills) *Result {
	candidate := p.catalog.Normalizer().Set(declared.All()...)
	jobs := p.catalog.Jobs()

	ranked := matching.Rank(matching.ScoreAll(candidate, jobs))

	p.logger.Debug("scored catalog",
		zap.Int("jobs", len(jobs)),
		zap.Int("declared_skills", candidate.Declared()),
		zap.Int("canonical_skills", candidate.Len()),
	)

	result := &Result{
		RecommendedCareers:  make([]Career, 0, topCareers),
		SkillGaps:           make([]SkillGap, 0, topGapJobs),
		TrendingSuitability: defaultSuitability,
		UserSkills:          copySkills(declared),
	}

	for _, e := range matching.Top(ranked, topCareers) {
		result.RecommendedCareers = append(result.RecommendedCareers, Career{
			Title:  e.Job,
			Match:  matching.Round1(e.Score),
			Growth: p.catalog.Growth(e.Job),
		})
	}

	top := matching.Top(ranked, topGapJobs)
	gaps := make([]matching.Gap, 0, len(top))
	for _, e := range top {
		job, _ := p.catalog.Job(e.Job)
		gap := matching.AnalyzeGap(candidate, job)
		gaps = append(gaps, gap)

		if len(gap.Missing) == 0 {
			continue
		}

		importance := ImportanceMedium
		if e.Score < highImportanceBelow {
			importance = ImportanceHigh
		}

		shown := gap.Missing
		if len(shown) > gapSkillsShown {
			shown = shown[:gapSkillsShown]
		}

		result.SkillGaps = append(result.SkillGaps, SkillGap{
			Job:          e.Job,
			Skill:        strings.Join(shown, ", "),
			Importance:   importance,
			CurrentLevel: LevelNone,
		})
	}

	result.RecommendedCourses = matching.RecommendCourses(gaps, p.catalog)

	// Ties round to even.
	if len(ranked) > 0 {
		result.TrendingSuitability = int(math.RoundToEven(ranked[0].Score))
	}

	p.logger.Debug("derived recommendations",
		zap.Int("careers", len(result.RecommendedCareers)),
		zap.Int("skill_gaps", len(result.SkillGaps)),
		zap.Int("courses", len(result.RecommendedCourses)),
		zap.Int("trending_suitability", result.TrendingSuitability),
	)

	return result
}

// Run analyzes the declared skills, stores the result under a new correlation
// id and returns that id.
func (p *Pipeline) Run(ctx context.Context, declared UserSkills) (string, *Result, error) {
	if p.store == nil {
		return "", nil, errors.New("analysis store is not configured")
	}

	result := p.Analyze(declared)
	id := p.newID()

	if err := p.store.Put(ctx, id, result); err != nil {
		return "", nil, fmt.Errorf("storing analysis %s: %w", id, err)
	}

	logger.WithAnalysisID(p.logger, id).Info("analysis stored",
		zap.Int("careers", len(result.RecommendedCareers)),
		zap.Int("trending_suitability", result.TrendingSuitability),
	)

	return id, result, nil
}

func copySkills(u UserSkills) UserSkills {
	return UserSkills{
		Technical: append([]string{}, u.Technical...),
		Soft:      append([]string{}, u.Soft...),
	}
}
