package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/career-advisor/internal/analysis"
	"github.com/spigell/career-advisor/internal/guidance"
	"github.com/spigell/career-advisor/internal/store/memory"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(out.String(), app+" version: ") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestNewStore(t *testing.T) {
	store, closeStore, err := newStore(context.Background(), &StoreConfig{MaxEntries: 2}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeStore()

	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	if _, _, err := newStore(context.Background(), &StoreConfig{Driver: "sqlite"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestNewAdvisor(t *testing.T) {
	advisor, err := newAdvisor(context.Background(), &GuidanceConfig{Provider: "static"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := advisor.(*guidance.Static); !ok {
		t.Fatalf("expected static advisor, got %T", advisor)
	}

	if _, err := newAdvisor(context.Background(), &GuidanceConfig{Provider: "openai"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unsupported provider")
	}

	t.Setenv("GEMINI_API_KEY", "")
	if _, err := newAdvisor(context.Background(), &GuidanceConfig{Provider: "gemini"}, zap.NewNop()); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestNewCatalog(t *testing.T) {
	c, err := newCatalog(&Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 15 {
		t.Fatalf("expected default catalog, got %d jobs", c.Len())
	}

	c, err = newCatalog(&Config{Catalog: map[string]any{
		"jobs": []any{
			map[string]any{"title": "Go Developer", "growth": "High", "required-skills": []any{"go", "sql"}},
		},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 1 || c.Growth("Go Developer") != "High" {
		t.Fatalf("unexpected catalog: %+v", c.Jobs())
	}
}

func TestGuideAllKeepsOrder(t *testing.T) {
	result := analysis.New(nil, nil, nil).Analyze(analysis.UserSkills{Technical: []string{"python", "sql"}})

	out, err := guideAll(context.Background(), guidance.NewStatic(), result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out) != len(result.RecommendedCareers) {
		t.Fatalf("expected %d guidance entries, got %d", len(result.RecommendedCareers), len(out))
	}

	for i, career := range result.RecommendedCareers {
		if out[i].Title != career.Title || out[i].Match != career.Match {
			t.Fatalf("guidance %d does not match career %+v: %+v", i, career, out[i])
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "b", "c"); got != "b" {
		t.Fatalf("unexpected value: %q", got)
	}
	if got := firstNonEmpty(); got != "" {
		t.Fatalf("unexpected value: %q", got)
	}
}
