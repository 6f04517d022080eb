package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/career-advisor/internal/ai"
	"github.com/spigell/career-advisor/internal/analysis"
	"github.com/spigell/career-advisor/internal/document"
	"github.com/spigell/career-advisor/internal/extract"
	"github.com/spigell/career-advisor/internal/logger"
)

const (
	PromptExit          = "exit"
	guidanceConcurrency = 3
)

type analyzeOutput struct {
	ID       string           `json:"id"`
	Profile  *extract.Profile `json:"profile,omitempty"`
	Result   *analysis.Result `json:"result"`
	Guidance []*ai.Guidance   `json:"guidance,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score declared skills against the job catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringSliceP("technical", "t", nil, "technical skills (repeatable or comma-separated)")
	analyzeCmd.Flags().StringSliceP("soft", "s", nil, "soft skills (repeatable or comma-separated)")
	analyzeCmd.Flags().StringP("resume", "r", "", "resume document (local path or s3://bucket/key) to extract the profile from")
	analyzeCmd.Flags().BoolP("guidance", "g", false, "fetch guidance for every recommended career")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "choose a recommended career and show its guidance")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()
	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	c, err := newCatalog(config)
	if err != nil {
		logger.Fatal("building the job catalog", zap.Error(err))
	}

	store, closeStore, err := newStore(ctx, config.Store, logger)
	if err != nil {
		logger.Fatal("creating a result store", zap.Error(err))
	}
	defer closeStore()

	technical, _ := cmd.Flags().GetStringSlice("technical")
	soft, _ := cmd.Flags().GetStringSlice("soft")
	resumePath, _ := cmd.Flags().GetString("resume")
	withGuidance, _ := cmd.Flags().GetBool("guidance")
	interactive, _ := cmd.Flags().GetBool("interactive")

	output := &analyzeOutput{}

	if resumePath != "" {
		profile := readProfile(ctx, config, resumePath, logger)
		output.Profile = &profile
	}

	pipeline := analysis.New(c, store, logger)
	declared := analysis.UserSkills{Technical: technical, Soft: soft}

	output.ID, output.Result, err = pipeline.Run(ctx, declared)
	if err != nil {
		logger.Fatal("running the analysis", zap.Error(err))
	}

	var advisor ai.Advisor
	if withGuidance || interactive {
		advisor, err = newAdvisor(ctx, config.Guidance, logger)
		if err != nil {
			logger.Fatal("creating a guidance advisor", zap.Error(err))
		}
	}

	if withGuidance {
		output.Guidance, err = guideAll(ctx, advisor, output.Result)
		if err != nil {
			logger.Fatal("generating guidance", zap.Error(err))
		}
	}

	if err := printJSON(output); err != nil {
		logger.Fatal("printing the result", zap.Error(err))
	}

	if interactive {
		if err := interactiveGuidance(ctx, advisor, output.Result, logger); err != nil {
			logger.Fatal("interactive mode", zap.Error(err))
		}
	}
}

func readProfile(ctx context.Context, config *Config, source string, log *zap.Logger) extract.Profile {
	fetcher, err := newFetcher(ctx, config.S3)
	if err != nil {
		log.Warn("s3 is not available", zap.Error(err))
	}

	text, err := document.Load(ctx, source, fetcher)
	if err != nil {
		log.Warn("could not extract text from the resume, fill in your details manually",
			zap.String("resume", source),
			zap.Error(err),
		)
		return extract.Profile{}
	}

	return extract.Extract(text)
}

// guideAll requests guidance for every recommended career, keeping the result order.
func guideAll(ctx context.Context, advisor ai.Advisor, result *analysis.Result) ([]*ai.Guidance, error) {
	guidance := make([]*ai.Guidance, len(result.RecommendedCareers))
	skills := result.UserSkills.All()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(guidanceConcurrency)

	for i, career := range result.RecommendedCareers {
		g.Go(func() error {
			out, err := advisor.Guide(ctx, guidanceRequest(career, skills))
			if err != nil {
				return fmt.Errorf("guidance for %q: %w", career.Title, err)
			}
			guidance[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return guidance, nil
}

func guidanceRequest(career analysis.Career, skills []string) ai.GuidanceRequest {
	return ai.GuidanceRequest{
		Title:      career.Title,
		Match:      career.Match,
		Growth:     career.Growth,
		UserSkills: skills,
	}
}

func interactiveGuidance(ctx context.Context, advisor ai.Advisor, result *analysis.Result, log *zap.Logger) error {
	if len(result.RecommendedCareers) == 0 {
		log.Info("no careers to choose from")
		return nil
	}

	items := make([]string, 0, len(result.RecommendedCareers)+1)
	byLabel := make(map[string]analysis.Career, len(result.RecommendedCareers))
	for _, career := range result.RecommendedCareers {
		label := fmt.Sprintf("%s (%.1f%% match, %s growth)", career.Title, career.Match, career.Growth)
		items = append(items, label)
		byLabel[label] = career
	}
	items = append(items, PromptExit)

	skills := result.UserSkills.All()

	for {
		prompt := promptui.Select{
			Label: "Choose a career and press ENTER",
			Items: items,
			Size:  len(items),
		}

		_, selected, err := prompt.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if selected == PromptExit {
			return nil
		}

		career := byLabel[selected]
		guidance, err := advisor.Guide(ctx, guidanceRequest(career, skills))
		if err != nil {
			logger.WithCareer(log, career.Title).Warn("guidance failed", zap.Error(err))
			continue
		}

		printGuidance(guidance)
	}
}

func printGuidance(g *ai.Guidance) {
	separator := strings.Repeat("=", 50)
	fmt.Println(separator)
	fmt.Printf("CAREER: %s (%.1f%% Match, %s Growth)\n", g.Title, g.Match, g.Growth)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Overview: %s\n\n", g.Overview)

	printList("Skills to build:", g.Skills)
	printList("What to learn:", g.LearningPath)
	printList("How to learn (Resources):", g.Resources)
	fmt.Println(separator)
}

func printList(title string, items []string) {
	fmt.Println(title)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
	fmt.Println()
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
