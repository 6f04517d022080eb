package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/career-advisor/internal/ai"
	"github.com/spigell/career-advisor/internal/logger"
	"github.com/spigell/career-advisor/internal/utils"
)

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
	systemInstruction   = "You are a concise career advisor. Answer with JSON only."
)

//go:embed prompt.md
var promptTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

// Advisor asks Gemini for career guidance and falls back to another advisor on failure.
type Advisor struct {
	generator contentGenerator
	fallback  ai.Advisor
	logger    *zap.Logger
	maxLogLen int
}

func NewAdvisor(generator contentGenerator, fallback ai.Advisor, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		fallback:  fallback,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Guide(ctx context.Context, req ai.GuidanceRequest) (*ai.Guidance, error) {
	log := logger.WithCareer(a.logger, req.Title)

	guidance, err := a.generate(ctx, log, req)
	if err == nil {
		return guidance, nil
	}

	if a.fallback == nil || errors.Is(err, context.Canceled) {
		return nil, err
	}

	log.Warn("gemini guidance failed, using fallback", zap.Error(err))
	return a.fallback.Guide(ctx, req)
}

func (a *Advisor) generate(ctx context.Context, log *zap.Logger, req ai.GuidanceRequest) (*ai.Guidance, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("career title is required")
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	log.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	guidance, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	guidance.Title = req.Title
	guidance.Match = req.Match
	guidance.Growth = req.Growth
	return guidance, nil
}

func buildPrompt(req ai.GuidanceRequest) (string, error) {
	skills := req.UserSkills
	if skills == nil {
		skills = []string{}
	}

	payload, err := json.MarshalIndent(map[string]any{
		"title":       req.Title,
		"match":       req.Match,
		"growth":      req.Growth,
		"user_skills": skills,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal career payload: %w", err)
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Career request:\n{{CAREER_JSON}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{CAREER_JSON}}", string(payload)), nil
}

func parseResponse(raw string) (*ai.Guidance, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	guidance := &ai.Guidance{
		Overview:     coerceString(data["overview"]),
		Skills:       coerceStrings(data["skills"]),
		LearningPath: coerceStrings(firstPresent(data, "learning_path", "learningPath")),
		Resources:    coerceStrings(data["resources"]),
	}

	if guidance.Overview == "" || len(guidance.Skills) == 0 || len(guidance.LearningPath) == 0 {
		return nil, errors.New("gemini response is missing guidance fields")
	}
	if guidance.Resources == nil {
		guidance.Resources = []string{}
	}

	return guidance, nil
}

func firstPresent(data map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := data[key]; ok {
			return v
		}
	}
	return nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceStrings(v any) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, line := range strings.Split(val, "\n") {
			line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*"))
			if line != "" {
				out = append(out, line)
			}
		}
		return out
	default:
		return nil
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
