package ai

import (
	"context"
)

// GuidanceRequest describes the career a user wants advice on.
type GuidanceRequest struct {
	Title      string
	Match      float64
	Growth     string
	UserSkills []string
}

// Guidance is the structured advice returned for a career.
type Guidance struct {
	Title        string   `json:"title"`
	Match        float64  `json:"match"`
	Growth       string   `json:"growth"`
	Overview     string   `json:"overview"`
	Skills       []string `json:"skills"`
	LearningPath []string `json:"learning_path"`
	Resources    []string `json:"resources"`
}

type Advisor interface {
	Guide(ctx context.Context, req GuidanceRequest) (*Guidance, error)
}
