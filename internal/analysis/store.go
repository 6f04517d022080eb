package analysis

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores for unknown analysis ids.
var ErrNotFound = errors.New("analysis not found")

// Store keeps analysis results addressed by their correlation id. Retention
// and eviction are up to the implementation.
type Store interface {
	Put(ctx context.Context, id string, result *Result) error
	Get(ctx context.Context, id string) (*Result, error)
}
