package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-advisor/internal/analysis"
)

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	result := &analysis.Result{TrendingSuitability: 42}
	require.NoError(t, s.Put(ctx, "a", result))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, result, got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, analysis.ErrNotFound)
}

func TestEviction(t *testing.T) {
	ctx := context.Background()
	s := New(2)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Put(ctx, id, &analysis.Result{}))
	}

	assert.Equal(t, 2, s.Len())
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, analysis.ErrNotFound)
	_, err = s.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestOverwriteDoesNotGrow(t *testing.T) {
	ctx := context.Background()
	s := New(2)

	require.NoError(t, s.Put(ctx, "a", &analysis.Result{TrendingSuitability: 1}))
	require.NoError(t, s.Put(ctx, "a", &analysis.Result{TrendingSuitability: 2}))
	require.NoError(t, s.Put(ctx, "b", &analysis.Result{}))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TrendingSuitability)
	assert.Equal(t, 2, s.Len())
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New(0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("id-%d", i)
			_ = s.Put(ctx, id, &analysis.Result{})
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
