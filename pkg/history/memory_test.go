package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(0)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for i, q := range []string{"first", "second", "third"} {
		in := &Interaction{SessionKey: "s1", Query: q, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Save(ctx, in))
		assert.NotEmpty(t, in.ID)
	}
	require.NoError(t, repo.Save(ctx, &Interaction{SessionKey: "s2", Query: "other", CreatedAt: base}))

	got, err := repo.List(ctx, "s1", 2, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Query)
	assert.Equal(t, "second", got[1].Query)

	got, err = repo.List(ctx, "s1", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := repo.Count(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, repo.Delete(ctx, "s1"))
	assert.ErrorIs(t, repo.Delete(ctx, "s1"), ErrNoHistory)

	n, err = repo.Count(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryRepositoryCapsPerSession(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(2)
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, &Interaction{SessionKey: "s", CreatedAt: base.Add(time.Duration(i) * time.Second)}))
	}

	n, err := repo.Count(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
