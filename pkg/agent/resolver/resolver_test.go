package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/connector-agent/pkg/connector"
)

type countingLister struct {
	refs  []connector.FileRef
	err   error
	calls int
	hints []string
}

func (l *countingLister) FindByName(_ context.Context, name, typeHint string) ([]connector.FileRef, error) {
	l.calls++
	l.hints = append(l.hints, typeHint)
	return l.refs, l.err
}

func TestResolveExplicitIDSkipsLookup(t *testing.T) {
	l := &countingLister{}
	r := New(l)

	res, err := r.Resolve(context.Background(), NameReference{DisplayName: "Budget", ExplicitID: "abc"}, GoogleSheetType)
	require.NoError(t, err)

	assert.Equal(t, Resolution{ID: "abc", Name: "File", Found: true}, res)
	assert.Zero(t, l.calls)
}

func TestResolveByName(t *testing.T) {
	l := &countingLister{refs: []connector.FileRef{{ID: "doc-1", Name: "Q3 Report"}, {ID: "doc-2", Name: "Q3 Report (copy)"}}}
	r := New(l)

	res, err := r.Resolve(context.Background(), NameReference{DisplayName: "Q3 Report"}, GoogleDocType)
	require.NoError(t, err)

	assert.Equal(t, Resolution{ID: "doc-1", Name: "Q3 Report", Found: true}, res)
	assert.Equal(t, []string{GoogleDocType}, l.hints)
}

func TestResolveMiss(t *testing.T) {
	r := New(&countingLister{})

	res, err := r.Resolve(context.Background(), NameReference{DisplayName: "Ghost"}, GoogleDocType)
	require.NoError(t, err)
	assert.Equal(t, Resolution{Name: "Ghost"}, res)

	res, err = r.Resolve(context.Background(), NameReference{}, GoogleDocType)
	require.NoError(t, err)
	assert.Equal(t, Resolution{}, res)
}

func TestResolveLookupError(t *testing.T) {
	r := New(&countingLister{err: connector.ErrNotAuthenticated})

	_, err := r.Resolve(context.Background(), NameReference{DisplayName: "Budget"}, GoogleSheetType)
	assert.True(t, errors.Is(err, connector.ErrNotAuthenticated))
}

func TestResolveCachesHitsOnly(t *testing.T) {
	cache := NewCache(16, time.Minute)
	l := &countingLister{}
	r := New(l, WithCache(cache), WithScope("google"))

	_, err := r.Resolve(context.Background(), NameReference{DisplayName: "Budget"}, GoogleSheetType)
	require.NoError(t, err)
	l.refs = []connector.FileRef{{ID: "sheet-1", Name: "Budget"}}

	for i := 0; i < 3; i++ {
		res, err := r.Resolve(context.Background(), NameReference{DisplayName: "budget"}, GoogleSheetType)
		require.NoError(t, err)
		assert.Equal(t, "sheet-1", res.ID)
	}
	assert.Equal(t, 2, l.calls)

	other := New(&countingLister{}, WithCache(cache), WithScope("microsoft"))
	res, err := other.Resolve(context.Background(), NameReference{DisplayName: "Budget"}, GoogleSheetType)
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestScope(t *testing.T) {
	a := Scope("microsoft", "token-a")
	assert.Equal(t, a, Scope("microsoft", "token-a"))
	assert.NotEqual(t, a, Scope("microsoft", "token-b"))
	assert.NotContains(t, a, "token-a")
}
