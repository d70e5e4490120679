package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared", maxEntries)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "echo hi", 0))
	require.NoError(t, s.Append(ctx, "false", 1))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "false", entries[0].Line)
	assert.Equal(t, 1, entries[0].Status)
	assert.Equal(t, "echo hi", entries[1].Line)
}

func TestAppendTrimsPastMaxEntries(t *testing.T) {
	s := openTestStore(t, 2)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "one", 0))
	require.NoError(t, s.Append(ctx, "two", 0))
	require.NoError(t, s.Append(ctx, "three", 0))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "three", entries[0].Line)
	assert.Equal(t, "two", entries[1].Line)
}

func TestSearchMatchesSubstring(t *testing.T) {
	s := openTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "cd /tmp", 0))
	require.NoError(t, s.Append(ctx, "echo hi", 0))

	entries, err := s.Search(ctx, "tmp")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cd /tmp", entries[0].Line)
}
