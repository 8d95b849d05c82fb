package testutil

import (
	"testing"

	"github.com/lexprep/lexprep/internal/sessionstore/sqlite"
	"github.com/stretchr/testify/require"
)

// NewTestStore creates an in-memory session store with migrations applied.
func NewTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
