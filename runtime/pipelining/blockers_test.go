package pipelining

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/near/nearcore/runtime/account"
)

func TestBlockerSetInsertIsMonotonic(t *testing.T) {
	s := newBlockerSet[account.ID]()

	require.True(t, s.block("alice.near"))
	require.False(t, s.blocked("bob.near"))
	require.True(t, s.blocked("alice.near"))

	// Re-blocking an already-blocked item reports it was not newly added.
	require.False(t, s.block("alice.near"))
}
