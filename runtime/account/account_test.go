package account

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/near/nearcore/runtime/common"
)

func TestAccountAccessors(t *testing.T) {
	hash := common.HashFromBytes([]byte("code"))
	a := NewAccount("alice.near", LocalContract{CodeHash: hash})

	require.Equal(t, ID("alice.near"), a.ID())
	require.Equal(t, LocalContract{CodeHash: hash}, a.Contract())
}

func TestGlobalContractIdentifierVariantsAreComparable(t *testing.T) {
	hash := common.HashFromBytes([]byte("global code"))

	var a, b GlobalContractIdentifier = ByCodeHash(hash), ByCodeHash(hash)
	require.Equal(t, a, b)

	var c, d GlobalContractIdentifier = ByAccountID("registry.near"), ByAccountID("registry.near")
	require.Equal(t, c, d)

	require.NotEqual(t, a, c)
}

func TestContractVariantsAreDistinctTypes(t *testing.T) {
	var contracts = []Contract{
		NoContract{},
		LocalContract{},
		GlobalContract{},
		GlobalByAccount{},
	}
	seen := make(map[Contract]bool)
	for _, c := range contracts {
		require.False(t, seen[c], "duplicate zero-value collision for %T", c)
		seen[c] = true
	}
}
