package receipt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/near/nearcore/runtime/account"
	"github.com/near/nearcore/runtime/common"
)

func TestActionIndexing(t *testing.T) {
	r := New(common.Hash{1}, "bob.near", Actions{List: []Action{
		FunctionCall{MethodName: "transfer", Gas: 1_000},
		DeployContract{},
	}})

	require.Equal(t, FunctionCall{MethodName: "transfer", Gas: 1_000}, r.Action(0))
	require.Equal(t, DeployContract{}, r.Action(1))
}

func TestActionPanicsOnNonActionReceipt(t *testing.T) {
	r := New(common.Hash{1}, "bob.near", Opaque{})
	require.Panics(t, func() { r.Action(0) })
}

func TestActionPanicsOnOutOfRangeIndex(t *testing.T) {
	r := New(common.Hash{1}, "bob.near", Actions{List: []Action{FunctionCall{}}})
	require.Panics(t, func() { r.Action(1) })
	require.Panics(t, func() { r.Action(-1) })
}

func TestGlobalContractDistributionBody(t *testing.T) {
	id := account.ByAccountID("registry.near")
	r := New(common.Hash{2}, "registry.near", GlobalContractDistribution{ID: id})

	body, ok := r.Body().(GlobalContractDistribution)
	require.True(t, ok)
	require.Equal(t, account.GlobalContractIdentifier(id), body.ID)
}
