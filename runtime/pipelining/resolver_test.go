package pipelining

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/near/nearcore/runtime/account"
	"github.com/near/nearcore/runtime/common"
	"github.com/near/nearcore/runtime/state"
)

func TestResolveCodeHashNoContract(t *testing.T) {
	acct := account.NewAccount("alice.near", account.NoContract{})
	res := resolveCodeHash(acct, state.NewMinimalSnapshot(), newBlockerSet[account.GlobalContractIdentifier]())
	require.False(t, res.ok)
}

func TestResolveCodeHashLocalContract(t *testing.T) {
	hash := common.HashFromBytes([]byte("code"))
	acct := account.NewAccount("alice.near", account.LocalContract{CodeHash: hash})
	res := resolveCodeHash(acct, state.NewMinimalSnapshot(), newBlockerSet[account.GlobalContractIdentifier]())
	require.True(t, res.ok)
	require.Equal(t, hash, res.codeHash)
}

func TestResolveCodeHashBlockedGlobalContract(t *testing.T) {
	hash := common.HashFromBytes([]byte("code"))
	acct := account.NewAccount("alice.near", account.GlobalContract{CodeHash: hash})
	blocked := newBlockerSet[account.GlobalContractIdentifier]()
	blocked.block(account.ByCodeHash(hash))

	res := resolveCodeHash(acct, state.NewMinimalSnapshot(), blocked)
	require.False(t, res.ok)
}

func TestResolveCodeHashGlobalByAccountLooksUpCurrentHash(t *testing.T) {
	hash := common.HashFromBytes([]byte("global code"))
	snap := state.NewMinimalSnapshot()
	snap.SetGlobalContractCode("registry.near", hash)

	acct := account.NewAccount("alice.near", account.GlobalByAccount{AccountID: "registry.near"})
	res := resolveCodeHash(acct, snap, newBlockerSet[account.GlobalContractIdentifier]())
	require.True(t, res.ok)
	require.Equal(t, hash, res.codeHash)
}

func TestResolveCodeHashGlobalByAccountMissingCodeIsRoutine(t *testing.T) {
	acct := account.NewAccount("alice.near", account.GlobalByAccount{AccountID: "unregistered.near"})
	res := resolveCodeHash(acct, state.NewMinimalSnapshot(), newBlockerSet[account.GlobalContractIdentifier]())
	require.False(t, res.ok)
}
