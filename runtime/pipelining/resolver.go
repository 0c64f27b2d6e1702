package pipelining

import (
	"github.com/near/nearcore/runtime/account"
	"github.com/near/nearcore/runtime/common"
	"github.com/near/nearcore/runtime/state"
)

// resolution is the outcome of resolving a FunctionCall action's code hash.
type resolution struct {
	codeHash common.Hash
	// ok is false for every routine reason preparation cannot proceed: no
	// deployed contract, a blocked global-contract identifier, or no
	// global-contract code entry for the distributing account. (A missing
	// account never reaches the resolver; Submit skips it before resolving.)
	// None of these are errors; they
	// simply mean this action contributes no preparation work.
	ok bool
}

// resolveCodeHash determines the code hash backing acct's contract binding,
// consulting blockedGlobals and snapshot as needed for the Global and
// GlobalByAccount bindings. It implements the same resolution the original
// inlines into its submit loop, kept here as its own step so [Pipeline.Submit]
// reads as a sequence of named decisions rather than one long match arm.
func resolveCodeHash(acct *account.Account, snap state.Snapshot, blockedGlobals *blockerSet[account.GlobalContractIdentifier]) resolution {
	switch c := acct.Contract().(type) {
	case account.NoContract:
		return resolution{}

	case account.LocalContract:
		return resolution{codeHash: c.CodeHash, ok: true}

	case account.GlobalContract:
		if blockedGlobals.blocked(account.ByCodeHash(c.CodeHash)) {
			return resolution{}
		}
		return resolution{codeHash: c.CodeHash, ok: true}

	case account.GlobalByAccount:
		if blockedGlobals.blocked(account.ByAccountID(c.AccountID)) {
			return resolution{}
		}
		hash, ok := snap.GetGlobalContractCodeHash(c.AccountID, state.MemOrFlatOrTrie, state.NoSideEffects)
		if !ok {
			return resolution{}
		}
		return resolution{codeHash: hash, ok: true}

	default:
		return resolution{}
	}
}
