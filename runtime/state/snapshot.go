// Package state models the minimal read-only view of committed chain state
// that the pipeline needs: account lookups and global-contract-code lookups,
// both of which must be side-effect free. This mirrors NEAR's
// near_store.TrieUpdate / get_pure as seen from the pipeline, generalized
// into a small interface so tests can supply an in-memory double the way the
// teacher's libevm/ethtest package supplies minimal EVM backends for tests.
package state

import (
	"github.com/near/nearcore/runtime/account"
	"github.com/near/nearcore/runtime/common"
)

// AccessOptions controls whether a read may have side effects (gas charges,
// dirty-set updates). The pipeline must always pass NoSideEffects: it is
// speculating ahead of execution and must not charge gas or mark state dirty
// for work that may never be consumed.
type AccessOptions int

const (
	// SideEffects permits the usual accounting side effects of a state read.
	SideEffects AccessOptions = iota
	// NoSideEffects performs the read without gas charges or dirty-set
	// updates, as required by every read the pipeline performs.
	NoSideEffects
)

// KeyLookupMode selects which layer of the storage stack to consult.
// MemOrFlatOrTrie is the only mode the pipeline uses, mirroring the original.
type KeyLookupMode int

const (
	// MemOrFlatOrTrie checks the in-memory overlay, then the flat-storage
	// layer, then falls back to the trie.
	MemOrFlatOrTrie KeyLookupMode = iota
)

// Snapshot is a read-only view of state committed as of the start of the
// current chunk. Implementations MUST honor [NoSideEffects].
type Snapshot interface {
	// GetAccount returns the account bound to id, or ok=false if no such
	// account exists. A missing account is a routine occurrence (the account
	// may be about to be created by an earlier receipt in the chunk) and must
	// never be treated as an error by callers.
	GetAccount(id account.ID, opts AccessOptions) (acct *account.Account, ok bool)

	// GetGlobalContractCodeHash resolves the code hash currently bound to the
	// global contract distributed by id, or ok=false if it cannot be
	// resolved (missing trie entry or I/O failure); callers must treat that
	// as a routine skip, never an error.
	GetGlobalContractCodeHash(id account.ID, mode KeyLookupMode, opts AccessOptions) (hash common.Hash, ok bool)
}
