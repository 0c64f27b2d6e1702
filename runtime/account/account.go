// Package account models the subset of NEAR's account and global-contract
// data that the preparation pipeline needs to read: the account contract
// binding and the identifiers used to block global-contract preparation.
package account

import "github.com/near/nearcore/runtime/common"

// An ID identifies an account. It is a plain string (NEAR account IDs are
// human-readable, dot-separated names), kept comparable for use as a map and
// set key.
type ID string

// Account is the subset of account state the pipeline reads: just enough to
// resolve the contract code hash for a FunctionCall action.
type Account struct {
	id       ID
	contract Contract
}

// NewAccount constructs an Account with the given contract binding.
func NewAccount(id ID, contract Contract) *Account {
	return &Account{id: id, contract: contract}
}

// ID returns the account identifier.
func (a *Account) ID() ID { return a.id }

// Contract returns the account's current contract binding.
func (a *Account) Contract() Contract { return a.contract }

// Contract is the account-contract-binding sum type. Implementations are
// unexported marker types so that no other package may introduce new
// variants, the same closed-set idiom the teacher uses for action options
// (see core/vm's CallOption).
type Contract interface {
	isAccountContract()
}

// NoContract means the account has no deployed code.
type NoContract struct{}

func (NoContract) isAccountContract() {}

// LocalContract means the account's code is deployed directly under its own
// code hash.
type LocalContract struct {
	CodeHash common.Hash
}

func (LocalContract) isAccountContract() {}

// GlobalContract means the account uses a global contract identified by code
// hash.
type GlobalContract struct {
	CodeHash common.Hash
}

func (GlobalContract) isAccountContract() {}

// GlobalByAccount means the account uses a global contract identified by the
// account that originally distributed it; the current code hash for that
// account must be looked up in the global-contract-code trie.
type GlobalByAccount struct {
	AccountID ID
}

func (GlobalByAccount) isAccountContract() {}

// GlobalContractIdentifier names a global contract, either by the code hash
// it was distributed under or by the account that distributed it. Both
// variants are plain comparable types, so a GlobalContractIdentifier may be
// used as a map or set key directly, as the blocker set (runtime/pipelining)
// requires; neither variant may grow a non-comparable field.
type GlobalContractIdentifier interface {
	isGlobalContractIdentifier()
}

// ByCodeHash identifies a global contract by its code hash.
type ByCodeHash common.Hash

func (ByCodeHash) isGlobalContractIdentifier() {}

// ByAccountID identifies a global contract by the account that distributed
// it.
type ByAccountID ID

func (ByAccountID) isGlobalContractIdentifier() {}
