package state

import (
	"sync"

	"github.com/near/nearcore/runtime/account"
	"github.com/near/nearcore/runtime/common"
)

// MinimalSnapshot is an in-memory [Snapshot] suitable for tests, named after
// the teacher's libevm/ethtest.MinimalBackend: the smallest implementation
// that satisfies the interface, with no trie, no disk and no flat-storage
// layering.
type MinimalSnapshot struct {
	mu         sync.RWMutex
	accounts   map[account.ID]*account.Account
	globalCode map[account.ID]common.Hash
}

// NewMinimalSnapshot returns an empty MinimalSnapshot.
func NewMinimalSnapshot() *MinimalSnapshot {
	return &MinimalSnapshot{
		accounts:   make(map[account.ID]*account.Account),
		globalCode: make(map[account.ID]common.Hash),
	}
}

// SetAccount installs acct as the binding for id, overwriting any existing
// binding. Test setup only; not part of [Snapshot].
func (s *MinimalSnapshot) SetAccount(id account.ID, acct *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[id] = acct
}

// SetGlobalContractCode records the code hash currently distributed by the
// account id. Test setup only; not part of [Snapshot].
func (s *MinimalSnapshot) SetGlobalContractCode(id account.ID, hash common.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalCode[id] = hash
}

// GetAccount implements [Snapshot].
func (s *MinimalSnapshot) GetAccount(id account.ID, _ AccessOptions) (*account.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[id]
	return acct, ok
}

// GetGlobalContractCodeHash implements [Snapshot].
func (s *MinimalSnapshot) GetGlobalContractCodeHash(id account.ID, _ KeyLookupMode, _ AccessOptions) (common.Hash, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.globalCode[id]
	return h, ok
}

var _ Snapshot = (*MinimalSnapshot)(nil)
