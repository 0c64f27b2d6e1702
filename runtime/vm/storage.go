package vm

import (
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/near/nearcore/runtime/common"
)

// ContractStorage resolves the raw code bytes backing a code hash. This
// sits below [ContractCache]: a cache miss falls through to storage, which
// may be backed by the trie, by a dedicated code database, or (in tests) by
// memory.
type ContractStorage interface {
	// GetCode returns the code stored under hash, or [ErrCodeNotFound].
	GetCode(hash common.Hash) ([]byte, error)
}

// MemoryContractStorage is an in-memory [ContractStorage] for tests.
type MemoryContractStorage struct {
	mu   sync.RWMutex
	code map[common.Hash][]byte
}

// NewMemoryContractStorage returns an empty MemoryContractStorage.
func NewMemoryContractStorage() *MemoryContractStorage {
	return &MemoryContractStorage{code: make(map[common.Hash][]byte)}
}

// SetCode installs code under hash. Test setup only.
func (m *MemoryContractStorage) SetCode(hash common.Hash, code []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.code[hash] = code
}

// GetCode implements [ContractStorage].
func (m *MemoryContractStorage) GetCode(hash common.Hash) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.code[hash]
	if !ok {
		return nil, ErrCodeNotFound
	}
	return code, nil
}

var _ ContractStorage = (*MemoryContractStorage)(nil)

// PebbleContractStorage is a [ContractStorage] backed by a pebble key-value
// store, the same embedded store the teacher's chain database layer uses for
// on-disk state. Deployed contract code is content-addressed and immutable,
// which makes it a natural fit for a plain key/value table keyed by hash,
// independent of whatever database backs account and trie state.
type PebbleContractStorage struct {
	db *pebble.DB
}

// NewPebbleContractStorage wraps an already-open pebble database. The
// caller owns the database's lifetime.
func NewPebbleContractStorage(db *pebble.DB) *PebbleContractStorage {
	return &PebbleContractStorage{db: db}
}

// PutCode writes code under hash.
func (p *PebbleContractStorage) PutCode(hash common.Hash, code []byte) error {
	return p.db.Set(hash[:], code, pebble.NoSync)
}

// GetCode implements [ContractStorage].
func (p *PebbleContractStorage) GetCode(hash common.Hash) ([]byte, error) {
	val, closer, err := p.db.Get(hash[:])
	if err == pebble.ErrNotFound {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	code := make([]byte, len(val))
	copy(code, val)
	return code, nil
}

var _ ContractStorage = (*PebbleContractStorage)(nil)
