package vm

import (
	"encoding/binary"

	"github.com/VictoriaMetrics/fastcache"

	"github.com/near/nearcore/runtime/common"
)

// ContractCache memoizes [PreparedContract]s by cache key so that two tasks
// racing to prepare the same code only pay the validation cost once. This is
// the Go analogue of the original's ContractRuntimeCache trait object.
type ContractCache interface {
	// Get returns the prepared contract stored under key, if any.
	Get(key common.Hash) (PreparedContract, bool)
	// Put stores contract under key, evicting older entries if the cache is
	// full.
	Put(key common.Hash, contract PreparedContract)
}

// FastCache is a [ContractCache] backed by fastcache, the same in-memory
// cache the teacher's code layer uses for its account/storage read caches.
// Only successfully prepared contracts are ever stored (see the pipelining
// package's prepare helper); they are serialized directly into fastcache's
// own byte storage rather than kept in a side map, so the cache's byte
// budget is the only thing that bounds its memory: there is no second,
// unbounded index for an evicted key to linger in.
type FastCache struct {
	cache *fastcache.Cache
}

// NewFastCache returns a [FastCache] with the given approximate byte budget.
func NewFastCache(maxBytes int) *FastCache {
	return &FastCache{cache: fastcache.New(maxBytes)}
}

// Get implements [ContractCache].
func (c *FastCache) Get(key common.Hash) (PreparedContract, bool) {
	data, ok := c.cache.HasGet(nil, key[:])
	if !ok {
		return nil, false
	}
	return decodePreparedContract(data)
}

// Put implements [ContractCache].
func (c *FastCache) Put(key common.Hash, contract PreparedContract) {
	c.cache.Set(key[:], encodePreparedContract(contract))
}

var _ ContractCache = (*FastCache)(nil)

// encodePreparedContract serializes contract as codeHash || size || method.
// It is only ever called with a contract whose Err is nil (see the
// pipelining package), so no failure state needs to round-trip.
func encodePreparedContract(contract PreparedContract) []byte {
	hash := contract.CodeHash()
	method := contract.Method()
	buf := make([]byte, common.HashLength+8+len(method))
	copy(buf, hash[:])
	binary.BigEndian.PutUint64(buf[common.HashLength:], uint64(contract.Size()))
	copy(buf[common.HashLength+8:], method)
	return buf
}

func decodePreparedContract(data []byte) (PreparedContract, bool) {
	if len(data) < common.HashLength+8 {
		return nil, false
	}
	var hash common.Hash
	copy(hash[:], data[:common.HashLength])
	size := binary.BigEndian.Uint64(data[common.HashLength : common.HashLength+8])
	method := string(data[common.HashLength+8:])
	return &preparedContract{codeHash: hash, size: int(size), method: method}, true
}
