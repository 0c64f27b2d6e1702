package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/near/nearcore/runtime/common"
)

func TestFastCacheMiss(t *testing.T) {
	c := NewFastCache(1 << 20)
	_, ok := c.Get(common.Hash{1})
	require.False(t, ok)
}

func TestFastCachePutGet(t *testing.T) {
	c := NewFastCache(1 << 20)
	hash := common.Hash{1}
	contract := &preparedContract{codeHash: hash, size: 4, method: "run"}

	c.Put(hash, contract)
	got, ok := c.Get(hash)
	require.True(t, ok)
	require.Equal(t, contract, got)
}
