package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/near/nearcore/runtime/common"
)

func TestMemoryContractStorageMiss(t *testing.T) {
	s := NewMemoryContractStorage()
	_, err := s.GetCode(common.Hash{1})
	require.ErrorIs(t, err, ErrCodeNotFound)
}

func TestMemoryContractStorageRoundTrip(t *testing.T) {
	s := NewMemoryContractStorage()
	hash := common.Hash{1}
	s.SetCode(hash, []byte{0x00, 'a', 's', 'm'})

	code, err := s.GetCode(hash)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 'a', 's', 'm'}, code)
}
