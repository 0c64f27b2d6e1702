package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/near/nearcore/runtime/common"
	"github.com/near/nearcore/runtime/params"
)

func testConfig() *params.VMConfig {
	return &params.VMConfig{
		ExtCosts:      params.ExtCosts{Base: 100, Byte: 2},
		RegularOpCost: 3,
		LimitConfig:   params.LimitConfig{MaxGasBurnt: 1_000_000},
	}
}

func TestPrepareValidModule(t *testing.T) {
	code := append([]byte{0x00, 'a', 's', 'm'}, []byte{1, 2, 3, 4}...)
	hash := common.HashFromBytes(code)
	gc := NewGasCounter(1_000_000, 1_000_000, false)

	contract := Prepare(hash, code, "run", testConfig(), gc)
	require.NoError(t, contract.Err())
	require.Equal(t, hash, contract.CodeHash())
	require.Equal(t, len(code), contract.Size())
	require.Equal(t, "run", contract.Method())
	require.Equal(t, params.Gas(100+2*len(code)), gc.Burnt())
}

func TestPrepareRejectsMissingHeader(t *testing.T) {
	code := []byte{1, 2, 3, 4}
	gc := NewGasCounter(1_000_000, 1_000_000, false)

	contract := Prepare(common.HashFromBytes(code), code, "run", testConfig(), gc)
	require.ErrorIs(t, contract.Err(), ErrInvalidWasmHeader)
}

func TestPrepareRejectsEmptyMethodName(t *testing.T) {
	code := append([]byte{0x00, 'a', 's', 'm'}, 1, 2)
	gc := NewGasCounter(1_000_000, 1_000_000, false)

	contract := Prepare(common.HashFromBytes(code), code, "", testConfig(), gc)
	require.ErrorIs(t, contract.Err(), ErrEmptyMethodName)
}

func TestPrepareRespectsGasLimit(t *testing.T) {
	code := append([]byte{0x00, 'a', 's', 'm'}, make([]byte, 1000)...)
	gc := NewGasCounter(10, 10, false)

	contract := Prepare(common.HashFromBytes(code), code, "run", testConfig(), gc)
	require.ErrorIs(t, contract.Err(), ErrGasLimitExceeded)
}

func TestFailedContractCarriesCodeHashAndError(t *testing.T) {
	hash := common.HashFromBytes([]byte("code"))
	contract := Failed(hash, ErrCodeNotFound)
	require.Equal(t, hash, contract.CodeHash())
	require.ErrorIs(t, contract.Err(), ErrCodeNotFound)
}

func TestCacheKeyDiffersAcrossConfig(t *testing.T) {
	hash := common.HashFromBytes([]byte("code"))
	cfgA := testConfig()
	cfgB := testConfig()
	cfgB.RegularOpCost = 99

	require.NotEqual(t, CacheKey(hash, cfgA), CacheKey(hash, cfgB))
}
