package params

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGasMarshalsAsHex(t *testing.T) {
	data, err := json.Marshal(Gas(300_000_000_000_000))
	require.NoError(t, err)
	require.Equal(t, `"0x110d9316ec000"`, string(data))
}

func TestGasRoundTrip(t *testing.T) {
	var g Gas
	require.NoError(t, json.Unmarshal([]byte(`"0xff"`), &g))
	require.Equal(t, Gas(255), g)
}

func TestGasRejectsMissingPrefix(t *testing.T) {
	var g Gas
	require.Error(t, g.UnmarshalJSON([]byte(`"ff"`)))
}

func TestVMConfigRoundTrip(t *testing.T) {
	cfg := VMConfig{
		ExtCosts:      ExtCosts{Base: 1000, Byte: 10},
		RegularOpCost: 3,
		LimitConfig:   LimitConfig{MaxGasBurnt: 200_000_000_000_000},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var got VMConfig
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, cfg, got)
}
