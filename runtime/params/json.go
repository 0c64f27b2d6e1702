package params

import (
	"encoding/json"
	"strconv"
)

// ErrUint64Range reports a malformed or out-of-range hex-encoded quantity:
// missing "0x" prefix, empty digits, or more than 64 bits of magnitude.
var ErrUint64Range = &rangeError{}

type rangeError struct{}

func (*rangeError) Error() string { return "invalid 0x-prefixed hex quantity" }

// Gas is a gas quantity. It marshals as a 0x-prefixed hex string rather than
// a JSON number, the same quantity encoding the teacher's
// common/hexutil.Uint64 uses for RPC payloads: NEAR's own config JSON (and
// nearcore's tooling) represents gas amounts the same way, and hex avoids
// float64-precision loss for values near the top of the 64-bit range.
type Gas uint64

// MarshalJSON implements [json.Marshaler].
func (g Gas) MarshalJSON() ([]byte, error) {
	return json.Marshal(encodeUint64(uint64(g)))
}

// UnmarshalJSON implements [json.Unmarshaler].
func (g *Gas) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := decodeUint64(s)
	if err != nil {
		return err
	}
	*g = Gas(v)
	return nil
}

func encodeUint64(i uint64) string {
	enc := make([]byte, 2, 18)
	copy(enc, "0x")
	return string(strconv.AppendUint(enc, i, 16))
}

func decodeUint64(input string) (uint64, error) {
	if len(input) < 2 || input[0] != '0' || (input[1] != 'x' && input[1] != 'X') {
		return 0, ErrUint64Range
	}
	raw := input[2:]
	if raw == "" {
		return 0, ErrUint64Range
	}
	dec, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return 0, ErrUint64Range
	}
	return dec, nil
}
