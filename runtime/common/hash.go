// Package common holds the small value types shared by every other package
// under runtime/, mirroring the role the upstream go-ethereum `common`
// package plays for `common.Hash`/`common.Address`: a leaf package with no
// internal dependencies, so that account/receipt/state/vm can all refer to
// the same hash type without import cycles.
package common

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashLength is the length in bytes of a [Hash].
const HashLength = 32

// A Hash is a content identifier: a receipt hash or a contract code hash.
// The zero Hash is used as a sentinel "no code" value by callers that skip
// code-hash resolution.
type Hash [HashLength]byte

// HashFromBytes truncates or left-pads b to [HashLength] bytes, matching the
// teacher's hexutil truncation convention for fixed-width codecs.
func HashFromBytes(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Hex renders h as a 0x-prefixed hex string, the wire convention used
// throughout the teacher's common/hexutil codec.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// String implements [fmt.Stringer].
func (h Hash) String() string {
	return h.Hex()
}

// IsZero reports whether h is the zero value, used by the code resolver to
// represent "no code" without an extra boolean in hot paths.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// Less provides a total order over hashes, used to make [Hash]-keyed task
// tables sortable for deterministic metrics dumps and tests.
func (h Hash) Less(o Hash) bool {
	return bytes.Compare(h[:], o[:]) < 0
}

// MarshalJSON implements [json.Marshaler], encoding the hash as 0x-prefixed
// hex exactly as the teacher's hexutil codec does for fixed-width values.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Hex())
}

// UnmarshalJSON implements [json.Unmarshaler].
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = trimHexPrefix(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("common: decoding hash %q: %w", s, err)
	}
	if len(b) != HashLength {
		return fmt.Errorf("common: hash %q has %d bytes, want %d", s, len(b), HashLength)
	}
	copy(h[:], b)
	return nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
