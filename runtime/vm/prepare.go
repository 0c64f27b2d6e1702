package vm

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	"github.com/near/nearcore/runtime/common"
	"github.com/near/nearcore/runtime/params"
)

// wasmMagic is the four-byte header every WASM module begins with.
var wasmMagic = []byte{0x00, 'a', 's', 'm'}

// ErrCodeNotFound is returned when the requested code hash is not present in
// a [ContractStorage].
var ErrCodeNotFound = fmt.Errorf("vm: contract code not found")

// ErrInvalidWasmHeader is returned when the stored bytes do not begin with
// the WASM magic header.
var ErrInvalidWasmHeader = fmt.Errorf("vm: invalid wasm header")

// ErrEmptyMethodName is returned when a FunctionCall action names no method.
var ErrEmptyMethodName = fmt.Errorf("vm: empty method name")

// A PreparedContract is the artifact produced by [Prepare]: code that has
// been validated and is ready for the executor to instantiate and run,
// without repeating that validation work. Preparation never fails by
// returning a bare error: any I/O failure, compile error, or validation
// error is embedded in the returned contract itself, so callers always
// receive exactly one PreparedContract and check [PreparedContract.Err]
// uniformly rather than branching on a second return value.
type PreparedContract interface {
	// CodeHash is the hash of the prepared code.
	CodeHash() common.Hash
	// Size is the length in bytes of the prepared code.
	Size() int
	// Method is the exported method this preparation targeted.
	Method() string
	// Err reports the failure that occurred while producing this contract,
	// if any. A contract with a non-nil Err carries no usable code; callers
	// must not attempt to instantiate it.
	Err() error
}

type preparedContract struct {
	codeHash common.Hash
	size     int
	method   string
	err      error
}

func (p *preparedContract) CodeHash() common.Hash { return p.codeHash }
func (p *preparedContract) Size() int             { return p.size }
func (p *preparedContract) Method() string        { return p.method }
func (p *preparedContract) Err() error            { return p.err }

// Failed returns a PreparedContract whose Err reports err. It is the single
// path every preparation failure — storage I/O, an empty method name, an
// invalid WASM header, or a gas-limit overrun — funnels through, so that
// get_contract's caller always receives a contract object, never a bare nil.
func Failed(codeHash common.Hash, err error) PreparedContract {
	return &preparedContract{codeHash: codeHash, err: err}
}

// CacheKey derives the cache key for code prepared under the given runtime
// config. Identical code prepared under two different configs (for example,
// across a protocol upgrade that changes validation rules) must not collide,
// so the key binds the code hash to RegularOpCost as a coarse config
// fingerprint, the same way the original composes CompiledContractCache keys
// from (code_hash, vm_config_non_crypto_hash).
func CacheKey(codeHash common.Hash, cfg *params.VMConfig) common.Hash {
	var buf bytes.Buffer
	buf.Write(codeHash[:])
	var cost [8]byte
	v := uint64(cfg.RegularOpCost)
	for i := 0; i < 8; i++ {
		cost[i] = byte(v >> (8 * i))
	}
	buf.Write(cost[:])
	return common.Hash(sha256.Sum256(buf.Bytes()))
}

// Prepare validates code against cfg and charges the validation cost to gc,
// standing in for the opaque prepare_function_call step of the original
// (a full WASM compiler is out of scope here, as it is out of scope for the
// pipeline itself: preparation there delegates to a near-vm-runner backend
// this package does not attempt to reproduce). It performs just enough real
// work — a magic-header check and a per-byte gas charge — to exercise the
// gas accounting and cache-population paths the pipeline is responsible for.
func Prepare(codeHash common.Hash, code []byte, methodName string, cfg *params.VMConfig, gc *GasCounter) PreparedContract {
	if methodName == "" {
		return Failed(codeHash, ErrEmptyMethodName)
	}
	if err := gc.Burn(cfg.ExtCosts.Base); err != nil {
		return Failed(codeHash, err)
	}
	if err := gc.Burn(params.Gas(len(code)) * cfg.ExtCosts.Byte); err != nil {
		return Failed(codeHash, err)
	}
	if len(code) < len(wasmMagic) || !bytes.Equal(code[:len(wasmMagic)], wasmMagic) {
		return Failed(codeHash, ErrInvalidWasmHeader)
	}
	return &preparedContract{codeHash: codeHash, size: len(code), method: methodName}
}
