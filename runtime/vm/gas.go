package vm

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/near/nearcore/runtime/params"
)

// ErrGasLimitExceeded is returned by [GasCounter.Burn] once cumulative usage
// would exceed the counter's limit.
var ErrGasLimitExceeded = fmt.Errorf("vm: gas limit exceeded")

// GasCounter tracks gas burnt while validating and preparing a contract,
// exactly mirroring the accounting the real executor would perform had it
// run this work inline, so that a task aborted mid-preparation and redone
// inline never burns more gas than a single preparation's worth.
//
// Burnt amounts are tracked in a [uint256.Int] rather than a uint64, the
// same widening the teacher uses for EVM balances and gas math in core/vm,
// to make overflow structurally impossible regardless of how large a
// misconfigured limit or cost table might be.
type GasCounter struct {
	burnt  uint256.Int
	limit  uint256.Int
	isView bool
}

// NewGasCounter constructs a counter whose burnt total may never exceed
// maxGasBurnt, nor the action's own prepaid gas allowance, whichever is
// smaller: preparation must not burn more gas than the call could ever
// actually spend. isView records whether this is a read-only call, which
// callers may use to decide whether to enforce the limit strictly or merely
// record usage.
func NewGasCounter(maxGasBurnt, actionGas params.Gas, isView bool) *GasCounter {
	limit := maxGasBurnt
	if actionGas < limit {
		limit = actionGas
	}
	gc := &GasCounter{isView: isView}
	gc.limit.SetUint64(uint64(limit))
	return gc
}

// Burn adds amount to the counter's cumulative usage, returning
// [ErrGasLimitExceeded] if doing so would exceed the limit. On overflow the
// counter's burnt total is left unchanged.
func (g *GasCounter) Burn(amount params.Gas) error {
	var next uint256.Int
	next.AddUint64(&g.burnt, uint64(amount))
	if next.Cmp(&g.limit) > 0 {
		return ErrGasLimitExceeded
	}
	g.burnt = next
	return nil
}

// Burnt returns the cumulative amount burnt so far.
func (g *GasCounter) Burnt() params.Gas {
	return params.Gas(g.burnt.Uint64())
}

// Limit returns the counter's configured limit.
func (g *GasCounter) Limit() params.Gas {
	return params.Gas(g.limit.Uint64())
}

// IsView reports whether this counter was constructed for a view call.
func (g *GasCounter) IsView() bool {
	return g.isView
}

// NewFromConfig builds the gas counter for a single FunctionCall
// preparation from the five inputs the original's own gas_counter
// constructor takes: the config's extension costs (applied by [Prepare]
// itself), the view call's own MaxGasBurnt override if present (otherwise
// the protocol-wide limit from cfg), the regular-op cost (likewise applied
// by [Prepare]), the action's own prepaid gas allowance, and an is_view flag
// equal to view being non-nil.
func NewFromConfig(cfg *params.RuntimeConfig, view *params.ViewConfig, actionGas params.Gas) *GasCounter {
	maxGasBurnt := cfg.WasmConfig.LimitConfig.MaxGasBurnt
	isView := view != nil
	if view != nil && view.MaxGasBurnt != nil {
		maxGasBurnt = *view.MaxGasBurnt
	}
	return NewGasCounter(maxGasBurnt, actionGas, isView)
}
