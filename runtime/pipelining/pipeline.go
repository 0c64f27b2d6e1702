// Package pipelining speculatively prepares the contracts referenced by a
// chunk's receipts ahead of the executor reaching them, so that by the time
// execution actually needs a prepared contract, the validation work has
// already happened on a background goroutine. It is the receiving end of
// the teacher's own pattern for overlapping background work with foreground
// execution (see core/state's trie prefetcher), retargeted from trie-node
// warms to WASM contract preparation.
package pipelining

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"

	"github.com/near/nearcore/runtime/account"
	"github.com/near/nearcore/runtime/common"
	"github.com/near/nearcore/runtime/params"
	"github.com/near/nearcore/runtime/receipt"
	"github.com/near/nearcore/runtime/state"
	"github.com/near/nearcore/runtime/vm"
)

// Pipeline prepares the FunctionCall contracts of a single chunk, in the
// background, ahead of execution. A Pipeline is scoped to exactly one
// chunk: the account and global-contract blocker sets it accumulates must
// not leak into the next chunk, so callers construct a fresh Pipeline per
// chunk rather than reusing one.
type Pipeline struct {
	mu    sync.Mutex
	tasks map[TaskKey]*Task

	blockedAccounts *blockerSet[account.ID]
	blockedGlobals  *blockerSet[account.GlobalContractIdentifier]

	config   *params.RuntimeConfig
	snapshot state.Snapshot
	storage  vm.ContractStorage
	cache    vm.ContractCache

	pool    WorkerPool
	metrics MetricsSink
}

// Option configures a [Pipeline] at construction time.
type Option func(*Pipeline)

// WithWorkerPool overrides the [WorkerPool] new tasks are submitted to. Used
// in tests to observe or control scheduling; production callers normally
// leave this at its default, the shared process-wide [FIFOPool].
func WithWorkerPool(pool WorkerPool) Option {
	return func(p *Pipeline) { p.pool = pool }
}

// WithMetricsSink overrides where the pipeline reports its counters. Tests
// that do not want to pollute the default metrics registry should pass a
// sink that discards updates.
func WithMetricsSink(sink MetricsSink) Option {
	return func(p *Pipeline) { p.metrics = sink }
}

// WithContractCache overrides the [vm.ContractCache] consulted before
// falling back to storage. A nil cache (the default) disables caching
// entirely; every preparation reads through to storage.
func WithContractCache(cache vm.ContractCache) Option {
	return func(p *Pipeline) { p.cache = cache }
}

// New constructs a Pipeline scoped to a single chunk's worth of receipts.
func New(config *params.RuntimeConfig, snapshot state.Snapshot, storage vm.ContractStorage, opts ...Option) *Pipeline {
	p := &Pipeline{
		tasks:           make(map[TaskKey]*Task),
		blockedAccounts: newBlockerSet[account.ID](),
		blockedGlobals:  newBlockerSet[account.GlobalContractIdentifier](),
		config:          config,
		snapshot:        snapshot,
		storage:         storage,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.pool == nil {
		p.pool = defaultWorkerPool()
	}
	if p.metrics == nil {
		p.metrics = NewMetricsSink(nil)
	}
	return p
}

// Submit offers r's FunctionCall actions to the pipeline for background
// preparation. It returns true if the pipeline acted on the receipt in some
// way: a DeployContract or UseGlobalContract action blocks the receiver for
// the remainder of this chunk (and submit returns immediately, without
// looking at any further actions in the receipt — a deployment invalidates
// whatever the pipeline thought it knew about this account's code), and any
// FunctionCall action not skipped for a routine reason is submitted for
// background preparation.
//
// Not every receipt passed to Submit need ever have its result consumed via
// GetContract: a chunk may run out of gas or compute before reaching a
// submitted receipt, in which case the corresponding background work is
// simply discarded once the Pipeline itself is dropped.
func (p *Pipeline) Submit(r *receipt.Receipt, view *params.ViewConfig) bool {
	receiver := r.Receiver()
	if p.blockedAccounts.blocked(receiver) {
		return false
	}

	var actions []receipt.Action
	switch body := r.Body().(type) {
	case receipt.Actions:
		actions = body.List
	case receipt.GlobalContractDistribution:
		p.blockedGlobals.block(body.ID)
		return false
	default:
		return false
	}

	var (
		acct             *account.Account
		acctLoaded       bool
		anyFunctionCalls bool
	)

	for actionIndex, a := range actions {
		switch act := a.(type) {
		case receipt.DeployContract:
			return p.blockedAccounts.block(receiver)

		case receipt.UseGlobalContract:
			return p.blockedAccounts.block(receiver)

		case receipt.FunctionCall:
			if !acctLoaded {
				acct, _ = p.snapshot.GetAccount(receiver, state.NoSideEffects)
				acctLoaded = true
			}
			if acct == nil {
				continue
			}
			res := resolveCodeHash(acct, p.snapshot, p.blockedGlobals)
			if !res.ok {
				continue
			}

			key := TaskKey{ReceiptHash: r.Hash(), ActionIndex: actionIndex}
			p.mu.Lock()
			if _, exists := p.tasks[key]; exists {
				p.mu.Unlock()
				continue
			}
			task := newTask()
			p.tasks[key] = task
			p.mu.Unlock()

			p.metrics.IncSubmitted()
			p.scheduleTask(task, res.codeHash, act.MethodName, vm.NewFromConfig(p.config, view, params.Gas(act.Gas)))
			anyFunctionCalls = true

		default:
			// Delegate generates further receipts without touching this
			// account's code; every other action variant is inert here.
		}
	}
	return anyFunctionCalls
}

// scheduleTask enqueues the background preparation of one task onto the
// worker pool. The goroutine that runs it may discover the task has already
// been claimed by [Task.consume]; claim() handles that race.
func (p *Pipeline) scheduleTask(task *Task, codeHash common.Hash, methodName string, gc *vm.GasCounter) {
	created := time.Now()
	cfg := p.config.WasmConfig
	storage := p.storage
	cache := p.cache
	m := p.metrics

	p.pool.Execute(func() {
		if !task.claim() {
			return
		}
		m.AddTaskDelayTime(time.Since(created).Seconds())

		start := time.Now()
		contract := prepare(codeHash, methodName, cfg, cache, storage, gc)
		if err := contract.Err(); err != nil {
			log.Debug("runtime/pipelining: background preparation failed", "codeHash", codeHash, "method", methodName, "err", err)
		}
		task.finish(contract)
		m.AddTaskWorkingTime(time.Since(start).Seconds())
	})
}

// GetContract obtains the prepared contract for the action_index'th action
// of r, which must be a FunctionCall. If that action was submitted and is
// still being prepared, GetContract blocks until it finishes. If it was
// never submitted, GetContract prepares it on the calling goroutine. A
// prepare failure (missing code, invalid module, gas exhausted) is embedded
// in the returned contract's [vm.PreparedContract.Err]; GetContract always
// returns a non-nil contract, never a bare nil.
func (p *Pipeline) GetContract(r *receipt.Receipt, codeHash common.Hash, actionIndex int, view *params.ViewConfig) vm.PreparedContract {
	action := r.Action(actionIndex)
	fc, ok := action.(receipt.FunctionCall)
	if !ok {
		panic("pipelining: referenced receipt action is not a function call")
	}

	key := TaskKey{ReceiptHash: r.Hash(), ActionIndex: actionIndex}
	p.mu.Lock()
	task, ok := p.tasks[key]
	p.mu.Unlock()

	if !ok {
		start := time.Now()
		if !p.blockedAccounts.blocked(r.Receiver()) {
			log.Debug("runtime/pipelining: function call task was not submitted for preparation",
				"receipt", r.Hash(), "actionIndex", actionIndex)
		}
		gc := vm.NewFromConfig(p.config, view, params.Gas(fc.Gas))
		contract := prepare(codeHash, fc.MethodName, p.config.WasmConfig, p.cache, p.storage, gc)
		if err := contract.Err(); err != nil {
			log.Debug("runtime/pipelining: main-thread preparation failed", "err", err)
		}
		p.metrics.IncNotSubmitted()
		p.metrics.AddMainThreadWorkingTime(time.Since(start).Seconds())
		return contract
	}

	result := task.consume(func() vm.PreparedContract {
		log.Trace("runtime/pipelining: function call preparation on the main thread",
			"receipt", r.Hash(), "actionIndex", actionIndex)
		start := time.Now()
		gc := vm.NewFromConfig(p.config, view, params.Gas(fc.Gas))
		contract := prepare(codeHash, fc.MethodName, p.config.WasmConfig, p.cache, p.storage, gc)
		if err := contract.Err(); err != nil {
			log.Debug("runtime/pipelining: main-thread preparation failed", "err", err)
		}
		p.metrics.IncPreparedInMainThread()
		p.metrics.AddMainThreadWorkingTime(time.Since(start).Seconds())
		return contract
	})

	if result.Waited > 0 {
		p.metrics.AddWaitingTime(result.Waited.Seconds())
	}
	if result.Outcome == OutcomeFoundPrepared {
		p.metrics.IncFoundPrepared()
	}
	return result.Contract
}

// prepare resolves a contract through the cache before falling through to
// storage and, on a miss, actual preparation, populating the cache on
// success. A nil cache disables the first step entirely. Every failure
// along the way — a cache miss that turns out to be a storage read error,
// or a validation/gas failure from [vm.Prepare] itself — is embedded in the
// returned contract via [vm.PreparedContract.Err] rather than a second
// return value, so prepare always hands its caller exactly one contract.
func prepare(codeHash common.Hash, methodName string, cfg *params.VMConfig, cache vm.ContractCache, storage vm.ContractStorage, gc *vm.GasCounter) vm.PreparedContract {
	key := vm.CacheKey(codeHash, cfg)
	if cache != nil {
		if contract, ok := cache.Get(key); ok {
			return contract
		}
	}
	code, err := storage.GetCode(codeHash)
	if err != nil {
		return vm.Failed(codeHash, err)
	}
	contract := vm.Prepare(codeHash, code, methodName, cfg, gc)
	if contract.Err() == nil && cache != nil {
		cache.Put(key, contract)
	}
	return contract
}
