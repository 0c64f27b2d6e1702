package pipelining

import (
	"sync"
	"time"

	"github.com/near/nearcore/runtime/common"
	"github.com/near/nearcore/runtime/vm"
)

// TaskKey identifies the preparation task for one action of one receipt.
// Receipts may contain several FunctionCall actions, each prepared
// independently, so the key must carry both the receipt hash and the
// action's index within it.
type TaskKey struct {
	ReceiptHash common.Hash
	ActionIndex int
}

type taskStatus int

const (
	taskPending taskStatus = iota
	taskWorking
	taskPrepared
	taskFinished
)

// Task is a single cooperatively-scheduled preparation slot, shared between
// the worker goroutine that may prepare it and the caller that eventually
// consumes it. It carries exactly the four states the original's
// PrepareTaskStatus enum carries, and the same invariant: the task leaves
// Pending exactly once, whichever side gets there first (a worker moves it
// to Working; a consumer that steals it moves it straight to Finished).
type Task struct {
	mu       sync.Mutex
	cond     *sync.Cond
	status   taskStatus
	contract vm.PreparedContract
}

func newTask() *Task {
	t := &Task{status: taskPending}
	t.cond = sync.NewCond(&t.mu)
	return t
}

// claim performs the atomic Pending to Working transition a worker
// goroutine uses to decide whether it still owns this task by the time it
// gets to run. It reports true if the task was Pending (and is now
// Working), false if some other party already claimed or finished it, in
// which case the worker must do nothing further: this swap, and nothing
// else, is what prevents a task from being prepared twice.
func (t *Task) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != taskPending {
		return false
	}
	t.status = taskWorking
	return true
}

// finish installs the prepared contract, transitions to Prepared, and wakes
// any goroutine blocked in consume.
func (t *Task) finish(contract vm.PreparedContract) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = taskPrepared
	t.contract = contract
	t.cond.Broadcast()
}

// ConsumeOutcome reports which path [Task.consume] took to produce its
// result, so the caller can attribute the right metric.
type ConsumeOutcome int

const (
	// OutcomeInline means the task was still Pending: consume stole it from
	// the worker pool and prepared it on the calling goroutine.
	OutcomeInline ConsumeOutcome = iota
	// OutcomeFoundPrepared means a worker goroutine had already finished
	// preparing the contract by the time consume was called.
	OutcomeFoundPrepared
)

// ConsumeResult carries the contract produced by [Task.consume] along with
// enough detail for the caller to record metrics without duplicating the
// state-machine logic that produced them.
type ConsumeResult struct {
	Contract vm.PreparedContract
	Outcome  ConsumeOutcome
	// Waited is the cumulative time this call spent blocked waiting for a
	// Working task to finish. Zero unless the task was found Working at
	// least once.
	Waited time.Duration
}

// consume takes ownership of the task's result, exactly once. Calling it a
// second time on the same task panics, mirroring the contract violation the
// original flags with "attempting to get_contract that has already been
// taken": every task is consumed by exactly one caller, since the pipeline
// only ever hands out one (receipt, action_index) pair to its own executor.
//
// prepareInline is invoked, without the task's lock held, only when this
// call finds the task still Pending: it must perform the same preparation
// work the worker goroutine would otherwise have performed.
func (t *Task) consume(prepareInline func() vm.PreparedContract) ConsumeResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	var waited time.Duration
	for {
		switch t.status {
		case taskPending:
			t.status = taskFinished
			t.mu.Unlock()
			contract := prepareInline()
			t.mu.Lock()
			return ConsumeResult{Contract: contract, Outcome: OutcomeInline, Waited: waited}

		case taskWorking:
			start := time.Now()
			t.cond.Wait()
			waited += time.Since(start)
			continue

		case taskPrepared:
			contract := t.contract
			t.status = taskFinished
			return ConsumeResult{Contract: contract, Outcome: OutcomeFoundPrepared, Waited: waited}

		case taskFinished:
			panic("pipelining: attempted to consume a task that was already taken")
		}
	}
}
