package pipelining

import "github.com/ethereum/go-ethereum/metrics"

// MetricsSink receives the pipeline's counters, named after the metrics the
// original registers under runtime.pipelining.actions.*. Every method is a
// single relative update, mirroring the underlying Counter/CounterFloat64
// API: callers never need to read a value back.
type MetricsSink interface {
	// IncSubmitted counts a FunctionCall action accepted for background
	// preparation.
	IncSubmitted()
	// IncNotSubmitted counts a FunctionCall action whose result was needed
	// before any task for it had been submitted.
	IncNotSubmitted()
	// IncFoundPrepared counts a consume that found a task already Prepared.
	IncFoundPrepared()
	// IncPreparedInMainThread counts a consume that had to prepare a still-
	// Pending task on the calling goroutine.
	IncPreparedInMainThread()
	// AddTaskDelayTime accumulates the time between a task's submission and
	// the worker goroutine claiming it.
	AddTaskDelayTime(seconds float64)
	// AddTaskWorkingTime accumulates the time a worker goroutine spent
	// actually preparing a contract.
	AddTaskWorkingTime(seconds float64)
	// AddMainThreadWorkingTime accumulates the time the calling goroutine
	// spent preparing a contract itself, whether because no task was
	// submitted or because the task was still Pending.
	AddMainThreadWorkingTime(seconds float64)
	// AddWaitingTime accumulates the time the calling goroutine spent
	// blocked waiting for a Working task to finish.
	AddWaitingTime(seconds float64)
}

// ethMetricsSink is the production [MetricsSink], backed by the counters the
// teacher's own stack registers its own subsystem metrics with.
type ethMetricsSink struct {
	submitted            metrics.Counter
	notSubmitted         metrics.Counter
	foundPrepared        metrics.Counter
	preparedInMainThread metrics.Counter
	taskDelayTime        metrics.CounterFloat64
	taskWorkingTime      metrics.CounterFloat64
	mainThreadWorking    metrics.CounterFloat64
	waitingTime          metrics.CounterFloat64
}

// NewMetricsSink registers and returns the default [MetricsSink], using the
// given registry (nil registers against the default registry, the same
// convention metrics.NewRegisteredCounter itself follows).
func NewMetricsSink(r metrics.Registry) MetricsSink {
	return &ethMetricsSink{
		submitted:            metrics.NewRegisteredCounter("runtime/pipelining/actions/submitted", r),
		notSubmitted:         metrics.NewRegisteredCounter("runtime/pipelining/actions/not_submitted", r),
		foundPrepared:        metrics.NewRegisteredCounter("runtime/pipelining/actions/found_prepared", r),
		preparedInMainThread: metrics.NewRegisteredCounter("runtime/pipelining/actions/prepared_in_main_thread", r),
		taskDelayTime:        metrics.NewRegisteredCounterFloat64("runtime/pipelining/actions/task_delay_time", r),
		taskWorkingTime:      metrics.NewRegisteredCounterFloat64("runtime/pipelining/actions/task_working_time", r),
		mainThreadWorking:    metrics.NewRegisteredCounterFloat64("runtime/pipelining/actions/main_thread_working_time", r),
		waitingTime:          metrics.NewRegisteredCounterFloat64("runtime/pipelining/actions/waiting_time", r),
	}
}

func (m *ethMetricsSink) IncSubmitted()            { m.submitted.Inc(1) }
func (m *ethMetricsSink) IncNotSubmitted()          { m.notSubmitted.Inc(1) }
func (m *ethMetricsSink) IncFoundPrepared()         { m.foundPrepared.Inc(1) }
func (m *ethMetricsSink) IncPreparedInMainThread()  { m.preparedInMainThread.Inc(1) }
func (m *ethMetricsSink) AddTaskDelayTime(s float64)        { m.taskDelayTime.Inc(s) }
func (m *ethMetricsSink) AddTaskWorkingTime(s float64)      { m.taskWorkingTime.Inc(s) }
func (m *ethMetricsSink) AddMainThreadWorkingTime(s float64) { m.mainThreadWorking.Inc(s) }
func (m *ethMetricsSink) AddWaitingTime(s float64)          { m.waitingTime.Inc(s) }

var _ MetricsSink = (*ethMetricsSink)(nil)

// noopMetricsSink discards every update. Pipelines constructed without
// [WithMetricsSink] use [NewMetricsSink] against the default registry
// instead; contexts (mainly tests) that do not want to pollute that registry
// pass this sink through [WithMetricsSink].
type noopMetricsSink struct{}

func (noopMetricsSink) IncSubmitted()               {}
func (noopMetricsSink) IncNotSubmitted()             {}
func (noopMetricsSink) IncFoundPrepared()            {}
func (noopMetricsSink) IncPreparedInMainThread()     {}
func (noopMetricsSink) AddTaskDelayTime(float64)     {}
func (noopMetricsSink) AddTaskWorkingTime(float64)   {}
func (noopMetricsSink) AddMainThreadWorkingTime(float64) {}
func (noopMetricsSink) AddWaitingTime(float64)       {}

var _ MetricsSink = noopMetricsSink{}
