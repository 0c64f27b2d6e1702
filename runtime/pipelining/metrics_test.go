package pipelining

import (
	"testing"

	gethmetrics "github.com/ethereum/go-ethereum/metrics"
	"github.com/stretchr/testify/require"
)

func TestEthMetricsSinkRecordsCounters(t *testing.T) {
	r := gethmetrics.NewRegistry()
	sink := NewMetricsSink(r)

	sink.IncSubmitted()
	sink.IncSubmitted()
	sink.IncFoundPrepared()
	sink.AddWaitingTime(1.5)
	sink.AddWaitingTime(2.5)

	submitted := r.Get("runtime/pipelining/actions/submitted").(gethmetrics.Counter)
	require.EqualValues(t, 2, submitted.Count())

	found := r.Get("runtime/pipelining/actions/found_prepared").(gethmetrics.Counter)
	require.EqualValues(t, 1, found.Count())

	waiting := r.Get("runtime/pipelining/actions/waiting_time").(gethmetrics.CounterFloat64)
	require.Equal(t, 4.0, waiting.Count())
}

func TestNoopMetricsSinkDoesNotPanic(t *testing.T) {
	var sink MetricsSink = noopMetricsSink{}
	sink.IncSubmitted()
	sink.IncNotSubmitted()
	sink.IncFoundPrepared()
	sink.IncPreparedInMainThread()
	sink.AddTaskDelayTime(1)
	sink.AddTaskWorkingTime(1)
	sink.AddMainThreadWorkingTime(1)
	sink.AddWaitingTime(1)
}
