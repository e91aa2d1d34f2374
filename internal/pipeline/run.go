package pipeline

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/echoscribe/internal/metrics"
)

// run carries the state of one pipeline invocation.
type run struct {
	state        State
	started      time.Time
	stageStarted time.Time
	result       *Result
	onTransition func(from, to State)
	metrics      *metrics.Metrics
}

func newRun(id string, opts Options, m *metrics.Metrics) *run {
	now := time.Now()
	return &run{
		state:        Idle,
		started:      now,
		stageStarted: now,
		result:       &Result{RunID: id, State: Idle},
		onTransition: opts.OnTransition,
		metrics:      m,
	}
}

// advance moves the run to next. Illegal transitions are programming errors.
func (r *run) advance(next State) {
	from := r.state
	if !from.CanTransition(next) {
		panic(fmt.Sprintf("pipeline: illegal transition %s -> %s", from, next))
	}

	now := time.Now()
	if from != Idle {
		r.metrics.ObserveStage(from.String(), now.Sub(r.stageStarted))
	}
	r.stageStarted = now

	r.state = next
	r.result.State = next
	if next.Terminal() {
		r.result.Duration = now.Sub(r.started)
		r.metrics.RecordRun(next.String())
	}

	if r.onTransition != nil {
		r.onTransition(from, next)
	}
}

// fail records err against the current stage and moves to Failed.
func (r *run) fail(err error) (*Result, error) {
	r.result.FailedAt = r.state
	r.result.Err = err
	r.advance(Failed)
	return r.result, err
}

func (r *run) finish() (*Result, error) {
	r.advance(Done)
	return r.result, nil
}
