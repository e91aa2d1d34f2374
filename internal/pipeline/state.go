package pipeline

import "fmt"

// State is a pipeline run's position in Idle → Transcribing → Summarizing →
// Publishing → Done. Failed is reachable from any non-terminal state.
type State int

const (
	Idle State = iota
	Transcribing
	Summarizing
	Publishing
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Transcribing:
		return "transcribing"
	case Summarizing:
		return "summarizing"
	case Publishing:
		return "publishing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are allowed.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// CanTransition reports whether s may move to next. Stages may be skipped
// but never revisited.
func (s State) CanTransition(next State) bool {
	if s.Terminal() || next == Idle {
		return false
	}
	if next == Failed {
		return true
	}
	return next > s && next <= Done
}
