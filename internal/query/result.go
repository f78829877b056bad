package query

import "charview/internal/characters"

// State is the fetch lifecycle stage observed by subscribers.
type State int

const (
	Pending State = iota
	Failed
	Succeeded
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Result is a tagged union: Message is set only when Failed, Characters only
// when Succeeded.
type Result struct {
	State      State
	Message    string
	Characters []characters.Character
}

func (r Result) Terminal() bool {
	return r.State == Failed || r.State == Succeeded
}

func pendingResult() Result { return Result{State: Pending} }

func failedResult(msg string) Result { return Result{State: Failed, Message: msg} }

func succeededResult(chars []characters.Character) Result {
	if chars == nil {
		chars = []characters.Character{}
	}
	return Result{State: Succeeded, Characters: chars}
}
