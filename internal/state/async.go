// Package state holds the storefront's application state and its pure reducers.
//
// Every slice exposes a closed set of actions (a sealed interface) and a reducer
// that returns a new value without mutating its input. Reducers panic on an
// action type they do not know: that is a programming error, not a runtime one.
package state

import (
	"fmt"
	"strings"
)

// Status is the lifecycle of one async operation
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Op records the last outcome of an async operation next to the cached data
type Op struct {
	Status Status `json:"status"`
	Err    string `json:"error,omitempty"`
}

func pending() Op { return Op{Status: StatusPending} }

func succeeded() Op { return Op{Status: StatusSucceeded} }

func failed(msg string) Op { return Op{Status: StatusFailed, Err: msg} }

func (o Op) IsPending() bool { return o.Status == StatusPending }

func (o Op) IsFailed() bool { return o.Status == StatusFailed }

// Action is anything that can be dispatched to the store.
// Name follows the "<slice>/<operation>[/<phase>]" convention.
type Action interface {
	Name() string
}

// Phase of an async action, taken from its name
type Phase string

const (
	PhaseNone      Phase = ""
	PhasePending   Phase = "pending"
	PhaseFulfilled Phase = "fulfilled"
	PhaseRejected  Phase = "rejected"
)

// PhaseOf returns the async phase encoded in the action name
func PhaseOf(a Action) Phase {
	name := a.Name()
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return PhaseNone
	}
	switch p := Phase(name[idx+1:]); p {
	case PhasePending, PhaseFulfilled, PhaseRejected:
		return p
	}
	return PhaseNone
}

// Failure is implemented by rejected actions
type Failure interface {
	Action
	Error() string
}

func unknownAction(slice string, a Action) {
	panic(fmt.Sprintf("state: %s reducer received unknown action %T", slice, a))
}
