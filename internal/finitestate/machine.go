// Package finitestate wraps go-fsm with the lifecycle states a step run moves
// through.
package finitestate

import (
	"log/slog"

	"github.com/robbyt/go-fsm"
)

const (
	StatusNew      = fsm.StatusNew
	StatusBooting  = fsm.StatusBooting
	StatusRunning  = fsm.StatusRunning
	StatusStopping = fsm.StatusStopping
	StatusStopped  = fsm.StatusStopped
	StatusError    = fsm.StatusError
	StatusUnknown  = fsm.StatusUnknown
)

// TypicalTransitions is a set of standard transitions for a finite state machine.
var TypicalTransitions = fsm.TypicalTransitions

// Machine is the subset of the state machine a run needs.
type Machine interface {
	// Transition moves to state if the transition is allowed from the current state.
	Transition(state string) error

	// SetState moves to state unconditionally.
	SetState(state string) error

	// GetState returns the current state.
	GetState() string
}

// New creates a machine in StatusNew using the typical transitions.
func New(handler slog.Handler) (Machine, error) {
	machine, err := fsm.New(handler, StatusNew, TypicalTransitions)
	if err != nil {
		return nil, err
	}
	return machine, nil
}
