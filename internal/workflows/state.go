// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"strings"
	"sync"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"

	"github.com/probelab/scanprep/internal/workflows/steps"
)

// RunState is the phase a provisioning run has reached. A run moves
// forward through the check, update, install and verify phases and ends in
// exactly one terminal state.
type RunState string

const (
	StateStart       RunState = "START"
	StateChecked     RunState = "CHECKED"
	StateUpdated     RunState = "UPDATED"
	StateInstalled   RunState = "INSTALLED"
	StateVerified    RunState = "VERIFIED"
	StateDone        RunState = "DONE"
	StateFailed      RunState = "FAILED"
	StateInterrupted RunState = "INTERRUPTED"
)

// legalTransitions is the forward edge set of the run state machine.
// Failure and interruption are reachable from every non terminal state and
// are handled in CanTransitionTo rather than listed per state.
var legalTransitions = map[RunState][]RunState{
	StateStart:   {StateChecked},
	StateChecked: {StateUpdated},
	// a run with no target packages goes straight to done after the update
	StateUpdated:   {StateInstalled, StateDone},
	StateInstalled: {StateVerified},
	// verified loops back to installed for the next target package
	StateVerified: {StateInstalled, StateDone},
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s RunState) IsTerminal() bool {
	return s == StateDone || s == StateFailed || s == StateInterrupted
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s RunState) CanTransitionTo(next RunState) bool {
	if s.IsTerminal() {
		return false
	}

	if next == StateFailed || next == StateInterrupted {
		return true
	}

	for _, candidate := range legalTransitions[s] {
		if candidate == next {
			return true
		}
	}

	return false
}

// RunTracker holds the current run state and enforces legal transitions.
// It is safe for concurrent use; the signal handler marks interruption from
// a different goroutine than the workflow.
type RunTracker struct {
	mu      sync.Mutex
	current RunState
}

// NewRunTracker returns a tracker positioned at the start state.
func NewRunTracker() *RunTracker {
	return &RunTracker{current: StateStart}
}

// Current returns the state the run is in.
func (t *RunTracker) Current() RunState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Advance moves the run to next, rejecting transitions the state machine
// does not allow.
func (t *RunTracker) Advance(next RunState) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.current.CanTransitionTo(next) {
		return errorx.IllegalState.New("illegal run state transition %s -> %s", t.current, next)
	}

	logx.As().Debug().
		Str("from", string(t.current)).
		Str("to", string(next)).
		Msg("run state transition")

	t.current = next
	return nil
}

// Fail marks the run failed. Calling it on an already terminal run is a
// no-op so late failures during finalization cannot panic.
func (t *RunTracker) Fail() {
	_ = t.Advance(StateFailed)
}

// Interrupt marks the run interrupted by a signal.
func (t *RunTracker) Interrupt() {
	_ = t.Advance(StateInterrupted)
}

// stateForStep maps a completed workflow step to the run state it
// establishes. Steps without a phase of their own (the privilege check runs
// inside the check phase) report no state.
func stateForStep(stepId string) (RunState, bool) {
	switch {
	case stepId == steps.StepCheckOS:
		return StateChecked, true
	case stepId == steps.StepUpgradeSystem:
		return StateUpdated, true
	case strings.HasPrefix(stepId, steps.StepInstallPrefix):
		return StateInstalled, true
	case strings.HasPrefix(stepId, steps.StepVerifyPrefix):
		return StateVerified, true
	default:
		return "", false
	}
}

// AdvanceForStep moves the tracker forward for a successfully completed
// workflow step.
func (t *RunTracker) AdvanceForStep(stepId string) error {
	next, ok := stateForStep(stepId)
	if !ok {
		return nil
	}

	return t.Advance(next)
}
