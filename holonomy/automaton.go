package holonomy

import (
	"errors"
	"fmt"
)

// ErrIllegalStep is returned for a step which the automaton forbids
// in the current state.
var ErrIllegalStep = errors.New("illegal step")

// State is the state of the legal-step automaton. The zero value is the state
// of a tile reached from the root tile; the root itself has RootState.
type State struct {
	HasFirstLeftOccurred bool // has a left step been taken yet?
	RightBeforeLeft      bool // has a right step occurred since the last left step?
	WasLastStepRight     bool
	root                 bool
}

// RootState is the distinguished initial state of the root tile.
func RootState() State {
	return State{root: true}
}

// IsRoot is a predicate: is s the state of the root tile?
func (s State) IsRoot() bool {
	return s.root
}

// Legal is a predicate: may step be taken from a tile in state s?
// The root tile only allows DontCare steps, all other tiles only regular ones.
func (s State) Legal(step Step) bool {
	if s.root {
		return step == DontCare
	}
	switch step {
	case F:
		return true
	case R:
		return !s.WasLastStepRight
	case L:
		return !s.HasFirstLeftOccurred || s.RightBeforeLeft
	}
	return false
}

// Next returns the state after taking step. It fails with ErrIllegalStep
// if the step is not legal in s.
func (s State) Next(step Step) (State, error) {
	if !s.Legal(step) {
		return s, fmt.Errorf("%w: %s from %s", ErrIllegalStep, step, s)
	}
	switch step {
	case F:
		s.WasLastStepRight = false
	case R:
		s.RightBeforeLeft = true
		s.WasLastStepRight = true
	case L:
		s = State{HasFirstLeftOccurred: true}
	case DontCare:
		s = State{}
	}
	return s, nil
}

func (s State) String() string {
	if s.root {
		return "state<root>"
	}
	b := func(x bool) byte {
		if x {
			return '1'
		}
		return '0'
	}
	return fmt.Sprintf("state<%c%c%c>", b(s.HasFirstLeftOccurred), b(s.RightBeforeLeft),
		b(s.WasLastStepRight))
}
