package session

import (
	"errors"
	"fmt"
	"slices"
)

type State string

const (
	StateWelcome   State = "welcome"
	StateProfiling State = "profiling"
	StateUpload    State = "upload"
	StateAnalysis  State = "analysis"
	StateChat      State = "chat"
)

var ErrInvalidTransition = errors.New("invalid flow transition")

var transitions = map[State][]State{
	StateWelcome:   {StateProfiling, StateChat},
	StateProfiling: {StateUpload},
	StateUpload:    {StateAnalysis},
	StateAnalysis:  {StateChat, StateWelcome},
	StateChat:      {StateWelcome},
}

func (s State) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the flow allows moving from s to next.
func (s State) CanTransition(next State) bool {
	return slices.Contains(transitions[s], next)
}

func checkTransition(from, to State) error {
	if !from.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
