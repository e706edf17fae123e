package model

import "fmt"

// State is the active behaviour of an AI-controlled agent.
type State int32

const (
	// StatePatrolling - agent walks its patrol route
	StatePatrolling State = iota
	// StateChasing - agent follows a detected target
	StateChasing
	// StateSearching - agent wanders around the last known target position
	StateSearching
	// StateWaiting - agent idles at a waypoint until the patrol wait elapses
	StateWaiting
	// StateAttacking - agent attacks the target once, then resumes chasing
	StateAttacking
)

// String returns human-readable state name
func (s State) String() string {
	switch s {
	case StatePatrolling:
		return "PATROLLING"
	case StateChasing:
		return "CHASING"
	case StateSearching:
		return "SEARCHING"
	case StateWaiting:
		return "WAITING"
	case StateAttacking:
		return "ATTACKING"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	for st := StatePatrolling; st <= StateAttacking; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}
