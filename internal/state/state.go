// internal/state/state.go
package state

// State is one phase of a simulation session.
type State interface {
	Enter()
	Update(deltaTime float64)
	Exit()
}

// StateMachine runs the current state and handles switching.
type StateMachine struct {
	current State
}

// NewStateMachine returns a machine with no current state.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// SetState exits the current state and enters newState.
func (sm *StateMachine) SetState(newState State) {
	if sm.current != nil {
		sm.current.Exit()
	}
	sm.current = newState
	if sm.current != nil {
		sm.current.Enter()
	}
}

// Update advances the current state.
func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}

func (sm *StateMachine) Current() State {
	return sm.current
}
