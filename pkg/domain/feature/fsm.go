package feature

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain as untyped string constants for statekit.StateID
// compatibility. Values are kept in sync with Status constants in status.go.
const (
	StateNew        = "new"
	StateInProgress = "in_progress"
	StateInReview   = "in_review"
	StateDone       = "done"
	StateCancelled  = "cancelled"
)

// init validates at startup that FSM state constants match Status values.
func init() {
	stateMap := map[string]Status{
		StateNew:        StatusNew,
		StateInProgress: StatusInProgress,
		StateInReview:   StatusInReview,
		StateDone:       StatusDone,
		StateCancelled:  StatusCancelled,
	}

	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match Status %q - constants are out of sync", fsmState, status))
		}
	}
}

// MachineContext carries state data for transition guards.
type MachineContext struct {
	FeatureID string
	Guard     func(featureID string, event string) bool
}

// StateMachine enforces the feature status lifecycle.
type StateMachine struct {
	interpreter *statekit.Interpreter[MachineContext]
}

// NewStateMachine builds an interpreter starting at the given status. The
// guard, if provided, can veto any transition (role checks live there).
func NewStateMachine(initialState string, featureID string, guard func(string, string) bool) (*StateMachine, error) {
	if guard == nil {
		guard = func(string, string) bool { return true }
	}

	builder := statekit.NewMachine[MachineContext]("feature-machine").
		WithInitial(statekit.StateID(initialState)).
		WithContext(MachineContext{
			FeatureID: featureID,
			Guard:     guard,
		}).
		WithGuard("roleGuard", func(ctx MachineContext, e statekit.Event) bool {
			return ctx.Guard(ctx.FeatureID, string(e.Type))
		})

	builder.State(StateNew).
		On("start").Target(StateInProgress).Guard("roleGuard").
		On("cancel").Target(StateCancelled).Guard("roleGuard").
		Done()

	builder.State(StateInProgress).
		On("review").Target(StateInReview).
		On("stop").Target(StateNew).
		On("cancel").Target(StateCancelled).Guard("roleGuard").
		Done()

	builder.State(StateInReview).
		On("approve").Target(StateDone).Guard("roleGuard").
		On("reject").Target(StateInProgress).
		On("cancel").Target(StateCancelled).Guard("roleGuard").
		Done()

	builder.State(StateDone).
		On("reopen").Target(StateInProgress).
		Done()

	builder.State(StateCancelled).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &StateMachine{interpreter: interpreter}, nil
}

// Transition attempts to move the feature to a new state.
func (sm *StateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}

	// In statekit, if no transition matches or a guard fails, the state
	// stays the same.
	return fmt.Errorf("the action '%s' is not allowed while the feature is in the '%s' state", event, before)
}

// Current returns the raw state identifier.
func (sm *StateMachine) Current() string {
	return string(sm.interpreter.State().Value)
}

// CurrentStatus returns the current state as a Status value object.
func (sm *StateMachine) CurrentStatus() Status {
	return Status(sm.Current())
}

// CanTransition checks if the given event is valid for the current state.
func (sm *StateMachine) CanTransition(event string) bool {
	return sm.CurrentStatus().CanTransitionWith(event)
}

// ValidEvents returns the valid events for the current state.
func (sm *StateMachine) ValidEvents() []string {
	return sm.CurrentStatus().ValidEvents()
}

// IsFinal returns true if the current state is terminal.
func (sm *StateMachine) IsFinal() bool {
	return sm.CurrentStatus().IsFinal()
}
