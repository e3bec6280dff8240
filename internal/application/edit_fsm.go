package application

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Section edit lifecycle states.
const (
	editStateIdle          = "idle"
	editStateRequesting    = "requesting"
	editStateParsing       = "parsing"
	editStateCanonicalized = "canonicalized"
	editStateDone          = "done"
	editStateEmpty         = "empty_content"
	editStateParseFailed   = "parse_failed"
	editStateFailed        = "failed"
)

// Section edit events.
const (
	editEventRequest   = "request"
	editEventReceive   = "receive"
	editEventEmpty     = "empty"
	editEventParseOK   = "parse_ok"
	editEventParseFail = "parse_fail"
	editEventFinish    = "finish"
	editEventFail      = "fail"
)

type editContext struct{}

// editStateMachine tracks the section edit protocol:
// idle -> requesting -> parsing -> canonicalized -> done, with empty_content,
// parse_failed and failed as terminal error states.
type editStateMachine struct {
	interpreter *statekit.Interpreter[editContext]
}

func newEditStateMachine() (*editStateMachine, error) {
	builder := statekit.NewMachine[editContext]("section-edit").
		WithInitial(statekit.StateID(editStateIdle)).
		WithContext(editContext{})

	builder.State(editStateIdle).
		On(editEventRequest).Target(editStateRequesting).
		Done()

	builder.State(editStateRequesting).
		On(editEventReceive).Target(editStateParsing).
		On(editEventEmpty).Target(editStateEmpty).
		On(editEventFail).Target(editStateFailed).
		Done()

	builder.State(editStateParsing).
		On(editEventParseOK).Target(editStateCanonicalized).
		On(editEventParseFail).Target(editStateParseFailed).
		Done()

	builder.State(editStateCanonicalized).
		On(editEventFinish).Target(editStateDone).
		Done()

	builder.State(editStateDone).Done()
	builder.State(editStateEmpty).Done()
	builder.State(editStateParseFailed).Done()
	builder.State(editStateFailed).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build edit state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &editStateMachine{interpreter: interpreter}, nil
}

// To sends an event; invalid events for the current state leave it unchanged.
func (m *editStateMachine) To(event string) {
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
}

// Current returns the machine's current state.
func (m *editStateMachine) Current() string {
	return string(m.interpreter.State().Value)
}
