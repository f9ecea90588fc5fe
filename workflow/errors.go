package workflow

import (
	"errors"
	"sort"
	"strings"
)

// ErrOTPMismatch is returned when a submitted code does not match the pending
// challenge. The challenge is untouched and the user is re-prompted.
var ErrOTPMismatch = errors.New("workflow: incorrect OTP")

// ErrNoChallenge is returned when verification is attempted with no pending
// challenge, e.g. after the previous one was consumed.
var ErrNoChallenge = errors.New("workflow: no pending OTP challenge")

// ErrUnknownCategory is returned for a KYC upload outside the four slots.
var ErrUnknownCategory = errors.New("workflow: unknown document category")

// IncompleteStageError reports every missing or invalid field blocking a
// stage transition in one aggregate, not just the first.
type IncompleteStageError struct {
	Stage  Stage
	Fields map[string]string
}

func (e *IncompleteStageError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "workflow: stage " + string(e.Stage) + " incomplete: " + strings.Join(names, ", ")
}

func newIncomplete(stage Stage) *IncompleteStageError {
	return &IncompleteStageError{Stage: stage, Fields: make(map[string]string)}
}

func (e *IncompleteStageError) add(field, message string) {
	e.Fields[field] = message
}

func (e *IncompleteStageError) orNil() *IncompleteStageError {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
