package model

import "fmt"

// FormStatus is the presentation state of a client working with the
// estimator. It belongs to the client; the estimator never reads it.
type FormStatus string

const (
	StatusIdle        FormStatus = "idle"
	StatusCalculating FormStatus = "calculating"
	StatusSubmitting  FormStatus = "submitting"
	StatusSucceeded   FormStatus = "succeeded"
	StatusFailed      FormStatus = "failed"
)

var formTransitions = map[FormStatus][]FormStatus{
	StatusIdle:        {StatusCalculating, StatusSubmitting},
	StatusCalculating: {StatusIdle, StatusFailed},
	StatusSubmitting:  {StatusSucceeded, StatusFailed},
	StatusSucceeded:   {StatusIdle, StatusCalculating, StatusSubmitting},
	StatusFailed:      {StatusIdle, StatusCalculating, StatusSubmitting},
}

// FormState tracks the current status and the message shown alongside it.
type FormState struct {
	Status  FormStatus
	Message string
}

// NewFormState returns a state in StatusIdle.
func NewFormState() *FormState {
	return &FormState{Status: StatusIdle}
}

// CanTransition reports whether moving from the current status to next is allowed.
func (s *FormState) CanTransition(next FormStatus) bool {
	for _, allowed := range formTransitions[s.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves to next and replaces the message.
func (s *FormState) Transition(next FormStatus, message string) error {
	if !s.CanTransition(next) {
		return fmt.Errorf("invalid status transition %s -> %s", s.Status, next)
	}
	s.Status = next
	s.Message = message
	return nil
}

// Busy reports whether an operation is in flight.
func (s *FormState) Busy() bool {
	return s.Status == StatusCalculating || s.Status == StatusSubmitting
}
