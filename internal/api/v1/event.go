package v1

import (
	"fmt"
	"strings"
	"time"
)

// Event is one recorded action performed by an agent.
// Events are immutable once the supervisor has stored them.
type Event struct {
	// ID is assigned by the supervisor at ingestion and is unique for the process lifetime.
	ID string `json:"id"`

	// Source identifies the component that produced the action (e.g. "UI", "planner").
	Source string `json:"source"`

	// Action is the producer-defined action name (e.g. "logNote", "deleteFile").
	Action string `json:"action"`

	// Payload is a structural copy of the producer's payload taken at ingestion.
	// It is nil when the submitted payload could not be cloned.
	Payload interface{} `json:"payload"`

	// Timestamp is assigned by the supervisor clock, millisecond precision,
	// non-decreasing in insertion order.
	Timestamp time.Time `json:"timestamp"`
}

// Label returns the "source:action" form used by correlation rules and audit lines.
func (e *Event) Label() string {
	return Label(e.Source, e.Action)
}

// Label joins a source and action the way signatures spell their steps.
func Label(source, action string) string {
	return source + ":" + action
}

// SubmitRequest is the producer-facing body for event submission.
type SubmitRequest struct {
	Source  string      `json:"source"`
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// Validate ensures the request names both a source and an action.
func (r *SubmitRequest) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if strings.TrimSpace(r.Action) == "" {
		return fmt.Errorf("action is required")
	}
	return nil
}

// SubmitResponse carries the opaque id of an accepted event.
type SubmitResponse struct {
	ID string `json:"id"`
}
