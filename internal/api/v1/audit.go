package v1

import "time"

// Approval records that an event was approved, either by policy or by a person.
// EventID is not validated against the retained events: an approval may outlive
// its event once the event window has been trimmed.
type Approval struct {
	EventID    string    `json:"event_id"`
	ApprovedBy string    `json:"approved_by"`
	Timestamp  time.Time `json:"timestamp"`
	PolicyTag  string    `json:"policy_tag,omitempty"`
	Auto       bool      `json:"auto"`
}

// Rollback is an additional audit entry; it never removes earlier entries.
type Rollback struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Reason    string    `json:"reason"`
}

// InsightKind classifies derived insights.
type InsightKind string

const (
	InsightTemporal       InsightKind = "temporal"
	InsightPolicy         InsightKind = "policy"
	InsightRecommendation InsightKind = "recommendation"
)

// Insight is a human-readable note about a detected pattern or a decision.
type Insight struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Text      string      `json:"text"`
	Kind      InsightKind `json:"kind"`
}

// ApproveRequest is the body of a manual approval.
type ApproveRequest struct {
	ApprovedBy string `json:"approved_by"`
}

// RollbackRequest is the body of a rollback. Reason is optional.
type RollbackRequest struct {
	Reason string `json:"reason"`
}
