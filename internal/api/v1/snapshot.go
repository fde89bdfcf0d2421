package v1

// Snapshot is an independent copy of the supervisor state. Nothing in it aliases
// live state, so callers may mutate or serialize it freely.
type Snapshot struct {
	Events    []Event    `json:"events"`
	Approvals []Approval `json:"approvals"`
	Rollbacks []Rollback `json:"rollbacks"`
	Insights  []Insight  `json:"insights"`
	Policy    Policy     `json:"policy"`
}
