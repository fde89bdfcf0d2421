package auditlog

func (l *Log) Limit() int { return l.limit }

func (l *Log) Counts() (events, approvals, rollbacks, insights int) {
	return len(l.events.items), len(l.approvals.items), len(l.rollbacks.items), len(l.insights.items)
}
