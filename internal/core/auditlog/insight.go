package auditlog

import (
	"time"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/google/uuid"
)

// NewInsight stamps a fresh id on an insight.
func NewInsight(kind v1.InsightKind, text string, at time.Time) v1.Insight {
	return v1.Insight{
		ID:        uuid.NewString(),
		Timestamp: at,
		Text:      text,
		Kind:      kind,
	}
}
