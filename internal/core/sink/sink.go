// Package sink delivers audit lines to durable, external stores. Sinks are
// advisory: the supervisor logs their failures and carries on.
package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/aevon-lab/overseer/internal/core/payload"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("sink is closed")

// Kinds of audit entries.
const (
	KindApproval = "approval"
	KindRollback = "rollback"
)

// TimestampLayout is the ISO-8601 form used in audit lines.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Entry is one audit line plus the fields structured stores index on.
type Entry struct {
	Kind      string
	EventID   string
	Line      string
	Timestamp time.Time
}

// Sink receives audit entries. Implementations must be safe for concurrent use.
type Sink interface {
	Write(ctx context.Context, entry Entry) error
	Close() error
}

// ApprovalEntry renders an approval of evt:
//
//	[APPROVED policy:low-risk] UI:logNote {"text":"hi"} @ 2026-02-11T10:00:00.000Z
//
// Manual approvals carry no tag and render as "[APPROVED] ...".
func ApprovalEntry(evt v1.Event, a v1.Approval) Entry {
	head := "[APPROVED]"
	if a.PolicyTag != "" {
		head = fmt.Sprintf("[APPROVED %s]", a.PolicyTag)
	}
	return Entry{
		Kind:    KindApproval,
		EventID: evt.ID,
		Line: fmt.Sprintf("%s %s %s @ %s",
			head, evt.Label(), payload.Preview(evt.Payload), a.Timestamp.UTC().Format(TimestampLayout)),
		Timestamp: a.Timestamp,
	}
}

// RollbackEntry renders a rollback of evt:
//
//	[ROLLBACK] UI:deleteFile for event 6f1c... — wrong file
func RollbackEntry(evt v1.Event, r v1.Rollback) Entry {
	return Entry{
		Kind:      KindRollback,
		EventID:   evt.ID,
		Line:      fmt.Sprintf("[ROLLBACK] %s for event %s — %s", evt.Label(), evt.ID, r.Reason),
		Timestamp: r.Timestamp,
	}
}

// Nop discards every entry.
type Nop struct{}

func (Nop) Write(context.Context, Entry) error { return nil }
func (Nop) Close() error                       { return nil }
