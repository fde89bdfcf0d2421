package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 2, 11, 10, 0, 0, 123_000_000, time.UTC)

func TestApprovalEntry(t *testing.T) {
	evt := v1.Event{ID: "evt-1", Source: "UI", Action: "logNote", Payload: map[string]interface{}{"text": "hi"}}

	auto := ApprovalEntry(evt, v1.Approval{EventID: "evt-1", Timestamp: at, PolicyTag: "policy:low-risk", Auto: true})
	require.Equal(t, `[APPROVED policy:low-risk] UI:logNote {"text":"hi"} @ 2026-02-11T10:00:00.123Z`, auto.Line)
	require.Equal(t, KindApproval, auto.Kind)
	require.Equal(t, "evt-1", auto.EventID)

	manual := ApprovalEntry(evt, v1.Approval{EventID: "evt-1", Timestamp: at, ApprovedBy: "alice"})
	require.True(t, strings.HasPrefix(manual.Line, "[APPROVED] UI:logNote "))
}

func TestApprovalEntry_TruncatesPayload(t *testing.T) {
	evt := v1.Event{ID: "evt-1", Source: "UI", Action: "logNote", Payload: strings.Repeat("x", 500)}

	entry := ApprovalEntry(evt, v1.Approval{Timestamp: at})

	body := strings.TrimPrefix(entry.Line, "[APPROVED] UI:logNote ")
	body = strings.TrimSuffix(body, " @ 2026-02-11T10:00:00.123Z")
	require.Len(t, body, 160)
}

func TestRollbackEntry(t *testing.T) {
	evt := v1.Event{ID: "evt-9", Source: "agent", Action: "deleteFile"}

	entry := RollbackEntry(evt, v1.Rollback{EventID: "evt-9", Timestamp: at, Reason: "wrong file"})

	require.Equal(t, "[ROLLBACK] agent:deleteFile for event evt-9 — wrong file", entry.Line)
	require.Equal(t, KindRollback, entry.Kind)
}

// recordingSink collects entries; it can be told to fail or to block.
type recordingSink struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	gate    chan struct{}
	closed  bool
}

func (r *recordingSink) Write(_ context.Context, e Entry) error {
	if r.gate != nil {
		<-r.gate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return r.err
}

func (r *recordingSink) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingSink) lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Line
	}
	return out
}

func TestAsync_DeliversInOrderAndDrainsOnClose(t *testing.T) {
	next := &recordingSink{}
	a := NewAsync(next, 16, time.Second)

	for _, line := range []string{"a", "b", "c"} {
		require.NoError(t, a.Write(context.Background(), Entry{Line: line}))
	}
	require.NoError(t, a.Close())

	require.Equal(t, []string{"a", "b", "c"}, next.lines())
	require.True(t, next.closed)
	require.ErrorIs(t, a.Write(context.Background(), Entry{Line: "late"}), ErrClosed)
	require.NoError(t, a.Close())
}

func TestAsync_FullQueueDoesNotBlock(t *testing.T) {
	next := &recordingSink{gate: make(chan struct{})}
	a := NewAsync(next, 1, time.Second)

	var errs []error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			errs = append(errs, a.Write(context.Background(), Entry{Line: "x"}))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Write blocked on a stalled sink")
	}

	var full int
	for _, err := range errs {
		if errors.Is(err, ErrQueueFull) {
			full++
		}
	}
	require.GreaterOrEqual(t, full, 3)

	close(next.gate)
	require.NoError(t, a.Close())
}

func TestAsync_FailuresAreSwallowed(t *testing.T) {
	next := &recordingSink{err: errors.New("downstream unavailable")}
	a := NewAsync(next, 4, time.Second)

	require.NoError(t, a.Write(context.Background(), Entry{Line: "a"}))
	require.NoError(t, a.Write(context.Background(), Entry{Line: "b"}))
	require.NoError(t, a.Close())

	require.Equal(t, []string{"a", "b"}, next.lines())
}

func TestFile_AppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Write(context.Background(), Entry{Line: "first"}))
	require.NoError(t, f.Write(context.Background(), Entry{Line: "second"}))
	require.NoError(t, f.Close())
	require.ErrorIs(t, f.Write(context.Background(), Entry{Line: "late"}), ErrClosed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first\nsecond\n", string(data))
}

func TestMulti_WritesToAllAndJoinsErrors(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("boom")}
	m := Multi{failing, ok}

	err := m.Write(context.Background(), Entry{Line: "x"})
	require.ErrorContains(t, err, "boom")
	require.Equal(t, []string{"x"}, ok.lines())
	require.Equal(t, []string{"x"}, failing.lines())

	require.NoError(t, m.Close())
	require.True(t, ok.closed)
	require.True(t, failing.closed)
}

func TestNop(t *testing.T) {
	require.NoError(t, Nop{}.Write(context.Background(), Entry{}))
	require.NoError(t, Nop{}.Close())
}
