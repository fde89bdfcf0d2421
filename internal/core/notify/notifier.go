// Package notify fans state changes out to subscribers.
//
// Each subscriber runs on its own goroutine fed by a one-slot mailbox. A publish
// only marks the mailbox; the subscriber goroutine then pulls the latest state
// from the source. Bursts of changes therefore coalesce into a single delivery
// of the newest state and a slow subscriber never holds up the publisher.
package notify

import (
	"log/slog"
	"sync"

	v1 "github.com/aevon-lab/overseer/internal/api/v1"
	"github.com/google/uuid"
)

// Source produces the state delivered to subscribers. It is called from
// subscriber goroutines and must be safe for concurrent use.
type Source func() v1.Snapshot

// Callback receives a snapshot. It owns the value it is given.
type Callback func(v1.Snapshot)

// Notifier tracks subscribers and wakes them on Publish.
type Notifier struct {
	source Source

	mu     sync.Mutex
	subs   map[string]*subscriber
	closed bool
	wg     sync.WaitGroup
}

type subscriber struct {
	id      string
	fn      Callback
	mailbox chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New creates a Notifier that reads state from source.
func New(source Source) *Notifier {
	if source == nil {
		panic("notify: source must not be nil")
	}
	return &Notifier{
		source: source,
		subs:   make(map[string]*subscriber),
	}
}

// Subscription identifies one registered callback.
type Subscription struct {
	ID string
	n  *Notifier
}

// Unsubscribe stops deliveries. It is idempotent. A delivery already in progress
// is allowed to finish.
func (s Subscription) Unsubscribe() {
	if s.n != nil {
		s.n.remove(s.ID)
	}
}

// Subscribe registers fn and schedules an immediate delivery of the current
// state. After Close it returns an inert subscription.
func (n *Notifier) Subscribe(fn Callback) Subscription {
	if fn == nil {
		panic("notify: callback must not be nil")
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return Subscription{}
	}

	sub := &subscriber{
		id:      uuid.NewString(),
		fn:      fn,
		mailbox: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	sub.mailbox <- struct{}{}
	n.subs[sub.id] = sub

	n.wg.Add(1)
	go n.run(sub)

	slog.Debug("[Notify] Subscriber added", "subscription_id", sub.id, "subscribers", len(n.subs))
	return Subscription{ID: sub.id, n: n}
}

// Publish wakes every subscriber. It never blocks.
func (n *Notifier) Publish() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, sub := range n.subs {
		select {
		case sub.mailbox <- struct{}{}:
		default:
			// already pending; the next delivery will see the latest state
		}
	}
}

// Close unsubscribes everyone and waits for in-flight deliveries to return.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	subs := n.subs
	n.subs = make(map[string]*subscriber)
	n.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
	n.wg.Wait()
}

func (n *Notifier) remove(id string) {
	n.mu.Lock()
	sub, ok := n.subs[id]
	delete(n.subs, id)
	n.mu.Unlock()

	if ok {
		sub.stop()
		slog.Debug("[Notify] Subscriber removed", "subscription_id", id)
	}
}

func (n *Notifier) run(sub *subscriber) {
	defer n.wg.Done()
	for {
		select {
		case <-sub.done:
			return
		case <-sub.mailbox:
		}

		// Unsubscribe may race with a pending wake-up.
		select {
		case <-sub.done:
			return
		default:
		}
		sub.deliver(n.source())
	}
}

func (s *subscriber) stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *subscriber) deliver(snap v1.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Notify] Subscriber panicked", "subscription_id", s.id, "panic", r)
		}
	}()
	s.fn(snap)
}
