package page

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrTargetMissing is returned by [Document.Apply] when the document does
// not contain one of the targets named in the update.
var ErrTargetMissing = errors.New("presentation target missing")

const subscriberBuffer = 100

// Target is the current state of one presentation target.
type Target struct {
	// ID is the stable identifier the hosting page uses for the element.
	ID string `json:"id"`

	// Text is the plain-text content (used by the status label).
	Text string `json:"text"`

	// Color is the CSS colour of the text, empty if unset.
	Color string `json:"color"`

	// HTML is the markup content (used by the room list).
	HTML string `json:"html"`

	// UpdatedAt is when the target was last written; zero if never.
	UpdatedAt time.Time `json:"updated_at"`
}

// Update is one render written to the document: a label into the status
// target and markup into the list target. An empty ListHTML clears the list.
type Update struct {
	StatusID string
	ListID   string

	Label    string
	Color    string
	ListHTML string
}

// Document is a thread-safe set of presentation targets with pub/sub of
// target changes.
type Document struct {
	mu      sync.RWMutex
	targets map[string]Target
	order   []string

	subscribers map[chan Target]struct{}
	subMu       sync.RWMutex
}

// NewDocument creates a document containing an empty target for each ID.
// Duplicate and empty IDs are ignored.
func NewDocument(ids ...string) *Document {
	d := &Document{
		targets:     make(map[string]Target, len(ids)),
		subscribers: make(map[chan Target]struct{}),
	}
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

// Add inserts an empty target. It reports false if id is empty or already
// present.
func (d *Document) Add(id string) bool {
	if id == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.targets[id]; ok {
		return false
	}
	d.targets[id] = Target{ID: id}
	d.order = append(d.order, id)
	return true
}

// Remove detaches a target. Subsequent updates naming it fail with
// [ErrTargetMissing].
func (d *Document) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.targets[id]; !ok {
		return
	}
	delete(d.targets, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Apply writes u into its two targets and notifies subscribers.
//
// Both targets must exist; otherwise nothing is written and the returned
// error wraps [ErrTargetMissing]. Notifications are sent under the write
// lock, so subscribers see concurrent applies in the order they were
// written and never a status from one apply after the list of a later one.
func (d *Document) Apply(u Update) error {
	now := time.Now()

	d.mu.Lock()
	status, ok := d.targets[u.StatusID]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrTargetMissing, u.StatusID)
	}
	list, ok := d.targets[u.ListID]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrTargetMissing, u.ListID)
	}

	status.Text = u.Label
	status.Color = u.Color
	status.UpdatedAt = now
	list.HTML = u.ListHTML
	list.UpdatedAt = now

	d.targets[status.ID] = status
	d.targets[list.ID] = list

	// notifySubscribers never blocks
	d.notifySubscribers(status)
	d.notifySubscribers(list)
	d.mu.Unlock()
	return nil
}

// Get returns the target with the given ID.
func (d *Document) Get(id string) (Target, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.targets[id]
	return t, ok
}

// Snapshot returns all targets in insertion order.
// The returned slice is a copy.
func (d *Document) Snapshot() []Target {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Target, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.targets[id])
	}
	return out
}

// Subscribe returns a channel receiving every target written after the call.
//
// The channel is buffered; when the buffer is full, changes are dropped for
// this subscriber. Callers must call [Document.Unsubscribe] when done.
func (d *Document) Subscribe() <-chan Target {
	ch := make(chan Target, subscriberBuffer)

	d.subMu.Lock()
	d.subscribers[ch] = struct{}{}
	d.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
// Safe to call more than once.
func (d *Document) Unsubscribe(ch <-chan Target) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	for subCh := range d.subscribers {
		if subCh == ch {
			delete(d.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

func (d *Document) notifySubscribers(t Target) {
	d.subMu.RLock()
	defer d.subMu.RUnlock()

	for ch := range d.subscribers {
		select {
		case ch <- t:
		default:
			// slow subscriber, drop
		}
	}
}

// SubscriberCount returns the number of open subscriptions.
func (d *Document) SubscriberCount() int {
	d.subMu.RLock()
	defer d.subMu.RUnlock()
	return len(d.subscribers)
}
