// Package events implements the in-process publish/subscribe hub that
// decouples state mutation from view refresh. Delivery is synchronous and
// in subscription order; there is no queue and no goroutine handoff.
package events

import (
	"regexp"
	"sync"
)

// Handler receives a published event by name together with its payload.
// The payload shape is fixed per event name (see the *Changed structs in
// internal/state), so handlers type-assert to exactly one type.
type Handler func(event string, payload any)

// Subscription is the handle returned by On/OnRegexp/OnAll. Go functions
// are not comparable, so unsubscription goes through the handle rather
// than the handler value.
type Subscription struct {
	id      uint64
	name    string
	re      *regexp.Regexp
	all     bool
	handler Handler
}

func (s *Subscription) matches(event string) bool {
	if s.all {
		return true
	}
	if s.re != nil {
		return s.re.MatchString(event)
	}
	return s.name == event
}

// Bus dispatches events to exact-name, regexp and catch-all subscribers.
type Bus struct {
	mu     sync.Mutex
	nextID uint64
	subs   []*Subscription
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) add(sub *Subscription) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub.id = b.nextID
	b.subs = append(b.subs, sub)
	return sub
}

// On subscribes the handler to a single event name.
func (b *Bus) On(event string, h Handler) *Subscription {
	return b.add(&Subscription{name: event, handler: h})
}

// OnRegexp subscribes the handler to every event whose name matches re,
// tested at publish time.
func (b *Bus) OnRegexp(re *regexp.Regexp, h Handler) *Subscription {
	return b.add(&Subscription{re: re, handler: h})
}

// OnAll subscribes the handler to every published event. Used for
// diagnostics sinks such as metrics and the analytics exporter.
func (b *Bus) OnAll(h Handler) *Subscription {
	return b.add(&Subscription{all: true, handler: h})
}

// Off removes a single subscription. Removing an unknown or already
// removed handle is a no-op.
func (b *Bus) Off(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// OffAll drops every subscription.
func (b *Bus) OffAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
}

// Emit delivers the event to all matching handlers before returning.
// The subscriber list is snapshotted under the lock and handlers run
// unlocked, so a handler may Emit again (the inner emit completes before
// the outer one returns) or subscribe/unsubscribe without deadlocking.
// Subscriptions made during delivery only see subsequent events.
func (b *Bus) Emit(event string, payload any) {
	b.mu.Lock()
	matched := make([]Handler, 0, len(b.subs))
	for _, s := range b.subs {
		if s.matches(event) {
			matched = append(matched, s.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range matched {
		h(event, payload)
	}
}

// Trigger returns an emitter bound to one event name, so an entity can be
// handed emit rights for that event without the whole bus.
func (b *Bus) Trigger(event string) func(payload any) {
	return func(payload any) {
		b.Emit(event, payload)
	}
}
