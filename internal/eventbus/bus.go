// Package eventbus is a synchronous publish/subscribe channel. Handlers run
// on the emitting goroutine, in subscription order, before Emit returns.
// Events emitted with no subscribers are dropped.
package eventbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/vista/internal/events"
)

// Handler receives the payload passed to Emit.
type Handler func(payload any)

// Subscription identifies one registered handler. The zero value is not a
// valid subscription and is ignored by Off.
type Subscription struct {
	id    uuid.UUID
	event events.Name
}

// Event returns the event the subscription listens to.
func (s Subscription) Event() events.Name {
	return s.event
}

type entry struct {
	id      uuid.UUID
	handler Handler
	once    bool
	removed bool
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used to report handler panics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithErrorHandler registers fn to receive handler panics converted to errors.
func WithErrorHandler(fn func(events.Name, error)) Option {
	return func(b *Bus) { b.onError = fn }
}

// WithEmitHook registers fn to observe every emission.
func WithEmitHook(fn func(name events.Name, handlers int)) Option {
	return func(b *Bus) { b.onEmit = fn }
}

// Bus is one independent event channel. Each control owns one, and the
// coordinator owns a shared one.
type Bus struct {
	name    string
	logger  *slog.Logger
	onError func(events.Name, error)
	onEmit  func(events.Name, int)

	mu       sync.Mutex
	handlers map[events.Name][]*entry
	closed   bool
}

// New creates a bus; name appears in log records.
func New(name string, opts ...Option) *Bus {
	b := &Bus{
		name:     name,
		logger:   slog.Default(),
		handlers: make(map[events.Name][]*entry),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the bus name.
func (b *Bus) Name() string {
	return b.name
}

// On subscribes h to event.
func (b *Bus) On(event events.Name, h Handler) Subscription {
	return b.add(event, h, false)
}

// Once subscribes h to the next emission of event only.
func (b *Bus) Once(event events.Name, h Handler) Subscription {
	return b.add(event, h, true)
}

func (b *Bus) add(event events.Name, h Handler, once bool) Subscription {
	if h == nil {
		return Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return Subscription{}
	}
	e := &entry{id: uuid.New(), handler: h, once: once}
	b.handlers[event] = append(b.handlers[event], e)
	return Subscription{id: e.id, event: event}
}

// Off removes the subscription. A handler removed while an emission is in
// progress is not invoked for the remainder of that emission.
func (b *Bus) Off(sub Subscription) {
	if sub.id == uuid.Nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.handlers[sub.event]
	for i, e := range list {
		if e.id == sub.id {
			e.removed = true
			b.handlers[sub.event] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.handlers[sub.event]) == 0 {
		delete(b.handlers, sub.event)
	}
}

// Emit invokes every handler subscribed to event and returns how many ran.
// A panicking handler is reported and the remaining handlers still run.
func (b *Bus) Emit(event events.Name, payload any) int {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0
	}
	snapshot := make([]*entry, len(b.handlers[event]))
	copy(snapshot, b.handlers[event])
	b.mu.Unlock()

	ran := 0
	for _, e := range snapshot {
		b.mu.Lock()
		skip := e.removed
		if e.once && !skip {
			e.removed = true
			b.removeLocked(event, e.id)
		}
		b.mu.Unlock()
		if skip {
			continue
		}
		b.invoke(event, e.handler, payload)
		ran++
	}
	if b.onEmit != nil {
		b.onEmit(event, ran)
	}
	return ran
}

func (b *Bus) removeLocked(event events.Name, id uuid.UUID) {
	list := b.handlers[event]
	for i, e := range list {
		if e.id == id {
			b.handlers[event] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.handlers[event]) == 0 {
		delete(b.handlers, event)
	}
}

func (b *Bus) invoke(event events.Name, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("handler for %s panicked: %v", event, r)
			b.logger.Error("event handler panicked", "bus", b.name, "event", string(event), "error", err)
			if b.onError != nil {
				b.onError(event, err)
			}
		}
	}()
	h(payload)
}

// Len returns the number of handlers subscribed to event.
func (b *Bus) Len(event events.Name) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[event])
}

// Close drops every handler; later On and Emit calls are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, list := range b.handlers {
		for _, e := range list {
			e.removed = true
		}
	}
	b.handlers = make(map[events.Name][]*entry)
	b.closed = true
}

// Closed reports whether Close has been called.
func (b *Bus) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Group tracks subscriptions made on possibly several buses so an owner
// can release all of them at once.
type Group struct {
	subs []groupSub
}

type groupSub struct {
	bus *Bus
	sub Subscription
}

// On subscribes through the group.
func (g *Group) On(b *Bus, event events.Name, h Handler) Subscription {
	sub := b.On(event, h)
	g.subs = append(g.subs, groupSub{bus: b, sub: sub})
	return sub
}

// Release unsubscribes everything registered through the group.
func (g *Group) Release() {
	for _, s := range g.subs {
		s.bus.Off(s.sub)
	}
	g.subs = nil
}

// Len returns the number of tracked subscriptions.
func (g *Group) Len() int {
	return len(g.subs)
}
