package storage

import (
	"context"
	"sync"
)

// Well-known keys shared between pages.
const (
	KeyToken         = "token"
	KeyAuthState     = "authState"
	KeyBookingData   = "bookingData"
	KeyTicketData    = "ticketData"
	KeyUserData      = "userData"
	KeyBookingWizard = "bookingWizard"
)

// Backend is a key/value store partitioned by scope (one scope per browser
// client).
type Backend interface {
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	Remove(ctx context.Context, scope, key string) error
}

// Store is a Backend bound to one scope.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type scoped struct {
	backend Backend
	scope   string
}

func Scoped(b Backend, scope string) Store {
	return scoped{backend: b, scope: scope}
}

func (s scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.backend.Get(ctx, s.scope, key)
}

func (s scoped) Set(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, s.scope, key, value)
}

func (s scoped) Remove(ctx context.Context, key string) error {
	return s.backend.Remove(ctx, s.scope, key)
}

// Event describes a completed write, like the browser "storage" event.
type Event struct {
	Scope   string
	Key     string
	Value   string
	Removed bool
}

// Observed publishes an Event to subscribers of the scope after every
// successful Set or Remove on the wrapped backend.
type Observed struct {
	Backend

	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func(Event)
}

func NewObserved(b Backend) *Observed {
	return &Observed{Backend: b, subs: map[string]map[int]func(Event){}}
}

func (o *Observed) Set(ctx context.Context, scope, key, value string) error {
	if err := o.Backend.Set(ctx, scope, key, value); err != nil {
		return err
	}
	o.publish(Event{Scope: scope, Key: key, Value: value})
	return nil
}

func (o *Observed) Remove(ctx context.Context, scope, key string) error {
	if err := o.Backend.Remove(ctx, scope, key); err != nil {
		return err
	}
	o.publish(Event{Scope: scope, Key: key, Removed: true})
	return nil
}

// Subscribe registers fn for events of scope. The returned func removes it.
func (o *Observed) Subscribe(scope string, fn func(Event)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	if o.subs[scope] == nil {
		o.subs[scope] = map[int]func(Event){}
	}
	o.subs[scope][id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subs[scope], id)
		if len(o.subs[scope]) == 0 {
			delete(o.subs, scope)
		}
	}
}

func (o *Observed) publish(ev Event) {
	o.mu.RLock()
	fns := make([]func(Event), 0, len(o.subs[ev.Scope]))
	for _, fn := range o.subs[ev.Scope] {
		fns = append(fns, fn)
	}
	o.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Purger is implemented by backends that hold expiring entries.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
