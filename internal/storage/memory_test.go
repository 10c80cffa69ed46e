package storage

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBackendScopesAndTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryBackend(time.Minute)
	m.now = func() time.Time { return now }

	if err := m.Set(ctx, "a", KeyToken, "t1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := m.Get(ctx, "b", KeyToken); ok {
		t.Fatalf("scope b must not see scope a")
	}
	if v, ok, _ := m.Get(ctx, "a", KeyToken); !ok || v != "t1" {
		t.Fatalf("expected t1, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := m.Get(ctx, "a", KeyToken); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestMemoryBackendTTLCountsFromLastWrite(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemoryBackend(time.Minute)
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "a", KeyToken, "t1")
	now = now.Add(40 * time.Second)
	if _, ok, _ := m.Get(ctx, "a", KeyToken); !ok {
		t.Fatalf("entry should still be live")
	}
	now = now.Add(40 * time.Second)
	if _, ok, _ := m.Get(ctx, "a", KeyToken); ok {
		t.Fatalf("a read must not extend the expiry")
	}

	_ = m.Set(ctx, "a", KeyToken, "t2")
	now = now.Add(40 * time.Second)
	_ = m.Set(ctx, "a", KeyToken, "t3")
	now = now.Add(40 * time.Second)
	if v, ok, _ := m.Get(ctx, "a", KeyToken); !ok || v != "t3" {
		t.Fatalf("a rewrite should restart the expiry, got %q %v", v, ok)
	}
}

func TestMemoryBackendPurgeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	m := NewMemoryBackend(time.Second)
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "a", "k1", "v")
	_ = m.Set(ctx, "b", "k2", "v")
	now = now.Add(time.Hour)
	_ = m.Set(ctx, "c", "k3", "v")

	n, err := m.PurgeExpired(ctx)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 purged, got %d err=%v", n, err)
	}
	if _, ok, _ := m.Get(ctx, "c", "k3"); !ok {
		t.Fatalf("fresh entry must survive purge")
	}
}

func TestObservedPublishesWrites(t *testing.T) {
	ctx := context.Background()
	o := NewObserved(NewMemoryBackend(0))

	var events []Event
	unsubscribe := o.Subscribe("a", func(ev Event) { events = append(events, ev) })

	store := Scoped(o, "a")
	_ = store.Set(ctx, KeyToken, "x")
	_ = store.Remove(ctx, KeyToken)
	_ = Scoped(o, "other").Set(ctx, KeyToken, "y")

	if len(events) != 2 {
		t.Fatalf("expected 2 events for scope a, got %d", len(events))
	}
	if events[0].Value != "x" || events[0].Removed || !events[1].Removed {
		t.Fatalf("unexpected events %+v", events)
	}

	unsubscribe()
	_ = store.Set(ctx, KeyToken, "z")
	if len(events) != 2 {
		t.Fatalf("unsubscribed listener still called")
	}
}
