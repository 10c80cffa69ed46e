package handoff

import (
	"context"
	"errors"
	"testing"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/storage"
)

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.Scoped(storage.NewMemoryBackend(0), "dev")

	draft := models.BookingDraft{Departure: "DEL", Arrival: "BOM", Passengers: models.PassengerCounts{Adults: 1}}
	if err := Put(ctx, store, storage.KeyBookingData, draft); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := Get[models.BookingDraft](ctx, store, storage.KeyBookingData)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Departure != "DEL" || got.Passengers.Adults != 1 {
		t.Fatalf("unexpected draft %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	store := storage.Scoped(storage.NewMemoryBackend(0), "dev")
	_, err := Get[models.TicketData](context.Background(), store, storage.KeyTicketData)
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
}

func TestGetRejectsDrift(t *testing.T) {
	ctx := context.Background()
	store := storage.Scoped(storage.NewMemoryBackend(0), "dev")

	cases := map[string]string{
		"bare json":     `{"departure":"DEL"}`,
		"wrong kind":    `{"version":1,"kind":"ticketData","payload":{}}`,
		"wrong version": `{"version":2,"kind":"bookingData","payload":{}}`,
		"bad payload":   `{"version":1,"kind":"bookingData","payload":{"passengers":"two"}}`,
		"not json":      `DEL-BOM`,
	}
	for name, raw := range cases {
		_ = store.Set(ctx, storage.KeyBookingData, raw)
		_, err := Get[models.BookingDraft](ctx, store, storage.KeyBookingData)
		if !domain.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestTakeRemoves(t *testing.T) {
	ctx := context.Background()
	store := storage.Scoped(storage.NewMemoryBackend(0), "dev")
	_ = Put(ctx, store, storage.KeyUserData, models.User{ID: 4})

	u, err := Take[models.User](ctx, store, storage.KeyUserData)
	if err != nil || u.ID != 4 {
		t.Fatalf("take: %+v %v", u, err)
	}
	if _, ok, _ := store.Get(ctx, storage.KeyUserData); ok {
		t.Fatalf("take must remove the key")
	}
}
