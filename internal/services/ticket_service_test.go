package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"frontend/internal/apiclient"
	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/handoff"
	"frontend/internal/storage"
)

func TestTicketLoadPrefersHandoff(t *testing.T) {
	ctx := context.Background()
	durable := storage.Scoped(storage.NewMemoryBackend(0), "device-1")
	w, _ := StartWizard(delBomDraft())
	want := w.Ticket(models.BookingResult{BookingNo: "BK1", IsPaid: true})
	if err := handoff.Put(ctx, durable, storage.KeyTicketData, want); err != nil {
		t.Fatal(err)
	}

	svc := TicketService{Durable: durable}
	for i := 0; i < 2; i++ {
		got, err := svc.Load(ctx)
		if err != nil {
			t.Fatalf("Load #%d: %v", i, err)
		}
		if got.BookingData.BookingNo != "BK1" || len(got.TravelerDetails) != 3 {
			t.Fatalf("unexpected ticket %+v", got)
		}
	}
}

func TestTicketLoadFallsBackToLatestBooking(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":4,"booking_no":"BK004","schedule_id":7,"departure":"DEL","arrival":"BOM","booking_status":"CONFIRMED","payment_status":"PAID"}`)
	})
	mux.HandleFunc("/passengers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"id":1,"title":"Ms","name":"Asha Rao","dob":"1991-01-01T00:00:00Z"}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	svc := TicketService{
		Durable: storage.Scoped(storage.NewMemoryBackend(0), "device-1"),
		API:     apiclient.New(srv.URL),
	}
	got, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.BookingData.BookingNo != "BK004" || got.BookingData.ID != 7 || !got.BookingData.IsPaid || !got.BookingData.IsConfirmed {
		t.Fatalf("unexpected booking data %+v", got.BookingData)
	}
	if len(got.TravelerDetails) != 1 || got.TravelerDetails[0].DateOfBirth != "1991-01-01" {
		t.Fatalf("unexpected travelers %+v", got.TravelerDetails)
	}
}

func TestTicketLoadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	svc := TicketService{
		Durable: storage.Scoped(storage.NewMemoryBackend(0), "device-1"),
		API:     apiclient.New(srv.URL),
	}
	if _, err := svc.Load(context.Background()); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
