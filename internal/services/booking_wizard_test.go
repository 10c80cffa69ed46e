package services

import (
	"testing"
	"time"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
)

func delBomDraft() models.BookingDraft {
	return models.BookingDraft{
		Departure:      "DEL",
		Arrival:        "BOM",
		TotalPrice:     "15000",
		FlightSchedule: models.FlightSchedule{ID: 7, DepartureTime: "10:00", ArrivalTime: "12:00"},
		SelectedDate:   "2024-05-01",
		Passengers:     models.PassengerCounts{Adults: 2, Children: 1},
	}
}

func validTraveler(name string) models.TravelerDetail {
	return models.TravelerDetail{
		Title:       "Mr",
		FullName:    name,
		DateOfBirth: "1990-04-12",
		Email:       "traveler@example.com",
		Phone:       "9876543210",
		Address:     "12 MG Road, Bengaluru",
	}
}

func TestStartWizardSlotsAndID(t *testing.T) {
	w, err := StartWizard(delBomDraft())
	if err != nil {
		t.Fatalf("StartWizard: %v", err)
	}
	if w.Step != StepReview {
		t.Fatalf("expected review step, got %s", w.Step)
	}
	if len(w.Travelers) != 3 {
		t.Fatalf("expected 3 traveler slots, got %d", len(w.Travelers))
	}
	if w.Booking.ID != 7 || w.Booking.DepartureTime != "10:00" {
		t.Fatalf("unexpected booking data %+v", w.Booking)
	}
}

func TestStartWizardRejectsEmptyParty(t *testing.T) {
	d := delBomDraft()
	d.Passengers = models.PassengerCounts{}
	if _, err := StartWizard(d); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	d.Passengers = models.PassengerCounts{Adults: 2, Infants: -1}
	if _, err := StartWizard(d); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative count, got %v", err)
	}
}

func TestStepTransitionsClamp(t *testing.T) {
	w, _ := StartWizard(delBomDraft())
	w.Prev()
	if w.Step != StepReview {
		t.Fatalf("prev on first step moved to %s", w.Step)
	}
	for i := 0; i < 5; i++ {
		w.Next()
	}
	if w.Step != StepPayment {
		t.Fatalf("next past last step gave %s", w.Step)
	}
	w.Prev()
	w.Prev()
	w.Prev()
	if w.Step != StepReview {
		t.Fatalf("expected review after prevs, got %s", w.Step)
	}
}

func TestValidateTravelers(t *testing.T) {
	old := today
	today = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local) }
	defer func() { today = old }()

	cases := []struct {
		name  string
		edit  func(*models.TravelerDetail)
		field string
	}{
		{"bad title", func(d *models.TravelerDetail) { d.Title = "Sir" }, "travelerDetails[0].title"},
		{"missing name", func(d *models.TravelerDetail) { d.FullName = "" }, "travelerDetails[0].fullName"},
		{"future dob", func(d *models.TravelerDetail) { d.DateOfBirth = "2024-06-01" }, "travelerDetails[0].dateOfBirth"},
		{"bad dob", func(d *models.TravelerDetail) { d.DateOfBirth = "12/04/1990" }, "travelerDetails[0].dateOfBirth"},
		{"bad email", func(d *models.TravelerDetail) { d.Email = "nope" }, "travelerDetails[0].email"},
		{"short phone", func(d *models.TravelerDetail) { d.Phone = "98765" }, "travelerDetails[0].phone"},
		{"bad gst", func(d *models.TravelerDetail) { d.GSTNumber = "12345" }, "travelerDetails[0].gstNumber"},
	}
	for _, tc := range cases {
		d := validTraveler("Asha Rao")
		tc.edit(&d)
		err := ValidateTravelers([]models.TravelerDetail{d})
		var verr domain.ValidationError
		if !asValidation(err, &verr) || verr.Field != tc.field {
			t.Fatalf("%s: expected error on %s, got %v", tc.name, tc.field, err)
		}
	}

	ok := validTraveler("Asha Rao")
	ok.GSTNumber = "27AAPFU0939F1ZV"
	if err := ValidateTravelers([]models.TravelerDetail{ok}); err != nil {
		t.Fatalf("valid traveler rejected: %v", err)
	}
}

func TestAdvanceFromTravelers(t *testing.T) {
	w, _ := StartWizard(delBomDraft())
	travelers := []models.TravelerDetail{validTraveler("A One"), validTraveler("B Two"), validTraveler("C Three")}

	if err := w.AdvanceFromTravelers(travelers); !domain.IsConflict(err) {
		t.Fatalf("expected conflict on review step, got %v", err)
	}
	w.Next()
	if err := w.AdvanceFromTravelers(travelers[:2]); !domain.IsValidation(err) {
		t.Fatalf("expected count mismatch, got %v", err)
	}
	bad := append([]models.TravelerDetail{}, travelers...)
	bad[2].Phone = ""
	if err := w.AdvanceFromTravelers(bad); !domain.IsValidation(err) || w.Step != StepTravelerInfo {
		t.Fatalf("invalid travelers should not advance: %v step=%s", err, w.Step)
	}
	if err := w.AdvanceFromTravelers(travelers); err != nil {
		t.Fatalf("AdvanceFromTravelers: %v", err)
	}
	if w.Step != StepPayment || w.Travelers[1].FullName != "B Two" {
		t.Fatalf("unexpected state %+v", w)
	}
}

func asValidation(err error, target *domain.ValidationError) bool {
	v, ok := err.(domain.ValidationError)
	if ok {
		*target = v
	}
	return ok
}
