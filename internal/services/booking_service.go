package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/handoff"
	"frontend/internal/storage"
	"frontend/internal/utils"
)

const (
	FlightSearchRoute = "/flight-search"
	TicketRoute       = "/ticket"
)

// BookingService drives the booking wizard for one browser client. Durable
// holds the flight-selection draft and the ticket handoff; Session holds the
// in-progress wizard.
type BookingService struct {
	Durable   storage.Store
	Session   storage.Store
	Payment   PaymentStep
	RequestID string
}

// SaveDraft is the flight-selection hand-in that makes the wizard mountable.
func (s BookingService) SaveDraft(ctx context.Context, draft models.BookingDraft) error {
	draft.Departure = strings.TrimSpace(draft.Departure)
	draft.Arrival = strings.TrimSpace(draft.Arrival)
	if draft.Departure == "" || draft.Arrival == "" {
		return domain.ValidationError{Field: "route", Msg: "departure and arrival are required"}
	}
	if strings.EqualFold(draft.Departure, draft.Arrival) {
		return domain.ValidationError{Field: "route", Msg: "departure and arrival must differ"}
	}
	if _, err := StartWizard(draft); err != nil {
		return err
	}
	amount, err := utils.ParseAmount(draft.TotalPrice)
	if err != nil {
		return domain.ValidationError{Field: "totalPrice", Msg: "must be a decimal amount", Err: err}
	}
	if amount <= 0 {
		return domain.ValidationError{Field: "totalPrice", Msg: "must be greater than zero"}
	}
	if err := handoff.Put(ctx, s.Durable, storage.KeyBookingData, draft); err != nil {
		return domain.InternalError{Msg: "could not save booking draft", Err: err}
	}
	// a new selection restarts the wizard
	if err := s.Session.Remove(ctx, storage.KeyBookingWizard); err != nil {
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "save_draft", fmt.Sprintf("schedule_id=%d passengers=%d", draft.FlightSchedule.ID, draft.Passengers.Total()))
	return nil
}

// Mount checks the flow's preconditions and returns the wizard, resuming one
// already in progress for the same schedule.
func (s BookingService) Mount(ctx context.Context, token string) (WizardState, error) {
	if strings.TrimSpace(token) == "" {
		return WizardState{}, domain.PreconditionError{Reason: "please sign in to book a flight", Redirect: FlightSearchRoute}
	}
	draft, err := handoff.Get[models.BookingDraft](ctx, s.Durable, storage.KeyBookingData)
	switch {
	case errors.Is(err, handoff.ErrMissing):
		return WizardState{}, domain.PreconditionError{Reason: "no booking data found, please select a flight", Redirect: FlightSearchRoute}
	case domain.IsValidation(err):
		utils.LogEvent(s.RequestID, "booking", "mount", "unreadable booking data: "+err.Error())
		return WizardState{}, domain.PreconditionError{Reason: "booking data is invalid, please select a flight again", Redirect: FlightSearchRoute}
	case err != nil:
		return WizardState{}, domain.InternalError{Err: err}
	}

	if w, err := handoff.Get[WizardState](ctx, s.Session, storage.KeyBookingWizard); err == nil && w.Booking.ID == draft.FlightSchedule.ID {
		return w, nil
	}

	w, err := StartWizard(draft)
	if err != nil {
		return WizardState{}, domain.PreconditionError{Reason: err.Error(), Redirect: FlightSearchRoute}
	}
	if err := s.save(ctx, w); err != nil {
		return WizardState{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "mount", fmt.Sprintf("schedule_id=%d slots=%d", w.Booking.ID, len(w.Travelers)))
	return w, nil
}

func (s BookingService) Next(ctx context.Context, token string) (WizardState, error) {
	return s.update(ctx, token, func(w *WizardState) error {
		w.Next()
		return nil
	})
}

func (s BookingService) Prev(ctx context.Context, token string) (WizardState, error) {
	return s.update(ctx, token, func(w *WizardState) error {
		w.Prev()
		return nil
	})
}

func (s BookingService) SaveTravelers(ctx context.Context, token string, details []models.TravelerDetail) (WizardState, error) {
	return s.update(ctx, token, func(w *WizardState) error {
		return w.AdvanceFromTravelers(details)
	})
}

// Pay settles the booking on the payment step and confirms it. The returned
// route is where the client goes next.
func (s BookingService) Pay(ctx context.Context, token string, details PaymentDetails) (models.TicketData, string, error) {
	w, err := s.Mount(ctx, token)
	if err != nil {
		return models.TicketData{}, "", err
	}
	if w.Step != StepPayment {
		return models.TicketData{}, "", domain.ConflictError{Resource: "booking", Msg: fmt.Sprintf("payment is not possible on the %s step", w.Step)}
	}
	if err := ValidateTravelers(w.Travelers); err != nil {
		return models.TicketData{}, "", err
	}
	if s.Payment == nil {
		return models.TicketData{}, "", domain.InternalError{Msg: "payment step is not configured"}
	}
	result, err := s.Payment.Pay(ctx, PaymentInput{Booking: w.Booking, Travelers: w.Travelers, Details: details})
	if err != nil {
		return models.TicketData{}, "", err
	}
	return s.confirm(ctx, w, result)
}

// Confirm hands a settled booking to the ticket page.
func (s BookingService) Confirm(ctx context.Context, token string, result models.BookingResult) (models.TicketData, string, error) {
	w, err := s.Mount(ctx, token)
	if err != nil {
		return models.TicketData{}, "", err
	}
	if w.Step != StepPayment {
		return models.TicketData{}, "", domain.ConflictError{Resource: "booking", Msg: "booking is not ready for confirmation"}
	}
	return s.confirm(ctx, w, result)
}

func (s BookingService) confirm(ctx context.Context, w WizardState, result models.BookingResult) (models.TicketData, string, error) {
	ticket := w.Ticket(result)
	// ticketData must be stored before the client is sent to the ticket page
	if err := handoff.Put(ctx, s.Durable, storage.KeyTicketData, ticket); err != nil {
		return models.TicketData{}, "", domain.InternalError{Msg: "could not save ticket", Err: err}
	}
	if err := s.Session.Remove(ctx, storage.KeyBookingWizard); err != nil {
		utils.LogEvent(s.RequestID, "booking", "confirm", "clear wizard failed: "+err.Error())
	}
	utils.LogEvent(s.RequestID, "booking", "confirm", fmt.Sprintf("booking_no=%s travelers=%d paid=%t", result.BookingNo, len(ticket.TravelerDetails), result.IsPaid))
	return ticket, TicketRoute, nil
}

func (s BookingService) update(ctx context.Context, token string, fn func(*WizardState) error) (WizardState, error) {
	w, err := s.Mount(ctx, token)
	if err != nil {
		return WizardState{}, err
	}
	if err := fn(&w); err != nil {
		return w, err
	}
	if err := s.save(ctx, w); err != nil {
		return WizardState{}, err
	}
	return w, nil
}

func (s BookingService) save(ctx context.Context, w WizardState) error {
	if err := handoff.Put(ctx, s.Session, storage.KeyBookingWizard, w); err != nil {
		return domain.InternalError{Msg: "could not save booking progress", Err: err}
	}
	return nil
}
