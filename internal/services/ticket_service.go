package services

import (
	"context"
	"errors"
	"fmt"

	"frontend/internal/apiclient"
	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/handoff"
	"frontend/internal/storage"
	"frontend/internal/utils"
)

// TicketService loads the confirmed booking for the ticket page.
type TicketService struct {
	Durable   storage.Store
	API       *apiclient.Client
	RequestID string
}

// Load prefers the ticketData handoff and falls back to the user's latest
// booking on the backend. The handoff is left in place so the ticket can be
// downloaded more than once.
func (s TicketService) Load(ctx context.Context) (models.TicketData, error) {
	ticket, err := handoff.Get[models.TicketData](ctx, s.Durable, storage.KeyTicketData)
	if err == nil {
		return ticket, nil
	}
	if !errors.Is(err, handoff.ErrMissing) && !domain.IsValidation(err) {
		return models.TicketData{}, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "ticket", "load", "no ticket handoff, using latest booking: "+err.Error())

	if s.API == nil {
		return models.TicketData{}, domain.NotFoundError{Resource: "ticket", Err: err}
	}
	booking, err := s.API.LatestBooking(ctx)
	if err != nil {
		if apiclient.KindOf(err) == apiclient.KindNotFound {
			return models.TicketData{}, domain.NotFoundError{Resource: "ticket", Err: err}
		}
		return models.TicketData{}, err
	}
	if booking.ID == 0 {
		return models.TicketData{}, domain.NotFoundError{Resource: "ticket"}
	}

	passengers := booking.Passengers
	if len(passengers) == 0 {
		if list, err := s.API.ListPassengers(ctx, booking.ID); err == nil {
			passengers = list
		} else {
			utils.LogEvent(s.RequestID, "ticket", "load", fmt.Sprintf("passengers for booking_id=%d: %v", booking.ID, err))
		}
	}
	return TicketFromBooking(booking, passengers), nil
}

// TicketFromBooking maps a backend booking into the ticket page shape.
func TicketFromBooking(b models.Booking, passengers []models.Passenger) models.TicketData {
	travelers := make([]models.TravelerDetail, 0, len(passengers))
	for _, p := range passengers {
		travelers = append(travelers, models.TravelerDetail{
			Title:       p.Title,
			FullName:    p.FullName,
			DateOfBirth: utils.DateOnly(p.DateOfBirth),
			Email:       p.Email,
			Phone:       p.Phone,
			Address:     p.Address,
			GSTNumber:   p.GSTNumber,
		})
	}
	paid := isPaidStatus(b.PaymentStatus)
	return models.TicketData{
		BookingData: models.BookingData{
			ID:            b.ScheduleID,
			Departure:     b.Departure,
			Arrival:       b.Arrival,
			DepartureTime: b.DepartureTime,
			ArrivalTime:   b.ArrivalTime,
			SelectedDate:  b.FlightDate,
			TotalPrice:    b.TotalPrice,
			Passengers:    models.PassengerCounts{Adults: len(travelers)},
			BookingNo:     b.BookingNo,
			PNR:           b.PNR,
			BookingStatus: b.Status,
			PaymentStatus: b.PaymentStatus,
			IsPaid:        paid,
			IsConfirmed:   isConfirmedStatus(b.Status),
		},
		TravelerDetails: travelers,
	}
}
