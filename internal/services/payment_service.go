package services

import (
	"context"
	"fmt"
	"strings"

	"frontend/internal/apiclient"
	"frontend/internal/domain"
	"frontend/internal/domain/models"
	"frontend/internal/utils"
)

// PaymentDetails is what the payment step submits.
type PaymentDetails struct {
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
}

// PaymentInput is everything the payment collaborator needs to settle a booking.
type PaymentInput struct {
	Booking   models.BookingData
	Travelers []models.TravelerDetail
	Details   PaymentDetails
}

// PaymentStep creates the booking and settles it, producing the identifiers
// shown on the ticket.
type PaymentStep interface {
	Pay(ctx context.Context, in PaymentInput) (models.BookingResult, error)
}

// BackendPayment settles through the flight backend: POST /bookings, then
// POST /payments.
type BackendPayment struct {
	API       *apiclient.Client
	RequestID string
}

var paymentMethods = map[string]bool{"card": true, "upi": true, "netbanking": true, "wallet": true}

func (p BackendPayment) Pay(ctx context.Context, in PaymentInput) (models.BookingResult, error) {
	method := strings.ToLower(strings.TrimSpace(in.Details.Method))
	if !paymentMethods[method] {
		return models.BookingResult{}, domain.ValidationError{Field: "method", Msg: "unsupported payment method"}
	}
	amount := in.Booking.Amount()
	if amount <= 0 {
		return models.BookingResult{}, domain.ValidationError{Field: "totalPrice", Msg: "must be greater than zero"}
	}
	if p.API == nil {
		return models.BookingResult{}, domain.InternalError{Msg: "payment backend is not configured"}
	}

	booking, err := p.API.CreateBooking(ctx, bookingRequest(in))
	if err != nil {
		return models.BookingResult{}, err
	}
	utils.LogEvent(p.RequestID, "payment", "create_booking", fmt.Sprintf("booking_id=%d schedule_id=%d", booking.ID, in.Booking.ID))

	payment, err := p.API.CreatePayment(ctx, apiclient.PaymentRequest{
		BookingID: booking.ID,
		Amount:    amount,
		Method:    method,
		Reference: in.Details.Reference,
	})
	if err != nil {
		utils.LogEvent(p.RequestID, "payment", "create_payment", fmt.Sprintf("booking_id=%d failed: %v", booking.ID, err))
		return models.BookingResult{}, err
	}
	utils.LogEvent(p.RequestID, "payment", "create_payment", fmt.Sprintf("booking_id=%d payment_id=%d status=%s", booking.ID, payment.ID, payment.Status))

	paid := isPaidStatus(payment.Status)
	bookingStatus := utils.Fallback(booking.Status, "PENDING")
	if paid && !isConfirmedStatus(bookingStatus) {
		bookingStatus = "CONFIRMED"
	}
	return models.BookingResult{
		BookingID:     booking.ID,
		BookingNo:     utils.Fallback(booking.BookingNo, fmt.Sprintf("BK%06d", booking.ID)),
		PNR:           booking.PNR,
		BookingStatus: bookingStatus,
		PaymentStatus: utils.Fallback(payment.Status, "PENDING"),
		PaymentID:     payment.ID,
		TransactionID: payment.TransactionID,
		IsPaid:        paid,
		IsConfirmed:   isConfirmedStatus(bookingStatus),
	}, nil
}

func bookingRequest(in PaymentInput) apiclient.BookingRequest {
	passengers := make([]models.Passenger, 0, len(in.Travelers))
	for _, t := range in.Travelers {
		passengers = append(passengers, models.Passenger{
			Title:       t.Title,
			FullName:    t.FullName,
			DateOfBirth: t.DateOfBirth,
			Email:       t.Email,
			Phone:       t.Phone,
			Address:     t.Address,
			GSTNumber:   t.GSTNumber,
		})
	}
	b := in.Booking
	return apiclient.BookingRequest{
		ScheduleID:    b.ID,
		FlightDate:    utils.DateOnly(b.SelectedDate),
		TotalPrice:    b.TotalPrice,
		Adults:        b.Passengers.Adults,
		Children:      b.Passengers.Children,
		Infants:       b.Passengers.Infants,
		SelectedSeats: b.SelectedSeats,
		Passengers:    passengers,
	}
}

func isPaidStatus(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "PAID", "SUCCESS", "COMPLETED", "CAPTURED":
		return true
	}
	return false
}

func isConfirmedStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "CONFIRMED")
}
