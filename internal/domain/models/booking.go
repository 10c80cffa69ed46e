package models

import (
	"strings"

	"frontend/internal/utils"
)

// PassengerCounts is the passenger mix chosen on flight search.
type PassengerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (p PassengerCounts) Total() int {
	return p.Adults + p.Children + p.Infants
}

// FlightSchedule is a scheduled departure of a flight.
type FlightSchedule struct {
	ID             int64   `json:"id"`
	FlightID       int64   `json:"flight_id,omitempty"`
	FlightNumber   string  `json:"flight_number,omitempty"`
	DepartureDate  string  `json:"departure_date,omitempty"`
	DepartureTime  string  `json:"departure_time"`
	ArrivalTime    string  `json:"arrival_time"`
	Price          float64 `json:"price,omitempty"`
	AvailableSeats int     `json:"available_seats,omitempty"`
}

// BookingDraft is written by flight selection and read once when the
// booking wizard starts.
type BookingDraft struct {
	Departure      string          `json:"departure"`
	Arrival        string          `json:"arrival"`
	TotalPrice     string          `json:"totalPrice"`
	FlightSchedule FlightSchedule  `json:"flightSchedule"`
	SelectedDate   string          `json:"selectedDate"`
	Passengers     PassengerCounts `json:"passengers"`
	SelectedSeats  []string        `json:"selectedSeats,omitempty"`
}

// BookingData is the wizard's view of the draft, later completed with the
// identifiers returned by payment.
type BookingData struct {
	ID            int64           `json:"id"`
	Departure     string          `json:"departure"`
	Arrival       string          `json:"arrival"`
	DepartureTime string          `json:"departureTime"`
	ArrivalTime   string          `json:"arrivalTime"`
	SelectedDate  string          `json:"selectedDate"`
	TotalPrice    string          `json:"totalPrice"`
	Passengers    PassengerCounts `json:"passengers"`
	SelectedSeats []string        `json:"selectedSeats,omitempty"`

	BookingNo     string `json:"bookingNo,omitempty"`
	PNR           string `json:"pnr,omitempty"`
	BookingStatus string `json:"bookingStatus,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	IsPaid        bool   `json:"isPaid"`
	IsConfirmed   bool   `json:"isConfirmed"`
}

// BookingDataFromDraft derives the wizard booking record; the schedule id
// becomes the booking data id.
func BookingDataFromDraft(d BookingDraft) BookingData {
	seats := make([]string, 0, len(d.SelectedSeats))
	for _, s := range d.SelectedSeats {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			seats = append(seats, s)
		}
	}
	return BookingData{
		ID:            d.FlightSchedule.ID,
		Departure:     d.Departure,
		Arrival:       d.Arrival,
		DepartureTime: d.FlightSchedule.DepartureTime,
		ArrivalTime:   d.FlightSchedule.ArrivalTime,
		SelectedDate:  d.SelectedDate,
		TotalPrice:    d.TotalPrice,
		Passengers:    d.Passengers,
		SelectedSeats: seats,
	}
}

// Amount parses the total price the same way the draft was accepted; invalid
// or non-positive values yield 0.
func (b BookingData) Amount() float64 {
	v, err := utils.ParseAmount(b.TotalPrice)
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

// TravelerDetail is one passenger slot filled in during the traveler step.
type TravelerDetail struct {
	Title       string `json:"title" validate:"required,oneof=Mr Mrs Ms Miss Mstr Dr"`
	FullName    string `json:"fullName" validate:"required,min=2,max=100"`
	DateOfBirth string `json:"dateOfBirth" validate:"required,datetime=2006-01-02,notfuture"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,phone10"`
	Address     string `json:"address" validate:"required,max=255"`
	GSTNumber   string `json:"gstNumber,omitempty" validate:"omitempty,gstin"`
}

// BookingResult is produced by the payment step.
type BookingResult struct {
	BookingID     int64  `json:"bookingId"`
	BookingNo     string `json:"bookingNo"`
	PNR           string `json:"pnr"`
	BookingStatus string `json:"bookingStatus"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentID     int64  `json:"paymentId,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	IsPaid        bool   `json:"isPaid"`
	IsConfirmed   bool   `json:"isConfirmed"`
}

// TicketData is handed from the wizard to the ticket page.
type TicketData struct {
	BookingData     BookingData      `json:"bookingData"`
	TravelerDetails []TravelerDetail `json:"travelerDetails"`
	Payment         *BookingResult   `json:"payment,omitempty"`
}
