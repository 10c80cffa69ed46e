package models

import "frontend/internal/domain"

// Entities returned by the flight backend REST API.

type Flight struct {
	ID               int64  `json:"id"`
	FlightNumber     string `json:"flight_number"`
	Airline          string `json:"airline"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	TotalSeats       int    `json:"total_seats"`
	Status           string `json:"status,omitempty"`
}

type Airport struct {
	ID   int64  `json:"id"`
	Code string `json:"airport_code"`
	Name string `json:"airport_name"`
	City string `json:"city"`
}

type User struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Phone string      `json:"phone,omitempty"`
	Role  domain.Role `json:"role"`
}

type Passenger struct {
	ID          int64  `json:"id"`
	BookingID   int64  `json:"booking_id"`
	Title       string `json:"title"`
	FullName    string `json:"name"`
	DateOfBirth string `json:"dob"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address,omitempty"`
	GSTNumber   string `json:"gst_number,omitempty"`
}

type Booking struct {
	ID            int64       `json:"id"`
	BookingNo     string      `json:"booking_no"`
	PNR           string      `json:"pnr"`
	ScheduleID    int64       `json:"schedule_id"`
	UserID        int64       `json:"user_id"`
	Departure     string      `json:"departure"`
	Arrival       string      `json:"arrival"`
	DepartureTime string      `json:"departure_time"`
	ArrivalTime   string      `json:"arrival_time"`
	FlightDate    string      `json:"flight_date"`
	TotalPrice    string      `json:"total_price"`
	Status        string      `json:"booking_status"`
	PaymentStatus string      `json:"payment_status"`
	Passengers    []Passenger `json:"passengers,omitempty"`
	CreatedAt     string      `json:"created_at,omitempty"`
}

type Payment struct {
	ID            int64   `json:"id"`
	BookingID     int64   `json:"booking_id"`
	UserID        int64   `json:"user_id,omitempty"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"payment_method"`
	Status        string  `json:"payment_status"`
	TransactionID string  `json:"transaction_id,omitempty"`
}

type JoyrideSlot struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Seats    int     `json:"seats"`
	Price    float64 `json:"price"`
	Booked   int     `json:"booked,omitempty"`
	Location string  `json:"location,omitempty"`
}

// LoginResult is the body of POST /users/login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
