package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"frontend/internal/domain/models"
)

func getList[T any](ctx context.Context, c *Client, endpoint string, query url.Values) ([]T, error) {
	resp, err := c.Get(ctx, endpoint, query)
	if err != nil {
		return nil, err
	}
	out, err := unwrapList[T](resp.Raw)
	if err != nil {
		return nil, shapeError(resp, err)
	}
	return out, nil
}

func getObject[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	resp, err := c.Get(ctx, endpoint, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeObject[T](resp)
}

func sendObject[T any](ctx context.Context, c *Client, method, endpoint string, body any) (T, error) {
	resp, err := c.Request(ctx, endpoint, RequestOptions{Method: method, Body: body})
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeObject[T](resp)
}

func decodeObject[T any](resp *Response) (T, error) {
	out, err := unwrapObject[T](resp.Raw)
	if err != nil {
		return out, shapeError(resp, err)
	}
	return out, nil
}

func idPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}

// Flights

func (c *Client) ListFlights(ctx context.Context) ([]models.Flight, error) {
	return getList[models.Flight](ctx, c, "/flights", nil)
}

func (c *Client) CreateFlight(ctx context.Context, f models.Flight) (models.Flight, error) {
	return sendObject[models.Flight](ctx, c, "POST", "/flights", f)
}

func (c *Client) UpdateFlight(ctx context.Context, f models.Flight) (models.Flight, error) {
	if f.ID <= 0 {
		return models.Flight{}, &Error{Kind: KindValidation, Message: "flight id is required"}
	}
	return sendObject[models.Flight](ctx, c, "PUT", idPath("/flights", f.ID), f)
}

func (c *Client) DeleteFlight(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, idPath("/flights", id))
	return err
}

// Schedules

func (c *Client) ListSchedules(ctx context.Context) ([]models.FlightSchedule, error) {
	return getList[models.FlightSchedule](ctx, c, "/flight-schedules", nil)
}

func (c *Client) GetSchedule(ctx context.Context, id int64) (models.FlightSchedule, error) {
	return getObject[models.FlightSchedule](ctx, c, idPath("/flight-schedules", id))
}

func (c *Client) CreateSchedule(ctx context.Context, s models.FlightSchedule) (models.FlightSchedule, error) {
	return sendObject[models.FlightSchedule](ctx, c, "POST", "/flight-schedules", s)
}

func (c *Client) UpdateSchedule(ctx context.Context, s models.FlightSchedule) (models.FlightSchedule, error) {
	if s.ID <= 0 {
		return models.FlightSchedule{}, &Error{Kind: KindValidation, Message: "schedule id is required"}
	}
	return sendObject[models.FlightSchedule](ctx, c, "PUT", idPath("/flight-schedules", s.ID), s)
}

func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, idPath("/flight-schedules", id))
	return err
}

// Airports

func (c *Client) ListAirports(ctx context.Context) ([]models.Airport, error) {
	return getList[models.Airport](ctx, c, "/airport", nil)
}

// Bookings

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	ScheduleID    int64              `json:"schedule_id"`
	FlightDate    string             `json:"flight_date"`
	TotalPrice    string             `json:"total_price"`
	Adults        int                `json:"adults"`
	Children      int                `json:"children"`
	Infants       int                `json:"infants"`
	SelectedSeats []string           `json:"selected_seats,omitempty"`
	Passengers    []models.Passenger `json:"passengers"`
}

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return getList[models.Booking](ctx, c, "/bookings", nil)
}

func (c *Client) ListUserBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	return getList[models.Booking](ctx, c, "/bookings", url.Values{"user_id": {strconv.FormatInt(userID, 10)}})
}

func (c *Client) GetBooking(ctx context.Context, id int64) (models.Booking, error) {
	return getObject[models.Booking](ctx, c, idPath("/bookings", id))
}

// LatestBooking returns the most recent booking of the authenticated user.
func (c *Client) LatestBooking(ctx context.Context) (models.Booking, error) {
	return getObject[models.Booking](ctx, c, "/bookings/latest")
}

func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (models.Booking, error) {
	return sendObject[models.Booking](ctx, c, "POST", "/bookings", req)
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	body := map[string]string{"booking_status": status}
	return sendObject[models.Booking](ctx, c, "PUT", idPath("/bookings", id), body)
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, idPath("/bookings", id))
	return err
}

// ListPassengers unwraps the {data: [...]} envelope used by /passengers.
func (c *Client) ListPassengers(ctx context.Context, bookingID int64) ([]models.Passenger, error) {
	var q url.Values
	if bookingID > 0 {
		q = url.Values{"booking_id": {strconv.FormatInt(bookingID, 10)}}
	}
	return getList[models.Passenger](ctx, c, "/passengers", q)
}

// Users

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (models.LoginResult, error) {
	out, err := sendObject[models.LoginResult](ctx, c, "POST", "/users/login", req)
	if err != nil {
		return out, err
	}
	if out.Token == "" {
		return out, &Error{Kind: KindUnknown, Status: 200, Message: "login response has no token"}
	}
	return out, nil
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	return getObject[models.User](ctx, c, "/users/profile")
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return getList[models.User](ctx, c, "/users", nil)
}

func (c *Client) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	if u.ID <= 0 {
		return models.User{}, &Error{Kind: KindValidation, Message: "user id is required"}
	}
	return sendObject[models.User](ctx, c, "PUT", idPath("/users", u.ID), u)
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, idPath("/users", id))
	return err
}

// Payments

type PaymentRequest struct {
	BookingID int64   `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"payment_method"`
	Reference string  `json:"reference,omitempty"`
}

func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (models.Payment, error) {
	if req.BookingID <= 0 {
		return models.Payment{}, &Error{Kind: KindValidation, Message: "booking id is required"}
	}
	return sendObject[models.Payment](ctx, c, "POST", "/payments", req)
}

// Joyride slots

func (c *Client) ListJoyrideSlots(ctx context.Context) ([]models.JoyrideSlot, error) {
	return getList[models.JoyrideSlot](ctx, c, "/joyride-slots", nil)
}

func (c *Client) CreateJoyrideSlot(ctx context.Context, s models.JoyrideSlot) (models.JoyrideSlot, error) {
	if s.Seats <= 0 {
		return models.JoyrideSlot{}, &Error{Kind: KindValidation, Message: fmt.Sprintf("invalid seat count %d", s.Seats)}
	}
	return sendObject[models.JoyrideSlot](ctx, c, "POST", "/joyride-slots", s)
}

func (c *Client) DeleteJoyrideSlot(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, idPath("/joyride-slots", id))
	return err
}
