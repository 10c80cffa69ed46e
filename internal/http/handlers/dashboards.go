package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"frontend/internal/domain"
	"frontend/internal/domain/models"

	"github.com/gin-gonic/gin"
)

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid id"})
		return 0, false
	}
	return id, true
}

// GET /admin-dashboard
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	api := h.api(c)

	flights, err := api.ListFlights(ctx)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	schedules, err := api.ListSchedules(ctx)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	bookings, err := api.ListBookings(ctx)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	users, err := api.ListUsers(ctx)
	if err != nil {
		RespondAPIError(c, err)
		return
	}

	confirmed := 0
	for _, b := range bookings {
		if strings.EqualFold(b.Status, "CONFIRMED") {
			confirmed++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"flights":           len(flights),
		"schedules":         len(schedules),
		"bookings":          len(bookings),
		"confirmedBookings": confirmed,
		"users":             len(users),
	})
}

func (h *Handler) AdminFlights(c *gin.Context) {
	items, err := h.api(c).ListFlights(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(c, items))
}

func (h *Handler) AdminCreateFlight(c *gin.Context) {
	var f models.Flight
	if !BindJSONOrError(c, &f) {
		return
	}
	out, err := h.api(c).CreateFlight(c.Request.Context(), f)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) AdminUpdateFlight(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var f models.Flight
	if !BindJSONOrError(c, &f) {
		return
	}
	f.ID = id
	out, err := h.api(c).UpdateFlight(c.Request.Context(), f)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) AdminDeleteFlight(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.api(c).DeleteFlight(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AdminSchedules(c *gin.Context) {
	items, err := h.api(c).ListSchedules(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(c, items))
}

func (h *Handler) AdminCreateSchedule(c *gin.Context) {
	var s models.FlightSchedule
	if !BindJSONOrError(c, &s) {
		return
	}
	out, err := h.api(c).CreateSchedule(c.Request.Context(), s)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) AdminUpdateSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var s models.FlightSchedule
	if !BindJSONOrError(c, &s) {
		return
	}
	s.ID = id
	out, err := h.api(c).UpdateSchedule(c.Request.Context(), s)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) AdminDeleteSchedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.api(c).DeleteSchedule(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AdminUsers(c *gin.Context) {
	items, err := h.api(c).ListUsers(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(c, items))
}

func (h *Handler) AdminUpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var u models.User
	if !BindJSONOrError(c, &u) {
		return
	}
	u.ID = id
	out, err := h.api(c).UpdateUser(c.Request.Context(), u)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.api(c).DeleteUser(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AdminJoyrideSlots(c *gin.Context) {
	items, err := h.api(c).ListJoyrideSlots(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, paged(c, items))
}

func (h *Handler) AdminCreateJoyrideSlot(c *gin.Context) {
	var s models.JoyrideSlot
	if !BindJSONOrError(c, &s) {
		return
	}
	out, err := h.api(c).CreateJoyrideSlot(c.Request.Context(), s)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) AdminDeleteJoyrideSlot(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.api(c).DeleteJoyrideSlot(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Bookings, shared by the admin and agent dashboards.

func (h *Handler) Bookings(c *gin.Context) {
	items, err := h.api(c).ListBookings(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filtered := items[:0]
		for _, b := range items {
			if strings.EqualFold(b.Status, status) {
				filtered = append(filtered, b)
			}
		}
		items = filtered
	}
	c.JSON(http.StatusOK, paged(c, items))
}

func (h *Handler) BookingDetail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	b, err := h.api(c).GetBooking(ctx, id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	if len(b.Passengers) == 0 {
		if ps, err := h.api(c).ListPassengers(ctx, id); err == nil {
			b.Passengers = ps
		}
	}
	c.JSON(http.StatusOK, b)
}

type bookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req bookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	out, err := h.api(c).UpdateBookingStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.api(c).DeleteBooking(c.Request.Context(), id); err != nil {
		RespondAPIError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /agent-dashboard
func (h *Handler) AgentDashboard(c *gin.Context) {
	items, err := h.api(c).ListBookings(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	byStatus := map[string]int{}
	for _, b := range items {
		byStatus[strings.ToUpper(b.Status)]++
	}
	resp := paged(c, items)
	resp["byStatus"] = byStatus
	c.JSON(http.StatusOK, resp)
}

// GET /user-dashboard
func (h *Handler) UserDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	api := h.api(c)

	profile, err := api.Profile(ctx)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	bookings, err := api.ListUserBookings(ctx, profile.ID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	resp := paged(c, bookings)
	resp["profile"] = profile
	c.JSON(http.StatusOK, resp)
}

// Flight search data, open to every visitor.

func (h *Handler) Airports(c *gin.Context) {
	items, err := h.api(c).ListAirports(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) Schedules(c *gin.Context) {
	items, err := h.api(c).ListSchedules(c.Request.Context())
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		filtered := items[:0]
		for _, s := range items {
			if strings.HasPrefix(s.DepartureDate, date) {
				filtered = append(filtered, s)
			}
		}
		items = filtered
	}
	c.JSON(http.StatusOK, paged(c, items))
}

func (h *Handler) Schedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	s, err := h.api(c).GetSchedule(c.Request.Context(), id)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
