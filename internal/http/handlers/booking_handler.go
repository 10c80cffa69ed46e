package handlers

import (
	"net/http"

	"frontend/internal/domain/models"
	"frontend/internal/http/middleware"
	"frontend/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) bookingService(c *gin.Context) services.BookingService {
	cl := client(c)
	rid := middleware.GetRequestID(c)
	return services.BookingService{
		Durable:   cl.Durable,
		Session:   cl.Session,
		Payment:   services.BackendPayment{API: h.api(c), RequestID: rid},
		RequestID: rid,
	}
}

func bookingToken(c *gin.Context) string {
	tok, _ := client(c).Token(c.Request.Context())
	return tok
}

func wizardResponse(w services.WizardState) gin.H {
	return gin.H{
		"step":            w.Step,
		"stepName":        w.Step.String(),
		"bookingData":     w.Booking,
		"travelerDetails": w.Travelers,
	}
}

// POST /flight-search/select
func (h *Handler) SelectFlight(c *gin.Context) {
	var draft models.BookingDraft
	if !BindJSONOrError(c, &draft) {
		return
	}
	if err := h.bookingService(c).SaveDraft(c.Request.Context(), draft); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking data saved", "redirect": "/booking"})
}

// GET /booking
func (h *Handler) GetBooking(c *gin.Context) {
	w, err := h.bookingService(c).Mount(c.Request.Context(), bookingToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardResponse(w))
}

// POST /booking/next
func (h *Handler) BookingNext(c *gin.Context) {
	w, err := h.bookingService(c).Next(c.Request.Context(), bookingToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardResponse(w))
}

// POST /booking/prev
func (h *Handler) BookingPrev(c *gin.Context) {
	w, err := h.bookingService(c).Prev(c.Request.Context(), bookingToken(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardResponse(w))
}

type travelersRequest struct {
	TravelerDetails []models.TravelerDetail `json:"travelerDetails"`
}

// PUT /booking/travelers
func (h *Handler) SaveTravelers(c *gin.Context) {
	var req travelersRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	w, err := h.bookingService(c).SaveTravelers(c.Request.Context(), bookingToken(c), req.TravelerDetails)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardResponse(w))
}

// POST /booking/pay
func (h *Handler) Pay(c *gin.Context) {
	var req services.PaymentDetails
	if !BindJSONOrError(c, &req) {
		return
	}
	ticket, route, err := h.bookingService(c).Pay(c.Request.Context(), bookingToken(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketData": ticket, "redirect": route})
}
