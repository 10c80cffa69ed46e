package handlers

import (
	"context"
	"net/http"

	"frontend/internal/domain/models"
	"frontend/internal/http/middleware"
	"frontend/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{
		Durable:   client(c).Durable,
		API:       h.api(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) docsService(c *gin.Context) services.DocsService {
	tickets := h.ticketService(c)
	return services.DocsService{
		RequestID: middleware.GetRequestID(c),
		Loader: func(ctx context.Context) (models.TicketData, error) {
			return tickets.Load(ctx)
		},
	}
}

// GET /ticket
func (h *Handler) GetTicket(c *gin.Context) {
	t, err := h.ticketService(c).Load(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticketData": t})
}

// GET /ticket/pdf?style=draw|raster returns the e-ticket as a download.
func (h *Handler) GetTicketPDF(c *gin.Context) {
	pdfBytes, filename, err := h.docsService(c).GenerateTicket(c.Request.Context(), c.Query("style"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /ticket/receipt returns the payment receipt (inline).
func (h *Handler) GetReceiptPDF(c *gin.Context) {
	pdfBytes, filename, err := h.docsService(c).GenerateReceipt(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
