package handlers

import (
	"net/http"
	"strconv"

	"frontend/internal/apiclient"
	intconfig "frontend/internal/config"
	"frontend/internal/domain"
	"frontend/internal/http/middleware"
	"frontend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies shared by every route.
type Handler struct {
	Env     intconfig.Env
	API     *apiclient.Client
	Durable *storage.Observed
	Session *storage.Observed
}

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// client returns the bound browser client; the router always installs
// ClientStorage and Auth before handlers run.
func client(c *gin.Context) *middleware.Client {
	return middleware.GetClient(c)
}

// api is the backend client authenticated as the current browser.
func (h *Handler) api(c *gin.Context) *apiclient.Client {
	cl := client(c)
	if cl == nil {
		return h.API
	}
	return h.API.WithTokens(apiclient.TokenFunc(cl.Token))
}

func paginationFromQuery(c *gin.Context) domain.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("pageSize"))
	return domain.Pagination{Page: page, PageSize: size}.Normalize()
}

func paged[T any](c *gin.Context, items []T) gin.H {
	out, p := domain.Paginate(items, paginationFromQuery(c))
	return gin.H{"data": out, "pagination": p}
}
