package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"frontend/internal/apiclient"
	"frontend/internal/domain"
	"frontend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain and backend errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	if pe, ok := domain.AsPrecondition(err); ok {
		respondPrecondition(c, pe)
		return
	}
	if _, ok := apiclient.AsError(err); ok {
		RespondAPIError(c, err)
		return
	}

	var verr domain.ValidationError
	switch {
	case domain.IsValidation(err):
		details := any(nil)
		if errors.As(err, &verr) && verr.Field != "" {
			details = gin.H{"field": verr.Field}
		}
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}

// RespondAPIError reports a failed backend call with its user-facing message.
func RespondAPIError(c *gin.Context, err error) {
	kind := apiclient.KindOf(err)
	respondError(c, apiclient.StatusOf(err), kind.String(), apiclient.UserMessage(err), nil)
}

// respondPrecondition ends a flow: page loads are redirected with the alert
// text, JSON callers get 412 with the redirect target.
func respondPrecondition(c *gin.Context, pe domain.PreconditionError) {
	if !middleware.WantsJSON(c) && pe.Redirect != "" {
		c.Redirect(http.StatusSeeOther, pe.Redirect+"?alert="+url.QueryEscape(pe.Error()))
		return
	}
	respondError(c, http.StatusPreconditionFailed, "precondition_failed", pe.Error(), gin.H{"redirect": pe.Redirect})
}
