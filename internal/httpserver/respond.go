package httpserver

import (
	"errors"
	"net/http"
	"time"

	"online-bookstore/internal/domain"
	usersvc "online-bookstore/internal/service/user"

	"github.com/gin-gonic/gin"
)

// errorResponse is the uniform error envelope for every failure path.
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func writeError(c *gin.Context, err error) {
	status, label := classify(err)
	c.AbortWithStatusJSON(status, errorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     label,
		Message:   err.Error(),
		Path:      c.Request.URL.Path,
	})
}

func classify(err error) (int, string) {
	var insufficient *domain.InsufficientStockError
	var transition *domain.StatusTransitionError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "Bad Request"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, usersvc.ErrInvalidCredentials), errors.Is(err, usersvc.ErrInvalidToken):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.As(err, &insufficient),
		errors.As(err, &transition):
		return http.StatusUnprocessableEntity, "Business Rule Violation"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
		Timestamp: time.Now().UTC(),
		Status:    http.StatusBadRequest,
		Error:     "Bad Request",
		Message:   msg,
		Path:      c.Request.URL.Path,
	})
}
