package handlers

import (
	"errors"
	"net/http"

	"codebreak/internal/domain"
	"codebreak/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Sessions *service.SessionService
}

func NewHandler(sessions *service.SessionService) *Handler {
	return &Handler{Sessions: sessions}
}

// fail maps a domain error onto an HTTP status. Anything outside the
// domain taxonomy is a store-layer failure and surfaces as a 500 with a
// generic body.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyUserName),
		errors.Is(err, domain.ErrBadCode),
		errors.Is(err, domain.ErrCodeSymbols):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrGameNotFound),
		errors.Is(err, domain.ErrNotAPlayer):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNameTaken),
		errors.Is(err, domain.ErrAlreadyJoined),
		errors.Is(err, domain.ErrGameNotJoinable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
