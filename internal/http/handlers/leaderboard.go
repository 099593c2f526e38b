package handlers

import (
	"net/http"

	"codebreak/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Leaderboard(c *gin.Context) {
	entries, err := h.Sessions.Leaderboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}

	c.JSON(http.StatusOK, entries)
}
