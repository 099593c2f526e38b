package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createGameRequest struct {
	UserKey string `json:"userKey"`
}

func (h *Handler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.UserKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userKey parameter"})
		return
	}

	g, err := h.Sessions.CreateGame(c.Request.Context(), req.UserKey)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, g)
}

type joinGameRequest struct {
	UserKey string `json:"userKey"`
}

func (h *Handler) JoinGame(c *gin.Context) {
	var req joinGameRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.UserKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userKey parameter"})
		return
	}

	j, err := h.Sessions.JoinGame(c.Request.Context(), c.Param("key"), req.UserKey)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, j)
}

type submitGuessRequest struct {
	UserKey string `json:"userKey"`
	Code    string `json:"code"`
}

func (h *Handler) SubmitGuess(c *gin.Context) {
	var req submitGuessRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.UserKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing userKey parameter"})
		return
	}
	if req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code parameter"})
		return
	}

	res, err := h.Sessions.SubmitGuess(c.Request.Context(), c.Param("key"), req.UserKey, req.Code)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
