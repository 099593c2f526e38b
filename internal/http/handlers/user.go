package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	UserName string `json:"userName"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	u, err := h.Sessions.CreateUser(c.Request.Context(), req.UserName)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}
