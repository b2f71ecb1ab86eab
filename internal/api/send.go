package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type SendHandler struct{}

func NewSendHandler() *SendHandler {
	return &SendHandler{}
}

type SendRequest struct {
	To      string `json:"to" binding:"required"`
	Content string `json:"content"`
}

// SendMessage is a stub: outbound delivery is not implemented, the
// service only ingests. The request is validated so dashboard callers get
// a useful error either way.
func (h *SendHandler) SendMessage(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNotImplemented, gin.H{"error": "Sending not implemented"})
}
