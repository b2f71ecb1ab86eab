package api

import (
	"log"
	"net/http"

	"github.com/NAMXtoken/pocket-chat-api/internal/store"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	Store *store.Store
}

func NewContactHandler(st *store.Store) *ContactHandler {
	return &ContactHandler{Store: st}
}

// GetContacts lists all contacts, most recently updated first.
func (h *ContactHandler) GetContacts(c *gin.Context) {
	contacts, err := h.Store.ListContacts()
	if err != nil {
		log.Printf("Error listing contacts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contacts"})
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// GetContactMessages lists one contact's messages in creation order.
func (h *ContactHandler) GetContactMessages(c *gin.Context) {
	contactID := c.Param("id")

	messages, err := h.Store.ListMessages(contactID)
	if err != nil {
		log.Printf("Error listing messages for contact %s: %v", contactID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
