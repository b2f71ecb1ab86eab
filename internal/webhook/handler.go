package webhook

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/NAMXtoken/pocket-chat-api/internal/config"
	"github.com/NAMXtoken/pocket-chat-api/internal/metrics"
	"github.com/NAMXtoken/pocket-chat-api/internal/store"
	"github.com/NAMXtoken/pocket-chat-api/internal/twilio"
	"github.com/NAMXtoken/pocket-chat-api/internal/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Config *config.Config
	Store  *store.Store
	Hub    *ws.Hub
}

// NewHandler wires the inbound pipeline. st may be nil when the store
// connection settings are missing; the handler then fails closed with
// "Server not configured".
func NewHandler(cfg *config.Config, st *store.Store, hub *ws.Hub) *Handler {
	return &Handler{
		Config: cfg,
		Store:  st,
		Hub:    hub,
	}
}

// HandleInbound processes one provider callback: decode the body, verify
// the signature when one is configured and sent, normalize the payload and
// persist the contact + message pair.
func (h *Handler) HandleInbound(c *gin.Context) {
	metrics.CallbacksReceived.Inc()

	if h.Store == nil {
		log.Println("Webhook called but store connection is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server not configured"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("Failed to read request body: %v", err)
		metrics.RejectedRequests.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	values, err := twilio.DecodeBody(c.GetHeader("Content-Type"), body)
	if err != nil {
		log.Printf("Failed to parse body: %v", err)
		metrics.RejectedRequests.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}

	// Verification runs only when the provider sent a signature and a
	// shared secret is configured. Unconfigured deployments stay open.
	signature := c.GetHeader("X-Twilio-Signature")
	if signature != "" && h.Config.TwilioAuthToken != "" {
		err := twilio.Verify(requestURL(c.Request), values, h.Config.TwilioAuthToken, signature)
		if errors.Is(err, twilio.ErrSignatureMismatch) {
			log.Printf("Twilio signature mismatch for %s", requestURL(c.Request))
			metrics.SignatureFailures.Inc()
			c.JSON(http.StatusForbidden, gin.H{"error": "Signature verification failed"})
			return
		}
		if err != nil {
			log.Printf("Signature validation error: %v", err)
			metrics.RejectedRequests.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature validation error"})
			return
		}
	}

	inbound := twilio.ParseInbound(values)

	result := h.Store.SaveInbound(inbound)
	if result.ContactErr != nil {
		log.Printf("Contact upsert error: %v", result.ContactErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error (contact)"})
		return
	}
	if result.MessageErr != nil {
		log.Printf("Message insert error: %v", result.MessageErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error (message)"})
		return
	}

	metrics.MessagesStored.Inc()
	if h.Hub != nil {
		h.Hub.NotifyMessage(result.Message)
	}

	// Twilio accepts a 200 with any body.
	c.String(http.StatusOK, "OK")
}

// requestURL rebuilds the full URL the provider signed: scheme, host and
// the exact request URI including any query string.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
