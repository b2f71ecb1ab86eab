package main

import (
	"log"
	"net/http"

	"github.com/NAMXtoken/pocket-chat-api/internal/api"
	"github.com/NAMXtoken/pocket-chat-api/internal/config"
	"github.com/NAMXtoken/pocket-chat-api/internal/database"
	"github.com/NAMXtoken/pocket-chat-api/internal/store"
	"github.com/NAMXtoken/pocket-chat-api/internal/webhook"
	"github.com/NAMXtoken/pocket-chat-api/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.LoadConfig()

	var st *store.Store
	if cfg.HasDatabase() {
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		st = store.New(db)
	} else {
		log.Println("Warning: DB_HOST not set, webhook will answer \"Server not configured\"")
	}

	hub := ws.NewHub()
	go hub.Run()

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	webhookHandler := webhook.NewHandler(cfg, st, hub)
	sendHandler := api.NewSendHandler()

	// Webhook Route
	r.POST("/webhook", webhookHandler.HandleInbound)

	// Realtime feed for the dashboard
	r.GET("/ws", gin.WrapF(hub.ServeWs))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Dashboard API Routes
	apiGroup := r.Group("/api")
	{
		if st != nil {
			contactHandler := api.NewContactHandler(st)
			apiGroup.GET("/contacts", contactHandler.GetContacts)
			apiGroup.GET("/contacts/:id/messages", contactHandler.GetContactMessages)
		}
		apiGroup.POST("/send", sendHandler.SendMessage)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
