package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatrelay/internal/models"
)

const healthStatus = "Backend is running!"

// Replier produces the model reply for a single user message.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Handler wires HTTP routes to the chat relay.
type Handler struct {
	relay          Replier
	allowedOrigins []string
}

// NewHandler constructs a Handler instance.
func NewHandler(relay Replier, allowedOrigins []string) *Handler {
	return &Handler{
		relay:          relay,
		allowedOrigins: allowedOrigins,
	}
}

// RegisterRoutes attaches the CORS policy and all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.allowedOrigins))
	router.GET("/", h.health)
	api := router.Group("/api")
	api.POST("/chat", h.chat)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{Status: healthStatus})
}

func (h *Handler) chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: err.Error()})
		return
	}

	reply, err := h.relay.Reply(c.Request.Context(), *req.Message)
	if err != nil {
		log.Printf("chat relay error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.ChatResponse{Response: reply})
}
