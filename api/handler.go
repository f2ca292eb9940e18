// Package api provides the HTTP surface of the travel chatbot.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripwise/tripwise/domain"
	"github.com/tripwise/tripwise/locator"
)

// ChatService is the chatbot capability consumed by the HTTP layer.
type ChatService interface {
	ProcessMessage(ctx context.Context, sessionID, message string) (*domain.ChatResponse, error)
	SessionData(ctx context.Context, sessionID string) (*domain.ChatResponse, error)
	Reset(ctx context.Context, sessionID string) error
	UpdateState(ctx context.Context, sessionID string, updates map[string]interface{}) (domain.WorkflowState, error)
}

// CityLocator is the image-based city recognition capability.
type CityLocator interface {
	Analyze(ctx context.Context, image []byte, hint string) (*locator.Analysis, error)
}

// Handler handles HTTP requests.
type Handler struct {
	chat    ChatService
	locator CityLocator
}

// NewHandler creates a new handler.
func NewHandler(chat ChatService, cityLocator CityLocator) *Handler {
	return &Handler{
		chat:    chat,
		locator: cityLocator,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/chat", h.PostChat)
	e.GET("/chat", h.GetChat)
	e.POST("/chat/reset", h.Reset)
	e.POST("/chat/update_state", h.UpdateState)
	e.GET("/chat/summary", h.Summary)
	e.POST("/chat/locate_city", h.LocateCity)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// sessionIDFrom resolves a session id from a body value, the query string
// or the X-Session-Id header, in that order.
func sessionIDFrom(c echo.Context, bodyValue string) string {
	if bodyValue != "" {
		return bodyValue
	}
	if id := c.QueryParam("sessionId"); id != "" {
		return id
	}
	if id := c.QueryParam("session_id"); id != "" {
		return id
	}
	return c.Request().Header.Get("X-Session-Id")
}
