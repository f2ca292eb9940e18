package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripwise/tripwise/session"
)

type chatRequest struct {
	Message      string `json:"message"`
	SessionID    string `json:"sessionId"`
	SessionIDAlt string `json:"session_id"`
}

// PostChat handles one chat exchange with tool-calling orchestration.
// POST /chat
func (h *Handler) PostChat(c echo.Context) error {
	ctx := c.Request().Context()

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message is required"})
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = req.SessionIDAlt
	}
	sessionID = sessionIDFrom(c, sessionID)

	result, err := h.chat.ProcessMessage(ctx, sessionID, req.Message)
	if err != nil {
		log.Printf("ERROR: failed to process message: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "Failed to process message",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}

// GetChat returns the response envelope for an existing session.
// GET /chat?sessionId=...
func (h *Handler) GetChat(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := sessionIDFrom(c, "")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sessionId query param required"})
	}

	result, err := h.chat.SessionData(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
		}
		log.Printf("ERROR: failed to load session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "Failed to load session",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, result)
}
