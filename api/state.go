package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tripwise/tripwise/session"
)

type resetRequest struct {
	SessionID string `json:"sessionId"`
}

// Reset clears a chat session. Idempotent: always responds success.
// POST /chat/reset
func (h *Handler) Reset(c echo.Context) error {
	ctx := c.Request().Context()

	var req resetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if req.SessionID != "" {
		if err := h.chat.Reset(ctx, req.SessionID); err != nil {
			log.Printf("ERROR: failed to reset session: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{
				"error":   "Failed to reset session",
				"details": err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Session reset successful"})
}

type updateStateRequest struct {
	SessionID    string          `json:"sessionId"`
	SessionIDAlt string          `json:"session_id"`
	Updates      json.RawMessage `json:"updates"`
}

// UpdateState merges a partial workflow-state update into an active
// session.
// POST /chat/update_state
func (h *Handler) UpdateState(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateStateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = req.SessionIDAlt
	}
	sessionID = sessionIDFrom(c, sessionID)
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sessionId required"})
	}

	var updates map[string]interface{}
	if len(req.Updates) == 0 || json.Unmarshal(req.Updates, &updates) != nil || updates == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "updates must be an object"})
	}

	state, err := h.chat.UpdateState(ctx, sessionID, updates)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
		}
		// A persistence failure is not a missing session; report it as such.
		log.Printf("ERROR: failed to update state: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "Failed to update state",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"state":      state,
	})
}

// Summary returns a compact projection of the current planning state.
// GET /chat/summary?sessionId=...
func (h *Handler) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID := sessionIDFrom(c, "")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sessionId required"})
	}

	data, err := h.chat.SessionData(ctx, sessionID)
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

	return c.JSON(http.StatusOK, map[string]interface{}{
		"summary": data.State.Summarize(sessionID),
		"state":   data.State,
	})
}
