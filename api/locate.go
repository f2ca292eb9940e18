package api

import (
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LocateCity identifies the city in an uploaded photo.
// POST /chat/locate_city (multipart: image, optional hint)
func (h *Handler) LocateCity(c echo.Context) error {
	ctx := c.Request().Context()

	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image file is required"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read image file"})
	}
	defer src.Close()

	image, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read image file"})
	}

	hint := c.FormValue("hint")

	analysis, err := h.locator.Analyze(ctx, image, hint)
	if err != nil {
		log.Printf("ERROR: city locate failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "Failed to analyze image",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": analysis})
}
