package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform wrapper for every successful response:
// {success, message, data, timestamp}.
type envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// respond renders data in the success envelope. All successes use 200,
// including creates.
func respond(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}
