// Package respond implements the JSON response envelope used by every API
// endpoint: successes carry a success indicator plus the payload, failures
// carry a human-readable message and, for validation failures, field-level
// detail.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/internal/platform/apperr"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool                 `json:"success"`
	Data    interface{}          `json:"data,omitempty"`
	Count   *int                 `json:"count,omitempty"`
	Message string               `json:"message,omitempty"`
	Errors  []apperr.FieldError  `json:"errors,omitempty"`
}

// OK writes a 200 response with the payload.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 response with the payload and a message.
func OKMessage(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// List writes a 200 response with the payload and its element count.
func List(c echo.Context, data interface{}, count int) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Created writes a 201 response with the payload and a message.
func Created(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// Message writes a 200 response carrying only a message.
func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}
