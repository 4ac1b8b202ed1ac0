package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const timestampLayout = "2006-01-02 15:04:05"

// envelope is the uniform response wrapper. Every endpoint, success or
// failure, serializes through it.
type envelope struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// Respond writes the envelope with the given status, message and payload.
func Respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(envelope{
		Status:    status,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().Format(timestampLayout),
	})
}

// OK writes a 200 envelope with the default success message.
func OK(c *fiber.Ctx, data any) error {
	return Respond(c, fiber.StatusOK, "Success", data)
}
