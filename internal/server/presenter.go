package server

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
}

func respondJSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return respondJSON(c, status, ErrorResponse{Message: message})
}
