package apiresponse

import "github.com/gofiber/fiber/v2"

// Every endpoint answers with the same envelope: {success, data, meta} on
// success, {success:false, message} on failure.

// Success writes a 200 envelope without meta.
func Success(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// SuccessWithMeta writes a 200 envelope with a meta block.
func SuccessWithMeta(c *fiber.Ctx, data any, meta fiber.Map) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "meta": meta})
}

// Created writes a 201 envelope with a message.
func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"success": true, "message": message, "data": data})
}

// Message writes a 200 envelope carrying a message and optional data.
func Message(c *fiber.Ctx, message string, data any) error {
	m := fiber.Map{"success": true, "message": message}
	if data != nil {
		m["data"] = data
	}
	return c.JSON(m)
}

// Error writes the failure envelope with the given status code.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
