package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopapi/internal/log"
	"shopapi/internal/services"
	"shopapi/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User registration failed"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		log.Security(c, "auth.register.fail", map[string]any{"reason": "bad_name"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User registration failed"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		log.Security(c, "auth.register.fail", map[string]any{"reason": "bad_email"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User registration failed"})
	}
	if !validate.Password(req.Password) {
		log.Security(c, "auth.register.fail", map[string]any{"reason": "bad_password"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User registration failed"})
	}

	if _, err := h.Auth.Register(name, email, req.Password); err != nil {
		log.Security(c, "auth.register.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User registration failed"})
	}
	log.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"message": "User registered successfully"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if _, err := h.Auth.Login(email, req.Password); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"message": "Login successful"})
}
