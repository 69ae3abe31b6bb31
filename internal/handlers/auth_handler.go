package handlers

import (
	"github.com/gofiber/fiber/v2"

	"agrisathi/dto"
	"agrisathi/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body dto.RegisterReq
	if err := parseBody(c, &body); err != nil {
		return renderErr(c, err)
	}

	user, token, err := h.Auth.Register(c.Context(), body.Name, body.Phone, body.Password, body.District, body.Role, body.SignupCode)
	if err != nil {
		return renderErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResp{Token: token, User: user})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginReq
	if err := parseBody(c, &body); err != nil {
		return renderErr(c, err)
	}

	user, token, err := h.Auth.Login(c.Context(), body.Phone, body.Password)
	if err != nil {
		return renderErr(c, err)
	}
	return c.JSON(dto.AuthResp{Token: token, User: user})
}
