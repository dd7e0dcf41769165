package controller

import (
	"faq-management-be/internal/dto"
	"faq-management-be/internal/pkg/serverutils"
	"faq-management-be/internal/service"
	"faq-management-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	Login(ctx *fiber.Ctx) error
	GoogleLogin(ctx *fiber.Ctx) error
	GoogleLoginURL(ctx *fiber.Ctx) error
	GoogleCallback(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/google", c.GoogleLogin)
	h.Get("/google/url", c.GoogleLoginURL)
	h.Get("/google/callback", c.GoogleCallback)
	h.Post("/logout", sessionMiddleware, c.Logout)
	h.Get("/me", sessionMiddleware, c.Me)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return serverutils.OK(ctx, "Login successful", res)
}

func (c *authController) GoogleLogin(ctx *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.LoginWithGoogleToken(ctx.Context(), req.IDToken)
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return serverutils.OK(ctx, "Login successful", res)
}

func (c *authController) GoogleLoginURL(ctx *fiber.Ctx) error {
	url, err := c.service.GetGoogleLoginURL()
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return serverutils.OK(ctx, "Login URL generated", fiber.Map{"url": url})
}

func (c *authController) GoogleCallback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "missing code parameter")
	}

	res, err := c.service.HandleGoogleCallback(ctx.Context(), code)
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusUnauthorized, err.Error())
	}
	return serverutils.OK(ctx, "Login successful", res)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	session := ctx.Locals(serverutils.SessionKey).(*store.Session)
	c.service.Logout(ctx.Context(), session.ID)
	return serverutils.OK(ctx, "Logged out successfully", nil)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	session := ctx.Locals(serverutils.SessionKey).(*store.Session)
	return serverutils.OK(ctx, "Session active", dto.UserDTO{
		Email: session.Email,
		Name:  session.Name,
	})
}
