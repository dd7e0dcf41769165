package controller

import (
	"errors"

	"faq-management-be/internal/dto"
	"faq-management-be/internal/pkg/serverutils"
	"faq-management-be/internal/service"
	"faq-management-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type ISuggestionController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	Suggest(ctx *fiber.Ctx) error
}

type suggestionController struct {
	service service.ISuggestionService
}

func NewSuggestionController(service service.ISuggestionService) ISuggestionController {
	return &suggestionController{service: service}
}

func (c *suggestionController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	h := r.Group("/faqs", sessionMiddleware)
	h.Post("/suggest", c.Suggest)
}

func (c *suggestionController) Suggest(ctx *fiber.Ctx) error {
	session := ctx.Locals(serverutils.SessionKey).(*store.Session)

	var req dto.SuggestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Suggest(ctx.Context(), session, &req)
	if err != nil {
		if errors.Is(err, service.ErrNoLoadedFaq) {
			return serverutils.Fail(ctx, fiber.StatusConflict, err.Error())
		}
		return serverutils.Fail(ctx, fiber.StatusBadGateway, err.Error())
	}
	return serverutils.OK(ctx, "Suggestion generated", res)
}
