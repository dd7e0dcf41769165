package controller

import (
	"errors"
	"strings"

	"faq-management-be/internal/dto"
	"faq-management-be/internal/pkg/serverutils"
	"faq-management-be/internal/service"
	"faq-management-be/pkg/store"

	"github.com/gofiber/fiber/v2"
)

type IFaqController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	NextID(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type faqController struct {
	service service.IFaqService
}

func NewFaqController(service service.IFaqService) IFaqController {
	return &faqController{service: service}
}

func (c *faqController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	h := r.Group("/faqs", sessionMiddleware)
	h.Get("/next-id", c.NextID)
	h.Post("/", c.Add)
	h.Post("/import", c.Import)
	h.Get("/:businessId", c.Search)
	h.Put("/", c.Update)
}

func (c *faqController) NextID(ctx *fiber.Ctx) error {
	next := c.service.NextID(ctx.Context())
	return serverutils.OK(ctx, "Next FAQ id computed", dto.NextIDResponse{NextID: next})
}

func (c *faqController) Add(ctx *fiber.Ctx) error {
	session := ctx.Locals(serverutils.SessionKey).(*store.Session)

	var req dto.AddFaqRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	// Empty question/answer is rejected here, before any remote call.
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, err.Error())
	}

	res, err := c.service.Add(ctx.Context(), session, &req)
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadGateway, err.Error())
	}
	return serverutils.OK(ctx, "FAQ added successfully", res)
}

func (c *faqController) Import(ctx *fiber.Ctx) error {
	session := ctx.Locals(serverutils.SessionKey).(*store.Session)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "CSV file is required (multipart field 'file')")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	res, err := c.service.ImportCSV(ctx.Context(), session, file)
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, err.Error())
	}
	return serverutils.OK(ctx, "Import completed", res)
}

func (c *faqController) Search(ctx *fiber.Ctx) error {
	session := ctx.Locals(serverutils.SessionKey).(*store.Session)

	businessID := strings.TrimSpace(ctx.Params("businessId"))
	if businessID == "" {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, "FAQ id is required")
	}

	res, err := c.service.Search(ctx.Context(), session, businessID)
	if err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadGateway, err.Error())
	}
	if res == nil {
		return serverutils.Fail(ctx, fiber.StatusNotFound, "FAQ id not found")
	}
	return serverutils.OK(ctx, "FAQ found", res)
}

func (c *faqController) Update(ctx *fiber.Ctx) error {
	session := ctx.Locals(serverutils.SessionKey).(*store.Session)

	var req dto.UpdateFaqRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return serverutils.Fail(ctx, fiber.StatusBadRequest, err.Error())
	}

	if err := c.service.Update(ctx.Context(), session, &req); err != nil {
		if errors.Is(err, service.ErrNoLoadedFaq) {
			return serverutils.Fail(ctx, fiber.StatusConflict, err.Error())
		}
		return serverutils.Fail(ctx, fiber.StatusBadGateway, err.Error())
	}
	return serverutils.OK(ctx, "FAQ updated successfully", nil)
}
