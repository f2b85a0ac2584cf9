package controller

import (
	"support-rag-be/internal/dto"
	"support-rag-be/internal/pkg/serverutils"
	"support-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Upsert(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Wipe(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Post("items", c.Upsert)
	h.Delete("items", c.Delete)
	h.Delete("tenant", c.Wipe)
}

func (c *knowledgeController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertKnowledgeItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.Upsert(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Item queued for indexing", res))
}

func (c *knowledgeController) Delete(ctx *fiber.Ctx) error {
	var req dto.DeleteKnowledgeItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.Delete(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Item removed from index", res))
}

func (c *knowledgeController) Wipe(ctx *fiber.Ctx) error {
	var req dto.WipeTenantRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.Wipe(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Tenant knowledge wiped", res))
}
