package controller

import (
	"support-rag-be/internal/dto"
	"support-rag-be/internal/pkg/serverutils"
	"support-rag-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAiConfigController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
}

type aiConfigController struct {
	aiConfigService service.IAiConfigService
}

func NewAiConfigController(aiConfigService service.IAiConfigService) IAiConfigController {
	return &aiConfigController{
		aiConfigService: aiConfigService,
	}
}

func (c *aiConfigController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai-config/v1")
	h.Get("", c.Get)
	h.Put("", c.Save)
}

func (c *aiConfigController) Get(ctx *fiber.Ctx) error {
	req := dto.GetAiConfigRequest{
		BusinessId: ctx.Query("business_id"),
		WidgetId:   ctx.Query("widget_id"),
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiConfigService.Get(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get ai config", res))
}

func (c *aiConfigController) Save(ctx *fiber.Ctx) error {
	var req dto.SaveAiConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiConfigService.Save(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save ai config", res))
}
