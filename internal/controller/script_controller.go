package controller

import (
	"qa-agent-be/internal/dto"
	"qa-agent-be/internal/pkg/serverutils"
	"qa-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IScriptController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GenerateSuite(ctx *fiber.Ctx) error
}

type scriptController struct {
	scriptService service.IScriptService
}

func NewScriptController(scriptService service.IScriptService) IScriptController {
	return &scriptController{
		scriptService: scriptService,
	}
}

func (c *scriptController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/script/v1")
	h.Post("generate", c.Generate)
	h.Post("suite", c.GenerateSuite)
}

func (c *scriptController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateScriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if req.TestID == "" && req.TestCase == nil {
		return fiber.NewError(fiber.StatusBadRequest, "either test_id or test_case is required")
	}

	res, err := c.scriptService.Generate(ctx.Context(), sessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate script", res))
}

func (c *scriptController) GenerateSuite(ctx *fiber.Ctx) error {
	var req dto.GenerateSuiteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scriptService.GenerateSuite(ctx.Context(), sessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate test suite", res))
}
