package controller

import (
	"qa-agent-be/internal/dto"
	"qa-agent-be/internal/pkg/serverutils"
	"qa-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITestCaseController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Suggestions(ctx *fiber.Ctx) error
	Plan(ctx *fiber.Ctx) error
}

type testCaseController struct {
	testCaseService service.ITestCaseService
}

func NewTestCaseController(testCaseService service.ITestCaseService) ITestCaseController {
	return &testCaseController{
		testCaseService: testCaseService,
	}
}

func (c *testCaseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/testcase/v1")
	h.Post("generate", c.Generate)
	h.Get("suggestions", c.Suggestions)
	h.Post("plan", c.Plan)
}

func (c *testCaseController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateTestCasesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.testCaseService.Generate(ctx.Context(), sessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate test cases", res))
}

func (c *testCaseController) Suggestions(ctx *fiber.Ctx) error {
	res, err := c.testCaseService.SuggestScenarios(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Suggested scenarios", res))
}

func (c *testCaseController) Plan(ctx *fiber.Ctx) error {
	// Body is optional: an empty features list plans across all documents.
	var req dto.GenerateTestPlanRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.testCaseService.GenerateTestPlan(ctx.Context(), sessionID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate test plan", res))
}
