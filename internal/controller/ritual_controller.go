package controller

import (
	"focusforge-be/internal/apperrors"
	"focusforge-be/internal/constant"
	"focusforge-be/internal/dto"
	"focusforge-be/internal/pkg/serverutils"
	"focusforge-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRitualController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetCurrentStep(ctx *fiber.Ctx) error
	NextStep(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
}

type ritualController struct {
	workflow service.IWorkflowService
	guide    service.IRitualGuideService
}

func NewRitualController(workflow service.IWorkflowService, guide service.IRitualGuideService) IRitualController {
	return &ritualController{
		workflow: workflow,
		guide:    guide,
	}
}

func (c *ritualController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ritual/v1")
	h.Post("", c.Create)
	h.Get("step/:session_id", c.GetCurrentStep)
	h.Post("step/:session_id/next", c.NextStep)
	h.Post("feedback/:session_id", c.SubmitFeedback)
}

func (c *ritualController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateRitualRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.workflow.Run(ctx.Context(), req.Text, req.Feedback)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(constant.MessageRitualCreated, res))
}

func (c *ritualController) GetCurrentStep(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.guide.GetCurrentStep(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get current step", res))
}

func (c *ritualController) NextStep(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.guide.NextStep(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success advance step", res))
}

func (c *ritualController) SubmitFeedback(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.guide.CollectFeedback(ctx.Context(), sessionId, req.Rating)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feedback saved", res))
}

func parseSessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	sessionId, err := uuid.Parse(ctx.Params("session_id"))
	if err != nil {
		return uuid.Nil, apperrors.Validation("session_id must be a valid UUID")
	}
	return sessionId, nil
}
