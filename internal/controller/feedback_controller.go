// FILE: internal/controller/feedback_controller.go
package controller

import (
	"errors"

	"reflect360-be/internal/dto"
	"reflect360-be/internal/pkg/serverutils"
	"reflect360-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Analysis(ctx *fiber.Ctx) error
	ShareLink(ctx *fiber.Ctx) error
	Invite(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
	analysisService service.IAnalysisService
}

func NewFeedbackController(feedbackService service.IFeedbackService, analysisService service.IAnalysisService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
		analysisService: analysisService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	// Submission is deliberately unauthenticated: respondents are anonymous.
	r.Post("/surveys/:surveyId/responses", c.Submit)

	h := r.Group("/feedback", serverutils.JwtMiddleware)
	h.Get("/responses", c.List)
	h.Get("/analysis", c.Analysis)
	h.Get("/share-link", c.ShareLink)
	h.Post("/invite", c.Invite)
}

func feedbackErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrCloudDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, service.ErrSurveyNotFound), errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidRelationship):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func (c *feedbackController) Submit(ctx *fiber.Ctx) error {
	surveyId, err := uuid.Parse(ctx.Params("surveyId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "Invalid survey id",
		})
	}

	var req dto.SubmitResponseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	if err := c.feedbackService.AddResponse(ctx.Context(), surveyId, &req); err != nil {
		code := feedbackErrorStatus(err)
		return ctx.Status(code).JSON(fiber.Map{
			"success": false,
			"code":    code,
			"message": err.Error(),
		})
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"code":    201,
		"message": "Response submitted. Thank you!",
		"data":    nil,
	})
}

func (c *feedbackController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.feedbackService.GetResponsesForUser(ctx.Context(), userId, ctx.Query("relationship"))
	if err != nil {
		code := feedbackErrorStatus(err)
		return ctx.Status(code).JSON(fiber.Map{
			"success": false,
			"code":    code,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *feedbackController) Analysis(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	res, err := c.analysisService.Analyze(ctx.Context(), userId)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"code":    404,
				"message": "No responses to analyze yet",
			})
		}
		code := feedbackErrorStatus(err)
		return ctx.Status(code).JSON(fiber.Map{
			"success": false,
			"code":    code,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    res,
	})
}

func (c *feedbackController) ShareLink(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    dto.ShareLinkResponse{Link: c.feedbackService.ShareLink(userId)},
	})
}

func (c *feedbackController) Invite(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.InviteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}

	if err := c.feedbackService.Invite(ctx.Context(), userId, &req); err != nil {
		code := feedbackErrorStatus(err)
		return ctx.Status(code).JSON(fiber.Map{
			"success": false,
			"code":    code,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Invitations sent",
		"data":    nil,
	})
}
