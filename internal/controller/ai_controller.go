// FILE: internal/controller/ai_controller.go
package controller

import (
	"reflect360-be/internal/dto"
	"reflect360-be/internal/pkg/serverutils"
	"reflect360-be/internal/service"
	"reflect360-be/pkg/aicall"

	"github.com/gofiber/fiber/v2"
)

type IAiController interface {
	RegisterRoutes(r fiber.Router)
	Dialogue(ctx *fiber.Ctx) error
	Insight(ctx *fiber.Ctx) error
}

type aiController struct {
	dialogueService service.IDialogueService
	insightService  service.IInsightService
}

func NewAiController(dialogueService service.IDialogueService, insightService service.IInsightService) IAiController {
	return &aiController{
		dialogueService: dialogueService,
		insightService:  insightService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai", serverutils.JwtMiddleware)
	h.Post("/dialogue", c.Dialogue)
	h.Post("/insight", c.Insight)
}

// callErrorStatus maps the AI failure taxonomy to HTTP codes. Timeouts are
// gateway timeouts, unreachable or failing upstreams are bad gateways, and a
// missing credential is this server's own fault.
func callErrorStatus(kind aicall.Kind) int {
	switch kind {
	case aicall.KindTimeout:
		return fiber.StatusGatewayTimeout
	case aicall.KindNetwork, aicall.KindServer:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (c *aiController) Dialogue(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.DialogueRequest
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

	// SendTurn never fails from the caller's point of view: an AI failure
	// becomes an apology turn in the transcript.
	transcript, focused := c.dialogueService.SendTurn(ctx.Context(), userId, &req)

	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data": fiber.Map{
			"turns":         transcript,
			"focusedColumn": focused,
		},
	})
}

// Insight answers 200 with the raw analysis as text/plain; failures carry a
// JSON body with the error kind and any detail the upstream gave.
func (c *aiController) Insight(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.InsightRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateStruct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "BAD_REQUEST",
			"details": err.Error(),
		})
	}

	text, callErr := c.insightService.Generate(ctx.Context(), userId, req.ColumnId, req.Map)
	if callErr != nil {
		body := fiber.Map{"error": string(callErr.Kind)}
		if callErr.Details != "" {
			body["details"] = callErr.Details
		}
		return ctx.Status(callErrorStatus(callErr.Kind)).JSON(body)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.SendString(text)
}
