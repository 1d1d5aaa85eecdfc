// FILE: internal/controller/reflection_controller.go
package controller

import (
	"reflect360-be/internal/dto"
	"reflect360-be/internal/pkg/serverutils"
	"reflect360-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReflectionController interface {
	RegisterRoutes(r fiber.Router)
	GetMap(ctx *fiber.Ctx) error
	SaveMap(ctx *fiber.Ctx) error
	UpdateSlot(ctx *fiber.Ctx) error
	GetTranscript(ctx *fiber.Ctx) error
	GetInsights(ctx *fiber.Ctx) error
}

type reflectionController struct {
	service service.IReflectionService
}

func NewReflectionController(service service.IReflectionService) IReflectionController {
	return &reflectionController{service: service}
}

func (c *reflectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reflection", serverutils.JwtMiddleware)
	h.Get("/map", c.GetMap)
	h.Put("/map", c.SaveMap)
	h.Patch("/map/slot", c.UpdateSlot)
	h.Get("/transcript", c.GetTranscript)
	h.Get("/insights", c.GetInsights)
}

func (c *reflectionController) GetMap(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	m := c.service.GetMap(ctx.Context(), userId)
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    dto.MapResponse{Map: m},
	})
}

func (c *reflectionController) SaveMap(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.SaveMapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	m := c.service.SaveMap(ctx.Context(), userId, req.Map)
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Map saved",
		"data":    dto.MapResponse{Map: m},
	})
}

func (c *reflectionController) UpdateSlot(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var req dto.UpdateSlotRequest
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

	m, err := c.service.UpdateSlot(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": err.Error(),
		})
	}
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "Slot updated",
		"data":    dto.MapResponse{Map: m},
	})
}

func (c *reflectionController) GetTranscript(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	t := c.service.GetTranscript(ctx.Context(), userId)
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    dto.TranscriptResponse{Turns: t},
	})
}

func (c *reflectionController) GetInsights(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	ins := c.service.GetInsights(ctx.Context(), userId)
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": "OK",
		"data":    dto.InsightsResponse{Insights: ins},
	})
}
