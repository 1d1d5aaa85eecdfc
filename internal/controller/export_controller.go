// FILE: internal/controller/export_controller.go
package controller

import (
	"errors"
	"fmt"

	"reflect360-be/internal/pkg/serverutils"
	"reflect360-be/internal/service"
	"reflect360-be/pkg/export"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Download(ctx *fiber.Ctx) error
}

type exportController struct {
	service service.IExportService
}

func NewExportController(service service.IExportService) IExportController {
	return &exportController{service: service}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/export", serverutils.JwtMiddleware)
	h.Get("/report", c.Download)
}

func (c *exportController) Download(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	result, err := c.service.ExportReport(ctx.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCloudDisabled):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"code":    503,
				"message": err.Error(),
			})
		case errors.Is(err, service.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"code":    404,
				"message": "User not found",
			})
		case errors.Is(err, export.ErrDOCXDependencyMissing):
			return ctx.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
				"success": false,
				"code":    501,
				"message": "DOCX export is not available on this server",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    500,
			"message": err.Error(),
		})
	}

	ctx.Set(fiber.HeaderContentType, result.MimeType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	return ctx.Send(result.Data)
}
