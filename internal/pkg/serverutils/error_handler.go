package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers panics and converts unhandled errors into
// the standard JSON error envelope. Controllers still map their own
// service-level errors; this is the last line of defense so no failure ever
// crashes the view.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				err = ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"code":    500,
					"message": "Internal server error",
				})
			}
		}()

		if err := ctx.Next(); err != nil {
			code := fiber.StatusInternalServerError
			if fiberErr, ok := err.(*fiber.Error); ok {
				code = fiberErr.Code
			}
			return ctx.Status(code).JSON(fiber.Map{
				"success": false,
				"code":    code,
				"message": err.Error(),
			})
		}
		return nil
	}
}
