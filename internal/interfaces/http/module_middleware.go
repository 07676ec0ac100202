package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agro-inventario/internal/application/dto"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// LocalModule clave de c.Locals con el módulo de la ruta.
const LocalModule = "module"

// RequireModule valida el parámetro :module de la ruta (estoque | insumos).
// Un módulo desconocido responde 404.
func RequireModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, ok := entity.ParseModule(c.Params("module"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code:    dto.CodeNotFound,
				Message: "módulo desconocido '" + c.Params("module") + "'",
			})
		}
		c.Locals(LocalModule, m)
		return c.Next()
	}
}

// GetModule devuelve el módulo validado por RequireModule.
func GetModule(c *fiber.Ctx) entity.Module {
	m, _ := c.Locals(LocalModule).(entity.Module)
	return m
}
