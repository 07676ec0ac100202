package http

import (
	"context"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agro-inventario/internal/application/analytics"
	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// HealthCheck verifica una dependencia externa (base de datos, broker, caché).
type HealthCheck func(ctx context.Context) error

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Service string
	Catalog *inventory.CatalogUseCase
	Balance *inventory.ApplyMovementUseCase
	Ledger  *inventory.LedgerUseCase
	Summary *analytics.SummaryUseCase
	Checks  map[string]HealthCheck
	Logger  *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", healthHandler(deps.Service, deps.Checks))

	api := app.Group("/api")

	itemHandler := NewItemHandler(deps.Catalog, deps.Ledger, log)
	movementHandler := NewMovementHandler(deps.Balance, deps.Ledger, log)
	summaryHandler := NewSummaryHandler(deps.Summary, log)

	// Rutas fijas antes de las de /:module.
	api.Get("/catalog/options", itemHandler.Options)
	api.Get("/summary", summaryHandler.Get)

	mod := api.Group("/:module", RequireModule())

	items := mod.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.Get)
	items.Patch("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/audit", itemHandler.Audit)

	movements := mod.Group("/movements")
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
}

// healthHandler responde 200 si todas las verificaciones pasan, 503 si alguna falla.
func healthHandler(service string, checks map[string]HealthCheck) fiber.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *fiber.Ctx) error {
		status := "ok"
		results := make(fiber.Map, len(names))
		for _, name := range names {
			if err := checks[name](c.UserContext()); err != nil {
				status = "degraded"
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}
		code := fiber.StatusOK
		if status != "ok" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{"status": status, "service": service, "checks": results})
	}
}
