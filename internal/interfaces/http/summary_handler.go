package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agro-inventario/internal/application/analytics"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// SummaryHandler expone el resumen de alertas del panel.
type SummaryHandler struct {
	uc  *analytics.SummaryUseCase
	log *logger.Logger
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *analytics.SummaryUseCase, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{uc: uc, log: log}
}

// Get godoc
// @Summary  Resumen de vencimientos y stock bajo de todos los módulos
// @Tags     summary
// @Produce  json
// @Param    horizonDays  query  int  false  "Días hacia adelante (1-365, por defecto 30)"
// @Param    limit        query  int  false  "Tamaño de la lista urgente (1-300, por defecto 50)"
// @Success  200  {object}  dto.SummaryDTO
// @Failure  503  {object}  dto.ErrorResponse
// @Router   /api/summary [get]
func (h *SummaryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.UserContext(), queryCount(c, "horizonDays"), queryCount(c, "limit"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
