package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agro-inventario/internal/application/dto"
	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// MovementHandler registra y lista movimientos del libro.
type MovementHandler struct {
	balance *inventory.ApplyMovementUseCase
	ledger  *inventory.LedgerUseCase
	log     *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(balance *inventory.ApplyMovementUseCase, ledger *inventory.LedgerUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{balance: balance, ledger: ledger, log: log}
}

// Register godoc
// @Summary  Registrar entrada, salida o ajuste
// @Tags     movements
// @Accept   json
// @Produce  json
// @Param    module  path  string                       true  "estoque | insumos"
// @Param    body    body  dto.RegisterMovementRequest  true  "itemId, kind, quantity, note, unitCost"
// @Success  201  {object}  dto.RegisterMovementResponse
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Failure  409  {object}  dto.ErrorResponse  "insufficient_balance o conflict (Retry-After)"
// @Failure  503  {object}  dto.ErrorResponse
// @Router   /api/{module}/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if details := validateStruct(&req); details != nil {
		return validationFailed(c, details)
	}

	res, err := h.balance.ApplyMovement(c.UserContext(), inventory.MovementInput{
		Module:   GetModule(c),
		ItemID:   req.ItemID,
		Kind:     entity.MovementKind(req.Kind),
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
		Note:     req.Note,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{
		Item:     dto.ToItemDTO(res.Item),
		Movement: dto.ToMovementDTO(res.Movement),
	})
}

// List godoc
// @Summary  Movimientos recientes del módulo o de un ítem
// @Tags     movements
// @Produce  json
// @Param    module  path   string  true   "estoque | insumos"
// @Param    itemId  query  string  false  "Filtrar por ítem"
// @Param    limit   query  int     false  "Por defecto 30, máximo 200"
// @Success  200  {object}  dto.MovementListResponse
// @Router   /api/{module}/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	list, err := h.ledger.ListMovements(c.UserContext(), GetModule(c), c.Query("itemId"), queryCount(c, "limit"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MovementListResponse{Movements: dto.ToMovementDTOs(list)})
}
