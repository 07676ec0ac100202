package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/application/dto"
	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// ItemHandler maneja el catálogo de ítems de un módulo.
type ItemHandler struct {
	catalog *inventory.CatalogUseCase
	ledger  *inventory.LedgerUseCase
	log     *logger.Logger
}

// NewItemHandler construye el handler.
func NewItemHandler(catalog *inventory.CatalogUseCase, ledger *inventory.LedgerUseCase, log *logger.Logger) *ItemHandler {
	return &ItemHandler{catalog: catalog, ledger: ledger, log: log}
}

// Options godoc
// @Summary  Categorías, unidades y módulos para los formularios
// @Tags     catalog
// @Produce  json
// @Success  200  {object}  dto.CatalogOptionsResponse
// @Router   /api/catalog/options [get]
func (h *ItemHandler) Options(c *fiber.Ctx) error {
	opts := h.catalog.Options()
	out := dto.CatalogOptionsResponse{
		Categories: make([]string, 0, len(opts.Categories)),
		Units:      make([]string, 0, len(opts.Units)),
		Modules:    make([]dto.ModuleOption, 0, len(opts.Modules)),
	}
	for _, cat := range opts.Categories {
		out.Categories = append(out.Categories, string(cat))
	}
	for _, u := range opts.Units {
		out.Units = append(out.Units, string(u))
	}
	for _, m := range opts.Modules {
		out.Modules = append(out.Modules, dto.ModuleOption{Value: string(m), Label: m.Label()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary  Listar ítems del módulo
// @Tags     items
// @Produce  json
// @Param    module    path   string  true   "estoque | insumos"
// @Param    q         query  string  false  "Texto en nombre, ubicación u observación"
// @Param    category  query  string  false  "Categoría exacta"
// @Param    low       query  string  false  "1 = solo bajo mínimo"
// @Param    limit     query  int     false  "Por defecto 50, máximo 200"
// @Param    offset    query  int     false  "Desplazamiento"
// @Success  200  {object}  dto.ItemListResponse
// @Router   /api/{module}/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	page, err := h.catalog.List(c.UserContext(), inventory.ListItemsInput{
		Module:   GetModule(c),
		Query:    c.Query("q"),
		Category: c.Query("category"),
		LowOnly:  queryBool(c.Query("low")),
		Limit:    queryCount(c, "limit"),
		Offset:   c.QueryInt("offset"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ItemListResponse{
		Items: dto.ToItemDTOs(page.Items),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: page.Total},
	})
}

// Create godoc
// @Summary  Dar de alta un ítem (la cantidad inicial se registra como ajuste)
// @Tags     items
// @Accept   json
// @Produce  json
// @Param    module  path  string                 true  "estoque | insumos"
// @Param    body    body  dto.CreateItemRequest  true  "Ítem"
// @Success  201  {object}  dto.ItemDTO
// @Failure  400  {object}  dto.ErrorResponse
// @Router   /api/{module}/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if details := validateStruct(&req); details != nil {
		return validationFailed(c, details)
	}

	in := inventory.CreateItemInput{
		Name:            req.Name,
		Category:        req.Category,
		Unit:            req.Unit,
		InitialQuantity: req.InitialQuantity,
		Minimum:         req.Minimum,
		UnitValue:       req.UnitValue,
		Location:        req.Location,
		Note:            req.Note,
	}
	if s := strings.TrimSpace(req.Expiration); s != "" {
		exp, err := entity.ParseDate(s)
		if err != nil {
			return validationFailed(c, map[string]string{"expiration": "fecha inválida, se espera YYYY-MM-DD"})
		}
		in.Expiration = &exp
	}

	item, err := h.catalog.Create(c.UserContext(), GetModule(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemDTO(item))
}

// Get godoc
// @Summary  Obtener un ítem
// @Tags     items
// @Produce  json
// @Param    module  path  string  true  "estoque | insumos"
// @Param    id      path  string  true  "ID del ítem"
// @Success  200  {object}  dto.ItemDTO
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/{module}/items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, err := h.catalog.Get(c.UserContext(), GetModule(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToItemDTO(item))
}

// Update godoc
// @Summary  Editar campos de catálogo (el saldo solo cambia por movimientos)
// @Tags     items
// @Accept   json
// @Produce  json
// @Param    module  path  string                 true  "estoque | insumos"
// @Param    id      path  string                 true  "ID del ítem"
// @Param    body    body  dto.UpdateItemRequest  true  "Campos a modificar; null borra minimum/expiration"
// @Success  200  {object}  dto.ItemDTO
// @Failure  400  {object}  dto.ErrorResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/{module}/items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if details := validateStruct(&req); details != nil {
		return validationFailed(c, details)
	}

	item, err := h.catalog.Update(c.UserContext(), GetModule(c), c.Params("id"), toUpdateInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToItemDTO(item))
}

// Delete godoc
// @Summary  Eliminar un ítem junto con su historial
// @Tags     items
// @Param    module  path  string  true  "estoque | insumos"
// @Param    id      path  string  true  "ID del ítem"
// @Success  204
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/{module}/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.Delete(c.UserContext(), GetModule(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Audit godoc
// @Summary  Recalcular el saldo desde el libro y compararlo
// @Tags     items
// @Produce  json
// @Param    module  path  string  true  "estoque | insumos"
// @Param    id      path  string  true  "ID del ítem"
// @Success  200  {object}  dto.AuditResponse
// @Failure  404  {object}  dto.ErrorResponse
// @Router   /api/{module}/items/{id}/audit [get]
func (h *ItemHandler) Audit(c *fiber.Ctx) error {
	rep, err := h.ledger.Audit(c.UserContext(), GetModule(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.AuditResponse{
		ItemID:     rep.ItemID,
		Module:     string(rep.Module),
		Quantity:   rep.Quantity,
		Replayed:   rep.Replayed,
		Movements:  rep.Movements,
		Consistent: rep.Consistent,
		Problem:    rep.Problem,
	})
}

// toUpdateInput traduce null explícito a Clear*. Un quantity presente (aunque sea null)
// llega al caso de uso para que lo rechace.
func toUpdateInput(req dto.UpdateItemRequest) inventory.UpdateItemInput {
	in := inventory.UpdateItemInput{
		Name:      req.Name,
		Category:  req.Category,
		Unit:      req.Unit,
		UnitValue: req.UnitValue,
		Location:  req.Location,
		Note:      req.Note,
	}
	if req.Minimum.Set {
		if req.Minimum.Value == nil {
			in.ClearMinimum = true
		} else {
			in.Minimum = req.Minimum.Value
		}
	}
	if req.Expiration.Set {
		if req.Expiration.Value == nil {
			in.ClearExpiration = true
		} else {
			in.Expiration = req.Expiration.Value
		}
	}
	if req.Quantity.Set {
		q := decimal.Zero
		if req.Quantity.Value != nil {
			q = *req.Quantity.Value
		}
		in.Quantity = &q
	}
	return in
}

// queryCount distingue ausente (0, el caso de uso aplica su valor por defecto) de presente:
// un valor presente, incluso no numérico, nunca baja de 1.
func queryCount(c *fiber.Ctx, key string) int {
	if strings.TrimSpace(c.Query(key)) == "" {
		return 0
	}
	return max(c.QueryInt(key), 1)
}

func queryBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "sim", "si":
		return true
	}
	return false
}
