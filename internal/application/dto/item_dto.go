package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// CreateItemRequest body para POST /api/:module/items.
type CreateItemRequest struct {
	Name            string           `json:"name" validate:"required,max=200"`
	Category        string           `json:"category" validate:"max=60"`
	Unit            string           `json:"unit" validate:"max=20"`
	InitialQuantity *decimal.Decimal `json:"initialQuantity"`
	Minimum         *decimal.Decimal `json:"minimum"`
	UnitValue       *decimal.Decimal `json:"unitValue"`
	Location        string           `json:"location" validate:"max=200"`
	Note            string           `json:"note" validate:"max=2000"`
	Expiration      string           `json:"expiration" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateItemRequest body para PATCH /api/:module/items/:id.
// minimum y expiration aceptan null para borrar el valor. quantity siempre se rechaza.
type UpdateItemRequest struct {
	Name       *string          `json:"name" validate:"omitempty,max=200"`
	Category   *string          `json:"category" validate:"omitempty,max=60"`
	Unit       *string          `json:"unit" validate:"omitempty,max=20"`
	Minimum    NullableDecimal  `json:"minimum"`
	UnitValue  *decimal.Decimal `json:"unitValue"`
	Location   *string          `json:"location" validate:"omitempty,max=200"`
	Note       *string          `json:"note" validate:"omitempty,max=2000"`
	Expiration NullableDate     `json:"expiration"`
	Quantity   NullableDecimal  `json:"quantity"`
}

// ItemDTO representación de un ítem en respuestas.
type ItemDTO struct {
	ID           string           `json:"id"`
	Module       string           `json:"module"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Unit         string           `json:"unit"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Minimum      *decimal.Decimal `json:"minimum"`
	UnitValue    decimal.Decimal  `json:"unitValue"`
	TotalValue   decimal.Decimal  `json:"totalValue"`
	BelowMinimum bool             `json:"belowMinimum"`
	Location     string           `json:"location"`
	Note         string           `json:"note"`
	Expiration   *string          `json:"expiration"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// ItemListResponse respuesta de GET /api/:module/items.
type ItemListResponse struct {
	Items []ItemDTO    `json:"items"`
	Page  PageResponse `json:"page"`
}

// CatalogOptionsResponse respuesta de GET /api/catalog/options.
type CatalogOptionsResponse struct {
	Categories []string       `json:"categories"`
	Units      []string       `json:"units"`
	Modules    []ModuleOption `json:"modules"`
}

// ModuleOption módulo con su etiqueta.
type ModuleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ToItemDTO convierte la entidad.
func ToItemDTO(it *entity.Item) ItemDTO {
	out := ItemDTO{
		ID:           it.ID,
		Module:       string(it.Module),
		Name:         it.Name,
		Category:     string(it.Category),
		Unit:         string(it.Unit),
		Quantity:     it.Quantity,
		Minimum:      it.Minimum,
		UnitValue:    it.UnitValue,
		TotalValue:   it.TotalValue().Round(2),
		BelowMinimum: it.BelowMinimum(),
		Location:     it.Location,
		Note:         it.Note,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
	if it.Expiration != nil {
		s := it.Expiration.Format(entity.DateLayout)
		out.Expiration = &s
	}
	return out
}

// ToItemDTOs convierte una lista (nunca nil).
func ToItemDTOs(items []*entity.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemDTO(it))
	}
	return out
}
