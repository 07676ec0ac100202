package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/:module/movements.
// quantity es obligatoria: un valor ausente o null se rechaza, nunca se toma como 0.
type RegisterMovementRequest struct {
	ItemID   string           `json:"itemId" validate:"required"`
	Kind     string           `json:"kind" validate:"required,oneof=entrance exit adjustment"`
	Quantity *decimal.Decimal `json:"quantity" validate:"required"`
	Note     string           `json:"note" validate:"max=2000"`
	UnitCost *decimal.Decimal `json:"unitCost"`
}

// MovementDTO movimiento del libro en respuestas.
type MovementDTO struct {
	ID           string           `json:"id"`
	Seq          int64            `json:"seq"`
	ItemID       string           `json:"itemId"`
	Kind         string           `json:"kind"`
	Quantity     decimal.Decimal  `json:"quantity"`
	BalanceAfter decimal.Decimal  `json:"balanceAfter"`
	UnitCost     *decimal.Decimal `json:"unitCost,omitempty"`
	Note         string           `json:"note"`
	OccurredAt   time.Time        `json:"occurredAt"`
}

// RegisterMovementResponse respuesta de POST /api/:module/movements.
type RegisterMovementResponse struct {
	Item     ItemDTO     `json:"item"`
	Movement MovementDTO `json:"movement"`
}

// MovementListResponse respuesta de GET /api/:module/movements.
type MovementListResponse struct {
	Movements []MovementDTO `json:"movements"`
}

// AuditResponse respuesta de GET /api/:module/items/:id/audit.
type AuditResponse struct {
	ItemID     string          `json:"itemId"`
	Module     string          `json:"module"`
	Quantity   decimal.Decimal `json:"quantity"`
	Replayed   decimal.Decimal `json:"replayed"`
	Movements  int             `json:"movements"`
	Consistent bool            `json:"consistent"`
	Problem    string          `json:"problem,omitempty"`
}

// ToMovementDTO convierte la entidad.
func ToMovementDTO(m *entity.Movement) MovementDTO {
	return MovementDTO{
		ID:           m.ID,
		Seq:          m.Seq,
		ItemID:       m.ItemID,
		Kind:         string(m.Kind),
		Quantity:     m.Quantity,
		BalanceAfter: m.BalanceAfter,
		UnitCost:     m.UnitCost,
		Note:         m.Note,
		OccurredAt:   m.OccurredAt,
	}
}

// ToMovementDTOs convierte una lista (nunca nil).
func ToMovementDTOs(list []*entity.Movement) []MovementDTO {
	out := make([]MovementDTO, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementDTO(m))
	}
	return out
}
