package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain/alert"
)

// SummaryDTO respuesta de GET /api/summary.
type SummaryDTO struct {
	Meta        SummaryMetaDTO  `json:"meta"`
	Urgent      []UrgentItemDTO `json:"urgent"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// SummaryMetaDTO contadores del resumen.
type SummaryMetaDTO struct {
	Today             string          `json:"today"` // fecha de referencia YYYY-MM-DD
	HorizonDays       int             `json:"horizonDays"`
	Limit             int             `json:"limit"`
	Total             int             `json:"total"`
	LowStockCount     int             `json:"lowStockCount"`
	ExpiringSoonCount int             `json:"expiringSoonCount"`
	ExpiredCount      int             `json:"expiredCount"`
	TotalValue        decimal.Decimal `json:"totalValue"` // redondeado a 2 decimales
}

// UrgentItemDTO ítem de la lista urgente con sus banderas.
type UrgentItemDTO struct {
	ItemDTO
	ModuleLabel  string `json:"moduleLabel"`
	DaysToExpire *int   `json:"daysToExpire"`
	Expired      bool   `json:"expired"`
	ExpiringSoon bool   `json:"expiringSoon"`
	LowStock     bool   `json:"lowStock"`
	Severity     int    `json:"severity"`
	Reason       string `json:"reason"`
}

// ToSummaryDTO convierte el resultado del motor de alertas.
func ToSummaryDTO(s alert.Summary, today, generatedAt time.Time) *SummaryDTO {
	out := &SummaryDTO{
		Meta: SummaryMetaDTO{
			Today:             today.Format("2006-01-02"),
			HorizonDays:       s.Meta.HorizonDays,
			Limit:             s.Meta.Limit,
			Total:             s.Meta.Total,
			LowStockCount:     s.Meta.LowStockCount,
			ExpiringSoonCount: s.Meta.ExpiringSoonCount,
			ExpiredCount:      s.Meta.ExpiredCount,
			TotalValue:        s.Meta.TotalValue.Round(2),
		},
		Urgent:      make([]UrgentItemDTO, 0, len(s.Urgent)),
		GeneratedAt: generatedAt,
	}
	for _, e := range s.Urgent {
		out.Urgent = append(out.Urgent, UrgentItemDTO{
			ItemDTO:      ToItemDTO(e.Item),
			ModuleLabel:  e.Module.Label(),
			DaysToExpire: e.DaysToExpire,
			Expired:      e.Expired,
			ExpiringSoon: e.ExpiringSoon,
			LowStock:     e.LowStock,
			Severity:     e.Severity,
			Reason:       e.Reason,
		})
	}
	return out
}
