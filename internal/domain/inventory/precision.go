package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain"
)

// MaxScale decimales admitidos en cantidades y valores (columnas NUMERIC(18,4)).
const MaxScale = 4

// maxAmount primer valor que no cabe en 14 dígitos enteros.
var maxAmount = decimal.New(1, 14)

// CheckAmount rechaza valores que la persistencia no puede guardar sin redondear.
// Ambos backends aplican el mismo límite.
func CheckAmount(field string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(MaxScale)) {
		return domain.NewValidationError(field, "admite como máximo 4 decimales")
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return domain.NewValidationError(field, "fuera de rango")
	}
	return nil
}
