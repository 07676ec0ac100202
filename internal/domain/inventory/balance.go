// Package inventory contiene las reglas puras del libro de saldos: validación de movimientos,
// plegado (fold) del saldo y replay para auditoría.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// ValidateMovement verifica tipo y cantidad. Nunca aplica valores por defecto.
func ValidateMovement(kind entity.MovementKind, quantity *decimal.Decimal, unitCost *decimal.Decimal) error {
	if !kind.Valid() {
		return domain.NewValidationError("kind", "debe ser entrance, exit o adjustment")
	}
	if quantity == nil {
		return domain.NewValidationError("quantity", "es obligatoria")
	}
	if err := CheckAmount("quantity", *quantity); err != nil {
		return err
	}
	switch kind {
	case entity.MovementEntrance, entity.MovementExit:
		if !quantity.IsPositive() {
			return domain.NewValidationError("quantity", "debe ser mayor que cero")
		}
	case entity.MovementAdjustment:
		if quantity.IsNegative() {
			return domain.NewValidationError("quantity", "el ajuste no puede ser negativo")
		}
	}
	if unitCost != nil {
		if unitCost.IsNegative() {
			return domain.NewValidationError("unitCost", "no puede ser negativo")
		}
		if err := CheckAmount("unitCost", *unitCost); err != nil {
			return err
		}
	}
	return nil
}

// Apply calcula el nuevo saldo a partir del actual:
//   - entrance:   saldo + q
//   - exit:       saldo - q (ErrInsufficientStock si queda negativo)
//   - adjustment: q (valor absoluto)
func Apply(current decimal.Decimal, kind entity.MovementKind, quantity decimal.Decimal) (decimal.Decimal, error) {
	switch kind {
	case entity.MovementEntrance:
		return current.Add(quantity), nil
	case entity.MovementExit:
		next := current.Sub(quantity)
		if next.IsNegative() {
			return current, fmt.Errorf("saldo %s, salida %s: %w", current, quantity, domain.ErrInsufficientStock)
		}
		return next, nil
	case entity.MovementAdjustment:
		return quantity, nil
	}
	return current, domain.NewValidationError("kind", "tipo desconocido")
}

// Replay pliega los movimientos (en orden de Seq ascendente) desde saldo 0.
// Un error indica un historial que nunca debió haberse registrado.
func Replay(movements []*entity.Movement) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, m := range movements {
		next, err := Apply(balance, m.Kind, m.Quantity)
		if err != nil {
			return balance, fmt.Errorf("movimiento %s (seq %d): %w", m.ID, m.Seq, err)
		}
		balance = next
	}
	return balance, nil
}
