package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento del libro de saldos.
type MovementKind string

// Tipos de movimiento de inventario.
const (
	MovementEntrance   MovementKind = "entrance"   // entrada: suma
	MovementExit       MovementKind = "exit"       // salida: resta, nunca por debajo de cero
	MovementAdjustment MovementKind = "adjustment" // ajuste: saldo absoluto (conteo físico)
)

// Valid indica si el tipo es uno de los tres soportados.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementEntrance, MovementExit, MovementAdjustment:
		return true
	}
	return false
}

// Movement es un registro inmutable del libro. Las correcciones se hacen con un movimiento
// compensatorio, nunca editando o borrando uno existente.
type Movement struct {
	ID           string
	Seq          int64 // orden de inserción; desempata OccurredAt y define el orden de replay
	ItemID       string
	Kind         MovementKind
	Quantity     decimal.Decimal // entrance/exit: delta > 0; adjustment: saldo absoluto >= 0
	BalanceAfter decimal.Decimal
	UnitCost     *decimal.Decimal
	Note         string
	OccurredAt   time.Time
}
