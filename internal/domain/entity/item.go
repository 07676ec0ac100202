package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de calendario (sin hora) usado en vencimientos.
const DateLayout = "2006-01-02"

// Item representa una entrada de inventario con saldo rastreado (estoque o insumo).
// Quantity es derivado: solo lo escribe el motor de movimientos, nunca una edición de catálogo.
type Item struct {
	ID         string
	Module     Module
	Name       string
	Category   Category
	Unit       Unit
	Quantity   decimal.Decimal
	Minimum    *decimal.Decimal // nil = sin alerta de stock bajo
	UnitValue  decimal.Decimal
	Location   string
	Note       string
	Expiration *time.Time // fecha de calendario en UTC 00:00
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BelowMinimum indica quantity < minimum (estricto). Sin mínimo nunca está bajo.
func (i *Item) BelowMinimum() bool {
	return i.Minimum != nil && i.Quantity.LessThan(*i.Minimum)
}

// TotalValue devuelve quantity × unitValue.
func (i *Item) TotalValue() decimal.Decimal {
	return i.Quantity.Mul(i.UnitValue)
}

// Clone devuelve una copia profunda (los punteros no se comparten).
func (i *Item) Clone() *Item {
	c := *i
	if i.Minimum != nil {
		m := *i.Minimum
		c.Minimum = &m
	}
	if i.Expiration != nil {
		e := *i.Expiration
		c.Expiration = &e
	}
	return &c
}

// ToDate normaliza t a la fecha de calendario (UTC 00:00) en su propia zona.
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
