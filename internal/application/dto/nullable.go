package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// NullableDecimal distingue campo ausente (Set=false), null (Set=true, Value=nil) y valor.
type NullableDecimal struct {
	Set   bool
	Value *decimal.Decimal
}

// UnmarshalJSON implementa json.Unmarshaler.
func (n *NullableDecimal) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	n.Value = &d
	return nil
}

// NullableDate igual que NullableDecimal para fechas "YYYY-MM-DD".
type NullableDate struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implementa json.Unmarshaler.
func (n *NullableDate) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("fecha: %w", err)
	}
	if s == "" {
		n.Value = nil
		return nil
	}
	t, err := entity.ParseDate(s)
	if err != nil {
		return fmt.Errorf("fecha %q: se espera YYYY-MM-DD", s)
	}
	n.Value = &t
	return nil
}
