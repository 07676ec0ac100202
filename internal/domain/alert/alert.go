// Package alert clasifica ítems por urgencia (vencido, por vencer, bajo mínimo) y arma el
// ranking del panel. Funciones puras: no leen relojes ni repositorios.
package alert

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// Severidades (mayor = más urgente).
const (
	SeverityOK       = 0
	SeverityLowStock = 1
	SeverityExpiring = 2
	SeverityExpired  = 3
)

// Límites del horizonte de vencimiento y del tamaño de la lista urgente.
const (
	DefaultHorizonDays = 30
	MinHorizonDays     = 1
	MaxHorizonDays     = 365

	DefaultUrgentLimit = 50
	MinUrgentLimit     = 1
	MaxUrgentLimit     = 300
)

// ClampHorizon aplica el valor por defecto (0 = ausente) y el rango [1, 365].
func ClampHorizon(days int) int {
	if days == 0 {
		return DefaultHorizonDays
	}
	return clamp(days, MinHorizonDays, MaxHorizonDays)
}

// ClampUrgentLimit aplica el valor por defecto (0 = ausente) y el rango [1, 300].
func ClampUrgentLimit(n int) int {
	if n == 0 {
		return DefaultUrgentLimit
	}
	return clamp(n, MinUrgentLimit, MaxUrgentLimit)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Flags resultado de clasificar un ítem.
type Flags struct {
	DaysToExpire *int
	Expired      bool
	ExpiringSoon bool
	LowStock     bool
	Severity     int
}

// Classify calcula las banderas de un ítem. today es la fecha de calendario de referencia.
func Classify(item *entity.Item, today time.Time, horizonDays int) Flags {
	var f Flags
	if item.Expiration != nil {
		d := DaysBetween(today, *item.Expiration)
		f.DaysToExpire = &d
		f.Expired = d < 0
		f.ExpiringSoon = d >= 0 && d <= horizonDays
	}
	f.LowStock = item.BelowMinimum()

	switch {
	case f.Expired:
		f.Severity = SeverityExpired
	case f.ExpiringSoon:
		f.Severity = SeverityExpiring
	case f.LowStock:
		f.Severity = SeverityLowStock
	default:
		f.Severity = SeverityOK
	}
	return f
}

// DaysBetween devuelve los días de calendario completos de from a to (negativo si to ya pasó).
func DaysBetween(from, to time.Time) int {
	a := entity.ToDate(from)
	b := entity.ToDate(to)
	return int(b.Sub(a).Hours() / 24)
}

// Entry es un ítem clasificado junto con su módulo de origen.
type Entry struct {
	Module entity.Module
	Item   *entity.Item
	Flags
	Reason string
}

// Source es la instantánea de un módulo.
type Source struct {
	Module entity.Module
	Items  []*entity.Item
}

// Meta contadores agregados del resumen.
type Meta struct {
	HorizonDays       int
	Limit             int
	Total             int
	LowStockCount     int
	ExpiringSoonCount int
	ExpiredCount      int
	TotalValue        decimal.Decimal
}

// Summary resultado del motor: contadores y lista urgente ordenada.
type Summary struct {
	Meta   Meta
	Urgent []Entry
}

// Summarize clasifica todos los ítems de todas las fuentes y arma el ranking.
// horizonDays y limit ya deben venir normalizados con ClampHorizon / ClampUrgentLimit.
func Summarize(sources []Source, today time.Time, horizonDays, limit int) Summary {
	s := Summary{Meta: Meta{HorizonDays: horizonDays, Limit: limit, TotalValue: decimal.Zero}}
	urgent := make([]Entry, 0)

	for _, src := range sources {
		for _, it := range src.Items {
			f := Classify(it, today, horizonDays)
			s.Meta.Total++
			if f.LowStock {
				s.Meta.LowStockCount++
			}
			if f.ExpiringSoon {
				s.Meta.ExpiringSoonCount++
			}
			if f.Expired {
				s.Meta.ExpiredCount++
			}
			s.Meta.TotalValue = s.Meta.TotalValue.Add(it.TotalValue())

			if f.Severity > SeverityOK {
				urgent = append(urgent, Entry{Module: src.Module, Item: it, Flags: f, Reason: Reason(it, f)})
			}
		}
	}

	sort.SliceStable(urgent, func(i, j int) bool { return Less(urgent[i], urgent[j]) })
	if len(urgent) > limit {
		urgent = urgent[:limit]
	}
	s.Urgent = urgent
	return s
}

// Less define el orden de la lista urgente: severidad descendente, luego días para vencer
// ascendente (sin vencimiento = +infinito), luego módulo y nombre para un orden estable.
func Less(a, b Entry) bool {
	if a.Severity != b.Severity {
		return a.Severity > b.Severity
	}
	da, db := a.DaysToExpire, b.DaysToExpire
	switch {
	case da != nil && db == nil:
		return true
	case da == nil && db != nil:
		return false
	case da != nil && db != nil && *da != *db:
		return *da < *db
	}
	if a.Module != b.Module {
		return a.Module < b.Module
	}
	return a.Item.Name < b.Item.Name
}

// Reason explica en una línea por qué el ítem está en la lista urgente.
func Reason(item *entity.Item, f Flags) string {
	switch f.Severity {
	case SeverityExpired:
		return fmt.Sprintf("vencido hace %d día(s)", -*f.DaysToExpire)
	case SeverityExpiring:
		if *f.DaysToExpire == 0 {
			return "vence hoy"
		}
		return fmt.Sprintf("vence en %d día(s)", *f.DaysToExpire)
	case SeverityLowStock:
		return fmt.Sprintf("saldo %s %s por debajo del mínimo %s", item.Quantity.String(), item.Unit, item.Minimum.String())
	}
	return ""
}
