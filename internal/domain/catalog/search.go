// Package catalog agrupa reglas puras del catálogo de ítems (búsqueda y normalización).
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

// Fold normaliza s para comparación: sin acentos (NFD + remoción de marcas) y en minúsculas.
// "Ração" y "racao" producen el mismo resultado.
func Fold(s string) string {
	// transform.Chain no es seguro para uso concurrente: uno por llamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Matches indica si query aparece en nombre, local u observación del ítem
// (sin distinguir mayúsculas ni acentos). Query vacía siempre coincide.
func Matches(item *entity.Item, query string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	for _, field := range []string{item.Name, item.Location, item.Note} {
		if strings.Contains(Fold(field), q) {
			return true
		}
	}
	return false
}
