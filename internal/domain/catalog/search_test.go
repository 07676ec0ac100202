package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/agro-inventario/internal/domain/catalog"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "racao", catalog.Fold("Ração"))
	assert.Equal(t, "pecas de reposicao", catalog.Fold("  Peças de Reposição "))
	assert.Equal(t, "combustivel", catalog.Fold("COMBUSTÍVEL"))
}

func TestMatches(t *testing.T) {
	item := &entity.Item{Name: "Adubo NPK 20-05-20", Location: "Galpão 2", Note: "lote da cooperativa"}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"vacía coincide", "", true},
		{"nombre sin mayúsculas", "adubo", true},
		{"local sin acento", "galpao", true},
		{"local con acento", "GALPÃO", true},
		{"observación", "cooperativa", true},
		{"sin coincidencia", "semente", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Matches(item, tt.query))
		})
	}
}
