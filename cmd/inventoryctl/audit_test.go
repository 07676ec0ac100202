package main

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

func TestWriteAudit_SinDiferencias(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeAudit(&buf, 12, nil))
	assert.Equal(t, "12 ítem(s) auditados, sin diferencias\n", buf.String())
}

func TestWriteAudit_ConDiferencias(t *testing.T) {
	var buf bytes.Buffer
	err := writeAudit(&buf, 3, []*inventory.AuditReport{{
		Module:    entity.ModuleInputs,
		ItemID:    "i-7",
		Name:      "Calcário",
		Quantity:  decimal.NewFromInt(10),
		Replayed:  decimal.NewFromInt(8),
		Movements: 4,
		Problem:   "saldo 10 difiere del libro 8",
	}})
	assert.EqualError(t, err, "1 de 3 ítem(s) con saldo inconsistente")
	assert.Contains(t, buf.String(), "insumos")
	assert.Contains(t, buf.String(), "Calcário")
	assert.Contains(t, buf.String(), "saldo 10 difiere del libro 8")
}

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"audit", "summary", "migrate"}, names)

	migrate, _, err := root.Find([]string{"migrate", "version"})
	require.NoError(t, err)
	assert.Equal(t, "version", migrate.Name())
}
