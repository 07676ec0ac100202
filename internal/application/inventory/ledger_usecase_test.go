package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
)

func TestLedger_ListMovements(t *testing.T) {
	fixed := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(t, time.Second, inventory.Options{Clock: func() time.Time { return fixed }})
	ctx := context.Background()
	item := f.create(t, "1", "")
	other := f.create(t, "", "")

	for _, q := range []string{"1", "2", "3"} {
		_, err := f.apply(item, entity.MovementEntrance, q)
		require.NoError(t, err)
	}
	_, err := f.apply(other, entity.MovementEntrance, "9")
	require.NoError(t, err)

	list, err := f.ledger.ListMovements(ctx, entity.ModuleInputs, item.ID, 0)
	require.NoError(t, err)
	require.Len(t, list, 4)
	// mismo instante: el orden de inserción decide (más reciente primero)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, entity.MovementAdjustment, list[3].Kind)

	list, _ = f.ledger.ListMovements(ctx, entity.ModuleInputs, item.ID, 2)
	assert.Len(t, list, 2)

	list, _ = f.ledger.ListMovements(ctx, entity.ModuleInputs, "", 500)
	assert.Len(t, list, 5)
	assert.Equal(t, other.ID, list[0].ItemID)

	_, err = f.ledger.ListMovements(ctx, entity.ModuleStock, item.ID, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_Audit(t *testing.T) {
	f := newFixture(t, time.Second, inventory.Options{})
	ctx := context.Background()
	item := f.create(t, "10", "")
	_, err := f.apply(item, entity.MovementExit, "4")
	require.NoError(t, err)

	rep, err := f.ledger.Audit(ctx, item.Module, item.ID)
	require.NoError(t, err)
	assert.True(t, rep.Consistent)
	assert.Equal(t, 2, rep.Movements)
	assert.True(t, rep.Replayed.Equal(decimal.NewFromInt(6)))

	// saldo alterado por fuera del libro
	require.NoError(t, f.items.UpdateBalance(ctx, item.ID, decimal.NewFromInt(99), decimal.Zero, time.Now()))
	checked, drift, err := f.ledger.AuditAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, checked)
	require.Len(t, drift, 1)
	assert.Equal(t, item.ID, drift[0].ItemID)
	assert.False(t, drift[0].Consistent)
	assert.NotEmpty(t, drift[0].Problem)

	_, err = f.ledger.Audit(ctx, entity.ModuleStock, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedger_AuditoriaConEscriturasConcurrentes(t *testing.T) {
	f := newFixture(t, 5*time.Second, inventory.Options{})
	ctx := context.Background()
	item := f.create(t, "10", "")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 300; i++ {
			if _, err := f.apply(item, entity.MovementEntrance, "1"); err != nil {
				t.Errorf("entrada %d: %v", i, err)
				return
			}
		}
	}()

	audits := 0
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		rep, err := f.ledger.Audit(ctx, item.Module, item.ID)
		require.NoError(t, err)
		require.Truef(t, rep.Consistent, "auditoría %d: saldo %s, libro %s: %s", audits, rep.Quantity, rep.Replayed, rep.Problem)
		audits++
	}

	assert.Positive(t, audits)
	f.assertFold(t, item.ID)
}

func TestLedger_AuditAllOmiteBorrados(t *testing.T) {
	f := newFixture(t, time.Second, inventory.Options{})
	ctx := context.Background()
	kept := f.create(t, "3", "")
	gone := f.create(t, "5", "")

	require.NoError(t, f.catalog.Delete(ctx, gone.Module, gone.ID))
	_, err := f.ledger.Audit(ctx, gone.Module, gone.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	checked, drift, err := f.ledger.AuditAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, checked)
	assert.Empty(t, drift)
	f.assertFold(t, kept.ID)
}
