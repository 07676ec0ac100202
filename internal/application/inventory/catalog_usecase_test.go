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

func TestCatalog_Create(t *testing.T) {
	f := newFixture(t, time.Second, inventory.Options{})
	ctx := context.Background()

	t.Run("defaults cosméticos y apertura", func(t *testing.T) {
		exp := time.Date(2026, 12, 1, 18, 30, 0, 0, time.UTC)
		item, err := f.catalog.Create(ctx, entity.ModuleStock, inventory.CreateItemInput{
			Name: "  Semente de milho ", InitialQuantity: d("12.5"), Expiration: &exp,
		})
		require.NoError(t, err)
		assert.Equal(t, "Semente de milho", item.Name)
		assert.Equal(t, entity.CategoryOther, item.Category)
		assert.Equal(t, entity.UnitPiece, item.Unit)
		assert.True(t, item.Quantity.Equal(decimal.RequireFromString("12.5")))
		assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), *item.Expiration)

		hist, _ := f.moves.ListAllByItem(ctx, item.ID)
		require.Len(t, hist, 1)
		assert.Equal(t, entity.MovementAdjustment, hist[0].Kind)
		f.assertFold(t, item.ID)
	})

	t.Run("sin cantidad inicial no hay movimiento", func(t *testing.T) {
		item, err := f.catalog.Create(ctx, entity.ModuleStock, inventory.CreateItemInput{Name: "Arame", Category: "Peças"})
		require.NoError(t, err)
		assert.True(t, item.Quantity.IsZero())
		hist, _ := f.moves.ListAllByItem(ctx, item.ID)
		assert.Empty(t, hist)
	})

	t.Run("categoría libre se conserva", func(t *testing.T) {
		item, err := f.catalog.Create(ctx, entity.ModuleStock, inventory.CreateItemInput{Name: "X", Category: "Ferramentas"})
		require.NoError(t, err)
		assert.Equal(t, entity.Category("Ferramentas"), item.Category)
	})

	for _, tc := range []struct {
		name  string
		in    inventory.CreateItemInput
		field string
	}{
		{"nombre vacío", inventory.CreateItemInput{Name: "   "}, "name"},
		{"inicial negativa", inventory.CreateItemInput{Name: "a", InitialQuantity: d("-1")}, "initialQuantity"},
		{"mínimo negativo", inventory.CreateItemInput{Name: "a", Minimum: d("-0.1")}, "minimum"},
		{"valor negativo", inventory.CreateItemInput{Name: "a", UnitValue: d("-3")}, "unitValue"},
		{"inicial con cinco decimales", inventory.CreateItemInput{Name: "a", InitialQuantity: d("1.00001")}, "initialQuantity"},
		{"mínimo fuera de rango", inventory.CreateItemInput{Name: "a", Minimum: d("100000000000000")}, "minimum"},
		{"valor con cinco decimales", inventory.CreateItemInput{Name: "a", UnitValue: d("0.12345")}, "unitValue"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.catalog.Create(ctx, entity.ModuleStock, tc.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestCatalog_UpdateRechazaCantidad(t *testing.T) {
	f := newFixture(t, time.Second, inventory.Options{})
	item := f.create(t, "4", "")

	_, err := f.catalog.Update(context.Background(), item.Module, item.ID, inventory.UpdateItemInput{Quantity: d("100")})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantity", ve.Field)

	got, _ := f.items.GetByID(context.Background(), item.ID)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(4)))
}

func TestCatalog_UpdateParcial(t *testing.T) {
	f := newFixture(t, time.Second, inventory.Options{})
	ctx := context.Background()
	exp := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	item, err := f.catalog.Create(ctx, entity.ModuleInputs, inventory.CreateItemInput{
		Name: "Glifosato", Minimum: d("2"), Expiration: &exp, Location: "Galpão 1", InitialQuantity: d("3"),
	})
	require.NoError(t, err)

	name := "Glifosato 480"
	updated, err := f.catalog.Update(ctx, item.Module, item.ID, inventory.UpdateItemInput{
		Name: &name, ClearMinimum: true, ClearExpiration: true, UnitValue: d("45.9"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Glifosato 480", updated.Name)
	assert.Nil(t, updated.Minimum)
	assert.Nil(t, updated.Expiration)
	assert.Equal(t, "Galpão 1", updated.Location)
	assert.True(t, updated.Quantity.Equal(decimal.NewFromInt(3)))

	_, err = f.catalog.Update(ctx, entity.ModuleStock, item.ID, inventory.UpdateItemInput{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_GetOtroModulo(t *testing.T) {
	f := newFixture(t, time.Second, inventory.Options{})
	item := f.create(t, "", "")

	_, err := f.catalog.Get(context.Background(), entity.ModuleStock, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	got, err := f.catalog.Get(context.Background(), entity.ModuleInputs, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
}

func TestCatalog_List(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Minute)
	}
	f := newFixture(t, time.Second, inventory.Options{Clock: clock})
	ctx := context.Background()

	mk := func(name, category, qty, min, location string) {
		in := inventory.CreateItemInput{Name: name, Category: category, Location: location}
		if qty != "" {
			in.InitialQuantity = d(qty)
		}
		if min != "" {
			in.Minimum = d(min)
		}
		_, err := f.catalog.Create(ctx, entity.ModuleStock, in)
		require.NoError(t, err)
	}
	mk("Óleo diesel", "Combustível", "100", "50", "Tanque")
	mk("Ração bovina", "Ração", "2", "10", "Depósito")
	mk("Parafuso", "Peças", "5", "", "Oficina")
	mk("Sal mineral", "Ração", "30", "10", "Depósito")

	page, err := f.catalog.List(ctx, inventory.ListItemsInput{Module: entity.ModuleStock})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, "Sal mineral", page.Items[0].Name, "más recientes primero")
	assert.Equal(t, inventory.DefaultItemLimit, page.Limit)

	page, _ = f.catalog.List(ctx, inventory.ListItemsInput{Module: entity.ModuleStock, Query: "oleo"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Óleo diesel", page.Items[0].Name)

	page, _ = f.catalog.List(ctx, inventory.ListItemsInput{Module: entity.ModuleStock, Query: "DEPOSITO"})
	assert.Equal(t, 2, page.Total)

	page, _ = f.catalog.List(ctx, inventory.ListItemsInput{Module: entity.ModuleStock, Category: "Ração", LowOnly: true})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ração bovina", page.Items[0].Name)

	page, _ = f.catalog.List(ctx, inventory.ListItemsInput{Module: entity.ModuleStock, Limit: 1000, Offset: 3})
	assert.Equal(t, inventory.MaxItemLimit, page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Óleo diesel", page.Items[0].Name)

	page, _ = f.catalog.List(ctx, inventory.ListItemsInput{Module: entity.ModuleStock, Limit: -5})
	assert.Equal(t, 1, page.Limit, "un límite presente nunca baja de 1")
	require.Len(t, page.Items, 1)

	page, _ = f.catalog.List(ctx, inventory.ListItemsInput{Module: entity.ModuleStock, Offset: 10})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	page, _ = f.catalog.List(ctx, inventory.ListItemsInput{Module: entity.ModuleInputs})
	assert.Zero(t, page.Total)
}

func TestCatalog_DeleteEnCascada(t *testing.T) {
	f := newFixture(t, time.Second, inventory.Options{})
	ctx := context.Background()
	item := f.create(t, "3", "")
	_, err := f.apply(item, entity.MovementEntrance, "2")
	require.NoError(t, err)

	assert.ErrorIs(t, f.catalog.Delete(ctx, entity.ModuleStock, item.ID), domain.ErrNotFound)
	require.NoError(t, f.catalog.Delete(ctx, item.Module, item.ID))

	_, err = f.catalog.Get(ctx, item.Module, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	hist, _ := f.moves.ListAllByItem(ctx, item.ID)
	assert.Empty(t, hist)
	assert.ErrorIs(t, f.catalog.Delete(ctx, item.Module, item.ID), domain.ErrNotFound)

	_, err = f.apply(item, entity.MovementEntrance, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_Options(t *testing.T) {
	f := newFixture(t, time.Second, inventory.Options{})
	opts := f.catalog.Options()
	assert.Contains(t, opts.Categories, entity.CategoryFertilizers)
	assert.Contains(t, opts.Units, entity.UnitKilogram)
	assert.Equal(t, []entity.Module{entity.ModuleStock, entity.ModuleInputs}, opts.Modules)
}
