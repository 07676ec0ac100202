//go:build integration

package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	inv "github.com/jhoicas/agro-inventario/internal/domain/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
	"github.com/jhoicas/agro-inventario/internal/infrastructure/postgres"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("agro_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		panic(err)
	}
	if err := postgres.Migrate(dsn); err != nil {
		_ = container.Terminate(ctx)
		panic(err)
	}
	testPool, err = postgres.NewPoolFromURL(ctx, dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		panic(err)
	}

	code := m.Run()
	testPool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUseCases(lockTimeout time.Duration) (*inventory.CatalogUseCase, *inventory.ApplyMovementUseCase, *postgres.TxRunner) {
	runner := postgres.NewTxRunner(testPool, lockTimeout)
	items := postgres.NewItemRepository(testPool)
	moves := postgres.NewMovementRepository(testPool)
	return inventory.NewCatalogUseCase(runner, items, moves, inventory.Options{}),
		inventory.NewApplyMovementUseCase(runner, inventory.Options{StorageRetries: 2}),
		runner
}

func qty(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPostgres_SinActualizacionesPerdidas(t *testing.T) {
	ctx := context.Background()
	catalog, balance, _ := newUseCases(10 * time.Second)
	item, err := catalog.Create(ctx, entity.ModuleInputs, inventory.CreateItemInput{Name: "Calcário"})
	require.NoError(t, err)

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := balance.ApplyMovement(ctx, inventory.MovementInput{
				Module: entity.ModuleInputs, ItemID: item.ID, Kind: entity.MovementEntrance, Quantity: qty("2.5"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := postgres.NewItemRepository(testPool).GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(100)), "got %s", got.Quantity)

	hist, err := postgres.NewMovementRepository(testPool).ListAllByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Len(t, hist, n)
	replayed, err := inv.Replay(hist)
	require.NoError(t, err)
	assert.True(t, replayed.Equal(got.Quantity))
}

func TestPostgres_LockTimeoutEsConflict(t *testing.T) {
	ctx := context.Background()
	catalog, balance, runner := newUseCases(100 * time.Millisecond)
	item, err := catalog.Create(ctx, entity.ModuleStock, inventory.CreateItemInput{Name: "Óleo 15W40", InitialQuantity: qty("5")})
	require.NoError(t, err)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = runner.Run(ctx, item.ID, func(items repository.ItemRepository, _ repository.MovementRepository) error {
			if _, err := items.GetForUpdate(ctx, item.ID); err != nil {
				return err
			}
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	_, err = balance.ApplyMovement(ctx, inventory.MovementInput{
		Module: entity.ModuleStock, ItemID: item.ID, Kind: entity.MovementExit, Quantity: qty("1"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	close(release)
	<-done
}

func TestPostgres_SalidaRechazadaYCascada(t *testing.T) {
	ctx := context.Background()
	catalog, balance, _ := newUseCases(time.Second)
	exp := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	item, err := catalog.Create(ctx, entity.ModuleStock, inventory.CreateItemInput{
		Name: "Vermífugo", InitialQuantity: qty("10"), Minimum: qty("5"), Expiration: &exp,
	})
	require.NoError(t, err)

	_, err = balance.ApplyMovement(ctx, inventory.MovementInput{Module: entity.ModuleStock, ItemID: item.ID, Kind: entity.MovementExit, Quantity: qty("11")})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := catalog.Get(ctx, entity.ModuleStock, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, got.Expiration)
	assert.Equal(t, exp, *got.Expiration)
	require.NotNil(t, got.Minimum)

	require.NoError(t, catalog.Delete(ctx, entity.ModuleStock, item.ID))
	hist, err := postgres.NewMovementRepository(testPool).ListAllByItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestPostgres_MovementGetByIDYAuditoria(t *testing.T) {
	ctx := context.Background()
	catalog, balance, runner := newUseCases(5 * time.Second)
	item, err := catalog.Create(ctx, entity.ModuleStock, inventory.CreateItemInput{Name: "Sal mineral", InitialQuantity: qty("10")})
	require.NoError(t, err)

	res, err := balance.ApplyMovement(ctx, inventory.MovementInput{
		Module: entity.ModuleStock, ItemID: item.ID, Kind: entity.MovementExit, Quantity: qty("0.0005"),
	})
	require.NoError(t, err)

	moves := postgres.NewMovementRepository(testPool)
	got, err := moves.GetByID(ctx, res.Movement.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Quantity.Equal(decimal.RequireFromString("0.0005")), "4 decimales sin redondeo")
	assert.Equal(t, res.Movement.Seq, got.Seq)

	missing, err := moves.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ledger := inventory.NewLedgerUseCase(runner, postgres.NewItemRepository(testPool), moves, inventory.Options{})
	rep, err := ledger.Audit(ctx, entity.ModuleStock, item.ID)
	require.NoError(t, err)
	assert.True(t, rep.Consistent, rep.Problem)
	assert.True(t, rep.Replayed.Equal(decimal.RequireFromString("9.9995")))
}
