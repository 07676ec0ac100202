package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/agro-inventario/internal/application/analytics"
	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/infrastructure/cache"
	"github.com/jhoicas/agro-inventario/internal/infrastructure/messaging"
	"github.com/jhoicas/agro-inventario/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/agro-inventario/internal/interfaces/http"
	"github.com/jhoicas/agro-inventario/pkg/config"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

var errRabbitClosed = errors.New("conexión a RabbitMQ cerrada")

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	checks := map[string]httpRouter.HealthCheck{}
	if store.check != nil {
		checks[cfg.Store.Driver] = store.check
	}

	var notifiers []inventory.Notifier
	summaryCfg := analytics.SummaryConfig{
		HorizonDays: cfg.Summary.HorizonDays,
		UrgentLimit: cfg.Summary.UrgentLimit,
		Location:    cfg.App.Location(),
		Logger:      log,
	}

	// Caché del resumen en Redis (opcional). También invalida tras cada escritura.
	if cfg.Redis.Addr != "" && cfg.Summary.CacheTTL > 0 {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		summaryCache := cache.NewSummaryCache(rdb, cfg.App.Name+":", cfg.Summary.CacheTTL)
		summaryCfg.Cache = summaryCache
		notifiers = append(notifiers, summaryCache)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// Eventos de inventario en RabbitMQ (opcional).
	if cfg.RabbitMQ.URL != "" {
		rmq, err := messaging.Dial(cfg.RabbitMQ.URL, log.WithComponent("rabbitmq"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer rmq.Close()
		pub, err := messaging.NewPublisher(rmq, cfg.RabbitMQ.Exchange, cfg.App.Name, log.WithComponent("events"))
		if err != nil {
			log.Fatal().Err(err).Msg("publicador de eventos")
		}
		events := messaging.NewInventoryPublisher(pub)
		notifiers = append(notifiers, events)
		summaryCfg.Publisher = events
		checks["rabbitmq"] = func(context.Context) error {
			if !rmq.Healthy() {
				return errRabbitClosed
			}
			return nil
		}
	}

	opts := inventory.Options{
		Logger:         log,
		Notifiers:      notifiers,
		StorageRetries: cfg.Inventory.StorageRetries,
		RetryBackoff:   cfg.Inventory.RetryBackoff,
		WeightedCost:   cfg.Inventory.WeightedCost,
	}
	catalogUC := inventory.NewCatalogUseCase(store.runner, store.items, store.movements, opts)
	balanceUC := inventory.NewApplyMovementUseCase(store.runner, opts)
	ledgerUC := inventory.NewLedgerUseCase(store.runner, store.items, store.movements, opts)
	summaryUC := analytics.NewSummaryUseCase(store.items, summaryCfg)

	// Escaneo periódico de alertas (opcional).
	var sched *scheduler.Scheduler
	if cfg.Summary.ScanSchedule != "" {
		sched = scheduler.New(time.Minute, log)
		err := sched.Register("summary-scan", cfg.Summary.ScanSchedule, func(ctx context.Context) error {
			_, err := summaryUC.Scan(ctx)
			return err
		})
		if err != nil {
			log.Fatal().Err(err).Msg("programar escaneo de alertas")
		}
		sched.Start()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Service: cfg.App.Name,
		Catalog: catalogUC,
		Balance: balanceUC,
		Ledger:  ledgerUC,
		Summary: summaryUC,
		Checks:  checks,
		Logger:  log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("detener scheduler")
		}
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
