// Package analytics contiene el resumen de alertas del panel: urgencias por vencimiento y
// stock bajo, fusionando todos los módulos de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/agro-inventario/internal/application/dto"
	"github.com/jhoicas/agro-inventario/internal/domain/alert"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// SummaryCache caché opcional del resumen ya armado.
type SummaryCache interface {
	// Get devuelve nil, nil si la clave no está.
	Get(ctx context.Context, key string) (*dto.SummaryDTO, error)
	Set(ctx context.Context, key string, summary *dto.SummaryDTO) error
}

// AlertPublisher recibe cada ítem urgente encontrado por el escaneo periódico.
type AlertPublisher interface {
	AlertRaised(ctx context.Context, entry alert.Entry, today time.Time) error
}

// SummaryConfig valores por defecto y dependencias opcionales.
type SummaryConfig struct {
	HorizonDays int            // por defecto del endpoint y del escaneo
	UrgentLimit int            // idem
	Location    *time.Location // zona para calcular "hoy"
	Clock       func() time.Time
	Cache       SummaryCache   // nil = sin caché
	Publisher   AlertPublisher // nil = el escaneo solo registra en el log
	Logger      *logger.Logger
}

// SummaryUseCase arma el resumen leyendo todos los módulos en paralelo.
// No toma bloqueos de ítem: tolera ver cada ítem antes o después de un movimiento concurrente.
type SummaryUseCase struct {
	items repository.ItemRepository
	cfg   SummaryConfig
	log   *logger.Logger
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(items repository.ItemRepository, cfg SummaryConfig) *SummaryUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	cfg.HorizonDays = alert.ClampHorizon(cfg.HorizonDays)
	cfg.UrgentLimit = alert.ClampUrgentLimit(cfg.UrgentLimit)
	return &SummaryUseCase{items: items, cfg: cfg, log: cfg.Logger.WithComponent("summary")}
}

// GetSummary devuelve el resumen para horizonDays y limit (0 = ausente, usa el valor configurado;
// cualquier otro valor se acota a su rango).
func (uc *SummaryUseCase) GetSummary(ctx context.Context, horizonDays, limit int) (*dto.SummaryDTO, error) {
	horizon, lim := uc.normalize(horizonDays, limit)
	now := uc.cfg.Clock()
	today := entity.ToDate(now.In(uc.cfg.Location))

	key := cacheKey(horizon, lim, today)
	if uc.cfg.Cache != nil {
		cached, err := uc.cfg.Cache.Get(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("leer caché del resumen")
		} else if cached != nil {
			return cached, nil
		}
	}

	s, err := uc.compute(ctx, today, horizon, lim)
	if err != nil {
		return nil, err
	}
	out := dto.ToSummaryDTO(s, today, now.UTC())

	if uc.cfg.Cache != nil {
		if err := uc.cfg.Cache.Set(ctx, key, out); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("guardar caché del resumen")
		}
	}
	return out, nil
}

// Scan calcula el resumen con los valores configurados, registra los contadores y
// publica un evento por cada ítem urgente. Lo invoca el scheduler.
func (uc *SummaryUseCase) Scan(ctx context.Context) (alert.Summary, error) {
	today := entity.ToDate(uc.cfg.Clock().In(uc.cfg.Location))
	s, err := uc.compute(ctx, today, uc.cfg.HorizonDays, uc.cfg.UrgentLimit)
	if err != nil {
		return alert.Summary{}, err
	}

	uc.log.Info().
		Int("total", s.Meta.Total).
		Int("expired", s.Meta.ExpiredCount).
		Int("expiring_soon", s.Meta.ExpiringSoonCount).
		Int("low_stock", s.Meta.LowStockCount).
		Int("urgent", len(s.Urgent)).
		Msg("escaneo de alertas")

	if uc.cfg.Publisher == nil {
		return s, nil
	}
	for _, e := range s.Urgent {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		if err := uc.cfg.Publisher.AlertRaised(ctx, e, today); err != nil {
			uc.log.Error().Err(err).Str("item_id", e.Item.ID).Msg("publicar alerta")
		}
	}
	return s, nil
}

func (uc *SummaryUseCase) normalize(horizonDays, limit int) (int, int) {
	if horizonDays == 0 {
		horizonDays = uc.cfg.HorizonDays
	}
	if limit == 0 {
		limit = uc.cfg.UrgentLimit
	}
	return alert.ClampHorizon(horizonDays), alert.ClampUrgentLimit(limit)
}

// compute lee cada módulo en su propia goroutine y fusiona en el orden de entity.Modules().
func (uc *SummaryUseCase) compute(ctx context.Context, today time.Time, horizon, limit int) (alert.Summary, error) {
	modules := entity.Modules()
	sources := make([]alert.Source, len(modules))

	g, gctx := errgroup.WithContext(ctx)
	for i, m := range modules {
		i, m := i, m
		g.Go(func() error {
			items, err := uc.items.List(gctx, repository.ItemFilter{Module: m})
			if err != nil {
				return fmt.Errorf("listar %s: %w", m, err)
			}
			sources[i] = alert.Source{Module: m, Items: items}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return alert.Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return alert.Summary{}, err
	}
	return alert.Summarize(sources, today, horizon, limit), nil
}

func cacheKey(horizon, limit int, today time.Time) string {
	return fmt.Sprintf("summary:%s:h%d:l%d", today.Format(entity.DateLayout), horizon, limit)
}
