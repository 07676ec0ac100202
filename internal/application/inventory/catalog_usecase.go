package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/internal/domain/catalog"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	inv "github.com/jhoicas/agro-inventario/internal/domain/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/repository"
)

// Límites de paginación del catálogo.
const (
	DefaultItemLimit = 50
	MaxItemLimit     = 200
)

// CreateItemInput entrada para dar de alta un ítem.
type CreateItemInput struct {
	Name            string
	Category        string
	Unit            string
	InitialQuantity *decimal.Decimal // > 0 se registra como ajuste de apertura
	Minimum         *decimal.Decimal
	UnitValue       *decimal.Decimal
	Location        string
	Note            string
	Expiration      *time.Time
}

// UpdateItemInput parche de catálogo. Campos nil no se tocan; Clear* borra el valor opcional.
// Quantity está solo para poder rechazarlo: el saldo cambia únicamente por movimientos.
type UpdateItemInput struct {
	Name            *string
	Category        *string
	Unit            *string
	Minimum         *decimal.Decimal
	ClearMinimum    bool
	UnitValue       *decimal.Decimal
	Location        *string
	Note            *string
	Expiration      *time.Time
	ClearExpiration bool
	Quantity        *decimal.Decimal
}

// ListItemsInput filtros del listado.
type ListItemsInput struct {
	Module   entity.Module
	Query    string
	Category string
	LowOnly  bool
	Limit    int
	Offset   int
}

// ItemPage página de ítems con el total filtrado.
type ItemPage struct {
	Items  []*entity.Item
	Total  int
	Limit  int
	Offset int
}

// CatalogOptions enumeraciones compartidas con la interfaz.
type CatalogOptions struct {
	Categories []entity.Category
	Units      []entity.Unit
	Modules    []entity.Module
}

// CatalogUseCase casos de uso del catálogo de ítems.
type CatalogUseCase struct {
	txRunner  TxRunner
	items     repository.ItemRepository
	movements repository.MovementRepository
	opts      Options
}

// NewCatalogUseCase construye el caso de uso. items/movements son los repositorios fuera de tx (lecturas).
func NewCatalogUseCase(txRunner TxRunner, items repository.ItemRepository, movements repository.MovementRepository, opts Options) *CatalogUseCase {
	return &CatalogUseCase{
		txRunner:  txRunner,
		items:     items,
		movements: movements,
		opts:      opts.withDefaults("catalog"),
	}
}

// Options devuelve categorías, unidades y módulos.
func (uc *CatalogUseCase) Options() CatalogOptions {
	return CatalogOptions{
		Categories: entity.Categories(),
		Units:      entity.Units(),
		Modules:    entity.Modules(),
	}
}

// Create valida y registra el ítem. Una cantidad inicial se materializa como ajuste de apertura
// en la misma unidad atómica, de modo que el saldo siempre coincide con el libro.
func (uc *CatalogUseCase) Create(ctx context.Context, module entity.Module, in CreateItemInput) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	if err := nonNegative("initialQuantity", in.InitialQuantity); err != nil {
		return nil, err
	}
	if err := nonNegative("minimum", in.Minimum); err != nil {
		return nil, err
	}
	if err := nonNegative("unitValue", in.UnitValue); err != nil {
		return nil, err
	}

	now := uc.opts.Clock().UTC()
	item := &entity.Item{
		ID:         uuid.New().String(),
		Module:     module,
		Name:       name,
		Category:   normalizeCategory(in.Category),
		Unit:       normalizeUnit(in.Unit),
		Quantity:   decimal.Zero,
		Minimum:    in.Minimum,
		UnitValue:  decimal.Zero,
		Location:   strings.TrimSpace(in.Location),
		Note:       strings.TrimSpace(in.Note),
		Expiration: toDatePtr(in.Expiration),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.UnitValue != nil {
		item.UnitValue = *in.UnitValue
	}

	var opening *entity.Movement
	if in.InitialQuantity != nil && in.InitialQuantity.IsPositive() {
		item.Quantity = *in.InitialQuantity
		opening = &entity.Movement{
			ID:           uuid.New().String(),
			ItemID:       item.ID,
			Kind:         entity.MovementAdjustment,
			Quantity:     *in.InitialQuantity,
			BalanceAfter: *in.InitialQuantity,
			Note:         "saldo inicial",
			OccurredAt:   now,
		}
	}

	// Los ids se fijan antes de reintentar: un commit que llegó a la base pero informó error
	// se reconoce en el siguiente intento.
	created := item
	err := uc.opts.retry(ctx, func() error {
		return uc.txRunner.Run(ctx, item.ID, func(items repository.ItemRepository, movements repository.MovementRepository) error {
			existing, err := items.GetForUpdate(ctx, item.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				created = existing
				return nil
			}
			if err := items.Create(ctx, item); err != nil {
				return err
			}
			if opening != nil {
				return movements.Create(ctx, opening)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.opts.Logger.Info().Str("module", string(module)).Str("item_id", created.ID).Str("name", created.Name).Msg("ítem creado")
	uc.opts.notifyItem(ctx, module, created.ID)
	return created, nil
}

// Get devuelve el ítem del módulo. Un id de otro módulo es ErrNotFound.
func (uc *CatalogUseCase) Get(ctx context.Context, module entity.Module, id string) (*entity.Item, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Module != module {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// Update aplica un parche de catálogo bajo el bloqueo del ítem. Nunca modifica quantity.
func (uc *CatalogUseCase) Update(ctx context.Context, module entity.Module, id string, in UpdateItemInput) (*entity.Item, error) {
	if in.Quantity != nil {
		return nil, domain.NewValidationError("quantity", "el saldo solo cambia mediante movimientos")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.NewValidationError("name", "no puede quedar vacío")
	}
	if err := nonNegative("minimum", in.Minimum); err != nil {
		return nil, err
	}
	if err := nonNegative("unitValue", in.UnitValue); err != nil {
		return nil, err
	}

	var updated *entity.Item
	err := uc.opts.retry(ctx, func() error {
		return uc.txRunner.Run(ctx, id, func(items repository.ItemRepository, _ repository.MovementRepository) error {
			item, err := items.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if item == nil || item.Module != module {
				return domain.ErrNotFound
			}
			applyPatch(item, in)
			item.UpdatedAt = uc.opts.Clock().UTC()
			if err := items.Update(ctx, item); err != nil {
				return err
			}
			updated = item
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.opts.notifyItem(ctx, module, id)
	return updated, nil
}

// Delete elimina el ítem y su historial (cascada) bajo el bloqueo del ítem.
func (uc *CatalogUseCase) Delete(ctx context.Context, module entity.Module, id string) error {
	attempts := 0
	err := uc.opts.retry(ctx, func() error {
		attempts++
		return uc.txRunner.Run(ctx, id, func(items repository.ItemRepository, movements repository.MovementRepository) error {
			item, err := items.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if item == nil && attempts > 1 {
				// Un intento anterior ya borró el ítem y su commit informó error.
				return nil
			}
			if item == nil || item.Module != module {
				return domain.ErrNotFound
			}
			if err := movements.DeleteByItem(ctx, id); err != nil {
				return err
			}
			return items.Delete(ctx, id)
		})
	})
	if err != nil {
		return err
	}

	uc.opts.Logger.Info().Str("module", string(module)).Str("item_id", id).Msg("ítem eliminado")
	uc.opts.notifyItem(ctx, module, id)
	return nil
}

// List filtra por módulo y categoría en la persistencia; texto y "bajo mínimo" aquí.
func (uc *CatalogUseCase) List(ctx context.Context, in ListItemsInput) (*ItemPage, error) {
	limit := clampLimit(in.Limit, DefaultItemLimit, MaxItemLimit)
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	all, err := uc.items.List(ctx, repository.ItemFilter{
		Module:   in.Module,
		Category: entity.Category(strings.TrimSpace(in.Category)),
	})
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.Item, 0, len(all))
	for _, it := range all {
		if in.LowOnly && !it.BelowMinimum() {
			continue
		}
		if !catalog.Matches(it, in.Query) {
			continue
		}
		filtered = append(filtered, it)
	}

	page := &ItemPage{Items: []*entity.Item{}, Total: len(filtered), Limit: limit, Offset: offset}
	if offset < len(filtered) {
		end := offset + limit
		if end > len(filtered) {
			end = len(filtered)
		}
		page.Items = filtered[offset:end]
	}
	return page, nil
}

func applyPatch(item *entity.Item, in UpdateItemInput) {
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		item.Category = normalizeCategory(*in.Category)
	}
	if in.Unit != nil {
		item.Unit = normalizeUnit(*in.Unit)
	}
	if in.ClearMinimum {
		item.Minimum = nil
	} else if in.Minimum != nil {
		m := *in.Minimum
		item.Minimum = &m
	}
	if in.UnitValue != nil {
		item.UnitValue = *in.UnitValue
	}
	if in.Location != nil {
		item.Location = strings.TrimSpace(*in.Location)
	}
	if in.Note != nil {
		item.Note = strings.TrimSpace(*in.Note)
	}
	if in.ClearExpiration {
		item.Expiration = nil
	} else if in.Expiration != nil {
		item.Expiration = toDatePtr(in.Expiration)
	}
}

func nonNegative(field string, d *decimal.Decimal) error {
	if d == nil {
		return nil
	}
	if d.IsNegative() {
		return domain.NewValidationError(field, "no puede ser negativo")
	}
	return inv.CheckAmount(field, *d)
}

// normalizeCategory acepta texto libre; vacío = Outros.
func normalizeCategory(s string) entity.Category {
	s = strings.TrimSpace(s)
	if s == "" {
		return entity.CategoryOther
	}
	return entity.Category(s)
}

// normalizeUnit acepta texto libre; vacío = un.
func normalizeUnit(s string) entity.Unit {
	s = strings.TrimSpace(s)
	if s == "" {
		return entity.UnitPiece
	}
	return entity.Unit(s)
}

func toDatePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := entity.ToDate(*t)
	return &d
}

// clampLimit 0 = ausente (def); un valor presente queda en [1, hi].
func clampLimit(n, def, hi int) int {
	switch {
	case n == 0:
		return def
	case n < 1:
		return 1
	case n > hi:
		return hi
	}
	return n
}
