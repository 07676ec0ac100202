package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/agro-inventario/internal/application/analytics"
	"github.com/jhoicas/agro-inventario/internal/application/inventory"
	"github.com/jhoicas/agro-inventario/internal/domain/alert"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

var (
	_ inventory.Notifier       = (*InventoryPublisher)(nil)
	_ analytics.AlertPublisher = (*InventoryPublisher)(nil)
)

// amqpChannel subconjunto de *amqp.Channel usado para publicar.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher serializa eventos y los publica en un exchange.
type Publisher struct {
	channel  amqpChannel
	exchange string
	source   string
	now      func() time.Time
	logger   *logger.Logger
}

// NewPublisher declara el exchange y construye el publicador.
func NewPublisher(rmq *RabbitMQ, exchange, source string, log *logger.Logger) (*Publisher, error) {
	if err := rmq.DeclareExchange(exchange); err != nil {
		return nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}
	return newPublisher(rmq.Channel(), exchange, source, log), nil
}

func newPublisher(ch amqpChannel, exchange, source string, log *logger.Logger) *Publisher {
	return &Publisher{channel: ch, exchange: exchange, source: source, now: time.Now, logger: log}
}

// Publish publica data con eventType como routing key.
func (p *Publisher) Publish(ctx context.Context, eventType string, data any) error {
	event := Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		Source:     p.source,
		OccurredAt: p.now().UTC(),
		Data:       data,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		eventType,  // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publicar %s: %w", eventType, err)
	}

	p.logger.Debug().Str("event_type", eventType).Str("event_id", event.ID).Msg("evento publicado")
	return nil
}

// InventoryPublisher traduce avisos del dominio a eventos. Un receptor nil no hace nada.
type InventoryPublisher struct {
	publisher *Publisher
}

// NewInventoryPublisher construye el publicador de inventario.
func NewInventoryPublisher(p *Publisher) *InventoryPublisher {
	return &InventoryPublisher{publisher: p}
}

// MovementApplied publica inventory.movement.applied.
func (p *InventoryPublisher) MovementApplied(ctx context.Context, item *entity.Item, m *entity.Movement) error {
	if p == nil {
		return nil
	}
	return p.publisher.Publish(ctx, EventMovementApplied, MovementAppliedEvent{
		Module:     string(item.Module),
		ItemID:     item.ID,
		ItemName:   item.Name,
		MovementID: m.ID,
		Seq:        m.Seq,
		Kind:       string(m.Kind),
		Quantity:   m.Quantity,
		Balance:    m.BalanceAfter,
		LowStock:   item.BelowMinimum(),
	})
}

// ItemChanged publica inventory.item.changed.
func (p *InventoryPublisher) ItemChanged(ctx context.Context, module entity.Module, itemID string) error {
	if p == nil {
		return nil
	}
	return p.publisher.Publish(ctx, EventItemChanged, ItemChangedEvent{Module: string(module), ItemID: itemID})
}

// AlertRaised publica inventory.alert.raised.
func (p *InventoryPublisher) AlertRaised(ctx context.Context, e alert.Entry, today time.Time) error {
	if p == nil {
		return nil
	}
	return p.publisher.Publish(ctx, EventAlertRaised, AlertRaisedEvent{
		Module:       string(e.Module),
		ItemID:       e.Item.ID,
		ItemName:     e.Item.Name,
		Severity:     e.Severity,
		DaysToExpire: e.DaysToExpire,
		Reason:       e.Reason,
		Today:        today.Format(entity.DateLayout),
	})
}
