package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agro-inventario/internal/domain/alert"
	"github.com/jhoicas/agro-inventario/internal/domain/entity"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange, key, msg})
	return nil
}

func newTestPublisher(ch *fakeChannel) *InventoryPublisher {
	p := newPublisher(ch, "inventory.events", "agro-inventario", logger.Nop())
	p.now = func() time.Time { return time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC) }
	return NewInventoryPublisher(p)
}

func TestInventoryPublisher_MovementApplied(t *testing.T) {
	ch := &fakeChannel{}
	pub := newTestPublisher(ch)
	minimum := decimal.NewFromInt(5)
	item := &entity.Item{ID: "i1", Module: entity.ModuleInputs, Name: "Ureia", Quantity: decimal.NewFromInt(2), Minimum: &minimum}
	mov := &entity.Movement{ID: "m1", Seq: 7, ItemID: "i1", Kind: entity.MovementExit, Quantity: decimal.NewFromInt(3), BalanceAfter: decimal.NewFromInt(2)}

	require.NoError(t, pub.MovementApplied(context.Background(), item, mov))
	require.Len(t, ch.sent, 1)
	assert.Equal(t, "inventory.events", ch.sent[0].exchange)
	assert.Equal(t, EventMovementApplied, ch.sent[0].key)
	assert.Equal(t, amqp.Persistent, ch.sent[0].msg.DeliveryMode)

	var body struct {
		Type string `json:"type"`
		Data struct {
			ItemID   string `json:"itemId"`
			Kind     string `json:"kind"`
			Seq      int64  `json:"seq"`
			LowStock bool   `json:"lowStock"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &body))
	assert.Equal(t, EventMovementApplied, body.Type)
	assert.Equal(t, "i1", body.Data.ItemID)
	assert.Equal(t, "exit", body.Data.Kind)
	assert.Equal(t, int64(7), body.Data.Seq)
	assert.True(t, body.Data.LowStock)
}

func TestInventoryPublisher_AlertRaised(t *testing.T) {
	ch := &fakeChannel{}
	pub := newTestPublisher(ch)
	days := -3
	e := alert.Entry{
		Module: entity.ModuleStock,
		Item:   &entity.Item{ID: "i9", Name: "Vacina"},
		Flags:  alert.Flags{DaysToExpire: &days, Expired: true, Severity: alert.SeverityExpired},
		Reason: "vencido hace 3 día(s)",
	}

	require.NoError(t, pub.AlertRaised(context.Background(), e, time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)))
	require.Len(t, ch.sent, 1)
	assert.Equal(t, EventAlertRaised, ch.sent[0].key)
	assert.Contains(t, string(ch.sent[0].msg.Body), `"today":"2026-04-02"`)
	assert.Contains(t, string(ch.sent[0].msg.Body), `"severity":3`)
}

func TestInventoryPublisher_ErrorYNil(t *testing.T) {
	pub := newTestPublisher(&fakeChannel{err: errors.New("canal cerrado")})
	err := pub.ItemChanged(context.Background(), entity.ModuleStock, "x")
	assert.ErrorContains(t, err, "canal cerrado")

	var none *InventoryPublisher
	assert.NoError(t, none.ItemChanged(context.Background(), entity.ModuleStock, "x"))
}
