package messaging

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento (también usados como routing key).
const (
	EventMovementApplied = "inventory.movement.applied"
	EventItemChanged     = "inventory.item.changed"
	EventAlertRaised     = "inventory.alert.raised"
)

// Event sobre común de todos los eventos.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// MovementAppliedEvent datos de inventory.movement.applied.
type MovementAppliedEvent struct {
	Module     string          `json:"module"`
	ItemID     string          `json:"itemId"`
	ItemName   string          `json:"itemName"`
	MovementID string          `json:"movementId"`
	Seq        int64           `json:"seq"`
	Kind       string          `json:"kind"`
	Quantity   decimal.Decimal `json:"quantity"`
	Balance    decimal.Decimal `json:"balance"`
	LowStock   bool            `json:"lowStock"`
}

// ItemChangedEvent datos de inventory.item.changed (alta, edición o baja).
type ItemChangedEvent struct {
	Module string `json:"module"`
	ItemID string `json:"itemId"`
}

// AlertRaisedEvent datos de inventory.alert.raised.
type AlertRaisedEvent struct {
	Module       string `json:"module"`
	ItemID       string `json:"itemId"`
	ItemName     string `json:"itemName"`
	Severity     int    `json:"severity"`
	DaysToExpire *int   `json:"daysToExpire"`
	Reason       string `json:"reason"`
	Today        string `json:"today"`
}
