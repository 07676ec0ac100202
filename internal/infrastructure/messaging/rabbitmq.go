// Package messaging publica eventos de inventario en RabbitMQ (exchange topic).
package messaging

import (
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// RabbitMQ conexión y canal compartidos por los publicadores.
type RabbitMQ struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
	mu      sync.RWMutex
}

// Dial abre conexión y canal contra url.
func Dial(url string, log *logger.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("conectar a RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	log.Info().Msg("conectado a RabbitMQ")
	return &RabbitMQ{conn: conn, channel: ch, logger: log}, nil
}

// DeclareExchange declara un exchange topic durable.
func (r *RabbitMQ) DeclareExchange(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-deleted
		false,   // internal
		false,   // no-wait
		nil,     // arguments
	)
}

// Channel devuelve el canal actual.
func (r *RabbitMQ) Channel() *amqp.Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channel
}

// Healthy indica si la conexión sigue abierta.
func (r *RabbitMQ) Healthy() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conn != nil && !r.conn.IsClosed()
}

// Close cierra canal y conexión.
func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			r.logger.Warn().Err(err).Msg("cerrar canal")
		}
	}
	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("cerrar conexión: %w", err)
		}
	}
	r.logger.Info().Msg("conexión a RabbitMQ cerrada")
	return nil
}
