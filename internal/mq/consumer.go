package mq

import (
	"context"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrCanalFechado indica que o broker encerrou a entrega; reconecte.
var ErrCanalFechado = errors.New("canal de entrega fechado")

// Processador trata uma mensagem; erro devolve a mensagem para a fila.
type Processador func(ctx context.Context, key string, body []byte) error

type Consumer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewConsumer declara a fila durável e a liga ao exchange por cada key.
func NewConsumer(url, exchange, queue string, keys []string, prefetch int) (*Consumer, error) {
	conn, ch, err := abrir(url, exchange)
	if err != nil {
		return nil, err
	}
	fechar := func() {
		_ = ch.Close()
		_ = conn.Close()
	}
	q, err := ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		fechar()
		return nil, fmt.Errorf("declarar fila %s: %w", queue, err)
	}
	for _, rk := range keys {
		if err := ch.QueueBind(q.Name, rk, exchange, false, nil); err != nil {
			fechar()
			return nil, fmt.Errorf("bind %s: %w", rk, err)
		}
	}
	if prefetch <= 0 {
		prefetch = 8
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		fechar()
		return nil, fmt.Errorf("qos: %w", err)
	}
	return &Consumer{conn: conn, ch: ch, queue: q.Name}, nil
}

// Consumir entrega cada mensagem a fn até o ctx terminar (nil) ou o canal
// fechar (ErrCanalFechado).
func (c *Consumer) Consumir(ctx context.Context, fn Processador) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consumir %s: %w", c.queue, err)
	}
	return entregar(ctx, msgs, fn)
}

func entregar(ctx context.Context, msgs <-chan amqp.Delivery, fn Processador) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrCanalFechado
			}
			if err := fn(ctx, d.RoutingKey, d.Body); err != nil {
				log.Printf("[mq] erro ao processar key=%s: %v (devolvendo à fila)", d.RoutingKey, err)
				_ = d.Nack(false, !d.Redelivered)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) Close() error {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
