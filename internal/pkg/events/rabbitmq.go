package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.customers"
	QueueName    = "q.customer-registered"
	DLXName      = "ex.customers.dlx"
	DLQName      = "q.customer-registered.dlq"
)

// RabbitMQPublisher publica eventos no exchange de clientes.
// O canal é protegido por mutex: amqp.Channel não deve ser compartilhado sem sincronização.
type RabbitMQPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex
}

// NewRabbitMQPublisher conecta no broker e declara a topologia (exchange, fila e DLQ).
func NewRabbitMQPublisher(url string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("falha ao abrir canal: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("falha ao declarar topologia: %w", err)
	}

	return &RabbitMQPublisher{conn: conn, ch: ch}, nil
}

func setupTopology(ch *amqp.Channel) error {
	// 1. Dead letter
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DLQName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(DLQName, CustomerRegisteredEvent, DLXName, false, nil); err != nil {
		return err
	}

	// 2. Exchange principal e fila de cadastro
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return err
	}
	args := amqp.Table{
		"x-dead-letter-exchange":    DLXName,
		"x-dead-letter-routing-key": CustomerRegisteredEvent,
	}
	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, args); err != nil {
		return err
	}
	return ch.QueueBind(QueueName, CustomerRegisteredEvent, ExchangeName, false, nil)
}

func (p *RabbitMQPublisher) PublishCustomerRegistered(ctx context.Context, event CustomerRegistered) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		CustomerRegisteredEvent,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Type:         event.Event,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}

// IsClosed informa se a conexão com o broker caiu (usado pelo health check).
func (p *RabbitMQPublisher) IsClosed() bool {
	return p.conn.IsClosed()
}

func (p *RabbitMQPublisher) Close() error {
	if err := p.ch.Close(); err != nil && !p.conn.IsClosed() {
		return err
	}
	return p.conn.Close()
}
