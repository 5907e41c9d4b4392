package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sclayai/proposal-intake/internal/usecase"
)

// FormTypeHeader carries the payload's formType so consumers can route
// without decoding the body.
const FormTypeHeader = "x-form-type"

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Producer implements usecase.Forwarder by queueing the payload for the
// worker instead of calling the webhook inline.
type Producer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *Producer {
	return &Producer{Ch: ch}
}

func (p *Producer) Forward(ctx context.Context, payload usecase.ForwardPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode forward payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Headers:      amqp.Table{FormTypeHeader: string(payload.FormType)},
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to RabbitMQ: %w", err)
	}
	return nil
}
