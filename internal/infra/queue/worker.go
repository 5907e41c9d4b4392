package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/sclayai/proposal-intake/internal/entity"
	"github.com/sclayai/proposal-intake/internal/usecase"
)

// Poster delivers an encoded payload; webhook.Client implements it.
type Poster interface {
	Post(ctx context.Context, body []byte) error
}

// Consumer is the part of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

var ErrUnknownFormType = errors.New("unknown form type")

type Worker struct {
	Channel Consumer
	Webhook Poster
	Metrics usecase.MetricsRecorder
	Logger  *zap.Logger
}

func NewWorker(ch Consumer, webhook Poster, metrics usecase.MetricsRecorder, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, Webhook: webhook, Metrics: metrics, Logger: logger}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Logger.Info("forward worker started", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks delivered messages and dead-letters everything else. There is
// no requeue: a failing webhook would otherwise spin on the same message.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	kind, err := route(d)
	if err != nil {
		w.Logger.Warn("dropping malformed forward message", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if err := w.Webhook.Post(ctx, d.Body); err != nil {
		w.Logger.Error("webhook forward failed",
			zap.String("form_type", string(kind)),
			zap.Error(err),
		)
		w.record(kind, "dead_lettered")
		_ = d.Nack(false, false)
		return
	}

	w.record(kind, "delivered")
	_ = d.Ack(false)
}

func (w *Worker) record(kind entity.Kind, outcome string) {
	if w.Metrics != nil {
		w.Metrics.RecordForward(kind, outcome)
	}
}

// route reads the form type from the header, falling back to the body.
func route(d amqp.Delivery) (entity.Kind, error) {
	raw, _ := d.Headers[FormTypeHeader].(string)
	if raw == "" {
		var peek struct {
			FormType string `json:"formType"`
		}
		if err := json.Unmarshal(d.Body, &peek); err != nil {
			return "", fmt.Errorf("decode forward message: %w", err)
		}
		raw = peek.FormType
	}

	kind, err := entity.ParseKind(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormType, raw)
	}
	return kind, nil
}
