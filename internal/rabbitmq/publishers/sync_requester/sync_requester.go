package syncrequester

import (
	"context"
	"mealremind/internal/core/domain/durable"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/schema"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of an AMQP channel the requester needs.
type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ publishes full reminder snapshots to the worker's sync queue.
type RabbitMQ struct {
	log        logging.Logger
	channel    Publisher
	exchange   string
	routingKey string
	now        func() time.Time
}

func NewRabbitMQ(
	log logging.Logger,
	channel Publisher,
	exchange string,
	routingKey string,
	now func() time.Time,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if routingKey == "" {
		panic(e.NewInvalidArgumentError("routingKey", "must not be empty"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey, now: now}
}

func (s *RabbitMQ) RequestSync(ctx context.Context, snapshot durable.Snapshot) error {
	request := schema.EncodeSnapshot("mutation", s.now(), snapshot)
	body, err := request.Marshal()
	if err != nil {
		return err
	}
	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    request.RequestedAt,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("RK", s.routingKey))
		return err
	}
	s.log.Info(
		ctx,
		"Sync request has been published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("count", len(snapshot.Reminders)),
		logging.Entry("dismissed", len(snapshot.Dismissed)),
	)
	return nil
}
