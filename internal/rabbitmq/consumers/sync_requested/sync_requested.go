package syncrequested

import (
	"context"
	"mealremind/internal/core/domain/common"
	e "mealremind/internal/core/domain/errors"
	"mealremind/internal/core/domain/logging"
	"mealremind/internal/core/services"
	syncreminders "mealremind/internal/core/services/sync_reminders"
	"mealremind/internal/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Source is the part of a rabbitmq.Channel the consumer needs.
type Source interface {
	Consume(
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp091.Table,
	) (<-chan amqp091.Delivery, error)
}

type Consumer struct {
	log     logging.Logger
	channel Source
	queue   string
	service services.Service[syncreminders.Input, syncreminders.Result]
}

func New(
	log logging.Logger,
	channel Source,
	queue string,
	service services.Service[syncreminders.Input, syncreminders.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			c.handle(context.Background(), delivery)
		}
	}()
	return nil
}

// handle runs one sync pass per request. Malformed requests are dropped, not redelivered.
func (c *Consumer) handle(ctx context.Context, delivery amqp091.Delivery) {
	defer c.Ack(delivery)

	request := schema.SyncRequest{}
	if err := request.Unmarshal(delivery.Body); err != nil {
		c.log.Error(ctx, "Could not unmarshal sync request.", logging.Entry("err", err))
		return
	}
	snapshot, err := request.DecodeSnapshot()
	if err != nil {
		c.log.Error(ctx, "Sync request carries an invalid reminder.", logging.Entry("err", err))
		return
	}

	c.log.Info(
		ctx,
		"Got sync request.",
		logging.Entry("reason", request.Reason),
		logging.Entry("count", len(snapshot.Reminders)),
		logging.Entry("dismissed", len(snapshot.Dismissed)),
		logging.Entry("requestedAt", request.RequestedAt),
	)
	_, err = c.service.Run(ctx, syncreminders.Input{Reason: "sync-request", Snapshot: common.Some(snapshot)})
	if err != nil {
		c.log.Error(ctx, "Could not sync reminders, service returned an error.", logging.Entry("err", err))
	}
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
