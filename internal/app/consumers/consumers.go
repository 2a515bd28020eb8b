package consumers

import (
	"context"
	"mealremind/internal/app/deps"
	"mealremind/internal/app/services"
	dl "mealremind/internal/core/domain/logging"
	syncrequested "mealremind/internal/rabbitmq/consumers/sync_requested"
)

func initSyncRequestedConsumer(deps *deps.Background, services *services.Background) {
	queue := deps.Config.RabbitmqSyncQueue
	consumer := syncrequested.New(deps.Logger, deps.SyncChannel, queue, services.Sync)
	if err := consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
}

// InitConsumers starts the worker's consumers. They stop when the sync channel is closed.
func InitConsumers(deps *deps.Background, services *services.Background) {
	initSyncRequestedConsumer(deps, services)
}
