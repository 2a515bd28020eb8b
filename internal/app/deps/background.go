package deps

import (
	"context"
	"mealremind/internal/core/domain/durable"
	dl "mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	"mealremind/internal/implementations/notifier"
	"mealremind/internal/rabbitmq"
	durablestore "mealremind/internal/redis/durable"
	failedqueue "mealremind/internal/redis/failed_queue"
	wakelock "mealremind/internal/redis/wake_lock"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Background are the dependencies of the worker process.
type Background struct {
	*Deps

	AwsConfig aws.Config

	DurableStore durable.Store
	FailedQueue  notification.FailedQueue
	WakeLock     notification.WakeLock
	Displayer    notification.Displayer

	// SyncChannel is the channel the sync request consumer reads from.
	SyncChannel *rabbitmq.Channel
}

func InitBackground() (*Background, func()) {
	deps := &Background{Deps: initDeps()}

	deps.initAwsConfig()
	deps.addCloser(deps.initSyncChannel())

	prefix := deps.Config.RedisPrefix
	deps.DurableStore = durablestore.New(deps.Redis, deps.Logger, prefix)
	deps.FailedQueue = failedqueue.New(deps.Redis, deps.Logger, prefix+":failed-notifications")
	deps.WakeLock = wakelock.New(deps.Redis, deps.Logger, prefix+":wake-lock", deps.Config.WakeLockTTL)
	deps.Displayer = deps.initDisplayer()

	return deps, deps.close
}

func (deps *Background) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

// initDisplayer builds the out-of-page displayer from the configured channels.
// A channel without configuration counts as a denied permission.
func (deps *Background) initDisplayer() notification.Displayer {
	channels := make([]notifier.Channel, 0, 2)

	if deps.Config.IsTelegramEnabled() {
		bot, err := tgbotapi.NewBotAPI(deps.Config.TelegramBotToken)
		if err != nil {
			deps.Logger.Error(context.Background(), "Could not create Telegram bot.", dl.Entry("err", err))
			panic(err)
		}
		channels = append(channels, notifier.Channel{
			Name:      "telegram",
			Displayer: notifier.NewTelegram(bot, deps.Config.TelegramChatID, deps.Config.AppURL),
		})
	}
	if deps.Config.IsEmailEnabled() {
		channels = append(channels, notifier.Channel{
			Name: "email",
			Displayer: notifier.NewEmail(
				notifier.NewSESClient(deps.AwsConfig),
				deps.Config.EmailSender,
				deps.Config.EmailRecipient,
				deps.Config.AppURL,
			),
		})
	}

	if len(channels) == 0 {
		deps.Logger.Warning(context.Background(), "No notification channel is configured.")
		return notifier.NewDisabled(deps.Logger)
	}
	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name)
	}
	deps.Logger.Info(context.Background(), "Notification channels configured.", dl.Entry("channels", names))
	return notifier.NewComposite(deps.Logger, channels...)
}

func (deps *Background) initSyncChannel() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.DeclareQueue(deps.Config.RabbitmqSyncQueue); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	// Sync passes replace the whole snapshot, running them one at a time keeps the last one winning.
	if err := rabbitmqChannel.Prefetch(1); err != nil {
		deps.Logger.Error(context.Background(), "Could not set RabbitMQ prefetch.", dl.Entry("err", err))
		panic(err)
	}
	deps.SyncChannel = rabbitmqChannel
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down sync consumer channel.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Sync consumer channel shut down.")
	}
}
