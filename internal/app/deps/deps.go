package deps

import (
	"context"
	"fmt"
	"mealremind/internal/config"
	"mealremind/internal/core/domain/asset"
	dclock "mealremind/internal/core/domain/clock"
	dl "mealremind/internal/core/domain/logging"
	assetorigin "mealremind/internal/implementations/asset_origin"
	"mealremind/internal/implementations/clock"
	"mealremind/internal/implementations/identity"
	"mealremind/internal/implementations/logging"
	"mealremind/internal/implementations/periodic"
	"mealremind/internal/rabbitmq"
	assetcache "mealremind/internal/redis/asset_cache"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
)

// Deps are the dependencies both the foreground and the background process need.
type Deps struct {
	Config   *config.Config
	Logger   dl.Logger
	Location *time.Location

	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Clock dclock.Clock
	Now   func() time.Time

	IdentityGenerator *identity.UUID
	AssetOrigin       asset.Origin
	AssetCache        asset.Cache
	Periodic          *periodic.Cron

	closeFuncs []func()
}

func initDeps() *Deps {
	deps := &Deps{}

	deps.initConfig()
	deps.addCloser(deps.initLogger())
	deps.addCloser(deps.initSentry())
	deps.initLocation()
	deps.addCloser(deps.initRedisClient())
	deps.addCloser(deps.initRabbitmqConnection())

	c := clock.NewReal(deps.Location)
	deps.Clock = c
	deps.Now = c.Now
	deps.IdentityGenerator = identity.NewUUID()
	deps.AssetOrigin = assetorigin.New(deps.Config.AssetOriginURL, deps.Config.AssetTimeout)
	deps.AssetCache = assetcache.New(deps.Redis, deps.Config.RedisPrefix+":assets")
	deps.addCloser(deps.initPeriodic())

	return deps
}

func (deps *Deps) addCloser(f func()) {
	deps.closeFuncs = append(deps.closeFuncs, f)
}

// close runs the registered close functions concurrently. The logger and
// Sentry are flushed last so that shutdown messages are not lost.
func (deps *Deps) close() {
	closeFuncs := deps.closeFuncs[2:]
	var wg sync.WaitGroup
	wg.Add(len(closeFuncs))
	for _, closeFunc := range closeFuncs {
		closeFunc := closeFunc
		go func() {
			closeFunc()
			wg.Done()
		}()
	}
	wg.Wait()

	deps.closeFuncs[1]()
	deps.closeFuncs[0]()
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.Debug)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initLocation() {
	loc, err := deps.Config.Location()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not load time zone.", dl.Entry("err", err))
		panic(err)
	}
	deps.Location = loc
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}

func (deps *Deps) initPeriodic() func() {
	deps.Periodic = periodic.New(deps.Logger, deps.Location)
	return func() {
		deps.Logger.Info(context.Background(), "Stopping periodic passes.")
		deps.Periodic.Stop()
		deps.Logger.Info(context.Background(), "Periodic passes stopped.")
	}
}
