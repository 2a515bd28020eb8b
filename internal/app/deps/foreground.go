package deps

import (
	"context"
	"mealremind/internal/config"
	"mealremind/internal/core/domain/durable"
	dl "mealremind/internal/core/domain/logging"
	"mealremind/internal/core/domain/notification"
	drl "mealremind/internal/core/domain/rate_limiter"
	"mealremind/internal/core/domain/sound"
	duow "mealremind/internal/core/domain/unit_of_work"
	"mealremind/internal/db"
	"mealremind/internal/db/sqlite"
	uow "mealremind/internal/db/unit_of_work"
	"mealremind/internal/implementations/notifier"
	pageevents "mealremind/internal/implementations/page_events"
	ratelimiter "mealremind/internal/implementations/rate_limiter"
	soundplayer "mealremind/internal/implementations/sound_player"
	tokenhasher "mealremind/internal/implementations/token_hasher"
	syncrequester "mealremind/internal/rabbitmq/publishers/sync_requester"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

// Foreground are the dependencies of the process serving the meal-planner page.
type Foreground struct {
	*Deps

	UnitOfWork duow.UnitOfWork
	SseServer  *sse.Server
	Publisher  pageevents.Publisher

	SoundCatalog *sound.Catalog
	SoundPlayer  sound.Player

	// PermissionGate is both the in-page displayer and the page's permission state.
	PermissionGate *notifier.PermissionGate
	Displayer      notification.Displayer

	RateLimiter   drl.RateLimiter
	TokenHasher   *tokenhasher.Bcrypt
	SyncRequester durable.SyncRequester
}

func InitForeground() (*Foreground, func()) {
	deps := &Foreground{Deps: initDeps()}

	deps.addCloser(deps.initStore())
	deps.addCloser(deps.initSseServer())
	deps.addCloser(deps.initSyncRequester())

	deps.Publisher = pageevents.NewSSE(deps.SseServer)
	deps.SoundCatalog = sound.NewCatalog(deps.Config.MaxCustomSounds, deps.IdentityGenerator)
	deps.SoundPlayer = soundplayer.New(deps.Logger, soundplayer.NewSSEBackend(deps.Publisher), deps.Clock)
	deps.PermissionGate = notifier.NewPermissionGate(
		deps.Logger,
		notifier.NewInPage(deps.Publisher),
		deps.Publisher,
		notification.PermissionDefault,
	)
	deps.Displayer = deps.PermissionGate
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Config.RedisPrefix, deps.Now)
	deps.TokenHasher = tokenhasher.NewBcrypt(deps.Config.AuthSecret, deps.Config.BcryptHasherCost)

	return deps, deps.close
}

func (deps *Foreground) initStore() func() {
	switch deps.Config.StoreDriver {
	case config.STORE_DRIVER_SQLITE:
		return deps.initSqlite()
	default:
		return deps.initPgxPool()
	}
}

func (deps *Foreground) initPgxPool() func() {
	if err := db.MigratePostgres(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not migrate DB.", dl.Entry("err", err))
		panic(err)
	}
	pool, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.UnitOfWork = uow.NewPgxUnitOfWork(pool)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Foreground) initSqlite() func() {
	conn, err := sqlite.Open(context.Background(), deps.Config.SqlitePath)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not open SQLite DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.UnitOfWork = sqlite.NewUnitOfWork(conn)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SQLite DB.")
		conn.Close()
		deps.Logger.Info(context.Background(), "SQLite DB shut down.")
	}
}

func (deps *Foreground) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Foreground) initSyncRequester() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.DeclareQueue(deps.Config.RabbitmqSyncQueue); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.SyncRequester = syncrequester.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqExchange,
		deps.Config.RabbitmqSyncQueue,
		deps.Now,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down sync requester.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Sync requester shut down.")
	}
}
