package main

import (
	"context"
	"errors"
	"mealremind/internal/app"
	"mealremind/internal/app/deps"
	"mealremind/internal/app/services"
	initializedefaultreminders "mealremind/internal/core/services/initialize_default_reminders"
	reschedulereminders "mealremind/internal/core/services/reschedule_reminders"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dl "mealremind/internal/core/domain/logging"
)

const REASON_PROCESS_START = "process-start"

func main() {
	deps, shutdownDeps := deps.InitForeground()
	services := services.InitForeground(deps)

	prepare(context.Background(), deps, services)
	deps.Periodic.Start()

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

// prepare seeds the default reminders on first start and arms the timers.
// Neither step is fatal: the page keeps working and the hourly pass retries.
func prepare(ctx context.Context, deps *deps.Foreground, services *services.Foreground) {
	initialized, err := services.InitializeDefaultReminders.Run(ctx, initializedefaultreminders.Input{})
	if err != nil {
		deps.Logger.Error(ctx, "Could not initialize default reminders.", dl.Entry("err", err))
	} else {
		deps.Logger.Info(ctx, "Default reminders checked.", dl.Entry("created", len(initialized.Created)))
	}

	rescheduled, err := services.Reschedule.Run(ctx, reschedulereminders.Input{Reason: REASON_PROCESS_START})
	if err != nil {
		deps.Logger.Error(ctx, "Initial scheduling pass failed.", dl.Entry("err", err))
		return
	}
	deps.Logger.Info(
		ctx,
		"Initial scheduling pass finished.",
		dl.Entry("armed", rescheduled.Armed),
		dl.Entry("syncSent", rescheduled.SyncSent),
	)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Foreground) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("storeDriver", deps.Config.StoreDriver),
		dl.Entry("timezone", deps.Location.String()),
		dl.Entry("authEnabled", deps.Config.AuthTokenHash != ""),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	} else {
		deps.Logger.Info(context.Background(), "HTTP service is stopping gracefully.")
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Foreground, shutDownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		panic(err)
	}

	deps.Logger.Info(ctx, "HTTP server has shutdowned.")
	shutDownDeps()
}
