package main

import (
	"context"
	"mealremind/internal/app/consumers"
	"mealremind/internal/app/deps"
	"mealremind/internal/app/services"
	activatebackground "mealremind/internal/core/services/activate_background"
	"os"
	"os/signal"
	"syscall"

	dl "mealremind/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitBackground()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitBackground(deps)

	activated, err := services.Activate.Run(
		context.Background(),
		activatebackground.Input{PeriodicEnabled: deps.Config.PeriodicSyncEnabled},
	)
	if err != nil {
		log.Error(context.Background(), "Background activation failed.", dl.Entry("err", err))
		return
	}
	log.Info(
		context.Background(),
		"Background context activated.",
		dl.Entry("schemaFrom", activated.SchemaFrom),
		dl.Entry("schemaTo", activated.SchemaTo),
		dl.Entry("periodicArmed", activated.PeriodicArmed),
		dl.Entry("precached", activated.Precached),
		dl.Entry("droppedCaches", activated.DroppedCaches),
		dl.Entry("armed", activated.ArmedAfterSync),
	)

	deps.Periodic.Start()
	consumers.InitConsumers(deps, services)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	log.Info(context.Background(), "Stopping background worker.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
