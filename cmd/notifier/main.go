package main

import (
	"context"
	"log/slog"
	"os"

	"payment-gateway/cmd/bootstrap"

	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		bootstrap.NotifierModule,
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start notifier", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop notifier", "error", err)
	}

	slog.Info("notifier stopped")
}
