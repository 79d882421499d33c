package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/symbol-chain/catapult-gateway/pkg/gateway"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := gateway.Initialize(ctx)

	srv, err := gateway.NewServer(app)
	if err != nil {
		app.Logger.Fatal("unable to initialize server", zap.Error(err))
	}

	srv.Start(ctx)
}
