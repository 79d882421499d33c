// Package gateway is the Route Adaptor (spec.md §4.3): it translates HTTP
// requests into pkg/cursor.Descriptor calls and their results back into
// JSON, and owns nothing the engine doesn't already own — no cache, no
// business logic beyond limit validation and error-to-status mapping.
package gateway

import (
	"context"

	"go.uber.org/zap"

	"github.com/symbol-chain/catapult-gateway/pkg/logging"
	"github.com/symbol-chain/catapult-gateway/pkg/peerclient"
	"github.com/symbol-chain/catapult-gateway/pkg/store"
	"github.com/symbol-chain/catapult-gateway/pkg/utils"
)

// App is the gateway's process-lifetime state, grounded on the teacher's
// app/query/types/app.go — narrowed from a multi-chain xsync.Map (no
// multi-chain state exists in this single-store gateway) to one *store.Client.
type App struct {
	Logger *zap.Logger
	Store  *store.Client
	Peer   peerclient.Client

	PageSizePolicy   LimitPolicy
	CountRangePolicy LimitPolicy

	Addr string
}

// Initialize builds the App from environment configuration (spec.md §6.2),
// grounded on app/query/app.go's Initialize. It is fatal-on-error for the
// store connection, matching the teacher's own bootstrap behavior: a
// gateway with no reachable store cannot serve any route.
func Initialize(ctx context.Context) *App {
	logger, err := logging.New()
	if err != nil {
		panic("gateway: failed to build logger: " + err.Error())
	}

	storeClient, err := store.New(ctx, logger, store.ConfigFromEnv())
	if err != nil {
		logger.Fatal("gateway: failed to connect to store", zap.Error(err))
	}

	return &App{
		Logger:           logger,
		Store:            storeClient,
		Peer:             peerclient.NewTCPClient(peerclient.OptsFromEnv(), logger),
		PageSizePolicy:   PageSizePolicyFromEnv(),
		CountRangePolicy: CountRangePolicyFromEnv(),
		Addr:             utils.Env("ADDR", ":8080"),
	}
}
