package gateway

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// server wraps the http.Server alongside the App it was built from, so
// Start can log with the same logger NewServer validated routes against.
type server struct {
	app        *App
	httpServer *http.Server
}

// NewServer builds the router and HTTP server, grounded on
// app/query/server.go's NewServer. It returns an error rather than a
// server value on router construction failure so callers can decide
// whether that's fatal, matching the teacher's own convention.
func NewServer(app *App) (*server, error) {
	router := NewRouter(app)

	return &server{
		app: app,
		httpServer: &http.Server{
			Addr:              app.Addr,
			Handler:           WithCORS(router),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully. Grounded on app/query/server.go's Start.
func (s *server) Start(ctx context.Context) {
	go func() {
		s.app.Logger.Info("gateway listening", zap.String("addr", s.app.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.app.Logger.Fatal("gateway server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.app.Logger.Error("gateway shutdown error", zap.Error(err))
	}
	if err := s.app.Store.Close(); err != nil {
		s.app.Logger.Error("store close error", zap.Error(err))
	}
}
