package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/de-tools/coop-atlas/pkg/handlers/analysis"
	coopatlasmiddleware "github.com/de-tools/coop-atlas/pkg/server/middleware"
	"github.com/de-tools/coop-atlas/pkg/services/analysis"
	"github.com/de-tools/coop-atlas/pkg/services/survey"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Datasets survey.Explorer
	Analysis analysis.Explorer
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

// ConfigureRouter builds the API routes; split out so tests can mount
// the router without a listening server.
func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	handler := handlers.NewHandler(deps.Datasets, deps.Analysis)

	router := chi.NewRouter()
	router.Use(coopatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/datasets", handler.ListDatasets)
		r.Get("/datasets/{dataset}/periods", handler.ListPeriods)
		r.Get("/datasets/{dataset}/correlations", handler.GetCorrelations)
		r.Get("/datasets/{dataset}/trend", handler.GetTrend)
		r.Get("/datasets/{dataset}/insights", handler.GetInsights)
		r.Get("/datasets/{dataset}/variables/{variable}/comparison", handler.GetComparison)
		r.Get("/datasets/{dataset}/variables/{variable}/regions", handler.GetTopRegions)
	})

	return router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
