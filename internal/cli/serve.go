package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/priority-radar/internal/calendar"
	"github.com/tbourn/priority-radar/internal/config"
	httpapi "github.com/tbourn/priority-radar/internal/http"
	"github.com/tbourn/priority-radar/internal/observability"
	"github.com/tbourn/priority-radar/internal/repo"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = time.Hour
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, nil)
		},
	}
}

// openStore opens the configured database, migrates it and seeds every empty
// table from the configured dataset.
func openStore(ctx context.Context, cfg config.Config, cal *calendar.Calendar) (*gorm.DB, error) {
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, err
	}
	d, err := repo.LoadDataset(cfg.SeedPath)
	if err != nil {
		return nil, err
	}
	if err := repo.Seed(ctx, db, d, cal); err != nil {
		return nil, err
	}
	return db, nil
}

// serve runs the API until ctx is cancelled. A non-nil ln replaces the
// listener on cfg.Port.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	cfg := a.cfg
	gin.SetMode(cfg.GinMode)

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, a.opts.Version)
	if err != nil {
		return err
	}

	cal := a.calendar()
	db, err := openStore(ctx, cfg, cal)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	go purgeExpired(ctx, db, purgeInterval)

	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg, cal)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Str("db", cfg.DBPath).
			Str("version", a.opts.Version).
			Msg("http server starting")
		var err error
		if ln != nil {
			err = srv.Serve(ln)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("http server shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownOTel(sctx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
	return nil
}

// purgeExpired deletes expired idempotency records every interval until ctx
// is done.
func purgeExpired(ctx context.Context, db *gorm.DB, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeIdempotency(ctx, db, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency keys")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("expired idempotency keys removed")
			}
		}
	}
}
