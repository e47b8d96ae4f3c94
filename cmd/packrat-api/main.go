package main

import (
	"context"
	"os/signal"
	"syscall"

	"packrat/internal/modkit"
	"packrat/internal/platform/config"
	"packrat/internal/platform/logger"
	phttp "packrat/internal/platform/net/http"
	"packrat/internal/platform/store"

	cataloghttp "packrat/internal/services/catalog/http"
	catalogmod "packrat/internal/services/catalog/module"
	deckshttp "packrat/internal/services/decks/http"
	decksmod "packrat/internal/services/decks/module"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "packrat-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Log: *l, Cfg: root, PG: st.PG}

	catalog := catalogmod.New(deps)
	decks := decksmod.New(deps)

	srv := phttp.NewServer(apiCfg)
	cataloghttp.Mount(srv.Router(), catalog.Query())
	deckshttp.Mount(srv.Router(), decks.Port())

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			l.Error().Err(err).Msg("shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
