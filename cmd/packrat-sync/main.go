package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"packrat/internal/modkit"
	"packrat/internal/platform/config"
	"packrat/internal/platform/logger"
	"packrat/internal/platform/store"

	"packrat/internal/services/catalog/domain"
	catalogmod "packrat/internal/services/catalog/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	var (
		fType = flag.String("type", "default_cards", "bulk data type: oracle_cards | unique_artwork | default_cards | all_cards | rulings")
		fFile = flag.String("file", "", "reuse an already downloaded snapshot instead of fetching")
		fDir  = flag.String("dir", "", "directory for downloaded snapshots (default: data)")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: "packrat-sync",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// surface the flag to the module's CORE_CATALOG_* config
	mustSetEnv("CORE_CATALOG_SNAPSHOT_DIR", *fDir)

	deps := modkit.Deps{Cfg: root, PG: st.PG, Log: *l}
	cm := catalogmod.New(deps)

	sum, err := cm.Sync().Sync(ctx, domain.SyncRequest{
		DataType:     *fType,
		SnapshotPath: *fFile,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("sync failed")
	}
	l.Info().
		Str("run_id", sum.RunID).
		Str("snapshot", sum.SnapshotPath).
		Int("prints", sum.Prints).
		Int("cards", sum.Cards).
		Msg("sync complete")
}
