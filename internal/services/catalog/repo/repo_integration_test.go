//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"packrat/internal/core/catalog"
	"packrat/internal/modkit/repokit"
	perr "packrat/internal/platform/errors"
	"packrat/internal/platform/store"
	"packrat/internal/services/catalog/domain"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func openStore(t *testing.T, ctx context.Context, dsn string) *store.Store {
	t.Helper()

	st, err := store.Open(ctx, store.Config{
		AppName: "packrat-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })
	return st
}

func bolt() catalog.Entry {
	return catalog.Entry{
		Name: "Bolt", SetName: "A, B", Rarity: "common, uncommon",
		Colors: "R", CMC: "1", TypeLine: "Instant",
	}
}

func TestRepo_Integration_UpsertPreservesDeck(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st := openStore(t, ctx, dsn)
	r := repokit.MustBind(NewPG(), st.PG)

	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// idempotent
	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema second call: %v", err)
	}

	if err := r.Upsert(ctx, bolt()); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// deck assignment happens outside the pipeline
	if _, err := store.Exec(ctx, st.PG, `UPDATE cards SET deck = 'Commander' WHERE name = $1`, "Bolt"); err != nil {
		t.Fatalf("assign deck: %v", err)
	}

	// a later sync refreshes catalog columns but must leave deck alone
	e := bolt()
	e.SetName = "A, B, C"
	if err := r.Upsert(ctx, e); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	row, err := r.Get(ctx, "Bolt")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if row.SetName != "A, B, C" {
		t.Fatalf("set_name not refreshed: %+v", row)
	}
	if row.Deck != "Commander" {
		t.Fatalf("deck lost on upsert: %+v", row)
	}
}

func TestRepo_Integration_GetListCount(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st := openStore(t, ctx, dsn)
	r := repokit.MustBind(NewPG(), st.PG)

	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	for _, name := range []string{"Bolt", "Bonfire", "Wastes"} {
		e := bolt()
		e.Name = name
		if err := r.Upsert(ctx, e); err != nil {
			t.Fatalf("upsert %s: %v", name, err)
		}
	}

	if _, err := r.Get(ctx, "Nope"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	rows, err := r.List(ctx, "Bo", 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 || rows[0].Name != "Bolt" || rows[1].Name != "Bonfire" {
		t.Fatalf("prefix list mismatch: %+v", rows)
	}

	total, err := r.Count(ctx, "")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 3 {
		t.Fatalf("Count = %d, want 3", total)
	}
}

func TestRepo_Integration_RunBookkeeping(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st := openStore(t, ctx, dsn)
	r := repokit.MustBind(NewPG(), st.PG)

	if err := r.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	run := domain.Run{
		ID:           "run-1",
		DataType:     "default_cards",
		SnapshotFile: "20260825_default_cards_scryfall.json",
		Status:       domain.RunStatusRunning,
		StartedAt:    time.Now().UTC(),
	}
	if err := r.InsertRun(ctx, run); err != nil {
		t.Fatalf("InsertRun: %v", err)
	}
	if err := r.FinishRun(ctx, "run-1", domain.RunStatusOK, "", 3, 2); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}
	if err := r.FinishRun(ctx, "missing", domain.RunStatusOK, "", 0, 0); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("FinishRun on missing run should be not found, got %v", err)
	}

	runs, err := r.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != domain.RunStatusOK || runs[0].Cards != 2 {
		t.Fatalf("runs mismatch: %+v", runs)
	}
	if runs[0].FinishedAt == nil {
		t.Fatalf("finished_at not set")
	}
}
