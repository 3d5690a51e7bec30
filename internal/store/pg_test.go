package store_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkarstens/geojourney/internal/store"
	"github.com/nkarstens/geojourney/migrations"
	"github.com/nkarstens/geojourney/testutil"
)

// TestMain applies all pending migrations to the test database so individual
// tests never need to think about schema state. When TEST_DATABASE_URL is
// unset, every test in this package skips via testutil.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatalf("TestMain: create goose provider: %v", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}

// newPGStore returns a Postgres store running inside a transaction that is
// rolled back when the test finishes, so tests never see each other's keys.
func newPGStore(t *testing.T) *store.Postgres {
	t.Helper()

	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	return store.NewPostgres(tx)
}

func TestPostgres_GetAbsentKey(t *testing.T) {
	s := newPGStore(t)

	_, err := s.Get(context.Background(), "never-set")

	assert.ErrorIs(t, err, store.ErrNoValue)
}

func TestPostgres_SetGetRoundTrip(t *testing.T) {
	s := newPGStore(t)

	require.NoError(t, s.Set(context.Background(), "trips", []byte(`[{"id":"t1"}]`)))

	got, err := s.Get(context.Background(), "trips")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"t1"}]`, string(got))
}

func TestPostgres_SetUpserts(t *testing.T) {
	s := newPGStore(t)

	require.NoError(t, s.Set(context.Background(), "budget", []byte(`{"amount":100}`)))
	require.NoError(t, s.Set(context.Background(), "budget", []byte(`{"amount":500}`)))

	got, err := s.Get(context.Background(), "budget")
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":500}`, string(got))
}

func TestPostgres_Delete(t *testing.T) {
	s := newPGStore(t)

	require.NoError(t, s.Set(context.Background(), "budget", []byte(`{"amount":100}`)))
	require.NoError(t, s.Delete(context.Background(), "budget"))

	_, err := s.Get(context.Background(), "budget")
	assert.ErrorIs(t, err, store.ErrNoValue)

	assert.NoError(t, s.Delete(context.Background(), "budget"))
}
