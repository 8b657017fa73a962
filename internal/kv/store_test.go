package kv

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
)

func TestMain(m *testing.M) {
	// Instruments come from the global no-op meter provider in tests.
	metrics.InitAppMetrics()
	os.Exit(m.Run())
}

type fixture struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewPostgresStore(mock, logger), mock
}

func TestKey(t *testing.T) {
	assert.Equal(t, "itinerary:user-1:abc", Key("itinerary", "user-1", "abc"))
	assert.Equal(t, "bookmark:user-1:", Prefix("bookmark", "user-1"))
}

func TestPostgresStore_Set(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WithArgs("itinerary:user-1:abc", []byte(`{"name":"seoul day","count":4}`)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := store.Set(context.Background(), "itinerary:user-1:abc", fixture{Name: "seoul day", Count: 4})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key = $1")).
		WithArgs("itinerary:user-1:abc").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`{"name":"seoul day","count":4}`)))

	var got fixture
	err := store.Get(context.Background(), "itinerary:user-1:abc", &got)
	require.NoError(t, err)
	assert.Equal(t, fixture{Name: "seoul day", Count: 4}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get_NotFound(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key = $1")).
		WithArgs("itinerary:user-1:missing").
		WillReturnRows(pgxmock.NewRows([]string{"value"}))

	var got fixture
	err := store.Get(context.Background(), "itinerary:user-1:missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetByPrefix(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key LIKE $1 || '%' ORDER BY key")).
		WithArgs("bookmark:user-1:").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).
			AddRow([]byte(`{"name":"a","count":1}`)).
			AddRow([]byte(`{"name":"b","count":2}`)))

	values, err := store.GetByPrefix(context.Background(), "bookmark:user-1:")
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.JSONEq(t, `{"name":"a","count":1}`, string(values[0]))
	assert.JSONEq(t, `{"name":"b","count":2}`, string(values[1]))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	store, mock := newStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE key = $1")).
		WithArgs("review:user-1:abc").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := store.Delete(context.Background(), "review:user-1:abc")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
