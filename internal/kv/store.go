package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/daytrip-ai/daytrip-server/app/observability/metrics"
)

// ErrNotFound is returned when no value exists for the requested key.
var ErrNotFound = errors.New("kv: key not found")

// DB is the subset of pgxpool.Pool the store needs. pgxmock satisfies it too.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a JSON document store keyed by namespaced strings of the form
// "{resource}:{userId}:{id}". Values round-trip through encoding/json.
type Store interface {
	Set(ctx context.Context, key string, value any) error
	Get(ctx context.Context, key string, dst any) error
	GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error)
	Delete(ctx context.Context, key string) error
}

// Key builds the canonical "{resource}:{userId}:{id}" key.
func Key(resource, userID, id string) string {
	return resource + ":" + userID + ":" + id
}

// Prefix builds the per-user scan prefix for a resource, trailing colon
// included.
func Prefix(resource, userID string) string {
	return resource + ":" + userID + ":"
}

var _ Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db     DB
	logger *slog.Logger
}

func NewPostgresStore(db DB, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// Set upserts the JSON encoding of value under key.
func (s *PostgresStore) Set(ctx context.Context, key string, value any) error {
	ctx, span := otel.Tracer("KVStore").Start(ctx, "Set")
	defer span.End()
	span.SetAttributes(attribute.String("kv.key", key))

	start := time.Now()
	defer func() {
		metrics.Get().KvQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	encoded, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "marshal failed")
		return fmt.Errorf("kv: failed to marshal value for key %q: %w", key, err)
	}

	_, err = s.db.Exec(ctx, `
        INSERT INTO kv_store (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, encoded)
	if err != nil {
		metrics.Get().KvQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert failed")
		s.logger.ErrorContext(ctx, "KV upsert failed", slog.String("key", key), slog.Any("error", err))
		return fmt.Errorf("kv: failed to set key %q: %w", key, err)
	}
	return nil
}

// Get loads the value stored under key and unmarshals it into dst.
func (s *PostgresStore) Get(ctx context.Context, key string, dst any) error {
	ctx, span := otel.Tracer("KVStore").Start(ctx, "Get")
	defer span.End()
	span.SetAttributes(attribute.String("kv.key", key))

	start := time.Now()
	defer func() {
		metrics.Get().KvQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		metrics.Get().KvQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return fmt.Errorf("kv: failed to get key %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		span.RecordError(err)
		return fmt.Errorf("kv: failed to unmarshal value for key %q: %w", key, err)
	}
	return nil
}

// GetByPrefix returns the raw values of every key starting with prefix,
// ordered by key for stable listings.
func (s *PostgresStore) GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error) {
	ctx, span := otel.Tracer("KVStore").Start(ctx, "GetByPrefix")
	defer span.End()
	span.SetAttributes(attribute.String("kv.prefix", prefix))

	start := time.Now()
	defer func() {
		metrics.Get().KvQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	rows, err := s.db.Query(ctx, `SELECT value FROM kv_store WHERE key LIKE $1 || '%' ORDER BY key`, prefix)
	if err != nil {
		metrics.Get().KvQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, fmt.Errorf("kv: failed to scan prefix %q: %w", prefix, err)
	}
	defer rows.Close()

	var values []json.RawMessage
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			metrics.Get().KvQueryErrorsTotal.Add(ctx, 1)
			span.RecordError(err)
			return nil, fmt.Errorf("kv: failed to scan row for prefix %q: %w", prefix, err)
		}
		values = append(values, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		metrics.Get().KvQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		return nil, fmt.Errorf("kv: row iteration failed for prefix %q: %w", prefix, err)
	}
	return values, nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	ctx, span := otel.Tracer("KVStore").Start(ctx, "Delete")
	defer span.End()
	span.SetAttributes(attribute.String("kv.key", key))

	start := time.Now()
	defer func() {
		metrics.Get().KvQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	_, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key)
	if err != nil {
		metrics.Get().KvQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return fmt.Errorf("kv: failed to delete key %q: %w", key, err)
	}
	return nil
}
