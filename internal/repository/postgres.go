package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/dealsense/buybox/internal/model"
)

// ActivityLog records parse and synthesis requests for later analysis.
// It is optional: a nil *ActivityLog is valid and every method becomes a
// no-op, so the demo runs with no database configured.
type ActivityLog struct {
	db *sqlx.DB
}

// NewActivityLog connects to PostgreSQL and ensures the log tables exist.
func NewActivityLog(dsn string, maxConn, maxIdleConn int) (*ActivityLog, error) {
	// Disable prepared statement caching to avoid "unnamed prepared
	// statement does not exist" errors behind pgbouncer.
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log := &ActivityLog{db: db}
	if err := log.ensureSchema(); err != nil {
		return nil, err
	}
	return log, nil
}

// Close closes the database connection
func (r *ActivityLog) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *ActivityLog) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS parse_log (
		id BIGSERIAL PRIMARY KEY,
		request_id TEXT,
		query TEXT NOT NULL,
		mandate JSONB,
		source TEXT NOT NULL,
		coverage_score INT,
		response_time_ms BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS synthesis_log (
		id BIGSERIAL PRIMARY KEY,
		request_id TEXT,
		seed_text TEXT,
		requested_count INT,
		generated_count INT,
		response_time_ms BIGINT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	_, err := r.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// LogParse records one parse request. Source names the parser that
// produced the result ("local", "merged").
func (r *ActivityLog) LogParse(ctx context.Context, requestID, query string, m *model.Mandate, source string, tookMs int64) error {
	if r == nil || r.db == nil {
		return nil
	}
	mandateJSON, err := json.Marshal(m)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO parse_log (request_id, query, mandate, source, coverage_score, response_time_ms)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		requestID, query, mandateJSON, source, m.CoverageScore, tookMs,
	)
	return err
}

// LogSynthesis records one prospect-synthesis request.
func (r *ActivityLog) LogSynthesis(ctx context.Context, requestID, seedText string, requested, generated int, tookMs int64) error {
	if r == nil || r.db == nil {
		return nil
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO synthesis_log (request_id, seed_text, requested_count, generated_count, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)`,
		requestID, seedText, requested, generated, tookMs,
	)
	return err
}
