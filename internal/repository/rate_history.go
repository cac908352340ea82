package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"EcoBoard/internal/domain/models"
	domrepo "EcoBoard/internal/domain/repository"
)

// Schema statements applied on startup when history is enabled.
var HistorySchema = []string{
	`CREATE DATABASE IF NOT EXISTS ecoboard`,
	`CREATE TABLE IF NOT EXISTS ecoboard.rate_history (
		ts     DateTime,
		domain LowCardinality(String),
		source LowCardinality(String),
		value  Float64
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMM(ts)
	ORDER BY (domain, ts)
	TTL ts + INTERVAL 90 DAY`,
}

// ClickHouseHistory persists one sample per upstream refresh so the
// admin UI can chart rate trends.
type ClickHouseHistory struct {
	db    *sql.DB
	table string
}

func NewClickHouseHistory(db *sql.DB) domrepo.HistoryStore {
	return &ClickHouseHistory{db: db, table: "ecoboard.rate_history"}
}

func (s *ClickHouseHistory) Append(ctx context.Context, points []models.RatePoint) error {
	if len(points) == 0 {
		return nil
	}

	values := make([]string, 0, len(points))
	args := make([]interface{}, 0, len(points)*4)
	for _, p := range points {
		if p.Domain == "" || p.Value <= 0 {
			continue
		}
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, p.TS, p.Domain, p.Source, p.Value)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf("INSERT INTO %s (ts, domain, source, value) VALUES %s",
		s.table, strings.Join(values, ","))
	_, err := s.db.ExecContext(ctx, q, args...)
	return err
}

func (s *ClickHouseHistory) Range(ctx context.Context, domain string, from, to time.Time, limit int) ([]models.RatePoint, error) {
	q := fmt.Sprintf("SELECT ts, domain, source, value FROM %s WHERE domain = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, domain, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.RatePoint
	for rows.Next() {
		var p models.RatePoint
		if err := rows.Scan(&p.TS, &p.Domain, &p.Source, &p.Value); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *ClickHouseHistory) Close() error {
	return nil // pool owned by the clickhouse client
}
