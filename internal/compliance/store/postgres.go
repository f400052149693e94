package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"greentax/internal/compliance/models"
	"greentax/internal/platform/postgres"
	"greentax/pkg/domain"
	"greentax/pkg/period"
	"greentax/pkg/platform/sentinel"
	txcontext "greentax/pkg/platform/tx"
)

// PostgresStore persists compliance records in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const recordColumns = `society_id, year, month, week, tier, rebate_percent, score, proof_count,
	last_proof_at, days_since_last_proof, verified_count, flagged_count, rejected_count,
	created_at, updated_at`

// Upsert writes the record for its (society, year, month, week), overwriting
// every field except created_at when one already exists.
func (s *PostgresStore) Upsert(ctx context.Context, record *models.Record) (*models.Record, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `
		INSERT INTO compliance_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT ON CONSTRAINT compliance_records_period_key DO UPDATE SET
			tier = EXCLUDED.tier,
			rebate_percent = EXCLUDED.rebate_percent,
			score = EXCLUDED.score,
			proof_count = EXCLUDED.proof_count,
			last_proof_at = EXCLUDED.last_proof_at,
			days_since_last_proof = EXCLUDED.days_since_last_proof,
			verified_count = EXCLUDED.verified_count,
			flagged_count = EXCLUDED.flagged_count,
			rejected_count = EXCLUDED.rejected_count,
			updated_at = EXCLUDED.updated_at
		RETURNING `+recordColumns,
		record.SocietyID, record.Period.Year, record.Period.Month, record.Period.Week,
		record.Tier, record.RebatePercent, record.Score, record.ProofCount,
		record.LastProofAt, record.DaysSinceLastProof,
		record.Counts.Verified, record.Counts.Flagged, record.Counts.Rejected,
		record.CreatedAt, record.UpdatedAt,
	)
	stored, err := scanRecord(row)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("society %s: %w", record.SocietyID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("upsert compliance record: %w", err)
	}
	return stored, nil
}

func (s *PostgresStore) FindByPeriod(ctx context.Context, societyID domain.SocietyID, key period.Key) (*models.Record, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM compliance_records
		WHERE society_id = $1 AND year = $2 AND month = $3 AND week = $4
	`, societyID, key.Year, key.Month, key.Week)
	return scanOne(row, "find compliance record")
}

// sortWeekExpr mirrors period.Key.SortWeek so January days in last year's
// ISO week and December days in next year's week 1 order correctly.
const sortWeekExpr = `CASE WHEN month = 1 AND week >= 52 THEN 0 WHEN month = 12 AND week = 1 THEN 54 ELSE week END`

func (s *PostgresStore) LatestBySociety(ctx context.Context, societyID domain.SocietyID) (*models.Record, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `
		SELECT `+recordColumns+` FROM compliance_records
		WHERE society_id = $1
		ORDER BY year DESC, month DESC, `+sortWeekExpr+` DESC
		LIMIT 1
	`, societyID)
	return scanOne(row, "find latest compliance record")
}

func (s *PostgresStore) LatestPerSociety(ctx context.Context) (map[domain.SocietyID]*models.Record, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT DISTINCT ON (society_id) `+recordColumns+` FROM compliance_records
		ORDER BY society_id, year DESC, month DESC, `+sortWeekExpr+` DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list latest compliance records: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.SocietyID]*models.Record)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compliance record: %w", err)
		}
		out[record.SocietyID] = record
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate compliance records: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.execer(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM compliance_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count compliance records: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner, op string) (*models.Record, error) {
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return record, nil
}

func scanRecord(row scanner) (*models.Record, error) {
	var (
		record      models.Record
		lastProofAt sql.NullTime
	)
	err := row.Scan(
		&record.SocietyID, &record.Period.Year, &record.Period.Month, &record.Period.Week,
		&record.Tier, &record.RebatePercent, &record.Score, &record.ProofCount,
		&lastProofAt, &record.DaysSinceLastProof,
		&record.Counts.Verified, &record.Counts.Flagged, &record.Counts.Rejected,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastProofAt.Valid {
		t := lastProofAt.Time.UTC()
		record.LastProofAt = &t
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return &record, nil
}
