package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"greentax/internal/platform/postgres"
	"greentax/internal/society/models"
	"greentax/pkg/domain"
	"greentax/pkg/platform/sentinel"
	txcontext "greentax/pkg/platform/tx"
)

// PostgresStore persists societies in PostgreSQL.
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

const societyColumns = `id, name, ward, lat, lng, tax_number, address, total_units, active, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, society *models.Society) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO societies (`+societyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, society.ID, society.Name, society.Ward, society.Location.Lat, society.Location.Lng,
		society.TaxNumber, society.Address, society.TotalUnits, society.Active,
		society.CreatedAt, society.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return fmt.Errorf("tax number %s: %w", society.TaxNumber, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert society: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.SocietyID) (*models.Society, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+societyColumns+` FROM societies WHERE id = $1`, id)
	society, err := scanSociety(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find society: %w", err)
	}
	return society, nil
}

func (s *PostgresStore) ListActive(ctx context.Context) ([]*models.Society, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+societyColumns+` FROM societies
		WHERE active
		ORDER BY ward, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list active societies: %w", err)
	}
	defer rows.Close()

	var out []*models.Society
	for rows.Next() {
		society, err := scanSociety(rows)
		if err != nil {
			return nil, fmt.Errorf("scan society: %w", err)
		}
		out = append(out, society)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate societies: %w", err)
	}
	return out, nil
}

// Execute locks the row with SELECT ... FOR UPDATE, runs validate and mutate,
// and writes the mutable columns back in the same transaction.
func (s *PostgresStore) Execute(ctx context.Context, id domain.SocietyID, validate func(*models.Society) error, mutate func(*models.Society)) (*models.Society, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+societyColumns+` FROM societies WHERE id = $1 FOR UPDATE`, id)
	society, err := scanSociety(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock society: %w", err)
	}

	if err := validate(society); err != nil {
		return nil, err
	}
	mutate(society)

	if _, err := tx.ExecContext(ctx, `
		UPDATE societies SET active = $2, updated_at = $3 WHERE id = $1
	`, society.ID, society.Active, society.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update society: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return society, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSociety(row scanner) (*models.Society, error) {
	var society models.Society
	err := row.Scan(
		&society.ID, &society.Name, &society.Ward,
		&society.Location.Lat, &society.Location.Lng,
		&society.TaxNumber, &society.Address, &society.TotalUnits, &society.Active,
		&society.CreatedAt, &society.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &society, nil
}
