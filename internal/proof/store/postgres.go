package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"greentax/internal/platform/postgres"
	"greentax/internal/proof/models"
	"greentax/pkg/domain"
	"greentax/pkg/platform/sentinel"
	txcontext "greentax/pkg/platform/tx"
)

const originalFingerprintConstraint = "proofs_original_fingerprint_key"

// PostgresStore persists the proof log in PostgreSQL.
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

const proofColumns = `id, society_id, image_url, image_fingerprint, captured_at, lat, lng,
	submitted_by, duplicate_of, status, reason, reviewed_by, reviewed_at`

func (s *PostgresStore) Create(ctx context.Context, proof *models.Proof) error {
	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO proofs (`+proofColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, proof.ID, proof.SocietyID, proof.ImageURL, proof.Fingerprint, proof.CapturedAt,
		proof.Coordinate.Lat, proof.Coordinate.Lng, proof.SubmittedBy, proof.DuplicateOf,
		proof.Status, proof.Reason, proof.ReviewedBy, proof.ReviewedAt)
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err, originalFingerprintConstraint):
			return fmt.Errorf("fingerprint %s: %w", proof.Fingerprint, sentinel.ErrAlreadyUsed)
		case postgres.IsUniqueViolation(err):
			return fmt.Errorf("proof %s: %w", proof.ID, sentinel.ErrAlreadyUsed)
		case postgres.IsForeignKeyViolation(err):
			return fmt.Errorf("proof references: %w", sentinel.ErrNotFound)
		}
		return fmt.Errorf("insert proof: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.ProofID) (*models.Proof, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `SELECT `+proofColumns+` FROM proofs WHERE id = $1`, id)
	return scanOne(row, "find proof")
}

func (s *PostgresStore) FindOriginalByFingerprint(ctx context.Context, fingerprint string) (*models.Proof, error) {
	row := s.execer(ctx).QueryRowContext(ctx, `
		SELECT `+proofColumns+` FROM proofs
		WHERE image_fingerprint = $1 AND duplicate_of IS NULL
	`, fingerprint)
	return scanOne(row, "find original proof")
}

// ListBySociety returns the society's proofs newest capture first. A limit
// of zero or less returns all of them.
func (s *PostgresStore) ListBySociety(ctx context.Context, societyID domain.SocietyID, limit int) ([]*models.Proof, error) {
	var limitArg any
	if limit > 0 {
		limitArg = limit
	}
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+proofColumns+` FROM proofs
		WHERE society_id = $1
		ORDER BY captured_at DESC, id
		LIMIT $2
	`, societyID, limitArg)
	if err != nil {
		return nil, fmt.Errorf("list proofs by society: %w", err)
	}
	return scanAll(rows)
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]*models.Proof, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT `+proofColumns+` FROM proofs
		WHERE status = $1
		ORDER BY captured_at DESC, id
	`, status)
	if err != nil {
		return nil, fmt.Errorf("list proofs by status: %w", err)
	}
	return scanAll(rows)
}

func (s *PostgresStore) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `SELECT status, COUNT(*) FROM proofs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count proofs by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Status]int, 3)
	for rows.Next() {
		var status models.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan proof count: %w", err)
		}
		counts[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proof counts: %w", err)
	}
	return counts, nil
}

// Review locks the row with SELECT ... FOR UPDATE, runs validate and mutate,
// and writes back only the review columns.
func (s *PostgresStore) Review(ctx context.Context, id domain.ProofID, validate func(*models.Proof) error, mutate func(*models.Review)) (*models.Proof, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `SELECT `+proofColumns+` FROM proofs WHERE id = $1 FOR UPDATE`, id)
	proof, err := scanOne(row, "lock proof")
	if err != nil {
		return nil, err
	}

	if err := validate(proof); err != nil {
		return nil, err
	}
	mutate(&proof.Review)

	if _, err := tx.ExecContext(ctx, `
		UPDATE proofs SET status = $2, reason = $3, reviewed_by = $4, reviewed_at = $5
		WHERE id = $1
	`, proof.ID, proof.Status, proof.Reason, proof.ReviewedBy, proof.ReviewedAt); err != nil {
		return nil, fmt.Errorf("update proof review: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return proof, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row scanner, op string) (*models.Proof, error) {
	proof, err := scanProof(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return proof, nil
}

func scanAll(rows *sql.Rows) ([]*models.Proof, error) {
	defer rows.Close()
	var out []*models.Proof
	for rows.Next() {
		proof, err := scanProof(rows)
		if err != nil {
			return nil, fmt.Errorf("scan proof: %w", err)
		}
		out = append(out, proof)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate proofs: %w", err)
	}
	return out, nil
}

func scanProof(row scanner) (*models.Proof, error) {
	var (
		proof       models.Proof
		submittedBy sql.Null[domain.UserID]
		duplicateOf sql.Null[domain.ProofID]
		reviewedBy  sql.Null[domain.UserID]
		reviewedAt  sql.NullTime
	)
	err := row.Scan(
		&proof.ID, &proof.SocietyID, &proof.ImageURL, &proof.Fingerprint, &proof.CapturedAt,
		&proof.Coordinate.Lat, &proof.Coordinate.Lng,
		&submittedBy, &duplicateOf, &proof.Status, &proof.Reason, &reviewedBy, &reviewedAt,
	)
	if err != nil {
		return nil, err
	}
	if submittedBy.Valid {
		proof.SubmittedBy = &submittedBy.V
	}
	if duplicateOf.Valid {
		proof.DuplicateOf = &duplicateOf.V
	}
	if reviewedBy.Valid {
		proof.ReviewedBy = &reviewedBy.V
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time.UTC()
		proof.ReviewedAt = &t
	}
	proof.CapturedAt = proof.CapturedAt.UTC()
	return &proof, nil
}
