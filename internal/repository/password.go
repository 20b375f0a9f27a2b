package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vaultpass/passforge-go/internal/model"
)

const insertPassword = `INSERT INTO generated_passwords (batch_id, plaintext, hash, created_at) VALUES (?, ?, ?, ?)`

const createPasswordsTable = `
	CREATE TABLE IF NOT EXISTS generated_passwords (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		batch_id   CHAR(36)    NOT NULL,
		plaintext  VARCHAR(64) NOT NULL,
		hash       VARCHAR(72) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_generated_passwords_batch (batch_id)
	)`

// PasswordRepository persists generated passwords in MySQL.
type PasswordRepository struct {
	db *sql.DB
}

// NewPasswordRepository creates a new PasswordRepository.
func NewPasswordRepository(db *sql.DB) *PasswordRepository {
	return &PasswordRepository{db: db}
}

// EnsureSchema creates the generated_passwords table if it does not exist.
func (r *PasswordRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createPasswordsTable)
	return err
}

// Save inserts a record and sets the generated ID on it.
func (r *PasswordRepository) Save(ctx context.Context, record *model.PasswordRecord) error {
	return r.SaveBatch(ctx, []*model.PasswordRecord{record})
}

// SaveBatch inserts records in a single transaction and sets their generated
// IDs once it commits. Any failure rolls the whole batch back.
func (r *PasswordRepository) SaveBatch(ctx context.Context, records []*model.PasswordRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertPassword)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	ids := make([]int64, len(records))
	for i, record := range records {
		createdAt := record.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		result, err := stmt.ExecContext(ctx, record.BatchID, record.Plaintext, record.Hash, createdAt)
		if err != nil {
			return err
		}
		if ids[i], err = result.LastInsertId(); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for i, record := range records {
		record.ID = ids[i]
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
	}
	return nil
}

// Get retrieves a record by its ID.
func (r *PasswordRepository) Get(ctx context.Context, id int64) (*model.PasswordRecord, error) {
	query := `SELECT id, batch_id, plaintext, hash, created_at FROM generated_passwords WHERE id = ?`

	record := &model.PasswordRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.BatchID, &record.Plaintext, &record.Hash, &record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return record, nil
}

// List retrieves all records ordered by ID.
func (r *PasswordRepository) List(ctx context.Context) ([]model.PasswordRecord, error) {
	query := `SELECT id, batch_id, plaintext, hash, created_at FROM generated_passwords ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.PasswordRecord{}
	for rows.Next() {
		var rec model.PasswordRecord
		if err := rows.Scan(&rec.ID, &rec.BatchID, &rec.Plaintext, &rec.Hash, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
