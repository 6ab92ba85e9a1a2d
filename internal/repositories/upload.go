package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/shared"
)

var _ models.Repository[*models.UploadRecord, models.ReceiptFilter] = (*UploadRepository)(nil)

const uploadColumns = `id, sequence, video_id, title, file_name, username, created_at, updated_at, deleted_at`

// UploadRepository keeps upload receipts in SQLite.
type UploadRepository struct {
	db *sql.DB
}

// NewUploadRepository creates a new UploadRepository with the given database connection
func NewUploadRepository(db *sql.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create inserts a receipt with a generated ID and the next upload sequence number.
func (r *UploadRepository) Create(upload *models.UploadRecord) error {
	if err := upload.Validate(); err != nil {
		return fmt.Errorf("%w: validation failed: %w", shared.ErrInvalidInput, err)
	}

	sequence, err := NextSequence(r.db, "uploads")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	query := `
		INSERT INTO uploads (id, sequence, video_id, title, file_name, username, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		upload.VideoID(),
		upload.Title(),
		upload.FileName(),
		upload.Username(),
		upload.CreatedAt(),
		upload.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}

	upload.SetID(id)
	upload.SetSequence(sequence)
	return nil
}

// Get retrieves a receipt by ID, excluding soft-deleted receipts
func (r *UploadRepository) Get(id string) (*models.UploadRecord, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// GetByVideoID retrieves the receipt for a backend video ID
func (r *UploadRepository) GetByVideoID(videoID string) (*models.UploadRecord, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE video_id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, videoID))
}

// Update rewrites the receipt's title
func (r *UploadRepository) Update(upload *models.UploadRecord) error {
	if err := upload.Validate(); err != nil {
		return fmt.Errorf("%w: validation failed: %w", shared.ErrInvalidInput, err)
	}

	now := time.Now().UTC()

	result, err := r.db.Exec(`
		UPDATE uploads
		SET title = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, upload.Title(), now, upload.ID())
	if err != nil {
		return fmt.Errorf("failed to update upload: %w", err)
	}

	if err := requireRow(result, upload.ID()); err != nil {
		return err
	}

	upload.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a receipt by ID
func (r *UploadRepository) Delete(id string) error {
	result, err := r.db.Exec(`
		UPDATE uploads
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete upload: %w", err)
	}

	return requireRow(result, id)
}

// List returns receipts matching filter ordered by sequence.
func (r *UploadRepository) List(filter models.ReceiptFilter) ([]*models.UploadRecord, error) {
	query := `SELECT ` + uploadColumns + ` FROM uploads WHERE deleted_at IS NULL`
	args := []any{}

	if filter.Username != "" {
		query += " AND username = ?"
		args = append(args, filter.Username)
	}
	if filter.VideoID != "" {
		query += " AND video_id = ?"
		args = append(args, filter.VideoID)
	}

	if filter.Limit > 0 {
		query = "SELECT * FROM (" + query + " ORDER BY sequence DESC LIMIT ?) ORDER BY sequence ASC"
		args = append(args, filter.Limit)
	} else {
		query += " ORDER BY sequence ASC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*models.UploadRecord
	for rows.Next() {
		upload, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return uploads, nil
}

func (r *UploadRepository) scan(row rowScanner) (*models.UploadRecord, error) {
	var (
		id        string
		sequence  int
		videoID   string
		title     string
		fileName  string
		username  string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &videoID, &title, &fileName, &username, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrUploadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan upload: %w", err)
	}

	upload := models.NewUploadRecord(sequence, videoID, title, fileName, username)
	upload.SetID(id)
	upload.SetCreatedAt(createdAt)
	upload.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		upload.SetDeletedAt(&deletedAt.Time)
	}

	return upload, nil
}

func requireRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrUploadNotFound, id)
	}
	return nil
}
