package uploads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/dbx"
	"github.com/buildlog-app/buildlog/internal/server/models"
)

// PostgresRepository implements upload metadata storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, upload *models.Upload) (*models.Upload, error) {
	query := `
		INSERT INTO uploads (user_id, check_in_id, file_name, file_path, file_type, file_size,
			looking_at, why_it_matters)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		upload.UserID, dbx.NullString(upload.CheckInID),
		upload.FileName, upload.FilePath, upload.FileType, upload.FileSize,
		dbx.NullString(upload.LookingAt), dbx.NullString(upload.WhyItMatters),
	).Scan(&upload.ID, &upload.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return upload, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Upload, error) {
	query := selectColumns + `
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	upload, err := scanUpload(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return upload, nil
}

func (r *PostgresRepository) ListByCheckIn(ctx context.Context, checkInID string) ([]*models.Upload, error) {
	query := selectColumns + `
		WHERE check_in_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, checkInID)
	if err != nil {
		return nil, fmt.Errorf("failed to select uploads: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) ListByCheckIns(ctx context.Context, checkInIDs []string) (map[string][]*models.Upload, error) {
	result := make(map[string][]*models.Upload)
	if len(checkInIDs) == 0 {
		return result, nil
	}
	query := selectColumns + `
		WHERE check_in_id = ANY($1)
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, checkInIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to select uploads: %w", err)
	}
	defer rows.Close()

	uploads, err := collect(rows)
	if err != nil {
		return nil, err
	}
	for _, u := range uploads {
		if u.CheckInID == nil {
			continue
		}
		result[*u.CheckInID] = append(result[*u.CheckInID], u)
	}
	return result, nil
}

func (r *PostgresRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*models.Upload, error) {
	query := selectColumns + `
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select uploads: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) AttachToCheckIn(ctx context.Context, id, userID, checkInID string) error {
	query := `
		UPDATE uploads SET check_in_id = $1
		WHERE id = $2 AND user_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, checkInID, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) UpdateContext(ctx context.Context, id, userID string, lookingAt, whyItMatters *string) error {
	query := `
		UPDATE uploads SET looking_at = $1, why_it_matters = $2
		WHERE id = $3 AND user_id = $4
	`
	res, err := r.db.ExecContext(ctx, query,
		dbx.NullString(lookingAt), dbx.NullString(whyItMatters), id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `
		DELETE FROM uploads
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) DeleteByCheckIn(ctx context.Context, checkInID string) error {
	query := `
		DELETE FROM uploads
		WHERE check_in_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, checkInID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, user_id, check_in_id, file_name, file_path, file_type, file_size,
		looking_at, why_it_matters, created_at
	FROM uploads`

func scanUpload(scan func(dest ...any) error) (*models.Upload, error) {
	var (
		upload       models.Upload
		checkInID    sql.NullString
		lookingAt    sql.NullString
		whyItMatters sql.NullString
	)
	err := scan(
		&upload.ID, &upload.UserID, &checkInID,
		&upload.FileName, &upload.FilePath, &upload.FileType, &upload.FileSize,
		&lookingAt, &whyItMatters, &upload.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	upload.CheckInID = dbx.StringPtr(checkInID)
	upload.LookingAt = dbx.StringPtr(lookingAt)
	upload.WhyItMatters = dbx.StringPtr(whyItMatters)
	return &upload, nil
}

func collect(rows *sql.Rows) ([]*models.Upload, error) {
	var result []*models.Upload
	for rows.Next() {
		upload, err := scanUpload(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
