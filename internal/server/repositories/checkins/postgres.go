package checkins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/dbx"
	"github.com/buildlog-app/buildlog/internal/server/models"
)

// PostgresRepository implements check-in storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, checkIn *models.CheckIn) (*models.CheckIn, error) {
	query := `
		INSERT INTO check_ins (user_id, check_in_type, check_in_date, general_notes, day_type,
			breakthroughs, video_worthy, post_worthy, in_my_own_words)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		checkIn.UserID, checkIn.CheckInType, checkIn.CheckInDate,
		dbx.NullString(checkIn.GeneralNotes), dbx.NullString(checkIn.DayType),
		dbx.NullString(checkIn.Breakthroughs), checkIn.VideoWorthy, checkIn.PostWorthy,
		dbx.NullString(checkIn.InMyOwnWords),
	).Scan(&checkIn.ID, &checkIn.CreatedAt, &checkIn.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return checkIn, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.CheckIn, error) {
	query := selectColumns + `
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	checkIn, err := scanCheckIn(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return checkIn, nil
}

func (r *PostgresRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*models.CheckIn, error) {
	query := selectColumns + `
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select check-ins: %w", err)
	}
	defer rows.Close()

	var result []*models.CheckIn
	for rows.Next() {
		checkIn, err := scanCheckIn(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, checkIn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, checkIn *models.CheckIn) error {
	query := `
		UPDATE check_ins SET
			general_notes = $1, day_type = $2, breakthroughs = $3,
			video_worthy = $4, post_worthy = $5, in_my_own_words = $6,
			updated_at = now()
		WHERE id = $7 AND user_id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		dbx.NullString(checkIn.GeneralNotes), dbx.NullString(checkIn.DayType),
		dbx.NullString(checkIn.Breakthroughs), checkIn.VideoWorthy, checkIn.PostWorthy,
		dbx.NullString(checkIn.InMyOwnWords),
		checkIn.ID, checkIn.UserID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `
		DELETE FROM check_ins
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

const selectColumns = `
	SELECT id, user_id, check_in_type, check_in_date, general_notes, day_type,
		breakthroughs, video_worthy, post_worthy, in_my_own_words, created_at, updated_at
	FROM check_ins`

func scanCheckIn(scan func(dest ...any) error) (*models.CheckIn, error) {
	var (
		checkIn       models.CheckIn
		generalNotes  sql.NullString
		dayType       sql.NullString
		breakthroughs sql.NullString
		inMyOwnWords  sql.NullString
	)
	err := scan(
		&checkIn.ID, &checkIn.UserID, &checkIn.CheckInType, &checkIn.CheckInDate,
		&generalNotes, &dayType, &breakthroughs,
		&checkIn.VideoWorthy, &checkIn.PostWorthy, &inMyOwnWords,
		&checkIn.CreatedAt, &checkIn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	checkIn.GeneralNotes = dbx.StringPtr(generalNotes)
	checkIn.DayType = dbx.StringPtr(dayType)
	checkIn.Breakthroughs = dbx.StringPtr(breakthroughs)
	checkIn.InMyOwnWords = dbx.StringPtr(inMyOwnWords)
	return &checkIn, nil
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
