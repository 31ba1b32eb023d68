package projectupdates

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/buildlog-app/buildlog/internal/dbx"
	"github.com/buildlog-app/buildlog/internal/server/models"
)

// PostgresRepository implements project-update storage over a dbx.DBTX.
// Reads LEFT JOIN the projects table so the project name survives even
// when the project row was deleted (project_id carries no FK).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateBatch(ctx context.Context, updates []*models.ProjectUpdate) error {
	query := `
		INSERT INTO project_updates (check_in_id, project_id, update_text, problem,
			what_didnt_work, what_worked, surprise, is_win, is_blocker, blocker_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	for _, u := range updates {
		err := r.db.QueryRowContext(ctx, query,
			u.CheckInID, u.ProjectID,
			dbx.NullString(u.UpdateText), dbx.NullString(u.Problem),
			dbx.NullString(u.WhatDidntWork), dbx.NullString(u.WhatWorked),
			dbx.NullString(u.Surprise), u.IsWin, u.IsBlocker,
			dbx.NullString(u.BlockerDescription),
		).Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListByCheckIn(ctx context.Context, checkInID string) ([]*models.ProjectUpdate, error) {
	query := selectColumns + `
		WHERE u.check_in_id = $1
		ORDER BY u.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, checkInID)
	if err != nil {
		return nil, fmt.Errorf("failed to select project updates: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PostgresRepository) ListByCheckIns(ctx context.Context, checkInIDs []string) (map[string][]*models.ProjectUpdate, error) {
	result := make(map[string][]*models.ProjectUpdate)
	if len(checkInIDs) == 0 {
		return result, nil
	}
	query := selectColumns + `
		WHERE u.check_in_id = ANY($1)
		ORDER BY u.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, checkInIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to select project updates: %w", err)
	}
	defer rows.Close()

	updates, err := collect(rows)
	if err != nil {
		return nil, err
	}
	for _, u := range updates {
		result[u.CheckInID] = append(result[u.CheckInID], u)
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByCheckIn(ctx context.Context, checkInID string) error {
	query := `
		DELETE FROM project_updates
		WHERE check_in_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, checkInID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT u.id, u.check_in_id, u.project_id, u.update_text, u.problem,
		u.what_didnt_work, u.what_worked, u.surprise, u.is_win, u.is_blocker,
		u.blocker_description, u.created_at, COALESCE(p.name, '')
	FROM project_updates u
	LEFT JOIN projects p ON p.id = u.project_id`

func collect(rows *sql.Rows) ([]*models.ProjectUpdate, error) {
	var result []*models.ProjectUpdate
	for rows.Next() {
		var (
			u             models.ProjectUpdate
			updateText    sql.NullString
			problem       sql.NullString
			whatDidntWork sql.NullString
			whatWorked    sql.NullString
			surprise      sql.NullString
			blockerDesc   sql.NullString
		)
		err := rows.Scan(
			&u.ID, &u.CheckInID, &u.ProjectID,
			&updateText, &problem, &whatDidntWork, &whatWorked, &surprise,
			&u.IsWin, &u.IsBlocker, &blockerDesc,
			&u.CreatedAt, &u.ProjectName,
		)
		if err != nil {
			return nil, err
		}
		u.UpdateText = dbx.StringPtr(updateText)
		u.Problem = dbx.StringPtr(problem)
		u.WhatDidntWork = dbx.StringPtr(whatDidntWork)
		u.WhatWorked = dbx.StringPtr(whatWorked)
		u.Surprise = dbx.StringPtr(surprise)
		u.BlockerDescription = dbx.StringPtr(blockerDesc)
		result = append(result, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
