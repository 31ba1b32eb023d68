package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/dbx"
	"github.com/buildlog-app/buildlog/internal/server/models"
)

// PostgresRepository implements project storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). The technologies list is persisted as the
// comma-joined form the project form displays.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	query := `
		INSERT INTO projects (user_id, name, description, goals, target_audience, content_angle,
			technologies, target_completion_date, status, progress_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		project.UserID, project.Name,
		dbx.NullString(project.Description), dbx.NullString(project.Goals),
		dbx.NullString(project.TargetAudience), dbx.NullString(project.ContentAngle),
		technologiesParam(project.Technologies), dbx.NullTime(project.TargetCompletionDate),
		project.Status, project.ProgressPercentage,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	query := selectColumns + `
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, id, userID)
	project, err := scanProject(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return project, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	query := selectColumns + `
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects SET
			name = $1, description = $2, goals = $3, target_audience = $4, content_angle = $5,
			technologies = $6, target_completion_date = $7, status = $8, progress_percentage = $9,
			updated_at = now()
		WHERE id = $10 AND user_id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		project.Name,
		dbx.NullString(project.Description), dbx.NullString(project.Goals),
		dbx.NullString(project.TargetAudience), dbx.NullString(project.ContentAngle),
		technologiesParam(project.Technologies), dbx.NullTime(project.TargetCompletionDate),
		project.Status, project.ProgressPercentage,
		project.ID, project.UserID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `
		DELETE FROM projects
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

const selectColumns = `
	SELECT id, user_id, name, description, goals, target_audience, content_angle,
		technologies, target_completion_date, status, progress_percentage, created_at, updated_at
	FROM projects`

func scanProject(scan func(dest ...any) error) (*models.Project, error) {
	var (
		project        models.Project
		description    sql.NullString
		goals          sql.NullString
		targetAudience sql.NullString
		contentAngle   sql.NullString
		technologies   sql.NullString
		completionDate sql.NullTime
	)
	err := scan(
		&project.ID, &project.UserID, &project.Name,
		&description, &goals, &targetAudience, &contentAngle,
		&technologies, &completionDate,
		&project.Status, &project.ProgressPercentage,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	project.Description = dbx.StringPtr(description)
	project.Goals = dbx.StringPtr(goals)
	project.TargetAudience = dbx.StringPtr(targetAudience)
	project.ContentAngle = dbx.StringPtr(contentAngle)
	if technologies.Valid {
		project.Technologies = common.SplitList(technologies.String)
	}
	project.TargetCompletionDate = dbx.TimePtr(completionDate)
	return &project, nil
}

func technologiesParam(technologies []string) sql.NullString {
	if len(technologies) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: common.JoinList(technologies), Valid: true}
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
