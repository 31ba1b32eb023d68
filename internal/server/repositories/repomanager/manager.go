package repomanager

import (
	"context"
	"database/sql"

	"github.com/buildlog-app/buildlog/internal/dbx"
	"github.com/buildlog-app/buildlog/internal/server/repositories/checkins"
	"github.com/buildlog-app/buildlog/internal/server/repositories/projects"
	"github.com/buildlog-app/buildlog/internal/server/repositories/projectupdates"
	"github.com/buildlog-app/buildlog/internal/server/repositories/refreshtokens"
	"github.com/buildlog-app/buildlog/internal/server/repositories/settings"
	"github.com/buildlog-app/buildlog/internal/server/repositories/uploads"
	"github.com/buildlog-app/buildlog/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can use
// the same constructors inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Projects(db dbx.DBTX) projects.Repository
	CheckIns(db dbx.DBTX) checkins.Repository
	ProjectUpdates(db dbx.DBTX) projectupdates.Repository
	Uploads(db dbx.DBTX) uploads.Repository
	Settings(db dbx.DBTX) settings.Repository
}
