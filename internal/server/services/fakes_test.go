package services

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/buildlog-app/buildlog/internal/dbx"
	"github.com/buildlog-app/buildlog/internal/logging"
	"github.com/buildlog-app/buildlog/internal/server/models"
	checkinsrepo "github.com/buildlog-app/buildlog/internal/server/repositories/checkins"
	projectsrepo "github.com/buildlog-app/buildlog/internal/server/repositories/projects"
	projectupdatesrepo "github.com/buildlog-app/buildlog/internal/server/repositories/projectupdates"
	refreshtokensrepo "github.com/buildlog-app/buildlog/internal/server/repositories/refreshtokens"
	settingsrepo "github.com/buildlog-app/buildlog/internal/server/repositories/settings"
	uploadsrepo "github.com/buildlog-app/buildlog/internal/server/repositories/uploads"
	usersrepo "github.com/buildlog-app/buildlog/internal/server/repositories/users"
)

// --- shared fakes for service tests ---

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	getOut    *models.User
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-1"
	u.CreatedAt = time.Now()
	return u, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error { return f.delErr }

type fakeProjectsRepo struct {
	createErr error
	getOut    *models.Project
	getErr    error
	listOut   []*models.Project
	listErr   error
	updateErr error
	deleteErr error

	lastCreated *models.Project
	lastUpdated *models.Project
}

func (f *fakeProjectsRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = "p-1"
	f.lastCreated = p
	return p, nil
}
func (f *fakeProjectsRepo) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut != nil {
		return f.getOut, nil
	}
	return f.lastUpdated, nil
}
func (f *fakeProjectsRepo) ListByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	return f.listOut, f.listErr
}
func (f *fakeProjectsRepo) Update(ctx context.Context, p *models.Project) error {
	f.lastUpdated = p
	return f.updateErr
}
func (f *fakeProjectsRepo) Delete(ctx context.Context, id, userID string) error { return f.deleteErr }

type fakeCheckInsRepo struct {
	createErr error
	getOut    *models.CheckIn
	getErr    error
	listOut   []*models.CheckIn
	listErr   error
	updateErr error
	deleteErr error

	lastCreated *models.CheckIn
	deleted     []string
}

func (f *fakeCheckInsRepo) Create(ctx context.Context, c *models.CheckIn) (*models.CheckIn, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = "c-1"
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.lastCreated = c
	return c, nil
}
func (f *fakeCheckInsRepo) GetByID(ctx context.Context, id, userID string) (*models.CheckIn, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeCheckInsRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*models.CheckIn, error) {
	return f.listOut, f.listErr
}
func (f *fakeCheckInsRepo) Update(ctx context.Context, c *models.CheckIn) error { return f.updateErr }
func (f *fakeCheckInsRepo) Delete(ctx context.Context, id, userID string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeProjectUpdatesRepo struct {
	createErr error
	listOut   []*models.ProjectUpdate
	listErr   error
	byCheckIn map[string][]*models.ProjectUpdate
	deleteErr error

	lastBatch []*models.ProjectUpdate
	deleted   []string
}

func (f *fakeProjectUpdatesRepo) CreateBatch(ctx context.Context, updates []*models.ProjectUpdate) error {
	f.lastBatch = updates
	return f.createErr
}
func (f *fakeProjectUpdatesRepo) ListByCheckIn(ctx context.Context, checkInID string) ([]*models.ProjectUpdate, error) {
	return f.listOut, f.listErr
}
func (f *fakeProjectUpdatesRepo) ListByCheckIns(ctx context.Context, ids []string) (map[string][]*models.ProjectUpdate, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.byCheckIn == nil {
		return map[string][]*models.ProjectUpdate{}, nil
	}
	return f.byCheckIn, nil
}
func (f *fakeProjectUpdatesRepo) DeleteByCheckIn(ctx context.Context, checkInID string) error {
	f.deleted = append(f.deleted, checkInID)
	return f.deleteErr
}

type fakeUploadsRepo struct {
	createErr  error
	getOut     *models.Upload
	getErr     error
	listOut    []*models.Upload
	listErr    error
	byCheckIn  map[string][]*models.Upload
	attachErr  error
	updateErr  error
	deleteErr  error
	delByCIErr error

	created  []*models.Upload
	attached []string
	deleted  []string
}

func (f *fakeUploadsRepo) Create(ctx context.Context, u *models.Upload) (*models.Upload, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "up-1"
	u.CreatedAt = time.Now()
	f.created = append(f.created, u)
	return u, nil
}
func (f *fakeUploadsRepo) GetByID(ctx context.Context, id, userID string) (*models.Upload, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeUploadsRepo) ListByCheckIn(ctx context.Context, checkInID string) ([]*models.Upload, error) {
	return f.listOut, f.listErr
}
func (f *fakeUploadsRepo) ListByCheckIns(ctx context.Context, ids []string) (map[string][]*models.Upload, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.byCheckIn == nil {
		return map[string][]*models.Upload{}, nil
	}
	return f.byCheckIn, nil
}
func (f *fakeUploadsRepo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*models.Upload, error) {
	return f.listOut, f.listErr
}
func (f *fakeUploadsRepo) AttachToCheckIn(ctx context.Context, id, userID, checkInID string) error {
	f.attached = append(f.attached, id)
	return f.attachErr
}
func (f *fakeUploadsRepo) UpdateContext(ctx context.Context, id, userID string, lookingAt, whyItMatters *string) error {
	return f.updateErr
}
func (f *fakeUploadsRepo) Delete(ctx context.Context, id, userID string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}
func (f *fakeUploadsRepo) DeleteByCheckIn(ctx context.Context, checkInID string) error {
	f.deleted = append(f.deleted, "checkin:"+checkInID)
	return f.delByCIErr
}

type fakeSettingsRepo struct {
	getOut    *models.UserSettings
	getErr    error
	upsertErr error

	lastUpsert *models.UserSettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeSettingsRepo) Upsert(ctx context.Context, s *models.UserSettings) error {
	f.lastUpsert = s
	return f.upsertErr
}

type fakeRepoManager struct {
	users          *fakeUsersRepo
	refreshTokens  *fakeRefreshRepo
	projects       *fakeProjectsRepo
	checkIns       *fakeCheckInsRepo
	projectUpdates *fakeProjectUpdatesRepo
	uploads        *fakeUploadsRepo
	settings       *fakeSettingsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository {
	return m.refreshTokens
}
func (m *fakeRepoManager) Projects(dbx.DBTX) projectsrepo.Repository { return m.projects }
func (m *fakeRepoManager) CheckIns(dbx.DBTX) checkinsrepo.Repository { return m.checkIns }
func (m *fakeRepoManager) ProjectUpdates(dbx.DBTX) projectupdatesrepo.Repository {
	return m.projectUpdates
}
func (m *fakeRepoManager) Uploads(dbx.DBTX) uploadsrepo.Repository   { return m.uploads }
func (m *fakeRepoManager) Settings(dbx.DBTX) settingsrepo.Repository { return m.settings }

type fakeObjectStore struct {
	putErr     error
	removeErr  error
	listOut    []string
	listErr    error
	signedErr  error
	signedBase string

	putKeys     []string
	removedKeys []string
}

func (f *fakeObjectStore) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	return nil
}
func (f *fakeObjectStore) Remove(ctx context.Context, key string) error {
	f.removedKeys = append(f.removedKeys, key)
	return f.removeErr
}
func (f *fakeObjectStore) List(ctx context.Context, prefix string, max int32) ([]string, error) {
	return f.listOut, f.listErr
}
func (f *fakeObjectStore) PublicURL(key string) string { return "http://public/" + key }
func (f *fakeObjectStore) SignedGetURL(ctx context.Context, key string) (string, error) {
	if f.signedErr != nil {
		return "", f.signedErr
	}
	base := f.signedBase
	if base == "" {
		base = "http://signed/"
	}
	return base + key, nil
}
