package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/buildlog-app/buildlog/internal/logging"
	"github.com/buildlog-app/buildlog/internal/server/config"
	"github.com/buildlog-app/buildlog/internal/server/models"
	"github.com/buildlog-app/buildlog/internal/server/repositories/repomanager"
	"github.com/buildlog-app/buildlog/internal/server/storage"
)

// MaxUploadSize caps a single media file at 50MB.
const MaxUploadSize = 50 * 1024 * 1024

// allowedUploadTypes is the MIME whitelist for check-in media.
var allowedUploadTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
	"video/mp4":  "mp4",
	"video/webm": "webm",
}

var keyUnsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// timeNow is a seam for tests that assert generated object keys.
var timeNow = time.Now

// IncomingFile is one file from the multipart upload form.
type IncomingFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadView pairs an upload row with its resolved display URL.
type UploadView struct {
	*models.Upload
	URL string
}

// UploadService ingests media files into object storage, records their
// metadata, and resolves display URLs at read time.
type UploadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	logger      logging.Logger

	publicBucket bool
}

// NewUploadService constructs an UploadService.
func NewUploadService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore,
	cfg *config.Config, logger logging.Logger) *UploadService {
	return &UploadService{
		db:           db,
		repomanager:  m,
		store:        store,
		logger:       logger,
		publicBucket: cfg.S3PublicBucket,
	}
}

// AllowedUploadType reports whether the MIME type is accepted for ingestion.
func AllowedUploadType(contentType string) bool {
	_, ok := allowedUploadTypes[contentType]
	return ok
}

// Ingest stores each acceptable file and records a metadata row. Files with
// a disallowed type or an oversize body are skipped, not rejected: the form
// posts whatever the browser collected and the save must not fail over one
// bad attachment. Returns the created rows for the files that made it.
func (s *UploadService) Ingest(ctx context.Context, userID string, files []*IncomingFile) ([]*models.Upload, error) {
	var created []*models.Upload
	for _, f := range files {
		if !AllowedUploadType(f.ContentType) {
			s.logger.Warn(ctx, "skipping upload with unsupported type", "type", f.ContentType, "name", f.Name)
			continue
		}
		if f.Size > MaxUploadSize {
			s.logger.Warn(ctx, "skipping oversize upload", "name", f.Name, "size", f.Size)
			continue
		}

		name := uploadFileName(f.Name, f.ContentType)
		key := buildObjectKey(userID, name)
		if err := s.store.Put(ctx, key, f.ContentType, f.Size, f.Body); err != nil {
			return nil, fmt.Errorf("error storing upload: %w", err)
		}

		repo := s.repomanager.Uploads(s.db)
		upload, err := repo.Create(ctx, &models.Upload{
			UserID:   userID,
			FileName: name,
			FilePath: key,
			FileType: f.ContentType,
			FileSize: f.Size,
		})
		if err != nil {
			return nil, fmt.Errorf("error recording upload: %w", err)
		}
		created = append(created, upload)
	}
	return created, nil
}

// Get returns one upload row owned by userID.
func (s *UploadService) Get(ctx context.Context, id, userID string) (*models.Upload, error) {
	return s.repomanager.Uploads(s.db).GetByID(ctx, id, userID)
}

// UpdateContext replaces the caption fields of an upload.
func (s *UploadService) UpdateContext(ctx context.Context, id, userID string, lookingAt, whyItMatters string) error {
	return s.repomanager.Uploads(s.db).UpdateContext(ctx, id, userID,
		optional(lookingAt), optional(whyItMatters))
}

// Delete removes the stored object and then the metadata row. A storage
// failure is logged but does not keep the row alive.
func (s *UploadService) Delete(ctx context.Context, id, userID string) error {
	upload, err := s.repomanager.Uploads(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, upload.FilePath); err != nil {
		s.logger.Warn(ctx, "failed to remove stored object", "key", upload.FilePath, "error", err)
	}
	return s.repomanager.Uploads(s.db).Delete(ctx, id, userID)
}

// ResolveURL returns the display URL for a stored key: the public object URL
// for public buckets, otherwise a short-lived signed URL.
func (s *UploadService) ResolveURL(ctx context.Context, key string) (string, error) {
	if s.publicBucket {
		return s.store.PublicURL(key), nil
	}
	return s.store.SignedGetURL(ctx, key)
}

// ResolveViews resolves display URLs for a batch of upload rows. Rows whose
// URL cannot be minted come back with an empty URL rather than failing the
// whole page.
func (s *UploadService) ResolveViews(ctx context.Context, uploads []*models.Upload) []*UploadView {
	views := make([]*UploadView, 0, len(uploads))
	for _, u := range uploads {
		url, err := s.ResolveURL(ctx, u.FilePath)
		if err != nil {
			s.logger.Warn(ctx, "failed to resolve upload url", "key", u.FilePath, "error", err)
			url = ""
		}
		views = append(views, &UploadView{Upload: u, URL: url})
	}
	return views
}

// DebugEntry describes one upload in the diagnostics report, with both the
// database view and whether the object is present in the bucket.
type DebugEntry struct {
	Upload   *models.Upload
	URL      string
	InBucket bool
}

// DebugProbe carries both URL variants for the newest upload so a mismatch
// between public and signed access shows up side by side.
type DebugProbe struct {
	Key       string
	PublicURL string
	SignedURL string
	SignError string
}

// DebugReport summarizes recent uploads against the bucket contents.
// Storage failures land in the report instead of failing it.
type DebugReport struct {
	Entries     []*DebugEntry
	Probe       *DebugProbe
	BucketError string
}

// DebugReport lists the user's recent uploads alongside the matching bucket
// keys, for the storage diagnostics endpoint.
func (s *UploadService) DebugReport(ctx context.Context, userID string, limit int) (*DebugReport, error) {
	uploads, err := s.repomanager.Uploads(s.db).ListRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	report := &DebugReport{Entries: make([]*DebugEntry, 0, len(uploads))}

	keys, err := s.store.List(ctx, userID+"/", int32(limit))
	if err != nil {
		report.BucketError = err.Error()
	}
	inBucket := make(map[string]bool, len(keys))
	for _, k := range keys {
		inBucket[k] = true
	}

	for _, u := range uploads {
		url, err := s.ResolveURL(ctx, u.FilePath)
		if err != nil {
			url = ""
		}
		report.Entries = append(report.Entries, &DebugEntry{Upload: u, URL: url, InBucket: inBucket[u.FilePath]})
	}

	if len(uploads) > 0 {
		probe := &DebugProbe{
			Key:       uploads[0].FilePath,
			PublicURL: s.store.PublicURL(uploads[0].FilePath),
		}
		if signed, err := s.store.SignedGetURL(ctx, uploads[0].FilePath); err != nil {
			probe.SignError = err.Error()
		} else {
			probe.SignedURL = signed
		}
		report.Probe = probe
	}
	return report, nil
}

// uploadFileName normalizes the client-supplied name. Pasted clipboard blobs
// arrive nameless and get a synthetic timestamped name with the extension
// derived from the MIME type.
func uploadFileName(name, contentType string) string {
	name = strings.TrimSpace(name)
	if name != "" && name != "blob" {
		return name
	}
	ext := allowedUploadTypes[contentType]
	return fmt.Sprintf("clipboard_%d.%s", timeNow().UnixMilli(), ext)
}

// buildObjectKey namespaces objects per user and keeps keys URL-safe.
func buildObjectKey(userID, fileName string) string {
	safe := keyUnsafeChars.ReplaceAllString(fileName, "_")
	return fmt.Sprintf("%s/%d_%s", userID, timeNow().UnixMilli(), safe)
}
