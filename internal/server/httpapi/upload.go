package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlog-app/buildlog/internal/server/services"
)

// handleIngestUploads accepts a multipart form with one or more "files"
// parts and stores each acceptable one. Responds with the created metadata
// rows so the composer can reference them when the check-in is saved.
func (s *Server) handleIngestUploads(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart form required")
	}
	parts := form.File["files"]
	if len(parts) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files in request")
	}

	var files []*services.IncomingFile
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			return s.httpError(c, err)
		}
		defer f.Close()
		files = append(files, &services.IncomingFile{
			Name:        part.Filename,
			ContentType: part.Header.Get(echo.HeaderContentType),
			Size:        part.Size,
			Body:        f,
		})
	}

	created, err := s.uploads.Ingest(c.Request().Context(), userID(c), files)
	if err != nil {
		return s.httpError(c, err)
	}

	views := s.uploads.ResolveViews(c.Request().Context(), created)
	resp := make([]*uploadResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toUploadResponse(v))
	}
	return c.JSON(http.StatusCreated, resp)
}

type uploadContextRequest struct {
	LookingAt    string `json:"looking_at"`
	WhyItMatters string `json:"why_it_matters"`
}

func (s *Server) handleUploadContext(c echo.Context) error {
	var req uploadContextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	err := s.uploads.UpdateContext(c.Request().Context(), c.Param("id"), userID(c),
		req.LookingAt, req.WhyItMatters)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeleteUpload(c echo.Context) error {
	if err := s.uploads.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleDebugUploads reports the user's recent uploads against the bucket
// contents, for chasing missing-image reports.
func (s *Server) handleDebugUploads(c echo.Context) error {
	report, err := s.uploads.DebugReport(c.Request().Context(), userID(c), 10)
	if err != nil {
		return s.httpError(c, err)
	}
	type debugEntryResponse struct {
		ID       string `json:"id"`
		FileName string `json:"file_name"`
		FilePath string `json:"file_path"`
		URL      string `json:"url"`
		InBucket bool   `json:"in_bucket"`
	}
	type debugProbeResponse struct {
		Key       string `json:"key"`
		PublicURL string `json:"public_url"`
		SignedURL string `json:"signed_url,omitempty"`
		SignError string `json:"sign_error,omitempty"`
	}
	type debugResponse struct {
		Uploads     []*debugEntryResponse `json:"uploads"`
		Probe       *debugProbeResponse   `json:"probe,omitempty"`
		BucketError string                `json:"bucket_error,omitempty"`
	}

	resp := &debugResponse{
		Uploads:     make([]*debugEntryResponse, 0, len(report.Entries)),
		BucketError: report.BucketError,
	}
	for _, e := range report.Entries {
		resp.Uploads = append(resp.Uploads, &debugEntryResponse{
			ID:       e.Upload.ID,
			FileName: e.Upload.FileName,
			FilePath: e.Upload.FilePath,
			URL:      e.URL,
			InBucket: e.InBucket,
		})
	}
	if report.Probe != nil {
		resp.Probe = &debugProbeResponse{
			Key:       report.Probe.Key,
			PublicURL: report.Probe.PublicURL,
			SignedURL: report.Probe.SignedURL,
			SignError: report.Probe.SignError,
		}
	}
	return c.JSON(http.StatusOK, resp)
}
