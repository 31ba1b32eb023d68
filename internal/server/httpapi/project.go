package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buildlog-app/buildlog/internal/server/models"
	"github.com/buildlog-app/buildlog/internal/server/services"
)

type projectRequest struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Goals                string `json:"goals"`
	TargetAudience       string `json:"target_audience"`
	ContentAngle         string `json:"content_angle"`
	Technologies         string `json:"technologies"`
	TargetCompletionDate string `json:"target_completion_date"`
	Status               string `json:"status"`
	ProgressPercentage   int    `json:"progress_percentage"`
}

type projectResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description"`
	Goals                *string   `json:"goals"`
	TargetAudience       *string   `json:"target_audience"`
	ContentAngle         *string   `json:"content_angle"`
	Technologies         []string  `json:"technologies"`
	TargetCompletionDate *string   `json:"target_completion_date"`
	Status               string    `json:"status"`
	ProgressPercentage   int       `json:"progress_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func toProjectResponse(p *models.Project) *projectResponse {
	resp := &projectResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Goals:              p.Goals,
		TargetAudience:     p.TargetAudience,
		ContentAngle:       p.ContentAngle,
		Technologies:       p.Technologies,
		Status:             p.Status,
		ProgressPercentage: p.ProgressPercentage,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.TargetCompletionDate != nil {
		d := p.TargetCompletionDate.Format("2006-01-02")
		resp.TargetCompletionDate = &d
	}
	return resp
}

func (r *projectRequest) toInput() *services.ProjectInput {
	return &services.ProjectInput{
		Name:                 r.Name,
		Description:          r.Description,
		Goals:                r.Goals,
		TargetAudience:       r.TargetAudience,
		ContentAngle:         r.ContentAngle,
		Technologies:         r.Technologies,
		TargetCompletionDate: r.TargetCompletionDate,
		Status:               r.Status,
		ProgressPercentage:   r.ProgressPercentage,
	}
}

func (s *Server) handleListProjects(c echo.Context) error {
	var (
		list []*models.Project
		err  error
	)
	if c.QueryParam("status") == models.ProjectStatusActive {
		list, err = s.projects.ListActive(c.Request().Context(), userID(c))
	} else {
		list, err = s.projects.List(c.Request().Context(), userID(c))
	}
	if err != nil {
		return s.httpError(c, err)
	}
	resp := make([]*projectResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, toProjectResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := s.projects.Create(c.Request().Context(), userID(c), req.toInput())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, toProjectResponse(created))
}

func (s *Server) handleGetProject(c echo.Context) error {
	p, err := s.projects.Get(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(p))
}

func (s *Server) handleUpdateProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	updated, err := s.projects.Update(c.Request().Context(), c.Param("id"), userID(c), req.toInput())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(updated))
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	if err := s.projects.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
