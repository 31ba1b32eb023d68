package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/server/models"
	"github.com/buildlog-app/buildlog/internal/server/services"
)

type settingsRequest struct {
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description"`
	BrandVoice          string `json:"brand_voice"`
	AudienceDescription string `json:"audience_description"`
	AudienceInterests   string `json:"audience_interests"`
	NotificationEmail   string `json:"notification_email"`
}

type settingsResponse struct {
	BusinessName        string `json:"business_name"`
	BusinessDescription string `json:"business_description"`
	BrandVoice          string `json:"brand_voice"`
	AudienceDescription string `json:"audience_description"`
	AudienceInterests   string `json:"audience_interests"`
	NotificationEmail   string `json:"notification_email"`
}

func toSettingsResponse(s *models.UserSettings) *settingsResponse {
	return &settingsResponse{
		BusinessName:        s.BusinessName,
		BusinessDescription: s.BusinessDescription,
		BrandVoice:          s.BrandVoice,
		AudienceDescription: s.AudienceDescription,
		AudienceInterests:   common.JoinList(s.AudienceInterests),
		NotificationEmail:   s.NotificationEmail,
	}
}

func (s *Server) handleGetSettings(c echo.Context) error {
	settings, err := s.settings.Get(c.Request().Context(), userID(c))
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

func (s *Server) handleSaveSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	saved, err := s.settings.Save(c.Request().Context(), userID(c), &services.SettingsInput{
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		BrandVoice:          req.BrandVoice,
		AudienceDescription: req.AudienceDescription,
		AudienceInterests:   req.AudienceInterests,
		NotificationEmail:   req.NotificationEmail,
	})
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, toSettingsResponse(saved))
}
