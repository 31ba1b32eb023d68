package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/buildlog-app/buildlog/internal/server/models"
	"github.com/buildlog-app/buildlog/internal/server/services"
)

type projectUpdateRequest struct {
	ProjectID          string `json:"project_id"`
	UpdateText         string `json:"update_text"`
	Problem            string `json:"problem"`
	WhatDidntWork      string `json:"what_didnt_work"`
	WhatWorked         string `json:"what_worked"`
	Surprise           string `json:"surprise"`
	IsWin              bool   `json:"is_win"`
	IsBlocker          bool   `json:"is_blocker"`
	BlockerDescription string `json:"blocker_description"`
}

type checkInRequest struct {
	LocalTime     *time.Time              `json:"local_time"`
	CheckInDate   *time.Time              `json:"check_in_date"`
	GeneralNotes  string                  `json:"general_notes"`
	DayType       string                  `json:"day_type"`
	Breakthroughs string                  `json:"breakthroughs"`
	VideoWorthy   bool                    `json:"video_worthy"`
	PostWorthy    bool                    `json:"post_worthy"`
	InMyOwnWords  string                  `json:"in_my_own_words"`
	Updates       []*projectUpdateRequest `json:"updates"`
	UploadIDs     []string                `json:"upload_ids"`
}

type projectUpdateResponse struct {
	ID                 string  `json:"id"`
	ProjectID          string  `json:"project_id"`
	ProjectName        string  `json:"project_name"`
	UpdateText         *string `json:"update_text"`
	Problem            *string `json:"problem"`
	WhatDidntWork      *string `json:"what_didnt_work"`
	WhatWorked         *string `json:"what_worked"`
	Surprise           *string `json:"surprise"`
	IsWin              bool    `json:"is_win"`
	IsBlocker          bool    `json:"is_blocker"`
	BlockerDescription *string `json:"blocker_description"`
}

type uploadResponse struct {
	ID           string  `json:"id"`
	FileName     string  `json:"file_name"`
	FileType     string  `json:"file_type"`
	FileSize     int64   `json:"file_size"`
	URL          string  `json:"url"`
	LookingAt    *string `json:"looking_at"`
	WhyItMatters *string `json:"why_it_matters"`
}

type checkInResponse struct {
	ID            string                   `json:"id"`
	CheckInType   string                   `json:"check_in_type"`
	CheckInDate   string                   `json:"check_in_date"`
	GeneralNotes  *string                  `json:"general_notes"`
	DayType       *string                  `json:"day_type"`
	Breakthroughs *string                  `json:"breakthroughs"`
	VideoWorthy   bool                     `json:"video_worthy"`
	PostWorthy    bool                     `json:"post_worthy"`
	InMyOwnWords  *string                  `json:"in_my_own_words"`
	CreatedAt     time.Time                `json:"created_at"`
	Updates       []*projectUpdateResponse `json:"updates,omitempty"`
	Uploads       []*uploadResponse        `json:"uploads,omitempty"`
}

type historyGroupResponse struct {
	Date         string             `json:"date"`
	WinCount     int                `json:"win_count"`
	BlockerCount int                `json:"blocker_count"`
	ImageCount   int                `json:"image_count"`
	CheckIns     []*checkInResponse `json:"check_ins"`
}

func (r *checkInRequest) toInput() *services.CheckInInput {
	in := &services.CheckInInput{
		LocalTime:     r.LocalTime,
		CheckInDate:   r.CheckInDate,
		GeneralNotes:  r.GeneralNotes,
		DayType:       r.DayType,
		Breakthroughs: r.Breakthroughs,
		VideoWorthy:   r.VideoWorthy,
		PostWorthy:    r.PostWorthy,
		InMyOwnWords:  r.InMyOwnWords,
		UploadIDs:     r.UploadIDs,
	}
	for _, u := range r.Updates {
		in.Updates = append(in.Updates, &services.ProjectUpdateInput{
			ProjectID:          u.ProjectID,
			UpdateText:         u.UpdateText,
			Problem:            u.Problem,
			WhatDidntWork:      u.WhatDidntWork,
			WhatWorked:         u.WhatWorked,
			Surprise:           u.Surprise,
			IsWin:              u.IsWin,
			IsBlocker:          u.IsBlocker,
			BlockerDescription: u.BlockerDescription,
		})
	}
	return in
}

func toCheckInResponse(c *models.CheckIn) *checkInResponse {
	return &checkInResponse{
		ID:            c.ID,
		CheckInType:   c.CheckInType,
		CheckInDate:   c.CheckInDate.Format("2006-01-02"),
		GeneralNotes:  c.GeneralNotes,
		DayType:       c.DayType,
		Breakthroughs: c.Breakthroughs,
		VideoWorthy:   c.VideoWorthy,
		PostWorthy:    c.PostWorthy,
		InMyOwnWords:  c.InMyOwnWords,
		CreatedAt:     c.CreatedAt,
	}
}

func toCheckInDetailResponse(d *services.CheckInDetail) *checkInResponse {
	resp := toCheckInResponse(d.CheckIn)
	for _, u := range d.Updates {
		resp.Updates = append(resp.Updates, &projectUpdateResponse{
			ID:                 u.ID,
			ProjectID:          u.ProjectID,
			ProjectName:        u.ProjectName,
			UpdateText:         u.UpdateText,
			Problem:            u.Problem,
			WhatDidntWork:      u.WhatDidntWork,
			WhatWorked:         u.WhatWorked,
			Surprise:           u.Surprise,
			IsWin:              u.IsWin,
			IsBlocker:          u.IsBlocker,
			BlockerDescription: u.BlockerDescription,
		})
	}
	for _, up := range d.Uploads {
		resp.Uploads = append(resp.Uploads, toUploadResponse(up))
	}
	return resp
}

func toUploadResponse(v *services.UploadView) *uploadResponse {
	return &uploadResponse{
		ID:           v.ID,
		FileName:     v.FileName,
		FileType:     v.FileType,
		FileSize:     v.FileSize,
		URL:          v.URL,
		LookingAt:    v.LookingAt,
		WhyItMatters: v.WhyItMatters,
	}
}

func (s *Server) handleCreateCheckIn(c echo.Context) error {
	var req checkInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := s.checkIns.Create(c.Request().Context(), userID(c), req.toInput())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, toCheckInResponse(created))
}

func (s *Server) handleGetCheckIn(c echo.Context) error {
	detail, err := s.checkIns.Get(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, toCheckInDetailResponse(detail))
}

func (s *Server) handleUpdateCheckIn(c echo.Context) error {
	var req checkInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	updated, err := s.checkIns.Update(c.Request().Context(), c.Param("id"), userID(c), req.toInput())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, toCheckInResponse(updated))
}

func (s *Server) handleHistory(c echo.Context) error {
	groups, err := s.checkIns.History(c.Request().Context(), userID(c))
	if err != nil {
		return s.httpError(c, err)
	}
	resp := make([]*historyGroupResponse, 0, len(groups))
	for _, g := range groups {
		gr := &historyGroupResponse{
			Date:         g.Date.Format("2006-01-02"),
			WinCount:     g.WinCount,
			BlockerCount: g.BlockerCount,
			ImageCount:   g.ImageCount,
		}
		for _, d := range g.CheckIns {
			gr.CheckIns = append(gr.CheckIns, toCheckInDetailResponse(d))
		}
		resp = append(resp, gr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteCheckIn(c echo.Context) error {
	if err := s.checkIns.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
