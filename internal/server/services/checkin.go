package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/dbx"
	"github.com/buildlog-app/buildlog/internal/logging"
	"github.com/buildlog-app/buildlog/internal/server/models"
	"github.com/buildlog-app/buildlog/internal/server/repositories/repomanager"
	"github.com/buildlog-app/buildlog/internal/server/storage"
)

// historyLimit caps how many check-ins the history view loads.
const historyLimit = 50

// ProjectUpdateInput is one per-project block of the check-in form.
type ProjectUpdateInput struct {
	ProjectID          string
	UpdateText         string
	Problem            string
	WhatDidntWork      string
	WhatWorked         string
	Surprise           string
	IsWin              bool
	IsBlocker          bool
	BlockerDescription string
}

// CheckInInput is the full check-in form payload. LocalTime, when set,
// carries the client's wall clock so the slot matches the user's day, not
// the server's.
type CheckInInput struct {
	LocalTime     *time.Time
	CheckInDate   *time.Time
	GeneralNotes  string
	DayType       string
	Breakthroughs string
	VideoWorthy   bool
	PostWorthy    bool
	InMyOwnWords  string
	Updates       []*ProjectUpdateInput
	UploadIDs     []string
}

// CheckInDetail is a check-in with its child rows loaded and upload URLs
// resolved.
type CheckInDetail struct {
	CheckIn *models.CheckIn
	Updates []*models.ProjectUpdate
	Uploads []*UploadView
}

// HistoryGroup is one day of the history view with roll-up counts.
type HistoryGroup struct {
	Date         time.Time
	CheckIns     []*CheckInDetail
	WinCount     int
	BlockerCount int
	ImageCount   int
}

// CheckInService implements the check-in lifecycle: transactional save,
// detail loading, edits, the grouped history view, and cascade delete.
type CheckInService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.ObjectStore
	uploads     *UploadService
	logger      logging.Logger
}

// NewCheckInService constructs a CheckInService.
func NewCheckInService(db *sql.DB, m repomanager.RepositoryManager, store storage.ObjectStore,
	uploads *UploadService, logger logging.Logger) *CheckInService {
	return &CheckInService{
		db:          db,
		repomanager: m,
		store:       store,
		uploads:     uploads,
		logger:      logger,
	}
}

// ClassifySlot maps a wall-clock time to the check-in slot: before 11:00 is
// morning, before 15:00 is midday, everything later is evening.
func ClassifySlot(t time.Time) string {
	switch h := t.Hour(); {
	case h < 11:
		return models.CheckInTypeMorning
	case h < 15:
		return models.CheckInTypeMidday
	default:
		return models.CheckInTypeEvening
	}
}

// Create validates the form and saves the check-in, its project updates, and
// the upload attachments in one transaction.
func (s *CheckInService) Create(ctx context.Context, userID string, in *CheckInInput) (*models.CheckIn, error) {
	updates, err := buildUpdates(in.Updates)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: at least one project update is required", common.ErrorValidation)
	}
	if in.DayType != "" && !models.ValidDayType(in.DayType) {
		return nil, fmt.Errorf("%w: unknown day type %q", common.ErrorValidation, in.DayType)
	}

	now := time.Now()
	slotTime := now
	if in.LocalTime != nil {
		slotTime = *in.LocalTime
	}
	date := truncateToDate(slotTime)
	if in.CheckInDate != nil {
		date = truncateToDate(*in.CheckInDate)
	}

	checkIn := &models.CheckIn{
		UserID:        userID,
		CheckInType:   ClassifySlot(slotTime),
		CheckInDate:   date,
		GeneralNotes:  optional(in.GeneralNotes),
		DayType:       optional(in.DayType),
		Breakthroughs: optional(in.Breakthroughs),
		VideoWorthy:   in.VideoWorthy,
		PostWorthy:    in.PostWorthy,
		InMyOwnWords:  optional(in.InMyOwnWords),
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.CheckIns(tx).Create(ctx, checkIn)
		if err != nil {
			return err
		}
		for _, u := range updates {
			u.CheckInID = created.ID
		}
		if err := s.repomanager.ProjectUpdates(tx).CreateBatch(ctx, updates); err != nil {
			return err
		}
		uploadRepo := s.repomanager.Uploads(tx)
		for _, uploadID := range in.UploadIDs {
			if err := uploadRepo.AttachToCheckIn(ctx, uploadID, userID, created.ID); err != nil {
				return fmt.Errorf("error attaching upload %s: %w", uploadID, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return checkIn, nil
}

// Get loads a check-in with its updates and uploads.
func (s *CheckInService) Get(ctx context.Context, id, userID string) (*CheckInDetail, error) {
	checkIn, err := s.repomanager.CheckIns(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	updates, err := s.repomanager.ProjectUpdates(s.db).ListByCheckIn(ctx, id)
	if err != nil {
		return nil, err
	}
	uploads, err := s.repomanager.Uploads(s.db).ListByCheckIn(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CheckInDetail{
		CheckIn: checkIn,
		Updates: updates,
		Uploads: s.uploads.ResolveViews(ctx, uploads),
	}, nil
}

// Update edits a saved check-in. Project updates are replaced wholesale:
// the form always posts the full set, so delete-and-recreate keeps the rows
// in sync without diffing.
func (s *CheckInService) Update(ctx context.Context, id, userID string, in *CheckInInput) (*models.CheckIn, error) {
	updates, err := buildUpdates(in.Updates)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: at least one project update is required", common.ErrorValidation)
	}
	if in.DayType != "" && !models.ValidDayType(in.DayType) {
		return nil, fmt.Errorf("%w: unknown day type %q", common.ErrorValidation, in.DayType)
	}

	existing, err := s.repomanager.CheckIns(s.db).GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	existing.GeneralNotes = optional(in.GeneralNotes)
	existing.DayType = optional(in.DayType)
	existing.Breakthroughs = optional(in.Breakthroughs)
	existing.VideoWorthy = in.VideoWorthy
	existing.PostWorthy = in.PostWorthy
	existing.InMyOwnWords = optional(in.InMyOwnWords)

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.CheckIns(tx).Update(ctx, existing); err != nil {
			return err
		}
		updateRepo := s.repomanager.ProjectUpdates(tx)
		if err := updateRepo.DeleteByCheckIn(ctx, id); err != nil {
			return err
		}
		for _, u := range updates {
			u.CheckInID = id
		}
		if err := updateRepo.CreateBatch(ctx, updates); err != nil {
			return err
		}
		uploadRepo := s.repomanager.Uploads(tx)
		for _, uploadID := range in.UploadIDs {
			if err := uploadRepo.AttachToCheckIn(ctx, uploadID, userID, id); err != nil {
				return fmt.Errorf("error attaching upload %s: %w", uploadID, err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return existing, nil
}

// History loads the user's recent check-ins grouped by day, newest day
// first. Check-ins missing a check_in_date group under their creation date.
func (s *CheckInService) History(ctx context.Context, userID string) ([]*HistoryGroup, error) {
	checkIns, err := s.repomanager.CheckIns(s.db).ListRecent(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}
	if len(checkIns) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(checkIns))
	for _, c := range checkIns {
		ids = append(ids, c.ID)
	}
	updatesByCheckIn, err := s.repomanager.ProjectUpdates(s.db).ListByCheckIns(ctx, ids)
	if err != nil {
		return nil, err
	}
	uploadsByCheckIn, err := s.repomanager.Uploads(s.db).ListByCheckIns(ctx, ids)
	if err != nil {
		return nil, err
	}

	groups := make(map[time.Time]*HistoryGroup)
	for _, c := range checkIns {
		day := truncateToDate(c.CheckInDate)
		if c.CheckInDate.IsZero() {
			day = truncateToDate(c.CreatedAt)
		}
		g, ok := groups[day]
		if !ok {
			g = &HistoryGroup{Date: day}
			groups[day] = g
		}

		detail := &CheckInDetail{
			CheckIn: c,
			Updates: updatesByCheckIn[c.ID],
			Uploads: s.uploads.ResolveViews(ctx, uploadsByCheckIn[c.ID]),
		}
		g.CheckIns = append(g.CheckIns, detail)

		for _, u := range detail.Updates {
			if u.IsWin {
				g.WinCount++
			}
			if u.IsBlocker {
				g.BlockerCount++
			}
		}
		for _, up := range detail.Uploads {
			if strings.HasPrefix(up.FileType, "image/") {
				g.ImageCount++
			}
		}
	}

	result := make([]*HistoryGroup, 0, len(groups))
	for _, g := range groups {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

// Delete removes a check-in with everything attached to it. Stored objects
// are removed first, best effort: a dead bucket must not make the delete
// button stop working.
func (s *CheckInService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.repomanager.CheckIns(s.db).GetByID(ctx, id, userID); err != nil {
		return err
	}

	uploads, err := s.repomanager.Uploads(s.db).ListByCheckIn(ctx, id)
	if err != nil {
		return err
	}
	for _, u := range uploads {
		if err := s.store.Remove(ctx, u.FilePath); err != nil {
			s.logger.Warn(ctx, "failed to remove stored object", "key", u.FilePath, "error", err)
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Uploads(tx).DeleteByCheckIn(ctx, id); err != nil {
			return err
		}
		if err := s.repomanager.ProjectUpdates(tx).DeleteByCheckIn(ctx, id); err != nil {
			return err
		}
		return s.repomanager.CheckIns(tx).Delete(ctx, id, userID)
	})
}

// buildUpdates converts form blocks to rows, dropping blocks where the user
// never picked a project. The blocker description only survives alongside
// its flag.
func buildUpdates(inputs []*ProjectUpdateInput) ([]*models.ProjectUpdate, error) {
	var updates []*models.ProjectUpdate
	for _, in := range inputs {
		if strings.TrimSpace(in.ProjectID) == "" {
			continue
		}
		u := &models.ProjectUpdate{
			ProjectID:     in.ProjectID,
			UpdateText:    optional(in.UpdateText),
			Problem:       optional(in.Problem),
			WhatDidntWork: optional(in.WhatDidntWork),
			WhatWorked:    optional(in.WhatWorked),
			Surprise:      optional(in.Surprise),
			IsWin:         in.IsWin,
			IsBlocker:     in.IsBlocker,
		}
		if in.IsBlocker {
			u.BlockerDescription = optional(in.BlockerDescription)
		}
		updates = append(updates, u)
	}
	return updates, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
