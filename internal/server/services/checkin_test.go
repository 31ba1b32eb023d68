package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/server/config"
	"github.com/buildlog-app/buildlog/internal/server/models"
)

func newCheckInService(db *sql.DB, rm *fakeRepoManager, store *fakeObjectStore) *CheckInService {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	uploads := NewUploadService(db, rm, store, cfg, nopLogger{})
	return NewCheckInService(db, rm, store, uploads, nopLogger{})
}

func TestClassifySlot(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, models.CheckInTypeMorning},
		{10, models.CheckInTypeMorning},
		{11, models.CheckInTypeMidday},
		{14, models.CheckInTypeMidday},
		{15, models.CheckInTypeEvening},
		{23, models.CheckInTypeEvening},
	}
	for _, tc := range tests {
		at := time.Date(2026, 8, 30, tc.hour, 30, 0, 0, time.UTC)
		if got := ClassifySlot(at); got != tc.want {
			t.Errorf("ClassifySlot(%02d:30) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

func TestCheckInCreate_Transactional(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		checkIns:       &fakeCheckInsRepo{},
		projectUpdates: &fakeProjectUpdatesRepo{},
		uploads:        &fakeUploadsRepo{},
	}
	s := newCheckInService(db, rm, &fakeObjectStore{})

	local := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	got, err := s.Create(context.Background(), "u-1", &CheckInInput{
		LocalTime:    &local,
		GeneralNotes: "good morning",
		DayType:      models.DayTypeBreakthrough,
		Updates: []*ProjectUpdateInput{
			{ProjectID: "p-1", UpdateText: "shipped auth", IsWin: true},
			{ProjectID: "", UpdateText: "orphan block, no project picked"},
		},
		UploadIDs: []string{"up-1", "up-2"},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.CheckInType != models.CheckInTypeMorning {
		t.Fatalf("want morning slot, got %q", got.CheckInType)
	}
	if len(rm.projectUpdates.lastBatch) != 1 {
		t.Fatalf("blocks without a project must be dropped, got %d", len(rm.projectUpdates.lastBatch))
	}
	if rm.projectUpdates.lastBatch[0].CheckInID != "c-1" {
		t.Fatalf("update not linked to created check-in: %+v", rm.projectUpdates.lastBatch[0])
	}
	if len(rm.uploads.attached) != 2 {
		t.Fatalf("want 2 attached uploads, got %v", rm.uploads.attached)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCheckInCreate_NoUpdatesRejected(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{checkIns: &fakeCheckInsRepo{}, projectUpdates: &fakeProjectUpdatesRepo{}, uploads: &fakeUploadsRepo{}}
	s := newCheckInService(db, rm, &fakeObjectStore{})

	_, err := s.Create(context.Background(), "u-1", &CheckInInput{
		Updates: []*ProjectUpdateInput{{ProjectID: " "}},
	})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}
}

func TestCheckInCreate_BadDayType(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{checkIns: &fakeCheckInsRepo{}, projectUpdates: &fakeProjectUpdatesRepo{}, uploads: &fakeUploadsRepo{}}
	s := newCheckInService(db, rm, &fakeObjectStore{})

	_, err := s.Create(context.Background(), "u-1", &CheckInInput{
		DayType: "meh",
		Updates: []*ProjectUpdateInput{{ProjectID: "p-1"}},
	})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}
}

func TestCheckInCreate_BlockerDescriptionOnlyWithFlag(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		checkIns:       &fakeCheckInsRepo{},
		projectUpdates: &fakeProjectUpdatesRepo{},
		uploads:        &fakeUploadsRepo{},
	}
	s := newCheckInService(db, rm, &fakeObjectStore{})

	_, err := s.Create(context.Background(), "u-1", &CheckInInput{
		Updates: []*ProjectUpdateInput{
			{ProjectID: "p-1", IsBlocker: false, BlockerDescription: "stale text from toggled-off checkbox"},
			{ProjectID: "p-2", IsBlocker: true, BlockerDescription: "CI is red"},
		},
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	batch := rm.projectUpdates.lastBatch
	if batch[0].BlockerDescription != nil {
		t.Fatalf("description must be dropped when not a blocker: %v", *batch[0].BlockerDescription)
	}
	if batch[1].BlockerDescription == nil || *batch[1].BlockerDescription != "CI is red" {
		t.Fatalf("blocker description lost: %+v", batch[1])
	}
}

func TestCheckInUpdate_ReplacesUpdates(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		checkIns:       &fakeCheckInsRepo{getOut: &models.CheckIn{ID: "c-1", UserID: "u-1"}},
		projectUpdates: &fakeProjectUpdatesRepo{},
		uploads:        &fakeUploadsRepo{},
	}
	s := newCheckInService(db, rm, &fakeObjectStore{})

	_, err := s.Update(context.Background(), "c-1", "u-1", &CheckInInput{
		GeneralNotes: "edited",
		Updates:      []*ProjectUpdateInput{{ProjectID: "p-1", UpdateText: "rewritten"}},
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(rm.projectUpdates.deleted) != 1 || rm.projectUpdates.deleted[0] != "c-1" {
		t.Fatalf("old updates not cleared: %v", rm.projectUpdates.deleted)
	}
	if len(rm.projectUpdates.lastBatch) != 1 || rm.projectUpdates.lastBatch[0].CheckInID != "c-1" {
		t.Fatalf("new updates not written: %+v", rm.projectUpdates.lastBatch)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestHistory_GroupsByDateWithCounts(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	day1 := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	rm := &fakeRepoManager{
		checkIns: &fakeCheckInsRepo{listOut: []*models.CheckIn{
			{ID: "c-3", CheckInDate: day2, CreatedAt: day2.Add(18 * time.Hour)},
			{ID: "c-2", CheckInDate: day2, CreatedAt: day2.Add(9 * time.Hour)},
			{ID: "c-1", CheckInDate: day1, CreatedAt: day1.Add(9 * time.Hour)},
		}},
		projectUpdates: &fakeProjectUpdatesRepo{byCheckIn: map[string][]*models.ProjectUpdate{
			"c-3": {{IsWin: true}, {IsBlocker: true}},
			"c-2": {{IsWin: true}},
			"c-1": {{}},
		}},
		uploads: &fakeUploadsRepo{byCheckIn: map[string][]*models.Upload{
			"c-2": {{FilePath: "k1", FileType: "image/png"}, {FilePath: "k2", FileType: "video/mp4"}},
		}},
	}
	s := newCheckInService(db, rm, &fakeObjectStore{})

	groups, err := s.History(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("want 2 day groups, got %d", len(groups))
	}
	if !groups[0].Date.Equal(day2) || !groups[1].Date.Equal(day1) {
		t.Fatalf("groups not newest-first: %v %v", groups[0].Date, groups[1].Date)
	}
	g := groups[0]
	if len(g.CheckIns) != 2 {
		t.Fatalf("want 2 check-ins on day2, got %d", len(g.CheckIns))
	}
	if g.WinCount != 2 || g.BlockerCount != 1 || g.ImageCount != 1 {
		t.Fatalf("unexpected counts: wins=%d blockers=%d images=%d", g.WinCount, g.BlockerCount, g.ImageCount)
	}
}

func TestDelete_RemovesObjectsAndRows(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	store := &fakeObjectStore{removeErr: errors.New("bucket offline")}
	rm := &fakeRepoManager{
		checkIns:       &fakeCheckInsRepo{getOut: &models.CheckIn{ID: "c-1", UserID: "u-1"}},
		projectUpdates: &fakeProjectUpdatesRepo{},
		uploads: &fakeUploadsRepo{listOut: []*models.Upload{
			{ID: "up-1", FilePath: "u-1/1_a.png"},
		}},
	}
	s := newCheckInService(db, rm, store)

	// storage failure is logged, rows still go
	if err := s.Delete(context.Background(), "c-1", "u-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(store.removedKeys) != 1 || store.removedKeys[0] != "u-1/1_a.png" {
		t.Fatalf("object not removed: %v", store.removedKeys)
	}
	if len(rm.checkIns.deleted) != 1 || rm.checkIns.deleted[0] != "c-1" {
		t.Fatalf("check-in row not deleted: %v", rm.checkIns.deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestDelete_UnknownCheckIn(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		checkIns:       &fakeCheckInsRepo{getErr: common.ErrorNotFound},
		projectUpdates: &fakeProjectUpdatesRepo{},
		uploads:        &fakeUploadsRepo{},
	}
	s := newCheckInService(db, rm, &fakeObjectStore{})

	if err := s.Delete(context.Background(), "c-ghost", "u-1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}
