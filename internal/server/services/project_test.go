package services

import (
	"context"
	"errors"
	"testing"

	"github.com/buildlog-app/buildlog/internal/common"
	"github.com/buildlog-app/buildlog/internal/server/models"
)

func TestProjectCreate_NormalizesInput(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeProjectsRepo{}
	s := NewProjectService(db, &fakeRepoManager{projects: repo})

	got, err := s.Create(context.Background(), "u-1", &ProjectInput{
		Name:                 "  Habit tracker  ",
		Description:          "   ",
		Technologies:         "Go, Postgres, , echo",
		TargetCompletionDate: "2026-12-01",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Name != "Habit tracker" {
		t.Fatalf("name not trimmed: %q", got.Name)
	}
	if got.Description != nil {
		t.Fatalf("blank description should be nil, got %v", *got.Description)
	}
	if len(got.Technologies) != 3 || got.Technologies[2] != "echo" {
		t.Fatalf("unexpected technologies: %v", got.Technologies)
	}
	if got.Status != models.ProjectStatusActive {
		t.Fatalf("empty status should default to active, got %q", got.Status)
	}
	if got.TargetCompletionDate == nil || got.TargetCompletionDate.Format("2006-01-02") != "2026-12-01" {
		t.Fatalf("unexpected completion date: %v", got.TargetCompletionDate)
	}
}

func TestProjectCreate_NameRequired(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewProjectService(db, &fakeRepoManager{projects: &fakeProjectsRepo{}})

	_, err := s.Create(context.Background(), "u-1", &ProjectInput{Name: "   "})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}
}

func TestProjectCreate_BadStatus(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewProjectService(db, &fakeRepoManager{projects: &fakeProjectsRepo{}})

	_, err := s.Create(context.Background(), "u-1", &ProjectInput{Name: "x", Status: "archived"})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}
}

func TestProjectCreate_ProgressOutOfRange(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewProjectService(db, &fakeRepoManager{projects: &fakeProjectsRepo{}})

	_, err := s.Create(context.Background(), "u-1", &ProjectInput{Name: "x", ProgressPercentage: 120})
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want ErrorValidation, got %v", err)
	}
}

func TestProjectUpdate_NotFoundPassesThrough(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeProjectsRepo{updateErr: common.ErrorNotFound}
	s := NewProjectService(db, &fakeRepoManager{projects: repo})

	_, err := s.Update(context.Background(), "p-ghost", "u-1", &ProjectInput{Name: "x"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestListActive_FiltersByStatus(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeProjectsRepo{listOut: []*models.Project{
		{ID: "p-1", Status: models.ProjectStatusActive},
		{ID: "p-2", Status: models.ProjectStatusPaused},
		{ID: "p-3", Status: models.ProjectStatusActive},
	}}
	s := NewProjectService(db, &fakeRepoManager{projects: repo})

	active, err := s.ListActive(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(active) != 2 || active[0].ID != "p-1" || active[1].ID != "p-3" {
		t.Fatalf("unexpected active projects: %+v", active)
	}
}
