package application

import (
	"context"
	"testing"
	"time"

	domain "github.com/jobhunterpro/jobhunter/internal/job"
	"github.com/jobhunterpro/jobhunter/internal/platform/sqlite"
	jobrepo "github.com/jobhunterpro/jobhunter/internal/repository/job"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createJob(t *testing.T, db *sqlite.DB) *domain.Job {
	t.Helper()
	j := &domain.Job{
		JobID:   "fp-1",
		Title:   "SOC Analyst",
		Company: "Acme",
		URL:     "https://example.com/jobs/1",
		Status:  domain.StatusFound,
	}
	if err := jobrepo.NewRepository(db.DB).Create(context.Background(), j); err != nil {
		t.Fatalf("create job: %v", err)
	}
	return j
}

func TestUpsert_And_Get(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	j := createJob(t, db)

	a := &domain.Application{
		JobID:       j.ID,
		CoverLetter: "Dear team",
		EmailSent:   true,
		AppliedDate: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := repo.Upsert(ctx, a); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected non-zero ID")
	}

	got, err := repo.GetByJobID(ctx, j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected application")
	}
	if got.CoverLetter != "Dear team" || !got.EmailSent {
		t.Errorf("unexpected application: %+v", got)
	}
	if !got.AppliedDate.Equal(a.AppliedDate) {
		t.Errorf("expected applied date %v, got %v", a.AppliedDate, got.AppliedDate)
	}
}

func TestUpsert_ReplacesExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	j := createJob(t, db)

	if err := repo.Upsert(ctx, &domain.Application{
		JobID: j.ID, CoverLetter: "first draft", EmailSent: false,
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Upsert(ctx, &domain.Application{
		JobID: j.ID, CoverLetter: "final letter", EmailSent: true,
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByJobID(ctx, j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CoverLetter != "final letter" || !got.EmailSent {
		t.Errorf("expected replaced application, got %+v", got)
	}
}

func TestUpsert_EmptyLetterKeepsExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	j := createJob(t, db)

	if err := repo.Upsert(ctx, &domain.Application{
		JobID: j.ID, CoverLetter: "prepared draft", EmailSent: false,
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Upsert(ctx, &domain.Application{
		JobID: j.ID, CoverLetter: "", EmailSent: false,
	}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByJobID(ctx, j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CoverLetter != "prepared draft" {
		t.Errorf("CoverLetter = %q, empty upsert must keep the stored letter", got.CoverLetter)
	}
}

func TestGetByJobID_None(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)

	got, err := repo.GetByJobID(context.Background(), 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	j := createJob(t, db)

	if err := repo.Upsert(ctx, &domain.Application{JobID: j.ID, CoverLetter: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := jobrepo.NewRepository(db.DB).Delete(ctx, j.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}

	got, err := repo.GetByJobID(ctx, j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expected application removed with its job")
	}
}
