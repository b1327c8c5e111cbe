package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobhunterpro/jobhunter/internal/apperror"
	domain "github.com/jobhunterpro/jobhunter/internal/job"
	"github.com/jobhunterpro/jobhunter/internal/platform/sqlite"
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

func testJob(fingerprint, title string, score int) *domain.Job {
	return &domain.Job{
		JobID:          fingerprint,
		Title:          title,
		Company:        "Acme",
		URL:            "https://example.com/jobs/1",
		Source:         "adzuna",
		Status:         domain.StatusFound,
		RelevanceScore: score,
	}
}

func TestCreate_And_Get(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	j := testJob("fp-1", "SOC Analyst", 80)
	j.PostedDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, j); err != nil {
		t.Fatalf("create: %v", err)
	}
	if j.ID == 0 {
		t.Fatal("expected non-zero ID")
	}

	got, err := repo.Get(ctx, j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "SOC Analyst" {
		t.Errorf("expected SOC Analyst, got %s", got.Title)
	}
	if got.Status != domain.StatusFound {
		t.Errorf("expected Found, got %s", got.Status)
	}
	if got.RelevanceScore != 80 {
		t.Errorf("expected score 80, got %d", got.RelevanceScore)
	}
	if !got.PostedDate.Equal(j.PostedDate) {
		t.Errorf("expected posted date %v, got %v", j.PostedDate, got.PostedDate)
	}
	if got.FoundDate.IsZero() {
		t.Error("expected found date to be set")
	}
	if !got.AppliedDate.IsZero() {
		t.Error("expected zero applied date")
	}
}

func TestCreate_DuplicateFingerprint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	if err := repo.Create(ctx, testJob("fp-1", "SOC Analyst", 80)); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repo.Create(ctx, testJob("fp-1", "SOC Analyst (repost)", 70))
	if !apperror.IsConflict(err) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	if err := repo.Create(ctx, testJob("fp-1", "SOC Analyst", 80)); err != nil {
		t.Fatal(err)
	}

	ok, err := repo.Exists(ctx, "fp-1")
	if err != nil || !ok {
		t.Errorf("Exists(fp-1) = %v, %v, want true", ok, err)
	}
	ok, err = repo.Exists(ctx, "fp-2")
	if err != nil || ok {
		t.Errorf("Exists(fp-2) = %v, %v, want false", ok, err)
	}
}

func TestGet_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)

	_, err := repo.Get(context.Background(), 999)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code() != apperror.NotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestList_FiltersAndSort(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	jobs := []*domain.Job{
		testJob("fp-1", "SOC Analyst", 80),
		testJob("fp-2", "Python Developer", 40),
		testJob("fp-3", "Security Engineer", 95),
	}
	jobs[1].Source = "remotive"
	jobs[2].Status = domain.StatusApplied
	for _, j := range jobs {
		if err := repo.Create(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.List(ctx, domain.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(got))
	}
	// Default order is relevance descending.
	if got[0].RelevanceScore != 95 || got[2].RelevanceScore != 40 {
		t.Errorf("unexpected order: %d, %d, %d",
			got[0].RelevanceScore, got[1].RelevanceScore, got[2].RelevanceScore)
	}

	got, err = repo.List(ctx, domain.ListFilter{Status: domain.StatusFound})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 Found jobs, got %d", len(got))
	}

	got, err = repo.List(ctx, domain.ListFilter{Source: "remotive"})
	if err != nil {
		t.Fatalf("list by source: %v", err)
	}
	if len(got) != 1 || got[0].JobID != "fp-2" {
		t.Errorf("expected fp-2 only, got %v", got)
	}

	got, err = repo.List(ctx, domain.ListFilter{Sort: "company"})
	if err != nil {
		t.Fatalf("list by company: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 jobs, got %d", len(got))
	}
}

func TestListByStatus_OrderedByRelevance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	for i, score := range []int{40, 95, 70} {
		j := testJob(string(rune('a'+i)), "Analyst", score)
		if err := repo.Create(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ListByStatus(ctx, domain.StatusFound)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].RelevanceScore < got[i].RelevanceScore {
			t.Errorf("not sorted by relevance: %v", got)
		}
	}
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	j := testJob("fp-1", "SOC Analyst", 80)
	if err := repo.Create(ctx, j); err != nil {
		t.Fatal(err)
	}

	j.Status = domain.StatusApplied
	j.AppliedDate = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	if err := repo.Update(ctx, j); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, _ := repo.Get(ctx, j.ID)
	if got.Status != domain.StatusApplied {
		t.Errorf("expected Applied, got %s", got.Status)
	}
	if !got.AppliedDate.Equal(j.AppliedDate) {
		t.Errorf("expected applied date %v, got %v", j.AppliedDate, got.AppliedDate)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)

	j := testJob("fp-1", "SOC Analyst", 80)
	j.ID = 999
	err := repo.Update(context.Background(), j)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code() != apperror.NotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	j := testJob("fp-1", "SOC Analyst", 80)
	if err := repo.Create(ctx, j); err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(ctx, j.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, j.ID); err == nil {
		t.Error("expected not found after delete")
	}
	if err := repo.Delete(ctx, j.ID); err == nil {
		t.Error("expected not found on second delete")
	}
}

func TestCountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	statuses := []domain.Status{
		domain.StatusFound, domain.StatusFound, domain.StatusApplied,
	}
	for i, status := range statuses {
		j := testJob(string(rune('a'+i)), "Analyst", 50)
		j.Status = status
		if err := repo.Create(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	if counts[domain.StatusFound] != 2 || counts[domain.StatusApplied] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestCountHighRelevance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	for i, score := range []int{40, 70, 95} {
		if err := repo.Create(ctx, testJob(string(rune('a'+i)), "Analyst", score)); err != nil {
			t.Fatal(err)
		}
	}

	n, err := repo.CountHighRelevance(ctx, 70)
	if err != nil {
		t.Fatalf("count high relevance: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}
