package database

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(s string) *string { return &s }

func TestCreateAndGetUser(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateUser("ada@example.com", "ada", ptr("555-0100"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero user id")
	}

	user, err := db.GetUserByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Username != "ada" || user.Phone == nil || *user.Phone != "555-0100" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestCreateUserDuplicates(t *testing.T) {
	db := openTestDB(t)
	db.CreateUser("ada@example.com", "ada", nil)

	if _, err := db.CreateUser("ada@example.com", "other", nil); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for email, got %v", err)
	}
	if _, err := db.CreateUser("other@example.com", "ada", nil); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for username, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.GetUserByEmail("ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLikeAndUnlikeArticle(t *testing.T) {
	db := openTestDB(t)
	db.CreateUser("ada@example.com", "ada", nil)

	if err := db.LikeArticle("ada@example.com", "Quantum computing breakthrough", "science"); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := db.LikeArticle("ada@example.com", "Rate cut expected", ""); err != nil {
		t.Fatalf("like: %v", err)
	}

	liked, err := db.GetLikedArticles("ada@example.com")
	if err != nil {
		t.Fatalf("get liked: %v", err)
	}
	if len(liked) != 2 {
		t.Fatalf("expected 2 liked articles, got %d", len(liked))
	}
	if liked[0].Title != "Quantum computing breakthrough" {
		t.Errorf("expected like order preserved, got %q first", liked[0].Title)
	}
	if liked[1].Category != "general" {
		t.Errorf("expected default category 'general', got %q", liked[1].Category)
	}

	if err := db.UnlikeArticle("ada@example.com", "Rate cut expected"); err != nil {
		t.Fatalf("unlike: %v", err)
	}
	liked, _ = db.GetLikedArticles("ada@example.com")
	if len(liked) != 1 {
		t.Errorf("expected 1 liked article after unlike, got %d", len(liked))
	}
}

func TestLikeArticleUnknownUser(t *testing.T) {
	db := openTestDB(t)
	if err := db.LikeArticle("ghost@example.com", "Anything", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHeadlineInsertAndDedupe(t *testing.T) {
	db := openTestDB(t)

	id, err := db.InsertHeadline("https://example.com/a", "First", ptr("Feed"), ptr("2026-08-30"), nil)
	if err != nil || id == 0 {
		t.Fatalf("insert headline: id=%d err=%v", id, err)
	}
	dup, err := db.InsertHeadline("https://example.com/a", "First again", nil, nil, nil)
	if err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}
	if dup != 0 {
		t.Errorf("expected 0 for duplicate URL, got %d", dup)
	}

	headlines, err := db.GetRecentHeadlines(10)
	if err != nil {
		t.Fatalf("get recent: %v", err)
	}
	if len(headlines) != 1 || headlines[0].Title != "First" {
		t.Errorf("unexpected headlines: %+v", headlines)
	}
}

func TestHeadlineContentLifecycle(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.InsertHeadline("https://example.com/a", "First", nil, nil, nil)

	needing, err := db.GetHeadlinesNeedingFetch()
	if err != nil {
		t.Fatalf("needing fetch: %v", err)
	}
	if len(needing) != 1 {
		t.Fatalf("expected 1 headline needing fetch, got %d", len(needing))
	}

	if err := db.UpdateHeadlineContent(id, ptr("Full article text")); err != nil {
		t.Fatalf("update content: %v", err)
	}
	needing, _ = db.GetHeadlinesNeedingFetch()
	if len(needing) != 0 {
		t.Errorf("expected no headlines needing fetch, got %d", len(needing))
	}
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	db.CreateUser("ada@example.com", "ada", nil)
	db.LikeArticle("ada@example.com", "A", "")
	db.InsertHeadline("https://example.com/a", "First", nil, nil, ptr("text"))

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Users != 1 || stats.LikedArticles != 1 || stats.Headlines != 1 || stats.FetchedContent != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	db.CreateUser("ada@example.com", "ada", nil)
	db.Close()

	// Re-open: migrations must not re-run or clobber data.
	db2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer db2.Close()
	if _, err := db2.GetUserByEmail("ada@example.com"); err != nil {
		t.Errorf("expected user to survive re-open, got %v", err)
	}
}
