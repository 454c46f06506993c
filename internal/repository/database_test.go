package repository

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"dekut-chatbot/internal/scraper"
)

func TestNewSQLiteDBCreatesParentDirectory(t *testing.T) {
	// The configured path may point into a directory that does not exist yet;
	// opening the database must create it.
	path := filepath.Join(t.TempDir(), "data", "nested", "chatbot.db")

	db, err := NewSQLiteDB(path, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("parent directory missing: %v", err)
	}
}

func TestFAQRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "chatbot.db")

	db, err := NewSQLiteDB(path, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "000001_create_faqs_table.up.sql"))
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("apply migration: %v", err)
	}

	repo := NewFAQRepository(db, zap.NewNop())
	faqs := []scraper.FAQ{
		{Question: "Admission Requirements", Answer: "A KCSE mean grade of C+.", Source: "/admissions"},
		{Question: "Fees Structure", Answer: "Posted on the fees page.", Source: "/fees-structure"},
	}
	if err := repo.SaveFAQs(faqs); err != nil {
		t.Fatalf("save: %v", err)
	}

	stored, err := repo.GetAllFAQs()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored=%d, want 2", len(stored))
	}

	if err := repo.DeleteBySource("/admissions"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	stored, err = repo.GetAllFAQs()
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if len(stored) != 1 || stored[0].Source != "/fees-structure" {
		t.Fatalf("stored after delete=%+v, want only /fees-structure", stored)
	}
}
