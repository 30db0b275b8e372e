package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	if got := v.For(Income); len(got) != 5 || got[0] != "Salary" {
		t.Fatalf("unexpected income categories: %v", got)
	}
	if got := v.For(Expense); len(got) != 8 || got[0] != "Food" {
		t.Fatalf("unexpected expense categories: %v", got)
	}
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	content := "expense:\n  - Rent\n  - Groceries\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	v, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := v.For(Expense); len(got) != 2 || got[0] != "Rent" {
		t.Fatalf("expense list not overridden: %v", got)
	}
	// income falls back to the built-in list
	if got := v.For(Income); len(got) != 5 {
		t.Fatalf("income default lost: %v", got)
	}
}

func TestLoadVocabularyErrors(t *testing.T) {
	if _, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("income: [Salary"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadVocabulary(path); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
