package clients

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// TestFileStore_LoadsTagsInBothFormats tests that string and array tag
// encodings both normalize to a trimmed slice
func TestFileStore_LoadsTagsInBothFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	content := `[
		{"firstName": "Dan", "email": "dan@example.com", "tags": "Residential, VIP"},
		{"firstName": "Amy", "email": "amy@example.com", "tags": ["Commercial"]}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("got %d clients, want 2", len(list))
	}
	if !list[0].Tags.Has("Residential") || !list[0].Tags.Has("VIP") {
		t.Errorf("comma-joined tags not split: %v", list[0].Tags)
	}
	if !list[1].Tags.Has("Commercial") {
		t.Errorf("array tags lost: %v", list[1].Tags)
	}
}

// TestFileStore_MissingFileIsEmptyList tests that a missing export is not an error
func TestFileStore_MissingFileIsEmptyList(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

	list, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d clients, want 0", len(list))
	}
}

// TestFileStore_MalformedJSONIsError tests that corrupt files surface loudly
func TestFileStore_MalformedJSONIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clients.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Error("Load() = nil error, want parse failure")
	}
}

// TestComputeStats tests the dashboard rollup
func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleClients())

	if stats.TotalClients != 4 {
		t.Errorf("TotalClients = %d, want 4", stats.TotalClients)
	}
	if stats.WithEmail != 3 {
		t.Errorf("WithEmail = %d, want 3", stats.WithEmail)
	}
	if stats.ByCounty["Utah"] != 2 {
		t.Errorf("ByCounty[Utah] = %d, want 2", stats.ByCounty["Utah"])
	}
	if stats.ByType[TypeResidential] != 3 {
		t.Errorf("ByType[residential] = %d, want 3", stats.ByType[TypeResidential])
	}
	if stats.ByType[TypeCommercial] != 1 {
		t.Errorf("ByType[commercial] = %d, want 1", stats.ByType[TypeCommercial])
	}
}
