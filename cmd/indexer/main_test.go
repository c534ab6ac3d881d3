package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/akozadaev/go_lunch_recommender/internal/models"
)

type recordingWriter struct {
	put  []string
	bulk []string
}

func (w *recordingWriter) PutProfile(ctx context.Context, p *models.RestaurantProfile) error {
	w.put = append(w.put, p.Name)
	return nil
}

type recordingBulkWriter struct {
	recordingWriter
}

func (w *recordingBulkWriter) BulkIndexProfiles(ctx context.Context, profiles []*models.RestaurantProfile) error {
	for _, p := range profiles {
		w.bulk = append(w.bulk, p.Name)
	}
	return nil
}

func writeProfiles(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.json")
	data := `[
  {"name": "Pizza Luce", "cuisine": "pizza", "avg_rating": 4.5},
  {"name": "  "},
  {"name": "Thai Garden", "cuisine": "thai", "source": "manual"}
]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("failed to write profiles: %v", err)
	}
	return path
}

func TestLoadProfilesFromFile(t *testing.T) {
	profiles, err := loadProfilesFromFile(writeProfiles(t))
	if err != nil {
		t.Fatalf("loadProfilesFromFile() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if profiles[0].Source != "imported" || profiles[0].LastUpdated.IsZero() {
		t.Errorf("defaults not applied: %+v", profiles[0])
	}
	if profiles[1].Source != "manual" {
		t.Errorf("Source = %q, want manual", profiles[1].Source)
	}
}

func TestLoadProfilesFromFileErrors(t *testing.T) {
	if _, err := loadProfilesFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte(`{"name": "not an array"}`), 0o644)
	if _, err := loadProfilesFromFile(path); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func TestImportProfilesPrefersBulk(t *testing.T) {
	path := writeProfiles(t)

	bw := &recordingBulkWriter{}
	if err := importProfiles(context.Background(), bw, path); err != nil {
		t.Fatalf("importProfiles() error = %v", err)
	}
	if !reflect.DeepEqual(bw.bulk, []string{"Pizza Luce", "Thai Garden"}) || len(bw.put) != 0 {
		t.Errorf("bulk = %v, put = %v", bw.bulk, bw.put)
	}

	w := &recordingWriter{}
	if err := importProfiles(context.Background(), w, path); err != nil {
		t.Fatalf("importProfiles() error = %v", err)
	}
	if !reflect.DeepEqual(w.put, []string{"Pizza Luce", "Thai Garden"}) {
		t.Errorf("put = %v", w.put)
	}
}

func TestParseList(t *testing.T) {
	got := parseList(" Pizza, thai,,BBQ ")
	want := []string{"pizza", "thai", "bbq"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseList() = %v, want %v", got, want)
	}
}
