package db

import (
	"path/filepath"
	"testing"
)

func TestSettingDefaults(t *testing.T) {
	database, err := OpenAt(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	defer database.Close()

	got, err := GetSetting(database, KeyLanguage, "en")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if got != "en" {
		t.Fatalf("unset value = %q, want default", got)
	}
}

func TestSettingRoundTrip(t *testing.T) {
	database, err := OpenAt(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	defer database.Close()

	if err := SetSetting(database, KeyTranscribeURL, "http://10.0.0.2:8000"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	// Second write replaces, not duplicates.
	if err := SetSetting(database, KeyTranscribeURL, "http://10.0.0.3:8000"); err != nil {
		t.Fatalf("SetSetting (update): %v", err)
	}

	got, err := GetSetting(database, KeyTranscribeURL, "")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if got != "http://10.0.0.3:8000" {
		t.Fatalf("value = %q", got)
	}

	all, err := AllSettings(database)
	if err != nil {
		t.Fatalf("AllSettings: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("settings = %v, want single key", all)
	}
}

func TestIsKnownKey(t *testing.T) {
	for _, key := range KnownKeys {
		if !IsKnownKey(key) {
			t.Errorf("IsKnownKey(%q) = false", key)
		}
	}
	if IsKnownKey("bogus") {
		t.Error("IsKnownKey(bogus) = true")
	}
}
