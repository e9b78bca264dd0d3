package updater

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestIsUpdateAvailable(t *testing.T) {
	tests := []struct {
		current, latest string
		want            bool
		wantErr         bool
	}{
		{"1.0.0", "1.1.0", true, false},
		{"v1.0.0", "v1.0.1", true, false},
		{"1.2.0", "1.2.0", false, false},
		{"2.0.0", "1.9.9", false, false},
		{"dev", "1.0.0", false, true},
		{"1.0.0", "garbage", false, true},
	}

	for _, tt := range tests {
		got, err := IsUpdateAvailable(tt.current, tt.latest)
		if (err != nil) != tt.wantErr {
			t.Errorf("IsUpdateAvailable(%q, %q) err = %v, wantErr %v", tt.current, tt.latest, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("IsUpdateAvailable(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
		}
	}
}

func TestBannerFromCache(t *testing.T) {
	dir := t.TempDir()
	writeCache(t, dir, &checkResult{
		LatestVersion:   "v1.2.0",
		CurrentVersion:  "v1.0.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: true,
	})

	var out strings.Builder
	New("v1.0.0").CheckAndPrintBanner(&out, dir)

	if !strings.Contains(out.String(), "Update available: v1.0.0 -> v1.2.0") {
		t.Errorf("banner missing, got:\n%s", out.String())
	}
}

func TestNoBannerWhenUpToDate(t *testing.T) {
	dir := t.TempDir()
	writeCache(t, dir, &checkResult{
		LatestVersion:   "v1.0.0",
		CurrentVersion:  "v1.0.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: false,
	})

	var out strings.Builder
	New("v1.0.0").CheckAndPrintBanner(&out, dir)

	if out.String() != "" {
		t.Errorf("expected no banner, got:\n%s", out.String())
	}
}

func TestNoBannerOnFirstRun(t *testing.T) {
	var out strings.Builder
	// Unroutable API base keeps the background refresh off the network.
	New("v1.0.0", WithAPIBase("http://127.0.0.1:1")).CheckAndPrintBanner(&out, t.TempDir())

	if out.String() != "" {
		t.Errorf("first run should print nothing, got:\n%s", out.String())
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := &checkResult{
		LatestVersion:   "v2.0.0",
		CurrentVersion:  "v1.0.0",
		CheckedAt:       time.Now().Truncate(time.Second),
		UpdateAvailable: true,
	}
	if err := saveCache(dir, want); err != nil {
		t.Fatalf("saveCache() error: %v", err)
	}

	got, err := loadCache(dir)
	if err != nil {
		t.Fatalf("loadCache() error: %v", err)
	}
	if got.LatestVersion != want.LatestVersion || !got.UpdateAvailable {
		t.Errorf("loadCache() = %+v", got)
	}
}

func TestLoadCacheCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadCache(dir); err == nil {
		t.Fatal("expected error for corrupt cache")
	}
}

func writeCache(t *testing.T, dir string, result *checkResult) {
	t.Helper()
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, cacheFileName), data, 0644); err != nil {
		t.Fatal(err)
	}
}
