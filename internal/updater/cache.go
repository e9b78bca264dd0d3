package updater

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/stackgen-labs/stackgen/internal/branding"
)

const (
	cacheFileName = "version-check.json"
	// cacheMaxAge is how long a check result stays fresh.
	cacheMaxAge = 24 * time.Hour
)

// checkResult is the cached outcome of a release check.
type checkResult struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// CheckAndPrintBanner prints an update banner if the cached check found a
// newer version, then refreshes a stale cache in the background. It never
// blocks command startup and never fails loudly.
func (u *Updater) CheckAndPrintBanner(w io.Writer, configDir string) {
	cached, err := loadCache(configDir)
	if err != nil {
		return
	}

	if cached != nil && cached.UpdateAvailable {
		fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", cached.CurrentVersion, cached.LatestVersion)
		fmt.Fprintf(w, "    Upgrade %s through your package manager\n\n", branding.CLIName())
	}

	if cached == nil || time.Since(cached.CheckedAt) > cacheMaxAge {
		go u.refreshCache(configDir)
	}
}

func (u *Updater) refreshCache(configDir string) {
	release, err := u.LatestRelease()
	if err != nil {
		return
	}

	available, err := IsUpdateAvailable(u.currentVersion, release.Version)
	if err != nil {
		return
	}

	_ = saveCache(configDir, &checkResult{
		LatestVersion:   release.Version,
		CurrentVersion:  u.currentVersion,
		CheckedAt:       time.Now(),
		UpdateAvailable: available,
	})
}

// loadCache returns nil, nil when no cache exists yet (first run).
func loadCache(configDir string) (*checkResult, error) {
	data, err := os.ReadFile(filepath.Join(configDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading version cache: %w", err)
	}

	var cached checkResult
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("parsing version cache: %w", err)
	}
	return &cached, nil
}

func saveCache(configDir string, result *checkResult) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling version cache: %w", err)
	}

	path := filepath.Join(configDir, cacheFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing version cache: %w", err)
	}
	return nil
}
