package project

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
	"go.yaml.in/yaml/v3"

	"github.com/stackgen-labs/stackgen/internal/branding"
)

// FileName is the manifest file written to every scaffolded project root.
const FileName = "stackgen.yaml"

// Manifest describes one scaffolded project.
type Manifest struct {
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"` // python, nextjs, fullstack
	GeneratedBy string  `yaml:"generated_by,omitempty"`
	CreatedAt   string  `yaml:"created_at,omitempty"` // RFC 3339
	Stacks      []Stack `yaml:"stacks"`
}

// Stack is one technology stack within the project. Dir is "." for
// single-stack projects and the monorepo subdirectory for fullstack ones.
type Stack struct {
	Language string `yaml:"language"` // python or nextjs
	Dir      string `yaml:"dir"`
	Version  string `yaml:"version,omitempty"` // interpreter/runtime pin
}

// Path returns the manifest location for a project directory.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Write marshals the manifest into dir, stamping provenance fields.
func Write(dir string, m *Manifest) error {
	if m.GeneratedBy == "" {
		m.GeneratedBy = branding.CLIName()
	}
	if m.CreatedAt == "" {
		m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling project manifest: %w", err)
	}

	if err := atomic.WriteFile(Path(dir), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing project manifest: %w", err)
	}
	return nil
}

// Load reads and parses the manifest from a project directory.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("reading project manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing project manifest: %w", err)
	}
	return &m, nil
}
