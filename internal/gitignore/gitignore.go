package gitignore

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed templates/*.template
var embedded embed.FS

// Templates is the bundled template set shipped with the binary.
var Templates fs.FS

func init() {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("gitignore: embedded templates missing: %v", err))
	}
	Templates = sub
}

// BaseTemplate is the name of the template shared by all project types.
const BaseTemplate = "base"

const templateExt = ".template"

// TemplateNotFoundError indicates a named template does not exist in the
// template set.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("gitignore template %q not found", e.Name)
}

// Section describes one language section of a fullstack composition. Prefix
// is the monorepo subdirectory (without trailing slash) the language's
// patterns should be scoped to.
type Section struct {
	Language string
	Prefix   string
}

// List returns the names of all templates in the set, in directory order.
func List(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing gitignore templates: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), templateExt))
	}
	return names, nil
}

// ComposeSingle returns the base template followed by exactly one blank line
// and the named language template, both verbatim.
func ComposeSingle(fsys fs.FS, language string) (string, error) {
	base, err := read(fsys, BaseTemplate)
	if err != nil {
		return "", err
	}
	lang, err := read(fsys, language)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(base)
	writeBlankLine(&b)
	b.WriteString(lang)
	return b.String(), nil
}

// ComposeFullstack returns the base template verbatim followed by one section
// per entry, in caller order. Each section starts with a blank line and a
// banner comment naming its prefix directory and language; every non-blank,
// non-comment line of the section's template gets the prefix prepended. Base
// patterns are root-relative and are never prefixed.
//
// All templates are read before any output is assembled, so a missing
// template produces no partial result.
func ComposeFullstack(fsys fs.FS, sections []Section) (string, error) {
	base, err := read(fsys, BaseTemplate)
	if err != nil {
		return "", err
	}
	contents := make([]string, len(sections))
	for i, s := range sections {
		contents[i], err = read(fsys, s.Language)
		if err != nil {
			return "", err
		}
	}

	var b strings.Builder
	b.WriteString(base)
	for i, s := range sections {
		writeBlankLine(&b)
		fmt.Fprintf(&b, "# ===== %s/ (%s) =====\n", s.Prefix, s.Language)
		b.WriteString(applyPrefix(contents[i], s.Prefix))
	}
	return b.String(), nil
}

func read(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name+templateExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &TemplateNotFoundError{Name: name}
		}
		return "", fmt.Errorf("reading gitignore template %q: %w", name, err)
	}
	return string(data), nil
}

// writeBlankLine terminates the current line if needed and emits one empty
// line, so the next write starts after exactly one blank line.
func writeBlankLine(b *strings.Builder) {
	s := b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// applyPrefix prepends prefix+"/" to every line that is neither empty nor a
// comment. The check is purely syntactic on the first character: a negation
// line like "!build/" also receives the prefix, matching the behavior the
// composed templates are written against.
func applyPrefix(content, prefix string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines[i] = prefix + "/" + line
	}
	return strings.Join(lines, "\n")
}
