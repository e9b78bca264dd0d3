package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/natefinch/atomic"
)

//go:embed templates/*.tmpl
var assets embed.FS

// templateData is what the file templates see.
type templateData struct {
	*Request
	Year       int
	RuffTarget string
}

// ruffTarget converts a python version pin like "3.12" or "3.12.1" into
// ruff's target form "py312".
func ruffTarget(pythonVersion string) string {
	if pythonVersion == "" {
		pythonVersion = "3.12"
	}
	parts := strings.SplitN(pythonVersion, ".", 3)
	if len(parts) >= 2 {
		return "py" + parts[0] + parts[1]
	}
	return "py" + parts[0]
}

func render(name string, req *Request) ([]byte, error) {
	raw, err := assets.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	data := templateData{Request: req, Year: time.Now().Year(), RuffTarget: ruffTarget(req.PythonVersion)}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// renderToFile renders the named template and writes it into dir.
func renderToFile(dir, outName, tmplName string, req *Request) error {
	data, err := render(tmplName, req)
	if err != nil {
		return err
	}
	return writeFileAtomic(filepath.Join(dir, outName), data)
}

// writeFileAtomic writes data so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// appendPyprojectFragment appends the shared [tool.*] configuration to the
// pyproject.toml that uv init generated in dir.
func appendPyprojectFragment(dir string, req *Request) error {
	path := filepath.Join(dir, "pyproject.toml")
	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading pyproject.toml: %w", err)
	}

	fragment, err := render("pyproject-tools.toml.tmpl", req)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	out.Write(existing)
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.Write(fragment)

	return writeFileAtomic(path, out.Bytes())
}
