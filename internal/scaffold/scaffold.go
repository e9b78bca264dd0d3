package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/stackgen-labs/stackgen/internal/gitignore"
	"github.com/stackgen-labs/stackgen/internal/pipeline"
	"github.com/stackgen-labs/stackgen/internal/project"
	"github.com/stackgen-labs/stackgen/internal/toolchain"
)

// Kind identifies a supported project type.
type Kind string

const (
	KindPython    Kind = "python"
	KindNextJS    Kind = "nextjs"
	KindFullstack Kind = "fullstack"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidateName checks a project or directory name against the allowed pattern.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q: must match pattern [a-z0-9][a-z0-9-]*", name)
	}
	return nil
}

// Request describes one project to scaffold.
type Request struct {
	Name          string
	Kind          Kind
	Dir           string // project root, e.g. ./<name>
	PythonVersion string // interpreter pin for uv, e.g. "3.12"
	NodeVersion   string // written to .nvmrc, e.g. "20"
	BackendDir    string // fullstack only
	FrontendDir   string // fullstack only
	Git           bool   // init a repository and record an initial commit
	Install       bool   // run dependency installation (uv sync / npm install)
}

// Validate checks the request for contradictions before any step runs.
func (r *Request) Validate() error {
	if err := ValidateName(r.Name); err != nil {
		return err
	}
	switch r.Kind {
	case KindPython, KindNextJS:
	case KindFullstack:
		if r.BackendDir == "" || r.FrontendDir == "" {
			return fmt.Errorf("fullstack projects need backend and frontend directory names")
		}
		if r.BackendDir == r.FrontendDir {
			return fmt.Errorf("backend and frontend directories must differ, both are %q", r.BackendDir)
		}
		if err := ValidateName(r.BackendDir); err != nil {
			return fmt.Errorf("invalid backend directory: %w", err)
		}
		if err := ValidateName(r.FrontendDir); err != nil {
			return fmt.Errorf("invalid frontend directory: %w", err)
		}
	default:
		return fmt.Errorf("unknown project kind %q", r.Kind)
	}
	if r.Dir == "" {
		return fmt.Errorf("project directory is not set")
	}
	return nil
}

// Planner builds the scaffolding pipeline for a request.
type Planner struct {
	Runner toolchain.Runner
}

// Plan returns the ordered steps that scaffold the requested project.
func (p *Planner) Plan(req *Request) ([]pipeline.Step, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Kind {
	case KindPython:
		return p.planPython(req), nil
	case KindNextJS:
		return p.planNextJS(req), nil
	case KindFullstack:
		return p.planFullstack(req), nil
	}
	return nil, fmt.Errorf("unknown project kind %q", req.Kind)
}

func (p *Planner) planPython(req *Request) []pipeline.Step {
	uv := &toolchain.UV{Runner: p.Runner}
	steps := []pipeline.Step{
		p.requireToolsStep(req, "uv"),
		createDirStep(req.Dir),
		pipeline.New("initialize python project (uv init)", func(ctx context.Context) error {
			return uv.Init(ctx, req.Dir, req.PythonVersion)
		}),
		pipeline.New("append tool settings to pyproject.toml", func(ctx context.Context) error {
			return appendPyprojectFragment(req.Dir, req)
		}),
		writeGitignoreStep(req.Dir, func() (string, error) {
			return gitignore.ComposeSingle(gitignore.Templates, "python")
		}),
		writeEditorSettingsStep(req.Dir, req),
		writeEnvExampleStep(req.Dir, req),
	}
	if req.Install {
		steps = append(steps, pipeline.New("install dependencies (uv sync)", func(ctx context.Context) error {
			return uv.Sync(ctx, req.Dir)
		}))
	}
	steps = append(steps, writeManifestStep(req))
	steps = append(steps, p.gitSteps(req)...)
	return steps
}

func (p *Planner) planNextJS(req *Request) []pipeline.Step {
	node := &toolchain.Node{Runner: p.Runner}
	steps := []pipeline.Step{
		p.requireToolsStep(req, "node", "npx"),
		pipeline.New("check node version", func(ctx context.Context) error {
			return node.CheckMinimum(ctx)
		}),
		targetFreeStep(req.Dir),
		pipeline.New("generate next.js app (create-next-app)", func(ctx context.Context) error {
			return node.CreateNextApp(ctx, filepath.Dir(req.Dir), filepath.Base(req.Dir), toolchain.CreateNextAppOptions{
				TypeScript: true,
				ESLint:     true,
				Tailwind:   true,
				AppRouter:  true,
				SkipGit:    true, // git is a dedicated step so all kinds behave alike
				SkipNPM:    !req.Install,
			})
		}),
		writeGitignoreStep(req.Dir, func() (string, error) {
			return gitignore.ComposeSingle(gitignore.Templates, "nextjs")
		}),
		writeNvmrcStep(req.Dir, req.NodeVersion),
		writeEnvExampleStep(req.Dir, req),
		writeManifestStep(req),
	}
	return append(steps, p.gitSteps(req)...)
}

func (p *Planner) planFullstack(req *Request) []pipeline.Step {
	uv := &toolchain.UV{Runner: p.Runner}
	node := &toolchain.Node{Runner: p.Runner}
	backend := filepath.Join(req.Dir, req.BackendDir)
	frontend := filepath.Join(req.Dir, req.FrontendDir)

	steps := []pipeline.Step{
		p.requireToolsStep(req, "uv", "node", "npx"),
		pipeline.New("check node version", func(ctx context.Context) error {
			return node.CheckMinimum(ctx)
		}),
		createDirStep(req.Dir),
		pipeline.New("initialize backend (uv init)", func(ctx context.Context) error {
			if err := os.MkdirAll(backend, 0755); err != nil {
				return fmt.Errorf("creating backend directory: %w", err)
			}
			return uv.Init(ctx, backend, req.PythonVersion)
		}),
		pipeline.New("append tool settings to backend pyproject.toml", func(ctx context.Context) error {
			return appendPyprojectFragment(backend, req)
		}),
		pipeline.New("generate frontend (create-next-app)", func(ctx context.Context) error {
			return node.CreateNextApp(ctx, req.Dir, req.FrontendDir, toolchain.CreateNextAppOptions{
				TypeScript: true,
				ESLint:     true,
				Tailwind:   true,
				AppRouter:  true,
				SkipGit:    true, // one repository at the monorepo root
				SkipNPM:    !req.Install,
			})
		}),
		writeGitignoreStep(req.Dir, func() (string, error) {
			return gitignore.ComposeFullstack(gitignore.Templates, []gitignore.Section{
				{Language: "python", Prefix: req.BackendDir},
				{Language: "nextjs", Prefix: req.FrontendDir},
			})
		}),
		pipeline.New("write README.md", func(ctx context.Context) error {
			return renderToFile(req.Dir, "README.md", "readme.md.tmpl", req)
		}),
		writeNvmrcStep(frontend, req.NodeVersion),
		writeEditorSettingsStep(req.Dir, req),
		writeEnvExampleStep(req.Dir, req),
	}
	if req.Install {
		steps = append(steps, pipeline.New("install backend dependencies (uv sync)", func(ctx context.Context) error {
			return uv.Sync(ctx, backend)
		}))
	}
	steps = append(steps, writeManifestStep(req))
	return append(steps, p.gitSteps(req)...)
}

func (p *Planner) requireToolsStep(req *Request, tools ...string) pipeline.Step {
	if req.Git {
		tools = append(tools, "git")
	}
	return pipeline.New("check required tools", func(ctx context.Context) error {
		return toolchain.Require(p.Runner, tools...)
	})
}

func (p *Planner) gitSteps(req *Request) []pipeline.Step {
	if !req.Git {
		return nil
	}
	git := &toolchain.Git{Runner: p.Runner}
	return []pipeline.Step{
		pipeline.New("initialize git repository", func(ctx context.Context) error {
			if err := git.Init(ctx, req.Dir); err != nil {
				return err
			}
			return git.InitialCommit(ctx, req.Dir, "Initial scaffold")
		}),
	}
}

// createDirStep creates the project root, refusing a non-empty target so an
// existing project is never overwritten.
func createDirStep(dir string) pipeline.Step {
	return pipeline.New("create project directory", func(ctx context.Context) error {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating project directory: %w", err)
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading project directory: %w", err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("directory %s is not empty; remove existing files first", dir)
		}
		return nil
	})
}

// targetFreeStep checks that dir does not already hold files, for tools like
// create-next-app that create the directory themselves.
func targetFreeStep(dir string) pipeline.Step {
	return pipeline.New("check target directory", func(ctx context.Context) error {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading target directory: %w", err)
		}
		if len(entries) > 0 {
			return fmt.Errorf("directory %s is not empty; remove existing files first", dir)
		}
		return nil
	})
}

func writeGitignoreStep(dir string, compose func() (string, error)) pipeline.Step {
	return pipeline.New("write .gitignore", func(ctx context.Context) error {
		content, err := compose()
		if err != nil {
			return err
		}
		return writeFileAtomic(filepath.Join(dir, ".gitignore"), []byte(content))
	})
}

func writeNvmrcStep(dir, nodeVersion string) pipeline.Step {
	return pipeline.New("write .nvmrc", func(ctx context.Context) error {
		return writeFileAtomic(filepath.Join(dir, ".nvmrc"), []byte(nodeVersion+"\n"))
	})
}

func writeEditorSettingsStep(dir string, req *Request) pipeline.Step {
	return pipeline.New("write editor settings", func(ctx context.Context) error {
		if err := os.MkdirAll(filepath.Join(dir, ".vscode"), 0755); err != nil {
			return fmt.Errorf("creating .vscode directory: %w", err)
		}
		return renderToFile(filepath.Join(dir, ".vscode"), "settings.json", "vscode-settings.json.tmpl", req)
	})
}

func writeEnvExampleStep(dir string, req *Request) pipeline.Step {
	return pipeline.New("write .env.example", func(ctx context.Context) error {
		return renderToFile(dir, ".env.example", "env.example.tmpl", req)
	})
}

func writeManifestStep(req *Request) pipeline.Step {
	return pipeline.New("write project manifest", func(ctx context.Context) error {
		return project.Write(req.Dir, manifestFor(req))
	})
}

func manifestFor(req *Request) *project.Manifest {
	m := &project.Manifest{
		Name: req.Name,
		Kind: string(req.Kind),
	}
	switch req.Kind {
	case KindPython:
		m.Stacks = []project.Stack{
			{Language: "python", Dir: ".", Version: req.PythonVersion},
		}
	case KindNextJS:
		m.Stacks = []project.Stack{
			{Language: "nextjs", Dir: ".", Version: req.NodeVersion},
		}
	case KindFullstack:
		m.Stacks = []project.Stack{
			{Language: "python", Dir: req.BackendDir, Version: req.PythonVersion},
			{Language: "nextjs", Dir: req.FrontendDir, Version: req.NodeVersion},
		}
	}
	return m
}
