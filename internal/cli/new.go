package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/stackgen-labs/stackgen/internal/branding"
	"github.com/stackgen-labs/stackgen/internal/config"
	"github.com/stackgen-labs/stackgen/internal/pipeline"
	"github.com/stackgen-labs/stackgen/internal/scaffold"
	"github.com/stackgen-labs/stackgen/internal/style"
	"github.com/stackgen-labs/stackgen/internal/toolchain"
	"github.com/stackgen-labs/stackgen/internal/wizard"
)

// Shared flags for all new subcommands.
var (
	newOutputDir   string
	newPython      string
	newNode        string
	newBackendDir  string
	newFrontendDir string
	newNoGit       bool
	newNoInstall   bool
	newNoColor     bool
)

func init() {
	pf := newCmd.PersistentFlags()
	pf.StringVar(&newOutputDir, "dir", "", "Output directory (default: ./<name>)")
	pf.StringVar(&newPython, "python", "", "Python version pin for uv (default from config)")
	pf.StringVar(&newNode, "node", "", "Node version for .nvmrc (default from config)")
	pf.BoolVar(&newNoGit, "no-git", false, "Skip git init and the initial commit")
	pf.BoolVar(&newNoInstall, "no-install", false, "Skip dependency installation")
	pf.BoolVar(&newNoColor, "no-color", false, "Disable colored output")
	rootCmd.AddCommand(newCmd)

	newCmd.AddCommand(newPythonCmd)
	newCmd.AddCommand(newNextJSCmd)
	newCmd.AddCommand(newFullstackCmd)
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Scaffold a new project directory",
	Long: `Create a new Python, Next.js, or fullstack project.

With a subcommand the project type is fixed; with no subcommand an interactive
wizard walks through the choices.`,
	RunE: runWizard,
}

// ─── new python ────────────────────────────────────────────────────

var newPythonCmd = &cobra.Command{
	Use:   "python <name>",
	Short: "Scaffold a Python project managed with uv",
	Long: `Scaffold a Python project: uv init with a pinned interpreter, shared
[tool.*] settings appended to pyproject.toml, composed .gitignore, editor
settings, and .env.example.

Example:
  stackgen new python my-api --python 3.13`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := requestFromFlags(scaffold.KindPython, args[0])
		return runScaffold(cmd, req)
	},
}

// ─── new nextjs ────────────────────────────────────────────────────

var newNextJSCmd = &cobra.Command{
	Use:   "nextjs <name>",
	Short: "Scaffold a Next.js app",
	Long: `Scaffold a Next.js app through create-next-app, then replace its
.gitignore with the composed one and add .nvmrc and .env.example.

Example:
  stackgen new nextjs my-site --node 22`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := requestFromFlags(scaffold.KindNextJS, args[0])
		return runScaffold(cmd, req)
	},
}

// ─── new fullstack ─────────────────────────────────────────────────

var newFullstackCmd = &cobra.Command{
	Use:   "fullstack <name>",
	Short: "Scaffold a monorepo with a Python backend and Next.js frontend",
	Long: `Scaffold a monorepo: uv-managed backend and create-next-app frontend
under one root, with a single composed .gitignore whose language sections are
prefixed with the subdirectory names.

Example:
  stackgen new fullstack shop --backend-dir api --frontend-dir web`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := requestFromFlags(scaffold.KindFullstack, args[0])
		return runScaffold(cmd, req)
	},
}

func init() {
	newFullstackCmd.Flags().StringVar(&newBackendDir, "backend-dir", "", "Backend directory name (default from config)")
	newFullstackCmd.Flags().StringVar(&newFrontendDir, "frontend-dir", "", "Frontend directory name (default from config)")
}

// ─── Helpers ───────────────────────────────────────────────────────

func runWizard(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("stdin is not a terminal; use `%s new python|nextjs|fullstack <name>`", branding.CLIName())
	}

	req, err := wizard.Run(os.Stdin, os.Stderr, wizard.Defaults{
		PythonVersion: config.Get(config.KeyPythonVersion),
		NodeVersion:   config.Get(config.KeyNodeVersion),
		BackendDir:    config.Get(config.KeyBackendDir),
		FrontendDir:   config.Get(config.KeyFrontendDir),
	})
	if err != nil {
		return fmt.Errorf("interactive mode: %w", err)
	}

	applyFlagOverrides(req)
	req.Dir = resolveOutputDir(req.Name)
	return runScaffold(cmd, req)
}

func requestFromFlags(kind scaffold.Kind, name string) *scaffold.Request {
	req := &scaffold.Request{
		Name:    name,
		Kind:    kind,
		Dir:     resolveOutputDir(name),
		Git:     !newNoGit,
		Install: !newNoInstall,
	}
	applyDefaults(req)
	return req
}

// applyDefaults fills unset request fields from flags, then config.
func applyDefaults(req *scaffold.Request) {
	req.PythonVersion = firstNonEmpty(newPython, config.Get(config.KeyPythonVersion))
	req.NodeVersion = firstNonEmpty(newNode, config.Get(config.KeyNodeVersion))
	if req.Kind == scaffold.KindFullstack {
		req.BackendDir = firstNonEmpty(newBackendDir, config.Get(config.KeyBackendDir))
		req.FrontendDir = firstNonEmpty(newFrontendDir, config.Get(config.KeyFrontendDir))
	}
}

// applyFlagOverrides lets explicit flags win over wizard answers.
func applyFlagOverrides(req *scaffold.Request) {
	if newPython != "" {
		req.PythonVersion = newPython
	}
	if newNode != "" {
		req.NodeVersion = newNode
	}
	if newNoGit {
		req.Git = false
	}
	if newNoInstall {
		req.Install = false
	}
}

func resolveOutputDir(name string) string {
	if newOutputDir != "" {
		return newOutputDir
	}
	return filepath.Join(".", name)
}

func runScaffold(cmd *cobra.Command, req *scaffold.Request) error {
	styles := style.Detect(newNoColor)

	planner := &scaffold.Planner{Runner: &toolchain.ExecRunner{}}
	steps, err := planner.Plan(req)
	if err != nil {
		return err
	}

	fmt.Printf("Creating %s project %s in %s\n", req.Kind, styles.Header.Render(req.Name), req.Dir)

	runner := pipeline.NewRunner(os.Stdout, styles)
	if err := runner.Run(cmd.Context(), steps); err != nil {
		return err
	}

	fmt.Printf("\n%s Created %s at %s/\n", styles.Success.Render("Done."), req.Kind, req.Dir)
	printNextSteps(req)
	return nil
}

func printNextSteps(req *scaffold.Request) {
	fmt.Println("\nNext steps:")
	fmt.Printf("  cd %s\n", req.Dir)
	switch req.Kind {
	case scaffold.KindPython:
		if !req.Install {
			fmt.Println("  uv sync")
		}
		fmt.Println("  uv run python main.py")
	case scaffold.KindNextJS:
		if !req.Install {
			fmt.Println("  npm install")
		}
		fmt.Println("  npm run dev")
	case scaffold.KindFullstack:
		fmt.Printf("  (backend)  cd %s && uv run python main.py\n", req.BackendDir)
		fmt.Printf("  (frontend) cd %s && npm run dev\n", req.FrontendDir)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
