package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/stackgen-labs/stackgen/internal/project"
)

var checkManifest string

func init() {
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a stackgen.yaml manifest at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the required external tools are installed",
	Long: `Run diagnostic checks on the tools stackgen drives (git, uv, node, npx).

With --check-manifest, also validate a project manifest against its schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkManifest != "" {
			return runManifestCheck(checkManifest)
		}

		fmt.Println("Toolchain check:")
		allFound := true
		for _, tool := range []struct{ name, neededFor string }{
			{"git", "repository initialization"},
			{"uv", "python projects"},
			{"node", "next.js projects"},
			{"npx", "next.js projects"},
		} {
			if !checkBinary(tool.name, tool.neededFor) {
				allFound = false
			}
		}

		if !allFound {
			return fmt.Errorf("some required tools are missing")
		}
		return nil
	},
}

func checkBinary(name, neededFor string) bool {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Printf("  [MISS] %s not found (needed for %s)\n", name, neededFor)
		return false
	}
	fmt.Printf("  [ OK ] %s found at %s\n", name, path)
	return true
}

func runManifestCheck(path string) error {
	fmt.Printf("Manifest validation: %s\n", path)

	result, err := project.ValidateFile(path)
	if err != nil {
		fmt.Printf("  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		fmt.Printf("  [ OK ] Valid project manifest\n")
		return nil
	}

	fmt.Printf("  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		if issue.Path != "" {
			fmt.Printf("    - %s: %s\n", issue.Path, issue.Message)
		} else {
			fmt.Printf("    - %s\n", issue.Message)
		}
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
