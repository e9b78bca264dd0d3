package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackgen-labs/stackgen/internal/gitignore"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the bundled .gitignore templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := gitignore.List(gitignore.Templates)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}
