package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
)

// newNewCmd creates the new command for starting a fresh document.
// The created file contains a single root node and an identity view.
func newNewCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create a fresh flowchart document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			d := doc.New()
			if err := doc.WriteDocumentFile(d, path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			printSuccess("Created %s", StyleHighlight.Render(path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}
