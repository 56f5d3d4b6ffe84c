package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
)

// newEditCmd creates the edit command that opens the interactive terminal
// editor on a document file. A missing file starts as a fresh document and
// is created on first save.
func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive terminal editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg := configFromContext(cmd.Context())

			var d doc.Document
			if _, err := os.Stat(path); os.IsNotExist(err) {
				d = doc.New()
				printInfo("New document %s", path)
			} else {
				if d, err = doc.ReadDocumentFile(path); err != nil {
					return fmt.Errorf("load %s: %w", path, err)
				}
			}

			model := NewEditModel(path, d, cfg.HistoryLimit)
			final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}

			if m, ok := final.(EditModel); ok && m.dirty {
				printWarning("Unsaved changes in %s were discarded", path)
			}
			return nil
		},
	}
	return cmd
}
