package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
)

// newInspectCmd creates the inspect command for summarizing a document.
func newInspectCmd() *cobra.Command {
	var showNodes bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show document statistics and structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := doc.ReadDocumentFile(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			printSummary(args[0], d)
			if showNodes {
				fmt.Println()
				printNodeTable(d)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showNodes, "nodes", false, "list every node")
	return cmd
}

// printSummary prints counts, the root node, and the view state.
func printSummary(path string, d doc.Document) {
	fmt.Println(StyleTitle.Render(path))

	byVariant := map[doc.Variant]int{}
	for _, n := range d.Nodes {
		byVariant[n.Variant]++
	}

	variants := make([]doc.Variant, 0, len(byVariant))
	for v := range byVariant {
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool { return variants[i] < variants[j] })

	parts := make([]string, 0, len(variants))
	for _, v := range variants {
		parts = append(parts, fmt.Sprintf("%d %s", byVariant[v], v))
	}

	printInfo("Nodes: %s (%s)", StyleValue.Render(fmt.Sprint(len(d.Nodes))), strings.Join(parts, ", "))
	printInfo("Edges: %s", StyleValue.Render(fmt.Sprint(len(d.Edges))))

	if root, ok := d.RootNode(); ok {
		printInfo("Root:  %s at (%.0f, %.0f)", StyleValue.Render(root.ID), root.Position.X, root.Position.Y)
	}
	if d.View != nil {
		printInfo("View:  offset (%.0f, %.0f), scale %.2f", d.View.X, d.View.Y, d.View.Scale)
	}

	// Dangling edges survive normalization; they only ever come from
	// hand-edited files.
	dangling := 0
	for _, e := range d.Edges {
		if _, ok := d.Node(e.From); !ok {
			dangling++
			continue
		}
		if _, ok := d.Node(e.To); !ok {
			dangling++
		}
	}
	if dangling > 0 {
		printWarning("%d edge(s) reference missing nodes", dangling)
	}
}

// printNodeTable renders every node as a row.
func printNodeTable(d doc.Document) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		actor := ""
		if n.Actor != nil {
			actor = *n.Actor
		}
		out := d.OutDegree(n.ID)
		rows = append(rows, []string{
			n.ID,
			n.Variant.String(),
			truncate(n.Text, 40),
			actor,
			fmt.Sprint(out),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Variant", "Text", "Actor", "Out").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Println(t.Render())
}

// truncate shortens s to at most n runes, appending an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
