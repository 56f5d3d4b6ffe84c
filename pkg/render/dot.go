package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes node ids and positions in labels.
	// When false, only the dialogue content is shown.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT format. The resulting DOT
// string can be rendered using [RenderSVG] or [RenderPNG].
//
// Nodes are filled with their variant color; edges keep their authored
// color when one is set.
func ToDOT(d doc.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dialogue {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		if e.Color != "" {
			fmt.Fprintf(&buf, "  %q -> %q [color=%q];\n", e.From, e.To, e.Color)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n doc.Node, detailed bool) string {
	var label string
	switch n.Variant {
	case doc.Root:
		label = "START"
	case doc.Dialogue:
		if n.Actor != nil && *n.Actor != "" {
			label = *n.Actor + ":\n" + n.Text
		} else {
			label = n.Text
		}
	case doc.ChoiceFlag:
		count := 0
		if n.ChildCount != nil {
			count = *n.ChildCount
		}
		label = fmt.Sprintf("choice (%d)", count)
	default:
		label = n.Text
	}

	if detailed {
		label += fmt.Sprintf("\n[%s @ %.0f,%.0f]", n.ID, n.Position.X, n.Position.Y)
	}
	return label
}

func fmtAttrs(n doc.Node, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", n.Color),
	}
	if n.Variant == doc.Comment {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if n.Variant == doc.ChoiceFlag {
		attrs = append(attrs, "shape=diamond")
	}
	return attrs
}
