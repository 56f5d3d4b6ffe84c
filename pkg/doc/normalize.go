package doc

import "fmt"

// Normalize takes a possibly-inconsistent document and returns an
// equivalent one satisfying every structural invariant:
//
//  1. Root enforcement: if no root node exists one is synthesized at the
//     front of the node list; if several exist the first is kept and the
//     rest are downgraded to Dialogue.
//  2. Per-node derivation: background color is rewritten from the variant
//     table, the root's sentinel text is forced, ChoiceFlag text is forced
//     empty and its child count recomputed from the edge list, and derived
//     fields are cleared from variants that must not carry them.
//
// Root enforcement runs strictly before derivation: a downgraded duplicate
// root becomes Dialogue and must then receive Dialogue-shaped fields.
//
// Normalize is idempotent and never fails; it is a recovery path, not a
// validation gate. It must run after every structural mutation before the
// result is committed, and once after deserialization.
func Normalize(d Document) Document {
	out := d.Clone()
	out.Nodes = enforceRoot(out.Nodes)
	for i, n := range out.Nodes {
		out.Nodes[i] = derive(n, out)
	}
	return out
}

// enforceRoot guarantees exactly one root-variant node in the slice.
func enforceRoot(nodes []Node) []Node {
	seen := false
	for i, n := range nodes {
		if !n.IsRoot() {
			continue
		}
		if !seen {
			seen = true
			continue
		}
		// Duplicate root: downgrade to Dialogue. Derivation assigns the
		// remaining Dialogue-shaped fields afterwards.
		nodes[i].Variant = Dialogue
		empty := ""
		nodes[i].Actor = &empty
	}
	if seen {
		return nodes
	}

	size := Size{Width: DefaultNodeWidth, Height: DefaultNodeHeight}
	root := Node{
		ID:       freeNodeID(nodes, RootNodeID),
		Position: DefaultRootPosition,
		Size:     size,
		Variant:  Root,
		Points:   DefaultPoints(size),
	}
	return append([]Node{root}, nodes...)
}

// freeNodeID returns preferred if unused, otherwise the first
// "preferred-N" that no node carries.
func freeNodeID(nodes []Node, preferred string) string {
	taken := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		taken[n.ID] = true
	}
	if !taken[preferred] {
		return preferred
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", preferred, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

// derive rewrites the node's derived fields from its final variant. The
// switch is exhaustive over the variant set.
func derive(n Node, d Document) Node {
	n.Color = n.Variant.Color()

	switch n.Variant {
	case Root:
		n.Text = RootText
		n.Actor = nil
		n.ChildCount = nil
	case Dialogue:
		if n.Actor == nil {
			empty := ""
			n.Actor = &empty
		}
		n.ChildCount = nil
	case ChoiceFlag:
		n.Text = ""
		n.Actor = nil
		count := d.OutDegree(n.ID)
		n.ChildCount = &count
	case Option, Comment:
		n.Actor = nil
		n.ChildCount = nil
	}
	return n
}

// RepairNode applies the backward-compatible field repair used when loading
// external data, before the document-level Normalize pass:
//
//   - a missing variant already decodes to Dialogue (the zero value)
//   - missing or empty connection points are synthesized from the size
//   - a Dialogue node without an actor receives the empty string
//
// Nodes with a zero size additionally receive the default dimensions so
// that synthesized points have a usable anchor.
func RepairNode(n Node) Node {
	if n.Size.Width == 0 && n.Size.Height == 0 {
		n.Size = Size{Width: DefaultNodeWidth, Height: DefaultNodeHeight}
	}
	if len(n.Points) == 0 {
		n.Points = DefaultPoints(n.Size)
	}
	if n.Variant == Dialogue && n.Actor == nil {
		empty := ""
		n.Actor = &empty
	}
	return n
}
