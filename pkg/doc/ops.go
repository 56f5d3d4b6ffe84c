package doc

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrUnknownSourceNode is returned by [AddEdge] when the source node
	// does not exist in the document.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [AddEdge] when the target node
	// does not exist in the document.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownSourcePoint is returned by [AddEdge] when the source point
	// is not among the source node's connection points.
	ErrUnknownSourcePoint = errors.New("unknown source connection point")

	// ErrUnknownTargetPoint is returned by [AddEdge] when the target point
	// is not among the target node's connection points.
	ErrUnknownTargetPoint = errors.New("unknown target connection point")
)

// DefaultNodeText is the initial text of a freshly created node.
const DefaultNodeText = "New dialogue"

// NewNode creates a Dialogue node at the given position with synthesized
// connection points. An empty id is replaced with a generated UUID; a zero
// size receives the default dimensions. The node is not yet part of any
// document - pass it to [AddNode].
func NewNode(id string, pos Point, size Size) Node {
	if id == "" {
		id = uuid.NewString()
	}
	if size.Width == 0 && size.Height == 0 {
		size = Size{Width: DefaultNodeWidth, Height: DefaultNodeHeight}
	}
	empty := ""
	return Node{
		ID:       id,
		Position: pos,
		Size:     size,
		Variant:  Dialogue,
		Text:     DefaultNodeText,
		Actor:    &empty,
		Color:    Dialogue.Color(),
		Points:   DefaultPoints(size),
	}
}

// NewEdge creates an edge connecting two connection points. An empty id is
// replaced with a generated UUID. The endpoints are validated by [AddEdge],
// not here.
func NewEdge(id, from, fromPoint, to, toPoint string) Edge {
	if id == "" {
		id = uuid.NewString()
	}
	return Edge{ID: id, From: from, FromPoint: fromPoint, To: to, ToPoint: toPoint}
}

// AddNode returns a copy of the document with the node appended. It does
// not normalize; callers run [Normalize] before committing the result.
func AddNode(d Document, n Node) Document {
	out := d.Clone()
	out.Nodes = append(out.Nodes, n.Clone())
	return out
}

// NodeUpdate is the settable surface of a node. Nil fields are left
// untouched. Derived fields (background color, child count) have no slot
// here: they are outputs of [Normalize], never inputs.
type NodeUpdate struct {
	Position *Point
	Size     *Size
	Variant  *Variant
	Text     *string
	Actor    *string
	Points   []ConnectionPoint
}

// Touches reports whether the update carries any field at all.
func (u NodeUpdate) Touches() bool {
	return u.Position != nil || u.Size != nil || u.Variant != nil ||
		u.Text != nil || u.Actor != nil || u.Points != nil
}

// UpdateNode returns a copy of the document with the update merged into the
// matching node, or the document unchanged if no node has the given id.
//
// When the size changes and no explicit points are supplied, connection
// point offsets are re-anchored to the new height so input points stay at
// top-center and output points at bottom-center.
//
// UpdateNode applies whatever it is given; variant-specific write
// protection (the root node accepting only position/size/points) is caller
// policy, enforced by the editor layer.
func UpdateNode(d Document, id string, u NodeUpdate) Document {
	idx := slices.IndexFunc(d.Nodes, func(n Node) bool { return n.ID == id })
	if idx < 0 {
		return d
	}

	out := d.Clone()
	n := &out.Nodes[idx]
	if u.Position != nil {
		n.Position = *u.Position
	}
	if u.Size != nil {
		n.Size = *u.Size
		if u.Points == nil {
			n.Points = RetrackPoints(n.Points, n.Size)
		}
	}
	if u.Variant != nil {
		n.Variant = *u.Variant
	}
	if u.Text != nil {
		n.Text = *u.Text
	}
	if u.Actor != nil {
		actor := *u.Actor
		n.Actor = &actor
	}
	if u.Points != nil {
		n.Points = slices.Clone(u.Points)
	}
	return out
}

// RemoveNode returns a copy of the document without the node and without
// every edge whose source or target is that node. Removing the sole root
// is permitted here; [Normalize] resynthesizes one.
func RemoveNode(d Document, id string) Document {
	out := d.Clone()
	out.Nodes = slices.DeleteFunc(out.Nodes, func(n Node) bool { return n.ID == id })
	out.Edges = slices.DeleteFunc(out.Edges, func(e Edge) bool {
		return e.From == id || e.To == id
	})
	return out
}

// AddEdge returns a copy of the document with the edge appended.
//
// It fails with [ErrUnknownSourceNode] or [ErrUnknownTargetNode] when an
// endpoint node does not exist, and with [ErrUnknownSourcePoint] or
// [ErrUnknownTargetPoint] when a point id is not among the endpoint node's
// connection points.
//
// If an edge with the identical (source node, source point, target node,
// target point) tuple already exists, the input document is returned
// unchanged with a nil error: an interactive connection drag cannot
// distinguish "nothing happened" from "error" mid-gesture, so duplicate
// attempts are absorbed rather than rejected.
func AddEdge(d Document, e Edge) (Document, error) {
	src, ok := d.Node(e.From)
	if !ok {
		return d, ErrUnknownSourceNode
	}
	dst, ok := d.Node(e.To)
	if !ok {
		return d, ErrUnknownTargetNode
	}
	if _, ok := src.Point(e.FromPoint); !ok {
		return d, ErrUnknownSourcePoint
	}
	if _, ok := dst.Point(e.ToPoint); !ok {
		return d, ErrUnknownTargetPoint
	}

	for _, existing := range d.Edges {
		if existing.SameEndpoints(e) {
			return d, nil
		}
	}

	out := d.Clone()
	out.Edges = append(out.Edges, e.Clone())
	return out, nil
}

// EdgeUpdate is the settable surface of an edge.
type EdgeUpdate struct {
	Color *string
}

// UpdateEdge returns a copy of the document with the update merged into the
// matching edge, or the document unchanged if no edge has the given id.
func UpdateEdge(d Document, id string, u EdgeUpdate) Document {
	idx := slices.IndexFunc(d.Edges, func(e Edge) bool { return e.ID == id })
	if idx < 0 {
		return d
	}
	out := d.Clone()
	if u.Color != nil {
		out.Edges[idx].Color = *u.Color
	}
	return out
}

// RemoveEdge returns a copy of the document without the edge. Unknown ids
// are a no-op.
func RemoveEdge(d Document, id string) Document {
	out := d.Clone()
	out.Edges = slices.DeleteFunc(out.Edges, func(e Edge) bool { return e.ID == id })
	return out
}
