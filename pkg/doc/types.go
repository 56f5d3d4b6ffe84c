package doc

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// RootNodeID is the preferred node ID for the synthesized root node.
// If a document already contains a different node with this ID, root
// synthesis falls back to a disambiguated ID.
const RootNodeID = "root"

// RootText is the fixed text carried by every root node. It is a sentinel,
// not user content: normalization forces it back on every pass.
const RootText = "dialogue-start"

// Default node geometry.
const (
	DefaultNodeWidth  = 160
	DefaultNodeHeight = 80
)

// DefaultRootPosition is where a synthesized root node is placed.
var DefaultRootPosition = Point{X: 400, Y: 200}

// Connection point IDs used for synthesized default points.
const (
	InputPointID  = "in"
	OutputPointID = "out"
)

// =============================================================================
// Variant - Node Type Tag
// =============================================================================

// Variant is the closed set of node types. The zero value is Dialogue so
// that nodes loaded from older files without a variant field decode to the
// backward-compatible default.
type Variant int

const (
	// Dialogue is a spoken line with an actor attribution.
	Dialogue Variant = iota
	// Root is the single entry point of the dialogue graph. Exactly one
	// exists per document after normalization.
	Root
	// Option is a selectable player response.
	Option
	// ChoiceFlag is a branching marker whose child count is derived from
	// its outgoing edges.
	ChoiceFlag
	// Comment is an authoring annotation with no runtime meaning.
	Comment
)

var variantNames = map[Variant]string{
	Dialogue:   "dialogue",
	Root:       "root",
	Option:     "option",
	ChoiceFlag: "choiceFlag",
	Comment:    "comment",
}

var variantFromName = map[string]Variant{
	"dialogue":   Dialogue,
	"root":       Root,
	"option":     Option,
	"choiceFlag": ChoiceFlag,
	"comment":    Comment,
}

// String returns the wire name of the variant.
func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return "dialogue"
}

// MarshalJSON encodes the variant as its wire name.
func (v Variant) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a wire name. Unknown names decode to Dialogue,
// matching the repair behavior for documents written by older versions.
func (v *Variant) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("variant: %w", err)
	}
	if parsed, ok := variantFromName[s]; ok {
		*v = parsed
	} else {
		*v = Dialogue
	}
	return nil
}

// Color returns the background color assigned to the variant. Style is a
// projection of type: this table is the only source of node colors, and
// normalization rewrites every node's color from it.
func (v Variant) Color() string {
	switch v {
	case Root:
		return "#2e7d32"
	case Dialogue:
		return "#1e88e5"
	case Option:
		return "#8e24aa"
	case ChoiceFlag:
		return "#f9a825"
	case Comment:
		return "#757575"
	}
	return Dialogue.Color()
}

// =============================================================================
// Geometry
// =============================================================================

// Point is a 2D coordinate. For connection points it is an offset relative
// to the owning node's center.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Size is a node's bounding box dimensions.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// ViewState is a pan/zoom snapshot persisted with the document. It carries
// no structural invariant.
type ViewState struct {
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Scale float64 `json:"scale" bson:"scale"`
}

// =============================================================================
// ConnectionPoint
// =============================================================================

// Direction distinguishes input (incoming edge target) from output
// (outgoing edge source) connection points.
type Direction int

const (
	// Input points accept incoming edges. Synthesized at top-center.
	Input Direction = iota
	// Output points emit outgoing edges. Synthesized at bottom-center.
	Output
)

// String returns "input" or "output".
func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// MarshalJSON encodes the direction as its wire name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "input" or "output". Anything else is input.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	if s == "output" {
		*d = Output
	} else {
		*d = Input
	}
	return nil
}

// ConnectionPoint is an edge anchor owned by exactly one node. Edges
// reference points by ID but never own them.
type ConnectionPoint struct {
	ID        string    `json:"id" bson:"id"`
	Direction Direction `json:"direction" bson:"direction"`
	Offset    Point     `json:"offset" bson:"offset"`
}

// DefaultPoints synthesizes the standard input/output point pair for a node
// of the given size: input at top-center, output at bottom-center, offsets
// relative to node center.
func DefaultPoints(size Size) []ConnectionPoint {
	return []ConnectionPoint{
		{ID: InputPointID, Direction: Input, Offset: Point{X: 0, Y: -size.Height / 2}},
		{ID: OutputPointID, Direction: Output, Offset: Point{X: 0, Y: size.Height / 2}},
	}
}

// RetrackPoints returns a copy of points with offsets re-anchored to the
// given size: input points move to the top edge, output points to the
// bottom edge. Horizontal offsets are preserved.
func RetrackPoints(points []ConnectionPoint, size Size) []ConnectionPoint {
	out := make([]ConnectionPoint, len(points))
	for i, p := range points {
		if p.Direction == Output {
			p.Offset.Y = size.Height / 2
		} else {
			p.Offset.Y = -size.Height / 2
		}
		out[i] = p
	}
	return out
}

// =============================================================================
// Node
// =============================================================================

// Node is a vertex in the dialogue graph.
//
// Two fields are derived, never authored: Color is a projection of Variant,
// and ChildCount (present only on ChoiceFlag nodes) is the number of edges
// leaving the node. Both are rewritten by Normalize after every structural
// change; NodeUpdate deliberately has no slots for them.
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Position Point   `json:"position" bson:"position"`
	Size     Size    `json:"size" bson:"size"`
	Variant  Variant `json:"variant" bson:"variant"`
	Text     string  `json:"text" bson:"text"`

	// Actor is present on Dialogue nodes (possibly empty) and absent on
	// all other variants.
	Actor *string `json:"actor,omitempty" bson:"actor,omitempty"`

	// ChildCount is present on ChoiceFlag nodes only: the derived count
	// of edges whose source is this node.
	ChildCount *int `json:"derivedChildCount,omitempty" bson:"derivedChildCount,omitempty"`

	Color  string            `json:"backgroundColor" bson:"backgroundColor"`
	Points []ConnectionPoint `json:"connectionPoints" bson:"connectionPoints"`
	Meta   map[string]any    `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// IsRoot reports whether the node is the dialogue entry point.
func (n Node) IsRoot() bool { return n.Variant == Root }

// Point returns the connection point with the given ID and true, or a zero
// point and false if the node has no such point.
func (n Node) Point(id string) (ConnectionPoint, bool) {
	for _, p := range n.Points {
		if p.ID == id {
			return p, true
		}
	}
	return ConnectionPoint{}, false
}

// Clone returns a deep copy of the node. The copy shares no slices or maps
// with the original.
func (n Node) Clone() Node {
	out := n
	if n.Actor != nil {
		actor := *n.Actor
		out.Actor = &actor
	}
	if n.ChildCount != nil {
		count := *n.ChildCount
		out.ChildCount = &count
	}
	if n.Points != nil {
		out.Points = make([]ConnectionPoint, len(n.Points))
		copy(out.Points, n.Points)
	}
	out.Meta = copyMeta(n.Meta)
	return out
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed connection between two connection points on two nodes.
// Endpoints are validated when the edge is added; a later node removal
// cascades and deletes incident edges.
type Edge struct {
	ID        string         `json:"id" bson:"id"`
	From      string         `json:"sourceNodeId" bson:"sourceNodeId"`
	FromPoint string         `json:"sourcePointId" bson:"sourcePointId"`
	To        string         `json:"targetNodeId" bson:"targetNodeId"`
	ToPoint   string         `json:"targetPointId" bson:"targetPointId"`
	Color     string         `json:"color,omitempty" bson:"color,omitempty"`
	Meta      map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// SameEndpoints reports whether two edges connect the identical
// (source node, source point, target node, target point) tuple.
func (e Edge) SameEndpoints(other Edge) bool {
	return e.From == other.From && e.FromPoint == other.FromPoint &&
		e.To == other.To && e.ToPoint == other.ToPoint
}

// Clone returns a deep copy of the edge.
func (e Edge) Clone() Edge {
	out := e
	out.Meta = copyMeta(e.Meta)
	return out
}

// =============================================================================
// Document
// =============================================================================

// Document is the whole editable unit: the node/edge graph plus the
// persisted view snapshot. Documents are values; every mutation operation
// returns a new Document and never modifies its input.
type Document struct {
	Nodes []Node         `json:"nodes" bson:"nodes"`
	Edges []Edge         `json:"edges" bson:"edges"`
	View  *ViewState     `json:"viewState,omitempty" bson:"viewState,omitempty"`
	Meta  map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// New creates a fresh document containing a single root node and no edges.
// The result already satisfies all invariants.
func New() Document {
	return Normalize(Document{
		Nodes: []Node{{
			ID:       RootNodeID,
			Position: DefaultRootPosition,
			Size:     Size{Width: DefaultNodeWidth, Height: DefaultNodeHeight},
			Variant:  Root,
			Points:   DefaultPoints(Size{Width: DefaultNodeWidth, Height: DefaultNodeHeight}),
		}},
	})
}

// Node returns the node with the given ID and true, or a zero node and
// false if not found.
func (d Document) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given ID and true, or a zero edge and
// false if not found.
func (d Document) Edge(id string) (Edge, bool) {
	for _, e := range d.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// RootNode returns the first root-variant node and true, or false if the
// document has none (possible only before normalization).
func (d Document) RootNode() (Node, bool) {
	for _, n := range d.Nodes {
		if n.IsRoot() {
			return n, true
		}
	}
	return Node{}, false
}

// OutDegree returns the number of edges whose source is the given node.
func (d Document) OutDegree(nodeID string) int {
	count := 0
	for _, e := range d.Edges {
		if e.From == nodeID {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the document. The copy shares no slices or
// maps with the original, so mutating one can never corrupt history
// snapshots holding the other.
func (d Document) Clone() Document {
	out := Document{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
		Meta:  copyMeta(d.Meta),
	}
	for i, n := range d.Nodes {
		out.Nodes[i] = n.Clone()
	}
	for i, e := range d.Edges {
		out.Edges[i] = e.Clone()
	}
	if d.View != nil {
		view := *d.View
		out.View = &view
	}
	return out
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
