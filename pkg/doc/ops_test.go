package doc

import (
	"errors"
	"reflect"
	"testing"
)

// twoNodeDoc builds a normalized document with nodes "a" and "b" plus the
// synthesized root.
func twoNodeDoc() Document {
	d := Document{Nodes: []Node{dialogueNode("a"), dialogueNode("b")}}
	return Normalize(d)
}

func TestNewNode(t *testing.T) {
	n := NewNode("", Point{X: 10, Y: 20}, Size{})

	if n.ID == "" {
		t.Error("ID not generated for empty id")
	}
	if n.Variant != Dialogue {
		t.Errorf("variant = %v, want Dialogue", n.Variant)
	}
	if n.Text != DefaultNodeText {
		t.Errorf("text = %q, want %q", n.Text, DefaultNodeText)
	}
	if n.Size.Width != DefaultNodeWidth || n.Size.Height != DefaultNodeHeight {
		t.Errorf("size = %+v, want defaults", n.Size)
	}
	if len(n.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(n.Points))
	}
	if n.Actor == nil || *n.Actor != "" {
		t.Errorf("actor = %v, want empty string", n.Actor)
	}

	other := NewNode("", Point{}, Size{})
	if other.ID == n.ID {
		t.Error("generated IDs collide")
	}

	named := NewNode("given", Point{}, Size{Width: 5, Height: 6})
	if named.ID != "given" {
		t.Errorf("ID = %q, want given", named.ID)
	}
	if named.Size != (Size{Width: 5, Height: 6}) {
		t.Errorf("size = %+v, want authored size kept", named.Size)
	}
}

func TestAddNodeIsPure(t *testing.T) {
	d := twoNodeDoc()
	snapshot := d.Clone()

	got := AddNode(d, NewNode("c", Point{}, Size{}))

	if len(got.Nodes) != len(d.Nodes)+1 {
		t.Errorf("nodes = %d, want %d", len(got.Nodes), len(d.Nodes)+1)
	}
	if !reflect.DeepEqual(d, snapshot) {
		t.Error("AddNode mutated its input")
	}
}

func TestUpdateNode(t *testing.T) {
	pos := Point{X: 50, Y: 60}
	text := "hello"
	variant := Option

	tests := []struct {
		name   string
		id     string
		update NodeUpdate
		check  func(t *testing.T, got Document)
	}{
		{
			name:   "Position",
			id:     "a",
			update: NodeUpdate{Position: &pos},
			check: func(t *testing.T, got Document) {
				n, _ := got.Node("a")
				if n.Position != pos {
					t.Errorf("position = %+v, want %+v", n.Position, pos)
				}
			},
		},
		{
			name:   "Text",
			id:     "a",
			update: NodeUpdate{Text: &text},
			check: func(t *testing.T, got Document) {
				n, _ := got.Node("a")
				if n.Text != "hello" {
					t.Errorf("text = %q, want hello", n.Text)
				}
			},
		},
		{
			name:   "Variant",
			id:     "a",
			update: NodeUpdate{Variant: &variant},
			check: func(t *testing.T, got Document) {
				n, _ := got.Node("a")
				if n.Variant != Option {
					t.Errorf("variant = %v, want Option", n.Variant)
				}
			},
		},
		{
			name:   "SizeRetracksPoints",
			id:     "a",
			update: NodeUpdate{Size: &Size{Width: 200, Height: 100}},
			check: func(t *testing.T, got Document) {
				n, _ := got.Node("a")
				in, _ := n.Point(InputPointID)
				out, _ := n.Point(OutputPointID)
				if in.Offset.Y != -50 {
					t.Errorf("input offset Y = %v, want -50", in.Offset.Y)
				}
				if out.Offset.Y != 50 {
					t.Errorf("output offset Y = %v, want 50", out.Offset.Y)
				}
			},
		},
		{
			name:   "ExplicitPointsWinOverRetrack",
			id:     "a",
			update: NodeUpdate{Size: &Size{Width: 10, Height: 10}, Points: []ConnectionPoint{{ID: "p"}}},
			check: func(t *testing.T, got Document) {
				n, _ := got.Node("a")
				if len(n.Points) != 1 || n.Points[0].ID != "p" {
					t.Errorf("points = %+v, want the explicit point", n.Points)
				}
			},
		},
		{
			name:   "UnknownIDNoOp",
			id:     "ghost",
			update: NodeUpdate{Text: &text},
			check: func(t *testing.T, got Document) {
				if !reflect.DeepEqual(got, twoNodeDoc()) {
					t.Error("document changed for an unknown node id")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := twoNodeDoc()
			snapshot := d.Clone()

			got := UpdateNode(d, tt.id, tt.update)

			tt.check(t, got)
			if !reflect.DeepEqual(d, snapshot) {
				t.Error("UpdateNode mutated its input")
			}
		})
	}
}

func TestNodeUpdateTouches(t *testing.T) {
	if (NodeUpdate{}).Touches() {
		t.Error("empty update reports Touches")
	}
	text := "x"
	if !(NodeUpdate{Text: &text}).Touches() {
		t.Error("text update does not report Touches")
	}
	if !(NodeUpdate{Points: []ConnectionPoint{}}).Touches() {
		t.Error("non-nil points update does not report Touches")
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	d := twoNodeDoc()
	var err error
	d, err = AddEdge(d, NewEdge("e1", "a", OutputPointID, "b", InputPointID))
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	d, err = AddEdge(d, NewEdge("e2", "b", OutputPointID, "a", InputPointID))
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	got := RemoveNode(d, "a")

	if _, ok := got.Node("a"); ok {
		t.Error("node a still present")
	}
	if len(got.Edges) != 0 {
		t.Errorf("edges = %d, want 0 after cascade", len(got.Edges))
	}
	if len(d.Edges) != 2 {
		t.Error("RemoveNode mutated its input")
	}
}

func TestRemoveRootResynthesized(t *testing.T) {
	d := twoNodeDoc()
	root, _ := d.RootNode()

	got := Normalize(RemoveNode(d, root.ID))

	if _, ok := got.RootNode(); !ok {
		t.Error("no root after removal and Normalize")
	}
}

func TestAddEdgeValidation(t *testing.T) {
	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{
			name:    "UnknownSourceNode",
			edge:    NewEdge("e", "ghost", OutputPointID, "b", InputPointID),
			wantErr: ErrUnknownSourceNode,
		},
		{
			name:    "UnknownTargetNode",
			edge:    NewEdge("e", "a", OutputPointID, "ghost", InputPointID),
			wantErr: ErrUnknownTargetNode,
		},
		{
			name:    "UnknownSourcePoint",
			edge:    NewEdge("e", "a", "nope", "b", InputPointID),
			wantErr: ErrUnknownSourcePoint,
		},
		{
			name:    "UnknownTargetPoint",
			edge:    NewEdge("e", "a", OutputPointID, "b", "nope"),
			wantErr: ErrUnknownTargetPoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := twoNodeDoc()

			got, err := AddEdge(d, tt.edge)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(got.Edges) != 0 {
				t.Errorf("edges = %d, want 0 on failed add", len(got.Edges))
			}
		})
	}
}

func TestAddEdgeDuplicateAbsorbed(t *testing.T) {
	d := twoNodeDoc()

	d, err := AddEdge(d, NewEdge("e1", "a", OutputPointID, "b", InputPointID))
	if err != nil {
		t.Fatalf("first AddEdge: %v", err)
	}

	got, err := AddEdge(d, NewEdge("e2", "a", OutputPointID, "b", InputPointID))
	if err != nil {
		t.Fatalf("duplicate AddEdge: %v", err)
	}
	if len(got.Edges) != 1 {
		t.Errorf("edges = %d, want 1 (duplicate absorbed)", len(got.Edges))
	}
	if got.Edges[0].ID != "e1" {
		t.Errorf("surviving edge = %q, want the original e1", got.Edges[0].ID)
	}
}

func TestAddEdgeDistinctPointsAllowed(t *testing.T) {
	d := twoNodeDoc()

	d, err := AddEdge(d, NewEdge("e1", "a", OutputPointID, "b", InputPointID))
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	// Same node pair, opposite direction: a different tuple.
	got, err := AddEdge(d, NewEdge("e2", "b", OutputPointID, "a", InputPointID))
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if len(got.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(got.Edges))
	}
}

func TestUpdateEdge(t *testing.T) {
	d := twoNodeDoc()
	d, _ = AddEdge(d, NewEdge("e1", "a", OutputPointID, "b", InputPointID))

	color := "#ff0000"
	got := UpdateEdge(d, "e1", EdgeUpdate{Color: &color})

	e, _ := got.Edge("e1")
	if e.Color != "#ff0000" {
		t.Errorf("color = %q, want #ff0000", e.Color)
	}

	if same := UpdateEdge(d, "ghost", EdgeUpdate{Color: &color}); !reflect.DeepEqual(same, d) {
		t.Error("document changed for an unknown edge id")
	}
}

func TestRemoveEdge(t *testing.T) {
	d := twoNodeDoc()
	d, _ = AddEdge(d, NewEdge("e1", "a", OutputPointID, "b", InputPointID))

	got := RemoveEdge(d, "e1")
	if len(got.Edges) != 0 {
		t.Errorf("edges = %d, want 0", len(got.Edges))
	}

	same := RemoveEdge(d, "ghost")
	if len(same.Edges) != 1 {
		t.Error("unknown edge id removed something")
	}
}
