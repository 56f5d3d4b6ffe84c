// Package editor ties the document model to the undo/redo controller and
// applies the application's history policy.
//
// The editor owns the authoritative current document. UI layers read it
// through [Editor.Current] and mutate it through the operation methods,
// which normalize every structural change before committing it. Whether a
// change lands as a separate undo entry is decided by the policy table in
// policy.go, not by the caller.
package editor

import (
	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
	"github.com/trig29/Flowchart-Json-Editor/pkg/errors"
	"github.com/trig29/Flowchart-Json-Editor/pkg/history"
	"github.com/trig29/Flowchart-Json-Editor/pkg/observability"
)

// Editor is a single-document editing session. It is driven from one event
// loop and is not safe for concurrent use.
type Editor struct {
	hist *history.History[*doc.Document]
}

// New creates an editor session holding a fresh single-root document.
// A non-positive historyLimit falls back to the package default.
func New(historyLimit int) *Editor {
	d := doc.New()
	return &Editor{hist: history.New(&d, historyLimit)}
}

// Current returns the authoritative current document. The returned value
// is a read-only view; use the mutation methods to change it.
func (ed *Editor) Current() doc.Document { return *ed.hist.Current() }

// Load replaces the current document and clears all history. Undo never
// crosses document boundaries.
func (ed *Editor) Load(d doc.Document) {
	nd := doc.Normalize(d)
	ed.hist.Set(&nd)
	ed.hist.Reset()
}

// AddNode creates a Dialogue node at the given position, adds it to the
// document and records one history entry. The created node is returned.
func (ed *Editor) AddNode(pos doc.Point) doc.Node {
	n := doc.NewNode("", pos, doc.Size{})
	next := doc.Normalize(doc.AddNode(ed.Current(), n))
	ed.commit(next, true)
	observability.Editor().OnMutation("addNode")
	n2, _ := next.Node(n.ID)
	return n2
}

// RemoveNode deletes the node and every incident edge as one history
// entry. Deleting the root is permitted; normalization resynthesizes one.
// Unknown ids are a no-op and cost no history entry.
func (ed *Editor) RemoveNode(id string) {
	cur := ed.Current()
	if _, ok := cur.Node(id); !ok {
		return
	}
	next := doc.Normalize(doc.RemoveNode(cur, id))
	ed.commit(next, true)
	observability.Editor().OnMutation("removeNode")
}

// Connect adds an edge between two connection points as one history entry.
// A duplicate connection is absorbed silently (no history entry, nil
// error); unknown endpoints fail with the doc package sentinels.
func (ed *Editor) Connect(from, fromPoint, to, toPoint string) (doc.Edge, error) {
	e := doc.NewEdge("", from, fromPoint, to, toPoint)
	cur := ed.Current()
	next, err := doc.AddEdge(cur, e)
	if err != nil {
		return doc.Edge{}, err
	}
	if len(next.Edges) == len(cur.Edges) {
		// Duplicate endpoint tuple: nothing happened.
		return doc.Edge{}, nil
	}
	ed.commit(doc.Normalize(next), true)
	observability.Editor().OnMutation("addEdge")
	return e, nil
}

// Disconnect removes an edge by id as one history entry. Unknown ids are a
// no-op and cost no history entry.
func (ed *Editor) Disconnect(edgeID string) {
	cur := ed.Current()
	if _, ok := cur.Edge(edgeID); !ok {
		return
	}
	next := doc.Normalize(doc.RemoveEdge(cur, edgeID))
	ed.commit(next, true)
	observability.Editor().OnMutation("removeEdge")
}

// SetEdgeColor recolors an edge. Edge color changes are history-worthy.
// The color must be a hex color (or empty for the default); unknown edge
// ids are a no-op and cost no history entry.
func (ed *Editor) SetEdgeColor(edgeID, color string) error {
	if err := errors.ValidateColor(color); err != nil {
		return err
	}
	cur := ed.Current()
	if _, ok := cur.Edge(edgeID); !ok {
		return nil
	}
	next := doc.UpdateEdge(cur, edgeID, doc.EdgeUpdate{Color: &color})
	ed.commit(next, true)
	observability.Editor().OnMutation("updateEdge")
	return nil
}

// Apply merges a node update into the current document. Root nodes accept
// only position, size and connection point writes; other fields are
// silently dropped. Unknown node ids are a no-op and cost no history
// entry. Whether the change becomes an undo entry follows the policy
// table - free-text writes never do.
func (ed *Editor) Apply(nodeID string, u doc.NodeUpdate) {
	cur := ed.Current()
	n, ok := cur.Node(nodeID)
	if !ok {
		return
	}
	if n.IsRoot() {
		u = restrictRootUpdate(u)
	}
	if !u.Touches() {
		return
	}
	next := doc.Normalize(doc.UpdateNode(cur, nodeID, u))
	ed.commit(next, isTracked(u))
	observability.Editor().OnMutation("updateNode")
}

// BeginGesture starts a continuous interaction (drag, resize). Every
// update until EndGesture is applied immediately; the whole gesture
// collapses into at most one undo entry.
func (ed *Editor) BeginGesture() { ed.hist.Begin() }

// EndGesture commits the active gesture as one undo entry, or none if
// nothing changed.
func (ed *Editor) EndGesture() { ed.hist.Commit() }

// CancelGesture abandons the active gesture, restoring the pre-gesture
// document.
func (ed *Editor) CancelGesture() { ed.hist.Cancel() }

// Undo steps back one history entry and reports whether anything happened.
func (ed *Editor) Undo() bool {
	ok := ed.hist.Undo()
	if ok {
		observability.Editor().OnHistory("undo")
	}
	return ok
}

// Redo steps forward one history entry and reports whether anything
// happened.
func (ed *Editor) Redo() bool {
	ok := ed.hist.Redo()
	if ok {
		observability.Editor().OnHistory("redo")
	}
	return ok
}

// CanUndo reports whether an undo entry exists.
func (ed *Editor) CanUndo() bool { return ed.hist.CanUndo() }

// CanRedo reports whether a redo entry exists.
func (ed *Editor) CanRedo() bool { return ed.hist.CanRedo() }

// SetView replaces the persisted pan/zoom snapshot. View changes carry no
// structural invariant and are never undoable.
func (ed *Editor) SetView(v doc.ViewState) {
	next := ed.Current().Clone()
	next.View = &v
	ed.hist.Set(&next)
}

// commit installs the next document. Inside a gesture everything is
// immediate - the gesture boundary decides history. Outside one, tracked
// changes push an undo entry and untracked ones replace in place.
func (ed *Editor) commit(next doc.Document, tracked bool) {
	ptr := &next
	if ed.hist.InTransaction() || !tracked {
		ed.hist.Set(ptr)
		return
	}
	ed.hist.Push(ptr)
}
