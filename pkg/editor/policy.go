package editor

import "github.com/trig29/Flowchart-Json-Editor/pkg/doc"

// Field identifies a settable node field for history policy decisions.
type Field int

const (
	FieldPosition Field = iota
	FieldSize
	FieldVariant
	FieldText
	FieldActor
	FieldPoints
)

// trackedFields is the history allow-list. Geometry and type changes are
// undoable; free-text content (node text, actor) is immediate-only so that
// typing never produces one undo step per keystroke - text inputs have
// their own native undo.
//
// The list is a product decision, not a derivable rule. Keep it as a
// table; do not infer membership from field structure.
var trackedFields = map[Field]bool{
	FieldPosition: true,
	FieldSize:     true,
	FieldVariant:  true,
	FieldPoints:   true,
	FieldText:     false,
	FieldActor:    false,
}

// Tracked reports whether writes to the field are history-worthy.
func Tracked(f Field) bool { return trackedFields[f] }

// isTracked reports whether the update touches at least one history-worthy
// field.
func isTracked(u doc.NodeUpdate) bool {
	switch {
	case u.Position != nil && Tracked(FieldPosition),
		u.Size != nil && Tracked(FieldSize),
		u.Variant != nil && Tracked(FieldVariant),
		u.Points != nil && Tracked(FieldPoints),
		u.Text != nil && Tracked(FieldText),
		u.Actor != nil && Tracked(FieldActor):
		return true
	}
	return false
}

// restrictRootUpdate strips every field the root node does not accept.
// The root is immutable except for position, size and connection points;
// writes to anything else are dropped silently rather than rejected.
func restrictRootUpdate(u doc.NodeUpdate) doc.NodeUpdate {
	return doc.NodeUpdate{
		Position: u.Position,
		Size:     u.Size,
		Points:   u.Points,
	}
}
