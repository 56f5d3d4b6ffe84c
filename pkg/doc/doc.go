// Package doc implements the document state model of the dialogue
// flowchart editor: the node/edge graph, its invariant-enforcing
// normalization pass, the pure mutation operations, and the JSON wire
// format.
//
// # Data Model
//
// A [Document] is the whole editable unit: typed nodes, directed edges
// between their connection points, and a persisted pan/zoom snapshot.
// Node types form the closed [Variant] set (Root, Dialogue, Option,
// ChoiceFlag, Comment). Exactly one root exists per normalized document.
//
// Two node fields are derived, never authored: the background color is a
// projection of the variant, and a ChoiceFlag's child count is the number
// of edges leaving it. [Normalize] rewrites both on every pass.
//
// # Mutation
//
// Documents are values. Every operation ([AddNode], [UpdateNode],
// [RemoveNode], [AddEdge], [RemoveEdge], ...) returns a new document and
// never modifies its input, so snapshots held by the undo history can
// never be corrupted by later edits. Callers run [Normalize] on the result
// before committing it.
//
// # Wire Format
//
// Documents persist as pretty-printed JSON:
//
//	{
//	  "nodes": [
//	    {"id": "root", "variant": "root", "text": "dialogue-start", ...}
//	  ],
//	  "edges": [
//	    {"id": "e1", "sourceNodeId": "root", "sourcePointId": "out",
//	     "targetNodeId": "d1", "targetPointId": "in"}
//	  ],
//	  "viewState": {"x": 0, "y": 0, "scale": 1}
//	}
//
// Common operations:
//
//	d, _ := doc.ReadDocumentFile("story.json")   // File → Document
//	doc.WriteDocumentFile(d, "story.json")       // Document → File
//	data, _ := doc.MarshalDocument(d)            // Document → []byte
//	d, _ = doc.UnmarshalDocument(data)           // []byte → Document
//
// Deserialization repairs old files ([RepairNode]) and normalizes once;
// a successful load always yields a structurally valid document.
//
// # Concurrency
//
// All functions are pure and safe for concurrent use on distinct
// documents. A single document value must not be mutated concurrently,
// which the value semantics already discourage.
package doc
