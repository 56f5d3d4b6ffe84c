package doc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidFormat is returned by the deserialization functions when the
// input is not a document: malformed JSON, or missing nodes/edges arrays.
// Loading is all-or-nothing - a failed load never yields a partial
// document.
var ErrInvalidFormat = errors.New("invalid document format")

// rawDocument distinguishes absent arrays from empty ones during decoding.
type rawDocument struct {
	Nodes *[]Node        `json:"nodes"`
	Edges *[]Edge        `json:"edges"`
	View  *ViewState     `json:"viewState"`
	Meta  map[string]any `json:"metadata"`
}

// MarshalDocument converts a document to pretty-printed JSON. Output is
// deterministic and human-diffable: struct field order is fixed and the
// node/edge order is preserved as authored.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument decodes JSON bytes into a normalized document.
// See [ReadDocument] for the repair and validation behavior.
func UnmarshalDocument(data []byte) (Document, error) {
	return ReadDocument(bytes.NewReader(data))
}

// ReadDocument decodes a JSON document from r.
//
// The input must be an object with "nodes" and "edges" arrays; anything
// else fails with an error wrapping [ErrInvalidFormat]. Each decoded node
// passes through [RepairNode] (backward-compatible field repair) and the
// whole document through [Normalize], so a successful read always yields a
// document satisfying every invariant.
//
// ReadDocument does not close r.
func ReadDocument(r io.Reader) (Document, error) {
	var raw rawDocument
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("%w: decode: %v", ErrInvalidFormat, err)
	}
	if raw.Nodes == nil {
		return Document{}, fmt.Errorf("%w: missing nodes array", ErrInvalidFormat)
	}
	if raw.Edges == nil {
		return Document{}, fmt.Errorf("%w: missing edges array", ErrInvalidFormat)
	}

	d := Document{
		Nodes: *raw.Nodes,
		Edges: *raw.Edges,
		View:  raw.View,
		Meta:  raw.Meta,
	}
	for i, n := range d.Nodes {
		d.Nodes[i] = RepairNode(n)
	}
	return Normalize(d), nil
}

// WriteDocument writes a document as pretty-printed JSON to w.
func WriteDocument(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDocumentFile reads a JSON file and returns the normalized document.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// WriteDocumentFile writes a document to a JSON file with 0644 permissions.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(d, f)
}
