package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	"github.com/trig29/Flowchart-Json-Editor/pkg/doc"
)

// sampleDoc builds a small normalized document for store fixtures.
func sampleDoc(t *testing.T) doc.Document {
	t.Helper()
	d := doc.New()
	d = doc.AddNode(d, doc.NewNode("a", doc.Point{X: 100, Y: 400}, doc.Size{}))
	d, err := doc.AddEdge(d, doc.NewEdge("e1", doc.RootNodeID, doc.OutputPointID, "a", doc.InputPointID))
	if err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	return doc.Normalize(d)
}

// storeUnderTest builds each backend that needs no external service.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return map[string]Store{
		"File":   fs,
		"Memory": NewMemoryStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, st := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := sampleDoc(t)

			if err := st.Save(ctx, "campaign", want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := st.Load(ctx, "campaign")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip changed document:\n got: %+v\nwant: %+v", got, want)
			}
		})
	}
}

func TestStoreLoadMissing(t *testing.T) {
	for name, st := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := st.Load(context.Background(), "absent")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, st := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if err := st.Save(ctx, "doomed", sampleDoc(t)); err != nil {
				t.Fatalf("Save: %v", err)
			}

			if err := st.Delete(ctx, "doomed"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := st.Load(ctx, "doomed"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load after Delete: err = %v, want ErrNotFound", err)
			}

			// Deleting a missing document is not an error.
			if err := st.Delete(ctx, "doomed"); err != nil {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	for name, st := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			d := sampleDoc(t)
			for _, n := range []string{"alpha", "beta", "gamma"} {
				if err := st.Save(ctx, n, d); err != nil {
					t.Fatalf("Save %s: %v", n, err)
				}
			}

			names, err := st.List(ctx)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			sort.Strings(names)
			want := []string{"alpha", "beta", "gamma"}
			if !reflect.DeepEqual(names, want) {
				t.Errorf("List = %v, want %v", names, want)
			}
		})
	}
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	d := sampleDoc(t)
	if err := st.Save(ctx, "iso", d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the saved value must not leak into the store.
	d.Nodes[0].Text = "tampered"

	got, err := st.Load(ctx, "iso")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Nodes[0].Text == "tampered" {
		t.Error("store shares memory with the caller's document")
	}

	// Mutating a loaded value must not affect later loads.
	got.Nodes[0].Text = "also tampered"
	again, _ := st.Load(ctx, "iso")
	if again.Nodes[0].Text == "also tampered" {
		t.Error("loads share memory between callers")
	}
}

func TestFileStoreKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := st.Save(ctx, "doc", doc.New()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := st.Save(ctx, "doc", sampleDoc(t)); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "doc.json.bak")); err != nil {
		t.Errorf("backup file missing: %v", err)
	}

	// The backup holds the previous version.
	prev, err := doc.ReadDocumentFile(filepath.Join(dir, "doc.json.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if len(prev.Nodes) != 1 {
		t.Errorf("backup nodes = %d, want the first version's 1", len(prev.Nodes))
	}
}

func TestFileStoreDeleteRemovesBackup(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	_ = st.Save(ctx, "doc", doc.New())
	_ = st.Save(ctx, "doc", sampleDoc(t))
	if err := st.Delete(ctx, "doc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, f := range []string{"doc.json", "doc.json.bak"} {
		if _, err := os.Stat(filepath.Join(dir, f)); !os.IsNotExist(err) {
			t.Errorf("%s still present after Delete", f)
		}
	}
}

func TestFileStoreListIgnoresNonDocuments(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	_ = st.Save(ctx, "one", doc.New())
	_ = st.Save(ctx, "one", sampleDoc(t)) // leaves one.json.bak behind
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "one" {
		t.Errorf("List = %v, want [one]", names)
	}
}
