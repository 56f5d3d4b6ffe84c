package history

import "testing"

func TestPushUndoRedo(t *testing.T) {
	h := New(1, 0)

	h.Push(2)
	h.Push(3)

	if got := h.Current(); got != 3 {
		t.Fatalf("Current = %d, want 3", got)
	}
	if !h.CanUndo() || h.CanRedo() {
		t.Fatalf("CanUndo = %v, CanRedo = %v, want true/false", h.CanUndo(), h.CanRedo())
	}

	if !h.Undo() {
		t.Fatal("Undo returned false with entries available")
	}
	if got := h.Current(); got != 2 {
		t.Errorf("after Undo, Current = %d, want 2", got)
	}

	if !h.Redo() {
		t.Fatal("Redo returned false with entries available")
	}
	if got := h.Current(); got != 3 {
		t.Errorf("after Redo, Current = %d, want 3", got)
	}
}

func TestUndoRedoEmptyAreNoOps(t *testing.T) {
	h := New("a", 0)

	if h.Undo() {
		t.Error("Undo on empty stack returned true")
	}
	if h.Redo() {
		t.Error("Redo on empty stack returned true")
	}
	if got := h.Current(); got != "a" {
		t.Errorf("Current = %q, want a", got)
	}
}

func TestPushIdenticalValueIgnored(t *testing.T) {
	h := New(7, 0)

	h.Push(7)

	if h.CanUndo() {
		t.Error("pushing the current value created an undo entry")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := New(1, 0)
	h.Push(2)
	h.Undo()

	if !h.CanRedo() {
		t.Fatal("expected redo entry after Undo")
	}
	h.Push(3)
	if h.CanRedo() {
		t.Error("Push did not clear the redo stack")
	}
}

func TestSetDoesNotRecord(t *testing.T) {
	h := New(1, 0)

	h.Set(2)
	h.Set(3)

	if got := h.Current(); got != 3 {
		t.Errorf("Current = %d, want 3", got)
	}
	if h.CanUndo() {
		t.Error("Set created undo entries")
	}
}

func TestTransactionCollapsesToOneEntry(t *testing.T) {
	h := New(0, 0)

	h.Begin()
	for v := 1; v <= 50; v++ {
		h.Set(v)
	}
	h.Commit()

	if got := h.Current(); got != 50 {
		t.Fatalf("Current = %d, want 50", got)
	}
	if !h.Undo() {
		t.Fatal("Undo returned false after committed transaction")
	}
	if got := h.Current(); got != 0 {
		t.Errorf("after Undo, Current = %d, want the pre-transaction value 0", got)
	}
	if h.Undo() {
		t.Error("transaction produced more than one undo entry")
	}
}

func TestCommitWithoutChangeIsNoOp(t *testing.T) {
	h := New(5, 0)

	h.Begin()
	h.Commit()

	if h.CanUndo() {
		t.Error("empty transaction created an undo entry")
	}

	// Set back to the anchor value before committing: also clean.
	h.Begin()
	h.Set(6)
	h.Set(5)
	h.Commit()

	if h.CanUndo() {
		t.Error("transaction ending at the anchor value created an undo entry")
	}
}

func TestCancelRestoresAnchor(t *testing.T) {
	h := New(10, 0)
	h.Push(20)

	h.Begin()
	h.Set(99)
	h.Cancel()

	if got := h.Current(); got != 20 {
		t.Errorf("after Cancel, Current = %d, want 20", got)
	}
	if h.CanRedo() {
		t.Error("Cancel touched the redo stack")
	}

	// The earlier discrete edit is still undoable.
	if !h.Undo() || h.Current() != 10 {
		t.Errorf("after Undo, Current = %d, want 10", h.Current())
	}
}

func TestBeginIsFlat(t *testing.T) {
	h := New(1, 0)

	h.Begin()
	h.Set(2)
	h.Begin() // ignored: anchor stays at 1
	h.Set(3)
	h.Commit()

	h.Undo()
	if got := h.Current(); got != 1 {
		t.Errorf("after Undo, Current = %d, want the outer anchor 1", got)
	}
}

func TestUndoAbandonsActiveTransaction(t *testing.T) {
	h := New(1, 0)
	h.Push(2)

	h.Begin()
	h.Set(99)

	if !h.Undo() {
		t.Fatal("Undo returned false")
	}
	if h.InTransaction() {
		t.Error("transaction still active after Undo")
	}
	if got := h.Current(); got != 1 {
		t.Errorf("Current = %d, want 1 (in-progress frame not committed)", got)
	}
}

func TestCommitWithoutBeginIsNoOp(t *testing.T) {
	h := New(1, 0)
	h.Commit()
	h.Cancel()

	if h.CanUndo() || h.CanRedo() {
		t.Error("stray Commit/Cancel touched the stacks")
	}
}

func TestBoundedUndoEvictsOldest(t *testing.T) {
	h := New(0, 3)
	for v := 1; v <= 10; v++ {
		h.Push(v)
	}

	// Only the newest three entries survive.
	values := []int{}
	for h.Undo() {
		values = append(values, h.Current())
	}

	want := []int{9, 8, 7}
	if len(values) != len(want) {
		t.Fatalf("undo depth = %d, want %d", len(values), len(want))
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("undo step %d = %d, want %d", i, values[i], want[i])
		}
	}
}

func TestResetClearsStacksKeepsCurrent(t *testing.T) {
	h := New(1, 0)
	h.Push(2)
	h.Undo()
	h.Begin()

	h.Reset()

	if h.CanUndo() || h.CanRedo() || h.InTransaction() {
		t.Error("Reset left history state behind")
	}
	if got := h.Current(); got != 1 {
		t.Errorf("Current = %d, want 1", got)
	}
}

func TestPointerIdentityDirtyCheck(t *testing.T) {
	type state struct{ n int }
	a := &state{n: 1}
	b := &state{n: 1}

	h := New(a, 0)
	h.Push(a) // same pointer: ignored
	if h.CanUndo() {
		t.Error("pushing the same pointer created an undo entry")
	}

	h.Push(b) // equal contents, distinct pointer: recorded
	if !h.CanUndo() {
		t.Error("pushing a distinct pointer was ignored")
	}
}
