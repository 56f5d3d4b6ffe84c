// Package history provides a generic bounded undo/redo controller with
// flat transactions for continuous gestures.
//
// A [History] wraps the authoritative current value of some edited state.
// Discrete edits go through [History.Push] and become undoable one-for-one.
// Continuous gestures (drag, resize, slider edits) are framed with
// [History.Begin] and [History.Commit]: every intermediate frame is applied
// with [History.Set], and the whole gesture collapses into a single history
// entry no matter how many frames occurred. [History.Cancel] abandons the
// gesture and restores the pre-gesture value.
//
// All operations are total: undoing with an empty stack, committing without
// an active transaction, or beginning twice are no-ops, never errors or
// panics.
//
// History is not safe for concurrent use without external synchronization;
// the editor drives it from a single event loop.
package history

// DefaultLimit is the undo/redo depth used when no limit is configured.
const DefaultLimit = 100

// History tracks a current value of type T together with bounded undo and
// redo stacks. T must be comparable because dirty checks use identity
// comparison, not deep equality: callers are expected to construct a fresh
// value (typically a new pointer) on every real change.
type History[T comparable] struct {
	current T
	undo    []T
	redo    []T
	limit   int

	anchor T
	inTx   bool
}

// New creates a history seeded with the given value. A non-positive limit
// falls back to [DefaultLimit].
func New[T comparable](initial T, limit int) *History[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History[T]{current: initial, limit: limit}
}

// Current returns the authoritative current value. Event callbacks read
// state through this accessor rather than a captured snapshot, so they can
// never observe a stale value.
func (h *History[T]) Current() T { return h.current }

// Set replaces the current value without touching either stack. It is used
// for continuous in-progress updates (every pointer-move frame of a drag)
// where only the final state should become undoable.
func (h *History[T]) Set(v T) { h.current = v }

// Push records the current value on the undo stack and replaces it with v.
// Any redo history is invalidated. Pushing a value identical to the current
// one is a no-op.
func (h *History[T]) Push(v T) {
	if v == h.current {
		return
	}
	h.undo = bound(append(h.undo, h.current), h.limit)
	h.redo = nil
	h.current = v
}

// Begin starts a transaction, recording the current value as the anchor.
// Transactions are flat: calling Begin while one is active is ignored.
func (h *History[T]) Begin() {
	if h.inTx {
		return
	}
	h.anchor = h.current
	h.inTx = true
}

// Commit ends the active transaction. If the current value changed since
// Begin, the anchor (the pre-transaction value, not any intermediate one)
// becomes a single undo entry and redo history is cleared. If nothing
// changed, history is untouched. Without an active transaction Commit is a
// no-op.
func (h *History[T]) Commit() {
	if !h.inTx {
		return
	}
	if h.current != h.anchor {
		h.undo = bound(append(h.undo, h.anchor), h.limit)
		h.redo = nil
	}
	h.clearTx()
}

// Cancel abandons the active transaction, restoring the current value to
// the anchor and discarding every intermediate Set. Neither stack is
// touched. Without an active transaction Cancel is a no-op.
func (h *History[T]) Cancel() {
	if !h.inTx {
		return
	}
	h.current = h.anchor
	h.clearTx()
}

// InTransaction reports whether a transaction is active.
func (h *History[T]) InTransaction() bool { return h.inTx }

// Undo steps back one entry and reports whether anything happened. An
// active transaction is silently abandoned first, without committing.
func (h *History[T]) Undo() bool {
	h.clearTx()
	if len(h.undo) == 0 {
		return false
	}
	last := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = bound(append(h.redo, h.current), h.limit)
	h.current = last
	return true
}

// Redo steps forward one entry and reports whether anything happened. An
// active transaction is silently abandoned first, without committing.
func (h *History[T]) Redo() bool {
	h.clearTx()
	if len(h.redo) == 0 {
		return false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = bound(append(h.undo, h.current), h.limit)
	h.current = last
	return true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History[T]) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History[T]) CanRedo() bool { return len(h.redo) > 0 }

// Reset clears both stacks and any active transaction without changing the
// current value. Used after loading a new document so that undo never
// crosses file boundaries.
func (h *History[T]) Reset() {
	h.undo = nil
	h.redo = nil
	h.clearTx()
}

func (h *History[T]) clearTx() {
	var zero T
	h.anchor = zero
	h.inTx = false
}

// bound evicts the oldest entries until the stack fits the limit.
func bound[T any](stack []T, limit int) []T {
	if len(stack) <= limit {
		return stack
	}
	return stack[len(stack)-limit:]
}
