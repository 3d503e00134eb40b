package service

import "github.com/trench-tools/trenchmate/internal/gamesession/domain"

// maxUndoDepth bounds the past stack; the oldest snapshot is evicted
// first once the stack is full.
const maxUndoDepth = 50

// history holds the undo/redo snapshots for one live session. It is
// process-local and never persisted: snapshots are discarded when the
// turn advances or the session ends.
type history struct {
	past   [][]domain.ModelState
	future [][]domain.ModelState
}

// push records a pre-mutation snapshot and invalidates the redo stack.
func (h *history) push(snapshot []domain.ModelState) {
	if len(h.past) >= maxUndoDepth {
		h.past = h.past[len(h.past)-maxUndoDepth+1:]
	}
	h.past = append(h.past, snapshot)
	h.future = nil
}

// undo exchanges the current state for the most recent past snapshot.
// The boolean reports whether an undo was available.
func (h *history) undo(current []domain.ModelState) ([]domain.ModelState, bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	previous := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return previous, true
}

// redo exchanges the current state for the most recent future snapshot.
func (h *history) redo(current []domain.ModelState) ([]domain.ModelState, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return next, true
}

// clear drops both stacks.
func (h *history) clear() {
	h.past = nil
	h.future = nil
}
