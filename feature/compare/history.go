package compare

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// history keeps the most recent runs by id.
type history struct {
	mu    sync.RWMutex
	runs  map[string]*Run
	order []string
	size  int

	// sf collapses identical concurrent requests into one run.
	sf singleflight.Group
}

func newHistory(size int) *history {
	if size <= 0 {
		size = 1
	}
	return &history{runs: make(map[string]*Run, size), size: size}
}

// put stores a snapshot of run, evicting the oldest run when full.
func (h *history) put(run *Run) {
	snapshot := *run

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.runs[run.ID]; !exists {
		h.order = append(h.order, run.ID)
	}
	h.runs[run.ID] = &snapshot

	for len(h.order) > h.size {
		delete(h.runs, h.order[0])
		h.order = h.order[1:]
	}
}

func (h *history) get(id string) (*Run, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	run, ok := h.runs[id]
	if !ok {
		return nil, false
	}
	snapshot := *run
	return &snapshot, true
}

// list returns the stored runs, newest first.
func (h *history) list() []Run {
	h.mu.RLock()
	defer h.mu.RUnlock()

	runs := make([]Run, 0, len(h.order))
	for i := len(h.order) - 1; i >= 0; i-- {
		runs = append(runs, *h.runs[h.order[i]])
	}
	return runs
}
