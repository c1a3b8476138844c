package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_ListNewestFirst(t *testing.T) {
	h := newHistory(2)
	h.put(&Run{ID: "a"})
	h.put(&Run{ID: "b"})
	h.put(&Run{ID: "c"})

	runs := h.list()
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	_, ok := h.get("a")
	assert.False(t, ok)
}

func TestHistory_StoresSnapshots(t *testing.T) {
	h := newHistory(5)
	run := &Run{ID: "a", Status: StatusRunning}
	h.put(run)

	run.Status = StatusCompleted
	stored, ok := h.get("a")
	require.True(t, ok)
	assert.Equal(t, StatusRunning, stored.Status)

	h.put(run)
	stored, _ = h.get("a")
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.Len(t, h.list(), 1)

	stored.Status = StatusFailed
	again, _ := h.get("a")
	assert.Equal(t, StatusCompleted, again.Status)
}

func TestNewHistory_MinimumSize(t *testing.T) {
	h := newHistory(0)
	h.put(&Run{ID: "a"})
	h.put(&Run{ID: "b"})
	assert.Len(t, h.list(), 1)
}
