package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	enabled := &stubFeature{name: "compare", enabled: true}
	disabled := &stubFeature{name: "other"}

	mgr := NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAllError(t *testing.T) {
	failing := &stubFeature{name: "compare", enabled: true, err: errors.New("boom")}

	mgr := NewManager()
	mgr.Register(failing)

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "failed to load feature compare")
}

func TestManager_Duplicate(t *testing.T) {
	mgr := NewManager()
	mgr.Register(&stubFeature{name: "compare", enabled: true})
	mgr.Register(&stubFeature{name: "compare", enabled: true})

	assert.Error(t, mgr.LoadAll(fiber.New()))
}
