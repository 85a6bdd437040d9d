package loader_test

import (
	"fmt"
	"testing"

	"price-manager/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type testFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *testFeature) Name() string { return f.name }

func (f *testFeature) IsEnabled() bool { return f.enabled }

func (f *testFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()

	enabled := &testFeature{name: "pricing", enabled: true}
	disabled := &testFeature{name: "disabled", enabled: false}

	mgr := loader.NewManager()
	mgr.Register(enabled)
	mgr.Register(disabled)

	err := mgr.LoadAll(app)
	assert.NoError(t, err)
	assert.True(t, enabled.loaded)
	assert.False(t, disabled.loaded)
}

func TestManager_LoadAll_Error(t *testing.T) {
	app := fiber.New()

	broken := &testFeature{name: "broken", enabled: true, loadErr: fmt.Errorf("boom")}

	mgr := loader.NewManager()
	mgr.Register(broken)

	err := mgr.LoadAll(app)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
