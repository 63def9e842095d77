package services_test

import (
	"testing"

	"github.com/SscSPs/crypto_pulse/internal/adapters/render/memory"
	"github.com/SscSPs/crypto_pulse/internal/core/domain"
	"github.com/SscSPs/crypto_pulse/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPanel_MountIsIdempotent(t *testing.T) {
	engine := memory.NewEngine("map", 0, nil)
	panel := services.NewGeoPanel(engine, domain.MapRegion, nil, nil)

	_, mounted := panel.Config()
	assert.False(t, mounted)

	require.NoError(t, panel.Mount())
	require.NoError(t, panel.Mount())
	assert.Equal(t, 1, engine.LiveSurfaces())

	cfg, mounted := panel.Config()
	require.True(t, mounted)
	assert.Equal(t, domain.SurfaceKindMap, cfg.Kind)
	require.NotNil(t, cfg.Map)
	assert.Equal(t, "Global Snapshot", cfg.Title)

	panel.Teardown()
	panel.Teardown()
	assert.Equal(t, 0, engine.LiveSurfaces())
}

func TestGeoPanel_MountFailsWhenRegionBound(t *testing.T) {
	engine := memory.NewEngine("map", 0, nil)
	_, err := engine.CreateSurface(domain.MapRegion, domain.NewWorldMapConfig())
	require.NoError(t, err)

	panel := services.NewGeoPanel(engine, domain.MapRegion, nil, nil)

	assert.Error(t, panel.Mount())
	_, mounted := panel.Config()
	assert.False(t, mounted)
}

func TestLoadingProjector_OnlyLiveGenerationClears(t *testing.T) {
	projector := services.NewLoadingProjector(nil)
	var flips []bool
	projector.OnChange(func(on bool) { flips = append(flips, on) })

	projector.Start(1)
	projector.Start(2)
	assert.False(t, projector.Finish(1))
	assert.True(t, projector.Loading())

	assert.True(t, projector.Finish(2))
	assert.False(t, projector.Loading())
	assert.False(t, projector.Finish(2))

	projector.Start(3)
	projector.Reset()
	assert.False(t, projector.Loading())
	assert.Equal(t, []bool{true, false, true, false}, flips)
}
