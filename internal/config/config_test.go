package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gobfd/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
results: data/forces.csv
output: out
chain: [10, 20]
hatching:
  density2d: 3
scale:
  shear: 4
geometry:
  nodes:
    "1": [0, 0, 0]
    "2": [5, 0, 0]
    "3": [10, 0, 0]
  members:
    "10": [1, 2]
    "20": [2, 3]
  girders:
    - name: Girder A
      elements: [10, 20]
      nodes: [1, 2, 3]
      color: red
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gobfd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "data/forces.csv", cfg.Results)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, []int{10, 20}, cfg.Chain)
	assert.Equal(t, 3, cfg.Hatching.Density2D)
	assert.Equal(t, 8, cfg.Hatching.Density3D)
	assert.Equal(t, 0.5, cfg.Scale.Moment)
	assert.Equal(t, 4.0, cfg.Scale.Shear)
	assert.Equal(t, 5, cfg.Top)

	m, err := cfg.Geometry.Model()
	require.NoError(t, err)
	g, ok := m.Girder("Girder A")
	require.True(t, ok)
	assert.Equal(t, []int{10, 20}, g.Elements)
	pts, err := m.GirderCoordinates(g)
	require.NoError(t, err)
	assert.Equal(t, geometry.Vec3{X: 10}, pts[2])
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GOBFD_TOP", "3")
	t.Setenv("GOBFD_HATCHING_DENSITY3D", "12")

	cfg, err := Load(writeConfig(t, "output: out\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Top)
	assert.Equal(t, 12, cfg.Hatching.Density3D)
	assert.Equal(t, DefaultChain, cfg.Chain)
	// no geometry block: the sample bridge
	assert.Len(t, cfg.Geometry.Girders, 5)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "top: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(writeConfig(t, "hatching:\n  density2d: -1\n"))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "density2d")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Chain = nil
	cfg.Output = ""
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "chain is empty")
	assert.Contains(t, err.Error(), "output directory is empty")
}

func TestGeometryModelErrors(t *testing.T) {
	bad := Geometry{Nodes: map[string][]float64{"x": {0, 0, 0}}}
	_, err := bad.Model()
	assert.ErrorIs(t, err, ErrInvalid)

	bad = Geometry{Nodes: map[string][]float64{"1": {0, 0}}}
	_, err = bad.Model()
	assert.ErrorIs(t, err, ErrInvalid)

	bad = Geometry{
		Nodes:   map[string][]float64{"1": {0, 0, 0}},
		Members: map[string][]int{"7": {1, 2}},
	}
	_, err = bad.Model()
	assert.ErrorIs(t, err, geometry.ErrUnknownNode)
}

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry()
	assert.Len(t, g.Nodes, 50)
	assert.Len(t, g.Members, 85)
	require.Len(t, g.Girders, 5)

	central := g.Girders[2]
	assert.Equal(t, "Girder 3", central.Name)
	assert.Equal(t, "green", central.Color)
	assert.Equal(t, DefaultChain, central.Elements)
	assert.Equal(t, []int{3, 13, 18, 23, 28, 33, 38, 43, 48, 8}, central.Nodes)
	assert.Equal(t, []int{1, 11, 16, 21, 26, 31, 36, 41, 46, 6}, g.Girders[0].Nodes)
	assert.Equal(t, []int{17, 26, 35, 44, 53, 62, 71, 80, 85}, g.Girders[4].Elements)

	m, err := g.Model()
	require.NoError(t, err)
	assert.Empty(t, m.CheckConnectivity())
	assert.Len(t, m.Frame(), 85)

	b := m.Bounds()
	assert.Equal(t, geometry.Vec3{}, b.Min)
	assert.Equal(t, geometry.Vec3{X: 45, Z: 10}, b.Max)
}
