package spatial

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gobfd/internal/diagram"
	"github.com/alexiusacademia/gobfd/internal/geometry"
	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"
)

func testBridge() (*geometry.Model, *results.Table) {
	nodes := map[int]geometry.Vec3{
		1: {X: 0, Z: 0}, 2: {X: 5, Z: 0}, 3: {X: 10, Z: 0},
		4: {X: 0, Z: 3}, 5: {X: 5, Z: 3}, 6: {X: 10, Z: 3},
	}
	members := map[int]geometry.Member{
		11: {Start: 1, End: 2}, 12: {Start: 2, End: 3},
		21: {Start: 4, End: 5}, 22: {Start: 5, End: 6},
		31: {Start: 1, End: 4}, 32: {Start: 3, End: 6},
	}
	girders := []geometry.Girder{
		{Name: "Girder 1", Elements: []int{11, 12}, Nodes: []int{1, 2, 3}, Color: "red"},
		{Name: "Girder 2", Elements: []int{21, 22}, Nodes: []int{4, 5, 6}, Color: "#0000ff"},
	}

	tbl := results.NewTable()
	for _, id := range []int{11, 12, 21, 22} {
		tbl.Set(id, "Mz_i", float64(id))
		tbl.Set(id, "Mz_j", float64(id)+1)
		tbl.Set(id, "Vy_i", -float64(id))
		tbl.Set(id, "Vy_j", -float64(id)-1)
	}
	return geometry.NewModel(nodes, members, girders), tbl
}

func TestExtrude(t *testing.T) {
	model, tbl := testBridge()
	g, _ := model.Girder("Girder 1")

	e, err := Extrude(model, tbl, g, diagram.Moment, 0.5, 1)
	require.NoError(t, err)

	assert.Equal(t, []float64{11, 12, 13}, e.Diagram.Values)
	assert.Equal(t, []geometry.Vec3{
		{X: 0, Y: 5.5, Z: 0},
		{X: 5, Y: 6, Z: 0},
		{X: 10, Y: 6.5, Z: 0},
	}, e.Points)

	require.Len(t, e.Strokes, 2*3)
	assert.Equal(t, Stroke{Base: geometry.Vec3{X: 2.5}, Tip: geometry.Vec3{X: 2.5, Y: 5.75}}, e.Strokes[1])
	for _, st := range e.Strokes {
		assert.Equal(t, 0.0, st.Base.Y)
		assert.Equal(t, st.Base.X, st.Tip.X)
		assert.Equal(t, st.Base.Z, st.Tip.Z)
	}
}

func TestExtrudeErrors(t *testing.T) {
	model, tbl := testBridge()
	g, _ := model.Girder("Girder 2")

	_, err := Extrude(model, tbl, g, "Tx", 1, 1)
	assert.ErrorIs(t, err, diagram.ErrMissingComponent)
	assert.Contains(t, err.Error(), "Girder 2")

	_, err = Extrude(model, tbl, g, diagram.Moment, 1, -1)
	assert.ErrorIs(t, err, diagram.ErrInvalidDensity)

	short := geometry.Girder{Name: "short", Elements: []int{11, 12}, Nodes: []int{1, 2}}
	_, err = Extrude(model, tbl, short, diagram.Moment, 1, 1)
	assert.Error(t, err)

	unknown := geometry.Girder{Name: "ghost", Elements: []int{11}, Nodes: []int{1, 99}}
	_, err = Extrude(model, tbl, unknown, diagram.Moment, 1, 1)
	assert.ErrorIs(t, err, geometry.ErrUnknownNode)
}

func TestExtrudeAll(t *testing.T) {
	model, tbl := testBridge()

	all, err := ExtrudeAll(model, tbl, diagram.Shear, 2, 8)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Girder 2", all[1].Girder.Name)
	assert.Equal(t, -42.0, all[1].Points[0].Y)

	model2 := geometry.NewModel(nil, nil, []geometry.Girder{{Name: "g", Elements: []int{99}, Nodes: []int{1, 2}}})
	_, err = ExtrudeAll(model2, tbl, diagram.Shear, 2, 8)
	assert.ErrorIs(t, err, results.ErrUnknownElement)
}

func TestProjector(t *testing.T) {
	box := r3.NewBox(0, 0, 0, 10, 10, 10)

	// looking down -Z with Y up gives a plain XY view
	p := NewProjector(Camera{Eye: geometry.Vec3{Z: 1}, Up: geometry.Vec3{Y: 1}}, geometry.Vec3{X: 1, Y: 1, Z: 1}, box)
	x, y := p.Project(geometry.Vec3{X: 10, Y: 0, Z: 5})
	assert.InDelta(t, 0.5, x, 1e-12)
	assert.InDelta(t, -0.5, y, 1e-12)

	// the centre of the box projects to the origin from any camera
	p = NewProjector(DefaultCamera, DefaultAspect, box)
	x, y = p.Project(geometry.Vec3{X: 5, Y: 5, Z: 5})
	assert.InDelta(t, 0, x, 1e-12)
	assert.InDelta(t, 0, y, 1e-12)

	// flat axes do not divide by zero
	p = NewProjector(DefaultCamera, DefaultAspect, r3.Box{Max: r3.Vec{X: 10}})
	x, y = p.Project(geometry.Vec3{X: 10})
	assert.False(t, math.IsNaN(x) || math.IsNaN(y))
}

func TestBounds(t *testing.T) {
	b := Bounds([]geometry.Vec3{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 4, Z: 0}})
	assert.Equal(t, r3.Vec{X: -1, Y: -2, Z: 0}, b.Min)
	assert.Equal(t, r3.Vec{X: 1, Y: 4, Z: 3}, b.Max)

	one := Bounds([]geometry.Vec3{{X: 2, Y: 2, Z: 2}})
	assert.Equal(t, one.Min, one.Max)
	assert.Equal(t, r3.Box{}, Bounds(nil))
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, G: 165, A: 255}, ParseColor("Orange"))
	assert.Equal(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}, ParseColor("#123456"))
	assert.Equal(t, color.Black, ParseColor("chartreuse-ish"))
}

func TestExportScenes(t *testing.T) {
	model, tbl := testBridge()
	bmd, err := ExtrudeAll(model, tbl, diagram.Moment, 0.5, 3)
	require.NoError(t, err)
	sfd, err := ExtrudeAll(model, tbl, diagram.Shear, 2, 3)
	require.NoError(t, err)

	frame := model.Frame()
	scenes := []*Scene{
		NewScene("BMD", diagram.Moment, frame, bmd),
		NewScene("SFD", diagram.Shear, frame, sfd),
	}
	assert.Equal(t, "Bending Moment (kN·m)", scenes[0].YLabel)

	path := filepath.Join(t.TempDir(), "combined.png")
	require.NoError(t, ExportScenes(scenes, 10*vg.Inch, 5*vg.Inch, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, ExportScenes(nil, vg.Inch, vg.Inch, path))
}
