package plotly

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	grob "github.com/MetalBlueberry/go-plotly/generated/v2.34.0/graph_objects"
	"github.com/MetalBlueberry/go-plotly/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gobfd/internal/diagram"
	"github.com/alexiusacademia/gobfd/internal/geometry"
	"github.com/alexiusacademia/gobfd/internal/results"
	"github.com/alexiusacademia/gobfd/internal/spatial"
)

func testTable() *results.Table {
	tbl := results.NewTable()
	tbl.Set(10, "Mz_i", 5)
	tbl.Set(10, "Mz_j", -2)
	tbl.Set(20, "Mz_i", -3)
	tbl.Set(20, "Mz_j", 7)
	tbl.Set(10, "Vy_i", 1)
	tbl.Set(10, "Vy_j", 1)
	tbl.Set(20, "Vy_i", -4)
	tbl.Set(20, "Vy_j", -4)
	return tbl
}

// decode round-trips the figure through JSON the way plotly.js receives it
func decode(t *testing.T, fig *Figure) (data []map[string]any, layout map[string]any) {
	t.Helper()
	b, err := json.Marshal(fig)
	require.NoError(t, err)
	var out struct {
		Data   []map[string]any `json:"data"`
		Layout map[string]any   `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	return out.Data, out.Layout
}

func TestValues(t *testing.T) {
	b, err := json.Marshal(values([]float64{1, 2.5, Gap, math.Inf(1), -3}))
	require.NoError(t, err)
	assert.Equal(t, "[1,2.5,null,null,-3]", string(b))

	b, err = json.Marshal(values([]float64{}))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestForceDiagrams(t *testing.T) {
	tbl := testTable()
	chain := []int{10, 20}
	bmd, err := diagram.Assemble(tbl, chain, diagram.Moment)
	require.NoError(t, err)
	sfd, err := diagram.Assemble(tbl, chain, diagram.Shear)
	require.NoError(t, err)

	fig, err := ForceDiagrams(bmd, sfd, 0, "Central Girder")
	require.NoError(t, err)
	require.Len(t, fig.Data, 4)
	assert.IsType(t, &grob.Scatter{}, fig.Data[0])

	data, layout := decode(t, fig)

	// density 0 keeps only the segment ends: 2 segments * 2 points, 3 entries each
	hatch := data[0]
	assert.Equal(t, "scatter", hatch["type"])
	xs := hatch["x"].([]any)
	assert.Len(t, xs, 12)
	assert.Equal(t, []any{0.0, 0.0, nil}, xs[:3])
	assert.Equal(t, 5.0, hatch["y"].([]any)[1])
	assert.Equal(t, false, hatch["showlegend"])

	curve := data[1]
	assert.Equal(t, "lines+markers", curve["mode"])
	assert.Equal(t, []any{0.0, 1.0, 2.0}, curve["x"])
	assert.Equal(t, []any{5.0, -3.0, 7.0}, curve["y"])
	assert.Equal(t, "y", curve["yaxis"])
	assert.Equal(t, "y2", data[3]["yaxis"])

	annotations := layout["annotations"].([]any)
	// subplot title, max annotation and two element labels per diagram
	require.Len(t, annotations, 8)
	text := func(k int) any { return annotations[k].(map[string]any)["text"] }
	assert.Equal(t, "Bending Moment Diagram (BMD)", text(0))
	assert.Equal(t, "Max: 7.00 kN·m", text(1))
	assert.Equal(t, "E10", text(2))
	assert.Equal(t, "E20", text(3))
	assert.Equal(t, "Shear Force Diagram (SFD)", text(4))

	title := annotations[4].(map[string]any)
	assert.Equal(t, "paper", title["yref"])
	assert.Equal(t, 0.425, title["y"])

	assert.Equal(t, []any{0.0, 0.425}, layout["yaxis2"].(map[string]any)["domain"])
	assert.Contains(t, layout, "xaxis2")
	assert.Len(t, layout["shapes"], 2)

	_, err = ForceDiagrams(bmd, sfd, -1, "bad")
	assert.ErrorIs(t, err, diagram.ErrInvalidDensity)
}

func TestSave(t *testing.T) {
	fig := newFigure("BMD and SFD")
	fig.Add(&grob.Scatter{X: values([]float64{0, 1}), Y: values([]float64{1, Gap})})

	path := filepath.Join(t.TempDir(), "sub", "fig.html")
	require.NoError(t, fig.Save(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(raw)

	assert.Contains(t, page, fig.Info().Cdn)
	assert.Contains(t, page, "Plotly.newPlot")

	start := strings.Index(page, "atob('")
	require.GreaterOrEqual(t, start, 0)
	start += len("atob('")
	end := strings.Index(page[start:], "')")
	require.Greater(t, end, 0)
	payload, err := base64.StdEncoding.DecodeString(page[start : start+end])
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"y":[1,null]`)
	assert.Contains(t, string(payload), `"text":"BMD and SFD"`)
}

func TestScenes(t *testing.T) {
	nodes := map[int]geometry.Vec3{1: {}, 2: {X: 5}, 3: {X: 10}}
	members := map[int]geometry.Member{10: {Start: 1, End: 2}, 20: {Start: 2, End: 3}}
	girders := []geometry.Girder{{Name: "Girder 1", Elements: []int{10, 20}, Nodes: []int{1, 2, 3}, Color: "red"}}
	model := geometry.NewModel(nodes, members, girders)
	tbl := testTable()

	bmd, err := spatial.ExtrudeAll(model, tbl, diagram.Moment, 0.5, 2)
	require.NoError(t, err)
	sfd, err := spatial.ExtrudeAll(model, tbl, diagram.Shear, 2, 2)
	require.NoError(t, err)

	one := spatial.NewScene("BMD", diagram.Moment, model.Frame(), bmd)
	fig, err := Scenes("3D BMD", one)
	require.NoError(t, err)
	// frame, hatching, girder curve
	require.Len(t, fig.Data, 3)
	assert.Equal(t, types.TraceType("scatter3d"), fig.Data[2].GetType())

	data, layout := decode(t, fig)
	assert.Equal(t, "Bridge Frame", data[0]["name"])
	girder := data[2]
	assert.Equal(t, "rgb(255,0,0)", girder["line"].(map[string]any)["color"])
	assert.Equal(t, []any{2.5, -1.5, 3.5}, girder["y"])
	// hover shows the unscaled moment
	assert.Equal(t, []any{5.0, -3.0, 7.0}, girder["customdata"])
	assert.Contains(t, girder["hovertemplate"], "Mz: %{customdata:.2f} kN·m")
	assert.Contains(t, layout, "scene")
	assert.NotContains(t, layout, "annotations")

	two := spatial.NewScene("SFD", diagram.Shear, model.Frame(), sfd)
	one.Hatch, two.Hatch = false, false
	fig, err = Scenes("combined", one, two)
	require.NoError(t, err)
	require.Len(t, fig.Data, 4)

	data, layout = decode(t, fig)
	assert.Equal(t, "scene2", data[3]["scene"])
	assert.Equal(t, false, data[3]["showlegend"])
	assert.Contains(t, data[3]["hovertemplate"], "Vy: %{customdata:.2f} kN")
	assert.Contains(t, layout, "scene2")
	assert.Len(t, layout["annotations"], 2)

	_, err = Scenes("empty")
	assert.Error(t, err)
	_, err = Scenes("too many", one, two, one)
	assert.Error(t, err)
}
