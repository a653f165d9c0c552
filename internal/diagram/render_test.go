package diagram

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiagrams(t *testing.T) (*Diagram, *Diagram) {
	t.Helper()
	tbl := girderTable()
	m, err := Assemble(tbl, []int{10, 20}, Moment)
	require.NoError(t, err)
	v, err := Assemble(tbl, []int{10, 20}, Shear)
	require.NoError(t, err)
	return m, v
}

func TestExportForceDiagrams(t *testing.T) {
	m, v := testDiagrams(t)
	dir := t.TempDir()

	for _, name := range []string{"bmd.png", "bmd.svg", "bmd.pdf"} {
		path := filepath.Join(dir, name)
		require.NoError(t, ExportForceDiagrams(m, v, 5, "Girder", path))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	// unknown extensions fall back to png
	require.NoError(t, ExportForceDiagrams(m, v, 5, "Girder", filepath.Join(dir, "sub", "bmd")))
	_, err := os.Stat(filepath.Join(dir, "sub", "bmd.png"))
	assert.NoError(t, err)
}

func TestExportForceDiagramsBadDensity(t *testing.T) {
	m, v := testDiagrams(t)
	err := ExportForceDiagrams(m, v, -1, "Girder", filepath.Join(t.TempDir(), "x.png"))
	assert.ErrorIs(t, err, ErrInvalidDensity)
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, MomentStyle, StyleFor(Moment))
	assert.Equal(t, ShearStyle, StyleFor(Shear))
	assert.Equal(t, "Fx (kN)", StyleFor("Fx").YLabel)
}

func TestStyleColoursValid(t *testing.T) {
	for _, st := range []Style{MomentStyle, ShearStyle, StyleFor("Fx")} {
		for _, c := range []interface{ RGBA() (r, g, b, a uint32) }{st.Hatch, st.Curve} {
			r, g, b, a := c.RGBA()
			assert.LessOrEqual(t, r, a, st.Title)
			assert.LessOrEqual(t, g, a, st.Title)
			assert.LessOrEqual(t, b, a, st.Title)
		}
	}
}

func TestHatchDrawnInDiagramColour(t *testing.T) {
	m := &Diagram{Chain: []int{1}, Force: Moment, Values: []float64{100, 100}, Positions: []int{0, 1}}
	v := &Diagram{Chain: []int{1}, Force: Shear, Values: []float64{100, 100}, Positions: []int{0, 1}}
	path := filepath.Join(t.TempDir(), "hatch.png")
	require.NoError(t, ExportForceDiagrams(m, v, 40, "Hatch", path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	// count reddish and bluish pixels in the moment (upper) and shear (lower) halves
	b := img.Bounds()
	mid := b.Min.Y + b.Dy()/2
	var red, cyan, blue, yellow int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			r, g, bl = r>>8, g>>8, bl>>8
			if y < mid {
				switch {
				case r > g+60 && r > bl+60:
					red++
				case g > r+60 && bl > r+60:
					cyan++
				}
				continue
			}
			switch {
			case bl > r+60 && bl > g+60:
				blue++
			case r > bl+60 && g > bl+60:
				yellow++
			}
		}
	}
	assert.Greater(t, red, 1000)
	assert.Less(t, cyan, red/10)
	assert.Greater(t, blue, 1000)
	assert.Less(t, yellow, blue/10)
}

func TestDrawASCIIDiagram(t *testing.T) {
	m, _ := testDiagrams(t)

	out, err := DrawASCIIDiagram(m, 4, 8)
	require.NoError(t, err)
	assert.Contains(t, out, "Bending Moment Diagram (BMD)")
	assert.Contains(t, out, "max 7.00 kN·m")
	assert.Contains(t, out, "E10")
	assert.Contains(t, out, "E20")
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("RANGE", []string{"Mz: -3.00 to 7.00 kN·m", "Vy: -6.00 to 8.00 kN"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
}
