package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// DrawASCIIDiagram renders a diagram in the terminal. Every element is drawn
// over cellsPerElement columns so the hatch interpolation shows between nodes.
func DrawASCIIDiagram(d *Diagram, cellsPerElement, height int) (string, error) {
	if cellsPerElement < 1 {
		cellsPerElement = 1
	}
	hatch, err := GenerateHatch(d.X(), d.Values, cellsPerElement-1)
	if err != nil {
		return "", err
	}

	// drop the duplicated node shared by consecutive segments
	per := cellsPerElement + 1
	series := make([]float64, 0, hatch.Len())
	for k, v := range hatch.Values {
		if k > 0 && k%per == 0 {
			continue
		}
		series = append(series, v)
	}

	color := asciigraph.DarkRed
	if d.Force == Shear {
		color = asciigraph.DarkBlue
	}
	_, maxVal := d.Max()
	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(color),
		asciigraph.Caption(fmt.Sprintf("%s  (max %.2f %s)", StyleFor(d.Force).Title, maxVal, Units(d.Force))),
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(graph)
	sb.WriteString("\n\n")
	sb.WriteString(drawElementRuler(d.Chain, cellsPerElement))
	return sb.String(), nil
}

// drawElementRuler writes the element ids under the graph, one slot per element
func drawElementRuler(chain []int, width int) string {
	var sb strings.Builder
	sb.WriteString("  elements: ")
	for _, id := range chain {
		label := fmt.Sprintf("E%d", id)
		if len(label) < width {
			label += strings.Repeat(" ", width-len(label))
		}
		sb.WriteString(label)
		sb.WriteString(" ")
	}
	sb.WriteString("\n")
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads by rune count; %-*s counts bytes and breaks on "·"
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
