package scrolllabel

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// The canvas is three rows: a baseline with a travel lane above and below.
// There is no opacity or sub-cell transform in a terminal, so entering and
// exiting glyphs bias one row in their travel direction and fade by blending
// their color toward the background.
const (
	canvasRows  = 3
	baselineRow = 1
)

// Rows returns the height of View's output in lines.
func (l *Label) Rows() int { return canvasRows }

// View renders the current frame.
func (l *Label) View() string {
	// The canvas must cover every glyph still in motion, not just the
	// steady-state content width: a surviving slot sliding left renders right
	// of its target for the first frames, and exiting slots render wherever
	// they detached.
	width := l.ContentWidth()
	for _, s := range l.slots {
		if edge := int(math.Round(s.renderX)) + s.width; edge > width {
			width = edge
		}
	}
	for _, s := range l.exiting {
		if edge := int(math.Round(s.renderX)) + s.width; edge > width {
			width = edge
		}
	}
	c := newCanvas(canvasRows, width)

	// Exiting glyphs first; live glyphs win any overlap.
	for _, s := range l.exiting {
		f := l.progress(s)
		row := baselineRow + exitRowOffset(s.dir, f)
		c.put(row, int(math.Round(s.renderX)), s.width, l.styled(s.cluster, l.exitColor(s.dir, f)))
	}
	for _, s := range l.slots {
		col := int(math.Round(s.renderX))
		if s.phase == phaseInserting {
			f := l.progress(s)
			row := baselineRow + enterRowOffset(s.dir, f)
			c.put(row, col, s.width, l.styled(s.cluster, l.enterColor(s.dir, f)))
			continue
		}
		c.put(baselineRow, col, s.width, l.styled(s.cluster, l.textColor))
	}

	return c.render()
}

// enterBias is the row offset an entering glyph starts from: up for an
// increment, down for a decrement. Exiting glyphs travel the opposite way.
func enterBias(dir Direction) int {
	if dir == Decrement {
		return 1
	}
	return -1
}

func enterRowOffset(dir Direction, f float64) int {
	return int(math.Round(float64(enterBias(dir)) * (1 - f)))
}

func exitRowOffset(dir Direction, f float64) int {
	return int(math.Round(float64(-enterBias(dir)) * f))
}

func (l *Label) highlight(dir Direction) colorful.Color {
	if dir == Decrement {
		return l.decColor
	}
	return l.incColor
}

// enterColor fades an entering glyph in, from the background up to the
// direction highlight. Once steady it renders in the text color instead.
func (l *Label) enterColor(dir Direction, f float64) colorful.Color {
	return l.bgColor.BlendLuv(l.highlight(dir), f)
}

// exitColor fades an exiting glyph from the direction highlight out to the
// background.
func (l *Label) exitColor(dir Direction, f float64) colorful.Color {
	return l.highlight(dir).BlendLuv(l.bgColor, f)
}

func (l *Label) styled(cluster string, c colorful.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(cluster)
}

// canvas is a cell grid for one frame. A glyph occupies a start cell holding
// its styled text plus span-1 reserved trailing cells (wide clusters).
type canvas struct {
	rows  int
	width int
	cells [][]canvasCell
}

type canvasCell struct {
	text string // styled cluster; "" when blank or reserved
	span int    // cells covered; 0 blank, -1 reserved trailing cell
}

func newCanvas(rows, width int) *canvas {
	c := &canvas{rows: rows, width: width}
	c.cells = make([][]canvasCell, rows)
	for i := range c.cells {
		c.cells[i] = make([]canvasCell, width)
	}
	return c
}

// put draws text at (row, col) covering span cells, blanking any glyph it
// overlaps (including a wide glyph that started left of col). Out-of-bounds
// draws are dropped; mid-flight glyphs can briefly leave the canvas.
func (c *canvas) put(row, col, span int, text string) {
	if row < 0 || row >= c.rows || span <= 0 || col < 0 || col+span > c.width {
		return
	}

	start := col
	for start > 0 && c.cells[row][start].span == -1 {
		start--
	}
	end := col + span
	for end < c.width && c.cells[row][end].span == -1 {
		end++
	}
	for i := start; i < end; i++ {
		c.cells[row][i] = canvasCell{}
	}

	c.cells[row][col] = canvasCell{text: text, span: span}
	for i := 1; i < span; i++ {
		c.cells[row][col+i] = canvasCell{span: -1}
	}
}

func (c *canvas) render() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		col := 0
		for col < c.width {
			cell := c.cells[row][col]
			if cell.span > 0 {
				b.WriteString(cell.text)
				col += cell.span
				continue
			}
			b.WriteByte(' ')
			col++
		}
	}
	return b.String()
}
