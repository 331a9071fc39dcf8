package tonecurve

import (
	"math"
	"strings"

	"github.com/kartoza/presetify/internal/models"
)

const (
	// GridWidth and GridHeight are the size of the terminal preview
	GridWidth  = 60
	GridHeight = 20

	// NoCurvePlaceholder is shown instead of a grid when there is no curve
	NoCurvePlaceholder = "No tone curve adjustments"

	maxValue = 255
)

// Grid glyphs
const (
	glyphBlank    = ' '
	glyphVertical = '│'
	glyphAxis     = '─'
	glyphCorner   = '└'
	glyphPoint    = '●'
)

// Render draws the curve on a 60x20 character grid
func Render(c *models.ToneCurve) string {
	return RenderGrid(c, GridWidth, GridHeight)
}

// RenderGrid draws the curve on a width x height grid with the axes along the
// left column and bottom row. Out-of-range points are clamped to the grid.
func RenderGrid(c *models.ToneCurve, width, height int) string {
	if c.Empty() {
		return NoCurvePlaceholder
	}
	if width < 3 {
		width = 3
	}
	if height < 3 {
		height = 3
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = glyphBlank
		}
		grid[y][0] = glyphVertical
	}
	for x := 0; x < width; x++ {
		grid[height-1][x] = glyphAxis
	}
	grid[height-1][0] = glyphCorner

	if len(c.Points) == 1 {
		gx, gy := toGrid(c.Points[0], width, height)
		plot(grid, gx, gy)
	}
	for i := 0; i+1 < len(c.Points); i++ {
		x1, y1 := toGrid(c.Points[i], width, height)
		x2, y2 := toGrid(c.Points[i+1], width, height)
		drawLine(grid, x1, y1, x2, y2)
	}

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

// toGrid maps curve coordinates into the drawable area, which excludes the
// axis column and row.
func toGrid(p models.CurvePoint, width, height int) (int, int) {
	gx := int(math.Round(float64(p.X)/maxValue*float64(width-2))) + 1
	gy := (height - 2) - int(math.Round(float64(p.Y)/maxValue*float64(height-2)))
	return clamp(gx, 1, width-1), clamp(gy, 0, height-2)
}

// drawLine joins two grid cells using Bresenham's algorithm
func drawLine(grid [][]rune, x1, y1, x2, y2 int) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		plot(grid, x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func plot(grid [][]rune, x, y int) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	switch grid[y][x] {
	case glyphBlank, glyphVertical, glyphAxis, glyphCorner:
		grid[y][x] = glyphPoint
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
