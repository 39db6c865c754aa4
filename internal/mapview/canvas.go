// Package mapview renders boundary polygons onto a pannable, zoomable
// terminal map surface
package mapview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/forestwatch/forestwatch-go/internal/geom"
	"github.com/forestwatch/forestwatch-go/internal/theme"
)

// Map dimensions
const (
	MapWidth   = 55
	MapHeight  = 27
	MapCenterX = MapWidth / 2
	MapCenterY = MapHeight / 2
)

// Style controls how a polygon is drawn
type Style struct {
	Char  rune
	Color lipgloss.Color
}

// Surface is the capability the core needs from a map provider. The terminal
// canvas below implements it; geometry and viewport math stay provider
// agnostic.
type Surface interface {
	RenderPolygon(points []geom.GeoPoint, style Style)
	SetViewport(center geom.GeoPoint, zoom int)
}

// cell represents a single map cell with character and color
type cell struct {
	char  rune
	color lipgloss.Color
}

// Canvas handles map rendering onto a character cell grid
type Canvas struct {
	cells    [][]cell
	theme    *theme.Theme
	center   geom.GeoPoint
	zoom     int
	showGrid bool
}

// NewCanvas creates a map canvas at the given viewport
func NewCanvas(t *theme.Theme, vp geom.Viewport, showGrid bool) *Canvas {
	cells := make([][]cell, MapHeight)
	for y := range cells {
		cells[y] = make([]cell, MapWidth)
		for x := range cells[y] {
			cells[y][x] = cell{char: ' '}
		}
	}
	return &Canvas{
		cells:    cells,
		theme:    t,
		center:   vp.Center,
		zoom:     vp.Zoom,
		showGrid: showGrid,
	}
}

// Clear clears the map display
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = cell{char: ' '}
		}
	}
}

// SetTheme updates the theme
func (c *Canvas) SetTheme(t *theme.Theme) {
	c.theme = t
}

// SetViewport re-centers the map
func (c *Canvas) SetViewport(center geom.GeoPoint, zoom int) {
	c.center = center
	c.zoom = zoom
}

// degreesPerRow returns the latitude span of one cell row at the current
// zoom. Columns cover half as many degrees to compensate for terminal cell
// aspect ratio.
func (c *Canvas) degreesPerRow() float64 {
	return 360.0 / (math.Exp2(float64(c.zoom)) * MapHeight)
}

// project converts a geographic point to cell coordinates
func (c *Canvas) project(p geom.GeoPoint) (int, int) {
	perRow := c.degreesPerRow()
	x := MapCenterX + int(math.Round((p.Lng-c.center.Lng)/perRow*2))
	y := MapCenterY - int(math.Round((p.Lat-c.center.Lat)/perRow))
	return x, y
}

// CellToGeo converts cell coordinates back to a geographic point, used for
// hit testing map clicks against boundary polygons
func (c *Canvas) CellToGeo(x, y int) geom.GeoPoint {
	perRow := c.degreesPerRow()
	return geom.GeoPoint{
		Lat: c.center.Lat - float64(y-MapCenterY)*perRow,
		Lng: c.center.Lng + float64(x-MapCenterX)*perRow/2,
	}
}

// DrawGraticule draws a faint lat/lng grid
func (c *Canvas) DrawGraticule() {
	if !c.showGrid {
		return
	}
	for y := 0; y < MapHeight; y += 6 {
		for x := 0; x < MapWidth; x += 10 {
			if c.cells[y][x].char == ' ' {
				c.cells[y][x] = cell{char: '·', color: c.theme.MapGrid}
			}
		}
	}
}

// RenderPolygon plots a boundary polygon. Boundaries with no points are
// skipped; a selected territory or alert whose ring validated to empty is
// simply not drawn.
func (c *Canvas) RenderPolygon(points []geom.GeoPoint, style Style) {
	if len(points) == 0 {
		return
	}
	if len(points) == 1 {
		x, y := c.project(points[0])
		c.plot(x, y, style)
		return
	}

	for i := 0; i < len(points); i++ {
		next := (i + 1) % len(points)
		x0, y0 := c.project(points[i])
		x1, y1 := c.project(points[next])
		c.drawEdge(x0, y0, x1, y1, style)
	}
}

// drawEdge steps along the segment, plotting the dominant axis
func (c *Canvas) drawEdge(x0, y0, x1, y1 int, style Style) {
	dx := x1 - x0
	dy := y1 - y0
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		c.plot(x0, y0, style)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		c.plot(x, y, style)
	}
}

func (c *Canvas) plot(x, y int, style Style) {
	if x < 0 || x >= MapWidth || y < 0 || y >= MapHeight {
		return
	}
	c.cells[y][x] = cell{char: style.Char, color: style.Color}
}

// PlotMarker draws a single labeled marker at a geographic point
func (c *Canvas) PlotMarker(p geom.GeoPoint, label string, style Style) {
	x, y := c.project(p)
	c.plot(x, y, style)
	for j, ch := range []rune(label) {
		lx := x + 1 + j
		if lx >= 0 && lx < MapWidth && y >= 0 && y < MapHeight {
			c.cells[y][lx] = cell{char: ch, color: c.theme.TextDim}
		}
	}
}

// Render renders the map to a string
func (c *Canvas) Render() string {
	var sb strings.Builder

	centerStr := fmt.Sprintf(" %.2f, %.2f z%d ", c.center.Lat, c.center.Lng, c.zoom)
	pad := (MapWidth - len(centerStr)) / 2
	if pad < 0 {
		pad = 0
	}

	borderStyle := lipgloss.NewStyle().Foreground(c.theme.Border)

	sb.WriteString(borderStyle.Render("╔"))
	sb.WriteString(borderStyle.Render(strings.Repeat("═", pad)))
	sb.WriteString(borderStyle.Render(centerStr))
	rest := MapWidth - pad - len(centerStr)
	if rest < 0 {
		rest = 0
	}
	sb.WriteString(borderStyle.Render(strings.Repeat("═", rest)))
	sb.WriteString(borderStyle.Render("╗"))
	sb.WriteString("\n")

	for y := 0; y < MapHeight; y++ {
		sb.WriteString(borderStyle.Render("║"))
		for x := 0; x < MapWidth; x++ {
			cl := c.cells[y][x]
			if cl.color != "" {
				sb.WriteString(lipgloss.NewStyle().Foreground(cl.color).Render(string(cl.char)))
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(c.theme.TextDim).Render(string(cl.char)))
			}
		}
		sb.WriteString(borderStyle.Render("║"))
		sb.WriteString("\n")
	}

	sb.WriteString(borderStyle.Render("╚"))
	sb.WriteString(borderStyle.Render(strings.Repeat("═", MapWidth)))
	sb.WriteString(borderStyle.Render("╝"))

	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
