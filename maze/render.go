package maze

import (
	"strings"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// Render draws g as text, one line per row: 'S' start, 'F' finish, '#' wall,
// '.' open cell.
func Render(g *grid.Grid) string {
	var b strings.Builder
	b.Grow(g.Len() + g.Rows())

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			c := g.At(row, col)
			switch {
			case c.IsStart:
				b.WriteByte('S')
			case c.IsFinish:
				b.WriteByte('F')
			case c.IsWall:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
