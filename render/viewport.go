package render

import (
	"math"

	"github.com/lixenwraith/flag-arena/constants"
	"github.com/lixenwraith/flag-arena/vmath"
)

// viewport maps arena coordinates onto terminal cells, preserving aspect
type viewport struct {
	scale      float64 // arena units per cell column
	offX, offY float64 // cell offset of the arena origin
	cols, rows int
}

func newViewport(cols, rows int, width, height float64) viewport {
	usable := max(rows-constants.StatusRows, 1)
	scale := max(width/float64(max(cols, 1)), height/(float64(usable)*constants.CellAspect))
	return viewport{
		scale: scale,
		offX:  (float64(cols) - width/scale) / 2,
		offY:  float64(constants.StatusRows) + (float64(usable)-height/(scale*constants.CellAspect))/2,
		cols:  cols,
		rows:  rows,
	}
}

// cell returns the cell containing p
func (v viewport) cell(p vmath.Vec2) (int, int) {
	x := int(math.Floor(v.offX + p.X/v.scale))
	y := int(math.Floor(v.offY + p.Y/(v.scale*constants.CellAspect)))
	return x, y
}

// world returns the arena position of a cell center
func (v viewport) world(x, y int) vmath.Vec2 {
	return vmath.V2(
		(float64(x)+0.5-v.offX)*v.scale,
		(float64(y)+0.5-v.offY)*v.scale*constants.CellAspect,
	)
}

// visible reports whether a cell lies on screen below the status rows
func (v viewport) visible(x, y int) bool {
	return x >= 0 && x < v.cols && y >= constants.StatusRows && y < v.rows
}
