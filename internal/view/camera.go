package view

import "github.com/annel0/isotiles/internal/vec"

// Camera - окно вида на тороидальный мир worldW x worldH.
// Offset - клетка мира в левом верхнем углу вида, Width/Height - число видимых клеток.
type Camera struct {
	OffsetX, OffsetY int
	Width, Height    int

	worldW, worldH int
}

// NewCamera создаёт камеру в начале мира; размер вида ограничен размером мира
func NewCamera(worldW, worldH, viewW, viewH int) *Camera {
	c := &Camera{worldW: worldW, worldH: worldH}
	c.Width = clamp(viewW, 1, worldW)
	c.Height = clamp(viewH, 1, worldH)
	return c
}

// Pan сдвигает вид с заворачиванием по модулю размера мира
func (c *Camera) Pan(dx, dy int) {
	c.OffsetX = vec.Mod(c.OffsetX+dx, c.worldW)
	c.OffsetY = vec.Mod(c.OffsetY+dy, c.worldH)
}

// Shrink уменьшает вид на одну клетку по обеим осям. Возвращает false на минимуме.
func (c *Camera) Shrink() bool {
	if c.Width <= 1 {
		return false
	}
	c.Width--
	c.Height = max(c.Height-1, 1)
	return true
}

// Grow увеличивает вид на одну клетку по обеим осям. Возвращает false на максимуме.
func (c *Camera) Grow() bool {
	if c.Width >= c.worldW {
		return false
	}
	c.Width++
	c.Height = min(c.Height+1, c.worldH)
	return true
}

// Tile переводит клетку вида в клетку мира
func (c *Camera) Tile(x, y int) vec.Vec2 {
	return vec.Vec2{X: c.OffsetX + x, Y: c.OffsetY + y}.Wrap(c.worldW, c.worldH)
}

// Cells обходит вид построчно (y снаружи, x внутри) - порядок художника.
// fn получает координаты вида и соответствующую клетку мира; false прерывает обход.
func (c *Camera) Cells(fn func(viewPos, tile vec.Vec2) bool) {
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if !fn(vec.Vec2{X: x, Y: y}, c.Tile(x, y)) {
				return
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
