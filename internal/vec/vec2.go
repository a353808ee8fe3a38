package vec

// Vec2 представляет координаты клетки мира
type Vec2 struct {
	X, Y int
}

// Wrap приводит координаты к тору размером width x height.
// Отрицательные значения заворачиваются с другой стороны.
func (v Vec2) Wrap(width, height int) Vec2 {
	return Vec2{X: Mod(v.X, width), Y: Mod(v.Y, height)}
}

// Mod возвращает неотрицательный остаток a по модулю n
func Mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
