package vec

// Vec2Float представляет точку экрана с плавающей точкой
type Vec2Float struct {
	X, Y float64
}

// Lift поднимает точку на dy пикселей вверх по экрану
func (v Vec2Float) Lift(dy float64) Vec2Float {
	return Vec2Float{X: v.X, Y: v.Y - dy}
}
