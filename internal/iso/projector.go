// Package iso переводит клетки мира в экранные координаты изометрии
// ("север - вверху справа") и определяет порядок отрисовки слоёв.
package iso

import "github.com/annel0/isotiles/internal/vec"

// Params - размеры тайла на экране и смещение начала вида
type Params struct {
	TileWidth     float64 // W: ширина ромба
	VisibleHeight float64 // Hc: высота видимой верхней грани
	TotalHeight   float64 // полная высота спрайта
	XOffset       float64
	YOffset       float64
}

// Projector - чистая арифметика, ошибок не возвращает
type Projector struct {
	p Params
}

// NewProjector создаёт проектор из готовых параметров
func NewProjector(p Params) *Projector {
	return &Projector{p: p}
}

// FromSprite вычисляет параметры из размера спрайта на диске и масштаба.
// Начало вида центрируется по горизонтали и опускается на 3 высоты тайла,
// чтобы высокие постройки помещались на экран.
func FromSprite(screenWidth, totalWidth, totalHeight, visibleHeight int, scale float64) *Projector {
	w := float64(totalWidth) * scale
	th := float64(totalHeight) * scale
	return NewProjector(Params{
		TileWidth:     w,
		VisibleHeight: float64(visibleHeight) * scale,
		TotalHeight:   th,
		XOffset:       float64(screenWidth)/2 - w/2,
		YOffset:       3 * th,
	})
}

// Params возвращает параметры проекции
func (pr *Projector) Params() Params { return pr.p }

// HeightMultiplier - пикселей на единицу высоты и на уровень объектов
func (pr *Projector) HeightMultiplier() float64 { return pr.p.TotalHeight / 2 }

// Elevation переводит высоту клетки в пиксели
func (pr *Projector) Elevation(h int) float64 {
	return float64(h) * pr.HeightMultiplier()
}

// Project возвращает точку отрисовки клетки (x, y) вида с поднятием h пикселей
func (pr *Projector) Project(x, y int, h float64) vec.Vec2Float {
	return vec.Vec2Float{
		X: pr.p.XOffset + float64(x-y)*pr.p.TileWidth/2,
		Y: pr.p.YOffset + float64(x+y)*pr.p.VisibleHeight/2 - h,
	}
}
