package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/annel0/isotiles/internal/render"
)

// Surface рисует спрайты атласа на экран ebiten
type Surface struct {
	Screen *ebiten.Image
	op     ebiten.DrawImageOptions
}

// Clear очищает экран перед кадром
func (s *Surface) Clear() { s.Screen.Clear() }

// Blit рисует спрайт с левым верхним углом в (x, y).
// Спрайты не из ebiten пропускаются.
func (s *Surface) Blit(sprite render.Sprite, x, y float64) {
	img, ok := sprite.(*ebiten.Image)
	if !ok {
		return
	}
	s.op.GeoM.Reset()
	s.op.GeoM.Translate(x, y)
	s.Screen.DrawImage(img, &s.op)
}
