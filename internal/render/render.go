package render

import (
	"errors"
	"fmt"

	"github.com/annel0/isotiles/internal/iso"
	"github.com/annel0/isotiles/internal/vec"
	"github.com/annel0/isotiles/internal/view"
	"github.com/annel0/isotiles/internal/world"
)

// Sprite - непрозрачный дескриптор изображения, которым владеет Surface
type Sprite interface{}

// Surface принимает блиты и полную очистку кадра
type Surface interface {
	Clear()
	Blit(s Sprite, x, y float64)
}

// Atlas сопоставляет ID рельефа, объекта и агента спрайтам.
// Для неизвестного ID возвращается nil.
type Atlas interface {
	Terrain(id int) Sprite
	Object(id int) Sprite
	Agent(id int) Sprite
}

// ErrMissingSprite - в сетке встретился ID, для которого в атласе нет спрайта
var ErrMissingSprite = errors.New("missing sprite")

// Stats - итоги одного кадра
type Stats struct {
	Cells int
	Draws int
}

// Renderer рисует видимую часть сетки художником: клетки построчно,
// в каждой клетке рельеф, объекты снизу вверх, агент.
type Renderer struct {
	proj  *iso.Projector
	atlas Atlas

	stack []int
	draws []iso.Draw
}

// NewRenderer создаёт рендерер
func NewRenderer(proj *iso.Projector, atlas Atlas) *Renderer {
	return &Renderer{proj: proj, atlas: atlas}
}

// Projector возвращает проектор рендерера
func (r *Renderer) Projector() *iso.Projector { return r.proj }

// Frame описывает, что и как рисовать
type Frame struct {
	Grid   *world.Grid
	Camera *view.Camera
	Number int  // счётчик кадров для шума
	Noise  bool // добавить "дыхание" рельефа
}

// Plan возвращает список блитов кадра без обращения к атласу
func (r *Renderer) Plan(f Frame) ([]iso.Draw, Stats, error) {
	var (
		stats Stats
		err   error
	)
	r.draws = r.draws[:0]
	hm := r.proj.HeightMultiplier()

	f.Camera.Cells(func(v, tile vec.Vec2) bool {
		var terrain, height, agent int
		if terrain, err = f.Grid.TerrainAt(tile.X, tile.Y); err != nil {
			return false
		}
		if height, err = f.Grid.HeightAt(tile.X, tile.Y); err != nil {
			return false
		}
		if agent, err = f.Grid.AgentAt(tile.X, tile.Y); err != nil {
			return false
		}
		if r.stack, err = f.Grid.ObjectsAt(tile.X, tile.Y, r.stack); err != nil {
			return false
		}

		elevation := float64(height) * hm
		if f.Noise {
			elevation += iso.HeightNoise(f.Number, tile.X, tile.Y, hm)
		}
		base := r.proj.Project(v.X, v.Y, elevation)
		r.draws = r.proj.CellDraws(r.draws, base, terrain, r.stack, agent)
		stats.Cells++
		return true
	})
	if err != nil {
		return nil, stats, fmt.Errorf("plan frame %d: %w", f.Number, err)
	}
	stats.Draws = len(r.draws)
	return r.draws, stats, nil
}

// DrawFrame очищает поверхность и рисует кадр
func (r *Renderer) DrawFrame(s Surface, f Frame) (Stats, error) {
	draws, stats, err := r.Plan(f)
	if err != nil {
		return stats, err
	}

	s.Clear()
	for _, d := range draws {
		sprite := r.sprite(d)
		if sprite == nil {
			return stats, fmt.Errorf("%w: %s %d", ErrMissingSprite, d.Layer, d.ID)
		}
		s.Blit(sprite, d.At.X, d.At.Y)
	}
	return stats, nil
}

func (r *Renderer) sprite(d iso.Draw) Sprite {
	switch d.Layer {
	case iso.LayerTerrain:
		return r.atlas.Terrain(d.ID)
	case iso.LayerObject:
		return r.atlas.Object(d.ID)
	case iso.LayerAgent:
		return r.atlas.Agent(d.ID)
	}
	return nil
}
