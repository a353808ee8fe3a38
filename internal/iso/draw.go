package iso

import "github.com/annel0/isotiles/internal/vec"

// Layer - вид отрисовываемого спрайта
type Layer uint8

const (
	LayerTerrain Layer = iota
	LayerObject
	LayerAgent
)

func (l Layer) String() string {
	switch l {
	case LayerTerrain:
		return "terrain"
	case LayerObject:
		return "object"
	case LayerAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Draw - один блит в порядке художника
type Draw struct {
	Layer Layer
	Level int // уровень объекта, для прочих слоёв 0
	ID    int
	At    vec.Vec2Float
}

// CellDraws добавляет к dst блиты одной клетки: рельеф, затем объекты
// снизу вверх (только ID > 0), затем агент.
// Агент всегда рисуется на один уровень выше рельефа, независимо от высоты стопки.
func (pr *Projector) CellDraws(dst []Draw, base vec.Vec2Float, terrain int, objects []int, agent int) []Draw {
	hm := pr.HeightMultiplier()

	dst = append(dst, Draw{Layer: LayerTerrain, ID: terrain, At: base})
	for level, id := range objects {
		if id > 0 {
			dst = append(dst, Draw{
				Layer: LayerObject,
				Level: level,
				ID:    id,
				At:    base.Lift(hm * float64(level+1)),
			})
		}
	}
	if agent != 0 {
		dst = append(dst, Draw{Layer: LayerAgent, ID: agent, At: base.Lift(hm)})
	}
	return dst
}
