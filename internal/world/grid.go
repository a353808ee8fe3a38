package world

import (
	"fmt"

	"github.com/annel0/isotiles/internal/logging"
	"github.com/annel0/isotiles/internal/vec"
)

// Grid хранит четыре слоя мира: рельеф, высоты, стопки объектов и агентов.
// Размеры фиксируются при создании. Все карты - плоские срезы с индексом y*width+x.
type Grid struct {
	width, height int
	levels        int

	terrain []int
	heights []int
	objects [][]int // objects[level]
	agents  []int
}

// NewGrid создаёт пустую сетку width x height с levels уровнями объектов
func NewGrid(width, height, levels int) (*Grid, error) {
	if width <= 0 || height <= 0 || levels <= 0 {
		return nil, fmt.Errorf("%w: %dx%d, %d levels", ErrInvalidSize, width, height, levels)
	}

	cells := width * height
	objects := make([][]int, levels)
	for l := range objects {
		objects[l] = make([]int, cells)
	}

	return &Grid{
		width:   width,
		height:  height,
		levels:  levels,
		terrain: make([]int, cells),
		heights: make([]int, cells),
		objects: objects,
		agents:  make([]int, cells),
	}, nil
}

// Width возвращает ширину мира в клетках
func (g *Grid) Width() int { return g.width }

// Height возвращает высоту мира в клетках
func (g *Grid) Height() int { return g.height }

// Levels возвращает число уровней объектов
func (g *Grid) Levels() int { return g.levels }

// InBounds проверяет, лежит ли клетка внутри сетки
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Wrap заворачивает координаты по тору. Аксессоры его сами не применяют.
func (g *Grid) Wrap(x, y int) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}.Wrap(g.width, g.height)
}

func (g *Grid) index(x, y int) (int, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return y*g.width + x, nil
}

func (g *Grid) checkLevel(level int) error {
	if level < 0 || level >= g.levels {
		return fmt.Errorf("%w: level %d, have %d", ErrLayerOutOfRange, level, g.levels)
	}
	return nil
}

// TerrainAt возвращает тип рельефа клетки
func (g *Grid) TerrainAt(x, y int) (int, error) {
	i, err := g.index(x, y)
	if err != nil {
		return 0, err
	}
	return g.terrain[i], nil
}

// SetTerrainAt устанавливает тип рельефа клетки
func (g *Grid) SetTerrainAt(x, y, id int) error {
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.terrain[i] = id
	return nil
}

// HeightAt возвращает высоту клетки
func (g *Grid) HeightAt(x, y int) (int, error) {
	i, err := g.index(x, y)
	if err != nil {
		return 0, err
	}
	return g.heights[i], nil
}

// SetHeightAt устанавливает высоту клетки
func (g *Grid) SetHeightAt(x, y, h int) error {
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.heights[i] = h
	return nil
}

// ObjectAt возвращает ID объекта на уровне level.
// Для несуществующего уровня возвращает NoObject и ErrLayerOutOfRange.
func (g *Grid) ObjectAt(x, y, level int) (int, error) {
	if err := g.checkLevel(level); err != nil {
		logging.Warn("ObjectAt(%d,%d): %v", x, y, err)
		return NoObject, err
	}
	i, err := g.index(x, y)
	if err != nil {
		return NoObject, err
	}
	return g.objects[level][i], nil
}

// SetObjectAt устанавливает объект на уровне level.
// Отрицательные ID допустимы: объект не рисуется, но блокирует клетку.
// Для несуществующего уровня сетка не изменяется.
func (g *Grid) SetObjectAt(x, y, id, level int) error {
	if err := g.checkLevel(level); err != nil {
		logging.Warn("SetObjectAt(%d,%d): %v", x, y, err)
		return err
	}
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.objects[level][i] = id
	return nil
}

// Object - ObjectAt для уровня 0
func (g *Grid) Object(x, y int) (int, error) { return g.ObjectAt(x, y, 0) }

// SetObject - SetObjectAt для уровня 0
func (g *Grid) SetObject(x, y, id int) error { return g.SetObjectAt(x, y, id, 0) }

// ObjectsAt копирует стопку объектов клетки снизу вверх в dst и возвращает её
func (g *Grid) ObjectsAt(x, y int, dst []int) ([]int, error) {
	i, err := g.index(x, y)
	if err != nil {
		return dst[:0], err
	}
	dst = dst[:0]
	for l := 0; l < g.levels; l++ {
		dst = append(dst, g.objects[l][i])
	}
	return dst, nil
}

// AgentAt возвращает ID агента в клетке
func (g *Grid) AgentAt(x, y int) (int, error) {
	i, err := g.index(x, y)
	if err != nil {
		return NoAgent, err
	}
	return g.agents[i], nil
}

// SetAgentAt ставит агента в клетку. Уникальность агента не проверяется:
// при перемещении вызывающий сам очищает старую клетку.
func (g *Grid) SetAgentAt(x, y, id int) error {
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	g.agents[i] = id
	return nil
}

// IsBlocked сообщает, занята ли клетка объектом уровня 0 (видимым или невидимым)
func (g *Grid) IsBlocked(x, y int) (bool, error) {
	id, err := g.Object(x, y)
	if err != nil {
		return false, err
	}
	return id != NoObject, nil
}
