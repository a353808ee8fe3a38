// Package scene наполняет пустую сетку перед запуском цикла кадров.
package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/annel0/isotiles/internal/vec"
	"github.com/annel0/isotiles/internal/world"
)

var (
	// ErrUnknownScene - сцена с таким именем не зарегистрирована
	ErrUnknownScene = errors.New("unknown scene")
	// ErrNoFreeCell - не удалось найти свободную клетку травы
	ErrNoFreeCell = errors.New("no free grass cell")
)

// Options - параметры наполнения сцены
type Options struct {
	Trees        int
	BurningTrees int
	Seed         int64
}

// Result - итог наполнения
type Result struct {
	Agent    vec.Vec2
	HasAgent bool
}

// Builder наполняет сетку
type Builder func(g *world.Grid, rng *rand.Rand, opts Options) (Result, error)

var registry = make(map[string]Builder)

// Register добавляет сцену в реестр
func Register(name string, b Builder) {
	registry[name] = b
}

// Get возвращает сцену по имени
func Get(name string) (Builder, bool) {
	b, ok := registry[name]
	return b, ok
}

// SceneNames возвращает имена зарегистрированных сцен
func SceneNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build наполняет сетку сценой name
func Build(name string, g *world.Grid, rng *rand.Rand, opts Options) (Result, error) {
	b, ok := Get(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	res, err := b(g, rng, opts)
	if err != nil {
		return res, fmt.Errorf("scene %s: %w", name, err)
	}
	return res, nil
}

func init() {
	Register("isotiles", buildIsotiles)
	Register("classic", buildClassic)
	Register("perlin", buildPerlin)
}

// stamp переносит прямоугольные карты рельефа и высот на сетку со смещением.
// wall != 0 дополнительно ставит объект уровня 0 в каждую клетку.
func stamp(g *world.Grid, at vec.Vec2, terrain, heights [][]int, wall int) error {
	for y, row := range terrain {
		for x, id := range row {
			px, py := at.X+x, at.Y+y
			if err := g.SetTerrainAt(px, py, id); err != nil {
				return err
			}
			if err := g.SetHeightAt(px, py, heights[y][x]); err != nil {
				return err
			}
			if wall != 0 {
				if err := g.SetObject(px, py, wall); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// freeGrassCell ищет случайную клетку травы без объекта уровня 0.
// Перебор ограничен, чтобы сцена без свободной травы не зависала.
func freeGrassCell(g *world.Grid, rng *rand.Rand) (vec.Vec2, error) {
	attempts := g.Width() * g.Height() * 16
	for i := 0; i < attempts; i++ {
		p := vec.Vec2{X: rng.Intn(g.Width()), Y: rng.Intn(g.Height())}
		ok, err := isFreeGrass(g, p)
		if err != nil {
			return p, err
		}
		if ok {
			return p, nil
		}
	}
	return vec.Vec2{}, ErrNoFreeCell
}

func isFreeGrass(g *world.Grid, p vec.Vec2) (bool, error) {
	terrain, err := g.TerrainAt(p.X, p.Y)
	if err != nil {
		return false, err
	}
	blocked, err := g.IsBlocked(p.X, p.Y)
	if err != nil {
		return false, err
	}
	return terrain == GrassID && !blocked, nil
}

// placeAgent ставит захватчика в start, если там свободная трава, иначе в случайную свободную клетку
func placeAgent(g *world.Grid, rng *rand.Rand, start vec.Vec2) (Result, error) {
	pos := start
	ok, err := isFreeGrass(g, pos)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		if pos, err = freeGrassCell(g, rng); err != nil {
			return Result{}, err
		}
	}
	if err := g.SetAgentAt(pos.X, pos.Y, InvaderID); err != nil {
		return Result{}, err
	}
	return Result{Agent: pos, HasAgent: true}, nil
}

// scatter разбрасывает n объектов id по свободной траве
func scatter(g *world.Grid, rng *rand.Rand, id, n int) error {
	for i := 0; i < n; i++ {
		p, err := freeGrassCell(g, rng)
		if err != nil {
			return fmt.Errorf("scatter object %d (%d of %d): %w", id, i+1, n, err)
		}
		if err := g.SetObject(p.X, p.Y, id); err != nil {
			return err
		}
	}
	return nil
}
