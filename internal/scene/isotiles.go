package scene

import (
	"math/rand"

	"github.com/annel0/isotiles/internal/vec"
	"github.com/annel0/isotiles/internal/world"
)

// Пирамида 4x4 у (3,3)
var (
	pyramidAt      = vec.Vec2{X: 3, Y: 3}
	pyramidTerrain = [][]int{
		{2, 2, 2, 2},
		{2, 3, 3, 2},
		{2, 3, 3, 2},
		{2, 2, 2, 2},
	}
	pyramidHeights = [][]int{
		{1, 1, 1, 1},
		{1, 2, 2, 1},
		{1, 2, 2, 1},
		{1, 1, 1, 1},
	}
)

// Ступенчатый холм 7x9 у (4,13) с деревом на вершине
var (
	hillAt      = vec.Vec2{X: 4, Y: 13}
	hillTreeAt  = vec.Vec2{X: 7, Y: 17}
	hillTerrain = [][]int{
		{0, 2, 2, 2, 2, 2, 0},
		{2, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 2, 2, 2, 2},
		{2, 2, 2, 2, 2, 2, 2},
		{0, 2, 2, 2, 2, 2, 0},
	}
	hillHeights = [][]int{
		{0, 1, 1, 1, 1, 1, 0},
		{1, 1, 1, 1, 1, 1, 1},
		{1, 2, 2, 2, 2, 2, 1},
		{1, 2, 3, 3, 3, 2, 1},
		{1, 2, 3, 4, 3, 2, 1},
		{1, 2, 3, 3, 3, 2, 1},
		{1, 2, 2, 2, 2, 2, 1},
		{1, 1, 1, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1, 0},
	}
)

// Ограда: столбы во всю высоту по углам и стены на верхнем уровне
var (
	fortMin = vec.Vec2{X: 20, Y: 2}
	fortMax = vec.Vec2{X: 30, Y: 12}
)

// buildIsotiles - сцена "World of Isotiles": две постройки, ограда,
// захватчик и рассыпанные по траве деревья.
func buildIsotiles(g *world.Grid, rng *rand.Rand, opts Options) (Result, error) {
	if err := stamp(g, pyramidAt, pyramidTerrain, pyramidHeights, WallID); err != nil {
		return Result{}, err
	}
	if err := stamp(g, hillAt, hillTerrain, hillHeights, WallID); err != nil {
		return Result{}, err
	}
	if err := g.SetObject(hillTreeAt.X, hillTreeAt.Y, TreeID); err != nil {
		return Result{}, err
	}
	if err := buildFort(g); err != nil {
		return Result{}, err
	}

	res, err := placeAgent(g, rng, vec.Vec2{})
	if err != nil {
		return Result{}, err
	}

	if err := scatter(g, rng, TreeID, opts.Trees); err != nil {
		return res, err
	}
	if err := scatter(g, rng, BurningTreeID, opts.BurningTrees); err != nil {
		return res, err
	}
	return res, nil
}

func buildFort(g *world.Grid) error {
	top := g.Levels() - 1
	corners := []vec.Vec2{
		{X: fortMin.X, Y: fortMin.Y},
		{X: fortMax.X, Y: fortMin.Y},
		{X: fortMax.X, Y: fortMax.Y},
		{X: fortMin.X, Y: fortMax.Y},
	}
	for _, c := range corners {
		for level := 0; level < g.Levels(); level++ {
			if err := g.SetObjectAt(c.X, c.Y, BlockID, level); err != nil {
				return err
			}
		}
	}

	for i := 1; i < fortMax.X-fortMin.X; i++ {
		for _, p := range []vec.Vec2{{X: fortMin.X + i, Y: fortMin.Y}, {X: fortMin.X + i, Y: fortMax.Y}} {
			if err := g.SetObjectAt(p.X, p.Y, BlockID, top); err != nil {
				return err
			}
		}
	}
	for i := 1; i < fortMax.Y-fortMin.Y; i++ {
		for _, p := range []vec.Vec2{{X: fortMin.X, Y: fortMin.Y + i}, {X: fortMax.X, Y: fortMin.Y + i}} {
			if err := g.SetObjectAt(p.X, p.Y, BlockID, top); err != nil {
				return err
			}
		}
	}
	return nil
}
