package iso

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/isotiles/internal/vec"
)

func testProjector() *Projector {
	return NewProjector(Params{TileWidth: 40, VisibleHeight: 20, TotalHeight: 32, XOffset: 500, YOffset: 96})
}

func TestFromSpriteDefaults(t *testing.T) {
	pr := FromSprite(1400, 111, 128, 64, 0.25)
	p := pr.Params()

	assert.InDelta(t, 27.75, p.TileWidth, 1e-9)
	assert.InDelta(t, 16.0, p.VisibleHeight, 1e-9)
	assert.InDelta(t, 32.0, p.TotalHeight, 1e-9)
	assert.InDelta(t, 700-27.75/2, p.XOffset, 1e-9)
	assert.InDelta(t, 96.0, p.YOffset, 1e-9)
	assert.InDelta(t, 16.0, pr.HeightMultiplier(), 1e-9)
}

func TestProjectFormula(t *testing.T) {
	pr := testProjector()

	assert.Equal(t, vec.Vec2Float{X: 500, Y: 96}, pr.Project(0, 0, 0))
	assert.Equal(t, vec.Vec2Float{X: 520, Y: 106}, pr.Project(1, 0, 0))
	assert.Equal(t, vec.Vec2Float{X: 480, Y: 106}, pr.Project(0, 1, 0))
	assert.Equal(t, vec.Vec2Float{X: 520, Y: 146 - 32}, pr.Project(3, 2, pr.Elevation(2)))
}

func TestProjectSameDepthDiffersOnlyHorizontally(t *testing.T) {
	pr := testProjector()

	for depth := 0; depth < 8; depth++ {
		ref := pr.Project(depth, 0, 16)
		for x := 0; x <= depth; x++ {
			y := depth - x
			p := pr.Project(x, y, 16)
			assert.Equal(t, ref.Y, p.Y, "клетки одной глубины лежат на одной строке")
			assert.InDelta(t, float64(x-y)*20, p.X-pr.Params().XOffset, 1e-9)
		}
	}
}

func TestProjectLatticeIsDistinct(t *testing.T) {
	for _, size := range [][2]float64{{27.75, 16}, {1, 1}, {0.5, 3}, {111, 64}} {
		pr := NewProjector(Params{TileWidth: size[0], VisibleHeight: size[1], TotalHeight: 2 * size[1]})

		seen := make(map[vec.Vec2Float]vec.Vec2)
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				p := pr.Project(x, y, 0)
				prev, dup := seen[p]
				require.False(t, dup, "клетки %v и (%d,%d) совпали", prev, x, y)
				seen[p] = vec.Vec2{X: x, Y: y}

				if x > 0 {
					left := pr.Project(x-1, y, 0)
					assert.InDelta(t, size[0]/2, p.X-left.X, 1e-9)
					assert.InDelta(t, size[1]/2, p.Y-left.Y, 1e-9)
				}
			}
		}
		assert.Len(t, seen, 16)
	}
}

func TestCellDrawsOrder(t *testing.T) {
	pr := testProjector()
	hm := pr.HeightMultiplier()
	base := pr.Project(2, 1, 0)

	draws := pr.CellDraws(nil, base, 3, []int{0, 5, 0, 3}, 1)

	require.Len(t, draws, 4)
	assert.Equal(t, Draw{Layer: LayerTerrain, ID: 3, At: base}, draws[0])
	assert.Equal(t, Draw{Layer: LayerObject, Level: 1, ID: 5, At: base.Lift(hm * 2)}, draws[1])
	assert.Equal(t, Draw{Layer: LayerObject, Level: 3, ID: 3, At: base.Lift(hm * 4)}, draws[2])
	assert.Equal(t, Draw{Layer: LayerAgent, ID: 1, At: base.Lift(hm)}, draws[3])
}

func TestCellDrawsSkipsIntangibleAndEmpty(t *testing.T) {
	pr := testProjector()
	base := vec.Vec2Float{X: 1, Y: 2}

	draws := pr.CellDraws(nil, base, 0, []int{-1, 0, -7, 2}, 0)

	require.Len(t, draws, 2)
	assert.Equal(t, LayerTerrain, draws[0].Layer)
	assert.Equal(t, LayerObject, draws[1].Layer)
	assert.Equal(t, 3, draws[1].Level)
	for _, d := range draws {
		assert.GreaterOrEqual(t, d.ID, 0, "отрицательные ID не рисуются")
	}
}

func TestCellDrawsAppends(t *testing.T) {
	pr := testProjector()
	buf := pr.CellDraws(nil, vec.Vec2Float{}, 1, nil, 0)
	buf = pr.CellDraws(buf, vec.Vec2Float{X: 10}, 2, []int{1}, 0)
	require.Len(t, buf, 3)
	assert.Equal(t, 2, buf[1].ID)
}

func TestHeightNoise(t *testing.T) {
	// sin(0) == 0: на нулевом кадре шума нет
	assert.Zero(t, HeightNoise(0, 5, 7, 16))

	assert.Equal(t, 1250, noisePeriod)
	assert.Equal(t, 625, noiseHalf)

	// Первая формула
	it, x, y, hm := 100, 3, 4, 16.0
	tt := float64(it)
	want := math.Sin(tt/199) * (math.Sin(tt/23+4)*math.Sin(tt/7+3)*hm/10 + math.Cos(tt/17+7)*math.Cos(tt/31+4)*hm)
	assert.InDelta(t, want, HeightNoise(it, x, y, hm), 1e-12)

	// Вторая формула
	it = 700
	tt = float64(it)
	want = math.Sin(tt/199) * math.Sin(tt/13+4*19) * math.Cos(tt/17+3*41) * hm
	assert.InDelta(t, want, HeightNoise(it, x, y, hm), 1e-12)

	// Детерминированность
	assert.Equal(t, HeightNoise(1234, 9, 9, hm), HeightNoise(1234, 9, 9, hm))

	// Амплитуда ограничена
	for i := 0; i < 3000; i += 37 {
		assert.LessOrEqual(t, math.Abs(HeightNoise(i, i%64, (i/3)%64, hm)), hm*1.1+1e-9)
	}
}
