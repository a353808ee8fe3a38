package scene

import (
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/isotiles/internal/world"
)

// Пороги высоты шума (0..1) для рельефа
const (
	lowlandMax  = 0.45 // ниже - трава на уровне 0
	hillMax     = 0.60 // ниже - голубая трава, холмы
	mountainMax = 0.72 // ниже - серый камень
)

// TerrainGenerator генерирует рельеф шумом Перлина
type TerrainGenerator struct {
	Seed          int64
	NoiseScale    float64 // масштаб основного шума
	MaxHeight     int     // высота самых высоких клеток
	ForestDensity float64 // шанс дерева на равнине

	noise *perlin.Perlin
}

// NewTerrainGenerator создаёт генератор с настройками по умолчанию
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &TerrainGenerator{
		Seed:          seed,
		NoiseScale:    0.08,
		MaxHeight:     4,
		ForestDensity: 0.05,
		noise:         perlin.NewPerlin(alpha, beta, n, seed),
	}
}

// Sample возвращает значение шума клетки в диапазоне от 0 до 1
func (tg *TerrainGenerator) Sample(x, y int) float64 {
	v := tg.noise.Noise2D(float64(x)*tg.NoiseScale, float64(y)*tg.NoiseScale)
	return clamp01((v + 1.0) / 2.0)
}

// Cell возвращает рельеф и высоту клетки по значению шума
func (tg *TerrainGenerator) Cell(sample float64) (terrain, height int) {
	switch {
	case sample < lowlandMax:
		return GrassID, 0
	case sample < hillMax:
		return BlueGrassID, 1 + int((sample-lowlandMax)/(hillMax-lowlandMax)*2)
	case sample < mountainMax:
		return GreyBrickID, 3
	default:
		return GreyBrickID, tg.MaxHeight
	}
}

// Generate заполняет рельеф и высоты всей сетки.
// Не-травяные клетки закрыты невидимой стеной, на равнинах растут деревья.
func (tg *TerrainGenerator) Generate(g *world.Grid, rng *rand.Rand) error {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			terrain, height := tg.Cell(tg.Sample(x, y))
			if err := g.SetTerrainAt(x, y, terrain); err != nil {
				return err
			}
			if err := g.SetHeightAt(x, y, height); err != nil {
				return err
			}

			switch {
			case terrain != GrassID:
				if err := g.SetObject(x, y, WallID); err != nil {
					return err
				}
			case rng.Float64() < tg.ForestDensity:
				if err := g.SetObject(x, y, TreeID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// buildPerlin - процедурный рельеф, затем агент и деревья как в основной сцене
func buildPerlin(g *world.Grid, rng *rand.Rand, opts Options) (Result, error) {
	if err := NewTerrainGenerator(opts.Seed).Generate(g, rng); err != nil {
		return Result{}, err
	}

	res, err := placeAgent(g, rng, g.Wrap(g.Width()/2, g.Height()/2))
	if err != nil {
		return Result{}, err
	}
	if err := scatter(g, rng, BurningTreeID, opts.BurningTrees); err != nil {
		return res, err
	}
	return res, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
