package iso

import "math"

// Период смены формулы шума: int(2π·199) = 1250 кадров, первая половина int(π·199) = 625
const (
	noisePeriod = 1250
	noiseHalf   = 625
)

// HeightNoise - детерминированное "дыхание" рельефа в пикселях для кадра it.
// Влияет только на проекцию текущего кадра, высоты мира не меняет.
func HeightNoise(it, x, y int, hm float64) float64 {
	t := float64(it)
	fx, fy := float64(x), float64(y)

	var n float64
	if it%noisePeriod < noiseHalf {
		n = math.Sin(t/23+fy)*math.Sin(t/7+fx)*hm/10 +
			math.Cos(t/17+fy+fx)*math.Cos(t/31+fy)*hm
	} else {
		n = math.Sin(t/13+fy*19) * math.Cos(t/17+fx*41) * hm
	}
	return math.Sin(t/199) * n
}
