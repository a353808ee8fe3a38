package ebitenview

import (
	"fmt"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/annel0/isotiles/internal/logging"
	"github.com/annel0/isotiles/internal/render"
	"github.com/annel0/isotiles/internal/scene"
)

// Atlas хранит отмасштабированные спрайты рельефа, объектов и агентов
type Atlas struct {
	terrains map[int]*ebiten.Image
	objects  map[int]*ebiten.Image
	agents   map[int]*ebiten.Image
}

// LoadAtlas загружает все спрайты каталога типов из dir и приводит их к размеру тайла
func LoadAtlas(dir string, tileW, tileH int, scale float64) (*Atlas, error) {
	w := int(float64(tileW) * scale)
	h := int(float64(tileH) * scale)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("sprite size %dx%d is too small", w, h)
	}

	a := &Atlas{}
	var err error
	if a.terrains, err = loadSet(dir, scene.Terrains, w, h); err != nil {
		return nil, err
	}
	if a.objects, err = loadSet(dir, scene.Objects, w, h); err != nil {
		return nil, err
	}
	if a.agents, err = loadSet(dir, scene.Agents, w, h); err != nil {
		return nil, err
	}
	logging.Info("🖼️ Загружено спрайтов: рельеф=%d, объекты=%d, агенты=%d (%dx%d)",
		len(a.terrains), len(a.objects), len(a.agents), w, h)
	return a, nil
}

func loadSet(dir string, types []scene.TypeInfo, w, h int) (map[int]*ebiten.Image, error) {
	out := make(map[int]*ebiten.Image, len(types))
	for _, t := range types {
		path := filepath.Join(dir, t.Asset)
		src, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load sprite %q (%s): %w", t.Name, path, err)
		}
		out[t.ID] = scaled(src, w, h)
		logging.Debug("спрайт %d %q из %s", t.ID, t.Name, path)
	}
	return out, nil
}

func scaled(src *ebiten.Image, w, h int) *ebiten.Image {
	b := src.Bounds()
	dst := ebiten.NewImage(w, h)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
	return dst
}

// lookup возвращает nil-интерфейс для неизвестного id, а не типизированный nil
func lookup(m map[int]*ebiten.Image, id int) render.Sprite {
	if img, ok := m[id]; ok {
		return img
	}
	return nil
}

// Terrain возвращает спрайт рельефа
func (a *Atlas) Terrain(id int) render.Sprite { return lookup(a.terrains, id) }

// Object возвращает спрайт объекта
func (a *Atlas) Object(id int) render.Sprite { return lookup(a.objects, id) }

// Agent возвращает спрайт агента
func (a *Atlas) Agent(id int) render.Sprite { return lookup(a.agents, id) }
