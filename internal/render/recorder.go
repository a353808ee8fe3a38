package render

// Blit - записанный вызов Surface.Blit
type Blit struct {
	Sprite Sprite
	X, Y   float64
}

// Recorder - Surface без графики: запоминает блиты последнего кадра.
// Используется в безоконном режиме и в тестах.
type Recorder struct {
	Blits  []Blit
	Clears int
}

// Clear начинает новый кадр
func (r *Recorder) Clear() {
	r.Blits = r.Blits[:0]
	r.Clears++
}

// Blit записывает вызов
func (r *Recorder) Blit(s Sprite, x, y float64) {
	r.Blits = append(r.Blits, Blit{Sprite: s, X: x, Y: y})
}

// NameAtlas - атлас, где спрайт это строковое имя из карты по ID.
// Подходит для безоконного режима и тестов.
type NameAtlas struct {
	Terrains, Objects, Agents map[int]string
}

func lookup(m map[int]string, id int) Sprite {
	if name, ok := m[id]; ok {
		return name
	}
	return nil
}

// Terrain возвращает имя спрайта рельефа
func (a NameAtlas) Terrain(id int) Sprite { return lookup(a.Terrains, id) }

// Object возвращает имя спрайта объекта
func (a NameAtlas) Object(id int) Sprite { return lookup(a.Objects, id) }

// Agent возвращает имя спрайта агента
func (a NameAtlas) Agent(id int) Sprite { return lookup(a.Agents, id) }
