package agent

import (
	"fmt"
	"math/rand"

	"github.com/annel0/isotiles/internal/vec"
	"github.com/annel0/isotiles/internal/world"
)

// Wanderer - агент, блуждающий случайным шагом по тороидальному миру
type Wanderer struct {
	Pos vec.Vec2
	ID  int
}

// Move - итог попытки шага
type Move struct {
	From, To vec.Vec2
	Moved    bool // false - цель занята объектом
}

// Place ставит агента в клетку pos
func Place(g *world.Grid, pos vec.Vec2, id int) (*Wanderer, error) {
	if err := g.SetAgentAt(pos.X, pos.Y, id); err != nil {
		return nil, fmt.Errorf("place agent %d: %w", id, err)
	}
	return &Wanderer{Pos: pos, ID: id}, nil
}

// CanMoveTo проверяет, свободна ли клетка от объектов уровня 0.
// Отрицательные (невидимые) объекты тоже непроходимы.
func CanMoveTo(g *world.Grid, pos vec.Vec2) (bool, error) {
	blocked, err := g.IsBlocked(pos.X, pos.Y)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// NextTarget выбирает соседнюю клетку: с вероятностью 1/2 ось x, иначе y, шаг ±1
func NextTarget(pos vec.Vec2, rng *rand.Rand, width, height int) vec.Vec2 {
	step := []int{-1, +1}
	next := pos
	if rng.Float64() < 0.5 {
		next.X += step[rng.Intn(2)]
	} else {
		next.Y += step[rng.Intn(2)]
	}
	return next.Wrap(width, height)
}

// Step делает одну попытку шага. Старая клетка очищается до записи новой.
func (w *Wanderer) Step(g *world.Grid, rng *rand.Rand) (Move, error) {
	target := NextTarget(w.Pos, rng, g.Width(), g.Height())
	return w.MoveTo(g, target)
}

// MoveTo переносит агента в target, если клетка проходима
func (w *Wanderer) MoveTo(g *world.Grid, target vec.Vec2) (Move, error) {
	m := Move{From: w.Pos, To: target}

	ok, err := CanMoveTo(g, target)
	if err != nil || !ok {
		return m, err
	}
	if err := g.SetAgentAt(w.Pos.X, w.Pos.Y, world.NoAgent); err != nil {
		return m, err
	}
	if err := g.SetAgentAt(target.X, target.Y, w.ID); err != nil {
		return m, err
	}
	w.Pos = target
	m.Moved = true
	return m, nil
}
