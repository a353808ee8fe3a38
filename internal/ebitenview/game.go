package ebitenview

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/annel0/isotiles/internal/game"
	"github.com/annel0/isotiles/internal/input"
	"github.com/annel0/isotiles/internal/logging"
)

var arrows = []struct {
	key ebiten.Key
	cmd input.Command
}{
	{ebiten.KeyArrowLeft, input.PanLeft},
	{ebiten.KeyArrowRight, input.PanRight},
	{ebiten.KeyArrowDown, input.PanDown},
	{ebiten.KeyArrowUp, input.PanUp},
}

// Game связывает сессию с циклом ebiten.
// Update опрашивает клавиатуру, Draw строит кадр мира не чаще одного раза на Update,
// поэтому шаги агента идут с частотой TPS, а не частотой обновления монитора.
type Game struct {
	session       *game.Session
	width, height int
	surface       Surface
	pending       bool
	err           error
}

// NewGame создаёт ebiten.Game для сессии и окна w x h
func NewGame(s *game.Session, w, h int) *Game {
	return &Game{session: s, width: w, height: h}
}

// Err возвращает ошибку, остановившую цикл отрисовки
func (g *Game) Err() error { return g.err }

// Update опрашивает клавиатуру
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	for _, cmd := range pollKeys() {
		input.Apply(cmd, g.session)
	}
	if g.session.QuitRequested() {
		return ebiten.Termination
	}
	g.pending = true
	return nil
}

func pollKeys() []input.Command {
	var cmds []input.Command
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	// непрерывный сдвиг: одна стрелка за кадр, без shift
	if !shift {
		for _, a := range arrows {
			if ebiten.IsKeyPressed(a.key) {
				cmds = append(cmds, a.cmd)
				break
			}
		}
	}

	// одиночные нажатия срабатывают при отпускании
	for _, a := range arrows {
		if shift && inpututil.IsKeyJustReleased(a.key) {
			cmds = append(cmds, a.cmd)
		}
	}
	switch {
	case inpututil.IsKeyJustReleased(ebiten.KeyEscape):
		cmds = append(cmds, input.Quit)
	case inpututil.IsKeyJustReleased(ebiten.KeyN) && shift:
		cmds = append(cmds, input.ToggleNoise)
	case inpututil.IsKeyJustReleased(ebiten.KeyV):
		cmds = append(cmds, input.ToggleVerbose)
	case inpututil.IsKeyJustReleased(ebiten.KeyF):
		cmds = append(cmds, input.ToggleFPS)
	case inpututil.IsKeyJustReleased(ebiten.KeyO) && shift:
		cmds = append(cmds, input.GrowView)
	case inpututil.IsKeyJustReleased(ebiten.KeyO):
		cmds = append(cmds, input.ShrinkView)
	}
	return cmds
}

// Draw строит и рисует очередной кадр сессии
func (g *Game) Draw(screen *ebiten.Image) {
	if g.err != nil || !g.pending {
		return
	}
	g.pending = false
	g.surface.Screen = screen
	if err := g.session.Frame(context.Background(), &g.surface); err != nil {
		logging.Error("❌ Ошибка отрисовки: %v", err)
		g.err = err
	}
}

// Layout задаёт фиксированный логический размер экрана
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run открывает окно и крутит цикл до ESC или закрытия окна
func Run(s *game.Session, w, h int, title string) error {
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(s.MaxFPS())
	// экран очищает Surface.Clear, пропущенный Draw оставляет прошлый кадр
	ebiten.SetScreenClearedEveryFrame(false)

	g := NewGame(s, w, h)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return g.Err()
}
