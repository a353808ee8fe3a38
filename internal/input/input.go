package input

import "strings"

// Command - действие, вызванное горячей клавишей
type Command int

const (
	None Command = iota
	PanLeft
	PanRight
	PanUp
	PanDown
	ToggleNoise
	ToggleVerbose
	ToggleFPS
	ShrinkView
	GrowView
	Quit
)

var commandNames = map[Command]string{
	None:          "none",
	PanLeft:       "pan_left",
	PanRight:      "pan_right",
	PanUp:         "pan_up",
	PanDown:       "pan_down",
	ToggleNoise:   "toggle_noise",
	ToggleVerbose: "toggle_verbose",
	ToggleFPS:     "toggle_fps",
	ShrinkView:    "shrink_view",
	GrowView:      "grow_view",
	Quit:          "quit",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

// Target - то, чем управляют команды. Реализуется game.Session.
type Target interface {
	Pan(dx, dy int)
	ShrinkView() bool
	GrowView() bool
	// Toggle* возвращают новое значение флага
	ToggleNoise() bool
	ToggleVerbose() bool
	ToggleFPS() bool
	RequestQuit()
}

// Apply выполняет команду. Возвращает false, если команда ничего не изменила.
func Apply(cmd Command, t Target) bool {
	switch cmd {
	case PanLeft:
		t.Pan(-1, 0)
	case PanRight:
		t.Pan(+1, 0)
	case PanUp:
		t.Pan(0, -1)
	case PanDown:
		t.Pan(0, +1)
	case ToggleNoise:
		t.ToggleNoise()
	case ToggleVerbose:
		t.ToggleVerbose()
	case ToggleFPS:
		t.ToggleFPS()
	case ShrinkView:
		return t.ShrinkView()
	case GrowView:
		return t.GrowView()
	case Quit:
		t.RequestQuit()
	default:
		return false
	}
	return true
}

// Binding - описание клавиши для справки
type Binding struct {
	Keys    string
	Command Command
	Help    string
}

// Bindings - раскладка по умолчанию
var Bindings = []Binding{
	{"←/→/↑/↓", PanLeft, "сдвиг окна обзора (удержание)"},
	{"shift + стрелка", PanLeft, "сдвиг на одну клетку при отпускании"},
	{"o / O", ShrinkView, "уменьшить / увеличить окно обзора"},
	{"N (shift+n)", ToggleNoise, "шум высоты вкл/выкл"},
	{"v", ToggleVerbose, "подробный вывод событий"},
	{"f", ToggleFPS, "отчёт FPS каждые 100 кадров"},
	{"ESC", Quit, "выход"},
}

// Help возвращает текст справки по горячим клавишам
func Help() string {
	var b strings.Builder
	b.WriteString("Горячие клавиши:\n")
	for _, k := range Bindings {
		b.WriteString("\t")
		b.WriteString(k.Keys)
		b.WriteString(" : ")
		b.WriteString(k.Help)
		b.WriteString("\n")
	}
	return b.String()
}
