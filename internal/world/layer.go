package world

// DefaultLevels - число уровней объектов по умолчанию.
// Уровень 0 лежит прямо на поверхности клетки, каждый следующий
// рисуется на heightMultiplier выше предыдущего.
const DefaultLevels = 8

// Сентинелы целочисленного кодирования карт
const (
	NoObject = 0
	NoAgent  = 0
)

// ObjectKind классифицирует ID объекта
type ObjectKind uint8

const (
	Empty      ObjectKind = iota // 0: клетка свободна
	Intangible                   // <0: невидимое препятствие
	Visible                      // >0: отрисовываемый объект
)

// String возвращает строковое представление вида объекта
func (k ObjectKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Intangible:
		return "intangible"
	case Visible:
		return "visible"
	default:
		return "unknown"
	}
}

// Classify возвращает вид объекта по его ID
func Classify(id int) ObjectKind {
	switch {
	case id == NoObject:
		return Empty
	case id < 0:
		return Intangible
	default:
		return Visible
	}
}
