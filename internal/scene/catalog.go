package scene

// TypeInfo описывает тип рельефа, объекта или агента и его спрайт
type TypeInfo struct {
	ID    int
	Name  string
	Asset string // путь относительно каталога ассетов
}

// ID типов рельефа
const (
	GrassID     = 0
	BrickID     = 1
	BlueGrassID = 2
	GreyBrickID = 3
)

// ID объектов. 0 - пусто, отрицательные - невидимые препятствия.
const (
	TreeID        = 1
	BlockID       = 2
	BurningTreeID = 3

	WallID = -1 // невидимая стена: не рисуется, но не даёт пройти
)

// ID агентов
const (
	InvaderID = 1
)

// Terrains - типы рельефа в порядке ID
var Terrains = []TypeInfo{
	{ID: GrassID, Name: "grass", Asset: "basic111x128/platformerTile_48_ret.png"},
	{ID: BrickID, Name: "brick", Asset: "isometric-blocks/PNG/Platformer tiles/platformerTile_33.png"},
	{ID: BlueGrassID, Name: "blue grass", Asset: "isometric-blocks/PNG/Abstract tiles/abstractTile_12.png"},
	{ID: GreyBrickID, Name: "grey brick", Asset: "isometric-blocks/PNG/Abstract tiles/abstractTile_09.png"},
}

// Objects - отрисовываемые объекты
var Objects = []TypeInfo{
	{ID: TreeID, Name: "tree", Asset: "basic111x128/tree_small_NW_ret.png"},
	{ID: BlockID, Name: "construction block", Asset: "basic111x128/blockHuge_N_ret.png"},
	{ID: BurningTreeID, Name: "burning tree", Asset: "basic111x128/tree_small_NW_ret_red.png"},
}

// Agents - типы агентов
var Agents = []TypeInfo{
	{ID: InvaderID, Name: "invader", Asset: "basic111x128/invader_ret.png"},
}

// Names возвращает карту ID -> имя для набора типов
func Names(types []TypeInfo) map[int]string {
	m := make(map[int]string, len(types))
	for _, t := range types {
		m[t.ID] = t.Name
	}
	return m
}
