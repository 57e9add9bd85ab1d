package terrain

import (
	"fmt"

	"github.com/annel0/terrain2d/internal/geom"
	"github.com/annel0/terrain2d/internal/vec"
)

// Индексы углов ячейки, по часовой стрелке от левого верхнего
const (
	cornerTL = 0
	cornerTR = 1
	cornerBR = 2
	cornerBL = 3
)

// Segment отрезок контура marching squares
type Segment struct {
	A, B vec.Vec2Float
}

// DecorSquare декоративный квадрат внутри полигонов ячейки.
// Чисто визуальный: на геометрию коллизий не влияет.
type DecorSquare struct {
	Pos        vec.Vec2Float `json:"pos"` // Левый верхний угол
	Size       float64       `json:"size"`
	Opacity    float64       `json:"opacity"`
	Brightness float64       `json:"brightness"` // Мультипликатор яркости
	Color      string        `json:"color"`
}

// Cell минимальная адресуемая единица ландшафта.
// Создаётся при первом запросе своего грида, после генерации неизменна
// (детерминированная функция сида, позиции и конфигурации) и живёт до
// вытеснения грида из кэша.
type Cell struct {
	Pos           vec.Vec2Float // Мировой левый верхний угол
	Size          float64
	Corners       [4]float64 // Высоты углов: TL, TR, BR, BL
	Biome         string     // Ключ биома (ссылка, не копия)
	AverageHeight float64

	Contours []Segment      // Отрезки контура (отладка/обводка)
	Polygons []geom.Polygon // Залитые области — основа коллизий и заливки

	TexturePattern float64 // Интенсивность текстуры [0,1], одна выборка на ячейку
	Squares        []DecorSquare
}

// Bounds возвращает мировые границы ячейки
func (c *Cell) Bounds() geom.Rect {
	return geom.Rect{X: c.Pos.X, Y: c.Pos.Y, Width: c.Size, Height: c.Size}
}

// Center возвращает центр ячейки
func (c *Cell) Center() vec.Vec2Float {
	return vec.Vec2Float{X: c.Pos.X + c.Size/2, Y: c.Pos.Y + c.Size/2}
}

// HeightAt билинейно интерполирует высоту внутри ячейки по четырём углам
func (c *Cell) HeightAt(p vec.Vec2Float) float64 {
	tx := (p.X - c.Pos.X) / c.Size
	ty := (p.Y - c.Pos.Y) / c.Size
	if tx < 0 {
		tx = 0
	}
	if tx > 1 {
		tx = 1
	}
	if ty < 0 {
		ty = 0
	}
	if ty > 1 {
		ty = 1
	}

	top := c.Corners[cornerTL] + (c.Corners[cornerTR]-c.Corners[cornerTL])*tx
	bottom := c.Corners[cornerBL] + (c.Corners[cornerBR]-c.Corners[cornerBL])*tx
	return top + (bottom-top)*ty
}

// Grid коллекция gridResolution² ячеек, владеет ими монопольно
type Grid struct {
	Coords vec.Vec2
	Cells  []*Cell
}

// gridKey ключ грида в кэше
func gridKey(coords vec.Vec2) string {
	return fmt.Sprintf("%d,%d", coords.X, coords.Y)
}

// rigidKey ключ грубой ячейки физики; пространство ключей отдельно
// от кэша гридов
func rigidKey(coords vec.Vec2) string {
	return fmt.Sprintf("rb_%d,%d", coords.X, coords.Y)
}
