package terrain

import (
	"math"

	"github.com/annel0/terrain2d/internal/geom"
	"github.com/annel0/terrain2d/internal/vec"
)

// marchCell заполняет контуры и полигоны ячейки по алгоритму marching
// squares.
//
// Биты углов: TL=8, TR=4, BR=2, BL=1 (угол "заполнен", если его высота
// выше порога). Рёбра нумеруются 0=верх, 1=право, 2=низ, 3=лево.
// Сёдла (случаи 5 и 10, заполнены диагонально противоположные углы)
// неоднозначны; здесь они всегда раскрываются в ДВА несвязанных
// треугольника — каждая диагональная пара обрабатывается независимо.
// Выбор фиксирован: от него зависит итоговая картинка.
func marchCell(cell *Cell, threshold float64, smooth bool) {
	cell.Contours = nil
	cell.Polygons = nil

	size := cell.Size
	tl := vec.Vec2Float{X: cell.Pos.X, Y: cell.Pos.Y}
	tr := vec.Vec2Float{X: cell.Pos.X + size, Y: cell.Pos.Y}
	br := vec.Vec2Float{X: cell.Pos.X + size, Y: cell.Pos.Y + size}
	bl := vec.Vec2Float{X: cell.Pos.X, Y: cell.Pos.Y + size}

	vTL := cell.Corners[cornerTL]
	vTR := cell.Corners[cornerTR]
	vBR := cell.Corners[cornerBR]
	vBL := cell.Corners[cornerBL]

	caseIndex := 0
	if vTL > threshold {
		caseIndex |= 8
	}
	if vTR > threshold {
		caseIndex |= 4
	}
	if vBR > threshold {
		caseIndex |= 2
	}
	if vBL > threshold {
		caseIndex |= 1
	}

	// Точки пересечения порога на рёбрах
	top := interpolateEdge(tl, tr, vTL, vTR, threshold, smooth)
	right := interpolateEdge(tr, br, vTR, vBR, threshold, smooth)
	bottom := interpolateEdge(bl, br, vBL, vBR, threshold, smooth)
	left := interpolateEdge(tl, bl, vTL, vBL, threshold, smooth)

	segment := func(a, b vec.Vec2Float) {
		cell.Contours = append(cell.Contours, Segment{A: a, B: b})
	}
	polygon := func(pts ...vec.Vec2Float) {
		if poly, ok := geom.Sanitize(pts); ok {
			cell.Polygons = append(cell.Polygons, poly)
		}
	}

	switch caseIndex {
	case 0:
		// Пусто

	case 1: // BL
		segment(left, bottom)
		polygon(left, bottom, bl)

	case 2: // BR
		segment(bottom, right)
		polygon(bottom, right, br)

	case 3: // BL+BR
		segment(left, right)
		polygon(left, right, br, bl)

	case 4: // TR
		segment(top, right)
		polygon(top, tr, right)

	case 5: // TR+BL, седло
		segment(top, right)
		segment(left, bottom)
		polygon(top, tr, right)
		polygon(left, bottom, bl)

	case 6: // TR+BR
		segment(top, bottom)
		polygon(top, tr, br, bottom)

	case 7: // TR+BR+BL
		segment(top, left)
		polygon(top, tr, br, bl, left)

	case 8: // TL
		segment(left, top)
		polygon(tl, top, left)

	case 9: // TL+BL
		segment(top, bottom)
		polygon(tl, top, bottom, bl)

	case 10: // TL+BR, седло
		segment(left, top)
		segment(bottom, right)
		polygon(tl, top, left)
		polygon(right, br, bottom)

	case 11: // TL+BR+BL
		segment(top, right)
		polygon(tl, top, right, br, bl)

	case 12: // TL+TR
		segment(left, right)
		polygon(tl, tr, right, left)

	case 13: // TL+TR+BL
		segment(right, bottom)
		polygon(tl, tr, right, bottom, bl)

	case 14: // TL+TR+BR
		segment(bottom, left)
		polygon(tl, tr, br, bottom, left)

	case 15:
		// Полная ячейка: один полигон, без контура
		polygon(tl, tr, br, bl)
	}
}

// interpolateEdge находит точку пересечения порога на ребре между p1 и p2.
// При выключенном сглаживании или почти равных значениях — середина ребра:
// деление на близкую к нулю разность нестабильно.
func interpolateEdge(p1, p2 vec.Vec2Float, v1, v2, threshold float64, smooth bool) vec.Vec2Float {
	t := 0.5
	if smooth {
		d := v2 - v1
		if math.Abs(d) > 1e-9 {
			t = (threshold - v1) / d
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
		}
	}
	return vec.Vec2Float{
		X: p1.X + (p2.X-p1.X)*t,
		Y: p1.Y + (p2.Y-p1.Y)*t,
	}
}
