package terrain

import (
	"testing"

	"github.com/annel0/terrain2d/internal/vec"
	"github.com/stretchr/testify/assert"
)

// makeCell строит ячейку 10x10 с высотами углов [TL, TR, BR, BL]
func makeCell(corners [4]float64) *Cell {
	return &Cell{
		Pos:     vec.Vec2Float{X: 0, Y: 0},
		Size:    10,
		Corners: corners,
	}
}

func TestMarchingAllCasesWellDefined(t *testing.T) {
	// Все 16 случаев дают корректный результат: полигоны только валидные
	const lo, hi = 0.2, 0.8

	for caseIndex := 0; caseIndex < 16; caseIndex++ {
		var corners [4]float64
		corners[cornerTL] = lo
		corners[cornerTR] = lo
		corners[cornerBR] = lo
		corners[cornerBL] = lo
		if caseIndex&8 != 0 {
			corners[cornerTL] = hi
		}
		if caseIndex&4 != 0 {
			corners[cornerTR] = hi
		}
		if caseIndex&2 != 0 {
			corners[cornerBR] = hi
		}
		if caseIndex&1 != 0 {
			corners[cornerBL] = hi
		}

		cell := makeCell(corners)
		marchCell(cell, 0.5, true)

		for _, poly := range cell.Polygons {
			assert.True(t, poly.Valid(), "случай %d: невалидный полигон", caseIndex)
		}
		for _, seg := range cell.Contours {
			assert.True(t, seg.A.IsFinite() && seg.B.IsFinite(),
				"случай %d: неконечный контур", caseIndex)
		}
	}
}

func TestMarchingEmptyAndFull(t *testing.T) {
	empty := makeCell([4]float64{0.1, 0.1, 0.1, 0.1})
	marchCell(empty, 0.5, true)
	assert.Empty(t, empty.Contours)
	assert.Empty(t, empty.Polygons)

	full := makeCell([4]float64{0.9, 0.9, 0.9, 0.9})
	marchCell(full, 0.5, true)
	assert.Empty(t, full.Contours, "полная ячейка не имеет контура")
	assert.Len(t, full.Polygons, 1)
	assert.Len(t, full.Polygons[0], 4, "полная ячейка — один четырёхугольник")
}

func TestMarchingSaddleCases(t *testing.T) {
	// Сёдла раскрываются в два несвязанных треугольника, не в один квад
	case5 := makeCell([4]float64{0.2, 0.8, 0.2, 0.8}) // TR+BL
	marchCell(case5, 0.5, true)
	assert.Len(t, case5.Polygons, 2)
	assert.Len(t, case5.Contours, 2)
	for _, poly := range case5.Polygons {
		assert.Len(t, poly, 3)
	}

	case10 := makeCell([4]float64{0.8, 0.2, 0.8, 0.2}) // TL+BR
	marchCell(case10, 0.5, true)
	assert.Len(t, case10.Polygons, 2)
	assert.Len(t, case10.Contours, 2)
	for _, poly := range case10.Polygons {
		assert.Len(t, poly, 3)
	}
}

func TestMarchingSingleCornerTriangle(t *testing.T) {
	cell := makeCell([4]float64{0.9, 0.1, 0.1, 0.1}) // только TL
	marchCell(cell, 0.5, true)

	assert.Len(t, cell.Polygons, 1)
	assert.Len(t, cell.Polygons[0], 3)
	assert.Len(t, cell.Contours, 1)
}

func TestMarchingAdjacentPairQuad(t *testing.T) {
	cell := makeCell([4]float64{0.9, 0.9, 0.1, 0.1}) // TL+TR
	marchCell(cell, 0.5, true)

	assert.Len(t, cell.Polygons, 1)
	assert.Len(t, cell.Polygons[0], 4)
}

func TestMarchingInterpolation(t *testing.T) {
	// Порог 0.5 между 0 и 1 пересекает ребро ровно посередине,
	// между 0.4 и 0.6 — тоже посередине, между 0 и 0.5+eps — ближе к
	// заполненному углу
	cell := makeCell([4]float64{1.0, 0.0, 0.0, 0.0})
	marchCell(cell, 0.5, true)

	// Верхнее ребро: t = (0.5-1)/(0-1) = 0.5 -> x=5
	seg := cell.Contours[0]
	pts := []vec.Vec2Float{seg.A, seg.B}
	foundTop := false
	for _, p := range pts {
		if p.Y == 0 {
			assert.InDelta(t, 5.0, p.X, 1e-9)
			foundTop = true
		}
	}
	assert.True(t, foundTop, "ожидалась точка на верхнем ребре")
}

func TestMarchingMidpointFallback(t *testing.T) {
	// Без сглаживания точки пересечения всегда на серединах рёбер
	cell := makeCell([4]float64{0.95, 0.05, 0.05, 0.05})
	marchCell(cell, 0.5, false)

	seg := cell.Contours[0]
	for _, p := range []vec.Vec2Float{seg.A, seg.B} {
		onMidTop := p.X == 5 && p.Y == 0
		onMidLeft := p.X == 0 && p.Y == 5
		assert.True(t, onMidTop || onMidLeft, "точка %v не на середине ребра", p)
	}
}

func TestMarchingNearEqualValuesStable(t *testing.T) {
	// Разность значений около нуля: интерполяция откатывается к середине,
	// без NaN
	cell := makeCell([4]float64{0.5 + 1e-12, 0.5 - 1e-12, 0.5 - 1e-12, 0.5 - 1e-12})
	marchCell(cell, 0.5, true)

	for _, poly := range cell.Polygons {
		assert.True(t, poly.Valid())
	}
}
