package geom

import (
	"math"

	"github.com/annel0/terrain2d/internal/vec"
)

// Polygon замкнутый многоугольник, вершины в порядке обхода
type Polygon []vec.Vec2Float

// Sanitize отбрасывает вершины с неконечными координатами и возвращает
// пригодный многоугольник. Второе значение false, если после фильтрации
// осталось меньше трёх вершин — такой многоугольник не сохраняется.
func Sanitize(points []vec.Vec2Float) (Polygon, bool) {
	out := make(Polygon, 0, len(points))
	for _, p := range points {
		if p.IsFinite() {
			out = append(out, p)
		}
	}
	if len(out) < 3 {
		return nil, false
	}
	return out, true
}

// Valid возвращает true для многоугольника из трёх и более конечных вершин
func (p Polygon) Valid() bool {
	if len(p) < 3 {
		return false
	}
	for _, pt := range p {
		if !pt.IsFinite() {
			return false
		}
	}
	return true
}

// Contains проверяет принадлежность точки многоугольнику методом
// трассировки луча (правило чётности)
func (p Polygon) Contains(pt vec.Vec2Float) bool {
	inside := false
	n := len(p)
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := p[i], p[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) &&
			pt.X < (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// Centroid возвращает центроид, взвешенный по площади (формула шнуровки).
// Простое среднее вершин смещено на неравномерных многоугольниках, поэтому
// для центра физического тела используется именно площадной центроид.
// Для вырожденных (почти нулевой площади) многоугольников откатывается
// к среднему вершин.
func (p Polygon) Centroid() vec.Vec2Float {
	var area, cx, cy float64
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p[i].X*p[j].Y - p[j].X*p[i].Y
		area += cross
		cx += (p[i].X + p[j].X) * cross
		cy += (p[i].Y + p[j].Y) * cross
	}
	area *= 0.5

	if math.Abs(area) < 1e-9 {
		var sx, sy float64
		for _, pt := range p {
			sx += pt.X
			sy += pt.Y
		}
		return vec.Vec2Float{X: sx / float64(n), Y: sy / float64(n)}
	}

	inv := 1 / (6 * area)
	return vec.Vec2Float{X: cx * inv, Y: cy * inv}
}

// Bounds возвращает ограничивающий прямоугольник
func (p Polygon) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range p {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// IntersectsRect проверяет геометрическое пересечение многоугольника
// с прямоугольником: либо вершина многоугольника внутри прямоугольника,
// либо угол прямоугольника внутри многоугольника
func (p Polygon) IntersectsRect(r Rect) bool {
	for _, pt := range p {
		if r.ContainsPoint(pt) {
			return true
		}
	}
	for _, c := range r.Corners() {
		if p.Contains(c) {
			return true
		}
	}
	return false
}
