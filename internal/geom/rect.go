package geom

import "github.com/annel0/terrain2d/internal/vec"

// Rect прямоугольник в мировых координатах (X,Y — левый верхний угол)
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// ContainsPoint проверяет принадлежность точки прямоугольнику
func (r Rect) ContainsPoint(p vec.Vec2Float) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Intersects проверяет пересечение двух прямоугольников
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// Corners возвращает четыре угла прямоугольника по часовой стрелке
// от левого верхнего
func (r Rect) Corners() [4]vec.Vec2Float {
	return [4]vec.Vec2Float{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// Center возвращает центр прямоугольника
func (r Rect) Center() vec.Vec2Float {
	return vec.Vec2Float{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
