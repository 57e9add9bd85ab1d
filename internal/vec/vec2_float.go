package vec

import "math"

// Vec2Float представляет 2D координаты с плавающей точкой (мировые координаты)
type Vec2Float struct {
	X, Y float64
}

// ToVec2 преобразует в целочисленные координаты (с отбрасыванием дробной части)
func (v Vec2Float) ToVec2() Vec2 {
	return Vec2{X: int(v.X), Y: int(v.Y)}
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub вычитает вектор
func (v Vec2Float) Sub(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Y: v.Y * scalar}
}

// Length возвращает длину вектора
func (v Vec2Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2Float) DistanceTo(other Vec2Float) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// IsFinite возвращает true, если обе координаты конечны (не NaN и не Inf)
func (v Vec2Float) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ToGridCoords возвращает координаты грида, содержащего точку,
// для гридов размером size мировых единиц
func (v Vec2Float) ToGridCoords(size float64) Vec2 {
	return Vec2{
		X: int(math.Floor(v.X / size)),
		Y: int(math.Floor(v.Y / size)),
	}
}
