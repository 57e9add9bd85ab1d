package noise

import "math"

// Константы скоса симплекс-решётки 2D
const (
	simplexF2 = 0.3660254037844386  // 0.5*(sqrt(3)-1)
	simplexG2 = 0.21132486540518713 // (3-sqrt(3))/6
)

var simplexGrad = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// simplexNoise 2D симплекс-шум на сидированной перестановочной таблице,
// приведённый к [0,1]
func (e *Engine) simplexNoise(x, y float64) float64 {
	xin := x * e.params.NoiseScale
	yin := y * e.params.NoiseScale

	// Скос в координаты симплекс-решётки
	s := (xin + yin) * simplexF2
	i := math.Floor(xin + s)
	j := math.Floor(yin + s)

	// Обратный скос к началу ячейки
	t := (i + j) * simplexG2
	x0 := xin - (i - t)
	y0 := yin - (j - t)

	// Определяем, в каком из двух треугольников ячейки лежит точка
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0 // нижний треугольник
	} else {
		i1, j1 = 0, 1 // верхний треугольник
	}

	x1 := x0 - float64(i1) + simplexG2
	y1 := y0 - float64(j1) + simplexG2
	x2 := x0 - 1 + 2*simplexG2
	y2 := y0 - 1 + 2*simplexG2

	ii := int(i) & 255
	jj := int(j) & 255

	gi0 := e.perm[ii+e.perm[jj]] & 7
	gi1 := e.perm[ii+i1+e.perm[jj+j1]] & 7
	gi2 := e.perm[ii+1+e.perm[jj+1]] & 7

	// Сумма вкладов трёх углов
	n := simplexCorner(x0, y0, simplexGrad[gi0]) +
		simplexCorner(x1, y1, simplexGrad[gi1]) +
		simplexCorner(x2, y2, simplexGrad[gi2])

	// 70·n даёт диапазон примерно [-1,1]
	return (70*n + 1) / 2
}

// simplexCorner вклад одного угла симплекса
func simplexCorner(x, y float64, grad [2]float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (grad[0]*x + grad[1]*y)
}
