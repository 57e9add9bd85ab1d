package noise

import (
	"math"
	"math/rand"

	"github.com/annel0/terrain2d/internal/vec"
)

// Ячейка решётки лабиринта
type mazeCell uint8

const (
	mazeWall mazeCell = iota
	mazePath
)

// maze решётка лабиринта одного региона
type maze struct {
	size  int
	cells []mazeCell
}

func (m *maze) at(x, y int) mazeCell {
	if x < 0 || y < 0 || x >= m.size || y >= m.size {
		return mazeWall
	}
	return m.cells[y*m.size+x]
}

func (m *maze) set(x, y int, c mazeCell) {
	m.cells[y*m.size+x] = c
}

// mazeHeight отображает тип ячейки лабиринта (стена/проход) плюс локальный
// джиттер шума в значение высоты
func (e *Engine) mazeHeight(x, y float64) float64 {
	size := e.params.MazeRegionSize
	regionSpan := e.params.MazeCellSize * float64(size)

	region := vec.Vec2{
		X: int(math.Floor(x / regionSpan)),
		Y: int(math.Floor(y / regionSpan)),
	}
	m := e.mazeFor(region)

	localX := int(math.Floor((x - float64(region.X)*regionSpan) / e.params.MazeCellSize))
	localY := int(math.Floor((y - float64(region.Y)*regionSpan) / e.params.MazeCellSize))
	if localX < 0 {
		localX = 0
	}
	if localX >= size {
		localX = size - 1
	}
	if localY < 0 {
		localY = 0
	}
	if localY >= size {
		localY = size - 1
	}

	jitter := e.valueNoise(x*e.params.NoiseScale, y*e.params.NoiseScale)

	if m.at(localX, localY) == mazeWall {
		return 0.75 + 0.25*jitter
	}
	return 0.05 + 0.15*jitter
}

// mazeFor возвращает лабиринт региона, генерируя его при первом запросе.
// Содержимое детерминировано: сид региона выводится из глобального сида и
// координат, кэш лишь избавляет от повторной генерации.
func (e *Engine) mazeFor(region vec.Vec2) *maze {
	if m, ok := e.mazes[region]; ok {
		return m
	}

	// Кэш ограничен: при переполнении сбрасываем целиком, лабиринты
	// регенерируются детерминированно
	if len(e.mazes) > 64 {
		e.mazes = make(map[vec.Vec2]*maze)
	}

	regionSeed := e.seed + int64(region.X)*31 + int64(region.Y)*17
	rng := rand.New(rand.NewSource(regionSeed))

	m := generateMaze(e.params.MazeRegionSize, rng)
	openDeadEnds(m, e.params.MazeComplexity, rng)

	e.mazes[region] = m
	return m
}

// generateMaze строит случайное остовное дерево алгоритмом Прима.
// Комнаты лежат на нечётных координатах решётки, стены между ними — на чётных.
func generateMaze(size int, rng *rand.Rand) *maze {
	m := &maze{
		size:  size,
		cells: make([]mazeCell, size*size),
	}

	type wall struct {
		x, y   int // стена
		rx, ry int // комната за стеной
	}

	start := vec.Vec2{X: 1, Y: 1}
	m.set(start.X, start.Y, mazePath)

	var frontier []wall
	addWalls := func(cx, cy int) {
		dirs := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
		for _, d := range dirs {
			wx, wy := cx+d[0], cy+d[1]
			rx, ry := cx+2*d[0], cy+2*d[1]
			if rx > 0 && ry > 0 && rx < size-1 && ry < size-1 {
				frontier = append(frontier, wall{x: wx, y: wy, rx: rx, ry: ry})
			}
		}
	}
	addWalls(start.X, start.Y)

	for len(frontier) > 0 {
		idx := rng.Intn(len(frontier))
		w := frontier[idx]
		frontier[idx] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if m.at(w.rx, w.ry) == mazePath {
			continue
		}

		m.set(w.x, w.y, mazePath)
		m.set(w.rx, w.ry, mazePath)
		addWalls(w.rx, w.ry)
	}

	return m
}

// openDeadEnds пробивает случайные стены у тупиков пропорционально
// (1 - complexity): complexity=1 оставляет идеальный лабиринт,
// complexity=0 раскрывает все тупики
func openDeadEnds(m *maze, complexity float64, rng *rand.Rand) {
	dirs := [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	for y := 1; y < m.size-1; y += 2 {
		for x := 1; x < m.size-1; x += 2 {
			if m.at(x, y) != mazePath {
				continue
			}

			walls := make([][2]int, 0, 4)
			for _, d := range dirs {
				if m.at(x+d[0], y+d[1]) == mazeWall {
					walls = append(walls, [2]int{x + d[0], y + d[1]})
				}
			}

			// Тупик: три стены из четырёх
			if len(walls) < 3 {
				continue
			}
			if rng.Float64() >= 1-complexity {
				continue
			}

			w := walls[rng.Intn(len(walls))]
			// Не пробиваем внешнюю границу региона
			if w[0] == 0 || w[1] == 0 || w[0] == m.size-1 || w[1] == m.size-1 {
				continue
			}
			m.set(w[0], w[1], mazePath)
		}
	}
}
