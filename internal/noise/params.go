package noise

// GenerationType выбирает алгоритм генерации высот
type GenerationType string

const (
	GenValueNoise        GenerationType = "ValueNoise"
	GenOctaveNoise       GenerationType = "OctaveNoise"
	GenHeightConstrained GenerationType = "HeightConstrained"
	GenPerlinNoise       GenerationType = "PerlinNoise"
	GenSimplexNoise      GenerationType = "SimplexNoise"
	GenMaze              GenerationType = "Maze"
)

// Normalize возвращает допустимый тип генерации.
// Неизвестный или запрещённый тип заменяется октавным шумом.
// Пустой список enabled разрешает все типы.
func Normalize(t GenerationType, enabled []string) GenerationType {
	switch t {
	case GenValueNoise, GenOctaveNoise, GenHeightConstrained,
		GenPerlinNoise, GenSimplexNoise, GenMaze:
	default:
		return GenOctaveNoise
	}

	if len(enabled) == 0 {
		return t
	}
	for _, name := range enabled {
		if GenerationType(name) == t {
			return t
		}
	}
	return GenOctaveNoise
}

// Params настройки алгоритмов генерации высот
type Params struct {
	Octaves        int     `yaml:"octaves" json:"octaves"`
	Persistence    float64 `yaml:"persistence" json:"persistence"` // Затухание амплитуды между октавами
	Lacunarity     float64 `yaml:"lacunarity" json:"lacunarity"`   // Рост частоты между октавами
	NoiseScale     float64 `yaml:"noise_scale" json:"noiseScale"`  // Базовая частота шума
	MinHeight      float64 `yaml:"min_height" json:"minHeight"`    // Порог для HeightConstrained
	TransitionBand float64 `yaml:"transition_band" json:"transitionBand"`
	MazeRegionSize int     `yaml:"maze_region_size" json:"mazeRegionSize"` // Ячеек лабиринта на сторону региона
	MazeCellSize   float64 `yaml:"maze_cell_size" json:"mazeCellSize"`     // Мировой размер ячейки лабиринта
	MazeComplexity float64 `yaml:"maze_complexity" json:"mazeComplexity"`  // 0..1: доля сохранённых тупиков
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{
		Octaves:        4,
		Persistence:    0.5,
		Lacunarity:     2.0,
		NoiseScale:     0.05,
		MinHeight:      0,
		TransitionBand: 40,
		MazeRegionSize: 15,
		MazeCellSize:   20,
		MazeComplexity: 0.8,
	}
}

// Clamp молча приводит параметры к допустимым диапазонам
func (p *Params) Clamp() {
	if p.Octaves < 1 {
		p.Octaves = 1
	}
	if p.Octaves > 8 {
		p.Octaves = 8
	}
	if p.Persistence <= 0 {
		p.Persistence = 0.5
	}
	if p.Lacunarity < 1 {
		p.Lacunarity = 2.0
	}
	if p.NoiseScale <= 0 {
		p.NoiseScale = 0.05
	}
	if p.TransitionBand <= 0 {
		p.TransitionBand = 40
	}
	if p.MazeRegionSize < 3 {
		p.MazeRegionSize = 15
	}
	// Размер лабиринта должен быть нечётным: комнаты лежат на нечётных
	// координатах решётки
	if p.MazeRegionSize%2 == 0 {
		p.MazeRegionSize++
	}
	if p.MazeCellSize <= 0 {
		p.MazeCellSize = 20
	}
	if p.MazeComplexity < 0 {
		p.MazeComplexity = 0
	}
	if p.MazeComplexity > 1 {
		p.MazeComplexity = 1
	}
}
