package noise

import (
	"math"
	"math/rand"

	"github.com/annel0/terrain2d/internal/vec"
	"github.com/aquilax/go-perlin"
)

// Engine генерирует детерминированное поле высот.
// Значение высоты — чистая функция (seed, тип генерации, мировые координаты):
// нигде не используется глобальное изменяемое состояние RNG, поэтому
// выборка на границах гридов бесшовна.
type Engine struct {
	seed    int64
	genType GenerationType
	params  Params

	perlin *perlin.Perlin
	perm   [512]int // Перестановочная таблица для симплекс-шума

	mazes map[vec.Vec2]*maze // Кэш лабиринтов по регионам (содержимое детерминировано)
}

// NewEngine создаёт движок шума с указанным сидом и типом генерации.
// Неизвестный тип заменяется октавным шумом.
func NewEngine(seed int64, genType GenerationType, params Params) *Engine {
	params.Clamp()

	e := &Engine{
		seed:    seed,
		genType: Normalize(genType, nil),
		params:  params,
		perlin:  perlin.NewPerlin(2.0, 2.0, 3, seed),
		mazes:   make(map[vec.Vec2]*maze),
	}
	e.initPermutation()
	return e
}

// GenerationTypeUsed возвращает фактически используемый тип генерации
func (e *Engine) GenerationTypeUsed() GenerationType {
	return e.genType
}

// Seed возвращает сид движка
func (e *Engine) Seed() int64 {
	return e.seed
}

// GenerateHeight возвращает высоту в точке мировых координат, диапазон ~[0,1]
func (e *Engine) GenerateHeight(x, y float64) float64 {
	switch e.genType {
	case GenValueNoise:
		return hashNoise(e.seed, x*e.params.NoiseScale, y*e.params.NoiseScale)
	case GenOctaveNoise:
		return e.octaveNoise(x, y)
	case GenHeightConstrained:
		return e.heightConstrained(x, y)
	case GenPerlinNoise:
		return e.perlinNoise(x, y)
	case GenSimplexNoise:
		return e.simplexNoise(x, y)
	case GenMaze:
		return e.mazeHeight(x, y)
	default:
		return e.octaveNoise(x, y)
	}
}

// Channel возвращает сглаженный шум независимого канала (биомы, переходы,
// текстура). Смещение сида отделяет канал от поля высот: каналы с разными
// смещениями не коррелируют.
func (e *Engine) Channel(offset int64, x, y float64) float64 {
	return smoothNoise(e.seed+offset, x, y)
}

// hashNoise хэш-шум: frac(sin(x·a + y·b + seed·c) · k).
func hashNoise(seed int64, x, y float64) float64 {
	v := math.Sin(x*12.9898+y*78.233+float64(seed)*0.54321) * 43758.5453123
	if v == 0 {
		v = 0 // sin может вернуть -0; без выравнивания выборка в нуле несимметрична
	}
	return v - math.Floor(v)
}

// smoothNoise билинейно интерполирует решёточный hashNoise
func smoothNoise(seed int64, x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	tx := x - x0
	ty := y - y0

	// Сглаживающая кривая 3t²−2t³
	u := tx * tx * (3 - 2*tx)
	w := ty * ty * (3 - 2*ty)

	n00 := hashNoise(seed, x0, y0)
	n10 := hashNoise(seed, x0+1, y0)
	n01 := hashNoise(seed, x0, y0+1)
	n11 := hashNoise(seed, x0+1, y0+1)

	top := n00 + (n10-n00)*u
	bottom := n01 + (n11-n01)*u
	return top + (bottom-top)*w
}

// octaveNoise суммирует октавы сглаженного шума с ростом частоты
// (lacunarity) и затуханием амплитуды (persistence), нормируя на суммарную
// амплитуду
func (e *Engine) octaveNoise(x, y float64) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := e.params.NoiseScale
	maxAmplitude := 0.0

	for i := 0; i < e.params.Octaves; i++ {
		total += smoothNoise(e.seed, x*frequency, y*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= e.params.Persistence
		frequency *= e.params.Lacunarity
	}

	return total / maxAmplitude
}

// heightConstrained октавный шум, плавно гасимый ниже порога MinHeight.
// Квадратичное затухание по полосе TransitionBand убирает видимую жёсткую
// границу.
func (e *Engine) heightConstrained(x, y float64) float64 {
	base := e.octaveNoise(x, y)
	if y >= e.params.MinHeight {
		return base
	}

	t := (e.params.MinHeight - y) / e.params.TransitionBand
	if t >= 1 {
		return 0
	}
	return base * (1 - t*t)
}

// perlinNoise классический градиентный шум, приведённый к [0,1]
func (e *Engine) perlinNoise(x, y float64) float64 {
	n := e.perlin.Noise2D(x*e.params.NoiseScale, y*e.params.NoiseScale)
	return (n + 1.0) / 2.0
}

// valueNoise сохраняет внутренний доступ к хэш-шуму движка
// (джиттер лабиринта, тесты)
func (e *Engine) valueNoise(x, y float64) float64 {
	return hashNoise(e.seed, x, y)
}

// initPermutation заполняет перестановочную таблицу тасованием
// Фишера-Йетса от сида
func (e *Engine) initPermutation() {
	p := make([]int, 256)
	for i := range p {
		p[i] = i
	}

	rng := rand.New(rand.NewSource(e.seed))
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}

	for i := 0; i < 512; i++ {
		e.perm[i] = p[i&255]
	}
}
