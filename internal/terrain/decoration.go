package terrain

import (
	"math/rand"

	"github.com/annel0/terrain2d/internal/vec"
)

// Максимум попыток подбора позиции одного квадрата
const decorMaxTries = 50

// placeDecorations размещает декоративные квадраты внутри полигонов ячейки
// отбором с отклонением. Кандидат принимается, если он достаточно далёк от
// уже принятых квадратов и все четыре его угла лежат внутри хотя бы одного
// полигона. RNG сидируется от позиции ячейки и глобального сида, поэтому
// раскладка детерминирована.
func (t *Terrain) placeDecorations(cell *Cell, biome Biome) []DecorSquare {
	if !biome.EnableSquares || biome.SquareCount <= 0 || len(cell.Polygons) == 0 {
		return nil
	}

	cellSeed := int64(cell.Pos.X)*1000000 + int64(cell.Pos.Y)*10000 + t.cfg.Seed
	rng := rand.New(rand.NewSource(cellSeed))

	squares := make([]DecorSquare, 0, biome.SquareCount)

	for i := 0; i < biome.SquareCount; i++ {
		// Джиттер размеров/прозрачности — от собственного суб-сида квадрата,
		// чтобы раскладка не зависела от числа неудачных попыток соседей
		jitter := rand.New(rand.NewSource(cellSeed + int64(i)*97))
		size := biome.SquareMinSize +
			jitter.Float64()*(biome.SquareMaxSize-biome.SquareMinSize)
		opacity := biome.SquareOpacity * (0.7 + 0.6*jitter.Float64())
		brightness := 0.85 + 0.3*jitter.Float64()

		for try := 0; try < decorMaxTries; try++ {
			pos := vec.Vec2Float{
				X: cell.Pos.X + rng.Float64()*(cell.Size-size),
				Y: cell.Pos.Y + rng.Float64()*(cell.Size-size),
			}

			if !farEnough(pos, squares, biome.SquareSpacing) {
				continue
			}
			if !cornersInsidePolygons(cell, pos, size) {
				continue
			}

			color := VaryColor(biome.FillColor,
				float64(cellSeed%100000)+float64(i)*13.7, biome.ColorVariation)

			squares = append(squares, DecorSquare{
				Pos:        pos,
				Size:       size,
				Opacity:    opacity,
				Brightness: brightness,
				Color:      AdjustBrightness(color, brightness),
			})
			break
		}
	}

	return squares
}

// farEnough проверяет дистанцию до всех уже принятых квадратов
func farEnough(pos vec.Vec2Float, accepted []DecorSquare, spacing float64) bool {
	for _, s := range accepted {
		if pos.DistanceTo(s.Pos) < spacing {
			return false
		}
	}
	return true
}

// cornersInsidePolygons проверяет, что все четыре угла квадрата лежат
// внутри хотя бы одного полигона ячейки
func cornersInsidePolygons(cell *Cell, pos vec.Vec2Float, size float64) bool {
	corners := [4]vec.Vec2Float{
		{X: pos.X, Y: pos.Y},
		{X: pos.X + size, Y: pos.Y},
		{X: pos.X + size, Y: pos.Y + size},
		{X: pos.X, Y: pos.Y + size},
	}

	for _, corner := range corners {
		inside := false
		for _, poly := range cell.Polygons {
			if poly.Contains(corner) {
				inside = true
				break
			}
		}
		if !inside {
			return false
		}
	}
	return true
}
