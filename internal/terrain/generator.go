package terrain

import (
	"time"

	"github.com/annel0/terrain2d/internal/logging"
	"github.com/annel0/terrain2d/internal/vec"
)

// generateGrid генерирует грид целиком: высоты углов, биомы со сглаживанием
// переходов, контуры/полигоны marching squares и декорации.
// Результат — чистая функция текущей конфигурации и координат грида;
// выборка высот идёт по абсолютным мировым координатам, поэтому швов на
// границах гридов нет.
func (t *Terrain) generateGrid(coords vec.Vec2) *Grid {
	start := time.Now()

	res := t.cfg.GridResolution
	size := t.cfg.GridSize
	span := t.cfg.GridSpan()
	baseX := float64(coords.X) * span
	baseY := float64(coords.Y) * span

	grid := &Grid{
		Coords: coords,
		Cells:  make([]*Cell, res*res),
	}

	// Первый проход: высоты углов и первичная классификация биомов
	biomes := make([]string, res*res)
	for cy := 0; cy < res; cy++ {
		for cx := 0; cx < res; cx++ {
			px := baseX + float64(cx)*size
			py := baseY + float64(cy)*size

			cell := &Cell{
				Pos:  vec.Vec2Float{X: px, Y: py},
				Size: size,
			}
			cell.Corners[cornerTL] = t.engine.GenerateHeight(px, py)
			cell.Corners[cornerTR] = t.engine.GenerateHeight(px+size, py)
			cell.Corners[cornerBR] = t.engine.GenerateHeight(px+size, py+size)
			cell.Corners[cornerBL] = t.engine.GenerateHeight(px, py+size)
			cell.AverageHeight = (cell.Corners[0] + cell.Corners[1] +
				cell.Corners[2] + cell.Corners[3]) / 4

			idx := cy*res + cx
			grid.Cells[idx] = cell
			biomes[idx] = t.classifyBiome(cell.Center(), cell.AverageHeight)
		}
	}

	// Второй проход: сглаживание границ биомов по четырём соседям.
	// Для ячеек на краю грида биом соседа вычисляется заново той же чистой
	// функцией — сглаживание тоже бесшовно между гридами.
	smoothed := make([]string, res*res)
	for cy := 0; cy < res; cy++ {
		for cx := 0; cx < res; cx++ {
			idx := cy*res + cx
			smoothed[idx] = t.smoothBiome(grid, biomes, cx, cy)
		}
	}

	// Третий проход: биом, контуры, текстура, декорации.
	// Декорации строятся строго после полигонов: контейнмент проверяется
	// по готовой геометрии.
	for idx, cell := range grid.Cells {
		cell.Biome = smoothed[idx]
		marchCell(cell, t.cfg.Threshold, t.cfg.SmoothTerrain)

		biome, ok := t.cfg.Biomes[cell.Biome]
		if !ok {
			continue
		}

		center := cell.Center()
		cell.TexturePattern = t.engine.Channel(textureChannelOffset,
			center.X*biome.TextureScale, center.Y*biome.TextureScale)

		cell.Squares = t.placeDecorations(cell, biome)
	}

	elapsed := time.Since(start)
	logging.LogGridGenerated(coords.X, coords.Y, len(grid.Cells), elapsed)
	t.metrics.ObserveGenerate(elapsed.Seconds())

	return grid
}

// classifyBiome определяет биом в точке: кандидаты отбираются по диапазону
// высот, затем выбор среди кандидатов делается по каналу биомов с
// перекрёстной проверкой температуры и влажности. Для таблицы из одного
// биома вырождается в константу, но интерфейс рассчитан на N биомов.
func (t *Terrain) classifyBiome(center vec.Vec2Float, avgHeight float64) string {
	keys := t.biomeKeys
	if len(keys) == 0 {
		return ""
	}
	if len(keys) == 1 {
		return keys[0]
	}

	candidates := make([]string, 0, len(keys))
	for _, key := range keys {
		b := t.cfg.Biomes[key]
		if avgHeight >= b.MinHeight && avgHeight <= b.MaxHeight {
			candidates = append(candidates, key)
		}
	}
	if len(candidates) == 0 {
		candidates = keys
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	bs := t.cfg.BiomeScale
	biomeValue := t.engine.Channel(biomeChannelOffset, center.X*bs, center.Y*bs)
	temperature := t.engine.Channel(temperatureChannelOffset, center.X*bs, center.Y*bs)
	humidity := t.engine.Channel(humidityChannelOffset, center.X*bs, center.Y*bs)

	mixed := biomeValue*0.5 + temperature*0.25 + humidity*0.25
	idx := int(mixed * float64(len(candidates)))
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	return candidates[idx]
}

// cellBiomeAt вычисляет биом ячейки по её мировому левому верхнему углу.
// Чистая функция: используется для соседей за границей грида.
func (t *Terrain) cellBiomeAt(px, py float64) string {
	size := t.cfg.GridSize
	sum := t.engine.GenerateHeight(px, py) +
		t.engine.GenerateHeight(px+size, py) +
		t.engine.GenerateHeight(px+size, py+size) +
		t.engine.GenerateHeight(px, py+size)
	center := vec.Vec2Float{X: px + size/2, Y: py + size/2}
	return t.classifyBiome(center, sum/4)
}

// smoothBiome сглаживает границы биомов: если биом ячейки отличается от
// соседского и шум перехода выше порога, ячейка вероятностно принимает биом
// соседа. Границы получаются мягкими, а не выровненными по сетке.
func (t *Terrain) smoothBiome(grid *Grid, biomes []string, cx, cy int) string {
	res := t.cfg.GridResolution
	idx := cy*res + cx
	own := biomes[idx]

	if len(t.biomeKeys) < 2 {
		return own
	}

	cell := grid.Cells[idx]
	neighborAt := func(nx, ny int) string {
		if nx >= 0 && ny >= 0 && nx < res && ny < res {
			return biomes[ny*res+nx]
		}
		// Сосед в другом гриде
		return t.cellBiomeAt(
			cell.Pos.X+float64(nx-cx)*cell.Size,
			cell.Pos.Y+float64(ny-cy)*cell.Size,
		)
	}

	var different []string
	for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		nb := neighborAt(cx+d[0], cy+d[1])
		if nb != own && nb != "" {
			different = append(different, nb)
		}
	}
	if len(different) == 0 {
		return own
	}

	center := cell.Center()
	ts := t.cfg.TransitionScale
	transition := t.engine.Channel(transitionChannelOffset, center.X*ts, center.Y*ts)
	if transition <= t.cfg.TransitionThreshold {
		return own
	}

	// Детерминированный выбор соседа из того же значения шума
	pick := int(transition*997) % len(different)
	return different[pick]
}
