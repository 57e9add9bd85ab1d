package terrain

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/annel0/terrain2d/internal/geom"
	"github.com/annel0/terrain2d/internal/logging"
	"github.com/annel0/terrain2d/internal/noise"
	"github.com/annel0/terrain2d/internal/observability"
	"github.com/annel0/terrain2d/internal/physics"
	"github.com/annel0/terrain2d/internal/vec"
)

// Terrain модуль процедурного ландшафта marching squares.
//
// Однопоточная кадровая модель: генерация, извлечение контуров и
// обслуживание кэшей выполняются синхронно внутри Update и вызовов
// активации. Все три хранилища (кэш гридов, записи физики, точки активации)
// трогаются только из этого потока — блокировки не нужны; при переносе в
// многопоточный хост их нужно закрыть одной общей блокировкой.
type Terrain struct {
	cfg       Config
	engine    *noise.Engine
	biomeKeys []string // Отсортированные ключи таблицы биомов

	grids *BoundedCache[*Grid]

	phys        physics.Manager
	rigid       *BoundedCache[*rigidEntry]
	activations map[string]*activationPoint

	metrics *observability.TerrainMetrics
	now     func() time.Time
}

// New создаёт модуль ландшафта. Коллабораторы передаются явно:
// phys может быть nil — тогда все операции с телами становятся no-op;
// metrics может быть nil — метрики не собираются.
func New(cfg Config, phys physics.Manager, metrics *observability.TerrainMetrics) *Terrain {
	cfg.Clamp()

	t := &Terrain{
		cfg:         cfg,
		phys:        phys,
		metrics:     metrics,
		activations: make(map[string]*activationPoint),
		now:         time.Now,
	}
	t.rebuild()
	return t
}

// rebuild пересоздаёт движок шума и кэши из текущей конфигурации
func (t *Terrain) rebuild() {
	genType := noise.Normalize(t.cfg.GenerationType, t.cfg.EnabledGenerators)
	t.engine = noise.NewEngine(t.cfg.Seed, genType, t.cfg.Noise)
	t.biomeKeys = sortedBiomeKeys(t.cfg.Biomes)
	t.grids = NewBoundedCache[*Grid](t.cfg.CacheTrigger)
	t.rigid = NewBoundedCache[*rigidEntry](t.cfg.RigidCacheTrigger)
}

// Config возвращает копию текущей конфигурации
func (t *Terrain) Config() Config {
	cfg := t.cfg
	cfg.Biomes = make(map[string]Biome, len(t.cfg.Biomes))
	for k, v := range t.cfg.Biomes {
		cfg.Biomes[k] = v
	}
	return cfg
}

// Update обновляет кэш гридов под вьюпорт: генерирует недостающие видимые
// гриды, помечает их активными и запускает вытеснение. Видимые гриды не
// вытесняются независимо от размера кэша.
func (t *Terrain) Update(viewport geom.Rect) {
	span := t.cfg.GridSpan()
	margin := t.cfg.ViewMargin

	minGX := int(math.Floor(viewport.X/span)) - margin
	maxGX := int(math.Floor((viewport.X+viewport.Width)/span)) + margin
	minGY := int(math.Floor(viewport.Y/span)) - margin
	maxGY := int(math.Floor((viewport.Y+viewport.Height)/span)) + margin

	t.grids.BeginFrame()

	for gy := minGY; gy <= maxGY; gy++ {
		for gx := minGX; gx <= maxGX; gx++ {
			coords := vec.Vec2{X: gx, Y: gy}
			key := gridKey(coords)
			if _, ok := t.grids.Get(key); ok {
				t.metrics.CacheHit()
			} else {
				t.metrics.CacheMiss()
				t.grids.Put(key, t.generateGrid(coords))
			}
			t.grids.MarkActive(key)
		}
	}

	evicted := t.grids.Evict()
	if len(evicted) > 0 {
		t.metrics.Evicted(len(evicted))
		logging.LogCacheEviction(len(evicted), t.grids.Len())
	}
	t.metrics.SetCachedGrids(t.grids.Len())
}

// ensureGrid возвращает грид, генерируя и кэшируя его при необходимости,
// не помечая активным
func (t *Terrain) ensureGrid(coords vec.Vec2) *Grid {
	key := gridKey(coords)
	if g, ok := t.grids.Get(key); ok {
		return g
	}
	g := t.generateGrid(coords)
	t.grids.Put(key, g)
	return g
}

// CachedGrids возвращает текущий размер кэша гридов
func (t *Terrain) CachedGrids() int {
	return t.grids.Len()
}

// ClearCache сбрасывает кэш гридов (гриды детерминированно регенерируются)
func (t *Terrain) ClearCache() {
	t.grids.Clear()
}

// CellAtWorldPosition возвращает ячейку, содержащую точку.
// Для неконечных координат возвращает nil.
func (t *Terrain) CellAtWorldPosition(x, y float64) *Cell {
	p := vec.Vec2Float{X: x, Y: y}
	if !p.IsFinite() {
		return nil
	}

	span := t.cfg.GridSpan()
	grid := t.ensureGrid(p.ToGridCoords(span))

	res := t.cfg.GridResolution
	size := t.cfg.GridSize
	baseX := float64(grid.Coords.X) * span
	baseY := float64(grid.Coords.Y) * span

	cx := int(math.Floor((x - baseX) / size))
	cy := int(math.Floor((y - baseY) / size))
	if cx < 0 || cy < 0 || cx >= res || cy >= res {
		return nil
	}
	return grid.Cells[cy*res+cx]
}

// CollisionResult результат проверки столкновения с ландшафтом
type CollisionResult struct {
	Collision bool
	Biome     string
	Height    float64
	Polygon   geom.Polygon // Заполнен при сглаженной проверке
	Contours  []Segment    // Заполнены при несглаженной проверке
}

// CheckCollision проверяет точку против залитых полигонов её ячейки.
// При smooth возвращается полигон столкновения, иначе контуры ячейки.
func (t *Terrain) CheckCollision(x, y float64, smooth bool) CollisionResult {
	cell := t.CellAtWorldPosition(x, y)
	if cell == nil {
		return CollisionResult{}
	}

	result := CollisionResult{
		Biome:  cell.Biome,
		Height: cell.HeightAt(vec.Vec2Float{X: x, Y: y}),
	}

	p := vec.Vec2Float{X: x, Y: y}
	for _, poly := range cell.Polygons {
		if poly.Contains(p) {
			result.Collision = true
			if smooth {
				result.Polygon = poly
			} else {
				result.Contours = cell.Contours
			}
			break
		}
	}
	return result
}

// CheckCollisionAdvanced проверяет текущую ячейку и соседей в радиусе,
// возвращая результат для каждой пересечённой ячейки
func (t *Terrain) CheckCollisionAdvanced(x, y, radius float64) []CollisionResult {
	center := vec.Vec2Float{X: x, Y: y}
	if !center.IsFinite() || radius < 0 {
		return nil
	}

	size := t.cfg.GridSize
	minCX := int(math.Floor((x - radius) / size))
	maxCX := int(math.Floor((x + radius) / size))
	minCY := int(math.Floor((y - radius) / size))
	maxCY := int(math.Floor((y + radius) / size))

	area := geom.Rect{
		X: x - radius, Y: y - radius,
		Width: radius * 2, Height: radius * 2,
	}

	var results []CollisionResult
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			cell := t.CellAtWorldPosition(
				(float64(cx)+0.5)*size, (float64(cy)+0.5)*size)
			if cell == nil {
				continue
			}

			for _, poly := range cell.Polygons {
				if poly.IntersectsRect(area) {
					results = append(results, CollisionResult{
						Collision: true,
						Biome:     cell.Biome,
						Height:    cell.HeightAt(cell.Center()),
						Polygon:   poly,
					})
					break
				}
			}
		}
	}
	return results
}

// UpdateBiomeConfig накладывает патч на биом, выправляет значения и
// возвращает новый снимок. Изменение инвалидирует кэш гридов: геометрия
// и декорации зависят от таблицы биомов.
func (t *Terrain) UpdateBiomeConfig(key string, patch BiomePatch) (Biome, error) {
	biome, ok := t.cfg.Biomes[key]
	if !ok {
		return Biome{}, fmt.Errorf("биом %q не найден", key)
	}

	updated := biome.apply(patch)
	t.cfg.Biomes[key] = updated
	t.grids.Clear()
	return updated, nil
}

// ToJSON сериализует конфигурацию и таблицу биомов.
// Кэшированные гриды и ячейки не сохраняются: детерминизм генерации
// гарантирует их восстановление из конфигурации.
func (t *Terrain) ToJSON() ([]byte, error) {
	return json.Marshal(t.cfg)
}

// FromJSON восстанавливает конфигурацию, пересоздаёт движок шума и
// сбрасывает кэши. Уже зарегистрированные физические тела снимаются:
// новая конфигурация порождает другую геометрию.
func (t *Terrain) FromJSON(data []byte) error {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("ошибка разбора конфигурации ландшафта: %w", err)
	}
	cfg.Clamp()

	t.removeAllBodies()
	t.cfg = cfg
	t.activations = make(map[string]*activationPoint)
	t.rebuild()
	return nil
}
