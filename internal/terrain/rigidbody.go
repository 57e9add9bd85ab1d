package terrain

import (
	"math"
	"time"

	"github.com/annel0/terrain2d/internal/geom"
	"github.com/annel0/terrain2d/internal/logging"
	"github.com/annel0/terrain2d/internal/physics"
	"github.com/annel0/terrain2d/internal/vec"
)

// Точка активации устаревает через 30 секунд без обновления
const activationTTL = 30 * time.Second

// activationPoint область, в которой физические тела ландшафта должны
// оставаться живыми (например, вокруг персонажа)
type activationPoint struct {
	id        string
	pos       vec.Vec2Float
	radius    float64
	updatedAt time.Time
}

// rigidEntry запись грубой ячейки физики: созданные тела плюс метаданные.
// Состояния ячейки: незарегистрирована -> активна -> незарегистрирована.
type rigidEntry struct {
	coords     vec.Vec2
	center     vec.Vec2Float
	bodies     []physics.BodyHandle
	lastActive time.Time
}

// ActivateRigidBodiesRegion создаёт/обновляет точку активации и приводит
// набор физических тел в соответствие со ВСЕМИ живыми точками активации.
// Идемпотентна по id: повторный вызов обновляет позицию, радиус и отметку
// времени точки.
//
// Без физического коллаборатора вся операция — no-op.
func (t *Terrain) ActivateRigidBodiesRegion(id string, x, y, radius float64) {
	if t.phys == nil {
		return
	}

	now := t.now()
	t.activations[id] = &activationPoint{
		id:        id,
		pos:       vec.Vec2Float{X: x, Y: y},
		radius:    radius,
		updatedAt: now,
	}
	t.expireActivations(now)

	// Регистрация: грубые ячейки, пересекающие квадрат активации
	cs := t.cfg.RigidCellSize
	minGX := int(math.Floor((x - radius) / cs))
	maxGX := int(math.Floor((x + radius) / cs))
	minGY := int(math.Floor((y - radius) / cs))
	maxGY := int(math.Floor((y + radius) / cs))

	for gy := minGY; gy <= maxGY; gy++ {
		for gx := minGX; gx <= maxGX; gx++ {
			coords := vec.Vec2{X: gx, Y: gy}
			key := rigidKey(coords)

			if entry, ok := t.rigid.Get(key); ok {
				entry.lastActive = now
				continue
			}
			t.registerRigidCell(coords, key, now)
		}
	}

	// Очистка: ячейка остаётся активной, пока находится в пределах
	// radius + cleanupThreshold хотя бы одной живой точки активации
	t.cleanupRigidCells()
}

// registerRigidCell строит статические тела для всех полигонов ландшафта,
// геометрически пересекающих грубую ячейку, и регистрирует их у
// коллаборатора. Запись создаётся даже при нуле тел — пустая ячейка не
// пересчитывается на каждом вызове.
func (t *Terrain) registerRigidCell(coords vec.Vec2, key string, now time.Time) {
	cs := t.cfg.RigidCellSize
	bounds := geom.Rect{
		X:     float64(coords.X) * cs,
		Y:     float64(coords.Y) * cs,
		Width: cs, Height: cs,
	}

	entry := &rigidEntry{
		coords:     coords,
		center:     bounds.Center(),
		lastActive: now,
	}

	created := 0
	for _, poly := range t.polygonsInRect(bounds) {
		body, err := physics.NewStaticBody(poly)
		if err != nil {
			// Вырожденный полигон: пропускаем молча, остальные продолжаем
			continue
		}
		if err := t.phys.RegisterBody(body, key); err != nil {
			// Отказ коллаборатора не прерывает обработку остальных полигонов
			logging.LogWarn("Не удалось зарегистрировать тело для %s: %v", key, err)
			continue
		}
		entry.bodies = append(entry.bodies, body.Handle)
		created++
	}

	t.rigid.Put(key, entry)
	t.metrics.BodiesCreated(created)
	logging.LogRigidBodies(key, created, 0)
}

// polygonsInRect возвращает полигоны ландшафта, пересекающие прямоугольник
func (t *Terrain) polygonsInRect(bounds geom.Rect) []geom.Polygon {
	span := t.cfg.GridSpan()
	minGX := int(math.Floor(bounds.X / span))
	maxGX := int(math.Floor((bounds.X + bounds.Width) / span))
	minGY := int(math.Floor(bounds.Y / span))
	maxGY := int(math.Floor((bounds.Y + bounds.Height) / span))

	var polys []geom.Polygon
	for gy := minGY; gy <= maxGY; gy++ {
		for gx := minGX; gx <= maxGX; gx++ {
			grid := t.ensureGrid(vec.Vec2{X: gx, Y: gy})
			for _, cell := range grid.Cells {
				if !cell.Bounds().Intersects(bounds) {
					continue
				}
				for _, poly := range cell.Polygons {
					if poly.IntersectsRect(bounds) {
						polys = append(polys, poly)
					}
				}
			}
		}
	}
	return polys
}

// cleanupRigidCells снимает тела ячеек, до которых не дотягивается ни одна
// живая точка активации. Запись удаляется сразу после снятия тел, поэтому
// каждое тело удаляется ровно один раз.
func (t *Terrain) cleanupRigidCells() {
	var stale []string
	t.rigid.Range(func(key string, entry *rigidEntry) bool {
		if !t.nearAnyActivation(entry.center) {
			stale = append(stale, key)
		}
		return true
	})

	for _, key := range stale {
		entry, ok := t.rigid.Delete(key)
		if !ok {
			continue
		}
		t.removeEntryBodies(key, entry)
	}
}

// nearAnyActivation проверяет, покрыта ли точка хоть одной точкой активации
// с учётом допуска очистки
func (t *Terrain) nearAnyActivation(p vec.Vec2Float) bool {
	for _, ap := range t.activations {
		if p.DistanceTo(ap.pos) <= ap.radius+t.cfg.CleanupThreshold {
			return true
		}
	}
	return false
}

// expireActivations удаляет точки активации без обновлений дольше TTL.
// Тела при этом не трогаются: они переоцениваются по оставшемуся набору
// точек при следующем вызове активации.
func (t *Terrain) expireActivations(now time.Time) {
	for id, ap := range t.activations {
		if now.Sub(ap.updatedAt) > activationTTL {
			delete(t.activations, id)
		}
	}
}

// removeEntryBodies снимает все тела записи у коллаборатора
func (t *Terrain) removeEntryBodies(key string, entry *rigidEntry) {
	removed := 0
	for _, handle := range entry.bodies {
		if err := t.phys.RemoveBody(handle); err != nil {
			logging.LogWarn("Не удалось снять тело %s (%s): %v", handle, key, err)
			continue
		}
		removed++
	}
	entry.bodies = nil
	t.metrics.BodiesRemoved(removed)
	logging.LogRigidBodies(key, 0, removed)
}

// removeAllBodies снимает все зарегистрированные тела (смена конфигурации)
func (t *Terrain) removeAllBodies() {
	if t.phys == nil || t.rigid == nil {
		return
	}
	for _, key := range t.rigid.Keys() {
		if entry, ok := t.rigid.Delete(key); ok {
			t.removeEntryBodies(key, entry)
		}
	}
}

// ActiveRigidCells возвращает количество зарегистрированных грубых ячеек
func (t *Terrain) ActiveRigidCells() int {
	return t.rigid.Len()
}

// ActivationPoints возвращает количество живых точек активации
func (t *Terrain) ActivationPoints() int {
	return len(t.activations)
}
