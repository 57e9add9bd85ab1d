package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TerrainMetrics метрики генератора ландшафта.
//
// Метрики:
// * terrain_grid_cache_hits_total / misses_total — counter
// * terrain_grid_cache_evictions_total — counter
// * terrain_grids_cached — gauge
// * terrain_bodies_created_total / removed_total — counter
// * terrain_grid_generate_seconds — histogram
//
// Все методы безопасны при nil-получателе: модуль ландшафта работает и без
// подключённых метрик.
type TerrainMetrics struct {
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	evictions     prometheus.Counter
	gridsCached   prometheus.Gauge
	bodiesCreated prometheus.Counter
	bodiesRemoved prometheus.Counter
	generateTime  prometheus.Histogram
}

// NewTerrainMetrics создаёт метрики и регистрирует их в дефолтном регистре
func NewTerrainMetrics(namespace string) *TerrainMetrics {
	tm := &TerrainMetrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_cache_hits_total",
			Help:      "Попадания в кэш гридов.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_cache_misses_total",
			Help:      "Промахи кэша гридов (генерация).",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grid_cache_evictions_total",
			Help:      "Гриды, вытесненные из кэша.",
		}),
		gridsCached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grids_cached",
			Help:      "Текущее количество гридов в кэше.",
		}),
		bodiesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bodies_created_total",
			Help:      "Созданные статические физические тела.",
		}),
		bodiesRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bodies_removed_total",
			Help:      "Удалённые физические тела.",
		}),
		generateTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grid_generate_seconds",
			Help:      "Длительность генерации одного грида.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}

	prometheus.MustRegister(tm.cacheHits, tm.cacheMisses, tm.evictions,
		tm.gridsCached, tm.bodiesCreated, tm.bodiesRemoved, tm.generateTime)
	return tm
}

// CacheHit учитывает попадание в кэш гридов
func (tm *TerrainMetrics) CacheHit() {
	if tm == nil {
		return
	}
	tm.cacheHits.Inc()
}

// CacheMiss учитывает промах кэша гридов
func (tm *TerrainMetrics) CacheMiss() {
	if tm == nil {
		return
	}
	tm.cacheMisses.Inc()
}

// Evicted учитывает вытесненные гриды
func (tm *TerrainMetrics) Evicted(n int) {
	if tm == nil {
		return
	}
	tm.evictions.Add(float64(n))
}

// SetCachedGrids обновляет gauge размера кэша
func (tm *TerrainMetrics) SetCachedGrids(n int) {
	if tm == nil {
		return
	}
	tm.gridsCached.Set(float64(n))
}

// BodiesCreated учитывает созданные тела
func (tm *TerrainMetrics) BodiesCreated(n int) {
	if tm == nil {
		return
	}
	tm.bodiesCreated.Add(float64(n))
}

// BodiesRemoved учитывает удалённые тела
func (tm *TerrainMetrics) BodiesRemoved(n int) {
	if tm == nil {
		return
	}
	tm.bodiesRemoved.Add(float64(n))
}

// ObserveGenerate учитывает длительность генерации грида
func (tm *TerrainMetrics) ObserveGenerate(seconds float64) {
	if tm == nil {
		return
	}
	tm.generateTime.Observe(seconds)
}
