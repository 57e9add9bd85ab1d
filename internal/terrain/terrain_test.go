package terrain

import (
	"math"
	"testing"

	"github.com/annel0/terrain2d/internal/geom"
	"github.com/annel0/terrain2d/internal/noise"
	"github.com/annel0/terrain2d/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellAtWorldPosition(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)

	cell := tr.CellAtWorldPosition(35, 48)
	require.NotNil(t, cell)
	assert.True(t, cell.Bounds().ContainsPoint(vec.Vec2Float{X: 35, Y: 48}))

	// Отрицательные координаты тоже попадают в свою ячейку
	cell = tr.CellAtWorldPosition(-7, -203)
	require.NotNil(t, cell)
	assert.True(t, cell.Bounds().ContainsPoint(vec.Vec2Float{X: -7, Y: -203}))
}

func TestCellAtWorldPositionNonFinite(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)

	assert.Nil(t, tr.CellAtWorldPosition(math.NaN(), 0))
	assert.Nil(t, tr.CellAtWorldPosition(0, math.Inf(1)))
}

func TestDeterminismAfterClearCache(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)

	before := tr.CellAtWorldPosition(123, -456)
	require.NotNil(t, before)
	corners := before.Corners
	biome := before.Biome

	tr.ClearCache()
	assert.Zero(t, tr.CachedGrids())

	after := tr.CellAtWorldPosition(123, -456)
	require.NotNil(t, after)
	assert.Equal(t, corners, after.Corners)
	assert.Equal(t, biome, after.Biome)
}

func TestUpdateCachesVisibleGrids(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)

	tr.Update(geom.Rect{X: -100, Y: -100, Width: 200, Height: 200})
	cached := tr.CachedGrids()
	assert.Greater(t, cached, 0)

	// Повторный Update того же вьюпорта — одни попадания, кэш не растёт
	tr.Update(geom.Rect{X: -100, Y: -100, Width: 200, Height: 200})
	assert.Equal(t, cached, tr.CachedGrids())
}

func TestUpdateEvictionBoundsCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheTrigger = 8
	cfg.ViewMargin = 0
	tr := New(cfg, nil, nil)

	span := cfg.GridSpan()

	// Вьюпорт уезжает далеко на каждом кадре: без вытеснения кэш вырос бы
	// на каждый посещённый грид
	for i := 0; i < 40; i++ {
		x := float64(i) * span * 3
		tr.Update(geom.Rect{X: x, Y: 0, Width: span, Height: span})
	}

	// Кэш остаётся в окрестности порога, а не растёт линейно
	assert.Less(t, tr.CachedGrids(), 20)
}

func TestUpdateKeepsViewportResident(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheTrigger = 8
	cfg.ViewMargin = 0
	tr := New(cfg, nil, nil)

	span := cfg.GridSpan()
	viewport := geom.Rect{X: 10, Y: 10, Width: span / 2, Height: span / 2}

	// Дальние гриды проходят через кэш и вытесняются, текущий вьюпорт
	// возвращается каждый второй кадр и остаётся резидентным
	for i := 0; i < 40; i++ {
		tr.Update(geom.Rect{X: float64(i+2) * span * 3, Y: 0, Width: span, Height: span})
		tr.Update(viewport)
	}

	sizeBefore := tr.CachedGrids()
	tr.Update(viewport)
	assert.Equal(t, sizeBefore, tr.CachedGrids())
}

func TestCheckCollision(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)

	// Ищем точку внутри залитого полигона
	found := false
	for x := 0.0; x < 400 && !found; x += 7 {
		for y := 0.0; y < 400 && !found; y += 7 {
			result := tr.CheckCollision(x, y, true)
			if result.Collision {
				found = true
				assert.NotEmpty(t, result.Biome)
				assert.True(t, result.Polygon.Valid(), "сглаженная проверка отдаёт полигон")
				assert.GreaterOrEqual(t, result.Height, 0.0)
				assert.LessOrEqual(t, result.Height, 1.0)
			}
		}
	}
	assert.True(t, found, "в области 400x400 не нашлось ни одного столкновения")
}

func TestCheckCollisionNoHit(t *testing.T) {
	// Порог 1.0: залитых полигонов нет вовсе
	cfg := DefaultConfig()
	cfg.Threshold = 1.0
	tr := New(cfg, nil, nil)

	result := tr.CheckCollision(50, 50, true)
	assert.False(t, result.Collision)
	assert.Nil(t, result.Polygon)
}

func TestCheckCollisionAdvanced(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)

	results := tr.CheckCollisionAdvanced(100, 100, 60)
	for _, r := range results {
		assert.True(t, r.Collision)
		assert.NotEmpty(t, r.Biome)
		assert.True(t, r.Polygon.Valid())
	}

	// Некорректные входы
	assert.Nil(t, tr.CheckCollisionAdvanced(math.NaN(), 0, 10))
	assert.Nil(t, tr.CheckCollisionAdvanced(0, 0, -1))
}

func TestToJSONFromJSONRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 999
	cfg.GenerationType = noise.GenSimplexNoise
	t1 := New(cfg, nil, nil)

	data, err := t1.ToJSON()
	require.NoError(t, err)

	t2 := New(DefaultConfig(), nil, nil)
	require.NoError(t, t2.FromJSON(data))

	assert.Equal(t, t1.Config(), t2.Config())

	// Восстановленная конфигурация порождает ту же геометрию
	c1 := t1.CellAtWorldPosition(77, -33)
	c2 := t2.CellAtWorldPosition(77, -33)
	require.NotNil(t, c1)
	require.NotNil(t, c2)
	assert.Equal(t, c1.Corners, c2.Corners)
}

func TestFromJSONInvalid(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)
	err := tr.FromJSON([]byte("{не json"))
	assert.Error(t, err)
}

func TestUpdateBiomeConfig(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)

	// Прогреваем кэш — изменение биома должно его инвалидировать
	tr.Update(geom.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	require.Greater(t, tr.CachedGrids(), 0)

	color := "#112233"
	minH := -0.5 // выправляется в 0
	maxH := 2.0  // выправляется в 1
	updated, err := tr.UpdateBiomeConfig("meadow", BiomePatch{
		FillColor: &color,
		MinHeight: &minH,
		MaxHeight: &maxH,
	})
	require.NoError(t, err)

	assert.Equal(t, "#112233", updated.FillColor)
	assert.Equal(t, 0.0, updated.MinHeight)
	assert.Equal(t, 1.0, updated.MaxHeight)
	assert.Zero(t, tr.CachedGrids(), "кэш сброшен после изменения биома")
	assert.Equal(t, updated, tr.Config().Biomes["meadow"])
}

func TestUpdateBiomeConfigUnknownKey(t *testing.T) {
	tr := New(DefaultConfig(), nil, nil)

	_, err := tr.UpdateBiomeConfig("vulcan", BiomePatch{})
	assert.Error(t, err)
}

func TestConfigClampOnNew(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridResolution = 1 // минимум 4
	cfg.Threshold = 5      // максимум 1
	cfg.CacheTrigger = 2   // минимум 8, откат к 50

	tr := New(cfg, nil, nil)
	got := tr.Config()

	assert.Equal(t, 4, got.GridResolution)
	assert.Equal(t, 1.0, got.Threshold)
	assert.Equal(t, 50, got.CacheTrigger)
}
