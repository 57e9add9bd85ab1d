package terrain

import (
	"github.com/annel0/terrain2d/internal/noise"
)

// Смещения сида для независимых каналов шума.
// Канал биомов использует +42, каналы температуры и влажности участвуют
// в перекрёстной проверке классификации.
const (
	biomeChannelOffset       = 42
	temperatureChannelOffset = 97
	humidityChannelOffset    = 131
	transitionChannelOffset  = 7
	textureChannelOffset     = 211
)

// Config полная конфигурация модуля ландшафта.
// Сериализуется целиком в ToJSON/FromJSON; кэшированные гриды не
// сериализуются — они детерминированно регенерируются из конфигурации.
type Config struct {
	Seed           int64                `json:"seed"`
	GenerationType noise.GenerationType `json:"generationType"`

	GridSize       float64 `json:"gridSize"`       // Мировой размер ячейки
	GridResolution int     `json:"gridResolution"` // Ячеек на сторону грида
	Threshold      float64 `json:"threshold"`      // Порог marching squares
	SmoothTerrain  bool    `json:"smoothTerrain"`  // Интерполяция рёбер (иначе середины)

	ViewMargin   int `json:"viewMargin"`   // Запас гридов вокруг вьюпорта
	CacheTrigger int `json:"cacheTrigger"` // Порог вытеснения кэша гридов

	RigidCellSize     float64 `json:"rigidCellSize"`     // Размер грубой ячейки физики
	RigidCacheTrigger int     `json:"rigidCacheTrigger"` // Порог кэша записей физики
	CleanupThreshold  float64 `json:"cleanupThreshold"`  // Допуск удержания тел за радиусом

	BiomeScale          float64 `json:"biomeScale"`          // Частота канала биомов
	TransitionScale     float64 `json:"transitionScale"`     // Частота шума переходов
	TransitionThreshold float64 `json:"transitionThreshold"` // Порог перехода к соседнему биому

	EnabledGenerators []string `json:"enabledGenerators,omitempty"`

	Noise  noise.Params     `json:"noise"`
	Biomes map[string]Biome `json:"biomes"`
}

// DefaultConfig возвращает конфигурацию по умолчанию: один активный биом,
// октавный шум
func DefaultConfig() Config {
	return Config{
		Seed:                12345,
		GenerationType:      noise.GenOctaveNoise,
		GridSize:            20,
		GridResolution:      10,
		Threshold:           0.5,
		SmoothTerrain:       true,
		ViewMargin:          1,
		CacheTrigger:        50,
		RigidCellSize:       200,
		RigidCacheTrigger:   200,
		CleanupThreshold:    100,
		BiomeScale:          0.02,
		TransitionScale:     0.08,
		TransitionThreshold: 0.75,
		Noise:               noise.DefaultParams(),
		Biomes:              DefaultBiomes(),
	}
}

// Clamp молча приводит значения к допустимым диапазонам; ошибок
// конфигурация не порождает
func (c *Config) Clamp() {
	if c.GridSize <= 0 {
		c.GridSize = 20
	}
	if c.GridResolution < 4 {
		c.GridResolution = 4
	}
	if c.Threshold < 0 {
		c.Threshold = 0
	}
	if c.Threshold > 1 {
		c.Threshold = 1
	}
	if c.ViewMargin < 0 {
		c.ViewMargin = 0
	}
	if c.CacheTrigger < 8 {
		c.CacheTrigger = 50
	}
	if c.RigidCellSize <= 0 {
		c.RigidCellSize = c.GridSize * float64(c.GridResolution)
	}
	if c.RigidCacheTrigger < 8 {
		c.RigidCacheTrigger = 200
	}
	if c.CleanupThreshold < 0 {
		c.CleanupThreshold = 0
	}
	if c.BiomeScale <= 0 {
		c.BiomeScale = 0.02
	}
	if c.TransitionScale <= 0 {
		c.TransitionScale = 0.08
	}
	if c.TransitionThreshold < 0 {
		c.TransitionThreshold = 0
	}
	if c.TransitionThreshold > 1 {
		c.TransitionThreshold = 1
	}
	c.Noise.Clamp()

	if len(c.Biomes) == 0 {
		c.Biomes = DefaultBiomes()
	}
	for key, b := range c.Biomes {
		b.Clamp()
		c.Biomes[key] = b
	}
}

// GridSpan возвращает мировой размер грида
func (c *Config) GridSpan() float64 {
	return c.GridSize * float64(c.GridResolution)
}
