package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.
// Содержит настройки демо-сервера и ландшафта.

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Terrain TerrainConfig `yaml:"terrain"`
}

// ServerConfig настройки демо-сервера
type ServerConfig struct {
	RESTPort  int `yaml:"rest_port"`
	FrameRate int `yaml:"frame_rate"`
}

// TerrainConfig настройки генерации ландшафта.
// Значения за пределами допустимых диапазонов молча приводятся к границам
// (Clamp), ошибок конфигурация не порождает.
type TerrainConfig struct {
	Seed              int64    `yaml:"seed"`
	GenerationType    string   `yaml:"generation_type"`
	GridSize          float64  `yaml:"grid_size"`       // Размер ячейки в мировых единицах
	GridResolution    int      `yaml:"grid_resolution"` // Ячеек на сторону грида
	Threshold         float64  `yaml:"threshold"`
	SmoothTerrain     bool     `yaml:"smooth_terrain"`
	ViewMargin        int      `yaml:"view_margin"`    // Запас гридов вокруг вьюпорта
	CacheTrigger      int      `yaml:"cache_trigger"`  // Порог вытеснения кэша гридов
	RigidCellSize     float64  `yaml:"rigid_cell_size"`
	CleanupThreshold  float64  `yaml:"cleanup_threshold"`
	EnabledGenerators []string `yaml:"enabled_generators"` // Пустой список = разрешены все
}

// GetRESTPort возвращает REST порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "TERRAIN_REST_PORT", 8090)
}

// GetFrameRate возвращает частоту кадров демо-цикла
func (s *ServerConfig) GetFrameRate() int {
	if s.FrameRate > 0 {
		return s.FrameRate
	}
	return 60
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Clamp молча приводит значения к допустимым диапазонам.
// Ошибки конфигурации не являются фатальными: неверное значение заменяется
// ближайшим допустимым.
func (tc *TerrainConfig) Clamp() {
	if tc.GridSize <= 0 {
		tc.GridSize = 20
	}
	if tc.GridResolution < 4 {
		tc.GridResolution = 4
	}
	if tc.Threshold < 0 {
		tc.Threshold = 0
	}
	if tc.Threshold > 1 {
		tc.Threshold = 1
	}
	if tc.ViewMargin < 0 {
		tc.ViewMargin = 0
	}
	if tc.CacheTrigger < 8 {
		tc.CacheTrigger = 50
	}
	if tc.RigidCellSize <= 0 {
		tc.RigidCellSize = tc.GridSize * float64(tc.GridResolution)
	}
	if tc.CleanupThreshold < 0 {
		tc.CleanupThreshold = 0
	}
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV TERRAIN_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("TERRAIN_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.Terrain.Clamp()
	return &cfg, nil
}
