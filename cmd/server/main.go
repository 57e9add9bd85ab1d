package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/annel0/terrain2d/internal/config"
	"github.com/annel0/terrain2d/internal/geom"
	"github.com/annel0/terrain2d/internal/logging"
	"github.com/annel0/terrain2d/internal/noise"
	"github.com/annel0/terrain2d/internal/observability"
	"github.com/annel0/terrain2d/internal/physics"
	"github.com/annel0/terrain2d/internal/storage"
	"github.com/annel0/terrain2d/internal/terrain"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации")
	savePath := flag.String("save", "saves/world.save", "файл сохранения мира")
	flag.Parse()

	if err := logging.InitLogger(); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseLogger()

	logging.LogInfo("🏔 Запуск terrain2d demo-сервера...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.LogError("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}

	tcfg := buildTerrainConfig(cfg)

	// Физический коллаборатор: in-memory менеджер, считающий тела
	phys := physics.NewRecordingManager()
	metrics := observability.NewTerrainMetrics("terrain")

	t := terrain.New(tcfg, phys, metrics)

	// Восстановление сохранённой конфигурации, если есть
	if data, err := storage.LoadSnapshot(*savePath); err == nil {
		if err := t.FromJSON(data); err != nil {
			logging.LogWarn("Снимок повреждён, используется конфигурация по умолчанию: %v", err)
		} else {
			logging.LogInfo("💾 Конфигурация мира восстановлена из %s", *savePath)
		}
	} else if !os.IsNotExist(err) {
		logging.LogWarn("Не удалось прочитать снимок %s: %v", *savePath, err)
	}

	// Отладочный REST API + /metrics
	restPort := 8090
	frameRate := 60
	if cfg != nil {
		restPort = cfg.Server.GetRESTPort()
		frameRate = cfg.Server.GetFrameRate()
	}
	// Модуль ландшафта однопоточный: кадровый цикл и API-обработчики
	// сериализуются одной общей блокировкой
	var mu sync.Mutex
	go runAPI(t, phys, fmt.Sprintf(":%d", restPort), &mu)

	logging.LogInfo("📡 REST API на :%d, %d кадров/с", restPort, frameRate)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(frameRate))
	defer ticker.Stop()

	// Камера ходит по окружности вокруг начала координат, персонаж следом —
	// достаточно, чтобы прогнать генерацию, кэш и жизненный цикл тел
	start := time.Now()
	statsEvery := time.NewTicker(5 * time.Second)
	defer statsEvery.Stop()

loop:
	for {
		select {
		case <-stop:
			break loop

		case <-statsEvery.C:
			created, removed := phys.Stats()
			mu.Lock()
			cached, rigid := t.CachedGrids(), t.ActiveRigidCells()
			mu.Unlock()
			logging.LogInfo("📊 гридов в кэше=%d, ячеек физики=%d, тел=%d (создано=%d, снято=%d)",
				cached, rigid, phys.ActiveBodies(), created, removed)

		case <-ticker.C:
			elapsed := time.Since(start).Seconds()
			angle := elapsed * 0.2
			camX := math.Cos(angle) * 600
			camY := math.Sin(angle) * 600

			mu.Lock()
			t.Update(geom.Rect{X: camX - 400, Y: camY - 300, Width: 800, Height: 600})
			t.ActivateRigidBodiesRegion("player", camX, camY, 150)
			mu.Unlock()
		}
	}

	logging.LogInfo("⏹ Остановка, сохранение мира...")
	if data, err := t.ToJSON(); err != nil {
		logging.LogError("Ошибка сериализации мира: %v", err)
	} else if err := storage.SaveSnapshot(*savePath, data); err != nil {
		logging.LogError("Ошибка сохранения мира: %v", err)
	} else {
		logging.LogInfo("💾 Мир сохранён в %s", *savePath)
	}
}

// buildTerrainConfig накладывает YAML-настройки на конфигурацию по умолчанию
func buildTerrainConfig(cfg *config.Config) terrain.Config {
	tcfg := terrain.DefaultConfig()
	if cfg == nil {
		return tcfg
	}

	tc := cfg.Terrain
	if tc.Seed != 0 {
		tcfg.Seed = tc.Seed
	}
	if tc.GenerationType != "" {
		tcfg.GenerationType = noise.GenerationType(tc.GenerationType)
	}
	if tc.GridSize > 0 {
		tcfg.GridSize = tc.GridSize
	}
	if tc.GridResolution > 0 {
		tcfg.GridResolution = tc.GridResolution
	}
	if tc.Threshold > 0 {
		tcfg.Threshold = tc.Threshold
	}
	tcfg.SmoothTerrain = tc.SmoothTerrain
	if tc.ViewMargin > 0 {
		tcfg.ViewMargin = tc.ViewMargin
	}
	if tc.CacheTrigger > 0 {
		tcfg.CacheTrigger = tc.CacheTrigger
	}
	if tc.RigidCellSize > 0 {
		tcfg.RigidCellSize = tc.RigidCellSize
	}
	if tc.CleanupThreshold > 0 {
		tcfg.CleanupThreshold = tc.CleanupThreshold
	}
	if len(tc.EnabledGenerators) > 0 {
		tcfg.EnabledGenerators = tc.EnabledGenerators
	}
	tcfg.Clamp()
	return tcfg
}
