package main

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/annel0/terrain2d/internal/logging"
	"github.com/annel0/terrain2d/internal/middleware"
	"github.com/annel0/terrain2d/internal/physics"
	"github.com/annel0/terrain2d/internal/terrain"
	"github.com/gin-gonic/gin"
)

// runAPI поднимает отладочный REST API: запрос ячеек, проверка коллизий,
// таблица биомов, статистика и /metrics
func runAPI(t *terrain.Terrain, phys *physics.RecordingManager, addr string, mu *sync.Mutex) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.NewRequestLogger().Handler())

	pm := middleware.NewPrometheusMiddleware("terrain_api")
	r.Use(pm.Handler())
	pm.RegisterMetricsEndpoint(r)

	api := r.Group("/api")
	{
		api.GET("/cell", func(c *gin.Context) {
			x, okX := queryFloat(c, "x")
			y, okY := queryFloat(c, "y")
			if !okX || !okY {
				c.JSON(http.StatusBadRequest, gin.H{"error": "нужны параметры x и y"})
				return
			}

			mu.Lock()
			cell := t.CellAtWorldPosition(x, y)
			mu.Unlock()

			if cell == nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "ячейка не найдена"})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"pos":            cell.Pos,
				"biome":          cell.Biome,
				"averageHeight":  cell.AverageHeight,
				"corners":        cell.Corners,
				"polygons":       len(cell.Polygons),
				"contours":       len(cell.Contours),
				"texturePattern": cell.TexturePattern,
				"squares":        cell.Squares,
			})
		})

		api.GET("/collision", func(c *gin.Context) {
			x, okX := queryFloat(c, "x")
			y, okY := queryFloat(c, "y")
			if !okX || !okY {
				c.JSON(http.StatusBadRequest, gin.H{"error": "нужны параметры x и y"})
				return
			}
			smooth := c.DefaultQuery("smooth", "true") == "true"

			mu.Lock()
			result := t.CheckCollision(x, y, smooth)
			mu.Unlock()

			c.JSON(http.StatusOK, gin.H{
				"collision": result.Collision,
				"biome":     result.Biome,
				"height":    result.Height,
				"polygon":   result.Polygon,
			})
		})

		api.GET("/biomes", func(c *gin.Context) {
			mu.Lock()
			cfg := t.Config()
			mu.Unlock()
			c.JSON(http.StatusOK, cfg.Biomes)
		})

		api.GET("/stats", func(c *gin.Context) {
			created, removed := phys.Stats()
			mu.Lock()
			cached, rigid, points := t.CachedGrids(), t.ActiveRigidCells(), t.ActivationPoints()
			mu.Unlock()
			c.JSON(http.StatusOK, gin.H{
				"cachedGrids":      cached,
				"rigidCells":       rigid,
				"activationPoints": points,
				"activeBodies":     phys.ActiveBodies(),
				"bodiesCreated":    created,
				"bodiesRemoved":    removed,
			})
		})
	}

	if err := r.Run(addr); err != nil {
		logging.LogError("REST API остановлен: %v", err)
	}
}

// queryFloat извлекает float-параметр запроса
func queryFloat(c *gin.Context, name string) (float64, bool) {
	v, err := strconv.ParseFloat(c.Query(name), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
