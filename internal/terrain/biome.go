package terrain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Biome именованная конфигурация биома: цвета, диапазон высот, параметры
// вариации цвета, текстуры и декораций. Ячейки хранят ссылку по ключу,
// а не копию.
type Biome struct {
	Name      string `json:"name"`
	Color     string `json:"color"`     // Цвет контура, hex
	FillColor string `json:"fillColor"` // Цвет заливки, hex

	MinHeight float64 `json:"minHeight"` // Диапазон средних высот биома
	MaxHeight float64 `json:"maxHeight"`

	ColorVariation float64 `json:"colorVariation"` // 0..1, амплитуда возмущения цвета
	DarkenAmount   float64 `json:"darkenAmount"`   // 0..1, мультипликативное затемнение
	LightenAmount  float64 `json:"lightenAmount"`  // 0..1, мультипликативное осветление
	TextureScale   float64 `json:"textureScale"`   // Частота текстурного канала

	EnableSquares bool    `json:"enableSquares"`
	SquareCount   int     `json:"squareCount"`
	SquareMinSize float64 `json:"squareMinSize"`
	SquareMaxSize float64 `json:"squareMaxSize"`
	SquareSpacing float64 `json:"squareSpacing"`
	SquareOpacity float64 `json:"squareOpacity"`
}

// DefaultBiomes возвращает таблицу биомов по умолчанию.
// Активен один биом; классификация и переходы рассчитаны на N биомов
// и работают с расширенной таблицей без изменений.
func DefaultBiomes() map[string]Biome {
	return map[string]Biome{
		"meadow": {
			Name:           "meadow",
			Color:          "#3d7a33",
			FillColor:      "#55a644",
			MinHeight:      0,
			MaxHeight:      1,
			ColorVariation: 0.15,
			DarkenAmount:   0.1,
			LightenAmount:  0.1,
			TextureScale:   0.3,
			EnableSquares:  true,
			SquareCount:    4,
			SquareMinSize:  1.5,
			SquareMaxSize:  3.5,
			SquareSpacing:  4,
			SquareOpacity:  0.35,
		},
	}
}

// Clamp молча приводит параметры биома к допустимым диапазонам
func (b *Biome) Clamp() {
	clamp01 := func(v *float64) {
		if *v < 0 {
			*v = 0
		}
		if *v > 1 {
			*v = 1
		}
	}
	clamp01(&b.MinHeight)
	clamp01(&b.MaxHeight)
	if b.MaxHeight < b.MinHeight {
		b.MinHeight, b.MaxHeight = b.MaxHeight, b.MinHeight
	}
	clamp01(&b.ColorVariation)
	clamp01(&b.DarkenAmount)
	clamp01(&b.LightenAmount)
	clamp01(&b.SquareOpacity)
	if b.TextureScale <= 0 {
		b.TextureScale = 0.3
	}
	if b.SquareCount < 0 {
		b.SquareCount = 0
	}
	if b.SquareMinSize <= 0 {
		b.SquareMinSize = 1
	}
	if b.SquareMaxSize < b.SquareMinSize {
		b.SquareMaxSize = b.SquareMinSize
	}
	if b.SquareSpacing < 0 {
		b.SquareSpacing = 0
	}
}

// BiomePatch частичное обновление биома; nil-поля не изменяются
type BiomePatch struct {
	Color          *string  `json:"color,omitempty"`
	FillColor      *string  `json:"fillColor,omitempty"`
	MinHeight      *float64 `json:"minHeight,omitempty"`
	MaxHeight      *float64 `json:"maxHeight,omitempty"`
	ColorVariation *float64 `json:"colorVariation,omitempty"`
	DarkenAmount   *float64 `json:"darkenAmount,omitempty"`
	LightenAmount  *float64 `json:"lightenAmount,omitempty"`
	TextureScale   *float64 `json:"textureScale,omitempty"`
	EnableSquares  *bool    `json:"enableSquares,omitempty"`
	SquareCount    *int     `json:"squareCount,omitempty"`
	SquareMinSize  *float64 `json:"squareMinSize,omitempty"`
	SquareMaxSize  *float64 `json:"squareMaxSize,omitempty"`
	SquareSpacing  *float64 `json:"squareSpacing,omitempty"`
	SquareOpacity  *float64 `json:"squareOpacity,omitempty"`
}

// apply накладывает патч и возвращает выправленную копию
func (b Biome) apply(patch BiomePatch) Biome {
	if patch.Color != nil {
		b.Color = *patch.Color
	}
	if patch.FillColor != nil {
		b.FillColor = *patch.FillColor
	}
	if patch.MinHeight != nil {
		b.MinHeight = *patch.MinHeight
	}
	if patch.MaxHeight != nil {
		b.MaxHeight = *patch.MaxHeight
	}
	if patch.ColorVariation != nil {
		b.ColorVariation = *patch.ColorVariation
	}
	if patch.DarkenAmount != nil {
		b.DarkenAmount = *patch.DarkenAmount
	}
	if patch.LightenAmount != nil {
		b.LightenAmount = *patch.LightenAmount
	}
	if patch.TextureScale != nil {
		b.TextureScale = *patch.TextureScale
	}
	if patch.EnableSquares != nil {
		b.EnableSquares = *patch.EnableSquares
	}
	if patch.SquareCount != nil {
		b.SquareCount = *patch.SquareCount
	}
	if patch.SquareMinSize != nil {
		b.SquareMinSize = *patch.SquareMinSize
	}
	if patch.SquareMaxSize != nil {
		b.SquareMaxSize = *patch.SquareMaxSize
	}
	if patch.SquareSpacing != nil {
		b.SquareSpacing = *patch.SquareSpacing
	}
	if patch.SquareOpacity != nil {
		b.SquareOpacity = *patch.SquareOpacity
	}
	b.Clamp()
	return b
}

// sortedBiomeKeys возвращает ключи таблицы биомов в детерминированном порядке
func sortedBiomeKeys(biomes map[string]Biome) []string {
	keys := make([]string, 0, len(biomes))
	for k := range biomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// VaryColor возмущает hex-цвет по сидированному хэшу.
// Вариация чисто визуальная и не влияет на геометрию коллизий.
func VaryColor(hexColor string, seed float64, amount float64) string {
	r, g, b, ok := parseHexColor(hexColor)
	if !ok || amount <= 0 {
		return hexColor
	}

	shift := func(c int, channelSeed float64) int {
		h := seededHash(channelSeed)
		v := c + int((h-0.5)*2*amount*64)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return v
	}

	return fmt.Sprintf("#%02x%02x%02x",
		shift(r, seed*3.1),
		shift(g, seed*5.7),
		shift(b, seed*9.3))
}

// AdjustBrightness мультипликативно затемняет (factor<1) или осветляет
// (factor>1) hex-цвет
func AdjustBrightness(hexColor string, factor float64) string {
	r, g, b, ok := parseHexColor(hexColor)
	if !ok {
		return hexColor
	}

	scale := func(c int) int {
		v := int(float64(c) * factor)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return v
	}

	return fmt.Sprintf("#%02x%02x%02x", scale(r), scale(g), scale(b))
}

// seededHash детерминированный хэш float -> [0,1)
func seededHash(seed float64) float64 {
	v := math.Sin(seed*127.1) * 43758.5453123
	if v == 0 {
		v = 0
	}
	return v - math.Floor(v)
}

// parseHexColor разбирает #RRGGBB
func parseHexColor(s string) (r, g, b int, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseInt(s[0:2], 16, 32)
	gv, err2 := strconv.ParseInt(s[2:4], 16, 32)
	bv, err3 := strconv.ParseInt(s[4:6], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return int(rv), int(gv), int(bv), true
}
