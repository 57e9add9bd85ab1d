package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVaryColorDeterministic(t *testing.T) {
	a := VaryColor("#55a644", 17.3, 0.2)
	b := VaryColor("#55a644", 17.3, 0.2)
	assert.Equal(t, a, b)

	// Другой сид даёт другой цвет (при ненулевой амплитуде почти всегда)
	c := VaryColor("#55a644", 99.1, 0.2)
	assert.NotEqual(t, a, c)
}

func TestVaryColorPassthrough(t *testing.T) {
	// Нулевая амплитуда и невалидный hex возвращают вход без изменений
	assert.Equal(t, "#55a644", VaryColor("#55a644", 1, 0))
	assert.Equal(t, "не цвет", VaryColor("не цвет", 1, 0.5))
	assert.Equal(t, "#fff", VaryColor("#fff", 1, 0.5))
}

func TestVaryColorFormat(t *testing.T) {
	got := VaryColor("#000000", 5, 1)
	assert.Len(t, got, 7)
	assert.Equal(t, "#", got[:1])
}

func TestAdjustBrightness(t *testing.T) {
	assert.Equal(t, "#000000", AdjustBrightness("#808080", 0))
	assert.Equal(t, "#808080", AdjustBrightness("#808080", 1))
	// Осветление с насыщением на 255
	assert.Equal(t, "#ffffff", AdjustBrightness("#808080", 10))
	// Невалидный вход — без изменений
	assert.Equal(t, "xyz", AdjustBrightness("xyz", 0.5))
}

func TestBiomeApplyPatchClamps(t *testing.T) {
	b := DefaultBiomes()["meadow"]

	minH := -1.0
	maxH := 3.0
	count := -5
	got := b.apply(BiomePatch{
		MinHeight:   &minH,
		MaxHeight:   &maxH,
		SquareCount: &count,
	})

	assert.Equal(t, 0.0, got.MinHeight)
	assert.Equal(t, 1.0, got.MaxHeight)
	assert.Equal(t, 0, got.SquareCount)
}

func TestBiomeApplyPatchPartial(t *testing.T) {
	b := DefaultBiomes()["meadow"]

	fill := "#abcdef"
	got := b.apply(BiomePatch{FillColor: &fill})

	// Меняется только указанное поле
	assert.Equal(t, "#abcdef", got.FillColor)
	assert.Equal(t, b.Color, got.Color)
	assert.Equal(t, b.SquareCount, got.SquareCount)
}

func TestBiomeClampSwapsInvertedRange(t *testing.T) {
	b := Biome{MinHeight: 0.8, MaxHeight: 0.2, TextureScale: 0.3, SquareMinSize: 1, SquareMaxSize: 2}
	b.Clamp()
	assert.Equal(t, 0.2, b.MinHeight)
	assert.Equal(t, 0.8, b.MaxHeight)
}

func TestSortedBiomeKeys(t *testing.T) {
	keys := sortedBiomeKeys(map[string]Biome{
		"c": {}, "a": {}, "b": {},
	})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}
