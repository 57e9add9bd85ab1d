package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Float(t *testing.T) {
	a := Vec2Float{X: 3, Y: 4}
	b := Vec2Float{X: 1, Y: -2}

	assert.Equal(t, Vec2Float{X: 4, Y: 2}, a.Add(b))
	assert.Equal(t, Vec2Float{X: 2, Y: 6}, a.Sub(b))
	assert.Equal(t, Vec2Float{X: 6, Y: 8}, a.Mul(2))
	assert.Equal(t, 5.0, a.Length())
	assert.Equal(t, 5.0, Vec2Float{}.DistanceTo(a))
}

func TestVec2FloatIsFinite(t *testing.T) {
	assert.True(t, Vec2Float{X: 1, Y: 2}.IsFinite())
	assert.False(t, Vec2Float{X: math.NaN(), Y: 0}.IsFinite())
	assert.False(t, Vec2Float{X: 0, Y: math.Inf(-1)}.IsFinite())
}

func TestToGridCoords(t *testing.T) {
	// Отрицательные координаты округляются вниз, а не к нулю
	assert.Equal(t, Vec2{X: 0, Y: 0}, Vec2Float{X: 50, Y: 199}.ToGridCoords(200))
	assert.Equal(t, Vec2{X: -1, Y: -1}, Vec2Float{X: -1, Y: -200}.ToGridCoords(200))
	assert.Equal(t, Vec2{X: 1, Y: -2}, Vec2Float{X: 200, Y: -201}.ToGridCoords(200))
}

func TestVec2Distance(t *testing.T) {
	a := Vec2{X: 0, Y: 0}
	b := Vec2{X: 3, Y: 4}
	assert.Equal(t, 5.0, a.DistanceTo(b))
}
