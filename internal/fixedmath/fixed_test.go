package fixedmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFixedFloatRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(-32768, 32768).Draw(t, "x")
		got := FixedToFloat(FloatToFixed(x))
		assert.InDelta(t, x, got, 1.0/65536.0)
	})
}

func TestFixedMulDivIdentity(t *testing.T) {
	one := FracUnit
	half := NewFixed(1).Div(NewFixed(2))
	assert.Equal(t, FloatToFixed(0.5), half)
	assert.Equal(t, one, half.Mul(NewFixed(2)))
}

func TestFixedDivByZeroClampsToSign(t *testing.T) {
	assert.Equal(t, FixedMax, NewFixed(5).Div(0))
	assert.Equal(t, FixedMin, NewFixed(-5).Div(0))
}

func TestFixedAddSaturates(t *testing.T) {
	assert.Equal(t, FixedMax, FixedMax.Add(NewFixed(1)))
	assert.Equal(t, FixedMin, FixedMin.Sub(NewFixed(1)))
}

func TestBamRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := Angle(rapid.Uint32().Draw(t, "b"))
		got := RadianToBam(BamToRadian(b))
		// Allow +-1 ULP of rounding slack from the float64 round trip.
		diff := int64(got) - int64(b)
		if diff > int64(math.MaxUint32)/2 {
			diff -= int64(math.MaxUint32) + 1
		} else if diff < -int64(math.MaxUint32)/2 {
			diff += int64(math.MaxUint32) + 1
		}
		assert.LessOrEqual(t, diff, int64(1))
		assert.GreaterOrEqual(t, diff, int64(-1))
	})
}

func TestSinCosQuadrants(t *testing.T) {
	assert.InDelta(t, 0.0, FixedToFloat(Sin(Angle0)), 0.01)
	assert.InDelta(t, 1.0, FixedToFloat(Sin(Angle90)), 0.01)
	assert.InDelta(t, 0.0, FixedToFloat(Sin(Angle180)), 0.01)
	assert.InDelta(t, -1.0, FixedToFloat(Sin(Angle270)), 0.01)
	assert.InDelta(t, 1.0, FixedToFloat(Cos(Angle0)), 0.01)
	assert.InDelta(t, 0.0, FixedToFloat(Cos(Angle90)), 0.01)
}

func TestTanDivByZeroClampsToSign(t *testing.T) {
	// Fixed.Div's zero-divisor clamp rule, exercised directly: the sine
	// table's discretization means Cos(Angle90) lands a bin short of an
	// exact zero, so this checks the primitive the way p_slope_div does
	// rather than relying on the table hitting zero by chance.
	assert.Equal(t, FixedMax, NewFixed(1).Div(0))
	assert.Equal(t, FixedMin, NewFixed(-1).Div(0))

	// Near the right angle the table still produces a very steep slope.
	got := Tan(Angle90)
	assert.Greater(t, got.Abs(), NewFixed(1000))
}
