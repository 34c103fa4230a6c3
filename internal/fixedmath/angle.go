package fixedmath

import "math"

// Angle is a Binary Angle Measure: a 32-bit value where the full circle
// is 2^32 units and wraps on overflow exactly like an audio phase
// accumulator wraps at 2^32 per waveform cycle. Zero points east (+x,
// as in classic DOOM) and angles increase counter-clockwise, so
// Angle90 points north (+y).
type Angle uint32

const (
	Angle0   Angle = 0
	Angle45  Angle = 0x20000000
	Angle90  Angle = 0x40000000
	Angle180 Angle = 0x80000000
	Angle270 Angle = 0xC0000000
	AngleMax Angle = 0xFFFFFFFF

	// fineAngles is the sine table's resolution: one quarter circle,
	// [0, pi/2), split into 8192 entries.
	fineAngles   = 8192
	quarterShift = 30 - 13 // 30-bit quarter-circle range down to a 13-bit index
	quarterMask  = 0x3FFFFFFF
)

var sineTable [fineAngles]Fixed

func init() {
	for i := 0; i < fineAngles; i++ {
		theta := (float64(i) + 0.5) * (math.Pi / 2) / fineAngles
		sineTable[i] = FloatToFixed(math.Sin(theta))
	}
}

// Sin returns sin(a) in 16.16 fixed point, built from the quarter-circle
// table by quadrant reflection: q0 direct, q1 mirrored, q2/q3 negated
// mirrors of q0/q1.
func Sin(a Angle) Fixed {
	quadrant := a >> 30
	qa := a & quarterMask
	switch quadrant {
	case 0:
		return sineTable[qa>>quarterShift]
	case 1:
		return sineTable[(quarterMask-qa)>>quarterShift]
	case 2:
		return -sineTable[qa>>quarterShift]
	default:
		return -sineTable[(quarterMask-qa)>>quarterShift]
	}
}

// Cos returns cos(a), computed as sine offset by a quarter circle.
func Cos(a Angle) Fixed {
	return Sin(a + Angle90)
}

// Tan returns tan(a) = sin(a)/cos(a); Fixed.Div already clamps to
// sign-max on a zero cosine instead of panicking.
func Tan(a Angle) Fixed {
	return Sin(a).Div(Cos(a))
}

// BamToRadian converts a BAM angle to radians for interop with host APIs
// (audio panning math, the CRT shader uniform, etc). Never used on the
// playsim's hot path.
func BamToRadian(b Angle) float64 {
	return float64(b) * (2 * math.Pi / 4294967296.0)
}

// RadianToBam is the inverse of BamToRadian, wrapping into [0, 2^32).
func RadianToBam(r float64) Angle {
	turns := r / (2 * math.Pi)
	scaled := math.Round(turns * 4294967296.0)
	// Reduce into uint32 range before the uint32 conversion so large or
	// negative radian inputs still wrap the way a hardware accumulator would.
	scaled = math.Mod(scaled, 4294967296.0)
	if scaled < 0 {
		scaled += 4294967296.0
	}
	return Angle(uint32(int64(scaled)))
}

// PointToAngle returns the BAM angle from the origin to (dx, dy), the
// fixed-point analogue of atan2, used by point_to_angle_2 callers
// throughout the BSP and line-of-sight code.
func PointToAngle(dx, dy Fixed) Angle {
	if dx == 0 && dy == 0 {
		return 0
	}
	rad := math.Atan2(FixedToFloat(dy), FixedToFloat(dx))
	return RadianToBam(rad)
}
