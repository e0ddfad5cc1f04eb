package eval

import "math"

func powFloat32(l, r float32) float32 {
	return float32(math.Pow(float64(l), float64(r)))
}
