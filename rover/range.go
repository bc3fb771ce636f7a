package rover

import "fmt"

// MapRange linearly maps value from the interval [inMin; inMax] to the
// interval [outMin; outMax]. Values outside the input interval are
// extrapolated, not clamped. The intervals may run in either direction, but
// the input bounds must be distinct.
func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	if inMin == inMax {
		panic(fmt.Sprintf("Invalid input interval [%v; %v] for mapping value %v", inMin, inMax, value))
	}
	return outMin + (value-inMin)*(outMax-outMin)/(inMax-inMin)
}
