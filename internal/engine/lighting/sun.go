// Package lighting provides lighting utilities for 3D rendering.
package lighting

import "github.com/chewxy/math32"

// SunDirection converts azimuth/elevation angles in degrees to a normalized
// direction vector pointing towards the sun. Azimuth turns around Y starting
// at +Z, elevation rises from the horizon.
func SunDirection(azimuth, elevation float32) [3]float32 {
	az := azimuth * math32.Pi / 180
	el := elevation * math32.Pi / 180
	cosEl := math32.Cos(el)
	return [3]float32{
		cosEl * math32.Sin(az),
		math32.Sin(el),
		cosEl * math32.Cos(az),
	}
}
