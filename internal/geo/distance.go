// Package geo содержит геодезические вычисления.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMiles - радиус Земли в милях
const EarthRadiusMiles = 3959.0

// Distance вычисляет расстояние по большому кругу между двумя точками в милях (формула гаверсинуса).
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// FormatMiles форматирует расстояние для отображения: один знак после запятой.
func FormatMiles(miles float64) string {
	return fmt.Sprintf("%.1f miles", miles)
}

func toRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
