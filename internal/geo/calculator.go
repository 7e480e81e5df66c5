package geo

import (
	"math"

	"coverage-planner-go/pkg/models"
)

const earthRadiusKm = 6371.0

// DistanceMeters вычисляет расстояние между двумя точками в метрах
// Использует формулу гаверсинуса
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	// Преобразуем градусы в радианы
	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLon := lon2Rad - lon1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	chord := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * chord * 1000
}

// LegLengthMeters суммирует длины галсов по спроецированным путевым точкам.
// Переходы между галсами не учитываются, поэтому результат сопоставим
// с total_path_length_m плана.
func LegLengthMeters(waypoints []models.Waypoint) float64 {
	total := 0.0
	for i := 0; i+1 < len(waypoints); i += 2 {
		start, end := waypoints[i], waypoints[i+1]
		total += DistanceMeters(start.Latitude, start.Longitude, end.Latitude, end.Longitude)
	}

	// Округляем до 3 знаков
	return math.Round(total*1000) / 1000
}
