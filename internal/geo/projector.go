// Package geo переводит локальные координаты галсов в географические.
package geo

import (
	"fmt"
	"math"
	"strings"

	"coverage-planner-go/pkg/models"
)

// MetersPerDegreeLat длина одного градуса широты в метрах
const MetersPerDegreeLat = 111320.0

// ProjectionMode способ масштабирования долготы
type ProjectionMode string

const (
	// ProjectionLinear линейное приближение 1/(111320 * |lat/90|)
	ProjectionLinear ProjectionMode = "linear"
	// ProjectionCosine стандартная поправка cos(lat)
	ProjectionCosine ProjectionMode = "cosine"
)

// ParseProjectionMode разбирает название режима проекции
func ParseProjectionMode(value string) (ProjectionMode, error) {
	switch mode := ProjectionMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return ProjectionLinear, nil
	case ProjectionLinear, ProjectionCosine:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown projection mode %q", value)
	}
}

// Projector проецирует галсы на плоское приближение поверхности Земли
type Projector struct {
	Mode ProjectionMode
}

// NewProjector создает проектор с заданным режимом
func NewProjector(mode ProjectionMode) *Projector {
	if mode == "" {
		mode = ProjectionLinear
	}
	return &Projector{Mode: mode}
}

// ProjectToGeodetic проецирует галсы в линейном режиме
func ProjectToGeodetic(legs []models.Leg, altitudeM, originLat, originLon float64) ([]models.Waypoint, error) {
	return NewProjector(ProjectionLinear).Project(legs, altitudeM, originLat, originLon)
}

// Project выдаёт по две путевые точки на галс (начало, затем конец)
// в порядке галсов. Идентификаторы точек нумеруются с 1.
func (p *Projector) Project(legs []models.Leg, altitudeM, originLat, originLon float64) ([]models.Waypoint, error) {
	if err := validateOrigin(originLat, originLon); err != nil {
		return nil, err
	}
	if !(altitudeM > 0) || math.IsInf(altitudeM, 0) {
		return nil, models.NewInvalidParameterError("altitude_m", altitudeM, "must be a finite positive number")
	}

	metersPerDegreeLon, err := p.metersPerDegreeLon(originLat)
	if err != nil {
		return nil, err
	}

	waypoints := make([]models.Waypoint, 0, 2*len(legs))
	toWaypoint := func(legID int, point models.Point, position models.WaypointPosition) models.Waypoint {
		return models.Waypoint{
			ID:        len(waypoints) + 1,
			Latitude:  originLat + point.YM/MetersPerDegreeLat,
			Longitude: originLon + point.XM/metersPerDegreeLon,
			AltitudeM: altitudeM,
			LegID:     legID,
			Position:  position,
		}
	}

	for _, leg := range legs {
		waypoints = append(waypoints, toWaypoint(leg.LegID, leg.Start, models.PositionStart))
		waypoints = append(waypoints, toWaypoint(leg.LegID, leg.End, models.PositionEnd))
	}

	return waypoints, nil
}

// metersPerDegreeLon длина градуса долготы на широте опорной точки
func (p *Projector) metersPerDegreeLon(originLat float64) (float64, error) {
	var scale float64
	switch p.Mode {
	case ProjectionCosine:
		scale = math.Cos(originLat * math.Pi / 180)
		if math.Abs(originLat) == 90 {
			return 0, models.NewInvalidParameterError("origin_lat", originLat, "longitude is undefined at the poles")
		}
	default:
		scale = math.Abs(originLat / 90.0)
	}

	return MetersPerDegreeLat * scale, nil
}

// validateOrigin проверяет опорную точку. Нулевая широта запрещена:
// в линейном режиме масштаб долготы обращается в ноль.
func validateOrigin(lat, lon float64) error {
	if !(lat >= -90 && lat <= 90) {
		return models.NewInvalidParameterError("origin_lat", lat, "must be within [-90, 90]")
	}
	if lat == 0 {
		return models.NewInvalidParameterError("origin_lat", lat, "must not be zero")
	}
	if !(lon >= -180 && lon <= 180) {
		return models.NewInvalidParameterError("origin_lon", lon, "must be within [-180, 180]")
	}
	return nil
}
