// Package autopilot собирает пакет миссии для наземной станции:
// путевые точки, блок конфигурации и метаданные.
package autopilot

import (
	"coverage-planner-go/internal/geo"
	"coverage-planner-go/pkg/models"
)

// BuildConfig формирует блок конфигурации автопилота по спецификации и плану
func BuildConfig(spec models.MissionSpec, plan models.CoveragePlan) models.AutopilotConfig {
	geometry := spec.Geometry()
	frontlap, sidelap := geometry.FrontlapPercent, geometry.SidelapPercent

	return models.AutopilotConfig{
		MissionParameters: models.MissionParameters{
			AltitudeM:      geometry.AltitudeM,
			CruiseSpeedMps: plan.Summary.CruiseSpeedMps,
			CameraFOVDeg:   geometry.CameraFOVDeg,
			Overlap: models.Overlap{
				FrontlapPercent: &frontlap,
				SidelapPercent:  &sidelap,
			},
		},
		FlightParameters: models.FlightSummary{
			NumWaypoints:           2 * len(plan.Legs),
			TotalDistanceM:         plan.Summary.TotalPathLengthM,
			EstimatedFlightTimeMin: plan.Summary.TotalFlightTimeMin,
			NumBatterySegments:     plan.Summary.NumBatterySegments,
		},
		SafetyParameters: models.SafetyParameters{
			NoFlyBufferM:          valueOr(spec.Constraints.NoFlyBufferM, models.DefaultNoFlyBufferM),
			BatteryReservePercent: valueOr(spec.Constraints.BatteryReservePercent, models.DefaultBatteryReservePercent),
			MaxWindSpeedMps:       models.DefaultMaxWindSpeedMps,
			ReturnToHomeAltitudeM: geometry.AltitudeM + models.ReturnToHomeAltitudeMarginM,
		},
		Regulatory: spec.Regulatory,
	}
}

// BuildPackage проецирует галсы плана и собирает пакет миссии.
// План не пересчитывается и не изменяется.
func BuildPackage(spec models.MissionSpec, plan models.CoveragePlan, origin models.Origin, projector *geo.Projector) (models.MissionPackage, error) {
	if projector == nil {
		projector = geo.NewProjector(geo.ProjectionLinear)
	}

	waypoints, err := projector.Project(plan.Legs, spec.Geometry().AltitudeM, origin.Latitude, origin.Longitude)
	if err != nil {
		return models.MissionPackage{}, err
	}

	return models.MissionPackage{
		Waypoints: waypoints,
		Config:    BuildConfig(spec, plan),
		Metadata: models.PackageMetadata{
			TotalWaypoints:     len(waypoints),
			Origin:             origin,
			CoordinateSystem:   models.CoordinateSystemWGS84,
			Projection:         string(projector.Mode),
			GeodeticLegLengthM: geo.LegLengthMeters(waypoints),
		},
	}, nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
