package autopilot

import (
	"errors"
	"testing"

	"coverage-planner-go/internal/coverage"
	"coverage-planner-go/internal/geo"
	"coverage-planner-go/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }

func testSpec() models.MissionSpec {
	return models.MissionSpec{
		Area:         models.Area{LengthM: 100, WidthM: 50},
		AltitudeM:    floatPtr(50),
		CameraFOVDeg: floatPtr(60),
		Overlap: models.Overlap{
			FrontlapPercent: floatPtr(70),
			SidelapPercent:  floatPtr(50),
		},
		Constraints: models.Constraints{NoFlyBufferM: floatPtr(150)},
		Regulatory:  models.Regulatory{Country: "India", Authority: "DGCA"},
	}
}

func testPlan(t *testing.T, spec models.MissionSpec) models.CoveragePlan {
	t.Helper()
	plan, err := coverage.Plan(spec.Geometry(), models.FlightParameters{CruiseSpeedMps: 10, MaxSegmentTimeMin: 20})
	if err != nil {
		t.Fatalf("coverage.Plan err = %v, want nil", err)
	}
	return plan
}

func TestBuildConfig(t *testing.T) {
	spec := testSpec()
	cfg := BuildConfig(spec, testPlan(t, spec))

	if cfg.MissionParameters.AltitudeM != 50 || cfg.MissionParameters.CruiseSpeedMps != 10 {
		t.Fatalf("MissionParameters = %+v, want altitude 50 speed 10", cfg.MissionParameters)
	}
	if *cfg.MissionParameters.Overlap.FrontlapPercent != 70 || *cfg.MissionParameters.Overlap.SidelapPercent != 50 {
		t.Fatalf("Overlap = %+v, want 70/50", cfg.MissionParameters.Overlap)
	}
	if cfg.FlightParameters.NumWaypoints != 4 || cfg.FlightParameters.TotalDistanceM != 200 {
		t.Fatalf("FlightParameters = %+v, want 4 waypoints over 200 m", cfg.FlightParameters)
	}
	if cfg.SafetyParameters.NoFlyBufferM != 150 {
		t.Fatalf("NoFlyBufferM = %v, want 150", cfg.SafetyParameters.NoFlyBufferM)
	}
	if cfg.SafetyParameters.BatteryReservePercent != models.DefaultBatteryReservePercent {
		t.Fatalf("BatteryReservePercent = %v, want default %v", cfg.SafetyParameters.BatteryReservePercent, models.DefaultBatteryReservePercent)
	}
	if cfg.SafetyParameters.ReturnToHomeAltitudeM != 70 {
		t.Fatalf("ReturnToHomeAltitudeM = %v, want 70", cfg.SafetyParameters.ReturnToHomeAltitudeM)
	}
	if cfg.Regulatory.Authority != "DGCA" {
		t.Fatalf("Regulatory = %+v, want passthrough", cfg.Regulatory)
	}
}

func TestBuildPackage(t *testing.T) {
	spec := testSpec()
	plan := testPlan(t, spec)
	origin := models.Origin{Latitude: 28.6139, Longitude: 77.2090}

	pkg, err := BuildPackage(spec, plan, origin, nil)
	if err != nil {
		t.Fatalf("BuildPackage err = %v, want nil", err)
	}

	if len(pkg.Waypoints) != 2*plan.Summary.NumLegs || pkg.Metadata.TotalWaypoints != len(pkg.Waypoints) {
		t.Fatalf("waypoints = %d (metadata %d), want %d", len(pkg.Waypoints), pkg.Metadata.TotalWaypoints, 2*plan.Summary.NumLegs)
	}
	first := pkg.Waypoints[0]
	if first.Latitude != origin.Latitude || first.Longitude != origin.Longitude {
		t.Fatalf("first waypoint = %+v, want origin", first)
	}
	if pkg.Metadata.CoordinateSystem != "WGS84" || pkg.Metadata.Projection != string(geo.ProjectionLinear) {
		t.Fatalf("Metadata = %+v", pkg.Metadata)
	}
	if !(pkg.Metadata.GeodeticLegLengthM > 0) {
		t.Fatalf("GeodeticLegLengthM = %v, want > 0", pkg.Metadata.GeodeticLegLengthM)
	}

	// leg ids appear exactly twice each, in order
	counts := map[int]int{}
	prev := 0
	for _, wp := range pkg.Waypoints {
		if wp.LegID < prev {
			t.Fatalf("leg ids decrease at waypoint %d", wp.ID)
		}
		prev = wp.LegID
		counts[wp.LegID]++
	}
	for id := 1; id <= plan.Summary.NumLegs; id++ {
		if counts[id] != 2 {
			t.Fatalf("leg %d has %d waypoints, want 2", id, counts[id])
		}
	}
}

func TestBuildPackageRejectsEquatorOrigin(t *testing.T) {
	spec := testSpec()
	_, err := BuildPackage(spec, testPlan(t, spec), models.Origin{Latitude: 0, Longitude: 77}, geo.NewProjector(geo.ProjectionCosine))
	if !errors.Is(err, models.ErrInvalidParameter) {
		t.Fatalf("BuildPackage err = %v, want ErrInvalidParameter", err)
	}
}
