package brief

import (
	"strings"
	"testing"

	"coverage-planner-go/internal/coverage"
	"coverage-planner-go/pkg/models"
)

func TestRender(t *testing.T) {
	altitude, fov := 50.0, 60.0
	reserve := 25.0
	spec := models.MissionSpec{
		Area:         models.Area{LengthM: 100, WidthM: 50},
		AltitudeM:    &altitude,
		CameraFOVDeg: &fov,
		Constraints:  models.Constraints{BatteryReservePercent: &reserve},
		Regulatory: models.Regulatory{
			Country: "India",
			Notes:   []string{"Register the drone on Digital Sky"},
		},
		Notes: []string{"Fly before noon"},
	}
	plan, err := coverage.Plan(spec.Geometry(), models.FlightParameters{CruiseSpeedMps: 10, MaxSegmentTimeMin: 20})
	if err != nil {
		t.Fatalf("coverage.Plan err = %v, want nil", err)
	}

	got, err := Render("42", spec, plan)
	if err != nil {
		t.Fatalf("Render err = %v, want nil", err)
	}

	for _, want := range []string{
		"# UAV Mission Brief - Mission 42",
		"**Area**: 100m x 50m",
		"**Altitude**: 50m AGL",
		"**Number of Legs**: 2",
		"**Estimated Flight Time**: 0.33 minutes",
		"**Sweep Direction**: along_length",
		"- Side Overlap: 65%",
		"- Segment 1: legs 1-2, 0m to 200m, 0.33 min",
		"**No-Fly Buffer**: N/A",
		"**Battery Reserve**: 25%",
		"**Country**: India",
		"**Authority**: N/A",
		"- Register the drone on Digital Sky",
		"- Fly before noon",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("Render output missing %q:\n%s", want, got)
		}
	}
}
