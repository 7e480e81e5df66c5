// Package brief формирует текстовый бриф миссии в формате Markdown.
package brief

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"coverage-planner-go/pkg/models"
)

const notAvailable = "N/A"

var briefTemplate = template.Must(template.New("brief").Funcs(template.FuncMap{
	"num":    formatNumber,
	"optnum": formatOptional,
	"orna":   orNotAvailable,
}).Parse(`# UAV Mission Brief - Mission {{.MissionID}}

## Mission Overview

**Area**: {{num .Geometry.LengthM}}m x {{num .Geometry.WidthM}}m
**Altitude**: {{num .Geometry.AltitudeM}}m AGL
**Camera FOV**: {{num .Geometry.CameraFOVDeg}}°

## Flight Parameters

**Number of Legs**: {{.Summary.NumLegs}}
**Leg Length**: {{num .Summary.LegLengthM}}m
**Total Distance**: {{num .Summary.TotalPathLengthM}}m
**Estimated Flight Time**: {{num .Summary.TotalFlightTimeMin}} minutes
**Battery Segments**: {{.Summary.NumBatterySegments}}
**Sweep Direction**: {{.Summary.SweepDirection}}

## Coverage Details

**Swath Width**: {{num .Summary.SwathWidthM}}m
**Leg Spacing**: {{num .Summary.LegSpacingM}}m
**Cruise Speed**: {{num .Summary.CruiseSpeedMps}} m/s

**Overlap**:
- Front Overlap: {{num .Geometry.FrontlapPercent}}%
- Side Overlap: {{num .Geometry.SidelapPercent}}%
{{if .BatterySegments}}
## Battery Plan
{{range .BatterySegments}}
- Segment {{.SegmentID}}: legs {{.FirstLegID}}-{{.LastLegID}}, {{num .StartDistanceM}}m to {{num .EndDistanceM}}m, {{num .FlightTimeMin}} min
{{- end}}
{{end}}
## Safety Constraints

**No-Fly Buffer**: {{optnum .Spec.Constraints.NoFlyBufferM}}m
**Battery Reserve**: {{optnum .Spec.Constraints.BatteryReservePercent}}%

## Regulatory Information

**Country**: {{orna .Spec.Regulatory.Country}}
**Authority**: {{orna .Spec.Regulatory.Authority}}

**Summary**: {{orna .Spec.Regulatory.Summary}}

**Notes**:
{{range .Spec.Regulatory.Notes}}- {{.}}
{{end}}
## Mission Notes

{{range .Spec.Notes}}- {{.}}
{{end}}`))

type briefData struct {
	MissionID       string
	Spec            models.MissionSpec
	Geometry        models.MissionGeometry
	Summary         models.CoverageSummary
	BatterySegments []models.BatterySegment
}

// Render формирует бриф миссии
func Render(missionID string, spec models.MissionSpec, plan models.CoveragePlan) (string, error) {
	data := briefData{
		MissionID:       missionID,
		Spec:            spec,
		Geometry:        spec.Geometry(),
		Summary:         plan.Summary,
		BatterySegments: plan.BatterySegments,
	}

	var buf bytes.Buffer
	if err := briefTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render mission brief: %w", err)
	}
	return buf.String(), nil
}

// formatNumber печатает число без лишних нулей: 500, 0.33, 109.2
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return formatNumber(*v)
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
