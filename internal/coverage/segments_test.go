package coverage

import (
	"reflect"
	"testing"

	"coverage-planner-go/pkg/models"
)

func TestPartitionBatterySegments(t *testing.T) {
	summary := models.CoverageSummary{
		NumLegs:            4,
		LegLengthM:         100,
		TotalPathLengthM:   400,
		NumBatterySegments: 2,
	}
	// 5 minutes at 1 m/s covers 300 m
	params := models.FlightParameters{CruiseSpeedMps: 1, MaxSegmentTimeMin: 5}

	got := PartitionBatterySegments(summary, params)
	want := []models.BatterySegment{
		{SegmentID: 1, FirstLegID: 1, LastLegID: 3, StartDistanceM: 0, EndDistanceM: 300, FlightTimeMin: 5},
		{SegmentID: 2, FirstLegID: 4, LastLegID: 4, StartDistanceM: 300, EndDistanceM: 400, FlightTimeMin: 1.67},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PartitionBatterySegments = %+v, want %+v", got, want)
	}
}

func TestPartitionBatterySegmentsSplitsLegs(t *testing.T) {
	// 35 legs of 2000 m at 5 m/s with 10 minute batteries: 3000 m per battery
	params := models.FlightParameters{CruiseSpeedMps: 5, MaxSegmentTimeMin: 10}
	plan, err := Plan(geometry(2000, 1000, 50, 60, 50), params)
	if err != nil {
		t.Fatalf("Plan err = %v, want nil", err)
	}

	if plan.Summary.NumLegs != 35 || plan.Summary.TotalPathLengthM != 70000 {
		t.Fatalf("NumLegs/TotalPathLengthM = %d/%v, want 35/70000", plan.Summary.NumLegs, plan.Summary.TotalPathLengthM)
	}
	if plan.Summary.NumBatterySegments != 24 || len(plan.BatterySegments) != 24 {
		t.Fatalf("battery segments = %d (len %d), want 24", plan.Summary.NumBatterySegments, len(plan.BatterySegments))
	}

	first := plan.BatterySegments[0]
	if first.FirstLegID != 1 || first.LastLegID != 2 || first.FlightTimeMin != 10 {
		t.Fatalf("first segment = %+v, want legs 1..2 over 10 min", first)
	}
	second := plan.BatterySegments[1]
	if second.FirstLegID != 2 || second.LastLegID != 3 || second.StartDistanceM != 3000 {
		t.Fatalf("second segment = %+v, want legs 2..3 from 3000 m", second)
	}
	last := plan.BatterySegments[23]
	if last.FirstLegID != 35 || last.LastLegID != 35 || last.EndDistanceM != 70000 || last.FlightTimeMin != 3.33 {
		t.Fatalf("last segment = %+v, want leg 35 ending at 70000 m after 3.33 min", last)
	}

	for i := 1; i < len(plan.BatterySegments); i++ {
		if plan.BatterySegments[i].StartDistanceM != plan.BatterySegments[i-1].EndDistanceM {
			t.Fatalf("segment %d starts at %v, previous ends at %v", i+1,
				plan.BatterySegments[i].StartDistanceM, plan.BatterySegments[i-1].EndDistanceM)
		}
	}
}

func TestPartitionBatterySegmentsSingleBattery(t *testing.T) {
	params := models.FlightParameters{CruiseSpeedMps: 10, MaxSegmentTimeMin: 20}
	plan, err := Plan(geometry(100, 50, 50, 60, 50), params)
	if err != nil {
		t.Fatalf("Plan err = %v, want nil", err)
	}

	want := []models.BatterySegment{
		{SegmentID: 1, FirstLegID: 1, LastLegID: 2, StartDistanceM: 0, EndDistanceM: 200, FlightTimeMin: 0.33},
	}
	if !reflect.DeepEqual(plan.BatterySegments, want) {
		t.Fatalf("BatterySegments = %+v, want %+v", plan.BatterySegments, want)
	}
}

func TestPartitionBatterySegmentsEmptySummary(t *testing.T) {
	got := PartitionBatterySegments(models.CoverageSummary{}, models.DefaultFlightParameters())
	if len(got) != 0 {
		t.Fatalf("PartitionBatterySegments(empty) = %+v, want empty", got)
	}
}

func TestPartitionBatterySegmentsZeroLegLength(t *testing.T) {
	summary := models.CoverageSummary{NumLegs: 3, NumBatterySegments: 1}

	got := PartitionBatterySegments(summary, models.DefaultFlightParameters())
	want := []models.BatterySegment{
		{SegmentID: 1, FirstLegID: 1, LastLegID: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PartitionBatterySegments = %+v, want %+v", got, want)
	}
}
