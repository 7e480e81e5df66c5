package coverage

import (
	"math"

	"coverage-planner-go/pkg/models"
)

// PartitionBatterySegments разбивает маршрут на участки, каждый из которых
// пролетается не дольше max_segment_time_min. Галс, пересекающий границу
// участка, входит в оба соседних участка.
func PartitionBatterySegments(summary models.CoverageSummary, params models.FlightParameters) []models.BatterySegment {
	numSegments := summary.NumBatterySegments
	if numSegments < 1 {
		return []models.BatterySegment{}
	}

	totalDistance := summary.TotalPathLengthM
	segmentDistance := params.MaxSegmentTimeMin * 60.0 * params.CruiseSpeedMps

	segments := make([]models.BatterySegment, numSegments)
	for i := 0; i < numSegments; i++ {
		start := math.Min(float64(i)*segmentDistance, totalDistance)
		end := math.Min(float64(i+1)*segmentDistance, totalDistance)
		// Последний участок всегда заканчивается в конце маршрута
		if i == numSegments-1 {
			end = totalDistance
		}

		segments[i] = models.BatterySegment{
			SegmentID:      i + 1,
			FirstLegID:     1,
			LastLegID:      summary.NumLegs,
			StartDistanceM: round3(start),
			EndDistanceM:   round3(end),
			FlightTimeMin:  round2((end - start) / params.CruiseSpeedMps / 60.0),
		}
		// Без положительной длины галса все галсы лежат в нулевой точке маршрута
		if summary.LegLengthM > 0 {
			segments[i].FirstLegID = clampLegID(int(math.Floor(start/summary.LegLengthM))+1, summary.NumLegs)
			segments[i].LastLegID = clampLegID(int(math.Ceil(end/summary.LegLengthM)), summary.NumLegs)
		}

		// Граница участка может совпасть с концом галса
		if segments[i].LastLegID < segments[i].FirstLegID {
			segments[i].LastLegID = segments[i].FirstLegID
		}
	}

	return segments
}

func clampLegID(id, numLegs int) int {
	if id < 1 {
		return 1
	}
	if id > numLegs {
		return numLegs
	}
	return id
}
