// Package coverage строит маршрут полного покрытия ("газонокосилка")
// прямоугольной области. Все функции пакета чистые: без ввода-вывода,
// без состояния и без случайности.
package coverage

import (
	"fmt"
	"math"

	"coverage-planner-go/pkg/models"
)

// MaxLegs верхняя граница числа галсов в одном плане
const MaxLegs = 100000

// integerTolerance допуск, в пределах которого отношение пролёта к шагу
// считается целым числом
const integerTolerance = 1e-9

// candidate вариант ориентации галсов
type candidate struct {
	direction   models.SweepDirection
	legLengthM  float64
	spanAcrossM float64
	numLegs     int
	pathLengthM float64
}

// Plan рассчитывает полный план покрытия, включая разбиение на батарейные сегменты
func Plan(geometry models.MissionGeometry, params models.FlightParameters) (models.CoveragePlan, error) {
	summary, legs, err := PlanCoverage(geometry, params)
	if err != nil {
		return models.CoveragePlan{}, err
	}

	return models.CoveragePlan{
		Summary:         summary,
		Legs:            legs,
		BatterySegments: PartitionBatterySegments(summary, params),
	}, nil
}

// PlanCoverage рассчитывает сводку и упорядоченные галсы для прямоугольной области.
// Из двух ориентаций выбирается та, что даёт меньшую длину маршрута;
// при равенстве выбирается полёт вдоль длины.
func PlanCoverage(geometry models.MissionGeometry, params models.FlightParameters) (models.CoverageSummary, []models.Leg, error) {
	if err := geometry.Validate(); err != nil {
		return models.CoverageSummary{}, nil, err
	}
	if err := params.Validate(); err != nil {
		return models.CoverageSummary{}, nil, err
	}

	// Ширина полосы захвата и шаг между галсами
	swathWidth, err := SwathWidth(geometry.AltitudeM, geometry.CameraFOVDeg)
	if err != nil {
		return models.CoverageSummary{}, nil, err
	}
	spacing := LegSpacing(swathWidth, geometry.SidelapPercent)

	// Оцениваем обе ориентации
	alongLength, err := evaluate(models.SweepAlongLength, geometry.LengthM, geometry.WidthM, spacing)
	if err != nil {
		return models.CoverageSummary{}, nil, err
	}
	alongWidth, err := evaluate(models.SweepAlongWidth, geometry.WidthM, geometry.LengthM, spacing)
	if err != nil {
		return models.CoverageSummary{}, nil, err
	}

	chosen := alongLength
	if alongWidth.pathLengthM < alongLength.pathLengthM {
		chosen = alongWidth
	}

	// Равномерно распределяем галсы от края до края
	spacing, err = normalizeSpacing(chosen.spanAcrossM, chosen.numLegs)
	if err != nil {
		return models.CoverageSummary{}, nil, err
	}

	legLength := round3(chosen.legLengthM)
	legs := generateLegs(chosen.direction, chosen.numLegs, legLength, spacing)

	// Длина маршрута равна произведению, округлённому до миллиметра
	totalPathLength := round3(float64(chosen.numLegs) * legLength)
	flightTime := totalPathLength / params.CruiseSpeedMps / 60.0

	summary := models.CoverageSummary{
		SweepDirection:     chosen.direction,
		SwathWidthM:        round3(swathWidth),
		LegSpacingM:        round3(spacing),
		NumLegs:            chosen.numLegs,
		LegLengthM:         legLength,
		TotalPathLengthM:   totalPathLength,
		CruiseSpeedMps:     params.CruiseSpeedMps,
		FrontlapPercent:    geometry.FrontlapPercent,
		TotalFlightTimeMin: round2(flightTime),
		NumBatterySegments: BatterySegmentCount(flightTime, params.MaxSegmentTimeMin),
	}

	return summary, legs, nil
}

// SwathWidth вычисляет ширину полосы захвата одного кадра на земле:
// 2 * h * tan(fov/2)
func SwathWidth(altitudeM, fovDeg float64) (float64, error) {
	if !(altitudeM > 0) || math.IsInf(altitudeM, 0) {
		return 0, models.NewInvalidParameterError("altitude_m", altitudeM, "must be a finite positive number")
	}
	if !(fovDeg > 0 && fovDeg < 180) {
		return 0, models.NewInvalidParameterError("camera_fov_deg", fovDeg, "must be within (0, 180)")
	}

	fovRad := fovDeg * math.Pi / 180
	return 2 * altitudeM * math.Tan(fovRad/2), nil
}

// LegSpacing вычисляет шаг между галсами с учётом поперечного перекрытия.
// Результат может быть неположительным, тогда план будет одногалсовым.
func LegSpacing(swathWidthM, sidelapPercent float64) float64 {
	return swathWidthM * (1.0 - sidelapPercent/100.0)
}

// LegsAcross возвращает число галсов, нужных для покрытия пролёта span при шаге spacing.
// Отношение, отличающееся от целого не более чем на допуск, не округляется вверх.
func LegsAcross(spanM, spacingM float64) (int, error) {
	if !(spacingM > 0) {
		return 1, nil
	}

	ratio := spanM / spacingM
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio > MaxLegs {
		return 0, &models.DegenerateGeometryError{Reason: fmt.Sprintf("plan size limit: more than %d legs required", MaxLegs)}
	}

	nearest := math.Round(ratio)
	n := int(math.Ceil(ratio))
	if math.Abs(ratio-nearest) <= integerTolerance*math.Max(1, nearest) {
		n = int(nearest)
	}
	if n < 1 {
		n = 1
	}
	return n, nil
}

// BatterySegmentCount число батарейных сегментов, минимум один
func BatterySegmentCount(flightTimeMin, maxSegmentTimeMin float64) int {
	segments := int(math.Ceil(flightTimeMin / maxSegmentTimeMin))
	if segments < 1 {
		return 1
	}
	return segments
}

func evaluate(direction models.SweepDirection, legLengthM, spanAcrossM, spacingM float64) (candidate, error) {
	numLegs, err := LegsAcross(spanAcrossM, spacingM)
	if err != nil {
		return candidate{}, err
	}

	return candidate{
		direction:   direction,
		legLengthM:  legLengthM,
		spanAcrossM: spanAcrossM,
		numLegs:     numLegs,
		pathLengthM: float64(numLegs) * legLengthM,
	}, nil
}

// normalizeSpacing пересчитывает шаг так, чтобы крайние галсы легли на границы области
func normalizeSpacing(spanAcrossM float64, numLegs int) (float64, error) {
	if numLegs <= 1 {
		return 0, nil
	}

	spacing := spanAcrossM / float64(numLegs-1)
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return 0, &models.DegenerateGeometryError{Reason: "normalized leg spacing is not a finite positive number"}
	}
	return spacing, nil
}

// generateLegs строит галсы змейкой: чётные идут 0 -> L, нечётные L -> 0
func generateLegs(direction models.SweepDirection, numLegs int, legLengthM, spacingM float64) []models.Leg {
	legs := make([]models.Leg, numLegs)

	for i := 0; i < numLegs; i++ {
		offset := round3(float64(i) * spacingM)

		alongStart, alongEnd := 0.0, legLengthM
		if i%2 == 1 {
			alongStart, alongEnd = legLengthM, 0.0
		}

		leg := models.Leg{LegID: i + 1}
		if direction == models.SweepAlongLength {
			leg.Start = models.Point{XM: alongStart, YM: offset}
			leg.End = models.Point{XM: alongEnd, YM: offset}
		} else {
			leg.Start = models.Point{XM: offset, YM: alongStart}
			leg.End = models.Point{XM: offset, YM: alongEnd}
		}
		legs[i] = leg
	}

	return legs
}

// round3 округляет до миллиметра
func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
