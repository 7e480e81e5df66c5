package models

// Значения по умолчанию для полей, которые сервис приёма миссий может опустить
const (
	DefaultAltitudeM       = 50.0
	DefaultCameraFOVDeg    = 78.0
	DefaultFrontlapPercent = 75.0
	DefaultSidelapPercent  = 65.0

	DefaultCruiseSpeedMps    = 8.0
	DefaultMaxSegmentTimeMin = 20.0

	DefaultOriginLat = 28.6139
	DefaultOriginLon = 77.2090
)

// Area описывает прямоугольную область съёмки
type Area struct {
	LengthM float64 `json:"length_m" yaml:"length_m"` // Длина (ось X)
	WidthM  float64 `json:"width_m" yaml:"width_m"`   // Ширина (ось Y)
}

// Overlap описывает требуемое перекрытие кадров
type Overlap struct {
	FrontlapPercent *float64 `json:"frontlap_percent,omitempty" yaml:"frontlap_percent,omitempty"` // Продольное перекрытие
	SidelapPercent  *float64 `json:"sidelap_percent,omitempty" yaml:"sidelap_percent,omitempty"`   // Поперечное перекрытие
}

// Constraints ограничения безопасности миссии
type Constraints struct {
	NoFlyBufferM          *float64 `json:"no_fly_buffer_m,omitempty" yaml:"no_fly_buffer_m,omitempty"`
	BatteryReservePercent *float64 `json:"battery_reserve_percent,omitempty" yaml:"battery_reserve_percent,omitempty"`
}

// Regulatory нормативная информация, передаётся без изменений
type Regulatory struct {
	Country   string   `json:"country,omitempty" yaml:"country,omitempty"`
	Authority string   `json:"authority,omitempty" yaml:"authority,omitempty"`
	Summary   string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Notes     []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// MissionSpec спецификация миссии в формате сервиса приёма миссий.
// Неизвестные поля игнорируются при декодировании.
type MissionSpec struct {
	Area         Area        `json:"area" yaml:"area"`
	AltitudeM    *float64    `json:"altitude_m,omitempty" yaml:"altitude_m,omitempty"`
	CameraFOVDeg *float64    `json:"camera_fov_deg,omitempty" yaml:"camera_fov_deg,omitempty"`
	Overlap      Overlap     `json:"overlap" yaml:"overlap"`
	Constraints  Constraints `json:"constraints" yaml:"constraints"`
	Regulatory   Regulatory  `json:"regulatory" yaml:"regulatory"`
	Notes        []string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Geometry извлекает геометрию миссии, подставляя значения по умолчанию
// для отсутствующих высоты, угла обзора и перекрытий. Размеры области
// значений по умолчанию не имеют.
func (s MissionSpec) Geometry() MissionGeometry {
	return MissionGeometry{
		LengthM:         s.Area.LengthM,
		WidthM:          s.Area.WidthM,
		AltitudeM:       valueOr(s.AltitudeM, DefaultAltitudeM),
		CameraFOVDeg:    valueOr(s.CameraFOVDeg, DefaultCameraFOVDeg),
		FrontlapPercent: valueOr(s.Overlap.FrontlapPercent, DefaultFrontlapPercent),
		SidelapPercent:  valueOr(s.Overlap.SidelapPercent, DefaultSidelapPercent),
	}
}

// MissionGeometry входные геометрические параметры планировщика
type MissionGeometry struct {
	LengthM         float64 `json:"length_m"`
	WidthM          float64 `json:"width_m"`
	AltitudeM       float64 `json:"altitude_m"`
	CameraFOVDeg    float64 `json:"camera_fov_deg"`
	FrontlapPercent float64 `json:"frontlap_percent"`
	SidelapPercent  float64 `json:"sidelap_percent"`
}

// Validate проверяет геометрию миссии
func (g MissionGeometry) Validate() error {
	if err := requireDimension("length_m", g.LengthM); err != nil {
		return err
	}
	if err := requireDimension("width_m", g.WidthM); err != nil {
		return err
	}
	if err := requirePositive("altitude_m", g.AltitudeM); err != nil {
		return err
	}
	if !(g.CameraFOVDeg > 0 && g.CameraFOVDeg < 180) {
		return NewInvalidParameterError("camera_fov_deg", g.CameraFOVDeg, "must be within (0, 180)")
	}
	if err := requirePercent("frontlap_percent", g.FrontlapPercent); err != nil {
		return err
	}
	return requirePercent("sidelap_percent", g.SidelapPercent)
}

// FlightParameters параметры полёта
type FlightParameters struct {
	CruiseSpeedMps    float64 `json:"cruise_speed_mps" yaml:"cruise_speed_mps"`
	MaxSegmentTimeMin float64 `json:"max_segment_time_min" yaml:"max_segment_time_min"`
}

// DefaultFlightParameters возвращает параметры полёта по умолчанию
func DefaultFlightParameters() FlightParameters {
	return FlightParameters{
		CruiseSpeedMps:    DefaultCruiseSpeedMps,
		MaxSegmentTimeMin: DefaultMaxSegmentTimeMin,
	}
}

// Validate проверяет параметры полёта
func (p FlightParameters) Validate() error {
	if err := requirePositive("cruise_speed_mps", p.CruiseSpeedMps); err != nil {
		return err
	}
	return requirePositive("max_segment_time_min", p.MaxSegmentTimeMin)
}

// SweepDirection направление галсов
type SweepDirection string

const (
	SweepAlongLength SweepDirection = "along_length"
	SweepAlongWidth  SweepDirection = "along_width"
)

// Point точка в локальной системе координат (начало в углу прямоугольника)
type Point struct {
	XM float64 `json:"x_m"`
	YM float64 `json:"y_m"`
}

// Leg прямолинейный галс маршрута
type Leg struct {
	LegID int   `json:"leg_id"`
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// CoverageSummary сводка по плану покрытия
type CoverageSummary struct {
	SweepDirection     SweepDirection `json:"sweep_direction"`
	SwathWidthM        float64        `json:"swath_width_m"`
	LegSpacingM        float64        `json:"leg_spacing_m"`
	NumLegs            int            `json:"num_legs"`
	LegLengthM         float64        `json:"leg_length_m"`
	TotalPathLengthM   float64        `json:"total_path_length_m"` // NumLegs * LegLengthM, до миллиметра
	CruiseSpeedMps     float64        `json:"cruise_speed_mps"`
	FrontlapPercent    float64        `json:"frontlap_percent"`
	TotalFlightTimeMin float64        `json:"total_flight_time_min"`
	NumBatterySegments int            `json:"num_battery_segments"`
}

// BatterySegment участок маршрута, пролетаемый на одной батарее
type BatterySegment struct {
	SegmentID      int     `json:"segment_id"`
	FirstLegID     int     `json:"first_leg_id"`
	LastLegID      int     `json:"last_leg_id"`
	StartDistanceM float64 `json:"start_distance_m"`
	EndDistanceM   float64 `json:"end_distance_m"`
	FlightTimeMin  float64 `json:"flight_time_min"`
}

// CoveragePlan полный результат планировщика
type CoveragePlan struct {
	Summary         CoverageSummary  `json:"coverage_summary"`
	Legs            []Leg            `json:"legs"`
	BatterySegments []BatterySegment `json:"battery_segments"`
}

// WaypointPosition положение путевой точки на галсе
type WaypointPosition string

const (
	PositionStart WaypointPosition = "start"
	PositionEnd   WaypointPosition = "end"
)

// Waypoint путевая точка в географических координатах
type Waypoint struct {
	ID        int              `json:"id"`
	Latitude  float64          `json:"latitude"`
	Longitude float64          `json:"longitude"`
	AltitudeM float64          `json:"altitude_m"`
	LegID     int              `json:"leg_id"`
	Position  WaypointPosition `json:"position"`
}

// Origin опорная точка локальной системы координат
type Origin struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultOrigin возвращает опорную точку по умолчанию
func DefaultOrigin() Origin {
	return Origin{Latitude: DefaultOriginLat, Longitude: DefaultOriginLon}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
