package models

// Значения безопасности по умолчанию для блока конфигурации автопилота
const (
	DefaultNoFlyBufferM          = 100.0
	DefaultBatteryReservePercent = 20.0
	DefaultMaxWindSpeedMps       = 10.0
	ReturnToHomeAltitudeMarginM  = 20.0
	CoordinateSystemWGS84        = "WGS84"
)

// MissionParameters параметры миссии для автопилота
type MissionParameters struct {
	AltitudeM      float64 `json:"altitude_m"`
	CruiseSpeedMps float64 `json:"cruise_speed_mps"`
	CameraFOVDeg   float64 `json:"camera_fov_deg"`
	Overlap        Overlap `json:"overlap"`
}

// FlightSummary сводные параметры полёта
type FlightSummary struct {
	NumWaypoints           int     `json:"num_waypoints"`
	TotalDistanceM         float64 `json:"total_distance_m"`
	EstimatedFlightTimeMin float64 `json:"estimated_flight_time_min"`
	NumBatterySegments     int     `json:"num_battery_segments"`
}

// SafetyParameters параметры безопасности
type SafetyParameters struct {
	NoFlyBufferM          float64 `json:"no_fly_buffer_m"`
	BatteryReservePercent float64 `json:"battery_reserve_percent"`
	MaxWindSpeedMps       float64 `json:"max_wind_speed_mps"`
	ReturnToHomeAltitudeM float64 `json:"return_to_home_altitude_m"`
}

// AutopilotConfig блок конфигурации для наземной станции / автопилота
type AutopilotConfig struct {
	MissionParameters MissionParameters `json:"mission_parameters"`
	FlightParameters  FlightSummary     `json:"flight_parameters"`
	SafetyParameters  SafetyParameters  `json:"safety_parameters"`
	Regulatory        Regulatory        `json:"regulatory"`
}

// PackageMetadata метаданные пакета миссии
type PackageMetadata struct {
	TotalWaypoints     int     `json:"total_waypoints"`
	Origin             Origin  `json:"origin"`
	CoordinateSystem   string  `json:"coordinate_system"`
	Projection         string  `json:"projection"`
	GeodeticLegLengthM float64 `json:"geodetic_leg_length_m"`
}

// MissionPackage пакет миссии: путевые точки, конфигурация и метаданные
type MissionPackage struct {
	Waypoints []Waypoint      `json:"waypoints"`
	Config    AutopilotConfig `json:"config"`
	Metadata  PackageMetadata `json:"metadata"`
}
