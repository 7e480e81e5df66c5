package model

import (
	"time"

	"gorm.io/gorm"
)

// Статусы миссий
const (
	MissionStatusPlanned   = "planned"
	MissionStatusActive    = "active"
	MissionStatusCompleted = "completed"
	MissionStatusAborted   = "aborted"
)

// ValidMissionStatus проверяет название статуса
func ValidMissionStatus(status string) bool {
	switch status {
	case MissionStatusPlanned, MissionStatusActive, MissionStatusCompleted, MissionStatusAborted:
		return true
	}
	return false
}

// Mission представляет миссию в базе данных
type Mission struct {
	ID              string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name            string  `gorm:"type:varchar(255);not null" json:"name"`
	UserRequest     string  `gorm:"type:text" json:"user_request"`
	MissionSpecJSON string  `gorm:"type:text;not null" json:"mission_spec_json"`
	Status          string  `gorm:"type:varchar(32);not null;index" json:"status"`
	OriginLat       float64 `gorm:"not null;index" json:"origin_lat"`
	OriginLon       float64 `gorm:"not null;index" json:"origin_lon"`
	Projection      string  `gorm:"type:varchar(16);not null" json:"projection"`

	// Сводка плана покрытия
	SweepDirection     string  `gorm:"type:varchar(16);not null" json:"sweep_direction"`
	SwathWidthM        float64 `gorm:"not null" json:"swath_width_m"`
	LegSpacingM        float64 `gorm:"not null" json:"leg_spacing_m"`
	NumLegs            int     `gorm:"not null" json:"num_legs"`
	LegLengthM         float64 `gorm:"not null" json:"leg_length_m"`
	TotalPathLengthM   float64 `gorm:"not null" json:"total_path_length_m"`
	CruiseSpeedMps     float64 `gorm:"not null" json:"cruise_speed_mps"`
	MaxSegmentTimeMin  float64 `gorm:"not null" json:"max_segment_time_min"`
	TotalFlightTimeMin float64 `gorm:"not null" json:"total_flight_time_min"`
	NumBatterySegments int     `gorm:"not null" json:"num_battery_segments"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Связь с галсами
	Legs []Leg `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE" json:"legs"`
}

// Leg представляет галс миссии в базе данных
type Leg struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	MissionID string  `gorm:"type:varchar(36);not null;index" json:"mission_id"`
	LegID     int     `gorm:"not null" json:"leg_id"`
	StartXM   float64 `gorm:"not null" json:"start_x_m"`
	StartYM   float64 `gorm:"not null" json:"start_y_m"`
	EndXM     float64 `gorm:"not null" json:"end_x_m"`
	EndYM     float64 `gorm:"not null" json:"end_y_m"`
	StartLat  float64 `gorm:"not null" json:"start_lat"`
	StartLon  float64 `gorm:"not null" json:"start_lon"`
	EndLat    float64 `gorm:"not null" json:"end_lat"`
	EndLon    float64 `gorm:"not null" json:"end_lon"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Обратная связь с миссией
	Mission Mission `gorm:"foreignKey:MissionID;references:ID" json:"-"`
}

// TableName указывает имя таблицы для Mission
func (Mission) TableName() string {
	return "missions"
}

// TableName указывает имя таблицы для Leg
func (Leg) TableName() string {
	return "mission_legs"
}
