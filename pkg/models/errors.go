package models

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter входной параметр геометрически или физически недопустим
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDegenerateGeometry комбинация параметров не даёт разумного многогалсового плана
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// InvalidParameterError описывает конкретный недопустимый параметр
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

// NewInvalidParameterError создает ошибку недопустимого параметра
func NewInvalidParameterError(field string, value float64, reason string) *InvalidParameterError {
	return &InvalidParameterError{Field: field, Value: value, Reason: reason}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %g %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

// Is позволяет сравнивать ошибку с ErrInvalidParameter через errors.Is
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// DegenerateGeometryError сигнализирует о невозможности нормализовать шаг галсов
type DegenerateGeometryError struct {
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDegenerateGeometry, e.Reason)
}

// Is позволяет сравнивать ошибку с ErrDegenerateGeometry через errors.Is
func (e *DegenerateGeometryError) Is(target error) bool {
	return target == ErrDegenerateGeometry
}

// requirePositive проверяет, что значение конечно и строго положительно.
// NaN не проходит сравнение и отклоняется.
func requirePositive(field string, value float64) error {
	if !(value > 0) || math.IsInf(value, 0) {
		return NewInvalidParameterError(field, value, "must be a finite positive number")
	}
	return nil
}

// requireDimension проверяет сторону области. После округления
// до миллиметра сторона должна остаться положительной.
func requireDimension(field string, value float64) error {
	if err := requirePositive(field, value); err != nil {
		return err
	}
	if math.Round(value*1000) <= 0 {
		return NewInvalidParameterError(field, value, "must be at least 0.5 mm to survive millimetre rounding")
	}
	return nil
}

// requirePercent проверяет диапазон [0, 100)
func requirePercent(field string, value float64) error {
	if !(value >= 0 && value < 100) {
		return NewInvalidParameterError(field, value, "must be within [0, 100)")
	}
	return nil
}
