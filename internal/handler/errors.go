package handler

import (
	"errors"
	"net/http"

	"coverage-planner-go/internal/repository"
	"coverage-planner-go/internal/service"
	"coverage-planner-go/internal/storage"
	"coverage-planner-go/pkg/models"

	"github.com/gin-gonic/gin"
)

// statusFor сопоставляет ошибку сервиса с HTTP статусом
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidParameter), errors.Is(err, models.ErrDegenerateGeometry):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrMissionNotFound), errors.Is(err, storage.ErrArtifactNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrIntakeUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError отдает ошибку в JSON. Для неверного параметра добавляется имя поля
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	if status == http.StatusInternalServerError {
		body["error"] = "Внутренняя ошибка сервера"
	}

	var invalid *models.InvalidParameterError
	if errors.As(err, &invalid) {
		body["field"] = invalid.Field
	}
	c.JSON(status, body)
}
