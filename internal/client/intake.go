package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"coverage-planner-go/pkg/models"

	"github.com/sirupsen/logrus"
)

// ParseRequest тело запроса на разбор текстового описания миссии
type ParseRequest struct {
	UserRequest string `json:"user_request"`
}

// ParseResponse ответ сервиса разбора
type ParseResponse struct {
	Status      string              `json:"status"`
	Message     string              `json:"message,omitempty"`
	MissionSpec *models.MissionSpec `json:"mission_spec,omitempty"`
}

// HealthResponse ответ проверки здоровья сервиса разбора
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// IntakeClient клиент сервиса, превращающего текстовый запрос в MissionSpec
type IntakeClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewIntakeClient создает новый клиент сервиса разбора
func NewIntakeClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *IntakeClient {
	return &IntakeClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ParseRequest отправляет текст запроса и возвращает разобранную спецификацию миссии
func (c *IntakeClient) ParseRequest(ctx context.Context, userRequest string) (*models.MissionSpec, error) {
	c.logger.Info("Отправка запроса на разбор миссии")

	payload, err := json.Marshal(ParseRequest{UserRequest: userRequest})
	if err != nil {
		return nil, fmt.Errorf("encode parse request: %w", err)
	}

	url := fmt.Sprintf("%s/parse", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build parse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debugf("Отправка POST запроса на %s", url)
	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed ParseResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode parse response: %w", err)
	}
	if parsed.Status != "success" {
		return nil, fmt.Errorf("intake service rejected request: %s", parsed.Message)
	}
	if parsed.MissionSpec == nil {
		return nil, fmt.Errorf("intake service returned no mission_spec")
	}

	c.logger.Info("Спецификация миссии получена от сервиса разбора")
	return parsed.MissionSpec, nil
}

// CheckHealth проверяет состояние сервиса разбора
func (c *IntakeClient) CheckHealth(ctx context.Context) (*HealthResponse, error) {
	c.logger.Debug("Проверка здоровья сервиса разбора")

	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build health request: %w", err)
	}

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := json.Unmarshal(respBody, &health); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &health, nil
}

func (c *IntakeClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("intake service returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
