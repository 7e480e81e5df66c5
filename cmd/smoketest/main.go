package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"coverage-planner-go/internal/grpcapi"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Пример миссии: поле 500 x 300 м, высота 70 м
const sampleMission = `{
  "name": "Smoke test field",
  "mission_spec": {
    "area": {"length_m": 500, "width_m": 300},
    "altitude_m": 70,
    "camera_fov_deg": 78,
    "overlap": {"frontlap_percent": 75, "sidelap_percent": 65},
    "regulatory": {"country": "India", "authority": "DGCA"}
  }
}`

func main() {
	httpAddr := flag.String("http", "http://localhost:8080", "HTTP API base URL")
	grpcAddr := flag.String("grpc", "localhost:9090", "gRPC address")
	flag.Parse()

	client := &http.Client{Timeout: 30 * time.Second}

	fmt.Println("Проверяем health endpoint...")
	if err := get(client, *httpAddr+"/api/v1/health"); err != nil {
		fmt.Printf("Ошибка при обращении к health endpoint: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Создаем миссию...")
	missionID, err := createMission(client, *httpAddr)
	if err != nil {
		fmt.Printf("Ошибка создания миссии: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Скачиваем бриф миссии...")
	if err := get(client, fmt.Sprintf("%s/api/v1/missions/%s/artifacts/mission_brief.md", *httpAddr, missionID)); err != nil {
		fmt.Printf("Ошибка получения брифа: %v\n", err)
	}

	fmt.Println("Планируем ту же миссию по gRPC...")
	if err := planGRPC(*grpcAddr); err != nil {
		fmt.Printf("Ошибка gRPC: %v\n", err)
		os.Exit(1)
	}
}

func get(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}
	fmt.Printf("Ответ (статус %d):\n%s\n\n", resp.StatusCode, string(body))
	return nil
}

func createMission(client *http.Client, baseURL string) (string, error) {
	resp, err := client.Post(baseURL+"/api/v1/missions", "application/json", bytes.NewBufferString(sampleMission))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var created struct {
		ID              string                 `json:"id"`
		CoverageSummary map[string]interface{} `json:"coverage_summary"`
		Error           string                 `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("ошибка разбора ответа: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("статус %d: %s", resp.StatusCode, created.Error)
	}

	fmt.Printf("Миссия %s создана: %v\n\n", created.ID, created.CoverageSummary)
	return created.ID, nil
}

func planGRPC(addr string) error {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	defer conn.Close()

	var req map[string]interface{}
	if err := json.Unmarshal([]byte(sampleMission), &req); err != nil {
		return err
	}
	in, err := grpcapi.ToStruct(req)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out, err := grpcapi.NewPlannerClient(conn).Plan(ctx, in)
	if err != nil {
		return err
	}

	summary := out.GetFields()["coverage_plan"].GetStructValue().GetFields()["coverage_summary"]
	fmt.Printf("gRPC сводка: %v\n", summary.GetStructValue().AsMap())
	return nil
}
