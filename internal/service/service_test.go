package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"coverage-planner-go/internal/client"
	"coverage-planner-go/internal/config"
	"coverage-planner-go/internal/model"
	"coverage-planner-go/internal/repository"
	"coverage-planner-go/internal/storage"
	"coverage-planner-go/pkg/models"

	"github.com/sirupsen/logrus"
)

func ptr(v float64) *float64 { return &v }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testDefaults() config.PlannerConfig {
	return config.PlannerConfig{
		CruiseSpeedMps:    10,
		MaxSegmentTimeMin: 20,
		OriginLat:         models.DefaultOriginLat,
		OriginLon:         models.DefaultOriginLon,
		Projection:        "linear",
	}
}

func smallFieldSpec() *models.MissionSpec {
	return &models.MissionSpec{
		Area:         models.Area{LengthM: 100, WidthM: 50},
		AltitudeM:    ptr(50),
		CameraFOVDeg: ptr(60),
		Overlap:      models.Overlap{SidelapPercent: ptr(50)},
		Regulatory:   models.Regulatory{Country: "India", Authority: "DGCA"},
	}
}

type fakeIntake struct {
	spec *models.MissionSpec
	err  error
	got  string
}

func (f *fakeIntake) ParseRequest(ctx context.Context, userRequest string) (*models.MissionSpec, error) {
	f.got = userRequest
	return f.spec, f.err
}

func (f *fakeIntake) CheckHealth(ctx context.Context) (*client.HealthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &client.HealthResponse{Status: "healthy"}, nil
}

type failingStore struct {
	storage.ArtifactStore
	failOn  string
	deleted []string
}

func (s *failingStore) Save(ctx context.Context, missionID, name string, data []byte) error {
	if name == s.failOn {
		return errors.New("disk full")
	}
	return s.ArtifactStore.Save(ctx, missionID, name, data)
}

func (s *failingStore) Delete(ctx context.Context, missionID string) error {
	s.deleted = append(s.deleted, missionID)
	return s.ArtifactStore.Delete(ctx, missionID)
}

func newFSStore(t *testing.T) storage.ArtifactStore {
	t.Helper()
	store, err := storage.NewFSStore(t.TempDir(), quietLogger())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	return store
}

func TestPlanningServicePlan(t *testing.T) {
	svc := NewPlanningService(nil, testDefaults(), nil, quietLogger())

	result, err := svc.Plan(context.Background(), "http", "", PlanRequest{MissionSpec: smallFieldSpec()})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	if result.MissionID == "" {
		t.Fatal("Plan() should generate a mission id")
	}
	summary := result.CoveragePlan.Summary
	if summary.NumLegs != 2 || summary.SweepDirection != models.SweepAlongLength {
		t.Fatalf("summary = %+v, want 2 legs along_length", summary)
	}
	if got := len(result.MissionPackage.Waypoints); got != 4 {
		t.Fatalf("waypoints = %d, want 4", got)
	}
	if result.MissionPackage.Metadata.Origin != models.DefaultOrigin() {
		t.Fatalf("origin = %+v, want default", result.MissionPackage.Metadata.Origin)
	}
	if !strings.Contains(result.MissionBrief, result.MissionID) {
		t.Fatal("brief does not mention the mission id")
	}
}

func TestPlanningServiceOverrides(t *testing.T) {
	svc := NewPlanningService(nil, testDefaults(), nil, quietLogger())

	result, err := svc.Plan(context.Background(), "http", "fixed-id", PlanRequest{
		MissionSpec:    smallFieldSpec(),
		CruiseSpeedMps: ptr(5),
		Origin:         &models.Origin{Latitude: -33.8688, Longitude: 151.2093},
		Projection:     "cosine",
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if result.MissionID != "fixed-id" {
		t.Fatalf("MissionID = %q, want fixed-id", result.MissionID)
	}
	if result.CoveragePlan.Summary.CruiseSpeedMps != 5 {
		t.Fatalf("CruiseSpeedMps = %v, want 5", result.CoveragePlan.Summary.CruiseSpeedMps)
	}
	if result.MissionPackage.Metadata.Projection != "cosine" {
		t.Fatalf("Projection = %q, want cosine", result.MissionPackage.Metadata.Projection)
	}
	if first := result.MissionPackage.Waypoints[0]; first.Latitude != -33.8688 {
		t.Fatalf("first waypoint latitude = %v, want origin", first.Latitude)
	}
}

func TestPlanningServiceErrors(t *testing.T) {
	svc := NewPlanningService(nil, testDefaults(), nil, quietLogger())
	zeroArea := smallFieldSpec()
	zeroArea.Area.WidthM = 0

	tests := []struct {
		name string
		req  PlanRequest
		want error
	}{
		{"no spec", PlanRequest{}, ErrInvalidRequest},
		{"no intake", PlanRequest{UserRequest: "survey my farm"}, ErrIntakeUnavailable},
		{"bad projection", PlanRequest{MissionSpec: smallFieldSpec(), Projection: "mercator"}, ErrInvalidRequest},
		{"zero width", PlanRequest{MissionSpec: zeroArea}, models.ErrInvalidParameter},
		{"zero speed", PlanRequest{MissionSpec: smallFieldSpec(), CruiseSpeedMps: ptr(0)}, models.ErrInvalidParameter},
		{"equator origin", PlanRequest{MissionSpec: smallFieldSpec(), Origin: &models.Origin{Latitude: 0, Longitude: 10}}, models.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Plan(context.Background(), "http", "", tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Plan() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPlanningServiceIntake(t *testing.T) {
	intake := &fakeIntake{spec: smallFieldSpec()}
	svc := NewPlanningService(intake, testDefaults(), nil, quietLogger())

	result, err := svc.Plan(context.Background(), "http", "", PlanRequest{UserRequest: "map a 100 by 50 m plot"})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if intake.got != "map a 100 by 50 m plot" {
		t.Fatalf("intake received %q", intake.got)
	}
	if result.CoveragePlan.Summary.NumLegs != 2 {
		t.Fatalf("NumLegs = %d, want 2", result.CoveragePlan.Summary.NumLegs)
	}

	failing := NewPlanningService(&fakeIntake{err: errors.New("timeout")}, testDefaults(), nil, quietLogger())
	if _, err := failing.Plan(context.Background(), "http", "", PlanRequest{UserRequest: "x"}); !errors.Is(err, ErrIntakeUnavailable) {
		t.Fatalf("Plan() error = %v, want ErrIntakeUnavailable", err)
	}
	if health := failing.CheckHealth(context.Background()); health.Status != "degraded" {
		t.Fatalf("CheckHealth() status = %q, want degraded", health.Status)
	}
}

func TestMissionServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	store := newFSStore(t)
	svc := NewMissionService(repo, store, NewPlanningService(nil, testDefaults(), nil, quietLogger()), quietLogger())

	created, err := svc.CreateMission(ctx, PlanRequest{Name: "North plot", MissionSpec: smallFieldSpec()})
	if err != nil {
		t.Fatalf("CreateMission() error = %v", err)
	}
	if created.Status != model.MissionStatusPlanned || created.Name != "North plot" {
		t.Fatalf("created = %+v", created)
	}
	if len(created.Legs) != 2 || created.Legs[1].Start.XM != 100 {
		t.Fatalf("legs = %+v, want boustrophedon pair", created.Legs)
	}

	got, err := svc.GetMissionByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetMissionByID() error = %v", err)
	}
	if got.MissionSpec == nil || got.MissionSpec.Regulatory.Authority != "DGCA" {
		t.Fatalf("stored spec = %+v, want regulatory passthrough", got.MissionSpec)
	}
	if got.CoverageSummary.FrontlapPercent != models.DefaultFrontlapPercent {
		t.Fatalf("FrontlapPercent = %v, want default", got.CoverageSummary.FrontlapPercent)
	}

	data, contentType, err := svc.GetArtifact(ctx, created.ID, storage.WaypointsFile)
	if err != nil {
		t.Fatalf("GetArtifact() error = %v", err)
	}
	var waypoints []models.Waypoint
	if err := json.Unmarshal(data, &waypoints); err != nil {
		t.Fatalf("waypoints.json is not valid JSON: %v", err)
	}
	if len(waypoints) != 4 || contentType != "application/json" {
		t.Fatalf("waypoints = %d (%s), want 4 application/json", len(waypoints), contentType)
	}

	brief, _, err := svc.GetArtifact(ctx, created.ID, storage.MissionBriefFile)
	if err != nil || !strings.Contains(string(brief), "# UAV Mission Brief") {
		t.Fatalf("brief = %q, err = %v", brief, err)
	}

	if err := svc.UpdateMissionStatus(ctx, created.ID, model.MissionStatusCompleted); err != nil {
		t.Fatalf("UpdateMissionStatus() error = %v", err)
	}
	if err := svc.UpdateMissionStatus(ctx, created.ID, "lost"); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("UpdateMissionStatus(lost) error = %v, want ErrInvalidRequest", err)
	}

	inArea, err := svc.GetMissionsByArea(ctx, 29, 78, 28, 77)
	if err != nil || len(inArea) != 1 {
		t.Fatalf("GetMissionsByArea() = %d, %v, want 1 mission", len(inArea), err)
	}
	if _, err := svc.GetMissionsByArea(ctx, 28, 77, 29, 78); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("GetMissionsByArea() inverted box error = %v, want ErrInvalidRequest", err)
	}

	list, total, err := svc.ListMissions(ctx, 1, 10)
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("ListMissions() = %d of %d, %v", len(list), total, err)
	}

	if err := svc.DeleteMission(ctx, created.ID); err != nil {
		t.Fatalf("DeleteMission() error = %v", err)
	}
	if _, err := svc.GetMissionByID(ctx, created.ID); !errors.Is(err, repository.ErrMissionNotFound) {
		t.Fatalf("GetMissionByID() after delete error = %v, want ErrMissionNotFound", err)
	}
	if _, err := store.Get(ctx, created.ID, storage.WaypointsFile); !errors.Is(err, storage.ErrArtifactNotFound) {
		t.Fatalf("artifact after delete error = %v, want ErrArtifactNotFound", err)
	}
}

func TestMissionServiceCleansUpOnArtifactFailure(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	store := &failingStore{ArtifactStore: newFSStore(t), failOn: storage.MissionBriefFile}
	svc := NewMissionService(repo, store, NewPlanningService(nil, testDefaults(), nil, quietLogger()), quietLogger())

	if _, err := svc.CreateMission(ctx, PlanRequest{MissionSpec: smallFieldSpec()}); err == nil {
		t.Fatal("CreateMission() error = nil, want artifact failure")
	}
	if len(store.deleted) != 1 {
		t.Fatalf("cleanup calls = %d, want 1", len(store.deleted))
	}
	if _, total, _ := repo.List(ctx, 1, 10); total != 0 {
		t.Fatalf("missions persisted = %d, want 0", total)
	}
}

func TestMissionServiceRejectsInvalidPlan(t *testing.T) {
	repo := repository.NewMemoryRepository()
	svc := NewMissionService(repo, newFSStore(t), NewPlanningService(nil, testDefaults(), nil, quietLogger()), quietLogger())

	spec := smallFieldSpec()
	spec.AltitudeM = ptr(-10)
	_, err := svc.CreateMission(context.Background(), PlanRequest{MissionSpec: spec})

	var invalid *models.InvalidParameterError
	if !errors.As(err, &invalid) || invalid.Field != "altitude_m" {
		t.Fatalf("CreateMission() error = %v, want InvalidParameterError on altitude_m", err)
	}
}
