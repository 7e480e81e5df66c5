package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coverage-planner-go/internal/config"
	"coverage-planner-go/internal/service"
	"coverage-planner-go/pkg/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Planner = config.PlannerConfig{
		CruiseSpeedMps:    10,
		MaxSegmentTimeMin: 20,
		OriginLat:         models.DefaultOriginLat,
		OriginLon:         models.DefaultOriginLon,
		Projection:        "linear",
	}
	return cfg
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("1.2.3", testConfig())
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const yamlSpec = `area:
  length_m: 100
  width_m: 50
altitude_m: 50
camera_fov_deg: 60
overlap:
  sidelap_percent: 50
regulatory:
  country: India
`

func TestPlanCommandJSONOutput(t *testing.T) {
	spec := writeFile(t, "field.yaml", yamlSpec)

	out, err := run(t, "plan", "-f", spec, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result service.PlanResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.CoveragePlan.Summary.NumLegs != 2 {
		t.Fatalf("num_legs = %d, want 2", result.CoveragePlan.Summary.NumLegs)
	}
	if result.MissionSpec.Regulatory.Country != "India" {
		t.Fatalf("regulatory country = %q, want India", result.MissionSpec.Regulatory.Country)
	}
}

func TestPlanCommandSummaryAndArtifacts(t *testing.T) {
	spec := writeFile(t, "field.json", `{"area":{"length_m":100,"width_m":50},"altitude_m":50,"camera_fov_deg":60,"overlap":{"sidelap_percent":50}}`)
	outDir := t.TempDir()

	out, err := run(t, "plan", "-f", spec, "--out", outDir, "--speed", "5", "--projection", "cosine")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"along_length", "2 x 100.000 m", "at 5.0 m/s", "cosine", "Artifacts written to"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	missions, err := os.ReadDir(filepath.Join(outDir, "missions"))
	if err != nil || len(missions) != 1 {
		t.Fatalf("mission directories = %v, err = %v", missions, err)
	}
	for _, name := range []string{"waypoints.json", "autopilot_config.json", "mission_brief.md"} {
		if _, err := os.Stat(filepath.Join(outDir, "missions", missions[0].Name(), name)); err != nil {
			t.Fatalf("artifact %s missing: %v", name, err)
		}
	}
}

func TestPlanCommandErrors(t *testing.T) {
	invalid := writeFile(t, "bad.json", `{"area":{"length_m":0,"width_m":50}}`)
	if _, err := run(t, "plan", "-f", invalid); !errors.Is(err, models.ErrInvalidParameter) {
		t.Fatalf("Execute() error = %v, want ErrInvalidParameter", err)
	}

	broken := writeFile(t, "broken.yaml", "area: [")
	if _, err := run(t, "plan", "-f", broken); err == nil {
		t.Fatal("Execute() error = nil, want yaml parse error")
	}

	if _, err := run(t, "plan"); err == nil {
		t.Fatal("Execute() error = nil, want missing --file error")
	}

	valid := writeFile(t, "ok.yaml", yamlSpec)
	if _, err := run(t, "plan", "-f", valid, "--origin-lat", "0"); !errors.Is(err, models.ErrInvalidParameter) {
		t.Fatalf("Execute() with equator origin error = %v, want ErrInvalidParameter", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Fatalf("version = %q, want 1.2.3", out)
	}
}
