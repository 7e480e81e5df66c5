package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"coverage-planner-go/internal/config"
	"coverage-planner-go/internal/service"
	"coverage-planner-go/internal/storage"
	"coverage-planner-go/pkg/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type planOptions struct {
	file              string
	cruiseSpeedMps    float64
	maxSegmentTimeMin float64
	originLat         float64
	originLon         float64
	projection        string
	outDir            string
	jsonOutput        bool
}

func newPlanCommand(defaults config.PlannerConfig) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan -f SPEC",
		Short: "Plan a coverage mission from a JSON or YAML specification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, defaults, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "mission specification file (.json, .yaml, .yml)")
	flags.Float64Var(&opts.cruiseSpeedMps, "speed", defaults.CruiseSpeedMps, "cruise speed, m/s")
	flags.Float64Var(&opts.maxSegmentTimeMin, "max-segment-time", defaults.MaxSegmentTimeMin, "flight time per battery, minutes")
	flags.Float64Var(&opts.originLat, "origin-lat", defaults.OriginLat, "origin latitude, degrees")
	flags.Float64Var(&opts.originLon, "origin-lon", defaults.OriginLon, "origin longitude, degrees")
	flags.StringVar(&opts.projection, "projection", defaults.Projection, "longitude scaling: linear or cosine")
	flags.StringVar(&opts.outDir, "out", "", "write waypoints.json, autopilot_config.json and mission_brief.md under DIR/missions/<id>")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print the full result as JSON")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runPlan(cmd *cobra.Command, defaults config.PlannerConfig, opts *planOptions) error {
	spec, err := readSpec(opts.file)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(logrus.WarnLevel)

	planning := service.NewPlanningService(nil, defaults, nil, logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := planning.Plan(ctx, "cli", "", service.PlanRequest{
		MissionSpec:       spec,
		CruiseSpeedMps:    &opts.cruiseSpeedMps,
		MaxSegmentTimeMin: &opts.maxSegmentTimeMin,
		Origin:            &models.Origin{Latitude: opts.originLat, Longitude: opts.originLon},
		Projection:        opts.projection,
	})
	if err != nil {
		return err
	}

	if opts.outDir != "" {
		store, err := storage.NewFSStore(opts.outDir, logger)
		if err != nil {
			return err
		}
		if err := service.SaveArtifacts(ctx, store, result); err != nil {
			return fmt.Errorf("write artifacts: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSummary(out, result, opts.outDir)
	return nil
}

// readSpec читает спецификацию миссии; формат определяется по расширению
func readSpec(path string) (*models.MissionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}

	var spec models.MissionSpec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parse yaml spec: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &spec); err != nil {
			return nil, fmt.Errorf("parse json spec: %w", err)
		}
	}
	return &spec, nil
}

func printSummary(w io.Writer, result *service.PlanResult, outDir string) {
	summary := result.CoveragePlan.Summary
	metadata := result.MissionPackage.Metadata

	headerColor.Fprintf(w, "Mission %s\n", result.MissionID)
	row := func(label, format string, args ...interface{}) {
		labelColor.Fprintf(w, "  %-22s", label+":")
		fmt.Fprintf(w, format+"\n", args...)
	}
	row("Sweep direction", "%s", summary.SweepDirection)
	row("Swath width", "%.3f m", summary.SwathWidthM)
	row("Leg spacing", "%.3f m", summary.LegSpacingM)
	row("Legs", "%d x %.3f m", summary.NumLegs, summary.LegLengthM)
	row("Total path", "%.3f m", summary.TotalPathLengthM)
	row("Flight time", "%.2f min at %.1f m/s", summary.TotalFlightTimeMin, summary.CruiseSpeedMps)
	row("Battery segments", "%d", summary.NumBatterySegments)
	row("Waypoints", "%d (%s, %s)", metadata.TotalWaypoints, metadata.CoordinateSystem, metadata.Projection)

	for _, seg := range result.CoveragePlan.BatterySegments {
		dimColor.Fprintf(w, "    battery %d: legs %d-%d, %.2f min\n",
			seg.SegmentID, seg.FirstLegID, seg.LastLegID, seg.FlightTimeMin)
	}

	if outDir != "" {
		successColor.Fprintf(w, "Artifacts written to %s\n", filepath.Join(outDir, "missions", result.MissionID))
	}
}
