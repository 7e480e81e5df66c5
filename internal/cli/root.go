// Package cli реализует офлайн-утилиту covplan: планирование миссии
// из файла спецификации без сервера и базы данных.
package cli

import (
	"fmt"

	"coverage-planner-go/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// NewRootCommand собирает дерево команд covplan
func NewRootCommand(version string, cfg *config.Config) *cobra.Command {
	if version == "" {
		version = "dev"
	}
	if cfg == nil {
		cfg = config.LoadConfig()
	}

	root := &cobra.Command{
		Use:     "covplan",
		Version: version,
		Short:   "Plan lawnmower coverage missions for survey drones",
		Long: `covplan turns a mission specification (JSON or YAML) into a coverage plan,
geodetic waypoints, an autopilot configuration block and a markdown brief.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(newPlanCommand(cfg.Planner))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the covplan version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), root.Version)
		},
	})

	return root
}

// Execute запускает covplan с аргументами командной строки
func Execute(version string) error {
	return NewRootCommand(version, nil).Execute()
}
