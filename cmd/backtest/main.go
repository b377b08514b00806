package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/deanturpin/lft/internal/calibrate"
	"github.com/deanturpin/lft/internal/datasource"
	"github.com/deanturpin/lft/internal/logger"
	"github.com/deanturpin/lft/internal/simulator"
	"github.com/deanturpin/lft/internal/summary"
)

// backtestAction loads bars, optionally applies a calibration artifact, and
// replays the full strategy set.
func backtestAction(ctx context.Context, cmd *cli.Command) error {
	dataPath := cmd.String("data")
	configPath := cmd.String("config")
	artifactPath := cmd.String("calibration")

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	cfg := simulator.DefaultConfig()

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var enabled map[string]bool

	if artifactPath != "" {
		artifact, err := calibrate.LoadArtifact(artifactPath)
		if err != nil {
			return fmt.Errorf("failed to load calibration artifact: %w", err)
		}

		enabled = artifact.EnabledSet()
	}

	source, err := datasource.NewDuckDBDataSource(appLogger)
	if err != nil {
		return fmt.Errorf("failed to open data source: %w", err)
	}
	defer source.Close()

	if err := source.Initialize(dataPath); err != nil {
		return fmt.Errorf("failed to initialize data source: %w", err)
	}

	bars, err := source.ReadBars(optional.None[time.Time](), optional.None[time.Time]())
	if err != nil {
		return fmt.Errorf("failed to read bars: %w", err)
	}

	sim, err := simulator.New(cfg, enabled, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create simulator: %w", err)
	}

	var bar *progressbar.ProgressBar

	sim.SetProgress(func(done, total int) {
		if bar == nil {
			bar = progressbar.Default(int64(total))
			bar.Describe("Replaying bars")
		}

		_ = bar.Set(done)
	})

	result, err := sim.Run(bars)
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	fmt.Println()
	fmt.Print(summary.Render(result))

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Replay historical bars through the strategy engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "CSV file or glob of bar data (symbol,time,open,high,low,close,volume)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Simulator config YAML (defaults used if omitted)",
			},
			&cli.StringFlag{
				Name:    "calibration",
				Aliases: []string{"k"},
				Usage:   "Calibration artifact restricting the enabled strategies",
			},
		},
		Action: backtestAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
