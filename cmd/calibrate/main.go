package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/deanturpin/lft/internal/calibrate"
	"github.com/deanturpin/lft/internal/datasource"
	"github.com/deanturpin/lft/internal/logger"
	"github.com/deanturpin/lft/internal/summary"
)

// calibrateAction replays each strategy in isolation over the lookback
// window and writes the enabled-strategy artifact.
func calibrateAction(ctx context.Context, cmd *cli.Command) error {
	dataPath := cmd.String("data")
	configPath := cmd.String("config")
	outputPath := cmd.String("output")
	lookbackDays := cmd.Int("lookback")

	appLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	cfg := calibrate.DefaultConfig()

	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	source, err := datasource.NewDuckDBDataSource(appLogger)
	if err != nil {
		return fmt.Errorf("failed to open data source: %w", err)
	}
	defer source.Close()

	if err := source.Initialize(dataPath); err != nil {
		return fmt.Errorf("failed to initialize data source: %w", err)
	}

	start := time.Now().AddDate(0, 0, -int(lookbackDays))

	bars, err := source.ReadBars(optional.Some(start), optional.None[time.Time]())
	if err != nil {
		return fmt.Errorf("failed to read bars: %w", err)
	}

	result, err := calibrate.Run(bars, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("calibration failed: %w", err)
	}

	fmt.Print(summary.RenderCalibration(result))

	if outputPath != "" {
		artifact := calibrate.NewArtifact(result, time.Now())
		if err := artifact.Save(outputPath); err != nil {
			return fmt.Errorf("failed to save artifact: %w", err)
		}

		fmt.Printf("\nCalibration artifact written to %s\n", outputPath)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "calibrate",
		Usage: "Decide which strategies are enabled for the session",
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
				Usage:   "Calibration config YAML (defaults used if omitted)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path to write the calibration artifact YAML",
			},
			&cli.IntFlag{
				Name:    "lookback",
				Aliases: []string{"l"},
				Usage:   "Days of history to calibrate on",
				Value:   calibrate.DefaultLookbackDays,
			},
		},
		Action: calibrateAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
