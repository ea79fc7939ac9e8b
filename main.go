package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	eventsPath string
	icsURL     string
	weekFlag   string
	debug      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resource-timeline",
	Short: "Week timeline of resource bookings with drag-to-create, move and resize",
	Long: `resource-timeline shows one row per resource over a week of quarter-hour
slots. Drag on an empty row to create an event, drag an event to move it,
drag its edges to resize it and press Delete to remove it.

Events come from a YAML dataset (--events) and optionally an iCalendar feed
(--ics). Without a dataset a small demo is shown.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ta, err := NewTimelineApp(AppOptions{
			ConfigPath: configPath,
			EventsPath: eventsPath,
			ICSURL:     icsURL,
			Week:       weekFlag,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		ta.Run()
		return nil
	},
}

func main() {
	flags := rootCmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML config file, created with defaults if missing (default: app preferences)")
	flags.StringVar(&eventsPath, "events", "", "YAML dataset of resources and events")
	flags.StringVar(&icsURL, "ics", "", "iCalendar feed merged into the timeline")
	flags.StringVar(&weekFlag, "week", "", "first day of the shown week, YYYY-MM-DD (default: today)")
	flags.BoolVarP(&debug, "debug", "d", false, "debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
