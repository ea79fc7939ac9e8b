package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/borgmon/resource-timeline/pkg/calendar"
	"github.com/borgmon/resource-timeline/pkg/config"
	"github.com/borgmon/resource-timeline/pkg/models"
	"github.com/borgmon/resource-timeline/pkg/timegrid"
	"github.com/borgmon/resource-timeline/pkg/week"
)

const dateLayout = "2006-01-02"

// cli holds the flags shared by all commands
type cli struct {
	verbose  bool
	dayWidth int
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "timelinectl",
		Short: "Inspect the timeline grid and convert event datasets",
		Long: `timelinectl answers where a time lands on the timeline grid and which time
a pixel stands for, and moves events between YAML datasets and iCalendar.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zapConfig := zap.NewProductionConfig()
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zapConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().IntVar(&c.dayWidth, "day-width", timegrid.DefaultDayWidth, "pixel width of a day column")

	root.AddCommand(
		c.weekCmd(),
		c.gridCmd(),
		c.locateCmd(),
		c.pixelCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.configCmd(),
	)
	return root
}

func (c *cli) mapper() (*timegrid.Mapper, error) {
	cfg := models.DefaultConfig()
	cfg.DayWidth = c.dayWidth
	cfg.Normalize()
	if cfg.DayWidth != c.dayWidth {
		return nil, fmt.Errorf("day width %d does not split into %d quarter hours", c.dayWidth, timegrid.StepsPerDay)
	}
	return timegrid.NewMapperFromConfig(cfg), nil
}

// parseDate reads YYYY-MM-DD, or today for an empty string
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return week.StartOfDay(time.Now()), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func (c *cli) weekCmd() *cobra.Command {
	var shift int
	cmd := &cobra.Command{
		Use:   "week [YYYY-MM-DD]",
		Short: "Print the day labels of the week starting at a date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(firstArg(args))
			if err != nil {
				return err
			}
			nav := week.NewNavigator(start)
			for i := 0; i < shift; i++ {
				nav.Next()
			}
			for i := 0; i > shift; i-- {
				nav.Prev()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Week of %s\n", nav.Start().Format(dateLayout))
			for i, day := range nav.Days() {
				fmt.Fprintf(out, "%d  %s\n", i, day)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&shift, "shift", 0, "weeks to move forward (negative: back)")
	return cmd
}

func (c *cli) gridCmd() *cobra.Command {
	var day int
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the quarter-hour boundaries of a day column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if day < 0 || day >= week.DaysPerWeek {
				return fmt.Errorf("day %d outside 0..%d", day, week.DaysPerWeek-1)
			}
			m, err := c.mapper()
			if err != nil {
				return err
			}
			grid := m.Build(day)
			out := cmd.OutOrStdout()
			for _, label := range timegrid.HourLabels() {
				bounds, _ := grid.Hour(label)
				strs := make([]string, len(bounds))
				for i, b := range bounds {
					strs[i] = strconv.Itoa(b)
				}
				fmt.Fprintf(out, "%-8s  %s\n", label, strings.Join(strs, " "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "day column 0..6")
	return cmd
}

func (c *cli) locateCmd() *cobra.Command {
	var weekStart string
	cmd := &cobra.Command{
		Use:   "locate START [END]",
		Short: "Place an event given as YYYY-MM-DDTHH:mm on the grid",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := parseDate(weekStart)
			if err != nil {
				return err
			}
			start, err := models.ParseTimestamp(args[0])
			if err != nil {
				return err
			}
			end := start
			if len(args) == 2 {
				if end, err = models.ParseTimestamp(args[1]); err != nil {
					return err
				}
			}
			m, err := c.mapper()
			if err != nil {
				return err
			}

			p := m.Place(start, end, ws)
			inWeek := week.Contains(start, ws)
			c.logger.Debug("placed", zap.Int("day", p.DayOffset), zap.Int("x", p.X), zap.Bool("in_week", inWeek))
			fmt.Fprintf(cmd.OutOrStdout(), "day %d  x %d  width %d  %s - %s  visible %t\n",
				p.DayOffset, p.X, p.Width, p.DisplayStart, p.DisplayEnd, inWeek)
			return nil
		},
	}
	cmd.Flags().StringVar(&weekStart, "week", "", "first day of the week, YYYY-MM-DD (default: today)")
	return cmd
}

func (c *cli) pixelCmd() *cobra.Command {
	var weekStart string
	cmd := &cobra.Command{
		Use:   "pixel X",
		Short: "Print the quarter-hour slot a surface x falls into",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[0], err)
			}
			ws, err := parseDate(weekStart)
			if err != nil {
				return err
			}
			m, err := c.mapper()
			if err != nil {
				return err
			}
			slot := m.PixelToTimeAt(x, ws)
			snapped := m.Snap(m.Coefficient(x), x)
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  snapped x %d\n", slot.Timestamp(), slot.Time12(), snapped)
			return nil
		},
	}
	cmd.Flags().StringVar(&weekStart, "week", "", "first day of the week, YYYY-MM-DD (default: today)")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var eventsPath, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the events of a YAML dataset as iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := config.LoadDataset(eventsPath)
			if err != nil {
				return err
			}
			if len(ds.Events) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", eventsPath, calendar.ErrNothingToExport)
				return nil
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if err := calendar.Export(out, ds.Events, time.Now()); err != nil {
				return err
			}
			c.logger.Info("exported", zap.Int("events", len(ds.Events)), zap.String("out", outPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&eventsPath, "events", "", "YAML dataset to export")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "iCalendar file (default: stdout)")
	_ = cmd.MarkFlagRequired("events")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	var (
		outPath  string
		resource int
		from, to string
	)
	cmd := &cobra.Command{
		Use:   "import FILE|URL",
		Short: "Read iCalendar events into a YAML dataset",
		Long: `Reads VEVENTs from a file or an http(s) URL. Cancelled, all-day and
multi-day events are skipped, recurring events are expanded. With --out the
events are appended to that dataset, which is created if missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := calendar.Options{DefaultResource: resource, Logger: c.logger}
			var err error
			if from != "" {
				if opts.From, err = parseDate(from); err != nil {
					return err
				}
			}
			if to != "" {
				if opts.To, err = parseDate(to); err != nil {
					return err
				}
			}

			events, err := c.readCalendar(cmd, args[0], opts)
			if err != nil {
				return err
			}

			if outPath == "" {
				return writeYAML(cmd.OutOrStdout(), config.Dataset{Events: events})
			}
			ds, err := config.LoadDataset(outPath)
			if errors.Is(err, fs.ErrNotExist) {
				ds, err = &config.Dataset{}, nil
			}
			if err != nil {
				return err
			}
			ds.Events = append(ds.Events, events...)
			if err := config.SaveDataset(outPath, ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d events into %s\n", len(events), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "dataset to append to (default: print YAML)")
	cmd.Flags().IntVar(&resource, "resource", 1, "resource id of events without X-RESOURCE-ID")
	cmd.Flags().StringVar(&from, "from", "", "skip events before YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "skip events from YYYY-MM-DD on")
	return cmd
}

func (c *cli) readCalendar(cmd *cobra.Command, src string, opts calendar.Options) ([]models.CalendarEvent, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return calendar.Fetch(cmd.Context(), src, opts)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return calendar.Import(f, opts)
}

func (c *cli) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage timeline config files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Write a config file with default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			if err := config.Save(path, models.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show PATH",
		Short: "Print a config file with defaults filled in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
