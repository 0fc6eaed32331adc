// Package main provides the CLI entrypoint for stopcast.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/stopcast/internal/catalog"
	"github.com/verte-zerg/stopcast/internal/config"
	"github.com/verte-zerg/stopcast/internal/diag"
	"github.com/verte-zerg/stopcast/internal/history"
	"github.com/verte-zerg/stopcast/internal/model"
	"github.com/verte-zerg/stopcast/internal/stopwatch"
	"github.com/verte-zerg/stopcast/internal/store"
	"github.com/verte-zerg/stopcast/internal/tui"
	"github.com/verte-zerg/stopcast/internal/weather"
)

var (
	apiKey          string
	endpoint        string
	defaultLocation string
	timeout         time.Duration
	tick            time.Duration
	historyEnabled  bool
	verbose         bool

	noColor bool

	historySince string
	historyLast  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stopcast",
		Short:         "TUI stopwatch and weather panel",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiKey, "api-key", "", "weather API key (default: $"+config.APIKeyEnv+")")
	flags.StringVar(&endpoint, "endpoint", weather.DefaultEndpoint, "current weather endpoint")
	flags.StringVar(&defaultLocation, "location", weather.DefaultLocation, "location fetched when the weather panel opens")
	flags.DurationVar(&timeout, "timeout", weather.DefaultTimeout, "weather request timeout")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug diagnostics")
	rootCmd.Flags().DurationVar(&tick, "tick", stopwatch.DefaultTick, "stopwatch tick period")
	rootCmd.Flags().BoolVar(&historyEnabled, "history", false, "archive stopwatch runs on reset")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWeatherCmd())
	rootCmd.AddCommand(newLocationsCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// loadConfig resolves flags over the config file. The API key falls back
// to the environment when neither provides one.
func loadConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "api-key", &apiKey, fileCfg.Weather.APIKey)
	if strings.TrimSpace(apiKey) == "" {
		applyStringConfig(cmd, "api-key", &apiKey, config.APIKeyFromEnv())
	}
	applyStringConfig(cmd, "endpoint", &endpoint, fileCfg.Weather.Endpoint)
	applyStringConfig(cmd, "location", &defaultLocation, fileCfg.Weather.DefaultLocation)
	applyDurationConfig(cmd, "timeout", &timeout, fileCfg.Weather.Timeout)
	applyDurationConfig(cmd, "tick", &tick, fileCfg.Stopwatch.Tick)
	applyBoolConfig(cmd, "history", &historyEnabled, fileCfg.History.Enabled)

	cfg := model.Config{
		APIKey:          strings.TrimSpace(apiKey),
		Endpoint:        strings.TrimSpace(endpoint),
		DefaultLocation: strings.TrimSpace(defaultLocation),
		Timeout:         timeout,
		Tick:            tick,
		Locations:       fileCfg.Locations,
		History:         historyEnabled,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return missingKeyError()
	}

	logPath := config.DefaultLogPath()
	logFile, err := diag.OpenLogFile(logPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close of the diagnostics file.
			_ = cerr
		}
	}()
	logger := diag.NewLogger(logFile, verbose)
	logger.Info("starting", "location", cfg.DefaultLocation, "tick", cfg.Tick, "history", cfg.History)

	var archiver tui.RunArchiver
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Error("failed to close db", "err", cerr)
			}
		}()
		archiver = st
	}

	zones := zone.New()
	defer zones.Close()

	m := tui.NewModel(tui.Options{
		Config:   cfg,
		Catalog:  catalog.New(cfg.Locations),
		Fetcher:  weather.NewClient(cfg.Endpoint, cfg.APIKey, cfg.Timeout),
		Archiver: archiver,
		Logger:   logger,
		Zones:    zones,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	logger.Info("stopped")
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o600); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newWeatherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather [location]",
		Short: "Print current weather for a location",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWeatherCmd,
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors in styled output")
	return cmd
}

func runWeatherCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return missingKeyError()
	}
	logger := diag.NewLogger(cmd.ErrOrStderr(), verbose)

	cat := catalog.New(cfg.Locations)
	location := cfg.DefaultLocation
	if len(args) > 0 {
		location = cat.Resolve(args[0])
	}
	if location == "" {
		return fmt.Errorf("location must not be empty")
	}

	client := weather.NewClient(cfg.Endpoint, cfg.APIKey, cfg.Timeout)
	query := weather.NewQuery("", logger)
	req, _ := query.SelectLocation(location)
	res := weather.Do(cmd.Context(), client, req)
	if res.Err != nil {
		return fmt.Errorf("failed to fetch weather for %q: %w", location, res.Err)
	}
	query.Apply(res)
	return writeSnapshot(cmd.OutOrStdout(), query.Snapshot())
}

func writeSnapshot(w io.Writer, snap model.WeatherSnapshot) error {
	style := outputStyleFor(w, noColor)
	style.apply()
	out := tui.RenderSnapshot(snap, style.width, style.plain)
	if _, err := fmt.Fprintln(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLocationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations",
		Short: "List selectable locations",
		Args:  cobra.NoArgs,
		RunE:  runLocationsCmd,
	}
}

func runLocationsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	for _, name := range catalog.New(fileCfg.Locations).Names() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived stopwatch runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	filter, err := historyFilter(historySince, historyLast)
	if err != nil {
		return err
	}

	path := config.DefaultDBPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logErrln("No runs archived yet. Enable with: stopcast --history")
			return nil
		}
		return fmt.Errorf("failed to stat db: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := history.BuildReport(cmd.Context(), st, filter)
	if err != nil {
		return err
	}
	return history.Render(cmd.OutOrStdout(), report)
}

func historyFilter(since string, last int) (model.HistoryFilter, error) {
	if last < 0 {
		return model.HistoryFilter{}, fmt.Errorf("--last must be >= 0")
	}
	filter := model.HistoryFilter{Last: last}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.HistoryFilter{}, fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	return filter, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil || value.Duration == 0 {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# stopcast configuration
# Uncomment a value to enable it. CLI flags override config values.
# The API key may also be supplied with $%s.

# locations = ["Bengaluru", "Chennai", "Mumbai"]   # Selectable locations

[weather]
# api-key = ""                  # weatherapi.com key
# endpoint = %q
# default-location = %q         # Fetched when the weather panel opens
# timeout = %q                  # Request timeout

[stopwatch]
# tick = %q                     # Tick period

[history]
# enabled = false               # Archive stopwatch runs on reset
`,
		config.APIKeyEnv,
		weather.DefaultEndpoint,
		weather.DefaultLocation,
		weather.DefaultTimeout.String(),
		stopwatch.DefaultTick.String(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("--endpoint must not be empty")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if cfg.Tick < time.Millisecond {
		return fmt.Errorf("--tick must be >= 1ms")
	}
	if cfg.Tick%time.Millisecond != 0 {
		return fmt.Errorf("--tick must be a whole number of milliseconds, got %s", cfg.Tick)
	}
	return nil
}

func missingKeyError() error {
	lines := []string{
		"weather API key is not configured",
		fmt.Sprintf("Set $%s, pass --api-key, or add api-key to the [weather] section", config.APIKeyEnv),
		"Edit config: stopcast config",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
