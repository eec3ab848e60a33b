package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/pkg/config"
	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitpulse/pkg/observability"
	"github.com/Sumatoshi-tech/gitpulse/pkg/render"
	"github.com/Sumatoshi-tech/gitpulse/pkg/repoinfo"
)

// ShowCommand holds the flags of "gitpulse show".
type ShowCommand struct {
	format     string
	configPath string
	timezone   string
	weekStart  string
	noColor    bool
	logJSON    bool

	now func() time.Time
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	return newShowCommandWithClock(time.Now)
}

func newShowCommandWithClock(now func() time.Time) *cobra.Command {
	sc := &ShowCommand{now: now}

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the summary of the repository containing path",
		Long: `Print the repository header and the commit activity calendar of the last
year for the Git repository that contains path (default: current directory).`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	cmd.Flags().StringVar(&sc.format, "format", config.DefaultOutputFormat, "Output format: text, json, yaml, plot")
	cmd.Flags().StringVar(&sc.configPath, "config", "", "Config file (default: .gitpulse.yaml in . or ~/.config/gitpulse)")
	cmd.Flags().StringVar(&sc.timezone, "tz", "", "IANA time zone used to place commits on days (default: calendar.timezone)")
	cmd.Flags().StringVar(&sc.weekStart, "week-start", "", "First weekday of each calendar column (default: calendar.week_start)")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&sc.logJSON, "log-json", false, "Write logs to stderr as JSON")

	return cmd
}

func (sc *ShowCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := sc.loadConfig(cmd)
	if err != nil {
		return err
	}

	providers, err := initObservability(observability.ModeCLI, logLevel(cmd), sc.logJSON, false, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	defer shutdownObservability(providers)

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	repo, err := gitlib.Discover(path)
	if err != nil {
		return err
	}
	defer repo.Free()

	opts, err := collectOptions(cfg)
	if err != nil {
		return err
	}

	opts.Now = sc.now()
	opts.Logger = providers.Logger
	opts.Tracer = providers.Tracer
	opts.Metrics = providers.Metrics

	report, err := repoinfo.Collect(cmd.Context(), repo, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	color := false
	if f, ok := out.(*os.File); ok {
		color = render.ColorEnabled(!cfg.Output.Color, f)
	}

	return render.Render(out, report, render.Options{
		Format:  cfg.Output.Format,
		Color:   color,
		Verbose: flagBool(cmd, "verbose"),
	})
}

// loadConfig reads the config file and environment, then applies flags
// that were set explicitly.
func (sc *ShowCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(sc.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = sc.format
	}

	if flags.Changed("tz") {
		cfg.Calendar.Timezone = sc.timezone
	}

	if flags.Changed("week-start") {
		cfg.Calendar.WeekStart = sc.weekStart
	}

	if sc.noColor {
		cfg.Output.Color = false
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

// collectOptions turns the configuration into collector options.
func collectOptions(cfg *config.Config) (repoinfo.Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return repoinfo.Options{}, err
	}

	first, err := cfg.FirstWeekday()
	if err != nil {
		return repoinfo.Options{}, err
	}

	return repoinfo.Options{
		Location:          loc,
		FirstWeekday:      first,
		ContributorsLimit: cfg.Contributors.Limit,
		TopContributors:   cfg.Contributors.Top,
		TopLanguages:      cfg.Languages.Top,
		ScanExclude:       cfg.Scan.Exclude,
		SizeExclude:       cfg.Size.Exclude,
		Gitignore:         cfg.Languages.Gitignore,
	}, nil
}
