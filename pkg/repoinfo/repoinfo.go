// Package repoinfo collects everything gitpulse reports about a repository.
package repoinfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
	"github.com/Sumatoshi-tech/gitpulse/pkg/contributors"
	"github.com/Sumatoshi-tech/gitpulse/pkg/disksize"
	"github.com/Sumatoshi-tech/gitpulse/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitpulse/pkg/langstats"
	"github.com/Sumatoshi-tech/gitpulse/pkg/observability"
)

// Collector names, used for spans, metrics, and warnings.
const (
	CollectorCommits      = "commits"
	CollectorSize         = "size"
	CollectorContributors = "contributors"
	CollectorLanguages    = "languages"
	CollectorCalendar     = "calendar"
)

// Options configures Collect. Zero values fall back to the package defaults.
type Options struct {
	Now          time.Time
	Location     *time.Location
	FirstWeekday time.Weekday

	// ContributorsLimit caps the commits ranked; 0 ranks the whole history.
	ContributorsLimit int
	TopContributors   int
	TopLanguages      int

	ScanExclude []string
	SizeExclude []string
	Gitignore   bool

	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.REDMetrics
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		FirstWeekday:      time.Sunday,
		ContributorsLimit: contributors.DefaultScanLimit,
		TopContributors:   3,
		TopLanguages:      langstats.DefaultTop,
	}
}

// Report is the collected summary.
type Report struct {
	Name      string               `json:"name"               yaml:"name"`
	Path      string               `json:"path"               yaml:"path"`
	Branch    string               `json:"branch"             yaml:"branch"`
	Commits   int                  `json:"commits"            yaml:"commits"`
	Size      uint64               `json:"size_bytes"         yaml:"size_bytes"`
	Authors   contributors.Ranking `json:"authors"            yaml:"authors"`
	Languages []langstats.Language `json:"languages"          yaml:"languages"`
	Activity  *CalendarView        `json:"activity,omitempty" yaml:"activity,omitempty"`
	Warnings  []string             `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Calendar  *activity.Calendar   `json:"-"                  yaml:"-"`
	LangStats *langstats.Stats     `json:"-"                  yaml:"-"`
}

// Collect gathers the report for repo. A failing collector is logged and
// recorded in Report.Warnings with its section left empty; only a canceled
// context fails the whole collection.
func Collect(ctx context.Context, repo *gitlib.Repository, opts Options) (*Report, error) {
	c := newCollector(opts)

	ctx, span := c.tracer.Start(ctx, "repoinfo.Collect",
		trace.WithAttributes(attribute.String("repo.path", repo.Path())))
	defer span.End()

	report := &Report{
		Name:   repo.Name(),
		Branch: repo.Branch(),
	}

	if workdir := repo.Workdir(); workdir != "" {
		report.Path = filepath.Clean(workdir)
	}

	c.run(ctx, report, CollectorCommits, func(ctx context.Context) error {
		count, err := repo.CountCommits(ctx)
		if errors.Is(err, gitlib.ErrEmptyHistory) {
			return nil
		}

		report.Commits = count

		return err
	})

	c.run(ctx, report, CollectorSize, func(ctx context.Context) error {
		if report.Path == "" {
			return nil
		}

		size, err := disksize.Measure(ctx, report.Path, opts.SizeExclude)
		report.Size = size

		return err
	})

	c.run(ctx, report, CollectorContributors, func(ctx context.Context) error {
		src, closeSrc, err := history(repo)
		if err != nil {
			return err
		}
		defer closeSrc()

		ranking, err := contributors.Rank(ctx, src, opts.ContributorsLimit)
		report.Authors = ranking.Top(c.opts.TopContributors)

		return err
	})

	c.run(ctx, report, CollectorLanguages, func(ctx context.Context) error {
		if report.Path == "" {
			return nil
		}

		stats, err := langstats.Scan(ctx, report.Path, langstats.Options{
			Exclude:   opts.ScanExclude,
			Gitignore: opts.Gitignore,
		})
		if err != nil {
			return err
		}

		report.LangStats = stats
		report.Languages = stats.Top(c.opts.TopLanguages)

		return nil
	})

	c.run(ctx, report, CollectorCalendar, func(ctx context.Context) error {
		src, closeSrc, err := history(repo)
		if err != nil {
			return err
		}
		defer closeSrc()

		cal := activity.Build(ctx, src, activity.Options{
			Now:          opts.Now,
			Location:     opts.Location,
			FirstWeekday: opts.FirstWeekday,
		})

		report.Calendar = cal
		report.Activity = NewCalendarView(cal)

		trace.SpanFromContext(ctx).SetAttributes(
			attribute.Int("calendar.commits", cal.Summary.TotalCommits),
			attribute.Int("calendar.active_days", cal.Summary.ActiveDays),
			attribute.Int("calendar.skipped", cal.Stats.Skipped),
		)

		if cal.Stats.SourceErr != nil {
			return fmt.Errorf("partial history: %w", cal.Stats.SourceErr)
		}

		return nil
	})

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())

		return report, fmt.Errorf("collect %s: %w", report.Name, err)
	}

	return report, nil
}

// history returns HEAD's history newest first. An unborn HEAD is an empty source.
func history(repo *gitlib.Repository) (activity.Source, func(), error) {
	iter, err := repo.Log(&gitlib.LogOptions{SortByTime: true})
	if errors.Is(err, gitlib.ErrEmptyHistory) {
		return activity.EmptySource(), func() {}, nil
	}

	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}

	return iter.Records(), iter.Close, nil
}

type collector struct {
	opts    Options
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.REDMetrics
}

func newCollector(opts Options) *collector {
	defaults := DefaultOptions()

	if opts.TopContributors <= 0 {
		opts.TopContributors = defaults.TopContributors
	}

	if opts.TopLanguages <= 0 {
		opts.TopLanguages = defaults.TopLanguages
	}

	c := &collector{opts: opts, logger: opts.Logger, tracer: opts.Tracer, metrics: opts.Metrics}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.tracer == nil {
		c.tracer = otel.Tracer("gitpulse")
	}

	return c
}

func (c *collector) run(ctx context.Context, report *Report, name string, fn func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}

	ctx, span := c.tracer.Start(ctx, "repoinfo."+name,
		trace.WithAttributes(attribute.String("collector.name", name)))
	defer span.End()

	done := c.metrics.Track(ctx, "collect."+name)
	start := time.Now()

	err := fn(ctx)
	done(err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		c.logger.WarnContext(ctx, "collector failed", "collector", name, "error", err)
		report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %v", name, err))

		return
	}

	c.logger.DebugContext(ctx, "collector done", "collector", name, "duration", time.Since(start))
}
