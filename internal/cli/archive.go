package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/rbarchive/internal/archive"
	"github.com/dshills/rbarchive/internal/config"
	"github.com/dshills/rbarchive/internal/logger"
	"github.com/dshills/rbarchive/internal/ratelimit"
	"github.com/dshills/rbarchive/internal/reviewboard"
	"github.com/dshills/rbarchive/internal/revrange"
	"github.com/dshills/rbarchive/internal/ui"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// Archive flags
var (
	flagLimit        float64
	flagOutputDir    string
	flagSkipExisting bool
	flagAPIURL       string
	flagSiteURL      string
	flagTimeout      float64
	flagVerbose      bool
)

// sleep backs the request limiter; tests swap it out.
var sleep ratelimit.SleepFunc = ratelimit.Sleep

func addArchiveFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&flagOutputDir, "output-dir", "site", "Output directory for HTML pages and patches")
	cmd.Flags().Float64Var(&flagLimit, "limit", 1.0, "Rate-limit requests to one every LIMIT seconds; fractions like 0.5 are accepted")
	cmd.Flags().BoolVar(&flagSkipExisting, "skip-existing", false, "Only download diffs that are not already on disk")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "Review Board Web API base URL")
	cmd.Flags().StringVar(&flagSiteURL, "site-url", "", "Review Board site base URL used for raw diffs")
	cmd.Flags().Float64Var(&flagTimeout, "timeout", 0, "Per-request timeout in seconds (0 = none)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every request to stderr")
}

// buildOverrides returns config overrides for the flags the user set.
func buildOverrides(cmd *cobra.Command) map[string]string {
	m := make(map[string]string)
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		m["outputDir"] = flagOutputDir
	}
	if flags.Changed("limit") {
		m["limit"] = strconv.FormatFloat(flagLimit, 'f', -1, 64)
	}
	if flags.Changed("skip-existing") {
		m["skipExisting"] = strconv.FormatBool(flagSkipExisting)
	}
	if flags.Changed("api-url") {
		m["apiURL"] = flagAPIURL
	}
	if flags.Changed("site-url") {
		m["siteURL"] = flagSiteURL
	}
	if flags.Changed("timeout") {
		m["timeoutSeconds"] = strconv.FormatFloat(flagTimeout, 'f', -1, 64)
	}
	return m
}

func runArchive(cmd *cobra.Command, args []string) error {
	r, err := revrange.Parse(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load(buildOverrides(cmd))
	if err != nil {
		return err
	}

	if flagVerbose {
		logger.Enable(os.Stderr)
	} else {
		logger.Disable()
	}

	// Usage errors are behind us.
	cmd.SilenceUsage = true

	store, err := archive.NewStore(cfg.OutputDir)
	if err != nil {
		ui.ErrorMsg(err.Error())
		exitCode = ExitRuntimeError
		return nil
	}

	client := reviewboard.NewClient(reviewboard.Options{
		APIURL:    cfg.APIURL,
		SiteURL:   cfg.SiteURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout(),
		Limiter:   ratelimit.NewWithSleep(cfg.Delay(), sleep),
	})

	ui.Printf("Outputting files to directory '%s'\n", store.Root())
	ui.Printf("Rate-limiting to %s seconds between requests\n", formatSeconds(cfg.LimitSeconds()))
	if cfg.SkipExisting {
		ui.Println("Skipping diffs that already exist")
	}
	ui.Println()

	logger.Debug("archiving", "range", r.String(), "revisions", r.Len(), "api", cfg.APIURL, "site", cfg.SiteURL)

	a := archive.New(client, store, archive.Options{
		SkipExisting: cfg.SkipExisting,
		Reporter:     consoleReporter{},
	})
	sum, err := a.Range(cmd.Context(), r)

	ui.Println()
	printSummary(sum)

	if err != nil {
		if errors.Is(err, context.Canceled) {
			ui.ErrorMsg("interrupted")
		} else {
			ui.ErrorMsg(err.Error())
		}
		exitCode = ExitRuntimeError
		return nil
	}

	ui.Println("Done.")
	return nil
}

// formatSeconds prints v with at least one decimal place: 1.0, 0.5, 0.25.
func formatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func printSummary(sum archive.Summary) {
	ui.Printf("%d revisions: %d archived, %d unchanged, %d not found, %d failed\n",
		sum.Revisions, sum.Archived, sum.Unchanged, sum.NotFound, sum.Failed)
	detail := fmt.Sprintf("%d patches written (%s)", sum.Patches, humanize.Bytes(uint64(sum.BytesWritten)))
	if sum.DiffFailures > 0 {
		detail += fmt.Sprintf(", %d diffs failed", sum.DiffFailures)
	}
	ui.Detail(detail)
}
