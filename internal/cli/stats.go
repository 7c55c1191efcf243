package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/rbarchive/internal/archive"
	"github.com/dshills/rbarchive/internal/config"
	"github.com/dshills/rbarchive/internal/ui"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagStatsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the output directory holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides(cmd))
		if err != nil {
			return err
		}

		stats, err := archive.OpenStore(cfg.OutputDir).GetStats()
		if err != nil {
			return fmt.Errorf("reading archive stats: %w", err)
		}

		if flagStatsJSON {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			ui.Println(string(data))
			return nil
		}

		ui.Printf("Directory: %s\n", stats.Dir)
		ui.Printf("Revisions: %d (%d indexed)\n", stats.Revisions, stats.Indexes)
		ui.Printf("Patches:   %d\n", stats.Patches)
		ui.Printf("Size:      %s\n", humanize.Bytes(uint64(stats.TotalBytes)))
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsJSON, "json", false, "Print statistics as JSON")
}
