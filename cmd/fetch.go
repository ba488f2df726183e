package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/drivetrainhq/eagleview/internal/config"
	"github.com/drivetrainhq/eagleview/internal/db"
	"github.com/drivetrainhq/eagleview/internal/export"
	"github.com/drivetrainhq/eagleview/internal/fetcher"
	"github.com/drivetrainhq/eagleview/internal/history"
	"github.com/drivetrainhq/eagleview/internal/linear"
	"github.com/drivetrainhq/eagleview/internal/progress"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch issues from Linear and write JSON/CSV snapshots",
	Long: `Runs the snapshot pipeline: fetches issues by label (or from the
configured saved view), merges result sets by identifier, drops issues
carrying the exclusion label, and writes timestamped JSON and CSV files.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Int("max-issues", 0, "cap on fetched issues (overrides config)")
	fetchCmd.Flags().String("output", "", "output directory (overrides config)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("%s is required: set it in the environment or as api_key in %s", config.APIKeyEnvVar, cfgFile)
	}

	if maxIssues, _ := cmd.Flags().GetInt("max-issues"); maxIssues > 0 {
		cfg.MaxIssues = maxIssues
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}

	client := linear.New(cfg.APIKey, cfg.Endpoint)

	// Print the view header when a saved view is configured, as a sanity
	// check that the key and view still resolve.
	if cfg.ViewID != "" {
		view, err := client.CustomView(ctx, cfg.ViewID)
		if err != nil {
			return fmt.Errorf("fetching custom view: %w", err)
		}
		if view == nil {
			return fmt.Errorf("custom view not found: %s", cfg.ViewID)
		}
		fmt.Printf("View: %s\n", view.Name)
		if view.Team != nil {
			fmt.Printf("Team: %s\n", view.Team.Name)
		}
	}

	f := fetcher.New(client, fetcher.Options{
		ViewID:       cfg.ViewID,
		Labels:       cfg.Labels,
		ExcludeLabel: cfg.ExcludeLabel,
		MaxIssues:    cfg.MaxIssues,
		PageSize:     cfg.PageSize,
		Reporter:     progress.NewReporter(),
	})

	started := time.Now().UTC()
	result, err := f.Run(ctx)
	if err != nil {
		return err
	}

	if len(result.Issues) == 0 {
		fmt.Println("No issues found.")
		return nil
	}

	summary := fetcher.Summarize(result.Issues)
	summary.WriteText(os.Stdout)

	now := time.Now()
	jsonFile, err := export.WriteJSON(cfg.OutputDir, result.Issues, now)
	if err != nil {
		return fmt.Errorf("exporting JSON: %w", err)
	}
	csvFile, err := export.WriteCSV(cfg.OutputDir, result.Issues, now)
	if err != nil {
		return fmt.Errorf("exporting CSV: %w", err)
	}
	reportFile, err := export.WriteReport(cfg.OutputDir, summary.Markdown())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write report: %v\n", err)
	}

	recordRun(ctx, cfg, history.Run{
		StartedAt: started,
		Duration:  result.Duration.Milliseconds(),
		Fetched:   result.Fetched,
		Merged:    len(result.Issues),
		Excluded:  result.Excluded,
		JSONFile:  jsonFile,
		CSVFile:   csvFile,
	})

	fmt.Println("\nDone!")
	fmt.Printf("  Issues:   %d (%d fetched, %d duplicates, %d excluded)\n",
		len(result.Issues), result.Fetched, result.Duplicates, result.Excluded)
	fmt.Printf("  JSON:     %s\n", filepath.Join(cfg.OutputDir, jsonFile))
	fmt.Printf("  CSV:      %s\n", filepath.Join(cfg.OutputDir, csvFile))
	if reportFile != "" {
		fmt.Printf("  Report:   %s\n", filepath.Join(cfg.OutputDir, reportFile))
	}
	fmt.Printf("  Duration: %s\n", result.Duration.Round(time.Millisecond))

	return nil
}

// recordRun appends the run to the local history database. History is an
// audit trail, so failures only warn.
func recordRun(ctx context.Context, cfg *config.Config, run history.Run) {
	database, err := db.Open(filepath.Join(cfg.OutputDir, "eagleview.db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return
	}
	defer database.Close()

	if _, err := history.NewStore(database).Record(ctx, run); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
	}
}
