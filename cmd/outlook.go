package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/msgraph"
	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
)

var (
	outlookSyncFrom    string
	outlookSyncTo      string
	outlookSyncDate    string
	outlookSyncToday   bool
	outlookSyncDryRun  bool
	outlookSyncProject string
	outlookSyncTZ      string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as activities",
	Args:  cobra.NoArgs,
	RunE:  runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date, inclusive (YYYY-MM-DD); defaults to today")
	outlookSyncCmd.Flags().StringVar(&outlookSyncDate, "date", "", "Sync a specific date (YYYY-MM-DD)")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncToday, "today", false, "Sync only today (default)")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned operations without writing")
	outlookSyncCmd.Flags().StringVarP(&outlookSyncProject, "project", "p", "", "Project for imported events (default from config)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (default from config)")
	outlookSyncCmd.MarkFlagsMutuallyExclusive("date", "from", "today")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncRange returns the half-open range [from, to) of days to sync.
func syncRange(t time.Time) (time.Time, time.Time, error) {
	loc := t.Location()
	switch {
	case outlookSyncDate != "":
		d, err := parseDateArg("date", outlookSyncDate, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return d, d.AddDate(0, 0, 1), nil

	case outlookSyncFrom != "" || outlookSyncTo != "":
		if outlookSyncFrom == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--from is required when --to is specified")
		}
		from, err := parseDateArg("from", outlookSyncFrom, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to := timecalc.StartOfDay(t)
		if outlookSyncTo != "" {
			if to, err = parseDateArg("to", outlookSyncTo, loc); err != nil {
				return time.Time{}, time.Time{}, err
			}
		}
		if to.Before(from) {
			return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", outlookSyncTo, outlookSyncFrom)
		}
		return from, to.AddDate(0, 0, 1), nil
	}
	from := timecalc.StartOfDay(t)
	return from, from.AddDate(0, 0, 1), nil
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	from, to, err := syncRange(tt.Format.In(now()))
	if err != nil {
		return err
	}

	project := outlookSyncProject
	if project == "" {
		project = cfg.Outlook.DefaultProject
	}
	timezone := outlookSyncTZ
	if timezone == "" {
		timezone = cfg.Outlook.Timezone
	}

	out := cmd.OutOrStdout()
	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing Outlook events (%s → %s)%s...\n\n",
		from.Format(codec.DateLayout), to.AddDate(0, 0, -1).Format(codec.DateLayout), dryTag)

	ctx := cmd.Context()
	store, err := msgraph.DefaultTokenStore()
	if err != nil {
		return err
	}
	oauthCfg := msgraph.OAuth2Config(cfg.Outlook.TenantID, cfg.Outlook.ClientID)
	tok, err := msgraph.Authenticate(ctx, oauthCfg, store, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	client := msgraph.NewClient(ctx, tok, oauthCfg, store)
	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	lines, err := storage.ReadOrEmpty(logFormat, tt.Path)
	if err != nil {
		return err
	}
	lines, result := msgraph.SyncEvents(lines, events, logFormat, msgraph.SyncOptions{
		Project:  project,
		Timezone: timezone,
		DryRun:   outlookSyncDryRun,
		Out:      out,
	})
	if !outlookSyncDryRun && result.Imported+result.Updated > 0 {
		if err := storage.Write(logFormat, tt.Path, lines); err != nil {
			return fmt.Errorf("could not write to file %s: %w", tt.Path, err)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	fmt.Fprintf(out, "  %d updated\n", result.Updated)
	if result.Errors > 0 {
		fmt.Fprintf(out, "  %d errors\n", result.Errors)
		return fmt.Errorf("%d calendar events could not be imported", result.Errors)
	}
	return nil
}
