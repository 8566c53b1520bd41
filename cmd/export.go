package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/model"
	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
)

var (
	exportFilter filterFlags
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export activities to stdout",
	Long: `Export activities to stdout. Without a date selection the current
week is exported.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportFilter.register(exportCmd, false)
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	t := tt.Format.In(now())
	filter, err := exportFilter.build(t)
	if err != nil {
		return err
	}
	if filter.Date.IsZero() && filter.From.IsZero() && filter.To.IsZero() {
		filter.From, filter.To = timecalc.WeekRange(t)
	}

	activities, err := tt.List(filter, exportFilter.round)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch exportFormat {
	case "json":
		data, err := json.MarshalIndent(activities, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "md":
		printMarkdown(out, logFormat, activities, t)
	case "csv":
		printCSV(out, logFormat, activities, t)
	default:
		return fmt.Errorf("unknown export format %q (want csv, json or md)", exportFormat)
	}
	return nil
}

func printCSV(w io.Writer, f codec.Format, activities []model.Activity, now time.Time) {
	fmt.Fprintln(w, "date,project,description,start,end,duration_minutes")
	for _, a := range activities {
		endStr := ""
		if a.End != nil {
			endStr = f.FormatTime(*a.End)
		}
		fmt.Fprintf(w, "%s,%s,%s,%s,%s,%d\n",
			csvEscape(a.Start.Format(codec.DateLayout)),
			csvEscape(a.Project),
			csvEscape(a.Description),
			csvEscape(f.FormatTime(a.Start)),
			csvEscape(endStr),
			int64(a.Duration(now)/time.Minute),
		)
	}
}

func printMarkdown(w io.Writer, f codec.Format, activities []model.Activity, now time.Time) {
	fmt.Fprintln(w, "| Date | Start | End | Project | Description | Duration |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|")
	for _, a := range activities {
		endStr := ""
		if a.End != nil {
			endStr = clock(f, *a.End)
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			a.Start.Format(codec.DateLayout),
			clock(f, a.Start),
			endStr,
			mdEscape(a.Project),
			mdEscape(a.Description),
			timecalc.FormatDuration(a.Duration(now)),
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// mdEscape keeps a value inside its table cell.
func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
