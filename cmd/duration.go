package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/cv2profile/internal/duration"
	"github.com/spigell/cv2profile/internal/report"
)

var durationCmd = &cobra.Command{
	Use:   "duration <start:end>...",
	Short: "Compute per-range and merged durations for DD-MM-YYYY ranges",
	Long: `Compute per-range and merged durations for DD-MM-YYYY ranges.
An empty end means the range is ongoing, for example 01-03-2021: runs until today.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		now, err := referenceTime(cmd.Flag("today").Value.String())
		if err != nil {
			log.Fatalf("parsing --today: %v", err)
		}

		if err := printDurations(os.Stdout, args, duration.Today(now)); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(durationCmd)

	durationCmd.Flags().String("today", "", "reference date for ongoing ranges, DD-MM-YYYY (default is the current date)")
}

func printDurations(out io.Writer, args []string, today duration.Date) error {
	ranges := make([]duration.Range, 0, len(args))
	for _, arg := range args {
		start, end, ok := strings.Cut(arg, ":")
		if !ok {
			return fmt.Errorf("range %q: expected start:end", arg)
		}

		r, err := duration.ParseRange(strings.TrimSpace(start), strings.TrimSpace(end))
		if err != nil {
			return fmt.Errorf("range %q: %w", arg, err)
		}
		ranges = append(ranges, r)

		fmt.Fprintf(out, "%s\t%s\n", arg, report.FormatTotal(duration.Between(r.Start, r.End, today)))
	}

	fmt.Fprintf(out, "total\t%s\n", report.FormatTotal(duration.Aggregate(ranges, today)))
	return nil
}
