package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/capitolstream/rollcall/resolver"
)

func statsCmd() *cobra.Command {
	var (
		jsonOut    bool
		unresolved bool
	)

	cmd := &cobra.Command{
		Use:   "stats <log-file>",
		Short: "Summarize an exported resolution log",
		Long: `Stats recomputes resolution statistics from a log previously exported
with resolve --out (JSON format). --unresolved additionally lists the
votes no strategy could match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer f.Close()

			log, err := resolver.ReadLog(f)
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(log.Stats())
			}

			printStats(os.Stdout, log.Stats())

			if unresolved {
				printUnresolved(os.Stdout, log.Unresolved())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print statistics as JSON")
	cmd.Flags().BoolVar(&unresolved, "unresolved", false, "List votes no strategy could match")

	return cmd
}

// printStats writes a human-readable summary of a resolution log.
func printStats(w io.Writer, s resolver.Stats) {
	fmt.Fprintf(w, "Votes:    %d\n", s.Total)
	fmt.Fprintf(w, "Resolved: %d (%.1f%%)\n", s.Resolved, s.ResolutionRate)
	if s.MissingTextURLs > 0 {
		fmt.Fprintf(w, "Resolved without text URLs: %d\n", s.MissingTextURLs)
	}

	if len(s.ByStrategy) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "By strategy:")
	for _, st := range resolver.Strategies() {
		stat, ok := s.ByStrategy[st]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-18s %5d (%.1f%%)\n", st, stat.Count, stat.Rate)
	}
}

// printUnresolved lists unresolved votes with the reason each strategy
// ladder run gave up.
func printUnresolved(w io.Writer, entries []resolver.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No unresolved votes.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Unresolved (%d):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "  %-24s %s\n", e.Result.VoteKey, e.Result.Reason)
	}
}
