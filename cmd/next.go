package cmd

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next <pattern>",
	Short: "Find the next occurrence of a reminder matching a pattern",
	Long: `Search the next couple of days of occurrences for the first reminder
whose message matches the given pattern (case-insensitive regular
expression) and print when it happens.`,
	Args: cobra.ExactArgs(1),
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	pattern, err := regexp.Compile("(?i)" + args[0])
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	after, err := targetDate()
	if err != nil {
		return err
	}

	client := newClient()
	ts, found, err := client.FindNext(pattern, after)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("No occurrence matching %q found.\n", args[0])
		return nil
	}

	fmt.Printf("%s %s\n", ts.Format(cfg.DateFormat), ts.Format(cfg.TimeFormat))
	return nil
}
