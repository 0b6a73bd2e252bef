package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List one day's reminders and exit",
	Long:  `List all reminders for a single day (today by default) in a simple text format.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	date, err := targetDate()
	if err != nil {
		return err
	}

	client := newClient()
	data, err := client.FetchMonth(date)
	if err != nil {
		return err
	}
	if data.ErrMsg != "" {
		color.New(color.FgYellow).Printf("remind: %s\n", data.ErrMsg)
	}

	timed := timedOn(data.Timed, date)
	untimed := untimedOn(data.Untimed, date)

	fmt.Printf("Reminders for %s:\n", date.Format(cfg.DateFormat))
	if len(timed) == 0 && len(untimed) == 0 {
		fmt.Println("No reminders found.")
		return nil
	}
	printDay(timed, untimed)

	return nil
}
