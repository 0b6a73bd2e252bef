package cmd

import (
	"fmt"
	"time"

	"verdandi/internal/remind"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var busyCmd = &cobra.Command{
	Use:   "busy",
	Short: "Show the busy level of each day of the month",
	Long: `Print the per-day busy metric for one month: either the number of
reminders per day or the total reminder hours per day, depending on the
configured busy_algorithm.`,
	RunE: runBusy,
}

func init() {
	rootCmd.AddCommand(busyCmd)
}

func runBusy(cmd *cobra.Command, args []string) error {
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

	monthStart := remind.MonthStart(date, time.Local)
	levels, err := remind.BusyLevels(monthStart, data.Timed, data.Untimed, cfg.BusyAlgorithm, cfg.UntimedDuration)
	if err != nil {
		return err
	}

	color.New(color.Bold, color.Underline).Printf("%s\n", monthStart.Format("January 2006"))
	days := monthStart.AddDate(0, 1, -1).Day()
	for day := 1; day <= days; day++ {
		fmt.Printf("%s %3d %s\n",
			monthStart.AddDate(0, 0, day-1).Format("Mon Jan 02"),
			levels[day-1],
			busyBar(levels[day-1]))
	}

	return nil
}
