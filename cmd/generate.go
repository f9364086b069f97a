package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var outputFlag string

// Generate runs the pipeline once and exits.
var Generate = &cobra.Command{
	Use:   "generate",
	Short: "Fetch the season schedule and write it as an iCalendar file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		output := cfg.Output
		if cmd.Flags().Changed("output") {
			output = outputFlag
		}

		_, err = newGenerator(cfg, output).Run(cmd.Context(), time.Now().UTC())
		return err
	},
}

func init() {
	Generate.Flags().StringVarP(&outputFlag, "output", "o", "icalendar.ics", "File to write the calendar to")
}
