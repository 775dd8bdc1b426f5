package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tradecal/chinacal"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check DATE...",
		Short: "Classify one or more dates (YYYY-MM-DD) from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := loadTable(cfg)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			cal := chinacal.New(table)

			dates := make([]time.Time, 0, len(args))
			for _, arg := range args {
				d, err := time.Parse(chinacal.DateLayout, arg)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", arg)
				}
				dates = append(dates, d)
			}

			flags, err := cal.Flags(dates)
			if err != nil {
				return err
			}
			for _, f := range flags {
				name := "-"
				if f.HolidayName != "" {
					name = f.HolidayName.Name()
				}
				fmt.Printf("%s  %-9s  workday=%-5v holiday=%-5v in_lieu=%-5v interbank=%-5v a_share=%-5v  %s\n",
					f.Date.Format(chinacal.DateLayout),
					f.Date.Weekday(),
					f.Workday, f.Holiday, f.InLieu,
					f.InterbankTrading, f.AShareTrading,
					name)
			}
			return nil
		},
	}
	return cmd
}
