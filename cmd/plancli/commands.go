package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sdeery14/fitness-app-sub000/internal/calendar"
	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
	"github.com/spf13/cobra"
)

func (c *cli) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Check that a plan file is well formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d periods, %d exercises)\n",
				plan.Name, len(plan.TrainingPlan.TrainingPeriods), plan.ExerciseCount())
			return err
		},
	}
}

func (c *cli) newScheduleCmd() *cobra.Command {
	var (
		start  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "schedule <plan-file>",
		Short: "Print every scheduled training day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var startDate *fitnessplan.Date
			if start != "" {
				d, err := fitnessplan.ParseDate(start)
				if err != nil {
					return fmt.Errorf("parse --start: %w", err)
				}
				startDate = &d
			}
			_, result, err := c.build(cmd, args[0], startDate)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeScheduleTable(cmd.OutOrStdout(), result.Days)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start date in YYYY-MM-DD format, overrides the plan's start date")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the schedule as JSON")
	return cmd
}

func writeScheduleTable(w io.Writer, days []schedule.ScheduledTrainingDay) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // padding
	_, _ = fmt.Fprintln(tw, "DATE\tDAY\tPERIOD\tSPLIT\tWEEK\tTRAINING\tINTENSITY")
	for _, day := range days {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d.%d\t%s\t%s\n",
			day.Date, day.Date.Weekday().String()[:3], day.PeriodName, day.SplitName,
			day.WeekNumber, day.DayInWeek, day.TrainingDay.Name, day.TrainingDay.Intensity.Label())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write schedule: %w", err)
	}
	return nil
}

func (c *cli) newSummaryCmd() *cobra.Command {
	var (
		days  int
		today string
	)
	cmd := &cobra.Command{
		Use:   "summary <plan-file>",
		Short: "Summarise the upcoming training days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			from := c.today()
			if today != "" {
				d, err := fitnessplan.ParseDate(today)
				if err != nil {
					return fmt.Errorf("parse --today: %w", err)
				}
				from = d
			}
			_, result, err := c.build(cmd, args[0], nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), schedule.FormatSummary(result.Days, schedule.SummaryOptions{
				Today:      from,
				DaysToShow: days,
			}))
			return err
		},
	}
	cmd.Flags().IntVar(&days, "days", schedule.DefaultDaysToShow, "number of upcoming days to include")
	cmd.Flags().StringVar(&today, "today", "", "summarise from this date instead of today")
	return cmd
}

func (c *cli) newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <plan-file>",
		Short: "Print the schedule as calendar events in JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := c.build(cmd, args[0], nil)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), schedule.ToCalendarEvents(result.Days))
		},
	}
}

func (c *cli) newICSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ics <plan-file>",
		Short: "Export the schedule as an iCalendar feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, result, err := c.build(cmd, args[0], nil)
			if err != nil {
				return err
			}
			if err = calendar.WriteICS(cmd.OutOrStdout(), plan.Name, schedule.ToCalendarEvents(result.Days), c.now()); err != nil {
				return fmt.Errorf("write ics: %w", err)
			}
			return nil
		},
	}
}

func (c *cli) newFormatCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "format <plan-file>",
		Short: "Render the plan as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := loadPlan(args[0])
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), fitnessplan.Format(plan, fitnessplan.ParseStyle(style)))
			return err
		},
	}
	cmd.Flags().StringVar(&style, "style", string(fitnessplan.StyleDefault), "minimal, default or detailed")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
