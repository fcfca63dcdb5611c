package main

import (
	"log/slog"
	"time"

	"github.com/sdeery14/fitness-app-sub000/internal/fitnessplan"
	"github.com/sdeery14/fitness-app-sub000/internal/schedule"
	"github.com/spf13/cobra"
)

// cli carries the dependencies shared by every subcommand.
type cli struct {
	logger *slog.Logger
	now    func() time.Time
	// horizonDays caps open-ended plans.
	horizonDays int
}

func newRootCmd(logger *slog.Logger, now func() time.Time) *cobra.Command {
	c := &cli{logger: logger, now: now, horizonDays: schedule.DefaultHorizonDays}

	rootCmd := &cobra.Command{
		Use:   "plancli",
		Short: "Validate fitness plans and render their training schedules",
		Long: "plancli reads a fitness plan from a .json or .toml file, expands it into dated training days " +
			"and prints them as text, JSON, calendar events or an iCalendar feed.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().IntVar(&c.horizonDays, "horizon", schedule.DefaultHorizonDays,
		"days to schedule for plans without a target date")

	rootCmd.AddCommand(
		c.newValidateCmd(),
		c.newScheduleCmd(),
		c.newSummaryCmd(),
		c.newEventsCmd(),
		c.newICSCmd(),
		c.newFormatCmd(),
	)
	return rootCmd
}

func (c *cli) today() fitnessplan.Date {
	return fitnessplan.DateOf(c.now())
}

// build loads the plan at path and expands it into its schedule.
func (c *cli) build(cmd *cobra.Command, path string, start *fitnessplan.Date) (fitnessplan.FitnessPlan, schedule.Result, error) {
	plan, err := loadPlan(path)
	if err != nil {
		return fitnessplan.FitnessPlan{}, schedule.Result{}, err
	}
	result, err := schedule.Build(plan, schedule.Options{
		StartDate:   start,
		Today:       c.today(),
		HorizonDays: c.horizonDays,
	})
	if err != nil {
		return fitnessplan.FitnessPlan{}, schedule.Result{}, err
	}
	for _, w := range result.Warnings {
		c.logger.LogAttrs(cmd.Context(), slog.LevelWarn, w.Message, slog.String("code", string(w.Code)))
	}
	return plan, result, nil
}
