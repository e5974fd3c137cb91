package cli

import (
	"errors"

	"github.com/admin/astro-core/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPositionsCmd(opts *options) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "positions",
		Short: "Planetary positions for a date (default now)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			positions, err := svc.GetCurrentPlanetaryPositions(cmd.Context(), date)
			if err != nil {
				return err
			}
			return opts.print(cmd, positions)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD or RFC3339")
	return cmd
}

type chartFlags struct {
	userID    string
	date      string
	time      string
	timezone  string
	accuracy  string
	city      string
	country   string
	latitude  float64
	longitude float64
}

func newChartCmd(opts *options) *cobra.Command {
	f := &chartFlags{}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Calculate a natal chart without saving it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := f.input(cmd)
			if err != nil {
				return err
			}

			svc, err := opts.service()
			if err != nil {
				return err
			}
			chart, _, err := svc.CalculateChart(in)
			if err != nil {
				return err
			}
			return opts.print(cmd, chart)
		},
	}

	cmd.Flags().StringVar(&f.userID, "user", "", "user id (random when empty)")
	cmd.Flags().StringVar(&f.date, "date", "", "birth date YYYY-MM-DD")
	cmd.Flags().StringVar(&f.time, "time", "", "birth time HH:MM, empty when unknown")
	cmd.Flags().StringVar(&f.timezone, "tz", "UTC", "IANA timezone of the birth place")
	cmd.Flags().StringVar(&f.accuracy, "accuracy", "", "exact, approximate or unknown")
	cmd.Flags().StringVar(&f.city, "city", "", "birth city")
	cmd.Flags().StringVar(&f.country, "country", "", "birth country")
	cmd.Flags().Float64Var(&f.latitude, "lat", 0, "latitude, -90..90")
	cmd.Flags().Float64Var(&f.longitude, "lon", 0, "longitude, -180..180")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func (f *chartFlags) input(cmd *cobra.Command) (domain.CreateChartInput, error) {
	userID := uuid.New()
	if f.userID != "" {
		parsed, err := uuid.Parse(f.userID)
		if err != nil {
			return domain.CreateChartInput{}, domain.ErrInvalidUserID
		}
		userID = parsed
	}

	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
		return domain.CreateChartInput{}, errors.New("--lat and --lon are required")
	}

	in := domain.CreateChartInput{
		UserID:            userID,
		BirthDate:         f.date,
		BirthTimezone:     &f.timezone,
		BirthTimeAccuracy: domain.BirthTimeAccuracy(f.accuracy),
		BirthCity:         f.city,
		BirthCountry:      f.country,
		Latitude:          &f.latitude,
		Longitude:         &f.longitude,
	}
	if f.time != "" {
		in.BirthTime = &f.time
	}
	if in.BirthTimeAccuracy == "" {
		in.BirthTimeAccuracy = domain.AccuracyExact
		if in.BirthTime == nil {
			in.BirthTimeAccuracy = domain.AccuracyUnknown
		}
	}
	return in, nil
}

func newLunarCmd(opts *options) *cobra.Command {
	var (
		date string
		days int
	)

	cmd := &cobra.Command{
		Use:   "lunar",
		Short: "Moon phase for a date, or a calendar with --days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("days") {
				calendar, err := svc.GetLunarCalendar(cmd.Context(), date, days)
				if err != nil {
					return err
				}
				return opts.print(cmd, calendar)
			}

			data, err := svc.GetLunarData(cmd.Context(), date)
			if err != nil {
				return err
			}
			return opts.print(cmd, data)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date or calendar start, YYYY-MM-DD")
	cmd.Flags().IntVar(&days, "days", 30, "calendar length, 1..365")
	return cmd
}

func newNextPhaseCmd(opts *options) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:     "next-phase <phase>",
		Short:   "Next date of a moon phase, e.g. full_moon",
		Args:    cobra.ExactArgs(1),
		Example: "  astroctl next-phase full_moon --from 2024-01-01",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}
			next, err := svc.FindNextPhase(cmd.Context(), args[0], from)
			if err != nil {
				return err
			}
			return opts.print(cmd, next)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "search start, YYYY-MM-DD (default now)")
	return cmd
}
