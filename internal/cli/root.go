package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/admin/astro-core/internal/pkg/logger"
	astroUsecase "github.com/admin/astro-core/internal/usecases/astro"
	"github.com/spf13/cobra"
)

type options struct {
	houseSystem string
	logLevel    string
	compact     bool
}

// NewRootCmd astroctl: расчёты движка без БД и брокеров
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "astroctl",
		Short:         "Astrological computations from the command line",
		Long:          "astroctl runs the chart, positions and lunar calculations locally and prints JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.houseSystem, "house-system", "whole_sign", "house system: whole_sign or equal")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	root.PersistentFlags().BoolVar(&opts.compact, "compact", false, "print JSON on a single line")

	root.AddCommand(
		newPositionsCmd(opts),
		newChartCmd(opts),
		newLunarCmd(opts),
		newNextPhaseCmd(opts),
	)

	return root
}

// Execute точка входа бинарника
func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *options) service() (*astroUsecase.Service, error) {
	log, err := logger.NewWithWriter("astroctl", &logger.Config{Encoding: "console", Level: o.logLevel}, os.Stderr)
	if err != nil {
		return nil, err
	}

	return astroUsecase.New(nil, nil, nil, nil, nil, nil, &astroUsecase.Config{HouseSystem: o.houseSystem}, log)
}

func (o *options) print(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if !o.compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

