package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/match-engine/internal/platform/id"
	"github.com/riskibarqy/match-engine/internal/platform/logging"
	"github.com/riskibarqy/match-engine/internal/simulation"
	"github.com/riskibarqy/match-engine/internal/usecase"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	workers  int
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "simulate",
		Short:         "Run match simulations locally from a fixture file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVar(&opts.workers, "workers", 4, "Parallel workers for forecasts")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "Log level written to stderr")

	root.AddCommand(newMatchCommand(opts), newForecastCommand(opts))
	return root
}

func newMatchCommand(opts *rootOptions) *cobra.Command {
	var (
		file   string
		seed   int64
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Simulate one match and print the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := readInput(file)
			if err != nil {
				return err
			}
			service, err := newService(cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}

			req := usecase.SimulateMatchInput{Input: input}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			record, err := service.SimulateMatch(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), record)
			}
			return writeSummary(cmd.OutOrStdout(), record)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a JSON fixture with home and away teams")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed that reproduces a simulation")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newForecastCommand(opts *rootOptions) *cobra.Command {
	var (
		file       string
		seed       int64
		iterations int
	)
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Estimate outcome probabilities over repeated simulations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := readInput(file)
			if err != nil {
				return err
			}
			service, err := newService(cmd.ErrOrStderr(), opts)
			if err != nil {
				return err
			}

			req := usecase.ForecastInput{Input: input, Iterations: iterations}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			forecast, err := service.Forecast(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), forecast)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a JSON fixture with home and away teams")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the first iteration")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 1000, "Number of simulations")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newService(stderr io.Writer, opts *rootOptions) (*usecase.SimulationService, error) {
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(logging.Options{Level: level, Output: stderr})

	engine, err := simulation.NewEngine(simulation.DefaultCalibration(), nil, logger)
	if err != nil {
		return nil, err
	}
	return usecase.NewSimulationService(
		engine,
		memory.NewMatchRepository(),
		nil,
		idgen.NewRandomGenerator("match"),
		nil,
		logger,
		usecase.SimulationServiceConfig{WorkerCount: opts.workers, ForecastMaxIterations: 100000},
	), nil
}

func readInput(path string) (match.Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return match.Input{}, fmt.Errorf("read fixture: %w", err)
	}
	var input match.Input
	if err := sonic.Unmarshal(raw, &input); err != nil {
		return match.Input{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return input, nil
}

func writeJSON(w io.Writer, v any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}

func writeSummary(w io.Writer, record match.Record) error {
	r := record.Result
	if _, err := fmt.Fprintf(w, "%s %d - %d %s (HT %d-%d, xG %.2f-%.2f, seed %d)\n",
		r.HomeTeamName, r.HomeScore, r.AwayScore, r.AwayTeamName,
		r.HalfTime.Home, r.HalfTime.Away, r.HomeXG, r.AwayXG, record.Seed); err != nil {
		return err
	}
	if r.Shootout != nil {
		if _, err := fmt.Fprintf(w, "penalties %d - %d\n", r.Shootout.HomeScore, r.Shootout.AwayScore); err != nil {
			return err
		}
	}
	for _, line := range r.Narrative {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
