package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wildstyl3r/dustheat/internal/config"
	"github.com/wildstyl3r/dustheat/internal/model"
	"github.com/wildstyl3r/dustheat/internal/utils"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "dustheat",
	Short: "Dust grain heating by hydrogen and electron collisions",
	Long: `dustheat sweeps gas temperature and tabulates the heating coefficient
(H_coll + H_el) / n_H of a dust grain of fixed radius in gas of fixed density.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("dustheat v%s\n", version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the temperature sweep for every configured model",
	Long: `run reads a TOML configuration with global parameters and optional
[Models.<name>] tables (or a GrainList file of radius/density pairs) and writes
one set of tables per model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModels(input, threads, verbose, dataFlags)
	},
}

var (
	input     string
	threads   int
	verbose   bool
	dataFlags model.DataFlags
)

func init() {
	runCmd.Flags().StringVarP(&input, "input", "i", "dust", "model configuration in toml format")
	runCmd.Flags().IntVarP(&threads, "threads", "t", runtime.NumCPU(), "number of worker goroutines per sweep")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log debug information")
	dataFlags = model.NewDataFlags(runCmd.Flags())

	rootCmd.AddCommand(runCmd, versionCmd)
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func runModels(input string, threads int, verbose bool, df model.DataFlags) error {
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	startTime := time.Now()

	cfg, meta, err := config.LoadConfig(input)
	if err != nil {
		return err
	}
	cfg.SetRuntime(threads, verbose)
	df.SetOutputPath(cfg.OutputDir)

	var failed []error
	for _, modelName := range utils.SortedKeys(cfg.Models) {
		logger := log.WithField("model", modelName)
		parameters, err := cfg.Unify(modelName, &meta)
		if err != nil {
			logger.Error(err)
			failed = append(failed, err)
			continue
		}
		logger.WithFields(log.Fields{
			"radius":  parameters.GrainRadius,
			"density": parameters.GasDensity,
			"n_H":     parameters.HydrogenDensity,
			"n_e":     parameters.ElectronDensity,
			"points":  parameters.NTemperatures,
		}).Info("sweep started")

		m, err := model.NewModel(modelName, parameters)
		if err == nil {
			err = m.Run()
		}
		if err == nil {
			err = model.NewDataExtractor(m).Save(df)
		}
		if err != nil {
			logger.Error(err)
			failed = append(failed, err)
		}
	}
	log.WithField("elapsed", time.Since(startTime)).Info("done")

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d models failed: %w", len(failed), len(cfg.Models), errors.Join(failed...))
	}
	return nil
}
