package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cohort-sim/cohort-sim/markov"
	"github.com/cohort-sim/cohort-sim/markov/randvar"
)

var (
	modelFile string // Path to the YAML model definition
	steps     int    // Number of time steps to simulate
	seed      int64  // Seed for the simulation's random source
	logLevel  string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cohort-sim",
	Short: "Cohort simulator for discrete- and continuous-time Markov models",
}

// runCmd loads a model file and runs the cohort simulation
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a cohort simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if modelFile == "" {
			logrus.Fatalf("No model file provided. Use --model.")
		}

		cfg, err := LoadModelConfig(modelFile)
		if err != nil {
			logrus.Fatalf("Failed to load model: %v", err)
		}

		cohort, doubleJump, err := cfg.BuildCohort()
		if err != nil {
			logrus.Fatalf("Failed to build model: %v", err)
		}
		if doubleJump > 0 {
			logrus.Infof("upper bound on within-step double-jump probability: %.6f", doubleJump)
		}

		if err := cohort.Simulate(cfg.InitialCohort, steps, randvar.New(seed)); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		for s := 0; s < cohort.NumStates(); s++ {
			series, err := cohort.StateSizeOverTime(markov.ByIndex(s))
			if err != nil {
				logrus.Fatalf("Failed to read results: %v", err)
			}
			name := fmt.Sprintf("state %d", s)
			if len(cfg.States) > 0 {
				name = cfg.States[s]
			}
			fmt.Printf("%-20s %v\n", name, series)
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&modelFile, "model", "", "Path to the YAML model definition")
	runCmd.Flags().IntVar(&steps, "steps", 10, "Number of time steps to simulate")
	runCmd.Flags().Int64Var(&seed, "seed", randvar.DefaultSeed, "Seed for the simulation's random source")
	runCmd.Flags().StringVar(&logLevel, "loglevel", "info", "Log level: trace, debug, info, warn, error")
	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
