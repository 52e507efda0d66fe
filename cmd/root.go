// Package cmd implements the hanlian CLI: an operator surface over a
// local engine database for seeding curated content and inspecting
// queues, rounds, and progress. The engine itself stays a library.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/suyin/hanlian/internal/engine"
	"github.com/suyin/hanlian/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "hanlian",
	Short:         "Adaptive practice engine for Chinese characters",
	Long:          "hanlian — adaptive practice queues, distractor generation, and word-pair rounds over a local database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database (overrides HANLIAN_DB)")
	rootCmd.PersistentFlags().String("learner", "default", "learner ID to operate on")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	viper.SetEnvPrefix("hanlian")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("learner", rootCmd.PersistentFlags().Lookup("learner"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(roundCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

// openEngine resolves configuration and wires an engine over the local
// database. The caller owns closing the returned store.
func openEngine() (*engine.Engine, *store.Store, error) {
	path := viper.GetString("db")
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store at %s: %w", path, err)
	}

	logger, err := newLogger(viper.GetBool("verbose"))
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	return engine.New(st, logger), st, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.Encoding = "console"
	return cfg.Build()
}

func learnerID() string {
	return viper.GetString("learner")
}
