// Package cli is the thin driver around the correlation core: it reads a
// batch of items over the documented JSON interface, runs one
// orchestration, and prints the report. The serving and export layers
// proper live outside this repository; the core never imports this
// package.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "weaver",
	Short: "Batch correlation engine for intelligence items",
	Long: `Weaver ingests batches of short intelligence items and produces a
structured correlation report: related items and entities, relationship
graph structure, statistical anomalies and trends, and an overall
confidence verdict.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(correlateCmd)
	rootCmd.AddCommand(gazetteerCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".weaver")
	}
	viper.SetEnvPrefix("WEAVER")
	viper.AutomaticEnv()

	// Missing config files are fine; defaults cover everything.
	_ = viper.ReadInConfig()
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger() (*zap.Logger, error) {
	if viper.GetBool("verbose") {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}
