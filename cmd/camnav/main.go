package main

import (
	"fmt"
	"os"

	"fortio.org/log"
	"github.com/spf13/cobra"

	"github.com/seqsense/camnav/config"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "camnav",
	Short: "Camera navigation engine",
	Long: `camnav replays pointer, wheel and keyboard input scripts against a simulated
renderer and prints the resulting camera and box state.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level overriding the config")
}

// loadConfig returns the config given by the flags and applies its log
// level.
func loadConfig() (config.Config, error) {
	c := config.Default()
	if configPath != "" {
		var err error
		if c, err = config.Load(configPath); err != nil {
			return config.Config{}, err
		}
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		if err := c.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	c.ApplyLogLevel()
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// fatalf logs and returns err for cobra to report.
func fatalf(format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	log.Errf("%v", err)
	return err
}
