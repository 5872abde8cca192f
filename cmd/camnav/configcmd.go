package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"fortio.org/log"
	"github.com/spf13/cobra"

	"github.com/seqsense/camnav/config"
)

var (
	configFormat   string
	configDebounce time.Duration
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration files",
}

var configCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a config file and print the resolved values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(args[0])
		if err != nil {
			return err
		}
		return printConfig(cmd, c)
	},
}

var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the default config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printConfig(cmd, config.Default())
	},
}

var configWatchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Print the config each time the file changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(args[0])
		if err != nil {
			return err
		}
		if err := printConfig(cmd, c); err != nil {
			return err
		}
		w, err := config.Watch(args[0], configDebounce, func(c config.Config) {
			c.ApplyLogLevel()
			if err := printConfig(cmd, c); err != nil {
				log.Warnf("Failed to print config: %v", err)
			}
		})
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd, configDefaultCmd, configWatchCmd)

	configCmd.PersistentFlags().StringVarP(&configFormat, "format", "f", "yaml", "Output format (yaml or toml)")
	configWatchCmd.Flags().DurationVar(&configDebounce, "debounce", 100*time.Millisecond, "Delay before reloading")
}

func printConfig(cmd *cobra.Command, c config.Config) error {
	f, err := config.FormatOf("." + configFormat)
	if err != nil {
		return err
	}
	b, err := c.Marshal(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(b))
	return err
}
