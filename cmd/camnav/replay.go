package main

import (
	"fmt"
	"io"

	"fortio.org/log"
	"github.com/spf13/cobra"

	"github.com/seqsense/camnav/config"
)

var replayKeepGoing bool

var replayCmd = &cobra.Command{
	Use:   "replay [script]",
	Short: "Replay an input script",
	Long: `Replay a yaml or toml script of console commands such as "drag 400 300 500 300",
"wheel -100", "key_down KeyW", "wait 500" and "camera" against a simulated renderer.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVarP(&replayKeepGoing, "keep-going", "k", false, "Continue after a failed step")
}

func runReplay(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := loadScript(args[0])
	if err != nil {
		return err
	}
	return replay(cmd.OutOrStdout(), c, s, replayKeepGoing)
}

func replay(w io.Writer, c config.Config, s script, keepGoing bool) error {
	ss, err := newSession(c, s)
	if err != nil {
		return err
	}
	con := &console{s: ss}
	failed := 0
	for i, line := range s.Steps {
		res, err := con.Run(line)
		if err != nil {
			if !keepGoing {
				return fatalf("step %d %q: %w", i+1, line, err)
			}
			log.Warnf("Step %d %q: %v", i+1, line, err)
			failed++
			continue
		}
		if res != "" {
			fmt.Fprintf(w, "> %s\n%s\n", line, res)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d steps failed", failed, len(s.Steps))
	}
	log.Infof("Replayed %d steps", len(s.Steps))
	return nil
}
