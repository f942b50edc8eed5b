// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"os"

	"github.com/dalzilio/symmetrize/internal/session"
	"github.com/spf13/cobra"
)

var (
	gbddReorder bool
	gbddDot     string
)

var gbddCmd = &cobra.Command{
	Use:   "gbdd",
	Short: "Build, store or load the global decision diagrams of a network",
}

var gbddBuildCmd = &cobra.Command{
	Use:   "build <network>",
	Short: "Build the diagrams of all the outputs and print their size",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := readAndBuild(cmd, args[0])
		printStats(s)
	},
}

var gbddStoreCmd = &cobra.Command{
	Use:   "store <network> <file>",
	Short: "Build the diagrams of all the outputs and store them in a file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := readAndBuild(cmd, args[0])
		if err := s.Run("gbdd_store", args[1]); err != nil {
			fail("Cannot store diagrams", err)
		}
		printStats(s)
	},
}

var gbddLoadCmd = &cobra.Command{
	Use:   "load <network> <file>",
	Short: "Load the diagrams of a network from a file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := config.newSession(os.Stdout)
		if err := s.Run("read", args[0]); err != nil {
			fail("Cannot read network", err)
		}
		if err := s.Run("gbdd_load", args[1]); err != nil {
			fail("Cannot load diagrams", err)
		}
		if gbddDot != "" {
			if err := s.Run("gbdd_dot", gbddDot); err != nil {
				fail("Cannot write dot file", err)
			}
		}
		printStats(s)
	},
}

// readAndBuild returns a session with the network in filename and its
// diagrams.
func readAndBuild(cmd *cobra.Command, filename string) *session.Session {
	s := config.newSession(os.Stdout)
	reorder := config.Reorder
	if cmd.Flags().Changed("reorder") {
		reorder = gbddReorder
	}
	if err := s.Run("read", filename); err != nil {
		fail("Cannot read network", err)
	}
	if err := s.Run("gbdd_build", reorderFlag(reorder)); err != nil {
		fail("Cannot build diagrams", err)
	}
	if gbddDot != "" {
		if err := s.Run("gbdd_dot", gbddDot); err != nil {
			fail("Cannot write dot file", err)
		}
	}
	return s
}

func printStats(s *session.Session) {
	if err := s.Run("print_stats"); err != nil {
		fail("Cannot print statistics", err)
	}
}

func init() {
	gbddCmd.PersistentFlags().BoolVar(&gbddReorder, "reorder", true, "improve the variable order by sifting")
	gbddCmd.PersistentFlags().StringVar(&gbddDot, "dot", "", "also write the diagrams in DOT format")

	gbddCmd.AddCommand(gbddBuildCmd)
	gbddCmd.AddCommand(gbddStoreCmd)
	gbddCmd.AddCommand(gbddLoadCmd)
}
