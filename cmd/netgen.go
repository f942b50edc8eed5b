// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var netgenOutput string

var netgenCmd = &cobra.Command{
	Use:   "netgen <adder|multiplier|mac|asymmetric> <size...>",
	Short: "Generate a benchmark network and write it in AIGER format",
	Long: `Generate a benchmark network:

  netgen adder <bits>
  netgen multiplier <bits>
  netgen mac <bits> <pairs>
  netgen asymmetric <inputs> <outputs> [seed]

The network is written in binary AIGER format, or ASCII when the output file
ends with .aag.`,
	Args: cobra.RangeArgs(2, 4),
	Run: func(cmd *cobra.Command, args []string) {
		s := config.newSession(os.Stdout)
		if err := s.Run(append([]string{"netgen"}, args...)...); err != nil {
			fail("Cannot generate network", err)
		}
		if err := s.Run("write", netgenOutput); err != nil {
			fail("Cannot write network", err)
		}
		fmt.Printf("%s written to %s (%d inputs, %d outputs, %d and gates)\n",
			s.Net.Name, netgenOutput, s.Net.NumInputs(), s.Net.NumOutputs(), s.Net.NodeCount())
	},
}

func init() {
	netgenCmd.Flags().StringVarP(&netgenOutput, "output", "o", "", "output file")
	_ = netgenCmd.MarkFlagRequired("output")
}
