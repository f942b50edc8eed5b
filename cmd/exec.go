// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var commandLine string

var execCmd = &cobra.Command{
	Use:   "exec [commands...]",
	Short: "Run a sequence of commands separated by semicolons",
	Long: `Run a sequence of commands separated by semicolons, for instance:

  symmetrize exec -c 'netgen adder 8; gbdd_build 1; symmetrize er 5 aig "runsc cleanup"; print_stats'

Use the help command for the list of available commands.`,
	Run: func(cmd *cobra.Command, args []string) {
		line := commandLine
		if len(args) > 0 {
			line = strings.Join(append([]string{line}, args...), " ")
		}
		if strings.TrimSpace(line) == "" {
			_ = cmd.Help()
			return
		}
		s := config.newSession(os.Stdout)
		if err := s.Exec(line); err != nil {
			fail("Command failed", err)
		}
	},
}

func init() {
	execCmd.Flags().StringVarP(&commandLine, "command", "c", "", "commands to execute")
}
