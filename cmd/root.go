// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
	config Config
)

var (
	titleStyle = color.New(color.FgGreen, color.Bold)
	labelStyle = color.New(color.FgCyan, color.Bold)
	errorStyle = color.New(color.FgRed, color.Bold)
	onStyle    = color.New(color.FgHiYellow, color.Bold)
)

var rootCmd = &cobra.Command{
	Use:              "symmetrize",
	Short:            "symmetrize - approximate the outputs of a logic network by symmetric functions",
	TraverseChildren: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogger(); err != nil {
			return err
		}
		var err error
		config, err = loadConfig(cfgFile)
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func setupLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	return err
}

func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

// fail reports err and stops the program.
func fail(msg string, err error) {
	logger.Error(msg, zap.Error(err))
	errorStyle.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file (default "+defaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(netgenCmd)
	rootCmd.AddCommand(gbddCmd)
	rootCmd.AddCommand(runCmd)
}
