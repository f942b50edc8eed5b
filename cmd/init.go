// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// initCmd: symmetrize init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	// the file may not exist yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogger()
	},
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) (string, error) {
	if configurationPath == "" {
		configurationPath = defaultConfigFile
	}

	d, err := yaml.Marshal(defaultConfig())
	if err != nil {
		return "", err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return "", err
	}
	return configurationPath, nil
}
