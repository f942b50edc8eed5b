// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/dalzilio/symmetrize"
	"github.com/dalzilio/symmetrize/bdd"
	"github.com/dalzilio/symmetrize/internal/session"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".symmetrize.yaml"

// Config gathers the settings read from the configuration file. Command line
// flags take precedence over these values.
type Config struct {
	Weights   symmetrize.WeightPolicy `yaml:"weights"`
	Bound     float64                 `yaml:"bound"`
	Profit    symmetrize.ProfitPolicy `yaml:"profit"`
	Rewrite   string                  `yaml:"rewrite"`
	Reorder   bool                    `yaml:"reorder"`
	Verify    bool                    `yaml:"verify"`
	Nodesize  int                     `yaml:"nodesize"`
	Cachesize int                     `yaml:"cachesize"`
	Seed      int64                   `yaml:"seed"`
}

func defaultConfig() Config {
	return Config{
		Weights: symmetrize.ErrorRate,
		Bound:   5,
		Profit:  symmetrize.LogicSizeDelta,
		Rewrite: "runsc cleanup",
		Reorder: true,
		Seed:    1,
	}
}

// loadConfig reads the configuration in path, over the default values. With
// an empty path, the default file is used when it exists.
func loadConfig(path string) (Config, error) {
	config := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) options() []bdd.Option {
	var res []bdd.Option
	if c.Nodesize > 0 {
		res = append(res, bdd.Nodesize(c.Nodesize))
	}
	if c.Cachesize > 0 {
		res = append(res, bdd.Cachesize(c.Cachesize))
	}
	return res
}

func (c Config) newSession(out io.Writer) *session.Session {
	s := session.New(logger, out)
	s.Options = c.options()
	s.Seed = c.Seed
	s.Verify = c.Verify
	return s
}

func reorderFlag(reorder bool) string {
	if reorder {
		return "1"
	}
	return "0"
}
