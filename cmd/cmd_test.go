// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dalzilio/symmetrize"
	"github.com/dalzilio/symmetrize/aig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	res, err := initConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, res)

	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), c)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "weights: er\n")
	assert.Contains(t, string(data), "profit: aig\n")

	require.NoError(t, os.WriteFile(path, []byte("weights: nawae\nbound: 12.5\nnodesize: 1000\n"), 0o644))
	c, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, symmetrize.NormalizedArithmeticWeighted, c.Weights)
	assert.Equal(t, 12.5, c.Bound)
	assert.Equal(t, symmetrize.LogicSizeDelta, c.Profit)
	assert.Len(t, c.options(), 1)

	require.NoError(t, os.WriteFile(path, []byte("profit: area\n"), 0o644))
	_, err = loadConfig(path)
	assert.Error(t, err)

	_, err = loadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &symmetrize.Report{
		Selection:     []bool{true, false, true},
		Error:         2.25,
		LogicBefore:   30,
		LogicAfter:    21,
		DiagramBefore: 14,
		DiagramAfter:  9,
		Timings:       map[string]time.Duration{"bdd": time.Millisecond},
	})
	out := buf.String()
	assert.Contains(t, out, "Symmetrization complete.")
	assert.Contains(t, out, "30 -> 21")
	assert.Contains(t, out, "14 -> 9")
	assert.Contains(t, out, "(2 of 3 components)")
	assert.Contains(t, out, "2.25")
}

func TestCommands(t *testing.T) {
	logger = zap.NewNop()
	dir := t.TempDir()
	network := filepath.Join(dir, "add.aag")
	result := filepath.Join(dir, "result.aig")

	rootCmd.SetArgs([]string{"netgen", "adder", "3", "-o", network})
	require.NoError(t, rootCmd.Execute())
	net, err := aig.ReadFile(network)
	require.NoError(t, err)
	assert.Equal(t, 6, net.NumInputs())
	assert.Equal(t, 4, net.NumOutputs())

	rootCmd.SetArgs([]string{"run", network, "--bound", "100", "--profit", "const", "--verify", "-o", result})
	require.NoError(t, rootCmd.Execute())
	sym, err := aig.ReadFile(result)
	require.NoError(t, err)
	assert.Equal(t, 6, sym.NumInputs())
	assert.Equal(t, 4, sym.NumOutputs())
	assert.NoError(t, sym.Check())
}
