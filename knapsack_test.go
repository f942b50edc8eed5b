// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"math"
	"testing"

	"github.com/dalzilio/symmetrize/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGreedySolver(t *testing.T) {
	tests := []struct {
		name     string
		weights  []float64
		profits  []int64
		capacity float64
		used     float64
		sel      []bool
	}{
		{"ratio", []float64{1, 2}, []int64{5, 3}, 2, 1, []bool{true, false}},
		{"all", []float64{1, 2}, []int64{5, 3}, 3, 3, []bool{true, true}},
		{"negative", []float64{0, 1}, []int64{-1, 0}, 10, 1, []bool{false, true}},
		{"zero weight", []float64{0, 0, 5}, []int64{0, 1, 100}, 0, 0, []bool{true, true, false}},
		{"skip and continue", []float64{3, 2, 1}, []int64{9, 2, 1}, 4, 4, []bool{true, false, true}},
		{"ties from highest index", []float64{1, 1, 1}, []int64{2, 2, 2}, 2, 2, []bool{false, true, true}},
		{"empty", nil, nil, 1, 0, []bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			used, sel, err := GreedySolver{}.Solve(tt.weights, tt.profits, tt.capacity)
			require.NoError(t, err)
			assert.Equal(t, tt.used, used)
			assert.Equal(t, tt.sel, sel)
			assert.LessOrEqual(t, used, math.Max(tt.capacity, 0))
		})
	}

	_, _, err := GreedySolver{}.Solve([]float64{1}, []int64{1, 2}, 1)
	assert.ErrorIs(t, err, errs.ErrDimensionMismatch)
}

func TestWeightPolicy(t *testing.T) {
	assert.Equal(t, 25.0, ErrorRate.Factor(4, 3))
	assert.Equal(t, 8.0, ArithmeticWeighted.Factor(4, 3))
	assert.Equal(t, 100.0*8/15, NormalizedArithmeticWeighted.Factor(4, 3))

	sum := 0.0
	for i := 0; i < 5; i++ {
		sum += NormalizedArithmeticWeighted.Factor(5, i)
	}
	assert.InDelta(t, 100.0, sum, 1e-9)

	for _, p := range []WeightPolicy{ErrorRate, ArithmeticWeighted, NormalizedArithmeticWeighted} {
		q, err := ParseWeightPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, q)
	}
	_, err := ParseWeightPolicy("mse")
	assert.Error(t, err)
	assert.Equal(t, "WeightPolicy(7)", WeightPolicy(7).String())
}

func TestProfitPolicy(t *testing.T) {
	for _, p := range []ProfitPolicy{Constant, LogicSizeDelta, DiagramSizeDelta} {
		q, err := ParseProfitPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, q)
	}
	p, err := ParseProfitPolicy("AIG")
	require.NoError(t, err)
	assert.Equal(t, LogicSizeDelta, p)
	_, err = ParseProfitPolicy("area")
	assert.Error(t, err)
	assert.Equal(t, int64(1), Constant.Profit(ProfitInput{}))
}

func TestPoliciesYAML(t *testing.T) {
	type config struct {
		Weights WeightPolicy `yaml:"weights"`
		Profit  ProfitPolicy `yaml:"profit"`
	}
	out, err := yaml.Marshal(config{NormalizedArithmeticWeighted, DiagramSizeDelta})
	require.NoError(t, err)
	assert.Equal(t, "weights: nawae\nprofit: bdd\n", string(out))

	var c config
	require.NoError(t, yaml.Unmarshal([]byte("weights: awae\nprofit: aig\n"), &c))
	assert.Equal(t, config{ArithmeticWeighted, LogicSizeDelta}, c)

	assert.Error(t, yaml.Unmarshal([]byte("weights: foo\n"), &c))
}
