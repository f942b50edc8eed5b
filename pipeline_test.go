// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/dalzilio/symmetrize/aig"
	"github.com/dalzilio/symmetrize/bdd"
	"github.com/dalzilio/symmetrize/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// truthTables returns the value of every output of net on every input.
func truthTables(t *testing.T, net *aig.Network) [][]bool {
	n := net.NumInputs()
	res := make([][]bool, 1<<n)
	for x := range res {
		out, err := net.Eval(assignment(x, n))
		require.NoError(t, err)
		res[x] = out
	}
	return res
}

// checkResult verifies that the outputs of net after symmetrization match the
// report, and that the attached diagrams describe the new outputs.
func checkResult(t *testing.T, before [][]bool, net *aig.Network, r *Report, policy WeightPolicy) {
	t.Helper()
	n, m := net.NumInputs(), net.NumOutputs()
	require.Len(t, r.Selection, m)
	f := net.Diagrams()
	require.NotNil(t, f)
	require.Equal(t, m, f.Len())

	mismatches := make([]int, m)
	for x := 0; x < 1<<n; x++ {
		in := assignment(x, n)
		out, err := net.Eval(in)
		require.NoError(t, err)
		for i := 0; i < m; i++ {
			if r.Selection[i] {
				assert.Equal(t, r.Symmetric.Eval(i, in), out[i])
			} else {
				assert.Equal(t, before[x][i], out[i])
			}
			if out[i] != before[x][i] {
				mismatches[i]++
			}
			v, err := f.Eval(f.Roots[i], in)
			require.NoError(t, err)
			assert.Equal(t, out[i], v)
		}
	}
	total := 0.0
	for i, c := range mismatches {
		if r.Selection[i] {
			assert.Equal(t, r.Symmetric.Errors[i].Int64(), int64(c))
			total += policy.Factor(m, i) * float64(c) / math.Ldexp(1, n)
		} else {
			assert.Zero(t, c)
		}
	}
	assert.InDelta(t, total, r.Error, 1e-9)
	assert.Equal(t, net.NodeCount(), r.LogicAfter)
	assert.Equal(t, f.Count(), r.DiagramAfter)
}

func TestSymmetrizeAdder(t *testing.T) {
	tests := []struct {
		weights WeightPolicy
		bound   float64
		profit  ProfitPolicy
	}{
		{ErrorRate, 0, Constant},
		{ErrorRate, 1000, Constant},
		{ErrorRate, 30, LogicSizeDelta},
		{ArithmeticWeighted, 2, DiagramSizeDelta},
		{NormalizedArithmeticWeighted, 10, Constant},
	}
	for _, tt := range tests {
		t.Run(tt.weights.String()+"/"+tt.profit.String(), func(t *testing.T) {
			net := aig.NewAdder(2)
			before := truthTables(t, net)
			require.NoError(t, aig.BuildDiagrams(net, false))
			r, err := Symmetrize(net, Params{
				Weights:    tt.weights,
				ErrorBound: tt.bound,
				Profit:     tt.profit,
				Logger:     zaptest.NewLogger(t),
				Verify:     true,
			})
			require.NoError(t, err)
			require.NoError(t, net.Check())
			assert.LessOrEqual(t, r.Error, tt.bound)
			checkResult(t, before, net, r, tt.weights)
			for _, step := range []string{"symmetric", "aig", "bdd", "select", "verify"} {
				assert.Contains(t, r.Timings, step)
			}
		})
	}
}

func TestSymmetrizeAll(t *testing.T) {
	net := aig.NewMultiplier(2)
	before := truthTables(t, net)
	require.NoError(t, aig.BuildDiagrams(net, false))
	r, err := Symmetrize(net, Params{ErrorBound: math.Inf(1), Verify: true})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true}, r.Selection)
	checkResult(t, before, net, r, ErrorRate)
}

// A function that is already symmetric is replaced at no cost.
func TestSymmetrizeSymmetric(t *testing.T) {
	net := aig.New("popcount", 5)
	count := net.PopCount(net.Inputs())
	net.AddOutputs(count...)
	net.AddOutputs(net.Xor(count[0], count[1]))
	before := truthTables(t, net)
	require.NoError(t, aig.BuildDiagrams(net, true))

	r, err := Symmetrize(net, Params{Profit: Constant, Rewriter: Cleanup, Verify: true})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true}, r.Selection)
	assert.Zero(t, r.Error)
	assert.Zero(t, r.Symmetric.TotalError().Sign())
	checkResult(t, before, net, r, ErrorRate)
}

func TestSymmetrizeAsymmetric(t *testing.T) {
	net := aig.NewAsymmetric(5, 3, rand.New(rand.NewSource(5)))
	before := truthTables(t, net)
	require.NoError(t, aig.BuildDiagrams(net, false))
	r, err := Symmetrize(net, Params{Weights: ErrorRate, ErrorBound: 20, Profit: LogicSizeDelta})
	require.NoError(t, err)
	checkResult(t, before, net, r, ErrorRate)
}

func TestSymmetrizeErrors(t *testing.T) {
	net := aig.NewAdder(2)
	_, err := Symmetrize(net, Params{})
	assert.ErrorIs(t, err, errs.ErrMissingDiagrams)

	require.NoError(t, aig.BuildDiagrams(net, false))
	drop := RewriterFunc(func(n *aig.Network) error {
		outs := n.Outputs()
		n.ReplaceOutputs(outs[:len(outs)-1])
		return nil
	})
	_, err = Symmetrize(net, Params{Rewriter: drop})
	assert.ErrorIs(t, err, errs.ErrDimensionMismatch)
	assert.Nil(t, net.Diagrams())

	net = aig.NewAdder(2)
	b, err := bdd.New(5)
	require.NoError(t, err)
	roots := make([]bdd.Node, net.NumOutputs())
	for k := range roots {
		roots[k] = b.Ithvar(k)
	}
	require.NoError(t, net.SetDiagrams(bdd.NewForest(b, roots...)))
	_, err = Symmetrize(net, Params{})
	assert.ErrorIs(t, err, errs.ErrDimensionMismatch)
}

func TestReportSummary(t *testing.T) {
	r := &Report{
		Selection:     []bool{true, false, true, true},
		Error:         1.5,
		LogicBefore:   20,
		LogicAfter:    15,
		DiagramBefore: 10,
		DiagramAfter:  12,
	}
	expected := []string{
		"Symmetrization complete.",
		"AIG size: 20 -> 15 (25.00%)",
		"BDD size: 10 -> 12 (-20.00%)",
		"Selection: 1011 (75.00% of components)",
		"Total error: 1.50",
		"",
	}
	assert.Equal(t, strings.Join(expected, "\n"), r.Summary())
	assert.Equal(t, 3, r.Selected())

	empty := &Report{}
	assert.Contains(t, empty.Summary(), "(0.00% of components)")
}

func TestRealize(t *testing.T) {
	rnd := rand.New(rand.NewSource(8))
	for n := 0; n <= 6; n++ {
		f := &SymmetricFunction{N: n, M: 3}
		for i := 0; i < f.M; i++ {
			comp := make([]bool, n+1)
			for w := range comp {
				comp[w] = rnd.Intn(2) == 1
			}
			f.Components = append(f.Components, comp)
		}
		net, err := NewSymmetricNetwork("sym", f)
		require.NoError(t, err)
		require.Equal(t, f.M, net.NumOutputs())
		for x := 0; x < 1<<n; x++ {
			in := assignment(x, n)
			out, err := net.Eval(in)
			require.NoError(t, err)
			for i := range out {
				assert.Equal(t, f.Eval(i, in), out[i], "n=%d component %d on %v", n, i, in)
			}
		}
	}
	_, err := Realize(aig.New("small", 2), &SymmetricFunction{N: 3, M: 0})
	assert.ErrorIs(t, err, errs.ErrDimensionMismatch)
}

func TestWAE(t *testing.T) {
	b, err := bdd.New(3)
	require.NoError(t, err)
	x0, x1 := b.Ithvar(0), b.Ithvar(1)
	f := bdd.NewForest(b, x0, x1)
	g := bdd.NewForest(b, x0, b.Not(x1))
	e, err := WAE(f, g, ArithmeticWeighted)
	require.NoError(t, err)
	assert.Equal(t, 2.0, e)
	e, err = WAE(f, g, ErrorRate)
	require.NoError(t, err)
	assert.Equal(t, 50.0, e)

	other, err := bdd.New(3)
	require.NoError(t, err)
	_, err = WAE(f, bdd.NewForest(other, other.True(), other.True()), ErrorRate)
	assert.ErrorIs(t, err, errs.ErrCrossManagerOperation)
	_, err = WAE(f, bdd.NewForest(b, x0), ErrorRate)
	assert.ErrorIs(t, err, errs.ErrDimensionMismatch)
}
