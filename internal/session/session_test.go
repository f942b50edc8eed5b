// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package session

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dalzilio/symmetrize/aig"
	"github.com/dalzilio/symmetrize/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newSession(t *testing.T) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return New(zaptest.NewLogger(t), &out), &out
}

func bits(x, n int) []bool {
	res := make([]bool, n)
	for i := range res {
		res[i] = (x>>i)&1 == 1
	}
	return res
}

// checkDiagrams verifies that the diagrams attached to net compute its outputs.
func checkDiagrams(t *testing.T, net *aig.Network) {
	t.Helper()
	f := net.Diagrams()
	require.NotNil(t, f)
	require.Equal(t, net.NumOutputs(), f.Len())
	n := net.NumInputs()
	for x := 0; x < 1<<n; x++ {
		in := bits(x, n)
		out, err := net.Eval(in)
		require.NoError(t, err)
		for i, r := range f.Roots {
			v, err := f.Eval(r, in)
			require.NoError(t, err)
			assert.Equal(t, out[i], v, "output %d on %v", i, in)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		expected [][]string
	}{
		{"", nil},
		{" ; ;", nil},
		{"cleanup", [][]string{{"cleanup"}}},
		{"netgen adder 2;gbdd_build  0", [][]string{{"netgen", "adder", "2"}, {"gbdd_build", "0"}}},
		{`symmetrize er 10 aig "runsc cleanup; cleanup"`, [][]string{{"symmetrize", "er", "10", "aig", "runsc cleanup; cleanup"}}},
		{`write "a b.aig"`, [][]string{{"write", "a b.aig"}}},
		{`runsc ""`, [][]string{{"runsc", ""}}},
	}
	for _, tt := range tests {
		res, err := Parse(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.expected, res, tt.line)
	}
	_, err := Parse(`symmetrize er 1 const "cleanup`)
	assert.Error(t, err)
}

func TestNetgen(t *testing.T) {
	s, _ := newSession(t)
	tests := []struct {
		line    string
		name    string
		inputs  int
		outputs int
	}{
		{"netgen adder 3", "add3", 6, 4},
		{"netgen multiplier 2", "multiply2", 4, 4},
		{"netgen mac 2 3", "mac 3 x multiply2", 12, 6},
		{"netgen asymmetric 5 3", "", 5, 3},
		{"netgen asymmetric 4 2 12", "", 4, 2},
	}
	for _, tt := range tests {
		require.NoError(t, s.Exec(tt.line), tt.line)
		require.NotNil(t, s.Net)
		if tt.name != "" {
			assert.Equal(t, tt.name, s.Net.Name)
		}
		assert.Equal(t, tt.inputs, s.Net.NumInputs(), tt.line)
		assert.Equal(t, tt.outputs, s.Net.NumOutputs(), tt.line)
		assert.NoError(t, s.Net.Check())
	}

	// the same seed gives the same network
	other, _ := newSession(t)
	require.NoError(t, other.Exec("netgen asymmetric 4 2 12"))
	for x := 0; x < 16; x++ {
		a, err := s.Net.Eval(bits(x, 4))
		require.NoError(t, err)
		b, err := other.Net.Eval(bits(x, 4))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestErrors(t *testing.T) {
	s, _ := newSession(t)
	assert.ErrorIs(t, s.Exec("abc"), ErrUnknownCommand)
	assert.ErrorIs(t, s.Exec("cleanup"), ErrNoNetwork)
	assert.ErrorIs(t, s.Exec("print_stats"), ErrNoNetwork)
	assert.ErrorIs(t, s.Exec("netgen"), ErrUsage)
	assert.ErrorIs(t, s.Exec("netgen divider 4"), ErrUsage)
	assert.ErrorIs(t, s.Exec("netgen adder two"), ErrUsage)
	assert.ErrorIs(t, s.Exec("netgen adder 2 3"), ErrUsage)
	assert.ErrorIs(t, s.Exec("netgen mac 2"), ErrUsage)

	require.NoError(t, s.Exec("netgen adder 2"))
	assert.ErrorIs(t, s.Exec("gbdd_build 2"), ErrUsage)
	assert.ErrorIs(t, s.Exec("gbdd_store x.bdd"), errs.ErrMissingDiagrams)
	assert.ErrorIs(t, s.Exec("symmetrize er 1 const"), errs.ErrMissingDiagrams)
	require.NoError(t, s.Exec("gbdd_build 0"))
	assert.ErrorIs(t, s.Exec("gbdd_build 0"), errs.ErrDiagramsAlreadyPresent)
	assert.ErrorIs(t, s.Exec("symmetrize mse 1 const"), ErrUsage)
	assert.ErrorIs(t, s.Exec("symmetrize er x const"), ErrUsage)
	assert.ErrorIs(t, s.Exec("symmetrize er 1 area"), ErrUsage)
	assert.Error(t, s.Exec(`symmetrize er 1 const "netgen adder 2"`))
	assert.Nil(t, s.Net.Diagrams())
	assert.ErrorIs(t, s.Exec("cleanup; abc; cleanup"), ErrUnknownCommand)
}

func TestSymmetrize(t *testing.T) {
	s, out := newSession(t)
	s.Verify = true
	require.NoError(t, s.Exec(`netgen adder 2; gbdd_build 1; symmetrize er 1000 const "runsc cleanup"`))
	assert.Contains(t, out.String(), "Global BDDs built successfully.")
	assert.Contains(t, out.String(), "Did 1 loops total")
	assert.Contains(t, out.String(), "Symmetrization complete.")
	assert.Contains(t, out.String(), "Selection: 111 (100.00% of components)")
	checkDiagrams(t, s.Net)

	out.Reset()
	require.NoError(t, s.Exec("print_stats"))
	assert.Contains(t, out.String(), "add2: i/o = 4/3")
	assert.Contains(t, out.String(), "bdd = ")

	// nothing is replaced when no error is allowed
	require.NoError(t, s.Exec("netgen asymmetric 4 2 3; gbdd_build 0; symmetrize awae 0 aig cleanup"))
	assert.Contains(t, out.String(), "Selection: 00 (0.00% of components)")
	checkDiagrams(t, s.Net)
}

func TestStoreLoad(t *testing.T) {
	dir := t.TempDir()
	network := filepath.Join(dir, "mult.aig")
	diagrams := filepath.Join(dir, "mult.bdd")
	dot := filepath.Join(dir, "mult.dot")

	s, _ := newSession(t)
	require.NoError(t, s.Exec("netgen multiplier 2; write "+network+"; gbdd_build 1; gbdd_store "+diagrams+"; gbdd_dot "+dot))

	t.Run("load", func(t *testing.T) {
		s, out := newSession(t)
		require.NoError(t, s.Exec("read "+network+"; gbdd_load "+diagrams))
		assert.Equal(t, "mult", s.Net.Name)
		assert.Contains(t, out.String(), "Success.")
		checkDiagrams(t, s.Net)
		assert.ErrorIs(t, s.Exec("gbdd_load "+diagrams), errs.ErrDiagramsAlreadyPresent)
	})

	t.Run("mismatch", func(t *testing.T) {
		s, _ := newSession(t)
		require.NoError(t, s.Exec("netgen adder 2"))
		assert.ErrorIs(t, s.Exec("gbdd_load "+diagrams), errs.ErrDimensionMismatch)
		assert.Nil(t, s.Net.Diagrams())
	})

	t.Run("missing", func(t *testing.T) {
		s, _ := newSession(t)
		assert.Error(t, s.Exec("read "+filepath.Join(dir, "none.aig")))
		assert.Nil(t, s.Net)
	})
}

func TestRunsc(t *testing.T) {
	s, out := newSession(t)
	require.NoError(t, s.Exec("netgen adder 2"))
	before := s.Net.NodeCount()
	require.NoError(t, s.Exec("runsc cleanup"))
	assert.Equal(t, before, s.Net.NodeCount())
	assert.Contains(t, out.String(), "Did 1 loops total")
	assert.Error(t, s.Exec("runsc netgen adder 3"))
}

func TestHelp(t *testing.T) {
	s, out := newSession(t)
	require.NoError(t, s.Exec("help"))
	for name, c := range commands {
		assert.Contains(t, out.String(), c.usage, name)
	}
}
