// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalzilio/symmetrize/aig"
	"github.com/dalzilio/symmetrize/bdd"
	"github.com/dalzilio/symmetrize/errs"
	"github.com/dalzilio/symmetrize/tt"
	"github.com/go-air/gini/z"
	"go.uber.org/zap"
)

// Params are the parameters of a symmetrization. The total weighted error of
// the replaced outputs is bounded by ErrorBound. Rewriter is optional, Solver
// defaults to GreedySolver and Logger to a no-op logger. When Verify is set,
// every output of the result is checked with a SAT solver.
type Params struct {
	Weights    WeightPolicy
	ErrorBound float64
	Profit     ProfitPolicy
	Rewriter   Rewriter
	Solver     Solver
	Logger     *zap.Logger
	Verify     bool
}

// Report gives the outcome of a symmetrization. Selection[i] is set when
// output i was replaced by its symmetric approximation, and Error is the sum
// of the weighted errors of the selected outputs.
type Report struct {
	Selection     []bool
	Error         float64
	LogicBefore   int
	LogicAfter    int
	DiagramBefore int
	DiagramAfter  int
	Symmetric     *SymmetricFunction
	Timings       map[string]time.Duration
}

// Selected returns the number of replaced outputs.
func (r *Report) Selected() int {
	res := 0
	for _, s := range r.Selection {
		if s {
			res++
		}
	}
	return res
}

func percent(x, total float64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * x / total
}

// Summary returns a textual description of the report, one figure per line.
func (r *Report) Summary() string {
	var sb strings.Builder
	sb.WriteString("Symmetrization complete.\n")
	fmt.Fprintf(&sb, "AIG size: %d -> %d (%.2f%%)\n", r.LogicBefore, r.LogicAfter,
		percent(float64(r.LogicBefore-r.LogicAfter), float64(r.LogicBefore)))
	fmt.Fprintf(&sb, "BDD size: %d -> %d (%.2f%%)\n", r.DiagramBefore, r.DiagramAfter,
		percent(float64(r.DiagramBefore-r.DiagramAfter), float64(r.DiagramBefore)))
	fmt.Fprintf(&sb, "Selection: %s (%.2f%% of components)\n", tt.String(r.Selection, false),
		percent(float64(r.Selected()), float64(len(r.Selection))))
	fmt.Fprintf(&sb, "Total error: %.2f\n", r.Error)
	return sb.String()
}

// Symmetrize replaces some outputs of net by their closest symmetric
// approximation, choosing the outputs that give the best profit while keeping
// the total weighted error under p.ErrorBound. The network must have decision
// diagrams attached; on success they are replaced by the diagrams of the new
// outputs, in the same BDD. On error, the diagrams are released and the
// network may have been modified.
func Symmetrize(net *aig.Network, p Params) (*Report, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	solver := p.Solver
	if solver == nil {
		solver = GreedySolver{}
	}
	if net.Sequential() {
		return nil, fmt.Errorf("symmetrization of %q: %w", net.Name, errs.ErrInvalidNetworkKind)
	}
	if net.Diagrams() == nil {
		return nil, fmt.Errorf("symmetrization of %q: %w", net.Name, errs.ErrMissingDiagrams)
	}
	n, m := net.NumInputs(), net.NumOutputs()
	log = log.With(zap.String("network", net.Name), zap.Int("inputs", n), zap.Int("outputs", m))

	// we own the diagrams until they are attached back to the network
	f := net.TakeDiagrams()
	owned := true
	defer func() {
		if owned {
			f.Release()
		}
	}()

	var reference *aig.Network
	if p.Verify {
		reference = net.Copy()
	}
	report := &Report{
		LogicBefore:   net.NodeCount(),
		DiagramBefore: f.Count(),
		Timings:       make(map[string]time.Duration),
	}
	start := time.Now()
	step := func(name string) {
		d := time.Since(start)
		report.Timings[name] = d
		log.Debug("step done", zap.String("step", name), zap.Duration("elapsed", d))
		start = time.Now()
	}

	bin := NewBinomial(n)
	hs, err := Histograms(f, n, bin)
	if err != nil {
		return nil, err
	}
	sym := NewSymmetricFunction(hs, bin)
	report.Symmetric = sym
	step("symmetric")

	if _, err := Realize(net, sym); err != nil {
		return nil, err
	}
	if log.Core().Enabled(zap.DebugLevel) {
		for i, comp := range sym.Components {
			table, _ := tt.FillMinBeads(comp)
			beads, _ := tt.Beads(table)
			log.Debug("lookup table", zap.Int("output", i), zap.String("table", tt.String(table, false)), zap.Int("beads", beads))
		}
	}
	if p.Rewriter != nil {
		if err := p.Rewriter.Rewrite(net); err != nil {
			return nil, fmt.Errorf("rewriting: %w", err)
		}
		if net.NumOutputs() != 2*m {
			return nil, fmt.Errorf("rewriting changed the number of outputs from %d to %d: %w", 2*m, net.NumOutputs(), errs.ErrDimensionMismatch)
		}
	}
	step("aig")

	roots, err := bdd.Symmetric(f.BDD, n, sym.Components)
	if err != nil {
		return nil, err
	}
	ft := bdd.NewForest(f.BDD, roots...)
	step("bdd")

	outs := net.Outputs()
	original, symmetric := outs[:m], outs[m:]
	weights := make([]float64, m)
	profits := make([]int64, m)
	for i := 0; i < m; i++ {
		weights[i] = fraction(sym.Errors[i], n) * p.Weights.Factor(m, i)
		profits[i] = p.Profit.Profit(ProfitInput{
			Index:            i,
			Net:              net,
			Original:         original[i],
			Symmetric:        symmetric[i],
			BDD:              f.BDD,
			OriginalDiagram:  f.Roots[i],
			SymmetricDiagram: ft.Roots[i],
		})
	}
	used, sel, err := solver.Solve(weights, profits, p.ErrorBound)
	if err != nil {
		return nil, err
	}
	report.Selection, report.Error = sel, used

	selected := make([]z.Lit, m)
	for i := range selected {
		if sel[i] {
			selected[i] = symmetric[i]
		} else {
			selected[i] = original[i]
		}
	}
	net.ReplaceOutputs(selected)
	g, err := bdd.Select(ft, f, sel)
	if err != nil {
		return nil, err
	}
	step("select")

	if err := net.Cleanup(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, errs.ErrPostconditionViolated)
	}
	if err := net.Check(); err != nil {
		return nil, err
	}
	if p.Verify {
		if err := verify(net, reference, sym, sel); err != nil {
			return nil, err
		}
		step("verify")
	}
	if err := net.SetDiagrams(g); err != nil {
		return nil, fmt.Errorf("%v: %w", err, errs.ErrPostconditionViolated)
	}
	owned = false
	report.LogicAfter = net.NodeCount()
	report.DiagramAfter = g.Count()
	log.Info("symmetrization complete",
		zap.Int("selected", report.Selected()),
		zap.Float64("error", report.Error),
		zap.Int("aig_before", report.LogicBefore),
		zap.Int("aig_after", report.LogicAfter))
	return report, nil
}

// verify checks that each output of net is the output of the original network
// at the same position, or its symmetric approximation when it is selected.
// The approximations are checked against a reference built with a sorting
// network.
func verify(net, original *aig.Network, sym *SymmetricFunction, sel []bool) error {
	for i, s := range sel {
		j := i
		if s {
			ref, err := original.SymmetricReference(sym.Components[i])
			if err != nil {
				return err
			}
			original.AddOutputs(ref)
			j = original.NumOutputs() - 1
		}
		ok, err := aig.Equivalent(net, original, i, j)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("output %d differs from its expected function: %w", i, errs.ErrPostconditionViolated)
		}
	}
	return nil
}
