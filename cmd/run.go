// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dalzilio/symmetrize"
	"github.com/spf13/cobra"
)

var (
	runOutput  string
	runWeights symmetrize.WeightPolicy
	runProfit  symmetrize.ProfitPolicy
	runBound   float64
	runRewrite string
	runReorder bool
	runVerify  bool
)

var runCmd = &cobra.Command{
	Use:   "run <network>",
	Short: "Replace outputs of a network by symmetric approximations",
	Long: `Read a network, build the decision diagrams of its outputs and replace the
outputs giving the best profit by their closest symmetric function, keeping the
total weighted error under the bound. Settings not given on the command line
are taken from the configuration file.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c := config
		flags := cmd.Flags()
		if flags.Changed("weights") {
			c.Weights = runWeights
		}
		if flags.Changed("profit") {
			c.Profit = runProfit
		}
		if flags.Changed("bound") {
			c.Bound = runBound
		}
		if flags.Changed("rewrite") {
			c.Rewrite = runRewrite
		}
		if flags.Changed("reorder") {
			c.Reorder = runReorder
		}
		if flags.Changed("verify") {
			c.Verify = runVerify
		}

		s := c.newSession(io.Discard)
		if err := s.Run("read", args[0]); err != nil {
			fail("Cannot read network", err)
		}
		if err := s.Run("gbdd_build", reorderFlag(c.Reorder)); err != nil {
			fail("Cannot build diagrams", err)
		}
		p := symmetrize.Params{
			Weights:    c.Weights,
			ErrorBound: c.Bound,
			Profit:     c.Profit,
			Logger:     logger,
			Verify:     c.Verify,
		}
		if c.Rewrite != "" {
			p.Rewriter = s.Rewriter(c.Rewrite)
		}
		r, err := symmetrize.Symmetrize(s.Net, p)
		if err != nil {
			fail("Symmetrization failed", err)
		}
		printReport(os.Stdout, r)
		if runOutput != "" {
			if err := s.Run("write", runOutput); err != nil {
				fail("Cannot write network", err)
			}
		}
	},
}

func printReport(w io.Writer, r *symmetrize.Report) {
	titleStyle.Fprintln(w, "Symmetrization complete.")
	labelStyle.Fprint(w, "AIG size:    ")
	fmt.Fprintf(w, "%d -> %d\n", r.LogicBefore, r.LogicAfter)
	labelStyle.Fprint(w, "BDD size:    ")
	fmt.Fprintf(w, "%d -> %d\n", r.DiagramBefore, r.DiagramAfter)
	labelStyle.Fprint(w, "Selection:   ")
	for _, s := range r.Selection {
		if s {
			onStyle.Fprint(w, "1")
		} else {
			fmt.Fprint(w, "0")
		}
	}
	fmt.Fprintf(w, " (%d of %d components)\n", r.Selected(), len(r.Selection))
	labelStyle.Fprint(w, "Total error: ")
	fmt.Fprintf(w, "%.2f\n", r.Error)
	if verbose {
		steps := make([]string, 0, len(r.Timings))
		for step := range r.Timings {
			steps = append(steps, step)
		}
		sort.Slice(steps, func(i, j int) bool { return r.Timings[steps[i]] > r.Timings[steps[j]] })
		for _, step := range steps {
			labelStyle.Fprintf(w, "%-13s", step+":")
			fmt.Fprintf(w, "%v\n", r.Timings[step])
		}
	}
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write the resulting network to this file")
	runCmd.Flags().Var(&runWeights, "weights", "error weights: er, awae or nawae")
	runCmd.Flags().Var(&runProfit, "profit", "profit metric: const, aig or bdd")
	runCmd.Flags().Float64Var(&runBound, "bound", 0, "bound on the total weighted error")
	runCmd.Flags().StringVar(&runRewrite, "rewrite", "", "commands run on the network before selection")
	runCmd.Flags().BoolVar(&runReorder, "reorder", true, "improve the variable order by sifting")
	runCmd.Flags().BoolVar(&runVerify, "verify", false, "check the result with a SAT solver")
}
