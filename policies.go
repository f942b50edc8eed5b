// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package symmetrize

import (
	"fmt"
	"math"
	"strings"

	"github.com/dalzilio/symmetrize/aig"
	"github.com/dalzilio/symmetrize/bdd"
	"github.com/go-air/gini/z"
	"gopkg.in/yaml.v3"
)

// WeightPolicy defines the weight of the error made on each output when
// measuring the distance between two multi-output functions.
type WeightPolicy int

const (
	// ErrorRate gives the same weight to all the outputs; the total weighted
	// error is the average error rate, as a percentage.
	ErrorRate WeightPolicy = iota
	// ArithmeticWeighted gives output i the weight 2^i, as for the bits of an
	// integer.
	ArithmeticWeighted
	// NormalizedArithmeticWeighted is ArithmeticWeighted divided by the
	// largest value of the output, as a percentage.
	NormalizedArithmeticWeighted
)

var weightnames = [...]string{
	ErrorRate:                    "er",
	ArithmeticWeighted:           "awae",
	NormalizedArithmeticWeighted: "nawae",
}

func (p WeightPolicy) String() string {
	if p < 0 || int(p) >= len(weightnames) {
		return fmt.Sprintf("WeightPolicy(%d)", int(p))
	}
	return weightnames[p]
}

// Factor returns the weight of output i among m.
func (p WeightPolicy) Factor(m, i int) float64 {
	switch p {
	case ArithmeticWeighted:
		return math.Ldexp(1, i)
	case NormalizedArithmeticWeighted:
		return 100 * math.Ldexp(1, i) / (math.Ldexp(1, m) - 1)
	default:
		return 100 / float64(m)
	}
}

// ParseWeightPolicy returns the policy with the given name (er, awae or
// nawae).
func ParseWeightPolicy(name string) (WeightPolicy, error) {
	for k, s := range weightnames {
		if strings.EqualFold(s, name) {
			return WeightPolicy(k), nil
		}
	}
	return ErrorRate, fmt.Errorf("unknown weight policy %q (expecting one of %s)", name, strings.Join(weightnames[:], ", "))
}

// Set and Type let a WeightPolicy be used as a command line flag.
func (p *WeightPolicy) Set(name string) error {
	v, err := ParseWeightPolicy(name)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *WeightPolicy) Type() string { return "weight" }

// MarshalYAML implements yaml.Marshaler.
func (p WeightPolicy) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *WeightPolicy) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	return p.Set(name)
}

// ProfitPolicy defines the gain obtained when an output is replaced by its
// symmetric approximation.
type ProfitPolicy int

const (
	// Constant gives the same profit, 1, to every output.
	Constant ProfitPolicy = iota
	// LogicSizeDelta is the number of And nodes saved in the network.
	LogicSizeDelta
	// DiagramSizeDelta is the number of diagram nodes saved.
	DiagramSizeDelta
)

var profitnames = [...]string{
	Constant:         "const",
	LogicSizeDelta:   "aig",
	DiagramSizeDelta: "bdd",
}

func (p ProfitPolicy) String() string {
	if p < 0 || int(p) >= len(profitnames) {
		return fmt.Sprintf("ProfitPolicy(%d)", int(p))
	}
	return profitnames[p]
}

// ProfitInput gathers what a profit policy may need to know about output
// Index: the signals and diagrams of the original output and of its symmetric
// approximation.
type ProfitInput struct {
	Index               int
	Net                 *aig.Network
	Original, Symmetric z.Lit
	BDD                 *bdd.BDD
	OriginalDiagram     bdd.Node
	SymmetricDiagram    bdd.Node
}

// Profit returns the profit of replacing an output. It can be negative, in
// which case the output is never replaced.
func (p ProfitPolicy) Profit(in ProfitInput) int64 {
	switch p {
	case LogicSizeDelta:
		return int64(in.Net.CountNodesFor(in.Original)) - int64(in.Net.CountNodesFor(in.Symmetric))
	case DiagramSizeDelta:
		return int64(in.BDD.Count(in.OriginalDiagram)) - int64(in.BDD.Count(in.SymmetricDiagram))
	default:
		return 1
	}
}

// ParseProfitPolicy returns the policy with the given name (const, aig or
// bdd).
func ParseProfitPolicy(name string) (ProfitPolicy, error) {
	for k, s := range profitnames {
		if strings.EqualFold(s, name) {
			return ProfitPolicy(k), nil
		}
	}
	return Constant, fmt.Errorf("unknown profit policy %q (expecting one of %s)", name, strings.Join(profitnames[:], ", "))
}

// Set and Type let a ProfitPolicy be used as a command line flag.
func (p *ProfitPolicy) Set(name string) error {
	v, err := ParseProfitPolicy(name)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p *ProfitPolicy) Type() string { return "profit" }

// MarshalYAML implements yaml.Marshaler.
func (p ProfitPolicy) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *ProfitPolicy) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	return p.Set(name)
}
