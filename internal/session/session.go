// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package session implements a small command interpreter working on a current
// logic network. Commands are separated by semicolons and their arguments by
// spaces; double quotes group words into a single argument, which is how a
// command line is passed to symmetrize or runsc.
package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/dalzilio/symmetrize"
	"github.com/dalzilio/symmetrize/aig"
	"github.com/dalzilio/symmetrize/bdd"
	"github.com/dalzilio/symmetrize/errs"
	"go.uber.org/zap"
)

var (
	// ErrUnknownCommand is returned for a command name that is not defined.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUsage is returned when a command is called with wrong arguments.
	ErrUsage = errors.New("wrong arguments")
	// ErrNoNetwork is returned by commands that need a current network.
	ErrNoNetwork = errors.New("no network set")
)

// Session holds the current network and the settings used by the commands.
type Session struct {
	// Net is the current network, nil until one is read or generated.
	Net *aig.Network
	// Options are passed to the BDD built by gbdd_build.
	Options []bdd.Option
	// Seed is the default seed of netgen asymmetric.
	Seed int64
	// Verify enables the SAT check at the end of symmetrize.
	Verify bool

	log *zap.Logger
	out io.Writer
}

// New returns a session without network that prints its messages on out.
func New(logger *zap.Logger, out io.Writer) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Session{log: logger, out: out}
}

type command struct {
	usage string
	// minimal and maximal number of arguments, max < 0 for no limit
	min, max int
	network  bool
	run      func(s *Session, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"read":        {"read <file>", 1, 1, false, (*Session).read},
		"write":       {"write <file>", 1, 1, true, (*Session).write},
		"netgen":      {"netgen adder|multiplier <bits> | netgen mac <bits> <pairs> | netgen asymmetric <inputs> <outputs> [seed]", 2, 4, false, (*Session).netgen},
		"gbdd_build":  {"gbdd_build <0|1>", 1, 1, true, (*Session).gbddBuild},
		"gbdd_store":  {"gbdd_store <file>", 1, 1, true, (*Session).gbddStore},
		"gbdd_load":   {"gbdd_load <file>", 1, 1, true, (*Session).gbddLoad},
		"gbdd_dot":    {"gbdd_dot <file>", 1, 1, true, (*Session).gbddDot},
		"symmetrize":  {"symmetrize <er|awae|nawae> <bound> <const|aig|bdd> [command]", 3, 4, true, (*Session).symmetrize},
		"runsc":       {"runsc <command...>", 1, -1, true, (*Session).runsc},
		"cleanup":     {"cleanup", 0, 0, true, (*Session).cleanup},
		"print_stats": {"print_stats", 0, 0, true, (*Session).printStats},
		"help":        {"help", 0, 0, false, (*Session).help},
	}
}

// Exec runs the commands in line, in sequence, and stops at the first error.
func (s *Session) Exec(line string) error {
	cmds, err := Parse(line)
	if err != nil {
		return err
	}
	for _, args := range cmds {
		if err := s.Run(args...); err != nil {
			return err
		}
	}
	return nil
}

// Run executes a single command, given as its name followed by its arguments.
func (s *Session) Run(args ...string) error {
	if len(args) == 0 {
		return nil
	}
	c, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%q: %w", args[0], ErrUnknownCommand)
	}
	if len(args)-1 < c.min || (c.max >= 0 && len(args)-1 > c.max) {
		return fmt.Errorf("%s: %w (usage: %s)", args[0], ErrUsage, c.usage)
	}
	if c.network && s.Net == nil {
		return fmt.Errorf("%s: %w", args[0], ErrNoNetwork)
	}
	s.log.Debug("running command", zap.Strings("args", args))
	if err := c.run(s, args[1:]); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%s: %w (usage: %s)", args[0], err, c.usage)
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

// Parse splits line into commands and arguments.
func Parse(line string) ([][]string, error) {
	var (
		res    [][]string
		args   []string
		word   strings.Builder
		inword bool
		quoted bool
	)
	endword := func() {
		if inword {
			args = append(args, word.String())
			word.Reset()
			inword = false
		}
	}
	endcommand := func() {
		endword()
		if len(args) > 0 {
			res = append(res, args)
			args = nil
		}
	}
	for _, c := range line {
		switch {
		case c == '"':
			quoted = !quoted
			inword = true
		case quoted:
			word.WriteRune(c)
		case c == ';':
			endcommand()
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			endword()
		default:
			word.WriteRune(c)
			inword = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote in command line")
	}
	endcommand()
	return res, nil
}

// replace makes net the current network.
func (s *Session) replace(net *aig.Network) {
	if s.Net != nil {
		s.Net.FreeDiagrams()
	}
	s.Net = net
}

func (s *Session) read(args []string) error {
	net, err := aig.ReadFile(args[0])
	if err != nil {
		return err
	}
	s.replace(net)
	s.log.Info("network read", zap.String("file", args[0]),
		zap.Int("inputs", net.NumInputs()), zap.Int("outputs", net.NumOutputs()))
	return nil
}

func (s *Session) write(args []string) error {
	return s.Net.WriteFile(args[0])
}

func size(arg string) (int, error) {
	v, err := strconv.ParseUint(arg, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%q is not a size: %w", arg, ErrUsage)
	}
	return int(v), nil
}

func (s *Session) netgen(args []string) error {
	arity := map[string]int{"adder": 2, "multiplier": 2, "mac": 3, "asymmetric": 3}
	k, ok := arity[args[0]]
	if !ok || len(args) < k || (len(args) > k && args[0] != "asymmetric") {
		return ErrUsage
	}
	bits, err := size(args[1])
	if err != nil {
		return err
	}
	var net *aig.Network
	switch args[0] {
	case "adder":
		net = aig.NewAdder(bits)
	case "multiplier":
		net = aig.NewMultiplier(bits)
	case "mac":
		pairs, err := size(args[2])
		if err != nil {
			return err
		}
		net = aig.NewMAC(bits, pairs)
	case "asymmetric":
		outs, err := size(args[2])
		if err != nil {
			return err
		}
		seed := s.Seed
		if len(args) == 4 {
			if seed, err = strconv.ParseInt(args[3], 10, 64); err != nil {
				return fmt.Errorf("%q is not a seed: %w", args[3], ErrUsage)
			}
		}
		net = aig.NewAsymmetric(bits, outs, rand.New(rand.NewSource(seed)))
	}
	if err := net.Cleanup(); err != nil {
		return err
	}
	if err := net.Check(); err != nil {
		return fmt.Errorf("network sanity check failed: %w", err)
	}
	s.replace(net)
	s.log.Info("network generated", zap.String("name", net.Name),
		zap.Int("inputs", net.NumInputs()), zap.Int("outputs", net.NumOutputs()))
	return nil
}

func (s *Session) gbddBuild(args []string) error {
	var reorder bool
	switch args[0] {
	case "0":
	case "1":
		reorder = true
	default:
		return ErrUsage
	}
	if err := aig.BuildDiagrams(s.Net, reorder, s.Options...); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Global BDDs built successfully.")
	fmt.Fprintf(s.out, "Node count: %d\n", s.Net.Diagrams().Count())
	return nil
}

func (s *Session) gbddStore(args []string) error {
	f := s.Net.Diagrams()
	if f == nil {
		return errs.ErrMissingDiagrams
	}
	return bdd.Store(args[0], f)
}

func (s *Session) gbddLoad(args []string) error {
	if s.Net.Diagrams() != nil {
		return errs.ErrDiagramsAlreadyPresent
	}
	f, err := bdd.Load(args[0], nil)
	if err != nil {
		return err
	}
	if err := s.Net.SetDiagrams(f); err != nil {
		f.Release()
		return err
	}
	fmt.Fprintln(s.out, "Success.")
	return nil
}

func (s *Session) gbddDot(args []string) error {
	f := s.Net.Diagrams()
	if f == nil {
		return errs.ErrMissingDiagrams
	}
	return f.FPrintDot(args[0], f.Roots...)
}

// Rewriter returns a rewriter running the commands in line on the network
// being symmetrized, which must be the current network.
func (s *Session) Rewriter(line string) symmetrize.Rewriter {
	return symmetrize.RewriterFunc(func(net *aig.Network) error {
		if err := s.Exec(line); err != nil {
			return err
		}
		if s.Net != net {
			return fmt.Errorf("rewriting command %q replaced the network", line)
		}
		return nil
	})
}

func (s *Session) symmetrize(args []string) error {
	p := symmetrize.Params{Logger: s.log, Verify: s.Verify}
	if err := p.Weights.Set(args[0]); err != nil {
		return fmt.Errorf("%v: %w", err, ErrUsage)
	}
	bound, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%q is not an error bound: %w", args[1], ErrUsage)
	}
	p.ErrorBound = bound
	if err := p.Profit.Set(args[2]); err != nil {
		return fmt.Errorf("%v: %w", err, ErrUsage)
	}
	if len(args) == 4 {
		p.Rewriter = s.Rewriter(args[3])
	}
	r, err := symmetrize.Symmetrize(s.Net, p)
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, r.Summary())
	return nil
}

func (s *Session) runsc(args []string) error {
	line := strings.Join(args, " ")
	net := s.Net
	count := net.NodeCount()
	loops := 0
	for {
		if err := s.Exec(line); err != nil {
			return err
		}
		loops++
		if s.Net != net {
			return fmt.Errorf("command %q replaced the network", line)
		}
		old := count
		if count = net.NodeCount(); count == old {
			break
		}
	}
	fmt.Fprintf(s.out, "Did %d loops total\n", loops)
	return nil
}

func (s *Session) cleanup(args []string) error {
	return s.Net.Cleanup()
}

func (s *Session) printStats(args []string) error {
	net := s.Net
	fmt.Fprintf(s.out, "%s: i/o = %d/%d  and = %d", net.Name, net.NumInputs(), net.NumOutputs(), net.NodeCount())
	if f := net.Diagrams(); f != nil {
		fmt.Fprintf(s.out, "  bdd = %d", f.Count())
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *Session) help(args []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(s.out, "  %s\n", commands[name].usage)
	}
	return nil
}
