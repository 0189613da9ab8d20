package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/dataflow"
	"github.com/wippyai/dataflow/constprop"
	"github.com/wippyai/dataflow/dialect"
	"github.com/wippyai/dataflow/ir"
	"github.com/wippyai/dataflow/irtext"
	"github.com/wippyai/dataflow/missingness"
)

func main() {
	var (
		file        = flag.String("file", "", "Path to textual IR file")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: explore -file <prog.ir> [-v]")
		fmt.Fprintln(os.Stderr, "       explore -file <prog.ir> -i  (interactive mode)")
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*file, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func load(file string, cfg dataflow.Config) (*ir.Program, *dataflow.Solver, error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	prog, err := irtext.Parse(dialect.DefaultRegistry(), string(src))
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}
	if err := ir.Verify(prog); err != nil {
		return nil, nil, fmt.Errorf("verify: %w", err)
	}

	solver := dataflow.NewSolver(prog, cfg)
	solver.Register(missingness.New(missingness.Config{}))
	solver.Register(constprop.New(constprop.Config{}))
	return prog, solver, nil
}

func run(file string, verbose bool) error {
	cfg := dataflow.Config{}
	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer logger.Sync()
		cfg.Logger = logger
	}

	prog, solver, err := load(file, cfg)
	if err != nil {
		return err
	}
	if err := solver.Run(); err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	fmt.Printf("Program: %s (%d ops, %d visits)\n\n", file, prog.NumOps(), solver.Steps())

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tMISSINGNESS\tCONSTANT")
	for _, v := range prog.Values() {
		m, err := solver.Result(missingness.Name, v)
		if err != nil {
			return err
		}
		c, err := solver.Result(constprop.Name, v)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", v, m, c)
	}
	return w.Flush()
}
