package dataflow

import (
	"go.uber.org/zap"

	"github.com/wippyai/dataflow/errors"
	"github.com/wippyai/dataflow/ir"
	"github.com/wippyai/dataflow/lattice"
)

// Analysis is a monotone transfer function over one lattice domain.
//
// Implementations are stateless with respect to lattice storage: the
// solver owns every element and the analysis only proposes joins through
// the Context. Visit may be invoked many times for the same operation
// across a run, never concurrently.
type Analysis interface {
	// Name identifies the analysis's lattice space; other analyses consume
	// its elements through Context.Lookup under this name.
	Name() string
	// Bottom returns the uninitialized element every value starts at.
	Bottom() lattice.Value
	// Top returns the terminal, unconstrained element. The solver seeds
	// region arguments with it and MarkAllPessimistic joins it into
	// results.
	Top() lattice.Value
	// Visit recomputes the operation's result elements from the current
	// operand elements. A non-nil error aborts the whole run and is
	// reserved for contract violations by collaborators.
	Visit(ctx *Context, op *ir.Operation) error
}

// Config configures a Solver.
type Config struct {
	// Logger receives debug traces of visits and joins. Defaults to a nop
	// logger.
	Logger *zap.Logger
}

type elementKey struct {
	analysis string
	value    *ir.Value
}

type workItem struct {
	analysis int
	op       int
}

// Solver runs registered analyses over one program to a global fixpoint.
//
// The solver is single-threaded: one worklist, one visit at a time. All
// lattice elements live in the solver and only ever move upward under
// join.
type Solver struct {
	program  *ir.Program
	analyses []Analysis
	byName   map[string]int
	ops      []*ir.Operation
	opIndex  map[*ir.Operation]int
	elements map[elementKey]lattice.Value
	deps     map[elementKey][]workItem
	depSeen  map[elementKey]map[workItem]bool
	queue    []workItem
	pending  *bitSet
	steps    int
	seeded   bool
	logger   *zap.Logger
}

// NewSolver creates a solver for the given program.
func NewSolver(program *ir.Program, cfg Config) *Solver {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Solver{
		program:  program,
		byName:   make(map[string]int),
		opIndex:  make(map[*ir.Operation]int),
		elements: make(map[elementKey]lattice.Value),
		deps:     make(map[elementKey][]workItem),
		depSeen:  make(map[elementKey]map[workItem]bool),
		logger:   logger,
	}
	program.Walk(func(op *ir.Operation) {
		s.opIndex[op] = len(s.ops)
		s.ops = append(s.ops, op)
	})
	return s
}

// Register adds an analysis. All analyses must be registered before the
// first Step or Run call.
func (s *Solver) Register(a Analysis) {
	s.byName[a.Name()] = len(s.analyses)
	s.analyses = append(s.analyses, a)
}

// Has reports whether an analysis is registered under the given name.
func (s *Solver) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Run drives the worklist to quiescence. It returns an error only when a
// transfer function reports a contract violation; every other condition is
// locally contained and converges.
func (s *Solver) Run() error {
	for {
		info, err := s.Step()
		if err != nil {
			return err
		}
		if info == nil {
			return nil
		}
	}
}

// StepInfo describes one worklist visit, for callers that drive the solver
// incrementally.
type StepInfo struct {
	Analysis string
	Op       *ir.Operation
	// Changed lists the values whose element moved up during this visit.
	Changed []*ir.Value
}

// Step pops and processes a single worklist item. It returns nil once the
// worklist is empty (global fixpoint reached).
func (s *Solver) Step() (*StepInfo, error) {
	if !s.seeded {
		s.seed()
	}
	if len(s.queue) == 0 {
		return nil, nil
	}

	item := s.queue[0]
	s.queue = s.queue[1:]
	s.pending.clear(s.itemIndex(item))
	s.steps++

	a := s.analyses[item.analysis]
	op := s.ops[item.op]
	ctx := &Context{solver: s, analysis: item.analysis, op: op}

	s.logger.Debug("visit",
		zap.String("analysis", a.Name()),
		zap.String("op", op.Name()),
	)

	if err := a.Visit(ctx, op); err != nil {
		return nil, errors.Wrap(errors.PhaseAnalysis, errors.KindContract, err,
			"analysis "+a.Name()+" aborted at "+op.Name())
	}

	return &StepInfo{Analysis: a.Name(), Op: op, Changed: ctx.changed}, nil
}

// WorklistLen returns the number of pending items.
func (s *Solver) WorklistLen() int {
	if !s.seeded {
		s.seed()
	}
	return len(s.queue)
}

// Steps returns the number of visits performed so far.
func (s *Solver) Steps() int {
	return s.steps
}

// Result returns the current element of the named analysis for a value
// without registering any dependency. Callers inspect final lattices with
// it after Run.
func (s *Solver) Result(analysis string, v *ir.Value) (lattice.Value, error) {
	idx, ok := s.byName[analysis]
	if !ok {
		return nil, errors.InvalidInput(errors.PhaseAnalysis, "analysis "+analysis+" is not registered")
	}
	return s.element(elementKey{analysis: analysis, value: v}, idx), nil
}

// seed enqueues every (analysis, operation) pair once and joins Top into
// every region-argument element: arguments have no producing operation, so
// they take the unconstrained default.
func (s *Solver) seed() {
	s.seeded = true
	s.pending = newBitSet(len(s.analyses) * len(s.ops))

	for ai, a := range s.analyses {
		for _, v := range s.program.Values() {
			if v.IsRegionArg() {
				s.join(elementKey{analysis: a.Name(), value: v}, ai, a.Top(), nil)
			}
		}
	}
	for ai := range s.analyses {
		for oi := range s.ops {
			s.enqueue(workItem{analysis: ai, op: oi})
		}
	}
}

func (s *Solver) itemIndex(item workItem) int {
	return item.analysis*len(s.ops) + item.op
}

func (s *Solver) enqueue(item workItem) {
	idx := s.itemIndex(item)
	if s.pending.has(idx) {
		return
	}
	s.pending.set(idx)
	s.queue = append(s.queue, item)
}

// element returns the stored element for key, creating the owning
// analysis's bottom on first access.
func (s *Solver) element(key elementKey, analysisIdx int) lattice.Value {
	if cur, ok := s.elements[key]; ok {
		return cur
	}
	bottom := s.analyses[analysisIdx].Bottom()
	s.elements[key] = bottom
	return bottom
}

// depend registers item as a dependent of key, so a change to the element
// re-enqueues the item.
func (s *Solver) depend(key elementKey, item workItem) {
	seen := s.depSeen[key]
	if seen == nil {
		seen = make(map[workItem]bool)
		s.depSeen[key] = seen
	}
	if seen[item] {
		return
	}
	seen[item] = true
	s.deps[key] = append(s.deps[key], item)
}

// join applies a proposed join to the element for key. When the element
// changes, every registered dependent is re-enqueued and the value is
// recorded in changed (when non-nil).
func (s *Solver) join(key elementKey, analysisIdx int, proposed lattice.Value, changed *[]*ir.Value) {
	cur := s.element(key, analysisIdx)
	next := cur.Join(proposed)
	if next.Equal(cur) {
		return
	}
	s.elements[key] = next
	s.logger.Debug("join",
		zap.String("analysis", key.analysis),
		zap.String("value", key.value.String()),
		zap.String("from", cur.String()),
		zap.String("to", next.String()),
	)
	if changed != nil {
		*changed = append(*changed, key.value)
	}
	for _, item := range s.deps[key] {
		s.enqueue(item)
	}
}
