// SPDX-License-Identifier: MIT

// Package core: functional configuration for hierarchy assembly
// (MakeBoson/MakeFermion/MakeBosonFermion), Evolve, EvolveODE and
// SteadyState. Mirrors the project-wide convention: Option/Options with
// unexported state, documented Default* constants as the single source of
// truth, WithX constructors that panic on nonsensical values, and a
// gatherOptions helper resolving the final configuration.
package core

import (
	"math"

	"github.com/katalvlaran/heom/cmat"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultWorkers, when <= 0, means "use runtime.GOMAXPROCS(0)".
	DefaultWorkers = 0

	// DefaultVerbose controls whether hierarchy assembly reports progress to
	// the sink installed by WithProgress; nothing is reported without a sink.
	DefaultVerbose = false

	// DefaultExpmThreshold is the truncated Taylor series convergence
	// threshold τ for the matrix-exponential propagator.
	DefaultExpmThreshold = 1e-6

	// DefaultDropTolerance ε prunes near-zero entries during exponential
	// accumulation to keep the propagator sparse.
	DefaultDropTolerance = 1e-14

	// DefaultExpmMaxTerms bounds the truncated Taylor series iteration cap.
	DefaultExpmMaxTerms = 200

	// DefaultRTol is the ODE integrator's default relative tolerance.
	DefaultRTol = 1e-6

	// DefaultATol is the ODE integrator's default absolute tolerance.
	DefaultATol = 1e-8

	// DefaultMaxSteps is the ODE integrator's default step budget.
	DefaultMaxSteps = 100000

	// DefaultSolverTol is the steady-state solver's default residual
	// tolerance.
	DefaultSolverTol = 1e-9
)

const (
	panicWorkersInvalid   = "core: WithWorkers: n must be >= 0"
	panicThresholdInvalid = "core: WithThreshold: threshold must be finite and > 0"
	panicTolInvalid       = "core: tolerance must be finite and >= 0"
)

// ---------- Assemble options ----------

// Option mutates assembly configuration. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective Assemble configuration after applying
// Option setters.
type Options struct {
	workers  int
	verbose  bool
	progress func(Progress)
}

// WithWorkers sets the fork-join worker count for hierarchy assembly.
// n==0 restores the default (runtime.GOMAXPROCS(0)); a negative n panics.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithVerbose enables best-effort progress reporting to the default sink
// (a no-op unless WithProgress is also given).
func WithVerbose() Option {
	return func(o *Options) { o.verbose = true }
}

// WithProgress installs a progress sink, called only when WithVerbose is
// also given. A panic in the sink is recovered and never propagated; calls
// are made synchronously from the assembly workers.
func WithProgress(fn func(Progress)) Option {
	return func(o *Options) { o.progress = fn }
}

func defaultOptions() Options {
	return Options{workers: DefaultWorkers, verbose: DefaultVerbose}
}

func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		set(&o)
	}

	return o
}

func (o Options) report(p Progress) {
	if !o.verbose || o.progress == nil {
		return
	}
	defer func() { _ = recover() }() // progress sink errors are never fatal
	o.progress(p)
}

// ---------- Evolve (matrix-exponential propagator) options ----------

// EvolveOption mutates Evolve configuration.
type EvolveOption func(*EvolveOptions)

// EvolveOptions stores the effective Evolve configuration.
type EvolveOptions struct {
	threshold float64
	dropTol   float64
	maxTerms  int
	sink      Sink
}

// WithThreshold sets the truncated-series convergence threshold τ.
func WithThreshold(tau float64) EvolveOption {
	if isNonFinite(tau) || tau <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *EvolveOptions) { o.threshold = tau }
}

// WithDropTolerance sets the sparsity-preserving drop tolerance ε.
func WithDropTolerance(eps float64) EvolveOption {
	if isNonFinite(eps) || eps < 0 {
		panic(panicTolInvalid)
	}

	return func(o *EvolveOptions) { o.dropTol = eps }
}

// WithCheckpoint installs a checkpoint sink; saved ADO vectors are streamed
// to it after each saved time point. Sink write failures are fatal.
func WithCheckpoint(sink Sink) EvolveOption {
	return func(o *EvolveOptions) { o.sink = sink }
}

func defaultEvolveOptions() EvolveOptions {
	return EvolveOptions{
		threshold: DefaultExpmThreshold,
		dropTol:   DefaultDropTolerance,
		maxTerms:  DefaultExpmMaxTerms,
	}
}

func gatherEvolveOptions(user ...EvolveOption) EvolveOptions {
	o := defaultEvolveOptions()
	for _, set := range user {
		set(&o)
	}

	return o
}

// ---------- EvolveODE options ----------

// ODEOption mutates EvolveODE configuration.
type ODEOption func(*ODEOptions)

// HamiltonianUpdate writes the full system Hamiltonian H(t) at time t into
// the pre-allocated d×d buffer out. EvolveODE lifts it to
// L_t(t) = -i·(spre(H(t)) - spost(H(t))) on every diagonal block, on top of
// an L0 from which the assembled system Liouvillian has been removed.
type HamiltonianUpdate func(t float64, out *cmat.Dense) error

// ODEOptions stores the effective EvolveODE configuration.
type ODEOptions struct {
	rtol     float64
	atol     float64
	maxSteps int
	hUpdate  HamiltonianUpdate
	sink     Sink
	solver   Integrator
}

// WithRTol sets the integrator's relative tolerance.
func WithRTol(rtol float64) ODEOption {
	if isNonFinite(rtol) || rtol <= 0 {
		panic("core: WithRTol: rtol must be finite and > 0")
	}

	return func(o *ODEOptions) { o.rtol = rtol }
}

// WithATol sets the integrator's absolute tolerance.
func WithATol(atol float64) ODEOption {
	if isNonFinite(atol) || atol < 0 {
		panic(panicTolInvalid)
	}

	return func(o *ODEOptions) { o.atol = atol }
}

// WithMaxSteps bounds the integrator's step budget.
func WithMaxSteps(n int) ODEOption {
	if n <= 0 {
		panic("core: WithMaxSteps: n must be > 0")
	}

	return func(o *ODEOptions) { o.maxSteps = n }
}

// WithTimeDependentHamiltonian installs the update hook recomputing L_t(t)
// before each RHS evaluation.
func WithTimeDependentHamiltonian(fn HamiltonianUpdate) ODEOption {
	return func(o *ODEOptions) { o.hUpdate = fn }
}

// WithODECheckpoint installs a checkpoint sink for EvolveODE.
func WithODECheckpoint(sink Sink) ODEOption {
	return func(o *ODEOptions) { o.sink = sink }
}

// WithIntegrator overrides the default adaptive integrator.
func WithIntegrator(in Integrator) ODEOption {
	return func(o *ODEOptions) { o.solver = in }
}

func defaultODEOptions() ODEOptions {
	return ODEOptions{rtol: DefaultRTol, atol: DefaultATol, maxSteps: DefaultMaxSteps}
}

func gatherODEOptions(user ...ODEOption) ODEOptions {
	o := defaultODEOptions()
	for _, set := range user {
		set(&o)
	}
	if o.solver == nil {
		o.solver = DefaultIntegrator{}
	}

	return o
}

// ---------- SteadyState options ----------

// SolveOption mutates SteadyState configuration.
type SolveOption func(*SolveOptions)

// SolveOptions stores the effective SteadyState configuration.
type SolveOptions struct {
	tol    float64
	solver Solver
}

// WithSolverTolerance sets the residual tolerance the default solver checks
// against before returning ErrSolverResidual.
func WithSolverTolerance(tol float64) SolveOption {
	if isNonFinite(tol) || tol < 0 {
		panic(panicTolInvalid)
	}

	return func(o *SolveOptions) { o.tol = tol }
}

// WithSolver overrides the default dense solver with a custom external
// sparse linear solver.
func WithSolver(s Solver) SolveOption {
	return func(o *SolveOptions) { o.solver = s }
}

func defaultSolveOptions() SolveOptions {
	return SolveOptions{tol: DefaultSolverTol}
}

func gatherSolveOptions(user ...SolveOption) SolveOptions {
	o := defaultSolveOptions()
	for _, set := range user {
		set(&o)
	}
	if o.solver == nil {
		o.solver = DefaultSolver{}
	}

	return o
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
