package solver

// Status is the solver's life-cycle state.
//
//   - Initialized — a starting point is armed (Reset was called) but no
//     iteration has run yet; also the state after an aborted run
//     (context cancellation), which must be re-armed with Reset.
//   - Running     — iterations in flight; only visible from Status()
//     while Run executes, never on a Result.
//   - Converged   — the relative change fell below Tol on MinIts
//     consecutive iterations.
//   - MaxIterations — the iteration budget (MaxIts, or the wall-clock
//     Timeout) ran out first. A normal terminal state, not an error:
//     the caller inspects Result.Status and decides.
//   - Stagnated   — MaxRestarts consecutive momentum restarts fired
//     without objective progress; Result carries the best iterate seen.
type Status int

const (
	// Initialized: armed with a starting point, no iterations yet.
	Initialized Status = iota

	// Running: Run is iterating.
	Running

	// Converged: relative change stayed below Tol for MinIts iterations.
	Converged

	// MaxIterations: iteration or wall-clock budget exhausted.
	MaxIterations

	// Stagnated: restart ceiling hit without progress; best iterate returned.
	Stagnated
)

// String renders the status for logs and test failure messages.
func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Converged:
		return "converged"
	case MaxIterations:
		return "max-iterations"
	case Stagnated:
		return "stagnated"
	default:
		return "unknown"
	}
}

// Criterion selects the quantity whose relative change drives the
// convergence test.
//
//   - CriterionObjective — |F_prev − F_next| / max(1, |F_prev|), with F
//     the total (smooth + nonsmooth) objective. The default.
//   - CriterionIterate   — ‖x_next − x_prev‖₂ / max(1, ‖x_prev‖₂).
//     Useful when the objective plateaus early but coefficients still move.
type Criterion int

const (
	// CriterionObjective: relative objective change (default).
	CriterionObjective Criterion = iota

	// CriterionIterate: relative iterate displacement.
	CriterionIterate
)

// String renders the criterion for logs.
func (c Criterion) String() string {
	switch c {
	case CriterionObjective:
		return "objective"
	case CriterionIterate:
		return "iterate"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Run.
//
// Coefficients is a fresh copy owned by the caller. The restart policy
// discards any candidate that would raise the objective, so accepted
// iterates are monotone and the terminal iterate is also the best seen
// — including on Stagnated runs. Lipschitz is the final backtracked
// estimate; feed it into the next warm-started run of a related problem
// to skip re-discovery.
type Result struct {
	// Coefficients is the terminal (and best-seen) iterate.
	Coefficients []float64

	// Objective is the total objective at Coefficients.
	Objective float64

	// Iterations is the number of accepted iterations (restart
	// iterations included, backtracking retrials not).
	Iterations int

	// Restarts counts momentum resets over the whole run.
	Restarts int

	// Lipschitz is the final step-size estimate after backtracking.
	Lipschitz float64

	// Status is the terminal state: Converged, MaxIterations or Stagnated.
	Status Status
}
