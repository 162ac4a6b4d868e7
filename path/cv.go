// Package path: contiguous-fold cross-validation over a lagrange path.
package path

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/proxreg/proxreg/smooth"
)

// LossBuilder constructs the smooth loss under per-case weights.
// CrossValidate calls it twice per fold — once with training weights,
// once with the complementary validation weights — so folds are carved
// out of the full sample without reshaping any data:
//
//	build := func(w []float64) (smooth.Atom, error) {
//		return smooth.LeastSquares(a, b, smooth.WithWeights(w))
//	}
type LossBuilder func(weights []float64) (smooth.Atom, error)

// CVResult reports a cross-validated path.
type CVResult struct {
	// Lambdas is the evaluated sequence (a fresh copy).
	Lambdas []float64

	// Scores is the held-out loss per case, indexed [fold][λ].
	Scores [][]float64

	// Mean averages Scores over folds per λ.
	Mean []float64

	// Best indexes the λ minimizing Mean. Ties keep the earlier, that
	// is the stronger, penalty.
	Best int

	// BestLagrange is Lambdas[Best].
	BestLagrange float64
}

// CrossValidate scores a lagrange sequence by k-fold cross-validation
// with contiguous folds: fold j holds out cases [j·m/k, (j+1)·m/k) via
// zero case weights, fits the full path on the remainder (warm starts
// and Lipschitz carry as in Fit) and evaluates the held-out loss per
// case at every λ. Folds run concurrently under opts.Parallel; each
// fold owns its atoms and solver outright, only plain vectors cross
// the boundary. The first fold error cancels the rest.
func CrossValidate(build LossBuilder, penalty Penalty, lambdas []float64, cases, folds int, opts Options) (CVResult, error) {
	if build == nil {
		return CVResult{}, fmt.Errorf("path: CrossValidate: nil loss builder: %w", ErrNilComponent)
	}
	if penalty == nil {
		return CVResult{}, fmt.Errorf("path: CrossValidate: nil penalty: %w", ErrNilComponent)
	}
	if err := checkSequence(lambdas); err != nil {
		return CVResult{}, err
	}
	if folds < 2 || folds > cases {
		return CVResult{}, fmt.Errorf("path: %d folds over %d cases: %w", folds, cases, ErrBadFolds)
	}

	log := opts.Solver.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx := opts.Solver.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	limit := opts.Parallel
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	scores := make([][]float64, folds)
	for f := range scores {
		scores[f] = make([]float64, len(lambdas))
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for f := 0; f < folds; f++ {
		f := f
		lo, hi := f*cases/folds, (f+1)*cases/folds
		row := scores[f]
		foldLog := log.With(zap.Int("fold", f))
		eg.Go(func() error {
			trainW := make([]float64, cases)
			valW := make([]float64, cases)
			for i := range trainW {
				trainW[i] = 1
			}
			for i := lo; i < hi; i++ {
				trainW[i], valW[i] = 0, 1
			}

			trainLoss, err := build(trainW)
			if err != nil {
				return fmt.Errorf("path: fold %d: %w", f, err)
			}
			valLoss, err := build(valW)
			if err != nil {
				return fmt.Errorf("path: fold %d: %w", f, err)
			}

			fopts := opts
			fopts.Solver.Ctx = gctx
			fopts.Solver.Logger = foldLog
			res, err := Fit(trainLoss, penalty, lambdas, nil, fopts)
			if err != nil {
				return fmt.Errorf("path: fold %d: %w", f, err)
			}

			for j, pt := range res.Points {
				v, err := valLoss.ValueGrad(pt.Coefficients, nil)
				if err != nil {
					return fmt.Errorf("path: fold %d: %w", f, err)
				}
				row[j] = v / float64(hi-lo)
			}

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return CVResult{}, err
	}

	mean := make([]float64, len(lambdas))
	for _, row := range scores {
		floats.Add(mean, row)
	}
	floats.Scale(1/float64(folds), mean)

	best := 0
	for j, v := range mean {
		if v < mean[best] {
			best = j
		}
	}

	log.Info("cross-validation done",
		zap.Int("folds", folds),
		zap.Int("points", len(lambdas)),
		zap.Float64("bestLagrange", lambdas[best]),
		zap.Float64("bestScore", mean[best]))

	return CVResult{
		Lambdas:      append([]float64(nil), lambdas...),
		Scores:       scores,
		Mean:         mean,
		Best:         best,
		BestLagrange: lambdas[best],
	}, nil
}
