package sampler

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// Config parameterizes a Sampler's bounds, grid, and block hierarchy.
type Config[T numeric.Scalar] struct {
	Bounds        geom.BoundingBox[T]
	CellSize      T
	InternalSize  int
	LeafSize      int
	JoinTolerance T

	// MaxActiveLeaves caps the number of leaves the fine pass may
	// allocate; 0 means unlimited.
	MaxActiveLeaves int

	// PilotSamples adds this many extra stratified interior samples per
	// block, on top of the fixed corners+center scheme, for models that
	// are not known to be 1-Lipschitz and might otherwise slip thin
	// features past the prune test. 0 disables pilot sampling.
	PilotSamples int
}

func (c Config[T]) validate() error {
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell size %v must be positive", ierrors.ErrInvalidCellSize, c.CellSize)
	}
	if c.JoinTolerance < 0 {
		return fmt.Errorf("%w: join tolerance %v must be non-negative", ierrors.ErrInvalidBlockSize, c.JoinTolerance)
	}
	return nil
}

// Sampler orchestrates coarse-then-fine sampling of an implicit model
// into a sparse.Field.
type Sampler[T numeric.Scalar] struct {
	cfg         Config[T]
	logger      *slog.Logger
	workerLimit int
}

// Option configures a Sampler.
type Option[T numeric.Scalar] func(*Sampler[T])

// WithConfig sets the sampler's bounds/grid/block configuration.
func WithConfig[T numeric.Scalar](cfg Config[T]) Option[T] {
	return func(s *Sampler[T]) { s.cfg = cfg }
}

// WithLogger overrides the default logger (slog.Default()).
func WithLogger[T numeric.Scalar](logger *slog.Logger) Option[T] {
	return func(s *Sampler[T]) { s.logger = logger }
}

// WithWorkerLimit bounds the number of concurrent goroutines used during
// sampling. The default is runtime.GOMAXPROCS(0).
func WithWorkerLimit[T numeric.Scalar](n int) Option[T] {
	return func(s *Sampler[T]) { s.workerLimit = n }
}

// New constructs a Sampler. Bounds/grid configuration must be supplied via
// WithConfig before calling SampleField.
func New[T numeric.Scalar](opts ...Option[T]) *Sampler[T] {
	s := &Sampler[T]{
		logger:      slog.Default(),
		workerLimit: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
