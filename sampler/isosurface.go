package sampler

import (
	"context"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/marchingcubes"
	"github.com/voxelfield/isomesh/model"
)

// IsoSurface runs SampleField and polygonizes the result at iso in one
// call. extractorOpts configure the marchingcubes.Extractor (e.g.
// marchingcubes.WithNormals) the same way they would if the caller built
// one directly; the worker limit defaults to the Sampler's own unless
// overridden.
//
// Cancelling ctx aborts whichever phase (sampling or extraction) is in
// flight and returns ierrors.ErrCancelled; no partial Mesh is returned in
// that case.
func (s *Sampler[T]) IsoSurface(ctx context.Context, m *model.Model[T], outputName string, iso T, extractorOpts ...marchingcubes.Option[T]) (*geom.Mesh[T], error) {
	field, err := s.SampleField(ctx, m, outputName)
	if err != nil {
		return nil, err
	}

	opts := append([]marchingcubes.Option[T]{marchingcubes.WithWorkerLimit[T](s.workerLimit), marchingcubes.WithLogger[T](s.logger)}, extractorOpts...)
	extractor := marchingcubes.New(opts...)
	return extractor.ExtractSparse(ctx, field, iso)
}
