package mock

import (
	"context"

	"github.com/timarques/eucatalog"
)

var (
	_ eucatalog.IconHarvester       = (*IconHarvester)(nil)
	_ eucatalog.VectorCanonicalizer = (*VectorCanonicalizer)(nil)
	_ eucatalog.RasterTracer        = (*RasterTracer)(nil)
)

// IconHarvester is a mock implementation of eucatalog.IconHarvester.
type IconHarvester struct {
	HarvestFn func(ctx context.Context, icons []eucatalog.Icon, mode eucatalog.ExecutionMode) ([]eucatalog.IconAsset, error)
}

func (h *IconHarvester) Harvest(ctx context.Context, icons []eucatalog.Icon, mode eucatalog.ExecutionMode) ([]eucatalog.IconAsset, error) {
	return h.HarvestFn(ctx, icons, mode)
}

// VectorCanonicalizer is a mock implementation of eucatalog.VectorCanonicalizer.
type VectorCanonicalizer struct {
	CanonicalizeFn func(svg []byte) ([]byte, error)
}

func (c *VectorCanonicalizer) Canonicalize(svg []byte) ([]byte, error) {
	return c.CanonicalizeFn(svg)
}

// RasterTracer is a mock implementation of eucatalog.RasterTracer.
type RasterTracer struct {
	TraceFn func(raster []byte) ([]byte, error)
}

func (t *RasterTracer) Trace(raster []byte) ([]byte, error) {
	return t.TraceFn(raster)
}
