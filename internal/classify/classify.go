// Package classify decides whether a rectangular region of a PDF page is
// dominated by raster (bitmap) content or by vector/text content. It
// consumes the page's geometric primitives through internal/content and
// never touches the document itself.
package classify

import (
	"github.com/rs/zerolog/log"

	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/geom"
)

// Metrics is the per-request measurement record. Created fresh per
// classification; not persisted.
type Metrics struct {
	Region                  string        `json:"region"`
	RasterCoverage          float64       `json:"rasterCoverage"`
	TextCoverage            float64       `json:"textCoverage"`
	DrawingCoverage         float64       `json:"drawingCoverage"`
	EffectiveVectorCoverage float64       `json:"effectiveVectorCoverage"`
	VectorSegments          int           `json:"vectorSegments"`
	RasterCount             int           `json:"rasterCount"`
	NativeRaster            *NativeRaster `json:"nativeRaster,omitempty"`
}

// Engine runs the full classification pipeline with a fixed set of
// thresholds. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	th Thresholds
}

// NewEngine builds an Engine. Zero-value thresholds make no sense, so the
// caller passes an explicit set (usually DefaultThresholds, possibly with
// env overrides applied).
func NewEngine(th Thresholds) *Engine {
	return &Engine{th: th}
}

// Thresholds returns the engine's tuning, for reporting.
func (e *Engine) Thresholds() Thresholds { return e.th }

// Classify measures the requested region of the page and resolves it to a
// binary label. It is a total function over a well-formed page: malformed
// clip parameters fall back to the default region and degenerate clips
// yield zero coverage.
func (e *Engine) Classify(p content.Page, req ClipRequest) (Label, Metrics) {
	clip, explicit := SelectRegion(p.Bounds, req)

	region := "bottom-half"
	if explicit {
		region = "clip"
	}

	text := textCoverage(p, clip)
	drawing := drawingCoverage(p, clip, e.th)

	m := Metrics{
		Region:                  region,
		RasterCoverage:          rasterCoverage(p, clip),
		TextCoverage:            text,
		DrawingCoverage:         drawing,
		EffectiveVectorCoverage: effectiveVectorCoverage(text, drawing, e.th),
		VectorSegments:          countVectorSegments(p, clip, e.th),
		RasterCount:             len(p.Images),
		NativeRaster:            EstimateNativeResolution(p, clip),
	}

	label := decide(m, e.th)

	log.Debug().
		Str("region", m.Region).
		Float64("raster_coverage", m.RasterCoverage).
		Float64("effective_vector_coverage", m.EffectiveVectorCoverage).
		Int("vector_segments", m.VectorSegments).
		Int("raster_count", m.RasterCount).
		Str("label", string(label)).
		Msg("region classified")

	return label, m
}

// EstimateNativeResolution exposes the DPI estimator over an explicit clip,
// for callers that resolved the region themselves.
func (e *Engine) EstimateNativeResolution(p content.Page, clip geom.Rect) *NativeRaster {
	return EstimateNativeResolution(p, clip)
}
