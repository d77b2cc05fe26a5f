package classify

// Label is the final classification of a region.
type Label string

const (
	LabelHasRaster Label = "has_raster"
	LabelHasVector Label = "has_vector"
)

// decide runs the ordered rule cascade; the first matching rule wins. The
// cascade is total: rule 7 always resolves, so every input maps to exactly
// one label.
func decide(m Metrics, th Thresholds) Label {
	dpiMin := 0.0
	if m.NativeRaster != nil {
		dpiMin = m.NativeRaster.DPIMin
	}

	// 1. No-raster guard: with essentially no image, any non-trivial
	// vector/text signal (or no images at all) yields vector.
	if m.RasterCoverage <= th.NoRasterMax &&
		(m.EffectiveVectorCoverage >= th.MinVectorSignal ||
			m.TextCoverage >= th.MinTextSignal ||
			m.RasterCount == 0 ||
			m.VectorSegments >= th.MinSegmentsWeak) {
		return LabelHasVector
	}

	// 2. Clear raster margin: raster needs only a tiny edge to win, since
	// missing real photographic art is costlier than a false positive.
	if m.RasterCoverage >= m.EffectiveVectorCoverage+th.RasterMargin {
		return LabelHasRaster
	}

	// 3. Clear vector margin: vector needs a much larger edge because
	// coverage heuristics overstate vector area via panels/backgrounds.
	if m.EffectiveVectorCoverage >= m.RasterCoverage+th.VectorMargin {
		return LabelHasVector
	}

	// 4. Raster-dominant-but-close.
	if m.RasterCoverage >= th.RasterDominantMin && m.EffectiveVectorCoverage <= th.VectorCloseMax {
		return LabelHasRaster
	}

	// 5. Pure-vector safeguard: negligible measured area but clear
	// structural complexity.
	if m.RasterCoverage <= th.PureVectorMax && m.VectorSegments >= th.MinSegmentsStrong {
		return LabelHasVector
	}

	// 6. Low-detail-raster override: a big but low-resolution raster is
	// usually a flat mock-up placeholder, not art.
	if m.VectorSegments >= th.LowDetailSegments &&
		dpiMin > 0 && dpiMin < th.LowDetailDPIFloor &&
		m.RasterCoverage >= th.LowDetailRasterMin {
		return LabelHasVector
	}

	// 7. Default: text shouldn't override a big photo.
	return LabelHasRaster
}
