package classify

// Thresholds holds every tunable constant of the classifier. The exact
// values have been re-tuned repeatedly against production art files, so each
// one is overridable individually (see config.FromEnv) and testable in
// isolation. DefaultThresholds is the current production tuning.
type Thresholds struct {
	// HairlineWidth is the stroke width at or below which an unfilled
	// drawing is discarded as a guide/template line.
	HairlineWidth float64

	// PanelAreaFraction is the clip-area fraction at which a rectangular
	// shape is treated as a background panel rather than art.
	PanelAreaFraction float64
	// PanelMaxItems is the path-item count at or below which a filled,
	// unstroked shape still qualifies as a panel.
	PanelMaxItems int
	// PanelWeight, RectWeight and ShapeWeight are the area weights for
	// panels, plain rectangles and all other vector shapes.
	PanelWeight float64
	RectWeight  float64
	ShapeWeight float64

	// DrawingWeight damps DrawingCoverage when combined with TextCoverage
	// into the effective vector coverage. Text is never damped.
	DrawingWeight float64

	// TinyIntersectFraction drops drawings whose clip overlap is noise.
	TinyIntersectFraction float64
	// SegmentPanelMinItems: rectangular drawings covering at least
	// PanelAreaFraction of the clip with fewer items than this are skipped
	// by the segment counter as template chrome.
	SegmentPanelMinItems int

	// Decision cascade thresholds, in rule order.
	NoRasterMax        float64 // rule 1: rasterCoverage ceiling
	MinVectorSignal    float64 // rule 1: effective vector floor
	MinTextSignal      float64 // rule 1: text coverage floor
	MinSegmentsWeak    int     // rule 1: segment floor
	RasterMargin       float64 // rule 2: raster wins above vector + margin
	VectorMargin       float64 // rule 3: vector wins above raster + margin
	RasterDominantMin  float64 // rule 4: raster floor
	VectorCloseMax     float64 // rule 4: vector ceiling
	PureVectorMax      float64 // rule 5: raster ceiling
	MinSegmentsStrong  int     // rule 5: segment floor
	LowDetailSegments  int     // rule 6: segment floor
	LowDetailDPIFloor  float64 // rule 6: dpiMin below this marks a flat proof image
	LowDetailRasterMin float64 // rule 6: raster floor
}

// DefaultThresholds returns the current production tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HairlineWidth:         0.25,
		PanelAreaFraction:     0.15,
		PanelMaxItems:         5,
		PanelWeight:           0.05,
		RectWeight:            0.15,
		ShapeWeight:           0.35,
		DrawingWeight:         0.5,
		TinyIntersectFraction: 0.0005,
		SegmentPanelMinItems:  8,
		NoRasterMax:           0.02,
		MinVectorSignal:       0.03,
		MinTextSignal:         0.025,
		MinSegmentsWeak:       20,
		RasterMargin:          0.01,
		VectorMargin:          0.12,
		RasterDominantMin:     0.15,
		VectorCloseMax:        0.30,
		PureVectorMax:         0.03,
		MinSegmentsStrong:     40,
		LowDetailSegments:     18,
		LowDetailDPIFloor:     40,
		LowDetailRasterMin:    0.10,
	}
}
