package classify

import "testing"

func metricsWith(raster, vector, text float64, segs, rasters int, dpiMin float64) Metrics {
	m := Metrics{
		RasterCoverage:          raster,
		EffectiveVectorCoverage: vector,
		TextCoverage:            text,
		VectorSegments:          segs,
		RasterCount:             rasters,
	}
	if dpiMin > 0 {
		m.NativeRaster = &NativeRaster{DPIMin: dpiMin}
	}
	return m
}

func TestDecideCascade(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name string
		m    Metrics
		want Label
	}{
		{"no_raster_with_vector_signal", metricsWith(0.01, 0.05, 0, 0, 1, 0), LabelHasVector},
		{"no_raster_with_text_signal", metricsWith(0.0, 0.0, 0.03, 0, 1, 0), LabelHasVector},
		{"no_raster_no_images_at_all", metricsWith(0.0, 0.0, 0.0, 0, 0, 0), LabelHasVector},
		{"no_raster_many_segments", metricsWith(0.02, 0.0, 0.0, 25, 2, 0), LabelHasVector},
		{"clear_raster_margin", metricsWith(0.60, 0.30, 0.1, 10, 1, 300), LabelHasRaster},
		{"clear_vector_margin", metricsWith(0.20, 0.40, 0.3, 10, 1, 300), LabelHasVector},
		{"raster_dominant_but_close", metricsWith(0.25, 0.28, 0.2, 10, 1, 300), LabelHasRaster},
		{"pure_vector_safeguard", metricsWith(0.03, 0.035, 0.0, 50, 1, 0), LabelHasVector},
		{"low_detail_raster_override", metricsWith(0.12, 0.115, 0.115, 25, 1, 10), LabelHasVector},
		{"default_raster_tiebreak", metricsWith(0.10, 0.105, 0.05, 5, 1, 300), LabelHasRaster},
	}
	for _, tt := range tests {
		if got := decide(tt.m, th); got != tt.want {
			t.Errorf("%s: decide = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestDecideIsDeterministicAndTotal(t *testing.T) {
	th := DefaultThresholds()
	coverages := []float64{0, 0.01, 0.02, 0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 0.8, 1.0}
	segments := []int{0, 5, 18, 20, 40, 100}
	for _, rc := range coverages {
		for _, vc := range coverages {
			for _, segs := range segments {
				m := metricsWith(rc, vc, vc, segs, 1, 0)
				first := decide(m, th)
				if first != LabelHasRaster && first != LabelHasVector {
					t.Fatalf("decide returned unknown label %q", first)
				}
				if second := decide(m, th); second != first {
					t.Fatalf("decide not deterministic for %+v: %s then %s", m, first, second)
				}
			}
		}
	}
}

func TestDecideRasterMonotonicity(t *testing.T) {
	// Without the low-DPI override in play, increasing raster coverage can
	// never flip the label from raster back to vector.
	th := DefaultThresholds()
	coverages := []float64{0, 0.01, 0.02, 0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 0.8, 1.0}
	segments := []int{0, 5, 20, 40, 100}
	for _, vc := range coverages {
		for _, segs := range segments {
			sawRaster := false
			for _, rc := range coverages {
				got := decide(metricsWith(rc, vc, vc/2, segs, 1, 0), th)
				if got == LabelHasRaster {
					sawRaster = true
				} else if sawRaster {
					t.Fatalf("raster->vector flip at raster=%v vector=%v segs=%d", rc, vc, segs)
				}
			}
		}
	}
}

func TestDecideVectorMonotonicity(t *testing.T) {
	th := DefaultThresholds()
	coverages := []float64{0, 0.01, 0.02, 0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 0.8, 1.0}
	segments := []int{0, 5, 20, 40, 100}
	dpis := []float64{0, 10, 300}
	for _, rc := range coverages {
		for _, segs := range segments {
			for _, dpi := range dpis {
				sawVector := false
				for _, vc := range coverages {
					got := decide(metricsWith(rc, vc, vc/2, segs, 1, dpi), th)
					if got == LabelHasVector {
						sawVector = true
					} else if sawVector {
						t.Fatalf("vector->raster flip at raster=%v vector=%v segs=%d dpi=%v", rc, vc, segs, dpi)
					}
				}
			}
		}
	}
}

func TestDecideThresholdOverrides(t *testing.T) {
	// Raising the weak segment floor should keep a sparse vector page from
	// passing the no-raster guard on segments alone.
	th := DefaultThresholds()
	m := metricsWith(0.01, 0.0, 0.0, 25, 2, 0)
	if got := decide(m, th); got != LabelHasVector {
		t.Fatalf("default thresholds: got %s, want has_vector", got)
	}
	th.MinSegmentsWeak = 30
	if got := decide(m, th); got != LabelHasRaster {
		t.Errorf("raised MinSegmentsWeak: got %s, want has_raster", got)
	}
}
