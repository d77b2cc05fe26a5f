package classify

import (
	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/geom"
)

// NativeRaster describes the effective placed resolution of the dominant
// raster in the analysis region. Placed dimensions come from the
// intersection with the clip, not the full placement.
type NativeRaster struct {
	NativePxW int     `json:"nativePxW"`
	NativePxH int     `json:"nativePxH"`
	PlacedWIn float64 `json:"placedWIn"`
	PlacedHIn float64 `json:"placedHIn"`
	DPIX      float64 `json:"nativeDpiX"`
	DPIY      float64 `json:"nativeDpiY"`
	DPIMin    float64 `json:"nativeDpiMin"`
}

// EstimateNativeResolution finds the image with the largest clip
// intersection (ties: first found) and derives its placed DPI. Returns nil
// when no image overlaps the clip. Unreadable image data degrades to native
// dimensions of zero, which propagates as dpi 0, never an error.
func EstimateNativeResolution(p content.Page, clip geom.Rect) *NativeRaster {
	var best content.Image
	bestArea := 0.0
	for _, img := range p.Images {
		a := img.PlacementRect().Intersect(clip).Area()
		if a > bestArea {
			best = img
			bestArea = a
		}
	}
	if best == nil {
		return nil
	}

	inter := best.PlacementRect().Intersect(clip)
	pxW, pxH := best.NativePixelSize()

	placedWIn := inter.Width() / 72.0
	placedHIn := inter.Height() / 72.0

	var dpiX, dpiY float64
	if placedWIn > 0 {
		dpiX = float64(pxW) / placedWIn
	}
	if placedHIn > 0 {
		dpiY = float64(pxH) / placedHIn
	}
	var dpiMin float64
	if dpiX > 0 && dpiY > 0 {
		dpiMin = min(dpiX, dpiY)
	}

	return &NativeRaster{
		NativePxW: pxW,
		NativePxH: pxH,
		PlacedWIn: placedWIn,
		PlacedHIn: placedHIn,
		DPIX:      dpiX,
		DPIY:      dpiY,
		DPIMin:    dpiMin,
	}
}
