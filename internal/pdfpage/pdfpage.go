// Package pdfpage parses a single PDF page into the geometric object model
// used by the classifier: placed images, vector drawings and text blocks,
// all in top-left page coordinates.
package pdfpage

import (
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/sofiandread/detect-art-format/internal/content"
	"github.com/sofiandread/detect-art-format/internal/geom"
)

// ErrPageOutOfRange reports a page index beyond the document's page count.
var ErrPageOutOfRange = errors.New("page index out of range")

// Load parses one page of the PDF at path. pageIndex is zero-based.
func Load(path string, pageIndex int) (content.Page, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return content.Page{}, fmt.Errorf("read pdf: %w", err)
	}
	return loadPage(ctx, pageIndex)
}

// PageCount reports the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return ctx.PageCount, nil
}

func loadPage(ctx *model.Context, pageIndex int) (content.Page, error) {
	if pageIndex < 0 || pageIndex >= ctx.PageCount {
		return content.Page{}, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, pageIndex, ctx.PageCount)
	}
	pageDict, _, attrs, err := ctx.PageDict(pageIndex+1, false)
	if err != nil {
		return content.Page{}, fmt.Errorf("page dict: %w", err)
	}

	width, height := 612.0, 792.0 // US Letter fallback
	offX, offY := 0.0, 0.0
	var resDict types.Dict
	if attrs != nil {
		if attrs.MediaBox != nil {
			width, height = attrs.MediaBox.Width(), attrs.MediaBox.Height()
			offX, offY = attrs.MediaBox.LL.X, attrs.MediaBox.LL.Y
		}
		resDict = attrs.Resources
	}

	b := &pageBuilder{pageH: height, offX: offX, offY: offY}
	b.page.Bounds = geom.Rect{X1: width, Y1: height}
	b.walk(pageContent(ctx, pageDict), loadResources(ctx, resDict, 0), newGState(), 0)
	return b.page, nil
}

// pageContent decodes and concatenates the page's content streams. Streams
// that fail to decode are skipped rather than failing the whole page.
func pageContent(ctx *model.Context, pageDict types.Dict) []byte {
	var out []byte
	appendStream := func(o types.Object) {
		sd, _, err := ctx.DereferenceStreamDict(o)
		if err != nil || sd == nil {
			return
		}
		if err := sd.Decode(); err != nil {
			return
		}
		out = append(out, sd.Content...)
		out = append(out, '\n')
	}
	switch v := pageDict["Contents"].(type) {
	case types.IndirectRef:
		appendStream(v)
	case *types.IndirectRef:
		appendStream(*v)
	case types.Array:
		for _, item := range v {
			appendStream(item)
		}
	}
	return out
}

// loadResources resolves the XObject entries of a resource dict. Image
// XObjects keep their native pixel size from the stream dict; a missing or
// unreadable entry leaves the size at zero. Form XObjects are decoded up
// front so the walker can recurse without touching the context again.
func loadResources(ctx *model.Context, resDict types.Dict, depth int) map[string]xobj {
	out := map[string]xobj{}
	if resDict == nil || depth > maxFormDepth {
		return out
	}
	xoObj, found := resDict.Find("XObject")
	if !found {
		return out
	}
	xoDict, err := ctx.DereferenceDict(xoObj)
	if err != nil || xoDict == nil {
		return out
	}
	for name, ref := range xoDict {
		sd, _, err := ctx.DereferenceStreamDict(ref)
		if err != nil || sd == nil {
			continue
		}
		subtype := ""
		if n, ok := sd.Dict["Subtype"].(types.Name); ok {
			subtype = string(n)
		}
		switch subtype {
		case "Image":
			x := xobj{kind: xobjImage}
			if p := sd.IntEntry("Width"); p != nil {
				x.width = *p
			}
			if p := sd.IntEntry("Height"); p != nil {
				x.height = *p
			}
			out[name] = x
		case "Form":
			if err := sd.Decode(); err != nil {
				continue
			}
			x := xobj{kind: xobjForm, stream: sd.Content, mtx: identityMatrix()}
			if arr, ok := sd.Dict["Matrix"].(types.Array); ok && len(arr) == 6 {
				x.mtx = matrix{
					a: objFloat(arr[0]), b: objFloat(arr[1]),
					c: objFloat(arr[2]), d: objFloat(arr[3]),
					e: objFloat(arr[4]), f: objFloat(arr[5]),
				}
			}
			if innerObj, ok := sd.Dict.Find("Resources"); ok {
				if inner, err := ctx.DereferenceDict(innerObj); err == nil {
					x.res = loadResources(ctx, inner, depth+1)
				}
			}
			out[name] = x
		}
	}
	return out
}

func objFloat(o types.Object) float64 {
	switch v := o.(type) {
	case types.Integer:
		return float64(v)
	case types.Float:
		return v.Value()
	}
	return 0
}
