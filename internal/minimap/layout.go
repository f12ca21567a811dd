package minimap

import (
	"github.com/appengine-ltd/minimap/internal/geom"
	"github.com/appengine-ltd/minimap/internal/viewport"
)

// Geometry is everything a frontend needs to draw the minimap, in
// minimap-local pixels.
//
// The wrapper keeps the content at natural size and shrinks it visually with
// WrapperTransform. MainSize is the footprint the minimap occupies on screen.
// The preview rectangle sits at PreviewOffset inside the main box, unscaled.
type Geometry struct {
	WrapperTransform string
	WrapperSize      geom.Size
	MainSize         geom.Size

	FitScale         float64
	PreviewScale     float64
	PreviewOffset    geom.Point
	PreviewTransform string
	PreviewSize      geom.Size
}

// Layout derives the minimap geometry from a fit result and the primary
// transform. The preview rectangle covers the whole content at the fit scale
// divided by the current zoom, so it shrinks as the user zooms in.
func Layout(fit FitResult, vp viewport.State, content geom.Size) Geometry {
	fitScale := geom.Finite(fit.Scale, 1)
	previewScale := geom.Finite(fitScale*(1/vp.Scale), 1)

	offset := geom.Point{
		X: -vp.OffsetX * previewScale,
		Y: -vp.OffsetY * previewScale,
	}
	return Geometry{
		WrapperTransform: viewport.TransformString(0, 0, fitScale),
		WrapperSize:      content,
		MainSize:         fit.Size(),
		FitScale:         fitScale,
		PreviewScale:     previewScale,
		PreviewOffset:    offset,
		PreviewTransform: viewport.TransformString(offset.X, offset.Y, 1),
		PreviewSize:      content.Scale(previewScale),
	}
}
