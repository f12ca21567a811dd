package minimap

import (
	"math"

	"github.com/appengine-ltd/minimap/internal/geom"
)

// FitResult is the uniform scale that fits content into the minimap box and
// the footprint that results. Exactly one fitted side equals its target side
// unless the content and the box share an aspect ratio.
type FitResult struct {
	Scale        float64
	FittedWidth  float64
	FittedHeight float64
}

func (f FitResult) Size() geom.Size {
	return geom.Size{Width: f.FittedWidth, Height: f.FittedHeight}
}

// Fit computes the aspect-preserving scale mapping content into target. The
// smaller of the two axis ratios binds. Content with a zero side, or any
// ratio that is not a positive finite number, falls back to scale 1 with the
// target box as the footprint.
func Fit(content, target geom.Size) FitResult {
	fallback := FitResult{Scale: 1, FittedWidth: target.Width, FittedHeight: target.Height}
	if !(content.Width > 0) || !(content.Height > 0) {
		return fallback
	}
	scaleX := target.Width / content.Width
	scaleY := target.Height / content.Height

	var res FitResult
	if scaleY > scaleX {
		res = FitResult{Scale: scaleX, FittedWidth: target.Width, FittedHeight: content.Height * scaleX}
	} else {
		res = FitResult{Scale: scaleY, FittedWidth: content.Width * scaleY, FittedHeight: target.Height}
	}
	if !(geom.Finite(res.Scale, 0) > 0) || !finite(res.FittedWidth) || !finite(res.FittedHeight) {
		return fallback
	}
	return res
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
