package minimap

import "github.com/appengine-ltd/minimap/internal/viewport"

// Transformer accepts a whole transform at once.
type Transformer interface {
	SetTransform(scale, offsetX, offsetY float64)
}

// Mirror keeps a shadow transform in step with the primary viewport: the
// scale is copied verbatim and the offsets are brought into minimap space by
// the fit scale current at the time of the notification.
type Mirror struct {
	shadow   Transformer
	fitScale func() float64
	syncs    int
}

func NewMirror(shadow Transformer, fitScale func() float64) *Mirror {
	return &Mirror{shadow: shadow, fitScale: fitScale}
}

// Sync is registered as a change observer on the primary viewport.
func (m *Mirror) Sync(state viewport.State) {
	if m == nil || m.shadow == nil {
		return
	}
	scale := 1.0
	if m.fitScale != nil {
		scale = m.fitScale()
	}
	m.syncs++
	m.shadow.SetTransform(state.Scale, state.OffsetX*scale, state.OffsetY*scale)
}

// Syncs reports how many notifications have been mirrored.
func (m *Mirror) Syncs() int {
	if m == nil {
		return 0
	}
	return m.syncs
}
