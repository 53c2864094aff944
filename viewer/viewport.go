// Package viewer owns the page screen: viewport/scroll geometry, the
// back/forward page stack, and the Bubble Tea model that renders the active
// document.
package viewer

import (
	"math"

	"manview/man/doc"
)

// MinThumbSize is the default smallest scrollbar thumb, so it stays grabbable
// on very long documents.
const MinThumbSize = 20

// ScrollMarginLines is the default scroll-into-view margin, in line advances.
const ScrollMarginLines = 3

// Viewport maps between document pixels, scrollbar thumb pixels, and the
// visible window. All assignments clamp silently; Changed reports whether the
// last mutation actually moved anything, feeding the redraw dirty flag.
type Viewport struct {
	Height    int // viewport height in pixels
	DocHeight int // document height in pixels
	MinThumb  int // minimum thumb size in pixels

	Scroll int // pixels from the document top
}

// ClampScroll returns p limited to the valid scroll range
// [0, max(DocHeight-Height, 0)].
func (v *Viewport) ClampScroll(p int) int {
	limit := v.DocHeight - v.Height
	if limit < 0 {
		limit = 0
	}
	if p < 0 {
		return 0
	}
	if p > limit {
		return limit
	}
	return p
}

// SetScroll assigns a clamped scroll position and reports whether it changed.
func (v *Viewport) SetScroll(p int) bool {
	p = v.ClampScroll(p)
	if p == v.Scroll {
		return false
	}
	v.Scroll = p
	return true
}

// ThumbSize returns the scrollbar thumb height, clamped between the minimum
// thumb size and the viewport height.
func (v *Viewport) ThumbSize() int {
	minThumb := v.MinThumb
	if minThumb <= 0 {
		minThumb = MinThumbSize
	}
	size := 0
	if v.DocHeight > 1 {
		size = int(float64(v.Height) / float64(v.DocHeight-1) * float64(v.Height))
	}
	if size < minThumb {
		size = minThumb
	}
	if size > v.Height {
		size = v.Height
	}
	return size
}

// ThumbPosition maps the current scroll position to the thumb's top edge.
func (v *Viewport) ThumbPosition() int {
	track := v.DocHeight - v.Height
	if track <= 0 {
		return 0
	}
	return int(math.Round(float64(v.Scroll) / float64(track) * float64(v.Height-v.ThumbSize())))
}

// ScrollForThumb is the inverse mapping: the scroll position for a dragged
// thumb top edge.
func (v *Viewport) ScrollForThumb(thumbPos int) int {
	room := v.Height - v.ThumbSize()
	if room <= 0 {
		return 0
	}
	return int(float64(thumbPos) / float64(room) * float64(v.DocHeight-v.Height))
}

// ScrollIntoView picks a scroll position that keeps r visible with the given
// margin, preferring the supplied position when r is already in view.
func (v *Viewport) ScrollIntoView(r doc.Rect, preferred, margin int) int {
	if r.Y-margin < preferred {
		return v.ClampScroll(r.Y - margin)
	}
	if r.Y2+margin > preferred+v.Height {
		return v.ClampScroll(r.Y2 - v.Height + margin)
	}
	return preferred
}
