package gm

import (
	"fmt"
	"image"
)

// Rect is an axis aligned rectangle. Min is the top left corner.
type Rect struct {
	Min, Max Vec
}

func RectWithOriginAndSize(origin, size Vec) Rect {
	return Rect{
		Min: origin,
		Max: origin.Add(size),
	}
}

func RectWithCenterAndSize(center, size Vec) Rect {
	half := size.Mul(0.5)
	return Rect{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

func (r Rect) Center() Vec {
	return r.Min.Add(r.Max).Mul(0.5)
}

func (r Rect) Size() Vec {
	return r.Max.Sub(r.Min)
}

func (r Rect) Translate(offset Vec) Rect {
	return Rect{
		Min: r.Min.Add(offset),
		Max: r.Max.Add(offset),
	}
}

func (r Rect) Contains(p Vec) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X &&
		r.Min.Y <= p.Y && p.Y <= r.Max.Y
}

// ClampInside moves the rectangle so that it lies within bounds. If the rectangle
// is larger than bounds, it is aligned to the top left corner of bounds.
func (r Rect) ClampInside(bounds Rect) Rect {
	offset := Vec{
		X: clampOffset(r.Min.X, r.Max.X, bounds.Min.X, bounds.Max.X),
		Y: clampOffset(r.Min.Y, r.Max.Y, bounds.Min.Y, bounds.Max.Y),
	}

	return r.Translate(offset)
}

func clampOffset(lo, hi, boundsLo, boundsHi float64) float64 {
	switch {
	case lo < boundsLo || hi-lo > boundsHi-boundsLo:
		return boundsLo - lo
	case hi > boundsHi:
		return boundsHi - hi
	default:
		return 0
	}
}

func (r Rect) ToImageRectangle() image.Rectangle {
	return image.Rectangle{
		Min: r.Min.ToImagePoint(),
		Max: r.Max.ToImagePoint(),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(min=%s, max=%s)", r.Min, r.Max)
}
