package gesture

import (
	"errors"
	"fmt"
)

// Landmark indices per the standard 21-point hand layout: wrist at 0, then
// four joints per finger ending in the tip. The extractor reads only the
// wrist and the five tips; the rest travel through untouched.
const (
	Wrist     = 0
	ThumbTip  = 4
	IndexTip  = 8
	MiddleTip = 12
	RingTip   = 16
	PinkyTip  = 20

	LandmarkCount = 21
)

// Point is a 2D landmark position in normalized image coordinates
type Point struct {
	X, Y float64
}

// Frame is one detected hand's full landmark set
type Frame [LandmarkCount]Point

// IndexedPoint pairs a landmark index with its position, the sparse form
// crossing the detector boundary
type IndexedPoint struct {
	Index int
	Point Point
}

var ErrMissingLandmark = errors.New("missing required landmark")

// required lists the landmarks the extractor cannot do without
var required = [...]int{Wrist, ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// FrameFromPoints assembles a frame from sparse indexed points. Out-of-range
// indices and frames missing the wrist or any fingertip are rejected here so
// downstream extraction can assume well-formed input.
func FrameFromPoints(pts []IndexedPoint) (Frame, error) {
	var f Frame
	var seen [LandmarkCount]bool

	for _, ip := range pts {
		if ip.Index < 0 || ip.Index >= LandmarkCount {
			return Frame{}, fmt.Errorf("landmark index %d out of range [0, %d)", ip.Index, LandmarkCount)
		}
		f[ip.Index] = ip.Point
		seen[ip.Index] = true
	}

	for _, idx := range required {
		if !seen[idx] {
			return Frame{}, fmt.Errorf("%w: index %d", ErrMissingLandmark, idx)
		}
	}

	return f, nil
}

// Points flattens the frame back to the sparse boundary form, all landmarks included
func (f Frame) Points() []IndexedPoint {
	pts := make([]IndexedPoint, LandmarkCount)
	for i := range f {
		pts[i] = IndexedPoint{Index: i, Point: f[i]}
	}
	return pts
}
