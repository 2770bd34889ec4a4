// Package layout maps (point, frame) pairs onto texture pixel coordinates
// and encodes the header pixel that lets a decoder recover the mapping.
package layout

import (
	"errors"
	"fmt"
)

// Mode selects the pixel ordering of baked maps.
type Mode int

const (
	// Linear lays points out along X and frames along Y, one frame per row.
	Linear Mode = iota
	// Morton lays pixels out in z-order for texture-cache locality.
	Morton
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Linear:
		return "linear"
	case Morton:
		return "morton"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Hard limits carried over from the 8k-texture target runtime.
const (
	// MaxPointCount is the largest representable point count.
	MaxPointCount = 4096 * 4095
	// MaxFrameCount is the largest representable frame count.
	MaxFrameCount = 4096
	// DefaultMaxArea is the default pixel-area ceiling (8k x 8k).
	DefaultMaxArea = 8192 * 8192
)

// ErrLayoutOverflow reports that the requested point and frame counts do
// not fit the permitted image area.
var ErrLayoutOverflow = errors.New("layout overflow")

// Layout is an immutable bijection from (point, frame) pairs onto pixels
// of a Width x Height image, with pixel (0,0) reserved for the header.
type Layout struct {
	Mode   Mode
	Width  int
	Height int
	Points int
	Frames int
}

// Plan selects the smallest image dimensions that hold points*frames data
// pixels plus the header pixel. maxArea <= 0 selects DefaultMaxArea.
func Plan(points, frames int, mode Mode, maxArea int) (*Layout, error) {
	if points < 1 || frames < 1 {
		return nil, fmt.Errorf("invalid counts: %d points, %d frames", points, frames)
	}
	if maxArea <= 0 {
		maxArea = DefaultMaxArea
	}
	if points > MaxPointCount {
		return nil, fmt.Errorf("%w: %d points exceeds limit of %d", ErrLayoutOverflow, points, MaxPointCount)
	}
	if frames > MaxFrameCount {
		return nil, fmt.Errorf("%w: %d frames exceeds limit of %d", ErrLayoutOverflow, frames, MaxFrameCount)
	}

	need := points*frames + 1
	if need > maxArea {
		return nil, fmt.Errorf("%w: %d pixels needed (header + %d x %d), ceiling is %d",
			ErrLayoutOverflow, need, points, frames, maxArea)
	}

	l := &Layout{Mode: mode, Points: points, Frames: frames}
	switch mode {
	case Morton:
		// Morton codes 0..side^2-1 tile a side x side square exactly, so
		// the smallest power-of-two side whose square holds every code
		// keeps all pixels in bounds.
		side := 1
		for side*side < need {
			side <<= 1
		}
		l.Width, l.Height = side, side
	default:
		// Row 0 is the header row; each frame is one full row of points.
		l.Width, l.Height = points, frames+1
	}
	if l.Width*l.Height > maxArea {
		return nil, fmt.Errorf("%w: %dx%d image exceeds ceiling of %d pixels",
			ErrLayoutOverflow, l.Width, l.Height, maxArea)
	}
	return l, nil
}

// HeaderCoord returns the reserved header pixel coordinate.
func (l *Layout) HeaderCoord() (x, y int) {
	return 0, 0
}

// Coord returns the pixel coordinate of the given point and frame indices.
// point must be in [0, Points) and frame in [0, Frames).
func (l *Layout) Coord(point, frame int) (x, y int) {
	if l.Mode == Morton {
		code := uint32(1 + point + frame*l.Points)
		return int(MortonX(code)), int(MortonY(code))
	}
	return point, frame + 1
}

// Index returns the row-major pixel offset of the given point and frame.
func (l *Layout) Index(point, frame int) int {
	x, y := l.Coord(point, frame)
	return y*l.Width + x
}
