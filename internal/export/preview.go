package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// WritePreview writes an 8-bit PNG rendering of an RGBA float buffer for
// eyeballing a bake. RGB channels are normalized over the buffer's value
// range; alpha is clamped to [0, 1]. The PNG is lossy by construction and
// never a substitute for the float texture.
func (e *Exporter) WritePreview(name string, buf []float32, width, height int) (string, error) {
	lo, hi := rgbRange(buf)
	scale := float32(0)
	if hi > lo {
		scale = 255 / (hi - lo)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*width + x) * 4
			img.SetRGBA(x, y, color.RGBA{
				R: toByte((buf[off+0] - lo) * scale),
				G: toByte((buf[off+1] - lo) * scale),
				B: toByte((buf[off+2] - lo) * scale),
				A: toByte(buf[off+3] * 255),
			})
		}
	}

	path := e.PreviewPath(name)
	err := e.atomic(path, func(f *os.File) error {
		return png.Encode(f, img)
	})
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return path, nil
}

// rgbRange finds the min and max over the RGB channels, ignoring alpha.
func rgbRange(buf []float32) (lo, hi float32) {
	for i := 0; i+3 < len(buf); i += 4 {
		for c := 0; c < 3; c++ {
			v := buf[i+c]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
