// Package formats provides codecs for vatbake file containers.
// VATF is the floating-point image container used for baked
// vertex-animation maps.
package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// VATF format errors.
var (
	ErrInvalidVATFMagic       = errors.New("invalid VATF magic: expected 'VATF'")
	ErrUnsupportedVATFVersion = errors.New("unsupported VATF version")
	ErrTruncatedVATFData      = errors.New("truncated VATF data")
	ErrVATFSizeMismatch       = errors.New("VATF sample count does not match dimensions")
)

// VATFVersion is the container version written by this package.
const VATFVersion = 1

const vatfMagic = "VATF"

// VATF is a floating-point image: Width*Height pixels of Channels
// float32 samples each, row-major from row 0.
type VATF struct {
	Version  uint8
	Width    uint32
	Height   uint32
	Channels uint32
	Data     []float32
}

// At returns the samples of the pixel at (x, y).
func (v *VATF) At(x, y int) []float32 {
	i := (y*int(v.Width) + x) * int(v.Channels)
	return v.Data[i : i+int(v.Channels)]
}

// ParseVATF parses a VATF container from raw bytes.
func ParseVATF(data []byte) (*VATF, error) {
	if len(data) < 17 {
		return nil, ErrTruncatedVATFData
	}
	if string(data[0:4]) != vatfMagic {
		return nil, ErrInvalidVATFMagic
	}
	v := &VATF{Version: data[4]}
	if v.Version != VATFVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVATFVersion, v.Version)
	}
	v.Width = binary.LittleEndian.Uint32(data[5:9])
	v.Height = binary.LittleEndian.Uint32(data[9:13])
	v.Channels = binary.LittleEndian.Uint32(data[13:17])

	count := int(v.Width) * int(v.Height) * int(v.Channels)
	if len(data) < 17+count*4 {
		return nil, fmt.Errorf("%w: want %d samples, have %d bytes of payload",
			ErrTruncatedVATFData, count, len(data)-17)
	}
	v.Data = make([]float32, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint32(data[17+i*4:])
		v.Data[i] = math.Float32frombits(bits)
	}
	return v, nil
}

// WriteVATF writes a VATF container. data must hold exactly
// width*height*channels samples.
func WriteVATF(w io.Writer, width, height, channels int, data []float32) error {
	if len(data) != width*height*channels {
		return fmt.Errorf("%w: %dx%dx%d != %d samples",
			ErrVATFSizeMismatch, width, height, channels, len(data))
	}
	header := make([]byte, 17)
	copy(header, vatfMagic)
	header[4] = VATFVersion
	binary.LittleEndian.PutUint32(header[5:], uint32(width))
	binary.LittleEndian.PutUint32(header[9:], uint32(height))
	binary.LittleEndian.PutUint32(header[13:], uint32(channels))
	if _, err := w.Write(header); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}
