// Package rom decodes the marker geometry of NDI .rom rigid body definition files.
package rom

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/rajkundu/romparser/internal/binary"
)

// Layout of the parts of a .rom file that are interpreted.
const (
	MarkerCountOffset = 28 // single byte holding the number of markers
	MarkerDataOffset  = 72 // first X coordinate of the first marker
	MarkerSize        = 12 // 3 little-endian float32 values
)

// ErrTruncatedBuffer is returned when the buffer is too short for the header
// or for the number of markers that the header declares.
var ErrTruncatedBuffer = errors.New("truncated rom buffer")

// Marker is the position of a single tracking marker in the local tool frame, in mm.
type Marker struct {
	X float64
	Y float64
	Z float64
}

// RequiredLength returns the minimum buffer length that holds count markers.
func RequiredLength(count uint8) int {
	return MarkerDataOffset + int(count)*MarkerSize
}

// MarkerCount returns the number of markers declared in the header.
// Only the byte at MarkerCountOffset is consulted.
func MarkerCount(buf []byte) (uint8, error) {
	r := binary.NewReader(buf)
	if err := r.Seek(MarkerCountOffset); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTruncatedBuffer, err)
	}
	count, err := r.ReadUint8()
	if err != nil {
		return 0, fmt.Errorf("%w: reading marker count: %w", ErrTruncatedBuffer, err)
	}
	return count, nil
}

// Decode returns the markers of a .rom file buffer in file order.
// A buffer declaring zero markers results in an empty list. The buffer is not modified
// and no partial list is returned on error.
func Decode(buf []byte) ([]Marker, error) {
	count, err := MarkerCount(buf)
	if err != nil {
		return nil, err
	}

	required := RequiredLength(count)
	if len(buf) < required {
		return nil, fmt.Errorf("%w: %d markers need %d bytes, buffer has %d",
			ErrTruncatedBuffer, count, required, len(buf))
	}

	r := binary.NewReader(buf)
	if err := r.Seek(MarkerDataOffset); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedBuffer, err)
	}

	markers := make([]Marker, 0, count)
	for i := 0; i < int(count); i++ {
		m, err := readMarker(r)
		if err != nil {
			return nil, fmt.Errorf("%w: reading marker %d: %w", ErrTruncatedBuffer, i, err)
		}
		markers = append(markers, m)
	}
	return markers, nil
}

func readMarker(r *binary.Reader) (Marker, error) {
	var coords [3]float64
	for i := range coords {
		v, err := r.ReadFloat32()
		if err != nil {
			return Marker{}, err
		}
		coords[i] = Round(v)
	}
	return Marker{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// Round rounds a raw coordinate to 2 decimal places and turns a negative zero
// result into positive zero. Ties are decided on the exact binary value and round
// to even, so 0.125 becomes 0.12 while 1.005, stored as 1.00499999..., becomes 1.
// NaN and infinities are returned unchanged.
func Round(v float32) float64 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}

	s := strconv.FormatFloat(f, 'f', 2, 64)
	rounded, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// unreachable for finite input, FormatFloat output always parses
		rounded = f
	}

	if rounded == 0 && math.Signbit(rounded) {
		return 0
	}
	return rounded
}
