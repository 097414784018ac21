package audio

import (
	"encoding/binary"
	"math"
)

// bytesPerFloat is the size of one float32 sample on the wire.
const bytesPerFloat = 4

// Float32ToBytes encodes samples as little endian IEEE 754, the layout of
// malgo.FormatF32 and oto.FormatFloat32LE.
func Float32ToBytes(samples []float32) []byte {
	out := make([]byte, len(samples)*bytesPerFloat)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(out[i*bytesPerFloat:], math.Float32bits(s))
	}
	return out
}
