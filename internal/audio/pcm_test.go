package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestFloat32ToBytes(t *testing.T) {
	in := []float32{0, 1, -1, 0.5}
	out := Float32ToBytes(in)
	if len(out) != len(in)*4 {
		t.Fatalf("expected %d bytes, got %d", len(in)*4, len(out))
	}
	for i, want := range in {
		got := math.Float32frombits(binary.LittleEndian.Uint32(out[i*4:]))
		if got != want {
			t.Errorf("sample %d: expected %f, got %f", i, want, got)
		}
	}
}
