package audio

import (
	"bytes"
	"testing"
)

func TestPCMFeederDrainsBeforeDone(t *testing.T) {
	// 300 mono frames against 512 frame periods
	samples := make([]float32, 300)
	for i := range samples {
		samples[i] = 0.5
	}
	pcm := Float32ToBytes(samples)
	f := newPCMFeeder(pcm, bytesPerFloat, 2)
	out := make([]byte, 512*bytesPerFloat)

	if f.fill(out, 512) {
		t.Fatal("done reported in the callback that delivered the last frames")
	}
	if !bytes.Equal(out[:len(pcm)], pcm) {
		t.Error("first period should carry the samples")
	}
	if !bytes.Equal(out[len(pcm):], make([]byte, len(out)-len(pcm))) {
		t.Error("rest of the first period should be silence")
	}

	for i := 0; i < 2; i++ {
		if f.fill(out, 512) {
			t.Fatalf("done reported during drain period %d", i)
		}
		if !bytes.Equal(out, make([]byte, len(out))) {
			t.Errorf("drain period %d should be silence", i)
		}
	}
	if !f.fill(out, 512) {
		t.Error("expected done after the drain periods")
	}
}

func TestPCMFeederSpansPeriods(t *testing.T) {
	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(i) / 1000
	}
	pcm := Float32ToBytes(samples)
	f := newPCMFeeder(pcm, 2*bytesPerFloat, 0)

	var got []byte
	out := make([]byte, 256*2*bytesPerFloat)
	calls := 0
	for !f.fill(out, 256) {
		got = append(got, out...)
		calls++
		if calls > 10 {
			t.Fatal("feeder never finished")
		}
	}
	if calls != 2 {
		t.Errorf("expected 2 data periods for 500 stereo frames, got %d", calls)
	}
	if !bytes.Equal(got[:len(pcm)], pcm) {
		t.Error("samples were not delivered in order")
	}
}
