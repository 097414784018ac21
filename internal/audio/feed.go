package audio

// pcmFeeder hands interleaved PCM to a pull-based device callback. Once the
// data runs out it keeps writing silence for tail more periods so the
// device's queued buffers reach the speaker before playback is reported
// done.
type pcmFeeder struct {
	pcm       []byte
	frameSize int
	pos       int
	tail      int
}

func newPCMFeeder(pcm []byte, frameSize, tail int) *pcmFeeder {
	return &pcmFeeder{pcm: pcm, frameSize: frameSize, tail: tail}
}

// fill writes the next frameCount frames into out and reports whether the
// data and the drain periods have all been delivered.
func (f *pcmFeeder) fill(out []byte, frameCount uint32) bool {
	need := min(int(frameCount)*f.frameSize, len(out))

	if f.pos >= len(f.pcm) {
		clear(out[:need])
		if f.tail <= 0 {
			return true
		}
		f.tail--
		return false
	}

	n := copy(out[:need], f.pcm[f.pos:])
	f.pos += n
	clear(out[n:need])
	return false
}
