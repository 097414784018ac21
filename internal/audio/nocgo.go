//go:build nocgo
// +build nocgo

package audio

// Stubs for static analysis and builds without cgo.

func newMalgoHost() (Host, error) {
	return nil, ErrAudioUnavailable
}

func newOtoHost() (Host, error) {
	return nil, ErrAudioUnavailable
}
