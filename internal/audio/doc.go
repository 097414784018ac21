// Package audio enumerates output devices and plays decoded speech on a
// chosen device. Device access goes through a Host, which is backed by
// miniaudio (malgo) or oto in production and by MockHost in tests.
package audio
