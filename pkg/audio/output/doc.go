// ABOUTME: Audio output package for playing synthesized audio
// ABOUTME: Provides Output interface with oto, malgo and PortAudio backends
// Package output provides callback-driven audio playback.
//
// Every backend pulls interleaved float32 frames from a Source on the
// device's own audio goroutine, applies the output trim and hands the bytes
// to the device. Supported backends:
//   - oto (default, pure Go on most platforms)
//   - malgo (miniaudio)
//   - PortAudio (build with -tags portaudio)
//
// Example:
//
//	out, err := output.NewBackend("oto")
//	err = out.Open(audio.Stereo(44100), engine)
//	defer out.Close()
package output
