// ABOUTME: Recording package for capturing synth output
// ABOUTME: Provides a WAV writer and a non-blocking recording tap
// Package record captures the rendered stream to a 16-bit WAV file without
// doing I/O on the audio goroutine.
//
// Example:
//
//	f, _ := os.Create("take.wav")
//	wav, err := record.NewWAVWriter(f, audio.Stereo(44100))
//	tap := record.NewTap(engine, wav)
//	tap.Start()
//	out.Open(audio.Stereo(44100), tap)
//	...
//	tap.Close()
package record
