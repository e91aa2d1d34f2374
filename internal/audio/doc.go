// Package audio holds PCM buffers, the fixed-duration chunker and the WAV
// codec used to hand audio to transcription engines.
//
// A Buffer is immutable once built. Split never copies samples: every
// Segment is a read-only view into the Buffer it came from, and the views
// placed end to end reconstruct the Buffer exactly.
package audio
