// Package playback turns a dataset entry into sound. A pre-rendered audio
// file is tried first; when it is missing or cannot be played the entry's
// text is spoken by the on-device synthesizer instead. The worst case is
// silence, never an error surfaced to the viewer.
//
// Only one playback runs at a time: starting a new one cancels the one in
// flight, and a cancelled playback never falls back to speech.
package playback
