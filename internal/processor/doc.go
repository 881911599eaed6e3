// Package processor coordinates the aksharmala commands: it loads the
// dataset and the resolved settings, then drives the audio pre-fetch, the
// Anki export, the voice listing and the lesson viewer.
package processor
