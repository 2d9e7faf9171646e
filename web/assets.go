package web

import (
	"embed"
	"io/fs"
)

// SampleAudioName is the bundled clip used by "Play & Transcribe" and by the
// CLI when no file is given
const SampleAudioName = "sample.wav"

//go:embed static
var staticFiles embed.FS

// Static returns the browser client rooted at the static directory
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("web: static assets missing: " + err.Error())
	}
	return sub
}

// SampleAudio returns the bundled sample clip
func SampleAudio() ([]byte, error) {
	return fs.ReadFile(Static(), SampleAudioName)
}
