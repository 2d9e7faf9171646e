package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Recording defaults match what the relay's bundled sample and the default
// recorder command produce: 16kHz mono signed 16-bit PCM.
const (
	DefaultSampleRate = 16000
	DefaultChannels   = 1
	bitsPerSample     = 16
	wavHeaderSize     = 44
)

// Sniff detects the container of an audio payload from its leading bytes.
// It returns the MIME type and the file extension including the dot.
func Sniff(data []byte) (string, string) {
	mt := mimetype.Detect(data)
	mime := mt.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return mime, mt.Extension()
}

// IsAudio reports whether the payload looks like an audio container
func IsAudio(data []byte) bool {
	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		if strings.HasPrefix(mt.String(), "audio/") {
			return true
		}
	}
	return false
}

// EncodeWAV wraps little-endian 16-bit PCM samples in a RIFF/WAVE container
func EncodeWAV(samples []int16, sampleRate, channels int) []byte {
	dataSize := len(samples) * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))
	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// Tone generates a mono sine wave of n samples at freq Hz
func Tone(freq float64, n, sampleRate int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
		samples[i] = int16(v * math.MaxInt16 / 4)
	}
	return samples
}

// ToneWAV returns a WAV file of roughly size bytes holding a 440Hz tone
func ToneWAV(size int) []byte {
	n := (size - wavHeaderSize) / 2
	if n < 0 {
		n = 0
	}
	return EncodeWAV(Tone(440, n, DefaultSampleRate), DefaultSampleRate, DefaultChannels)
}
