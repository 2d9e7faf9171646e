package testutil

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
	"stt-relay/internal/app/audio"
)

// Sample transcripts returned by mocked providers
const (
	EnglishTranscript = "Cholesterol and bilirubin levels are elevated."
	KoreanTranscript  = "콜레스테롤과 빌리루빈 수치가 높습니다."
)

// WAVFixture returns a playable 16kHz mono WAV of exactly size bytes
// (size must be even and at least 44)
func WAVFixture(size int) []byte {
	return audio.ToneWAV(size)
}

// MultipartAudio builds a multipart body holding data under field.
// It returns the body and the Content-Type header to send with it.
func MultipartAudio(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

// MultipartFields builds a multipart body with only plain text fields
func MultipartFields(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}
