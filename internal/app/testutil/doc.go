// Package testutil provides testing utilities for the relay.
//
// It contains:
//
//   - MockTranscriptionProvider: testify mock of provider.TranscriptionProvider
//   - MockTranscriptionService: testify mock of services.TranscriptionService
//   - Audio fixtures: WAVFixture builds a valid PCM WAV of a requested size
//     and MultipartAudio builds a multipart body the way the capture client does
//
// # Usage
//
//	p := testutil.NewMockTranscriptionProvider(t, "deepgram")
//	p.On("TranscribeAudio", mock.Anything, mock.Anything).
//		Return(&provider.TranscriptionResponse{Text: "hello"}, nil)
//
//	body, contentType := testutil.MultipartAudio(t, "file", "clip.wav", testutil.WAVFixture(16*1024))
package testutil
