package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"stt-relay/internal/app/api/provider"
	"stt-relay/internal/app/audio"
)

// State of a capture session
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateStopping:
		return "stopping"
	default:
		return "idle"
	}
}

var (
	// ErrAlreadyRecording is returned by Start while a recording is active
	ErrAlreadyRecording = errors.New("capture: already recording")
	// ErrNotRecording is returned by Stop when nothing is being recorded
	ErrNotRecording = errors.New("capture: not recording")
	// ErrEmptyCapture is returned by Stop when no audio was received
	ErrEmptyCapture = errors.New("capture: no audio captured")
	// ErrSourceUnavailable wraps failures to open the audio source
	ErrSourceUnavailable = errors.New("capture: audio source unavailable")
)

const (
	chunkSize = 4096
	// RecordingBaseName is the filename stem of recorded payloads
	RecordingBaseName = "mic-input"
)

// Session records at most one clip at a time. The zero value is not usable;
// create sessions with NewSession.
type Session struct {
	source Source
	logger *zap.Logger

	mu      sync.Mutex
	state   State
	stream  io.ReadCloser
	buf     bytes.Buffer
	chunks  int
	readErr error
	done    chan struct{}
}

// NewSession creates an idle session reading from source
func NewSession(source Source, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{source: source, logger: logger}
}

// State reports the current session state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start opens the source and begins accumulating chunks. It fails fast with
// ErrAlreadyRecording unless the session is idle.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrAlreadyRecording
	}
	s.state = StateRecording
	s.buf.Reset()
	s.chunks = 0
	s.readErr = nil
	s.mu.Unlock()

	stream, err := s.source.Open(ctx)
	if err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.stream = stream
	s.done = done
	s.mu.Unlock()

	go s.pump(stream, done)

	s.logger.Debug("Recording started")
	return nil
}

// pump copies chunks from the stream until it ends
func (s *Session) pump(stream io.Reader, done chan struct{}) {
	defer close(done)

	chunk := make([]byte, chunkSize)
	for {
		n, err := stream.Read(chunk)
		if n > 0 {
			s.mu.Lock()
			s.buf.Write(chunk[:n])
			s.chunks++
			s.mu.Unlock()
		}
		if err != nil {
			// errors caused by Stop closing the stream are expected
			s.mu.Lock()
			if !errors.Is(err, io.EOF) && s.state == StateRecording {
				s.readErr = err
			}
			s.mu.Unlock()
			return
		}
	}
}

// Stop ends the recording, releases the source and returns the accumulated
// audio. With no audio it returns ErrEmptyCapture and the session is idle.
func (s *Session) Stop() (*provider.AudioPayload, error) {
	s.mu.Lock()
	if s.state != StateRecording || s.stream == nil {
		s.mu.Unlock()
		return nil, ErrNotRecording
	}
	s.state = StateStopping
	stream, done := s.stream, s.done
	s.mu.Unlock()

	closeErr := stream.Close()
	<-done

	s.mu.Lock()
	data := append([]byte(nil), s.buf.Bytes()...)
	chunks, readErr := s.chunks, s.readErr
	s.buf.Reset()
	s.chunks = 0
	s.stream = nil
	s.done = nil
	s.state = StateIdle
	s.mu.Unlock()

	if closeErr != nil {
		s.logger.Warn("Failed to release audio source", zap.Error(closeErr))
	}

	s.logger.Debug("Recording stopped",
		zap.Int("chunks", chunks),
		zap.Int("bytes", len(data)),
	)

	if len(data) == 0 {
		if readErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrEmptyCapture, readErr)
		}
		return nil, ErrEmptyCapture
	}
	if readErr != nil {
		s.logger.Warn("Recording ended early", zap.Error(readErr))
	}

	return NewPayload(data, RecordingBaseName), nil
}

// NewPayload wraps captured bytes, naming the file after the detected container
func NewPayload(data []byte, baseName string) *provider.AudioPayload {
	mime, ext := audio.Sniff(data)
	if !audio.IsAudio(data) {
		mime, ext = "application/octet-stream", ""
	}
	return &provider.AudioPayload{
		Data:        data,
		Filename:    baseName + ext,
		ContentType: mime,
	}
}
