package deepgram

import (
	"encoding/json"
	"errors"
	"io"
)

// ListenResponse is the prerecorded /v1/listen result. Every level is
// optional; use Transcript rather than indexing directly.
type ListenResponse struct {
	Metadata *Metadata `json:"metadata,omitempty"`
	Results  *Results  `json:"results,omitempty"`
}

// Metadata describes the processed request.
type Metadata struct {
	RequestID string   `json:"request_id"`
	Duration  float64  `json:"duration"`
	Channels  int      `json:"channels"`
	Models    []string `json:"models,omitempty"`
}

// Results holds one entry per audio channel.
type Results struct {
	Channels []Channel `json:"channels"`
}

// Channel holds ranked transcription alternatives.
type Channel struct {
	Alternatives     []Alternative `json:"alternatives"`
	DetectedLanguage string        `json:"detected_language,omitempty"`
}

// Alternative is one candidate transcript.
type Alternative struct {
	Transcript *string `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Words      []Word  `json:"words,omitempty"`
}

// Word is a timestamped word.
type Word struct {
	Word           string  `json:"word"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence"`
	PunctuatedWord string  `json:"punctuated_word,omitempty"`
}

// Transcript returns the first alternative of the first channel.
// ok is false when any level of the result is absent; text is then empty.
func (r *ListenResponse) Transcript() (text string, ok bool) {
	alt, ok := r.firstAlternative()
	if !ok || alt.Transcript == nil {
		return "", false
	}
	return *alt.Transcript, true
}

// Confidence of the first alternative, 0 when absent.
func (r *ListenResponse) Confidence() float64 {
	if alt, ok := r.firstAlternative(); ok {
		return alt.Confidence
	}
	return 0
}

// DetectedLanguage of the first channel, empty when absent.
func (r *ListenResponse) DetectedLanguage() string {
	if r == nil || r.Results == nil || len(r.Results.Channels) == 0 {
		return ""
	}
	return r.Results.Channels[0].DetectedLanguage
}

func (r *ListenResponse) firstAlternative() (*Alternative, bool) {
	if r == nil || r.Results == nil || len(r.Results.Channels) == 0 {
		return nil, false
	}
	alternatives := r.Results.Channels[0].Alternatives
	if len(alternatives) == 0 {
		return nil, false
	}
	return &alternatives[0], true
}

// DecodeListenResponse reads a listen result from r. A level holding the
// wrong JSON type is left unset rather than failing the decode, so it reads
// as absent through the accessors. Syntax errors are still returned.
func DecodeListenResponse(r io.Reader) (*ListenResponse, error) {
	var resp ListenResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, err
		}
	}
	return &resp, nil
}
