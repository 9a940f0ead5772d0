// Package stt provides the speech-to-text boundary for audio submissions.
package stt

import (
	"context"
	"errors"
	"time"
)

// Transcription failure modes.
var (
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrAudioEmpty          = errors.New("audio payload is empty")
)

// TranscribeRequest carries an uploaded audio payload. The filename's
// extension tells the upstream service the container format.
type TranscribeRequest struct {
	Audio    []byte
	Filename string
}

// TranscribeResponse is the recognized text.
type TranscribeResponse struct {
	Text           string
	Language       string
	ProcessingTime time.Duration
}

// Transcriber is the interface speech providers implement.
type Transcriber interface {
	Name() string
	IsAvailable() bool
	Transcribe(ctx context.Context, req *TranscribeRequest) (*TranscribeResponse, error)
}
