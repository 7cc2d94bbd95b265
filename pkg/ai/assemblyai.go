package ai

import (
	"context"
	"fmt"
	"io"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/voicepost-team/voicepost/pkg/config"
)

// TranscriptionClient wraps the AssemblyAI SDK for voice memo transcription
type TranscriptionClient struct {
	client *aai.Client
}

// TranscriptionResult is the subset of the transcript the ingest path needs
type TranscriptionResult struct {
	Text            string
	Language        string
	Confidence      float64
	DurationSeconds int
}

// NewTranscriptionClient creates a transcription client from config
func NewTranscriptionClient(cfg *config.TranscriptionConfig) *TranscriptionClient {
	return &TranscriptionClient{
		client: aai.NewClient(cfg.APIKey),
	}
}

// Upload streams raw audio to AssemblyAI and returns the upload URL
func (t *TranscriptionClient) Upload(ctx context.Context, audio io.Reader) (string, error) {
	uploadURL, err := t.client.Upload(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}
	return uploadURL, nil
}

// TranscribeFromURL submits a transcription job and blocks until it
// completes or the context is cancelled.
func (t *TranscriptionClient) TranscribeFromURL(ctx context.Context, audioURL string) (*TranscriptionResult, error) {
	params := &aai.TranscriptOptionalParams{
		Punctuate:  aai.Bool(true),
		FormatText: aai.Bool(true),
	}

	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai error: %s", msg)
	}

	result := &TranscriptionResult{}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	if transcript.LanguageCode != "" {
		result.Language = string(transcript.LanguageCode)
	}
	if transcript.Confidence != nil {
		result.Confidence = *transcript.Confidence
	}
	if transcript.AudioDuration != nil {
		result.DurationSeconds = int(*transcript.AudioDuration)
	}
	return result, nil
}
