// Package ingest turns uploaded voice memos into transcripts: audio goes to
// object storage, then to the transcription provider.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/voicepost-team/voicepost/errors"
	"github.com/voicepost-team/voicepost/internal/infrastructure/storage"
	"github.com/voicepost-team/voicepost/pkg/ai"
)

// Memo is an ingested voice memo with its transcript
type Memo struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	ObjectName      string    `json:"object_name"`
	AudioURL        string    `json:"audio_url"`
	Transcript      string    `json:"transcript"`
	Language        string    `json:"language,omitempty"`
	Confidence      float64   `json:"confidence"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

// Service ingests raw audio and produces transcripts
type Service struct {
	store      *storage.MinIOClient
	transcribe *ai.TranscriptionClient
	logger     *zap.Logger
}

// NewService creates an ingest Service
func NewService(store *storage.MinIOClient, transcribe *ai.TranscriptionClient, logger *zap.Logger) *Service {
	return &Service{store: store, transcribe: transcribe, logger: logger}
}

// Ingest stores the audio, submits it for transcription with retries, and
// returns the memo with its transcript. The audio is buffered once so it can
// be replayed to both storage and the transcription upload.
func (s *Service) Ingest(ctx context.Context, userID uuid.UUID, filename string, audio io.Reader, contentType string) (*Memo, error) {
	data, err := io.ReadAll(audio)
	if err != nil {
		return nil, apperrors.ErrMemoUpload(fmt.Errorf("failed to read audio: %w", err))
	}
	if len(data) == 0 {
		return nil, apperrors.ErrInvalidArgument("audio body is empty")
	}

	memoID := uuid.New()
	objectName := fmt.Sprintf("memos/%s/%s%s", userID.String(), memoID.String(), path.Ext(filename))

	if err := s.store.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, apperrors.ErrMemoUpload(err)
	}
	s.logger.Info("voice memo stored",
		zap.String("memo_id", memoID.String()),
		zap.String("object", objectName),
		zap.Int("bytes", len(data)),
	)

	var uploadURL string
	uploadFn := func() error {
		url, err := s.transcribe.Upload(ctx, bytes.NewReader(data))
		if err != nil {
			return err
		}
		uploadURL = url
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 30 * time.Second
	bo.MaxInterval = 10 * time.Second

	if err := backoff.Retry(uploadFn, backoff.WithContext(bo, ctx)); err != nil {
		s.logger.Error("❌ Failed to upload audio for transcription after retries",
			zap.String("memo_id", memoID.String()),
			zap.Error(err),
		)
		return nil, apperrors.ErrTranscriptionFailed(err)
	}

	result, err := s.transcribe.TranscribeFromURL(ctx, uploadURL)
	if err != nil {
		return nil, apperrors.ErrTranscriptionFailed(err)
	}

	audioURL, err := s.store.GetFileURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		s.logger.Warn("failed to presign memo URL", zap.Error(err))
	}

	s.logger.Info("✅ Voice memo transcribed",
		zap.String("memo_id", memoID.String()),
		zap.Int("transcript_chars", len(result.Text)),
		zap.Int("duration_seconds", result.DurationSeconds),
	)

	return &Memo{
		ID:              memoID,
		UserID:          userID,
		ObjectName:      objectName,
		AudioURL:        audioURL,
		Transcript:      result.Text,
		Language:        result.Language,
		Confidence:      result.Confidence,
		DurationSeconds: result.DurationSeconds,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
