// Package style extracts per-post voice/format fingerprints and aggregates
// them into a prompt block.
package style

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/voicepost-team/voicepost/errors"
	"github.com/voicepost-team/voicepost/internal/domain/entities"
	"github.com/voicepost-team/voicepost/pkg/ai"
)

const fingerprintKeyPrefix = "style:fp:"

// Cache stores serialized fingerprints keyed by content hash. A ttl of zero
// means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
}

// Extractor produces style fingerprints from reference content
type Extractor struct {
	client ai.CompletionClient
	cache  Cache
	logger *zap.Logger
}

// NewExtractor creates an Extractor. cache may be nil.
func NewExtractor(client ai.CompletionClient, cache Cache, logger *zap.Logger) *Extractor {
	return &Extractor{client: client, cache: cache, logger: logger}
}

// Analyze fingerprints one reference post. Reference content is immutable, so
// results are cached by content hash with no expiry.
func (e *Extractor) Analyze(ctx context.Context, content string) (*entities.StyleFingerprint, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.ErrInvalidArgument("reference content is empty")
	}

	key := fingerprintKey(content)
	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, key); ok {
			var fp entities.StyleFingerprint
			if err := json.Unmarshal([]byte(cached), &fp); err == nil {
				return &fp, nil
			}
			e.logger.Warn("discarding corrupt cached fingerprint", zap.String("key", key))
		}
	}

	raw, err := e.client.Complete(ctx, ai.CompletionRequest{
		SystemPrompt: styleSystemPrompt,
		UserPrompt:   fmt.Sprintf("Reference post:\n%s", content),
		Temperature:  0.2,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("style extraction call failed: %w", err)
	}

	var fp entities.StyleFingerprint
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &fp); err != nil {
		return nil, apperrors.ErrInvalidAnalysis("style", fmt.Errorf("unparsable output: %w", err))
	}

	if e.cache != nil {
		if data, err := json.Marshal(&fp); err == nil {
			e.cache.Set(ctx, key, string(data), 0)
		}
	}
	return &fp, nil
}

func fingerprintKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return fingerprintKeyPrefix + hex.EncodeToString(sum[:])
}

const styleSystemPrompt = `You describe the writing style of a social post as a structured fingerprint.

Respond with a single JSON object:
{
  "voice": {
    "tone": ["2-4 adjectives"],
    "sentence_style": "how sentences are built",
    "vocabulary": "register and word choice",
    "perspective": "first person / second person / detached",
    "patterns": ["recurring rhetorical moves"],
    "signature_phrases": ["distinctive phrases, verbatim"]
  },
  "format": {
    "structure": "overall layout",
    "length": 0,
    "line_break_usage": "how whitespace is used",
    "paragraph_style": "paragraph shape",
    "uses_lists": false,
    "opening_style": "how it opens",
    "closing_style": "how it closes"
  }
}

Describe only what is observably present. length is the character count of the post body.`
