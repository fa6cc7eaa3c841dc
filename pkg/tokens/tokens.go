// Package tokens counts model tokens for report metadata.
package tokens

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// fallbackEncoding is used when a model name is not known to tiktoken.
const fallbackEncoding = "cl100k_base"

// Counter counts tokens in a piece of text.
type Counter interface {
	Count(text string) int
}

// Tiktoken counts tokens with an OpenAI BPE encoding.
type Tiktoken struct {
	model string
	ttk   *tiktoken.Tiktoken
}

// NewTiktoken returns a Counter for model. Unknown models fall back to the
// cl100k_base encoding.
func NewTiktoken(model string, logger *zap.Logger) (*Tiktoken, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if model == "" {
		model = DefaultModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn("Unknown tokenizer model, using fallback encoding",
			zap.String("model", model),
			zap.String("encoding", fallbackEncoding),
			zap.Error(err))
		tke, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("failed to load tiktoken encoding %s: %w", fallbackEncoding, err)
		}
	}
	return &Tiktoken{model: model, ttk: tke}, nil
}

// Model returns the model name the counter was built for.
func (t *Tiktoken) Model() string {
	return t.model
}

// Count returns the number of tokens in text. Special tokens are counted as plain text.
func (t *Tiktoken) Count(text string) int {
	if t == nil || t.ttk == nil || text == "" {
		return 0
	}
	return len(t.ttk.EncodeOrdinary(text))
}

// CounterFunc adapts a function to the Counter interface.
type CounterFunc func(text string) int

// Count calls f(text).
func (f CounterFunc) Count(text string) int {
	return f(text)
}
