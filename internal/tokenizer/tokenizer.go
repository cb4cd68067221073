// Package tokenizer estimates token counts and measures them against model
// context windows.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// FallbackEncodingName is the encoding used when tiktoken does not recognize
// the requested model. Counts produced with it are approximate.
const FallbackEncodingName = "o200k_base"

// Counter counts tokens using the encoding matched to one model, or the
// documented fallback when no exact match exists.
type Counter struct {
	encoding     *tiktoken.Tiktoken
	encodingName string
	degraded     bool
}

// NewCounter returns a Counter for modelName. When the model family is unknown
// to tiktoken the Counter degrades to FallbackEncodingName and reports it.
func NewCounter(modelName string) (*Counter, error) {
	encoding, encodingError := tiktoken.EncodingForModel(modelName)
	if encodingError == nil && encoding != nil {
		return &Counter{encoding: encoding, encodingName: modelName}, nil
	}
	fallbackEncoding, fallbackError := tiktoken.GetEncoding(FallbackEncodingName)
	if fallbackError != nil {
		return nil, fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return &Counter{encoding: fallbackEncoding, encodingName: FallbackEncodingName, degraded: true}, nil
}

// EncodingName returns the name of the encoding in use.
func (counter *Counter) EncodingName() string {
	return counter.encodingName
}

// Degraded reports whether the fallback encoding is in use.
func (counter *Counter) Degraded() bool {
	return counter.degraded
}

// Count returns the token count of input under the Counter's encoding.
func (counter *Counter) Count(input string) int {
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers)
}
