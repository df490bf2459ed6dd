// Package tokenizer estimates how many model tokens the combined document uses.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter tiktokenCounter) Name() string {
	return counter.name
}

func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("tokenizer: nil tiktoken encoder")
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

// NewCounter returns a tiktoken counter for model. Models tiktoken does not
// know fall back to the cl100k_base encoding.
func NewCounter(model string) (Counter, error) {
	model = strings.ToLower(strings.TrimSpace(model))
	if model == "" {
		model = DefaultModel
	}

	encoding, err := tiktoken.EncodingForModel(model)
	if err == nil && encoding != nil {
		return tiktokenCounter{encoding: encoding, name: model}, nil
	}

	fallback, fallbackErr := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackErr != nil {
		return nil, fmt.Errorf("tokenizer: initialize fallback encoding: %w", fallbackErr)
	}
	return tiktokenCounter{encoding: fallback, name: defaultEncodingName}, nil
}

// Result is the token count of one document.
type Result struct {
	Tokens  int
	Counter string
}

// Count counts the tokens of document with counter.
func Count(counter Counter, document []byte) (Result, error) {
	if counter == nil {
		return Result{}, errors.New("tokenizer: no counter configured")
	}
	tokens, err := counter.CountString(string(document))
	if err != nil {
		return Result{}, fmt.Errorf("tokenizer: count with %s: %w", counter.Name(), err)
	}
	return Result{Tokens: tokens, Counter: counter.Name()}, nil
}
