package main

import "errors"

// ProcessingResult is the output of processing one document
type ProcessingResult struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Keyword is a candidate keyword and its relevance score as reported by an extractor
type Keyword struct {
	Text  string  `json:"keyword"`
	Score float64 `json:"score"`
}

var (
	ErrEmptyText       = errors.New("text is empty")
	ErrInvalidEncoding = errors.New("file is not valid UTF-8 text")
	ErrUnknownBackend  = errors.New("unknown backend")
)

// ConfigError reports an invalid settings value
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "invalid setting " + e.Field + ": " + e.Message
}
