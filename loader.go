package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ContentHandler turns raw file bytes into the text handed to the capabilities
type ContentHandler interface {
	CanHandle(path string, data []byte) bool
	Handle(path string, data []byte) (string, error)
}

// ContentLoader reads files and runs them through a handler chain
type ContentLoader struct {
	handlers []ContentHandler
}

// NewContentLoader creates a loader with the default handlers
func NewContentLoader(convertHTML bool) *ContentLoader {
	l := &ContentLoader{}

	// Register handlers (most specific first)
	if convertHTML {
		l.AddHandler(&HTMLHandler{converter: md.NewConverter("", true, nil)})
	}
	l.AddHandler(&TextHandler{}) // fallback

	return l
}

// AddHandler adds a content handler to the chain
func (l *ContentLoader) AddHandler(handler ContentHandler) {
	l.handlers = append(l.handlers, handler)
}

// Load reads the whole file and converts it using the first matching handler
func (l *ContentLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	for _, handler := range l.handlers {
		if handler.CanHandle(path, data) {
			return handler.Handle(path, data)
		}
	}

	return "", fmt.Errorf("no handler found for %s", path)
}

// TextHandler returns the file content unchanged (fallback)
type TextHandler struct{}

func (h *TextHandler) CanHandle(path string, data []byte) bool {
	return true
}

func (h *TextHandler) Handle(path string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidEncoding)
	}
	return string(data), nil
}

// HTMLHandler converts HTML documents to Markdown
type HTMLHandler struct {
	converter *md.Converter
}

func (h *HTMLHandler) CanHandle(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return strings.HasPrefix(http.DetectContentType(data), "text/html")
}

func (h *HTMLHandler) Handle(path string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidEncoding)
	}

	markdown, err := h.converter.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}

	return markdown, nil
}
