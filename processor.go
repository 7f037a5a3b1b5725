package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DocumentProcessor handles the main workflow: read, summarize, tag
type DocumentProcessor struct {
	loader     *ContentLoader
	summarizer Summarizer
	extractor  KeywordExtractor
	log        *logrus.Logger
}

// ProcessorOption customizes a DocumentProcessor
type ProcessorOption func(*DocumentProcessor)

// WithLoader replaces the default plain text loader
func WithLoader(loader *ContentLoader) ProcessorOption {
	return func(p *DocumentProcessor) { p.loader = loader }
}

// WithLogger sets the progress logger
func WithLogger(logger *logrus.Logger) ProcessorOption {
	return func(p *DocumentProcessor) { p.log = logger }
}

// NewDocumentProcessor creates a processor over the given capabilities
func NewDocumentProcessor(summarizer Summarizer, extractor KeywordExtractor, opts ...ProcessorOption) *DocumentProcessor {
	p := &DocumentProcessor{
		loader:     NewContentLoader(false),
		summarizer: summarizer,
		extractor:  extractor,
		log:        discardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewDocumentProcessorFromConfig wires the backends selected in settings
func NewDocumentProcessorFromConfig(config *Config, logger *logrus.Logger) (*DocumentProcessor, error) {
	settings := config.Settings

	var agents *AgentManager
	if settings.Summarizer.Backend == BackendAnthropic || settings.Keywords.Backend == BackendAnthropic {
		var err error
		agents, err = NewAgentManager(config.APIKey, config, logger)
		if err != nil {
			return nil, fmt.Errorf("creating agents: %w", err)
		}
	}

	var summarizer Summarizer
	switch settings.Summarizer.Backend {
	case BackendTextRank:
		summarizer = NewTextRankSummarizer(settings.Summarizer, logger)
	case BackendAnthropic:
		summarizer = agents
	default:
		return nil, fmt.Errorf("summarizer %q: %w", settings.Summarizer.Backend, ErrUnknownBackend)
	}

	var extractor KeywordExtractor
	switch settings.Keywords.Backend {
	case BackendRAKE:
		extractor = NewRAKEExtractor(settings.Keywords, logger)
	case BackendAnthropic:
		extractor = agents
	default:
		return nil, fmt.Errorf("keyword extractor %q: %w", settings.Keywords.Backend, ErrUnknownBackend)
	}

	return NewDocumentProcessor(summarizer, extractor,
		WithLoader(NewContentLoader(settings.Input.ConvertHTML)),
		WithLogger(logger),
	), nil
}

// Process reads the file and returns its summary and tags.
// The file is read completely before either capability is called.
func (p *DocumentProcessor) Process(filePath string) (*ProcessingResult, error) {
	p.log.Infof("→ Reading %s", filePath)
	text, err := p.loader.Load(filePath)
	if err != nil {
		return nil, err
	}

	p.log.Infof("→ Summarizing (%d bytes)...", len(text))
	summary, err := p.summarizer.Summarize(text)
	if err != nil {
		return nil, fmt.Errorf("summarizing %s: %w", filePath, err)
	}

	p.log.Infof("→ Extracting keywords...")
	keywords, err := p.extractor.ExtractKeywords(text)
	if err != nil {
		return nil, fmt.Errorf("extracting keywords from %s: %w", filePath, err)
	}

	tags := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		tags = append(tags, kw.Text)
	}

	p.log.Infof("✓ Processed %s | Tags: %v", filePath, tags)
	return &ProcessingResult{
		Summary: summary,
		Tags:    tags,
	}, nil
}

// WriteResult writes the result as a single line of JSON
func WriteResult(w io.Writer, result *ProcessingResult) error {
	out := *result
	if out.Tags == nil {
		out.Tags = []string{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	// Encode appends the trailing newline
	return enc.Encode(out)
}
