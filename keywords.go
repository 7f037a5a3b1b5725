package main

import (
	"sort"
	"strings"

	rake "github.com/afjoseph/RAKE.Go"
	"github.com/sirupsen/logrus"
)

// KeywordExtractor returns ranked keywords with relevance scores, most relevant first
type KeywordExtractor interface {
	ExtractKeywords(text string) ([]Keyword, error)
}

// KeywordExtractorFunc adapts a plain function to the KeywordExtractor interface
type KeywordExtractorFunc func(text string) ([]Keyword, error)

func (f KeywordExtractorFunc) ExtractKeywords(text string) ([]Keyword, error) {
	return f(text)
}

// RAKEExtractor scores candidate phrases with Rapid Automatic Keyword Extraction
type RAKEExtractor struct {
	TopN     int // 0 keeps every candidate
	MaxWords int // 0 allows phrases of any length

	candidates func(text string) []Keyword
	log        *logrus.Logger
}

// NewRAKEExtractor creates a RAKE keyword extractor
func NewRAKEExtractor(settings KeywordSettings, logger *logrus.Logger) *RAKEExtractor {
	if logger == nil {
		logger = discardLogger()
	}
	return &RAKEExtractor{
		TopN:       settings.TopN,
		MaxWords:   settings.MaxWords,
		candidates: runRake,
		log:        logger,
	}
}

func runRake(text string) []Keyword {
	pairs := rake.RunRake(text)
	keywords := make([]Keyword, 0, len(pairs))
	for _, pair := range pairs {
		keywords = append(keywords, Keyword{Text: pair.Key, Score: pair.Value})
	}
	return keywords
}

func (e *RAKEExtractor) ExtractKeywords(text string) ([]Keyword, error) {
	keywords := []Keyword{}
	if strings.TrimSpace(text) == "" {
		return keywords, nil
	}

	for _, kw := range e.candidates(text) {
		kw.Text = strings.TrimSpace(kw.Text)
		if kw.Text == "" {
			continue
		}
		if e.MaxWords > 0 && len(strings.Fields(kw.Text)) > e.MaxWords {
			continue
		}
		keywords = append(keywords, kw)
	}

	// RAKE builds candidates from a map, so equal scores come back in random order
	sort.SliceStable(keywords, func(i, j int) bool {
		if keywords[i].Score != keywords[j].Score {
			return keywords[i].Score > keywords[j].Score
		}
		return keywords[i].Text < keywords[j].Text
	})

	e.log.Debugf("RAKE produced %d candidate(s)", len(keywords))
	return truncateKeywords(keywords, e.TopN), nil
}

func truncateKeywords(keywords []Keyword, topN int) []Keyword {
	if topN > 0 && len(keywords) > topN {
		return keywords[:topN]
	}
	return keywords
}
