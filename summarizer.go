package main

import (
	"fmt"
	"strings"

	"github.com/didasy/tldr"
	"github.com/sirupsen/logrus"
)

// Summarizer produces a shorter natural-language summary of a text
type Summarizer interface {
	Summarize(text string) (string, error)
}

// SummarizerFunc adapts a plain function to the Summarizer interface
type SummarizerFunc func(text string) (string, error)

func (f SummarizerFunc) Summarize(text string) (string, error) {
	return f(text)
}

// TextRankSummarizer picks the highest ranked sentences of the text.
// It keeps Ratio of the sentences, capped at MaxSentences when that is set.
type TextRankSummarizer struct {
	Ratio        float64
	MaxSentences int

	rank func(sentences []string, n int) ([]string, error)
	log  *logrus.Logger
}

// NewTextRankSummarizer creates a summarizer backed by tldr's graph ranking
func NewTextRankSummarizer(settings SummarizerSettings, logger *logrus.Logger) *TextRankSummarizer {
	if logger == nil {
		logger = discardLogger()
	}
	return &TextRankSummarizer{
		Ratio:        settings.Ratio,
		MaxSentences: settings.MaxSentences,
		rank:         rankSentences,
		log:          logger,
	}
}

// rankSentences ranks exactly the given sentences; tldr returns its picks in source order
func rankSentences(sentences []string, n int) ([]string, error) {
	bag := tldr.New()
	bag.OriginalSentences = sentences
	return bag.Summarize(strings.Join(sentences, "\n"), n)
}

func (s *TextRankSummarizer) Summarize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	sentences := documentSentences(text)
	wanted := s.sentenceBudget(len(sentences))
	if wanted == 0 {
		s.log.Debugf("Text has %d sentence(s), too short to summarize", len(sentences))
		return "", nil
	}

	picked, err := s.rank(sentences, wanted)
	if err != nil {
		return "", fmt.Errorf("ranking sentences: %w", err)
	}
	s.log.Debugf("Picked %d of %d sentences", len(picked), len(sentences))

	lines := make([]string, 0, len(picked))
	for _, sentence := range picked {
		if sentence = strings.TrimSpace(sentence); sentence != "" {
			lines = append(lines, sentence)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// sentenceBudget returns how many sentences go into the summary
func (s *TextRankSummarizer) sentenceBudget(count int) int {
	if count < 2 {
		return 0
	}
	wanted := int(float64(count) * s.Ratio)
	if s.MaxSentences > 0 && wanted > s.MaxSentences {
		wanted = s.MaxSentences
	}
	return wanted
}

// documentSentences splits text into paragraphs on blank lines and each paragraph
// into sentences with tldr's tokenizer. A paragraph the tokenizer finds no sentence
// in, such as a heading without punctuation, counts as one sentence.
func documentSentences(text string) []string {
	var sentences []string
	for _, para := range paragraphs(text) {
		found := false
		for _, sentence := range tldr.TokenizeSentences(para) {
			if sentence = strings.TrimSpace(sentence); sentence != "" {
				sentences = append(sentences, sentence)
				found = true
			}
		}
		if !found {
			sentences = append(sentences, para)
		}
	}
	return sentences
}

// paragraphs groups consecutive non-blank lines, joined by a space
func paragraphs(text string) []string {
	var out, current []string
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}
