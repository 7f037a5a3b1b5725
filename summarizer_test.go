package main

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single line", "Hello world.", []string{"Hello world."}},
		{"lines joined", "First line\nsecond line.", []string{"First line second line."}},
		{"blank lines split", "Heading\n\nBody text here\n", []string{"Heading", "Body text here"}},
		{"whitespace-only lines", "One\n   \n\tTwo\r\n", []string{"One", "Two"}},
		{"blank", "   \n\n ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paragraphs(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("paragraphs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentSentences(t *testing.T) {
	t.Run("paragraphs without punctuation", func(t *testing.T) {
		got := documentSentences("heading line one\n\nbody paragraph text here\n\n")
		want := []string{"heading line one", "body paragraph text here"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("documentSentences() = %q, want %q", got, want)
		}
	})

	t.Run("punctuated", func(t *testing.T) {
		text := "The ranker scores sentences. It keeps the best ones. Order follows the source."
		got := documentSentences(text)
		if len(got) < 2 {
			t.Fatalf("documentSentences() = %q, want several sentences", got)
		}
		for _, sentence := range got {
			if !strings.Contains(text, sentence) {
				t.Errorf("sentence %q is not part of the source", sentence)
			}
		}
	})
}

func TestSentenceBudget(t *testing.T) {
	tests := []struct {
		name         string
		ratio        float64
		maxSentences int
		count        int
		want         int
	}{
		{"single sentence", 1, 0, 1, 0},
		{"below ratio threshold", 0.2, 0, 4, 0},
		{"default ratio", 0.2, 0, 10, 2},
		{"rounds down", 0.2, 0, 14, 2},
		{"capped", 0.5, 3, 20, 3},
		{"whole text", 1, 0, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &TextRankSummarizer{Ratio: tt.ratio, MaxSentences: tt.maxSentences}
			if got := s.sentenceBudget(tt.count); got != tt.want {
				t.Errorf("sentenceBudget(%d) = %d, want %d", tt.count, got, tt.want)
			}
		})
	}
}

func TestTextRankSummarizer(t *testing.T) {
	text := strings.Join([]string{
		"Sentence one is here.",
		"Sentence two follows.",
		"Sentence three is important.",
		"Sentence four is filler.",
		"Sentence five is important too.",
		"Sentence six ends it.",
		"Sentence seven.",
		"Sentence eight.",
		"Sentence nine.",
		"Sentence ten.",
	}, " ")

	t.Run("empty text", func(t *testing.T) {
		s := NewTextRankSummarizer(SummarizerSettings{Ratio: 0.2}, nil)
		if _, err := s.Summarize(" \n\t"); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Summarize() error = %v, want ErrEmptyText", err)
		}
	})

	t.Run("too short", func(t *testing.T) {
		s := NewTextRankSummarizer(SummarizerSettings{Ratio: 0.2}, nil)
		s.rank = func([]string, int) ([]string, error) {
			t.Fatal("rank called for text that is too short")
			return nil, nil
		}
		got, err := s.Summarize("Hello world.")
		if err != nil || got != "" {
			t.Errorf("Summarize() = %q, %v; want empty summary", got, err)
		}
	})

	t.Run("ranks the counted sentences", func(t *testing.T) {
		s := NewTextRankSummarizer(SummarizerSettings{Ratio: 0.2}, nil)
		var ranked []string
		var asked int
		s.rank = func(sentences []string, n int) ([]string, error) {
			ranked, asked = sentences, n
			return []string{" first pick ", "", "second pick"}, nil
		}
		text := strings.Repeat("heading line one\n\nbody paragraph text here\n\n", 5)
		got, err := s.Summarize(text)
		if err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
		if len(ranked) != 10 || asked != 2 {
			t.Errorf("ranked %d sentences asking for %d, want 10 and 2", len(ranked), asked)
		}
		if got != "first pick\nsecond pick" {
			t.Errorf("Summarize() = %q", got)
		}
	})

	t.Run("rank error", func(t *testing.T) {
		boom := errors.New("boom")
		s := NewTextRankSummarizer(SummarizerSettings{Ratio: 0.2}, nil)
		s.rank = func([]string, int) ([]string, error) { return nil, boom }
		if _, err := s.Summarize(text); !errors.Is(err, boom) {
			t.Errorf("Summarize() error = %v, want %v", err, boom)
		}
	})
}

func TestTextRankSummarizerDocuments(t *testing.T) {
	sentences := []string{
		"Extractive summaries reuse sentences from the source document.",
		"Keyword extraction finds phrases that describe the document.",
		"Tags help users find documents in a library.",
		"The processor prints a JSON object with a summary and tags.",
		"Summaries are computed by ranking sentences against each other.",
		"Sentences that share many words with others rank higher.",
		"The ratio decides how many sentences are kept.",
		"Short texts produce an empty summary.",
		"Headings without punctuation count as sentences.",
		"Results are printed on a single line.",
	}

	tests := []struct {
		name string
		text string
	}{
		{"space separated", strings.Join(sentences, " ")},
		{"newline separated", strings.Join(sentences, "\n")},
		{"paragraphs", strings.Join(sentences, "\n\n")},
		{"paragraphs without punctuation", strings.Repeat("heading line one\n\nbody paragraph text here\n\n", 5)},
		{"markdown", "# Release notes\n\n" + strings.Join(sentences[:5], " ") + "\n\n## Details\n\n" + strings.Join(sentences[5:], "\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTextRankSummarizer(SummarizerSettings{Ratio: 0.2}, nil)
			source := documentSentences(tt.text)
			budget := s.sentenceBudget(len(source))
			if budget == 0 {
				t.Fatalf("budget is 0 for %d sentences", len(source))
			}

			got, err := s.Summarize(tt.text)
			if err != nil {
				t.Fatalf("Summarize() error = %v", err)
			}
			if got == "" {
				t.Fatal("Summarize() returned an empty summary for a multi-sentence document")
			}

			lines := strings.Split(got, "\n")
			if len(lines) > budget {
				t.Errorf("summary has %d sentences, want at most %d", len(lines), budget)
			}
			for _, line := range lines {
				found := false
				for _, sentence := range source {
					if line == sentence {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("summary line %q is not one of the source sentences", line)
				}
			}
		})
	}
}

func TestSummarizerFunc(t *testing.T) {
	var f Summarizer = SummarizerFunc(func(text string) (string, error) { return "sum:" + text, nil })
	got, err := f.Summarize("x")
	if err != nil || got != "sum:x" {
		t.Errorf("SummarizerFunc.Summarize() = %q, %v", got, err)
	}
}
