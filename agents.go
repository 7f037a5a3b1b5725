package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
	"github.com/sirupsen/logrus"
)

// keywordsResponse is the structured output of the keyword agent
type keywordsResponse struct {
	Keywords []Keyword `json:"keywords"`
}

type promptFunc func(systemPrompt, userPrompt, schema string, settings types.RequestSettings) (string, error)

// AgentManager runs the summarizer and keyword agents against the Anthropic API.
// It implements both Summarizer and KeywordExtractor.
type AgentManager struct {
	config *Config
	apiKey string
	prompt promptFunc
	log    *logrus.Logger
}

// NewAgentManager creates a new AgentManager
func NewAgentManager(apiKey string, config *Config, logger *logrus.Logger) (*AgentManager, error) {
	if apiKey == "" {
		return nil, errors.New("API key required: use --api-key flag or ANTHROPIC_API_KEY environment variable")
	}
	if logger == nil {
		logger = discardLogger()
	}

	am := &AgentManager{
		config: config,
		apiKey: apiKey,
		log:    logger,
	}
	am.prompt = am.anthropicPrompt
	return am, nil
}

func (am *AgentManager) anthropicPrompt(systemPrompt, userPrompt, schema string, settings types.RequestSettings) (string, error) {
	response, err := anthropic.PromptWithSettings(systemPrompt, userPrompt, schema, am.apiKey, settings)
	if err != nil {
		return "", err
	}
	if len(response.Content) == 0 {
		return "", errors.New("no content in response")
	}
	return response.Content[0].Text, nil
}

// Summarize generates a summary using the summarizer agent
func (am *AgentManager) Summarize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	am.log.Debugf("→ Summarizer agent (%s)", am.config.Settings.Summarizer.Model)
	systemPrompt, err := am.config.GetSummarizerSystemPrompt()
	if err != nil {
		return "", fmt.Errorf("loading summarizer prompt: %w", err)
	}

	s := am.config.Settings.Summarizer
	userPrompt := fmt.Sprintf("Source content:\n%s", limitContentTokens(text, s.ContentMaxTokens))

	summary, err := am.prompt(systemPrompt, userPrompt, "", requestSettings(s.AgentSettings))
	if err != nil {
		return "", fmt.Errorf("summarizer agent failed: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", errors.New("summarizer agent returned an empty summary")
	}
	return summary, nil
}

// ExtractKeywords generates ranked keywords using the keyword agent with structured output
func (am *AgentManager) ExtractKeywords(text string) ([]Keyword, error) {
	if strings.TrimSpace(text) == "" {
		return []Keyword{}, nil
	}

	am.log.Debugf("→ Keyword agent (%s)", am.config.Settings.Keywords.Model)
	systemPrompt, err := am.config.GetKeywordsSystemPrompt()
	if err != nil {
		return nil, fmt.Errorf("loading keywords prompt: %w", err)
	}
	schema, err := am.config.GetKeywordsSchema()
	if err != nil {
		return nil, fmt.Errorf("loading keywords schema: %w", err)
	}

	k := am.config.Settings.Keywords
	userPrompt := fmt.Sprintf("Source content:\n%s", limitContentTokens(text, k.ContentMaxTokens))

	raw, err := am.prompt(systemPrompt, userPrompt, schema, requestSettings(k.AgentSettings))
	if err != nil {
		return nil, fmt.Errorf("keyword agent failed: %w", err)
	}

	var parsed keywordsResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse keyword structured response: %w", err)
	}

	keywords := make([]Keyword, 0, len(parsed.Keywords))
	for _, kw := range parsed.Keywords {
		if kw.Text = strings.TrimSpace(kw.Text); kw.Text != "" {
			keywords = append(keywords, kw)
		}
	}

	am.log.Debugf("✓ Keyword agent returned %d keyword(s)", len(keywords))
	return truncateKeywords(keywords, k.TopN), nil
}

func requestSettings(s AgentSettings) types.RequestSettings {
	return types.RequestSettings{
		Model:       s.Model,
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	}
}

// limitContentTokens limits content to approximately N tokens (using 4 chars ≈ 1 token)
func limitContentTokens(content string, maxTokens int) string {
	if maxTokens <= 0 {
		return content
	}
	maxChars := maxTokens * 4
	if len(content) <= maxChars {
		return content
	}
	// Back off to a rune boundary
	for maxChars > 0 && !utf8.RuneStart(content[maxChars]) {
		maxChars--
	}
	return content[:maxChars] + "..."
}
