// Copyright 2026 Arcatext
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/arcatext/newsift/ai"
)

// Classifier implements ai.Classifier using OpenAI-compatible chat APIs.
type Classifier struct {
	client    llms.Model
	threshold float64
	logger    *slog.Logger
}

// verdict is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type verdict struct {
	RelevanceScore float64 `json:"relevance_score"`
	IsRelevant     bool    `json:"is_relevant"`
	Reason         string  `json:"reason"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/classification
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		client:    client,
		threshold: config.RelevanceThreshold,
		logger:    slog.Default().With("component", "openai-classifier"),
	}, nil
}

// NewClassifier creates a new classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// Classify scores an article against the criteria using an LLM.
// The model's own is_relevant flag is discarded; relevance is derived from
// the configured threshold so all articles are judged consistently.
func (c *Classifier) Classify(ctx context.Context, title, body, criteria string) (ai.Verdict, error) {
	prompt := buildClassificationPrompt(title, truncate(cleanHTML(body), maxClassifyBodyLength), criteria)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result verdict
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return ai.Verdict{}, err
		}

		if len(response.Choices) < 1 {
			c.logger.Debug("no choices returned from model")
			return ai.Verdict{}, ErrEmptyResponse
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			// Second chance with common key-quoting mistakes repaired
			if err = json.Unmarshal([]byte(repairJSON(responseText)), &result); err != nil {
				lastErr = err
				c.logger.Warn("error parsing classifier response",
					"attempt", attempt+1,
					"response", responseText,
					"err", err)
				continue
			}
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
		return ai.Verdict{}, lastErr
	}

	// Clamp out-of-range model scores
	score := result.RelevanceScore
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return ai.Verdict{
		Score:    score,
		Relevant: score >= c.threshold,
		Reason:   result.Reason,
	}, nil
}
