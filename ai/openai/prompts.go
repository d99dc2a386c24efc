package openai

import "fmt"

const (
	// maxClassifyBodyLength bounds the body excerpt sent for classification.
	maxClassifyBodyLength = 500

	// maxSummaryBodyLength bounds the body excerpt sent for summarization.
	maxSummaryBodyLength = 2000
)

const classificationPromptTemplate = `Analyze the following news article and judge its relevance to the selection criteria.

Selection criteria: %s

Title: %s
Content: %s

Respond in JSON format:
{
    "relevance_score": <number from 0.0 to 1.0>,
    "is_relevant": <true or false>,
    "reason": "<short explanation>"
}

Where:
- relevance_score: relevance rating (0.0 - not relevant, 1.0 - fully relevant)
- is_relevant: true if the article matches the criteria, false otherwise
- reason: a short explanation of why the article is or is not relevant

Output ONLY the JSON object. Do not include any preamble, explanation, or
markdown fences. The JSON must parse without errors; no trailing commas, no
extra keys, and no extraneous text outside the object.`

const summaryPromptTemplate = `Write a concise summary of the following news article (2-3 sentences, 150 words maximum).

Title: %s
Content: %s

The summary should:
- Convey the core of the story
- Be informative and to the point
- Leave out incidental details

Respond with the summary only, without any additional commentary.`

// buildClassificationPrompt fills the classification template.
func buildClassificationPrompt(title, body, criteria string) string {
	if body == "" {
		body = "No content"
	}
	return fmt.Sprintf(classificationPromptTemplate, criteria, title, body)
}

// buildSummaryPrompt fills the summary template.
func buildSummaryPrompt(title, body string) string {
	if body == "" {
		body = "No content"
	}
	return fmt.Sprintf(summaryPromptTemplate, title, body)
}
