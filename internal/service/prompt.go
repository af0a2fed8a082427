package service

import (
	"fmt"

	"wikiquiz/internal/domain"
)

// quizSystemPrompt is the fixed instruction handed to the completion
// service. It pins down the exact JSON shape the response parser expects.
const quizSystemPrompt = `You are an expert quiz generator. You will be given the text of a Wikipedia article. Produce a single JSON object with exactly this structure:

{
  "title": "the article title",
  "summary": "a 2-3 sentence summary of the article",
  "key_entities": {
    "people": ["notable people mentioned"],
    "organizations": ["notable organizations mentioned"],
    "locations": ["notable locations mentioned"]
  },
  "sections": ["main topics or sections covered by the article"],
  "quiz": [
    {
      "question": "a multiple-choice question grounded in the article",
      "options": ["option A text", "option B text", "option C text", "option D text"],
      "answer": "A",
      "difficulty": "easy",
      "explanation": "a short explanation grounded in the article text"
    }
  ],
  "related_topics": ["3-8 related topics worth reading next"]
}

Rules:
1. Generate between 5 and 10 quiz questions.
2. Every question has exactly 4 options and exactly one correct answer.
3. "answer" must be one of "A", "B", "C" or "D", matching the position of the correct option.
4. "difficulty" must be one of "easy", "medium" or "hard"; mix difficulties across the quiz.
5. Explanations must be grounded in the article text, not outside knowledge.
6. Respond with ONLY the JSON object. No commentary before or after it.`

// PromptBuilder assembles the model request from extracted article text.
// It is pure and deterministic: no I/O, no failure modes.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build returns the system instruction and the user message for one article.
func (b *PromptBuilder) Build(article *domain.ArticleText) (systemPrompt, userPrompt string) {
	userPrompt = fmt.Sprintf("Article title: %s\n\nArticle text:\n%s", article.Title, article.Body)
	return quizSystemPrompt, userPrompt
}
