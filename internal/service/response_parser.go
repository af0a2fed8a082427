package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/logger"

	"go.uber.org/zap"
)

// quizPayloadSchema is the structural contract enforced on the model's
// output before it is accepted: every question carries exactly 4 options,
// the answer is one of the four labels, and difficulty is one of the three
// recognized levels. Payloads violating it are rejected, not logged-and-kept.
const quizPayloadSchema = `{
  "type": "object",
  "required": ["title", "summary", "key_entities", "sections", "quiz", "related_topics"],
  "properties": {
    "title": {"type": "string"},
    "summary": {"type": "string"},
    "key_entities": {
      "type": "object",
      "required": ["people", "organizations", "locations"],
      "properties": {
        "people": {"type": "array", "items": {"type": "string"}},
        "organizations": {"type": "array", "items": {"type": "string"}},
        "locations": {"type": "array", "items": {"type": "string"}}
      }
    },
    "sections": {"type": "array", "items": {"type": "string"}},
    "quiz": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question", "options", "answer", "difficulty", "explanation"],
        "properties": {
          "question": {"type": "string"},
          "options": {
            "type": "array",
            "items": {"type": "string"},
            "minItems": 4,
            "maxItems": 4
          },
          "answer": {"type": "string", "enum": ["A", "B", "C", "D"]},
          "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
          "explanation": {"type": "string"}
        }
      }
    },
    "related_topics": {"type": "array", "items": {"type": "string"}}
  }
}`

// ResponseParser extracts and validates the quiz JSON from raw completion
// text. Models often wrap their output in markdown code fences, so those are
// stripped first; unfenced text is treated as the candidate JSON directly.
type ResponseParser struct {
	schema *gojsonschema.Schema
}

func NewResponseParser() (*ResponseParser, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(quizPayloadSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile quiz payload schema: %w", err)
	}
	return &ResponseParser{schema: schema}, nil
}

// Parse turns raw completion text into a validated QuizPayload.
// WikipediaURL is left empty; the orchestrator attaches it.
func (p *ResponseParser) Parse(raw string) (*domain.QuizPayload, error) {
	candidate := extractJSONCandidate(raw)

	var payload domain.QuizPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		logger.Get().Error("Failed to unmarshal completion text as JSON",
			zap.Error(err),
			zap.String("candidate", truncateForLog(candidate)))
		return nil, domain.NewMalformedResponseError(err)
	}

	result, err := p.schema.Validate(gojsonschema.NewStringLoader(candidate))
	if err != nil {
		return nil, domain.NewMalformedResponseError(err)
	}
	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		logger.Get().Error("Quiz payload failed schema validation",
			zap.Strings("violations", problems))
		return nil, domain.NewMalformedResponseError(
			fmt.Errorf("quiz payload failed schema validation: %s", strings.Join(problems, "; ")))
	}

	return &payload, nil
}

// extractJSONCandidate returns the inner text of the first markdown code
// fence, tolerating an optional "json" language tag with or without a
// following newline. When no fence is present the whole trimmed text is the
// candidate.
func extractJSONCandidate(raw string) string {
	text := strings.TrimSpace(raw)

	start := strings.Index(text, "```")
	if start == -1 {
		return text
	}

	inner := strings.TrimPrefix(text[start+3:], "json")

	if end := strings.Index(inner, "```"); end != -1 {
		inner = inner[:end]
	}

	return strings.TrimSpace(inner)
}

func truncateForLog(s string) string {
	const limit = 500
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
