package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"wikiquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuizJSON() string {
	payload := domain.QuizPayload{
		Title:   "Test Article",
		Summary: "A short summary of the test article.",
		KeyEntities: domain.KeyEntities{
			People:        []string{"Ada Lovelace"},
			Organizations: []string{"Analytical Society"},
			Locations:     []string{"London"},
		},
		Sections:      []string{"Early life", "Work"},
		RelatedTopics: []string{"Charles Babbage", "Analytical engine", "Mathematics"},
	}
	for i := 0; i < 5; i++ {
		payload.Quiz = append(payload.Quiz, domain.QuizQuestion{
			Question:    fmt.Sprintf("Question %d?", i+1),
			Options:     []string{"first", "second", "third", "fourth"},
			Answer:      "B",
			Difficulty:  "medium",
			Explanation: "Stated directly in the article.",
		})
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func newParser(t *testing.T) *ResponseParser {
	t.Helper()
	p, err := NewResponseParser()
	require.NoError(t, err)
	return p
}

func TestResponseParser_FencedAndUnfencedAreEquivalent(t *testing.T) {
	p := newParser(t)
	raw := validQuizJSON()

	unfenced, err := p.Parse(raw)
	require.NoError(t, err)

	jsonFenced, err := p.Parse("```json\n" + raw + "\n```")
	require.NoError(t, err)

	bareFenced, err := p.Parse("```\n" + raw + "\n```")
	require.NoError(t, err)

	inlineFenced, err := p.Parse("```json" + raw + "```")
	require.NoError(t, err)

	assert.Equal(t, unfenced, jsonFenced)
	assert.Equal(t, unfenced, bareFenced)
	assert.Equal(t, unfenced, inlineFenced)
}

func TestResponseParser_FenceWithSurroundingProse(t *testing.T) {
	p := newParser(t)
	raw := "Here is your quiz:\n```json\n" + validQuizJSON() + "\n```\nEnjoy!"

	payload, err := p.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Test Article", payload.Title)
	assert.Len(t, payload.Quiz, 5)
}

func TestResponseParser_UnparsableText(t *testing.T) {
	p := newParser(t)

	_, err := p.Parse("I am sorry, I cannot generate a quiz for this article.")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrMalformedResponse, domainErr.Code)
	assert.Equal(t, "Invalid JSON response from AI", domainErr.Message)
}

func TestResponseParser_SchemaViolationsRejected(t *testing.T) {
	p := newParser(t)

	mutate := func(f func(*domain.QuizPayload)) string {
		var payload domain.QuizPayload
		require.NoError(t, json.Unmarshal([]byte(validQuizJSON()), &payload))
		f(&payload)
		data, _ := json.Marshal(payload)
		return string(data)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "three options",
			raw: mutate(func(q *domain.QuizPayload) {
				q.Quiz[0].Options = q.Quiz[0].Options[:3]
			}),
		},
		{
			name: "five options",
			raw: mutate(func(q *domain.QuizPayload) {
				q.Quiz[0].Options = append(q.Quiz[0].Options, "fifth")
			}),
		},
		{
			name: "answer outside labels",
			raw: mutate(func(q *domain.QuizPayload) {
				q.Quiz[0].Answer = "E"
			}),
		},
		{
			name: "unknown difficulty",
			raw: mutate(func(q *domain.QuizPayload) {
				q.Quiz[0].Difficulty = "impossible"
			}),
		},
		{
			name: "empty quiz",
			raw: mutate(func(q *domain.QuizPayload) {
				q.Quiz = nil
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.raw)
			require.Error(t, err)

			var domainErr *domain.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domain.ErrMalformedResponse, domainErr.Code)
		})
	}
}

func TestExtractJSONCandidate(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONCandidate("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSONCandidate("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSONCandidate("```json{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, extractJSONCandidate(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, extractJSONCandidate("  \n{\"a\":1}\n  "))
}
