package domain

import (
	"time"
)

// ArticleText is the extracted article content handed to the prompt builder.
// It lives for a single request and is never persisted.
type ArticleText struct {
	Title string
	Body  string
}

// KeyEntities groups the named entities the model extracts from the article.
type KeyEntities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// QuizPayload is the structured quiz produced from one article. WikipediaURL
// is attached by the orchestrator after parsing, not by the model.
type QuizPayload struct {
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	KeyEntities   KeyEntities    `json:"key_entities"`
	Sections      []string       `json:"sections"`
	Quiz          []QuizQuestion `json:"quiz"`
	RelatedTopics []string       `json:"related_topics"`
	WikipediaURL  string         `json:"wikipedia_url,omitempty"`
}

// QuizRecord is a persisted quiz row with its questions.
type QuizRecord struct {
	ID            string
	Title         string
	Summary       string
	KeyEntities   KeyEntities
	Sections      []string
	RelatedTopics []string
	WikipediaURL  string
	Questions     []QuizQuestion
	CreatedAt     time.Time
}

// QuizAttempt records one completed quiz run.
type QuizAttempt struct {
	ID        string
	QuizID    string
	Score     int
	Total     int
	CreatedAt time.Time
}

// Validate checks the attempt is internally consistent before it is stored.
func (a *QuizAttempt) Validate() error {
	if a.QuizID == "" {
		return NewInvalidInputError("quiz_id is required")
	}
	if a.Total <= 0 {
		return NewInvalidInputError("total must be positive")
	}
	if a.Score < 0 || a.Score > a.Total {
		return NewInvalidInputError("score must be between 0 and total")
	}
	return nil
}
