package dto

import "time"

// GenerateQuizRequest is the body of POST /api/quizzes/generate.
type GenerateQuizRequest struct {
	WikipediaURL string `json:"wikipediaUrl"`
}

// QuizSummaryResponse is one stored quiz in a listing, without questions.
type QuizSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	WikipediaURL  string    `json:"wikipedia_url"`
	RelatedTopics []string  `json:"related_topics"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizQuestionResponse is one question of a stored quiz.
type QuizQuestionResponse struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// KeyEntitiesResponse groups the extracted entities of a stored quiz.
type KeyEntitiesResponse struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// QuizDetailResponse is a stored quiz with its questions.
type QuizDetailResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Summary       string                 `json:"summary"`
	KeyEntities   KeyEntitiesResponse    `json:"key_entities"`
	Sections      []string               `json:"sections"`
	Quiz          []QuizQuestionResponse `json:"quiz"`
	RelatedTopics []string               `json:"related_topics"`
	WikipediaURL  string                 `json:"wikipedia_url"`
	CreatedAt     time.Time              `json:"created_at"`
}

// RecordAttemptRequest is the body of POST /api/quizzes/:id/attempts.
type RecordAttemptRequest struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// RecordAttemptResponse echoes the stored attempt.
type RecordAttemptResponse struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quiz_id"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
