package domain

import "context"

// ArticleFetcher retrieves raw HTML for a Wikipedia article URL. The URL is
// validated by the caller before the fetcher sees it.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ArticleExtractor turns raw Wikipedia HTML into bounded article text.
type ArticleExtractor interface {
	Extract(html string) (*ArticleText, error)
}

// CompletionClient sends a single-turn system+user prompt to an external
// text-completion service and returns the raw completion text.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// QuizRepository persists generated quizzes and attempts.
type QuizRepository interface {
	SaveQuiz(ctx context.Context, record *QuizRecord) error
	GetQuizByID(ctx context.Context, id string) (*QuizRecord, error)
	ListQuizzes(ctx context.Context, limit int) ([]*QuizRecord, error)
	SaveAttempt(ctx context.Context, attempt *QuizAttempt) error
}
