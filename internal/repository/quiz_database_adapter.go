package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/repository/models"
	"wikiquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz implements domain.QuizRepository. The quiz row and its question
// rows are written in one transaction; the generated IDs are written back
// onto the record.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, record *domain.QuizRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil quiz")
	}

	record.ID = util.NewULID()
	record.CreatedAt = time.Now()

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quizQuery := `INSERT INTO quizzes (
		id, title, summary, people, organizations, locations,
		sections, related_topics, wikipedia_url, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.ExecContext(ctx, quizQuery,
		record.ID,
		record.Title,
		record.Summary,
		models.StringSlice(record.KeyEntities.People),
		models.StringSlice(record.KeyEntities.Organizations),
		models.StringSlice(record.KeyEntities.Locations),
		models.StringSlice(record.Sections),
		models.StringSlice(record.RelatedTopics),
		record.WikipediaURL,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	questionQuery := `INSERT INTO quiz_questions (
		id, quiz_id, position, question, options, correct_answer, difficulty, explanation
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for i, q := range record.Questions {
		_, err = tx.ExecContext(ctx, questionQuery,
			util.NewULID(),
			record.ID,
			i,
			q.Question,
			models.StringSlice(q.Options),
			q.Answer,
			q.Difficulty,
			q.Explanation,
		)
		if err != nil {
			return fmt.Errorf("failed to insert quiz question %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz transaction: %w", err)
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository. Returns (nil, nil) when no
// row exists so callers can map that to a not-found error.
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.QuizRecord, error) {
	var modelQuiz models.Quiz
	query := `SELECT id, title, summary, people, organizations, locations,
		sections, related_topics, wikipedia_url, created_at
	FROM quizzes
	WHERE id = $1`

	err := a.db.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}

	var modelQuestions []models.QuizQuestion
	questionQuery := `SELECT id, quiz_id, position, question, options,
		correct_answer, difficulty, explanation
	FROM quiz_questions
	WHERE quiz_id = $1
	ORDER BY position ASC`

	if err := a.db.SelectContext(ctx, &modelQuestions, questionQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", id, err)
	}

	return toDomainQuizRecord(&modelQuiz, modelQuestions), nil
}

// ListQuizzes implements domain.QuizRepository. Questions are not loaded for
// listings; callers only need the summary rows.
func (a *QuizDatabaseAdapter) ListQuizzes(ctx context.Context, limit int) ([]*domain.QuizRecord, error) {
	var modelQuizzes []models.Quiz
	query := `SELECT id, title, summary, people, organizations, locations,
		sections, related_topics, wikipedia_url, created_at
	FROM quizzes
	ORDER BY created_at DESC
	LIMIT $1`

	if err := a.db.SelectContext(ctx, &modelQuizzes, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	records := make([]*domain.QuizRecord, 0, len(modelQuizzes))
	for i := range modelQuizzes {
		records = append(records, toDomainQuizRecord(&modelQuizzes[i], nil))
	}
	return records, nil
}

// SaveAttempt implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt == nil {
		return fmt.Errorf("cannot save nil attempt")
	}

	attempt.ID = util.NewULID()
	attempt.CreatedAt = time.Now()

	query := `INSERT INTO quiz_attempts (id, quiz_id, score, total, created_at)
	VALUES ($1, $2, $3, $4, $5)`

	_, err := a.db.ExecContext(ctx, query,
		attempt.ID,
		attempt.QuizID,
		attempt.Score,
		attempt.Total,
		attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz attempt: %w", err)
	}
	return nil
}

func toDomainQuizRecord(m *models.Quiz, questions []models.QuizQuestion) *domain.QuizRecord {
	record := &domain.QuizRecord{
		ID:      m.ID,
		Title:   m.Title,
		Summary: m.Summary,
		KeyEntities: domain.KeyEntities{
			People:        m.People,
			Organizations: m.Organizations,
			Locations:     m.Locations,
		},
		Sections:      m.Sections,
		RelatedTopics: m.RelatedTopics,
		WikipediaURL:  m.WikipediaURL,
		CreatedAt:     m.CreatedAt,
	}

	for _, q := range questions {
		record.Questions = append(record.Questions, domain.QuizQuestion{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.CorrectAnswer,
			Difficulty:  q.Difficulty,
			Explanation: q.Explanation,
		})
	}
	return record
}

var _ domain.QuizRepository = (*QuizDatabaseAdapter)(nil)
