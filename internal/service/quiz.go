package service

import (
	"context"

	"wikiquiz/internal/domain"
	"wikiquiz/internal/dto"
)

const defaultListLimit = 50

// QuizService serves stored quizzes and records attempts.
type QuizService interface {
	GetQuizByID(ctx context.Context, id string) (*dto.QuizDetailResponse, error)
	ListQuizzes(ctx context.Context, limit int) ([]dto.QuizSummaryResponse, error)
	RecordAttempt(ctx context.Context, quizID string, req *dto.RecordAttemptRequest) (*dto.RecordAttemptResponse, error)
}

type quizService struct {
	repo domain.QuizRepository
}

// NewQuizService creates a new instance of quizService
func NewQuizService(repo domain.QuizRepository) QuizService {
	return &quizService{repo: repo}
}

// GetQuizByID implements QuizService
func (s *quizService) GetQuizByID(ctx context.Context, id string) (*dto.QuizDetailResponse, error) {
	record, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if record == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}

	resp := &dto.QuizDetailResponse{
		ID:      record.ID,
		Title:   record.Title,
		Summary: record.Summary,
		KeyEntities: dto.KeyEntitiesResponse{
			People:        record.KeyEntities.People,
			Organizations: record.KeyEntities.Organizations,
			Locations:     record.KeyEntities.Locations,
		},
		Sections:      record.Sections,
		RelatedTopics: record.RelatedTopics,
		WikipediaURL:  record.WikipediaURL,
		CreatedAt:     record.CreatedAt,
	}
	for _, q := range record.Questions {
		resp.Quiz = append(resp.Quiz, dto.QuizQuestionResponse{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Difficulty:  q.Difficulty,
			Explanation: q.Explanation,
		})
	}
	return resp, nil
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context, limit int) ([]dto.QuizSummaryResponse, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	records, err := s.repo.ListQuizzes(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	summaries := make([]dto.QuizSummaryResponse, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, dto.QuizSummaryResponse{
			ID:            r.ID,
			Title:         r.Title,
			Summary:       r.Summary,
			WikipediaURL:  r.WikipediaURL,
			RelatedTopics: r.RelatedTopics,
			CreatedAt:     r.CreatedAt,
		})
	}
	return summaries, nil
}

// RecordAttempt implements QuizService
func (s *quizService) RecordAttempt(ctx context.Context, quizID string, req *dto.RecordAttemptRequest) (*dto.RecordAttemptResponse, error) {
	attempt := &domain.QuizAttempt{
		QuizID: quizID,
		Score:  req.Score,
		Total:  req.Total,
	}
	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if record == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}

	if err := s.repo.SaveAttempt(ctx, attempt); err != nil {
		return nil, domain.NewInternalError("Failed to save attempt", err)
	}

	return &dto.RecordAttemptResponse{
		ID:        attempt.ID,
		QuizID:    attempt.QuizID,
		Score:     attempt.Score,
		Total:     attempt.Total,
		CreatedAt: attempt.CreatedAt,
	}, nil
}
